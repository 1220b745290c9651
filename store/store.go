// Package store connects to the data store and manages the session log
// and timer snapshots
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tomatobar/tomatobar/internal/session"
)

const createSessionsTable = `
CREATE TABLE IF NOT EXISTS sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	start_time INTEGER,
	end_time INTEGER,
	type TEXT,
	completed BOOLEAN,
	duration_actual_seconds INTEGER,
	pomodoro_count_at_completion INTEGER
);`

// Client is an SQLite database client for the session log.
type Client struct {
	db *sql.DB
}

// AppendSession inserts one finished phase into the session log.
func (c *Client) AppendSession(r *session.Record) error {
	_, err := c.db.Exec(
		`INSERT INTO sessions
		(start_time, end_time, type, completed, duration_actual_seconds, pomodoro_count_at_completion)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.StartTime,
		r.EndTime,
		string(r.Type),
		r.Completed,
		r.DurationActual,
		r.PomodoroCount,
	)
	if err != nil {
		return fmt.Errorf("appending session record: %w", err)
	}

	return nil
}

// Sessions returns the records whose start time falls within the
// specified bounds.
func (c *Client) Sessions(
	since, until time.Time,
) ([]session.Record, error) {
	rows, err := c.db.Query(
		`SELECT id, start_time, end_time, type, completed,
		duration_actual_seconds, pomodoro_count_at_completion
		FROM sessions WHERE start_time >= ? AND start_time <= ?
		ORDER BY id`,
		since.Unix(),
		until.Unix(),
	)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var records []session.Record

	for rows.Next() {
		var r session.Record

		var sessType string

		err = rows.Scan(
			&r.ID,
			&r.StartTime,
			&r.EndTime,
			&sessType,
			&r.Completed,
			&r.DurationActual,
			&r.PomodoroCount,
		)
		if err != nil {
			return nil, err
		}

		r.Type = session.Phase(sessType)

		records = append(records, r)
	}

	return records, rows.Err()
}

func (c *Client) Close() error {
	return c.db.Close()
}

// NewClient opens or creates the session log database and ensures the
// sessions table exists.
func NewClient(dbPath string) (*Client, error) {
	err := os.MkdirAll(filepath.Dir(dbPath), 0o755)
	if err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	if _, err = db.Exec(createSessionsTable); err != nil {
		return nil, fmt.Errorf("creating sessions table: %w", err)
	}

	return &Client{db: db}, nil
}
