package store

import (
	"time"

	"github.com/tomatobar/tomatobar/internal/session"
)

// DB is the session log storage interface.
type DB interface {
	// AppendSession persists one finished phase. Records are
	// append-only: prior rows are never modified or deleted.
	AppendSession(r *session.Record) error
	// Sessions returns the records whose start time falls within the
	// specified bounds, in insertion order.
	Sessions(since, until time.Time) ([]session.Record, error)
	// Close ends the database connection
	Close() error
}
