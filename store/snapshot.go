package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/tomatobar/tomatobar/internal/session"
)

var errDaemonRunning = errors.New(
	"is tomatobar already running? Only one instance can be active at a time",
)

var (
	timerBucket = []byte("timer")
	snapshotKey = []byte("current")
)

// Snapshot is a point-in-time copy of the running timer, written
// periodically so a daemon that dies without its shutdown hook can be
// detected on the next start.
type Snapshot struct {
	Phase         session.Phase `json:"phase"`
	PausedFrom    session.Phase `json:"paused_from,omitempty"`
	TimeRemaining int           `json:"time_remaining"`
	PhaseDuration int           `json:"phase_duration"`
	WorkCycle     int           `json:"work_cycle"`
	StartTime     int64         `json:"start_time"`
	SavedAt       int64         `json:"saved_at"`
}

// SnapshotStore persists timer snapshots in a Bolt database. Holding
// the database open also serves as the single-instance lock for the
// daemon.
type SnapshotStore struct {
	db *bolt.DB
}

// Save overwrites the current snapshot.
func (s *SnapshotStore) Save(snap *Snapshot) error {
	value, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(timerBucket).Put(snapshotKey, value)
	})
}

// Load returns the stored snapshot, or nil if none exists.
func (s *SnapshotStore) Load() (*Snapshot, error) {
	var snap *Snapshot

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(timerBucket).Get(snapshotKey)
		if len(b) == 0 {
			return nil
		}

		snap = &Snapshot{}

		return json.Unmarshal(b, snap)
	})

	return snap, err
}

// Clear removes the stored snapshot.
func (s *SnapshotStore) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(timerBucket).Delete(snapshotKey)
	})
}

func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// NewSnapshotStore opens or creates the timer snapshot database and
// locks it for the lifetime of the daemon.
func NewSnapshotStore(path string) (*SnapshotStore, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		path,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errDaemonRunning
		}

		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists(timerBucket)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &SnapshotStore{db: db}, nil
}
