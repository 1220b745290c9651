package timer

import (
	"context"
	"log/slog"
	"time"

	"github.com/tomatobar/tomatobar/internal/session"
	"github.com/tomatobar/tomatobar/store"
)

// snapshotInterval is the tick cadence at which the running timer is
// persisted to facilitate recovery after sudden shutdowns (process
// killed, system crashes etc).
const snapshotInterval = 60

// Run drives the timer until ctx is cancelled. The per-second tick and
// each received command are discrete, mutually exclusive operations on
// the shared state, applied on this goroutine in arrival order. A
// rejected command is logged, never fatal. Every tick and every applied
// command is followed by a status publish.
func (t *Timer) Run(
	ctx context.Context,
	commands <-chan session.Command,
	publish func(session.Status),
) {
	if publish == nil {
		publish = func(session.Status) {}
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	publish(t.Status())

	var counter int

	for {
		select {
		case <-ctx.Done():
			t.shutdown()
			return
		case <-ticker.C:
			t.Tick()

			counter++
			if counter%snapshotInterval == 0 {
				t.saveSnapshot()
			}

			publish(t.Status())
		case cmd := <-commands:
			if err := t.Apply(cmd); err != nil {
				slog.Warn("command rejected", "error", err)
			}

			publish(t.Status())
		}
	}
}

// shutdown persists a phase still in progress as interrupted before
// the daemon releases its resources.
func (t *Timer) shutdown() {
	if t.Phase != session.Idle {
		ended := t.Phase
		if ended == session.Paused {
			ended = t.PausedFrom
		}

		t.record(ended, false)
	}

	t.clearSnapshot()

	slog.Info("timer stopped")
}

// RecoverInterrupted converts a snapshot left behind by a daemon that
// died mid-phase into an interrupted session record, then clears it.
// It must be called before the run loop starts.
func (t *Timer) RecoverInterrupted() error {
	if t.snaps == nil {
		return nil
	}

	snap, err := t.snaps.Load()
	if err != nil || snap == nil {
		return err
	}

	ended := snap.Phase
	if ended == session.Paused {
		ended = snap.PausedFrom
	}

	if ended.Active() {
		r := &session.Record{
			StartTime:      snap.StartTime,
			EndTime:        snap.SavedAt,
			Type:           ended,
			Completed:      false,
			DurationActual: snap.PhaseDuration - snap.TimeRemaining,
			PomodoroCount:  snap.WorkCycle,
		}

		if err := t.db.AppendSession(r); err != nil {
			return err
		}

		slog.Info("recovered interrupted session",
			"type", ended,
			"duration", r.DurationActual,
		)
	}

	return t.snaps.Clear()
}

func (t *Timer) saveSnapshot() {
	if t.snaps == nil || t.Phase == session.Idle {
		return
	}

	snap := &store.Snapshot{
		Phase:         t.Phase,
		PausedFrom:    t.PausedFrom,
		TimeRemaining: t.Remaining,
		PhaseDuration: t.phaseDuration,
		WorkCycle:     t.WorkCycle,
		StartTime:     t.StartTime.Unix(),
		SavedAt:       time.Now().Unix(),
	}

	if err := t.snaps.Save(snap); err != nil {
		slog.Error("unable to save timer snapshot", "error", err)
	}
}

func (t *Timer) clearSnapshot() {
	if t.snaps == nil {
		return
	}

	if err := t.snaps.Clear(); err != nil {
		slog.Error("unable to clear timer snapshot", "error", err)
	}
}
