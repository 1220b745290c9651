package timer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tomatobar/tomatobar/internal/session"
)

func TestRunShutdownRecordsInterruptedPhase(t *testing.T) {
	tm, db := newTestTimer(t)

	_ = tm.Apply(session.CmdStart)
	tick(tm, 30)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tm.Run(ctx, nil, nil)

	want := []session.Record{
		{
			Type:           session.Work,
			Completed:      false,
			DurationActual: 30,
			PomodoroCount:  0,
		},
	}

	if diff := cmp.Diff(want, db.records, ignoreTimes); diff != "" {
		t.Fatalf("unexpected records (-want +got):\n%s", diff)
	}
}

func TestRunAppliesCommandsInArrivalOrder(t *testing.T) {
	tm, db := newTestTimer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	commands := make(chan session.Command, 2)
	commands <- session.CmdStart
	commands <- session.CmdPause

	var (
		mu     sync.Mutex
		states []session.Phase
	)

	done := make(chan struct{})

	go func() {
		defer close(done)

		tm.Run(ctx, commands, func(s session.Status) {
			mu.Lock()
			states = append(states, s.State)
			mu.Unlock()

			if s.State == session.Paused {
				cancel()
			}
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("run loop did not stop")
	}

	mu.Lock()
	defer mu.Unlock()

	want := []session.Phase{session.Idle, session.Work, session.Paused}

	if diff := cmp.Diff(want, states); diff != "" {
		t.Fatalf("unexpected state sequence (-want +got):\n%s", diff)
	}

	// shutdown persisted the paused work phase as interrupted
	if len(db.records) != 1 || db.records[0].Completed {
		t.Fatalf("expected one interrupted record, got %+v", db.records)
	}
}
