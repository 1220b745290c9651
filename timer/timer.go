// Package timer operates the tomatobar countdown state machine and
// handles the persistence of finished phases
package timer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tomatobar/tomatobar/config"
	"github.com/tomatobar/tomatobar/internal/session"
	"github.com/tomatobar/tomatobar/store"
)

// Timer holds all mutable state of the Pomodoro cycle. It is owned by
// the goroutine running Run: ticks and commands are applied one at a
// time in arrival order, so no operation ever observes a partial
// update.
type Timer struct {
	Opts       *config.DaemonConfig
	Phase      session.Phase
	PausedFrom session.Phase
	Remaining  int
	WorkCycle  int
	StartTime  time.Time

	// phaseDuration is the configured length of the active phase in
	// seconds, frozen when the phase begins. Config changes never
	// alter a phase already in progress.
	phaseDuration int

	db     store.DB
	snaps  *store.SnapshotStore
	notify func(ended, next session.Phase)
}

// New creates an idle timer. The publish and notify side effects are
// wired in by the caller; both may be nil.
func New(
	db store.DB,
	snaps *store.SnapshotStore,
	cfg *config.DaemonConfig,
) *Timer {
	t := &Timer{
		Opts:  cfg,
		Phase: session.Idle,
		db:    db,
		snaps: snaps,
	}

	t.notify = func(ended, next session.Phase) {
		go desktopNotify(cfg, ended, next)
	}

	return t
}

// Apply executes a single command against the current state. Commands
// that are invalid for the current phase are rejected without mutating
// anything.
func (t *Timer) Apply(cmd session.Command) error {
	switch cmd {
	case session.CmdStart:
		switch t.Phase {
		case session.Idle:
			t.startPhase(session.Work)
		case session.Paused:
			t.resume()
		default:
			return t.reject(cmd)
		}
	case session.CmdPause:
		if !t.Phase.Active() {
			return t.reject(cmd)
		}

		t.pause()
	case session.CmdResume:
		if t.Phase != session.Paused {
			return t.reject(cmd)
		}

		t.resume()
	case session.CmdSkip:
		if !t.Phase.Active() {
			return t.reject(cmd)
		}

		t.advance()
	case session.CmdReset:
		t.reset(false)
	case session.CmdRestartCycle:
		t.reset(true)
	case session.CmdGetStatus:
		// no state change; the caller publishes a fresh snapshot
		// after every applied command
	default:
		return fmt.Errorf("%q: %w", cmd, session.ErrUnknownCommand)
	}

	return nil
}

// Tick advances the timer by one second. Ticks outside an active phase
// are no-ops, so the remaining time can never go negative.
func (t *Timer) Tick() {
	if !t.Phase.Active() {
		return
	}

	if t.Remaining > 0 {
		t.Remaining--
	}

	if t.Remaining == 0 {
		t.advance()
	}
}

// Status returns a snapshot of the timer for the status channel.
func (t *Timer) Status() session.Status {
	return session.Status{
		State:              t.Phase,
		TimeRemaining:      t.Remaining,
		PomodorosCompleted: t.WorkCycle,
		TotalPomodoros:     t.Opts.LongBreakInterval,
		Message:            t.message(),
	}
}

func (t *Timer) message() string {
	clock := fmt.Sprintf("%02d:%02d", t.Remaining/60, t.Remaining%60)

	switch t.Phase {
	case session.Work:
		return "Work: " + clock
	case session.ShortBreak:
		return "Break: " + clock
	case session.LongBreak:
		return "Long Break: " + clock
	case session.Paused:
		switch t.PausedFrom {
		case session.Work:
			return "Paused Work: " + clock
		case session.ShortBreak:
			return "Paused Break: " + clock
		default:
			return "Paused Long Break: " + clock
		}
	default:
		return "Ready"
	}
}

// advance ends the active phase as completed and starts the next one
// per the cycle rule. Natural completion and skip both land here; for
// a skip the recorded duration is the configured duration minus the
// time still remaining.
func (t *Timer) advance() {
	ended := t.Phase

	t.record(ended, true)

	next := t.nextPhase(ended)

	t.notify(ended, next)
	t.startPhase(next)
}

// nextPhase applies the cycle rule: leaving a work phase increments the
// cycle counter and routes to a long break once the counter reaches the
// configured interval; leaving any break routes back to work.
func (t *Timer) nextPhase(current session.Phase) session.Phase {
	if current != session.Work {
		return session.Work
	}

	t.WorkCycle++

	if t.WorkCycle == t.Opts.LongBreakInterval {
		return session.LongBreak
	}

	return session.ShortBreak
}

func (t *Timer) startPhase(p session.Phase) {
	// the cycle counter resets only upon entering the long break, so
	// the just-completed count is what was persisted for the final
	// work phase of the cycle
	if p == session.LongBreak {
		t.WorkCycle = 0
	}

	t.Phase = p
	t.PausedFrom = ""
	t.phaseDuration = int(t.Opts.Duration(p).Seconds())
	t.Remaining = t.phaseDuration
	t.StartTime = time.Now()

	slog.Info("phase started",
		"phase", p,
		"duration", t.phaseDuration,
		"work_cycle", t.WorkCycle,
	)

	t.saveSnapshot()
}

func (t *Timer) pause() {
	t.PausedFrom = t.Phase
	t.Phase = session.Paused

	slog.Info("phase paused", "phase", t.PausedFrom)
}

func (t *Timer) resume() {
	t.Phase = t.PausedFrom
	t.PausedFrom = ""

	slog.Info("phase resumed", "phase", t.Phase)
}

// reset abandons any phase in progress and returns to idle. The
// abandoned phase is recorded as interrupted. restart additionally
// zeroes the cycle counter.
func (t *Timer) reset(restart bool) {
	if t.Phase != session.Idle {
		ended := t.Phase
		if ended == session.Paused {
			ended = t.PausedFrom
		}

		t.record(ended, false)
	}

	t.Phase = session.Idle
	t.PausedFrom = ""
	t.Remaining = 0
	t.phaseDuration = 0

	if restart {
		t.WorkCycle = 0
	}

	t.clearSnapshot()

	slog.Info("timer reset", "restart_cycle", restart)
}

// record writes one immutable row to the session log. A failed write
// is logged and dropped: the in-memory transition already happened and
// the timer's authoritative state is in memory, not the store.
func (t *Timer) record(p session.Phase, completed bool) {
	r := &session.Record{
		StartTime:      t.StartTime.Unix(),
		EndTime:        time.Now().Unix(),
		Type:           p,
		Completed:      completed,
		DurationActual: t.phaseDuration - t.Remaining,
		PomodoroCount:  t.WorkCycle,
	}

	if err := t.db.AppendSession(r); err != nil {
		slog.Error("unable to record session",
			"type", p,
			"completed", completed,
			"error", err,
		)

		return
	}

	slog.Info("session recorded",
		"type", p,
		"completed", completed,
		"duration", r.DurationActual,
	)
}

func (t *Timer) reject(cmd session.Command) error {
	return fmt.Errorf(
		"%q: %w in phase %q", cmd, errCommandNotAllowed, t.Phase,
	)
}
