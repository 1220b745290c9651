// Package session defines the phases of the Pomodoro cycle, the command
// vocabulary understood by the daemon, and the records persisted for
// finished phases.
package session

import "errors"

var ErrUnknownCommand = errors.New("unknown command")

// Phase represents a state of the Pomodoro timer. The string values are
// part of the status channel contract and must not change.
type Phase string

const (
	Idle       Phase = "idle"
	Work       Phase = "work"
	ShortBreak Phase = "short_break"
	LongBreak  Phase = "long_break"
	Paused     Phase = "paused"
)

// Active reports whether the phase is a running countdown.
func (p Phase) Active() bool {
	return p == Work || p == ShortBreak || p == LongBreak
}

// Command is a single word read from the command channel.
type Command string

const (
	CmdStart        Command = "start"
	CmdPause        Command = "pause"
	CmdResume       Command = "resume"
	CmdSkip         Command = "skip"
	CmdReset        Command = "reset"
	CmdRestartCycle Command = "restart_cycle"
	CmdGetStatus    Command = "get_status"
)

// ParseCommand validates a command word received over the command
// channel.
func ParseCommand(s string) (Command, error) {
	switch c := Command(s); c {
	case CmdStart, CmdPause, CmdResume, CmdSkip, CmdReset,
		CmdRestartCycle, CmdGetStatus:
		return c, nil
	default:
		return "", ErrUnknownCommand
	}
}

// Status is the snapshot published on the status channel. The field
// names form the JSON contract with the display widget.
type Status struct {
	State              Phase  `json:"state"`
	TimeRemaining      int    `json:"time_remaining"`
	PomodorosCompleted int    `json:"pomodoros_completed"`
	TotalPomodoros     int    `json:"total_pomodoros_for_long_break"`
	Message            string `json:"message"`
}

// Record is one finished phase as persisted in the session log. Records
// are written exactly once when a phase ends and never updated.
type Record struct {
	ID        int64
	StartTime int64 // epoch seconds
	EndTime   int64 // epoch seconds
	Type      Phase
	// Completed is true only if the phase ran down naturally or was
	// explicitly skipped; false if it was reset or the daemon died
	// mid-phase.
	Completed bool
	// DurationActual is the number of seconds actually spent counting
	// down, which excludes paused time and differs from the configured
	// duration for skipped and interrupted phases.
	DurationActual int
	// PomodoroCount is the cycle counter as it stood before this
	// phase's completion was applied.
	PomodoroCount int
}
