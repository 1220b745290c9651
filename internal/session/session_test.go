package session

import (
	"errors"
	"testing"
)

func TestParseCommand(t *testing.T) {
	valid := []string{
		"start",
		"pause",
		"resume",
		"skip",
		"reset",
		"restart_cycle",
		"get_status",
	}

	for _, word := range valid {
		cmd, err := ParseCommand(word)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", word, err)
		}

		if string(cmd) != word {
			t.Fatalf("expected %q, got %q", word, cmd)
		}
	}

	for _, word := range []string{"", "START", "stop", "start "} {
		_, err := ParseCommand(word)
		if !errors.Is(err, ErrUnknownCommand) {
			t.Fatalf("%q: expected unknown command error, got %v", word, err)
		}
	}
}

func TestPhaseActive(t *testing.T) {
	active := []Phase{Work, ShortBreak, LongBreak}
	for _, p := range active {
		if !p.Active() {
			t.Fatalf("expected %s to be active", p)
		}
	}

	inactive := []Phase{Idle, Paused}
	for _, p := range inactive {
		if p.Active() {
			t.Fatalf("expected %s to be inactive", p)
		}
	}
}
