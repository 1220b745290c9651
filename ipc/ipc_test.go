package ipc

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tomatobar/tomatobar/internal/session"
)

func TestEnsureFIFO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands")

	if err := EnsureFIFO(path); err != nil {
		t.Fatal(err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	if fi.Mode()&os.ModeNamedPipe == 0 {
		t.Fatalf("expected a named pipe, got mode %s", fi.Mode())
	}

	// creating again is a no-op
	if err := EnsureFIFO(path); err != nil {
		t.Fatal(err)
	}
}

func TestEnsureFIFORejectsRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands")

	if err := os.WriteFile(path, []byte("not a pipe"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := EnsureFIFO(path); err == nil {
		t.Fatal("expected an error for a regular file")
	}
}

func TestListenerDecodesCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands")

	listener, err := NewListener(path)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go listener.Listen(ctx)

	// opening the write end succeeds once the listener holds the read
	// end open
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.WriteString("start\n\nbogus\n  skip  \n")
	if err != nil {
		t.Fatal(err)
	}

	_ = f.Close()

	var got []session.Command

	timeout := time.After(5 * time.Second)

	for len(got) < 2 {
		select {
		case cmd := <-listener.Commands():
			got = append(got, cmd)
		case <-timeout:
			t.Fatalf("timed out waiting for commands, got %v", got)
		}
	}

	want := []session.Command{session.CmdStart, session.CmdSkip}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected commands (-want +got):\n%s", diff)
	}
}

func TestPublisherKeepsLatestSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status")

	publisher, err := NewPublisher(path)
	if err != nil {
		t.Fatal(err)
	}

	// without a running delivery loop, older snapshots are replaced
	// rather than queued
	publisher.Publish(session.Status{State: session.Work, TimeRemaining: 10})
	publisher.Publish(session.Status{State: session.Work, TimeRemaining: 9})
	publisher.Publish(session.Status{State: session.Work, TimeRemaining: 8})

	select {
	case s := <-publisher.updates:
		if s.TimeRemaining != 8 {
			t.Fatalf("expected the latest snapshot, got %+v", s)
		}
	default:
		t.Fatal("expected a pending snapshot")
	}
}

func TestPublisherSkipsWhenNoReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status")

	publisher, err := NewPublisher(path)
	if err != nil {
		t.Fatal(err)
	}

	// no reader is attached to the pipe; the write is dropped rather
	// than blocking
	done := make(chan struct{})

	go func() {
		publisher.write(session.Status{State: session.Idle, Message: "Ready"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("status write blocked with no reader attached")
	}
}
