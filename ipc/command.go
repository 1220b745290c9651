package ipc

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/tomatobar/tomatobar/internal/session"
)

// Listener reads commands from the inbound channel, one word per line.
// It is the sole reader of the command FIFO.
type Listener struct {
	path     string
	commands chan session.Command
}

// NewListener creates the command FIFO if necessary.
func NewListener(path string) (*Listener, error) {
	if err := EnsureFIFO(path); err != nil {
		return nil, err
	}

	return &Listener{
		path:     path,
		commands: make(chan session.Command, 16),
	}, nil
}

// Commands returns the channel on which decoded commands are delivered.
func (l *Listener) Commands() <-chan session.Command {
	return l.commands
}

// Listen blocks on the command FIFO and delivers each valid command in
// arrival order. When a writer closes the pipe, the FIFO is reopened
// for the next one; malformed input is logged and discarded. Listen
// never terminates the daemon.
func (l *Listener) Listen(ctx context.Context) {
	for ctx.Err() == nil {
		// blocks until a writer opens the other end
		f, err := os.OpenFile(l.path, os.O_RDONLY, 0)
		if err != nil {
			slog.Error("unable to open command channel",
				"path", l.path,
				"error", err,
			)

			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return
			}

			continue
		}

		scanner := bufio.NewScanner(f)

		for scanner.Scan() {
			word := strings.TrimSpace(scanner.Text())
			if word == "" {
				continue
			}

			cmd, err := session.ParseCommand(word)
			if err != nil {
				slog.Warn("ignoring unknown command", "command", word)
				continue
			}

			slog.Info("received command", "command", cmd)

			select {
			case l.commands <- cmd:
			case <-ctx.Done():
				_ = f.Close()
				return
			}
		}

		if err := scanner.Err(); err != nil {
			slog.Error("error reading command channel", "error", err)
		}

		// EOF: the writer closed its end; reopen for the next writer
		_ = f.Close()
	}
}
