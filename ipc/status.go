package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"golang.org/x/sys/unix"

	"github.com/tomatobar/tomatobar/internal/session"
)

// Publisher serializes timer snapshots to the outbound channel. Only
// the latest snapshot matters: a publish that cannot be delivered is
// dropped, never queued, so the state machine is never blocked by a
// slow or absent reader.
type Publisher struct {
	path    string
	updates chan session.Status
}

// NewPublisher creates the status FIFO if necessary.
func NewPublisher(path string) (*Publisher, error) {
	if err := EnsureFIFO(path); err != nil {
		return nil, err
	}

	return &Publisher{
		path:    path,
		updates: make(chan session.Status, 1),
	}, nil
}

// Publish hands off a snapshot for delivery, replacing any stale one
// still pending. It never blocks.
func (p *Publisher) Publish(s session.Status) {
	for {
		select {
		case p.updates <- s:
			return
		default:
			// drop the stale snapshot and retry
			select {
			case <-p.updates:
			default:
			}
		}
	}
}

// Run delivers published snapshots until ctx is cancelled.
func (p *Publisher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case s := <-p.updates:
			p.write(s)
		}
	}
}

func (p *Publisher) write(s session.Status) {
	b, err := json.Marshal(s)
	if err != nil {
		slog.Error("unable to marshal status", "error", err)
		return
	}

	f, err := openWriteNonblock(p.path)
	if err != nil {
		// ENXIO means no reader is attached; skip this publish
		if !errors.Is(err, unix.ENXIO) {
			slog.Error("unable to open status channel",
				"path", p.path,
				"error", err,
			)
		}

		return
	}

	defer func() {
		_ = f.Close()
	}()

	b = append(b, '\n')

	if _, err := f.Write(b); err != nil {
		// a full pipe means the reader stopped draining; skip
		if !errors.Is(err, unix.EAGAIN) {
			slog.Error("unable to write status", "error", err)
		}
	}
}
