package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/tomatobar/tomatobar/internal/session"
)

var errDaemonNotRunning = errors.New(
	"the tomatobar daemon does not appear to be running",
)

// Send writes one command word to the daemon's command channel. It is
// the control path used by the status-bar widget and the CLI.
func Send(path string, cmd session.Command) error {
	f, err := openWriteNonblock(path)
	if err != nil {
		if errors.Is(err, unix.ENXIO) || os.IsNotExist(err) {
			return errDaemonNotRunning
		}

		return err
	}

	defer func() {
		_ = f.Close()
	}()

	_, err = fmt.Fprintf(f, "%s\n", cmd)

	return err
}

// ReadStatus blocks until the daemon publishes its next snapshot and
// returns it.
func ReadStatus(path string) (*session.Status, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errDaemonNotRunning
		}

		return nil, err
	}

	if fi.Mode()&os.ModeNamedPipe == 0 {
		return nil, fmt.Errorf("%s: %w", path, errNotAFIFO)
	}

	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = f.Close()
	}()

	line, err := bufio.NewReader(f).ReadBytes('\n')
	if err != nil {
		return nil, err
	}

	var s session.Status

	if err := json.Unmarshal(line, &s); err != nil {
		return nil, err
	}

	return &s, nil
}
