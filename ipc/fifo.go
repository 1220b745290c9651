// Package ipc implements the daemon's two named-pipe channels: the
// inbound command channel and the outbound status channel.
package ipc

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

var errNotAFIFO = errors.New("path exists but is not a named pipe")

// EnsureFIFO creates a named pipe at the given path if it does not
// exist already.
func EnsureFIFO(path string) error {
	fi, err := os.Stat(path)
	if err == nil {
		if fi.Mode()&os.ModeNamedPipe == 0 {
			return fmt.Errorf("%s: %w", path, errNotAFIFO)
		}

		return nil
	}

	if !os.IsNotExist(err) {
		return err
	}

	return unix.Mkfifo(path, 0o600)
}

// openWriteNonblock opens the write end of a FIFO without blocking.
// If no reader is attached the open fails with ENXIO.
func openWriteNonblock(path string) (*os.File, error) {
	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, err
	}

	return os.NewFile(uintptr(fd), path), nil
}
