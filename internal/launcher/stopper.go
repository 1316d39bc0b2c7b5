// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"
)

// Stopper requests the emulator process to stop. It must not wait for the
// process to exit.
type Stopper interface {
	Stop(ctx context.Context, process *os.Process) error
}

// ContainerKiller kills running containers of an image.
type ContainerKiller interface {
	KillByAncestor(ctx context.Context, image string) (int, error)
}

// SignalStopper stops the process by sending it [unix.SIGTERM].
type SignalStopper struct{}

// Stop implements [Stopper].
func (SignalStopper) Stop(_ context.Context, process *os.Process) error {
	return signal(process, unix.SIGTERM)
}

// ContainerStopper stops a containerized emulator. The emulator runs in a
// container, so signaling the runtime client is not sufficient. Matching
// containers are killed first, then the client is signaled as well.
type ContainerStopper struct {
	Killer ContainerKiller
	Image  string
}

// Stop implements [Stopper].
func (s ContainerStopper) Stop(ctx context.Context, process *os.Process) error {
	var killErr error

	killed, err := s.Killer.KillByAncestor(ctx, s.Image)
	if err != nil {
		killErr = fmt.Errorf("kill containers: %w", err)
	} else {
		slog.Debug("Killed containers",
			slog.String("image", s.Image),
			slog.Int("count", killed),
		)
	}

	return errors.Join(killErr, signal(process, unix.SIGTERM))
}

// signal sends the signal to the process. A process that is already done is
// not an error.
func signal(process *os.Process, sig os.Signal) error {
	err := process.Signal(sig)
	if err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("signal %s: %w", sig, err)
	}

	return nil
}
