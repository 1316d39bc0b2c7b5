// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"time"

	"github.com/rtfb/qemu-launcher/internal/exitcode"
	"github.com/rtfb/qemu-launcher/internal/gdb"
	"github.com/rtfb/qemu-launcher/internal/qemu"
	"github.com/rtfb/qemu-launcher/internal/sentinel"
	"github.com/rtfb/qemu-launcher/internal/tee"
	"golang.org/x/sys/unix"
)

const (
	// DefaultPollInterval is the maximum time between two log drains.
	DefaultPollInterval = 500 * time.Microsecond

	// DefaultGracePeriod is the time a stopped emulator has to exit before it
	// is killed.
	DefaultGracePeriod = 5 * time.Second
)

// Config is the configuration of a single run.
type Config struct {
	// Command is the emulator command to run.
	Command *qemu.Command

	// LogPath is the file the emulator output is written to.
	LogPath string

	// Stdin is passed to the emulator. It should be an [*os.File], so a
	// container client can forward the terminal. If nil, the emulator gets a
	// pipe that is never written to, so it does not compete with the
	// launcher for input.
	Stdin io.Reader

	// Output receives the emulator output as it is written to the log. If
	// nil, output is only written to the log.
	Output io.Writer

	// Timeout after which the emulator is stopped. Zero disables the timeout.
	Timeout time.Duration

	// Debug is the debugger session to set up for the run. Nil if the run
	// is not a debug run.
	Debug *gdb.Session

	// Stopper stops the emulator. If nil, a [SignalStopper] is used for
	// direct runs and a [ContainerStopper] using Killer for containerized
	// runs.
	Stopper Stopper

	// Killer kills containers for the default [ContainerStopper].
	Killer ContainerKiller

	// PollInterval overrides [DefaultPollInterval] if set.
	PollInterval time.Duration

	// GracePeriod overrides [DefaultGracePeriod] if set.
	GracePeriod time.Duration
}

func (c *Config) setDefaults() {
	if c.Output == nil {
		c.Output = io.Discard
	}

	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}

	if c.GracePeriod <= 0 {
		c.GracePeriod = DefaultGracePeriod
	}

	if c.Stopper != nil {
		return
	}

	if c.Command.Containerized && c.Killer != nil {
		c.Stopper = ContainerStopper{Killer: c.Killer, Image: c.Command.Image}
	} else {
		c.Stopper = SignalStopper{}
	}
}

// Result is the outcome of a run.
type Result struct {
	// Outcome is the state the run ended in before cleaning up.
	Outcome State

	// ExitCode is the exit code for the launcher.
	ExitCode int
}

// Run runs the emulator and supervises it until it exits or is stopped.
//
// Cleanup always runs, including when the emulator could not be launched.
// Errors that prevented the launch are returned as [*LaunchError].
func Run(ctx context.Context, cfg Config) (Result, error) {
	if cfg.Command == nil {
		return Result{
			Outcome:  StateLaunchFailed,
			ExitCode: exitcode.LaunchFailure,
		}, &LaunchError{Err: ErrNoCommand}
	}

	cfg.setDefaults()

	ctrl := &controller{cfg: cfg}

	err := ctrl.launch()
	if err != nil {
		ctrl.setState(StateLaunchFailed)
		err = &LaunchError{Err: err}
	} else {
		ctrl.supervise(ctx)
	}

	outcome := ctrl.state

	ctrl.cleanUp()

	return Result{
		Outcome:  outcome,
		ExitCode: ctrl.exitCode(outcome),
	}, err
}

type controller struct {
	cfg   Config
	state State

	sink *logSink
	tee  *tee.Tee
	cmd  *exec.Cmd

	exited    chan error
	hasExited bool
	stopped   bool
}

func (c *controller) setState(state State) {
	slog.Debug("State change",
		slog.String("from", c.state.String()),
		slog.String("to", state.String()),
	)

	c.state = state
}

func (c *controller) launch() error {
	sink, err := openLogSink(c.cfg.LogPath)
	if err != nil {
		return err
	}

	c.sink = sink
	c.tee = tee.New(sink.reader, c.cfg.Output, &sentinel.Detector{})

	if c.cfg.Debug != nil {
		err := c.cfg.Debug.Write()
		if err != nil {
			return fmt.Errorf("write debug session: %w", err)
		}

		slog.Info("Waiting for debugger",
			slog.String("target", gdb.RemoteTarget),
			slog.String("init", gdb.InitFile),
		)
	}

	// The context is not bound to the command, as cancellation must go
	// through the stopper.
	cmd := exec.Command(c.cfg.Command.Executable, c.cfg.Command.Args...) //nolint:gosec,noctx
	cmd.Stdout = sink.writer
	cmd.Stderr = sink.writer

	if c.cfg.Stdin != nil {
		cmd.Stdin = c.cfg.Stdin
	} else if _, err := cmd.StdinPipe(); err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}

	slog.Debug("QEMU command", slog.String("command", c.cfg.Command.String()))

	err = cmd.Start()
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}

	c.cmd = cmd
	c.exited = make(chan error, 1)

	go func() {
		c.exited <- cmd.Wait()
	}()

	c.setState(StateLaunched)

	return nil
}

func (c *controller) supervise(ctx context.Context) {
	c.setState(StateRunning)

	var deadline time.Time
	if c.cfg.Timeout > 0 {
		deadline = time.Now().Add(c.cfg.Timeout)
	}

	for {
		detected := c.drain()

		switch {
		case ctx.Err() != nil:
			c.stop(ctx, StateInterrupted, "terminating due to C-c")
		case !deadline.IsZero() && !time.Now().Before(deadline):
			c.stop(ctx, StateTimedOut, "killing qemu due to timeout")
		case detected:
			c.stop(ctx, StateQuitDetected, "quit sequence detected")
		case c.hasExited:
			c.setState(StateNaturallyExited)
		}

		if c.state != StateRunning {
			return
		}

		select {
		case <-ctx.Done():
		case err := <-c.exited:
			c.markExited(err)
		case <-time.After(c.cfg.PollInterval):
		}
	}
}

// drain echoes all new output and returns true if the quit sequence was
// found.
func (c *controller) drain() bool {
	detected, err := c.tee.Drain()
	if err != nil {
		slog.Warn("Failed to echo output", slog.Any("error", err))
	}

	return detected
}

func (c *controller) markExited(err error) {
	c.hasExited = true

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		slog.Warn("Failed to wait for emulator", slog.Any("error", err))
	}
}

// stop transitions into the given outcome state and stops the emulator. The
// stopper is invoked at most once per run.
func (c *controller) stop(ctx context.Context, state State, notice string) {
	c.setState(state)
	slog.Info(notice)

	if c.stopped {
		return
	}

	c.stopped = true

	if !c.hasExited {
		stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.GracePeriod)
		defer cancel()

		err := c.cfg.Stopper.Stop(stopCtx, c.cmd.Process)
		if err != nil {
			slog.Warn("Failed to stop emulator", slog.Any("error", err))
		}
	}

	c.awaitExit()
}

// awaitExit waits for the emulator to exit and kills it if it does not exit
// within the grace period.
func (c *controller) awaitExit() {
	if c.hasExited {
		return
	}

	select {
	case err := <-c.exited:
		c.markExited(err)
		return
	case <-time.After(c.cfg.GracePeriod):
	}

	slog.Warn("Emulator did not stop in time, killing it",
		slog.Duration("grace_period", c.cfg.GracePeriod))

	err := signal(c.cmd.Process, unix.SIGKILL)
	if err != nil {
		slog.Warn("Failed to kill emulator", slog.Any("error", err))
	}

	c.markExited(<-c.exited)
}

func (c *controller) cleanUp() {
	c.setState(StateCleaningUp)

	if c.tee != nil {
		// Output written after the last drain. The run is ending anyway, so
		// a late quit sequence does not matter anymore.
		_ = c.drain()
	}

	if c.sink != nil {
		err := c.sink.Close()
		if err != nil {
			slog.Warn("Failed to close log", slog.Any("error", err))
		}
	}

	err := c.cleanUpDebug()
	if err != nil {
		slog.Error("Failed to remove debug session",
			slog.Any("error", err))
	}

	c.setState(StateTerminated)
}

func (c *controller) cleanUpDebug() error {
	if c.cfg.Debug == nil {
		return nil
	}

	return c.cfg.Debug.Cleanup() //nolint:wrapcheck
}

func (c *controller) exitCode(outcome State) int {
	switch outcome {
	case StateNaturallyExited:
		return exitcode.OfProcess(c.cmd.ProcessState)
	case StateQuitDetected:
		return exitcode.Success
	case StateTimedOut:
		return exitcode.Timeout
	case StateInterrupted:
		return exitcode.Interrupted
	default:
		return exitcode.LaunchFailure
	}
}
