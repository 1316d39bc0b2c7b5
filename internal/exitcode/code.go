// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package exitcode

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

const (
	// Success is returned if the run ended as intended, including a stop on
	// the quit sequence.
	Success = 0

	// Timeout is returned if the emulator was stopped due to the timeout.
	Timeout = 124

	// LaunchFailure is returned if the launcher failed before or while
	// starting the emulator.
	LaunchFailure = 125

	// signalBase is added to the signal number for signal terminations.
	signalBase = 128
)

// Interrupted is returned if the run was interrupted by the user.
const Interrupted = signalBase + int(unix.SIGINT)

// Signaled returns the exit code for a termination by the given signal.
func Signaled(sig syscall.Signal) int {
	return signalBase + int(sig)
}

// OfProcess returns the exit code of the exited process. If the process was
// terminated by a signal, the shell convention of 128+n is used.
func OfProcess(state *os.ProcessState) int {
	if state == nil {
		return LaunchFailure
	}

	if code := state.ExitCode(); code >= 0 {
		return code
	}

	if status, ok := state.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return Signaled(status.Signal())
	}

	return LaunchFailure
}
