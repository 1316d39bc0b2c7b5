// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package exitcode

import (
	"errors"
	"fmt"
)

// Error is a non-zero exit code of a run that is returned as error, so
// callers can distinguish it from failures of the launcher itself.
type Error int

func (e Error) Error() string {
	return fmt.Sprintf("exit code %d", int(e))
}

// Is matches any other [Error], regardless of the code.
func (Error) Is(other error) bool {
	_, ok := other.(Error)
	return ok
}

// Code returns the exit code as basic int type.
func (e Error) Code() int {
	return int(e)
}

// From returns the exit code for the given error and if the error was an
// [Error].
//
// If the error is nil, the exit code is [Success]. If the error is an [Error]
// the exit code is the return value of [Error.Code]. Otherwise the exit code
// is [LaunchFailure].
func From(err error) (int, bool) {
	if err == nil {
		return Success, false
	}

	var exitErr Error
	if errors.As(err, &exitErr) {
		return exitErr.Code(), true
	}

	return LaunchFailure, false
}
