// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launcher

import "errors"

// ErrNoCommand is returned if no command to run is given.
var ErrNoCommand = errors.New("no command given")

// LaunchError wraps any error that prevented the emulator from running.
type LaunchError struct {
	Err error
}

// Error implements the [error] interface.
func (e *LaunchError) Error() string {
	return "launch: " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*LaunchError) Is(other error) bool {
	_, ok := other.(*LaunchError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *LaunchError) Unwrap() error {
	return e.Err
}
