// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launcher

// State is the lifecycle state of a run.
type State int

// States a run passes through. A run ends in [StateTerminated]. The states
// between [StateRunning] and [StateCleaningUp] are outcomes, of which exactly
// one is reached.
const (
	StateConstructing State = iota
	StateLaunched
	StateRunning
	StateTimedOut
	StateQuitDetected
	StateInterrupted
	StateNaturallyExited
	StateLaunchFailed
	StateCleaningUp
	StateTerminated
)

var stateNames = [...]string{
	StateConstructing:    "constructing",
	StateLaunched:        "launched",
	StateRunning:         "running",
	StateTimedOut:        "timed out",
	StateQuitDetected:    "quit detected",
	StateInterrupted:     "interrupted",
	StateNaturallyExited: "exited",
	StateLaunchFailed:    "launch failed",
	StateCleaningUp:      "cleaning up",
	StateTerminated:      "terminated",
}

// String implements [fmt.Stringer].
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}

	return stateNames[s]
}
