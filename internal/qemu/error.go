// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import "errors"

var (
	// ErrArgumentCollision is returned if two [Argument]s collide.
	ErrArgumentCollision = errors.New("colliding args")

	// ErrNoBinary is returned if no binary to run is given.
	ErrNoBinary = errors.New("no binary given")

	// ErrNoImage is returned if a containerized run has no image set.
	ErrNoImage = errors.New("no container image given")

	// ErrNoWorkDir is returned if a containerized run has no work dir set.
	ErrNoWorkDir = errors.New("no work dir given")
)
