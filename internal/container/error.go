// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package container

import "errors"

// ErrNoImage is returned if no image to match containers against is given.
var ErrNoImage = errors.New("no image given")
