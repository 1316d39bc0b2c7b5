// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package duration

import "errors"

// ErrInvalidDuration is returned if a time delta string does not match the
// grammar accepted by [Parse].
var ErrInvalidDuration = errors.New("invalid time delta")
