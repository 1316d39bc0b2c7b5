// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package duration parses compact time deltas like "1h30m" or "2d 3h" as used
// for the launcher's timeout flag.
package duration
