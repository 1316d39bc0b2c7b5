// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package exitcode defines the exit codes of the launcher and how they are
// derived from the emulator process and from errors.
//
// Codes for launcher decisions follow the conventions of timeout(1) and the
// shell: 124 for timeouts, 125 for failures of the launcher itself and
// 128+n for termination by signal n.
package exitcode
