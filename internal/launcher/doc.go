// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package launcher runs and supervises a single emulator process.
//
// The emulator writes its combined output into a log file. The log file is
// read back continuously and echoed to the terminal while the output is
// watched for the quit sequence. The run ends when the emulator exits, the
// quit sequence is seen, the timeout expires or the context is cancelled.
// Debugger artifacts are removed in any case.
package launcher
