// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"io"
	"log"
)

const logPrefix = "QEMU-LAUNCHER: "

// setupLogging configures the standard logger the default [slog.Logger]
// writes through.
func setupLogging(writer io.Writer) {
	log.SetOutput(writer)
	log.SetFlags(log.Lmicroseconds)
	log.SetPrefix(logPrefix)
}
