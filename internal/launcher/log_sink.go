// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	logFilePrefix = "test-run-"
	logFileSuffix = ".log"

	versionLogFile = "qemu-version.log"
)

// LogFileName returns the path of the log file for the given binary in the
// given output directory.
func LogFileName(outDir, binary string) string {
	return filepath.Join(outDir, logFilePrefix+filepath.Base(binary)+logFileSuffix)
}

// VersionLogFileName returns the path of the log file for emulator version
// queries. It never collides with a [LogFileName] of a binary.
func VersionLogFileName(outDir string) string {
	return filepath.Join(outDir, versionLogFile)
}

// logSink is the log file, opened once for the emulator to write into and
// once for reading it back from the start.
type logSink struct {
	writer *os.File
	reader *os.File
}

func openLogSink(path string) (*logSink, error) {
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	writer, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log for writing: %w", err)
	}

	reader, err := os.Open(path)
	if err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("open log for reading: %w", err)
	}

	return &logSink{writer: writer, reader: reader}, nil
}

func (s *logSink) Close() error {
	return errors.Join(s.writer.Close(), s.reader.Close())
}
