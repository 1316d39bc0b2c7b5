// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package gdb

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	// SessionFile is the name of the file that holds the binary path.
	SessionFile = ".debug-session"

	// InitFile is the name of the generated gdb init script.
	InitFile = ".gdbinit"

	// RemoteTarget is the address of the emulator's gdb stub.
	RemoteTarget = "localhost:1234"

	// KernelVirtualBase is the address the kernel is mapped to on machines
	// with MMU. Symbols are loaded with this offset in addition to the
	// physical load address.
	KernelVirtualBase = 0xffffffcf00000000

	fileMode = 0o644
)

// Session describes a debug session of a single binary.
type Session struct {
	// Binary is the path of the binary as passed to the emulator.
	Binary string

	// Is32Bit must be set for 32-bit binaries.
	Is32Bit bool

	// Multicore must be set if the machine has a monitor hart that shows up
	// as second process in the gdb stub.
	Multicore bool

	// MMU must be set if the binary runs with virtual memory, so its symbols
	// are loaded at [KernelVirtualBase].
	MMU bool

	// Dir is the directory the files are written to. Defaults to the current
	// working directory.
	Dir string
}

// Script returns the gdb init script for the session.
func (s *Session) Script() string {
	var script strings.Builder

	line := func(format string, a ...any) {
		fmt.Fprintf(&script, format+"\n", a...)
	}

	if s.Is32Bit {
		line("set arch riscv:rv32")
	}

	line("target extended-remote %s", RemoteTarget)
	line("set disassemble-next-line on")

	// The monitor core (hart 0) is the second process.
	if s.Multicore {
		line("add-inferior")
		line("inferior 2")
		line("attach 2")
		line("set schedule-multiple")
	}

	if s.MMU {
		line("add-symbol-file %s -o %#x", s.Binary, uint64(KernelVirtualBase))
	}

	// Thread 1 of inferior 1 is the first application hart.
	if s.Multicore {
		line("thread 1.1")
	}

	return script.String()
}

// Write writes the session file and the gdb init script.
//
// If writing the init script fails, the already written session file is
// removed again.
func (s *Session) Write() error {
	sessionPath := s.path(SessionFile)

	err := os.WriteFile(sessionPath, []byte(s.Binary), fileMode)
	if err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	err = os.WriteFile(s.path(InitFile), []byte(s.Script()), fileMode)
	if err != nil {
		_ = os.Remove(sessionPath)
		return fmt.Errorf("write init file: %w", err)
	}

	slog.Debug("Wrote gdb session files",
		slog.String("dir", s.dir()),
		slog.String("binary", s.Binary))

	return nil
}

// Cleanup removes the files written by [Session.Write] from the given
// directory.
//
// Files that do not exist are ignored, so it is safe to call it multiple
// times or without a prior write.
func Cleanup(dir string) error {
	var errs []error

	for _, name := range []string{SessionFile, InitFile} {
		err := os.Remove(filepath.Join(dir, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove %s: %w", name, err))
		}
	}

	return errors.Join(errs...)
}

// Cleanup removes the files of this session. See [Cleanup].
func (s *Session) Cleanup() error {
	return Cleanup(s.dir())
}

func (s *Session) dir() string {
	if s.Dir == "" {
		return "."
	}

	return s.Dir
}

func (s *Session) path(name string) string {
	return filepath.Join(s.dir(), name)
}
