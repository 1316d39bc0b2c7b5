// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"path/filepath"
	"strings"
	"time"
)

// Machine types known to the OS.
const (
	MachineSifiveE = "sifive_e"
	MachineSifiveU = "sifive_u"
	MachineVirt    = "virt"
)

const (
	executable32 = "qemu-system-riscv32"
	executable64 = "qemu-system-riscv64"

	suffix32   = "32"
	suffixU    = "_u"
	suffixVirt = "_virt"
)

// Boot arguments that make the OS run without user interaction.
const (
	BootArgsDryRun     = "dry-run"
	BootArgsTestScript = "test-script"
	BootArgsTinyStack  = "tiny-stack"
)

// LaunchSpec describes a single emulator run as requested by the user.
//
// Everything that [NewCommand] depends on is part of the LaunchSpec, so the
// resulting [Command] is fully determined by it.
type LaunchSpec struct {
	// Path of the OS binary to boot. Its base name determines the defaults
	// for machine type, bitness and interactivity.
	Binary string

	// Emulator is the QEMU binary to run directly. If empty, QEMU is run in a
	// container using Image, unless Direct is set.
	Emulator string

	// Direct runs the QEMU binary matching the binary's bitness without a
	// container.
	Direct bool

	// Machine overrides the QEMU machine type derived from the binary name.
	Machine string

	// Debug starts the emulator halted with the gdb stub listening on
	// localhost:1234.
	Debug bool

	// BootArgs are passed to the kernel.
	BootArgs string

	// ExtraArgs are additional QEMU arguments. They must not collide with the
	// arguments derived from the other fields.
	ExtraArgs []Argument

	// Timeout after which the emulator is stopped. Zero means no timeout.
	Timeout time.Duration

	// Version only queries the emulator version.
	Version bool

	// Image is the container image that provides QEMU.
	Image string

	// ContainerName is the name of the container to run. Optional.
	ContainerName string

	// WorkDir is mounted into the container at [ContainerWorkDir].
	WorkDir string

	// Terminal must be set if the launcher's stdin is a terminal. A
	// pseudo-TTY is only allocated for interactive container runs if set.
	Terminal bool

	// LocalBuildDir is the bin directory of a local QEMU build. If set, it is
	// used for the emulator if the emulator is given without path.
	LocalBuildDir string
}

func (s *LaunchSpec) binaryName() string {
	return filepath.Base(s.Binary)
}

// Is32Bit returns true if the binary is built for a 32-bit target.
func (s *LaunchSpec) Is32Bit() bool {
	return strings.HasSuffix(s.binaryName(), suffix32)
}

// ResolvedMachine returns the machine type to use. An explicitly given
// machine takes precedence over the one derived from the binary name.
func (s *LaunchSpec) ResolvedMachine() string {
	if s.Machine != "" {
		return s.Machine
	}

	name := strings.TrimSuffix(s.binaryName(), suffix32)

	switch {
	case strings.HasSuffix(name, suffixVirt):
		return MachineVirt
	case strings.HasSuffix(name, suffixU):
		return MachineSifiveU
	default:
		return MachineSifiveE
	}
}

// Interactive returns false if the run is not supposed to take user input.
// This is the case for test binaries and for boot arguments that make the OS
// run a script or nothing at all.
func (s *LaunchSpec) Interactive() bool {
	if strings.Contains(s.binaryName(), "test") {
		return false
	}

	switch {
	case s.BootArgs == BootArgsDryRun,
		strings.HasPrefix(s.BootArgs, BootArgsTestScript),
		strings.HasPrefix(s.BootArgs, BootArgsTinyStack):
		return false
	default:
		return true
	}
}

// Containerized returns true if QEMU is run in a container.
func (s *LaunchSpec) Containerized() bool {
	return s.Emulator == "" && !s.Direct
}

// emulatorExecutable returns the QEMU binary for direct runs.
func (s *LaunchSpec) emulatorExecutable() string {
	executable := s.Emulator
	if executable == "" {
		executable = s.DefaultEmulator()
	}

	// Only plain names are looked up in the local build dir. Paths are used
	// as given.
	if s.LocalBuildDir != "" && !strings.ContainsRune(executable, filepath.Separator) {
		return filepath.Join(s.LocalBuildDir, executable)
	}

	return executable
}

// DefaultEmulator returns the QEMU binary name matching the binary's bitness.
func (s *LaunchSpec) DefaultEmulator() string {
	if s.Is32Bit() {
		return executable32
	}

	return executable64
}
