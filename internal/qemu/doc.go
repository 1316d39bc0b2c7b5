// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package qemu composes the QEMU command for running a RISC-V OS binary.
//
// The machine type, the bitness and whether the run is interactive are
// derived from the binary name, following the naming convention of the build:
// binaries for 32-bit targets end in "32", binaries for the "sifive_u" machine
// end in "_u" and binaries for the "virt" machine end in "_virt".
//
// By default, QEMU is run inside a container, so no local QEMU installation is
// required. With an explicit emulator given, QEMU is run directly.
package qemu
