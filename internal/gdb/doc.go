// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package gdb writes the files needed to attach gdb to an emulator that was
// started halted with its gdb stub enabled.
//
// Two files are written into the working directory: [SessionFile] contains
// the path of the binary running in the emulator, [InitFile] is a gdb init
// script that connects to the gdb stub and loads the symbols. The init script
// is based on https://wiki.qemu.org/Documentation/Platforms/RISCV#Attaching_GDB.
package gdb
