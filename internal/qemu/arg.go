// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"fmt"
	"slices"
	"strings"
)

// Names of the QEMU options the launcher derives from a [LaunchSpec]. User
// supplied arguments must not use them.
const (
	OptNoGraphic = "nographic"
	OptMachine   = "machine"
	OptBIOS      = "bios"
	OptKernel    = "kernel"
	OptAppend    = "append"
	OptHalt      = "S"
	OptGDBStub   = "s"
	OptVersion   = "version"
)

// repeatableNames are QEMU options that may be given multiple times.
var repeatableNames = []string{
	"chardev",
	"device",
	"drive",
	"global",
	"netdev",
	"object",
	"serial",
}

// Argument is a single QEMU option like "-machine virt" or "-nographic".
//
// Most options are accepted only once and so collide by name. Repeatable
// options like "-device" collide only if given twice with the same value.
type Argument struct {
	name       string
	value      string
	repeatable bool
}

// UniqueArg returns an [Argument] that may be given only once. Multiple
// values are joined as QEMU's comma separated sub-options.
func UniqueArg(name string, value ...string) Argument {
	return Argument{
		name:  name,
		value: strings.Join(value, ","),
	}
}

// RepeatableArg returns an [Argument] that may be given multiple times with
// different values.
func RepeatableArg(name string, value ...string) Argument {
	return Argument{
		name:       name,
		value:      strings.Join(value, ","),
		repeatable: true,
	}
}

// ParseArgument parses an argument given as "name" or "name=value" on the
// launcher's command line. A leading "-" is ignored.
func ParseArgument(s string) Argument {
	name, value, _ := strings.Cut(strings.TrimLeft(s, "-"), "=")

	if slices.Contains(repeatableNames, name) {
		return RepeatableArg(name, value)
	}

	return UniqueArg(name, value)
}

// String returns the argument as it appears on the QEMU command line.
func (a Argument) String() string {
	return strings.Join(a.fields(), " ")
}

// Name returns the option name without leading "-".
func (a Argument) Name() string {
	return a.name
}

// Value returns the option value. Empty for flags like "-nographic".
func (a Argument) Value() string {
	return a.value
}

// Repeatable returns true if the option may be given multiple times.
func (a Argument) Repeatable() bool {
	return a.repeatable
}

// CollidesWith returns true if QEMU would not accept both arguments in the
// same command line.
func (a Argument) CollidesWith(other Argument) bool {
	if a.name != other.name {
		return false
	}

	if a.repeatable || other.repeatable {
		return a.value == other.value
	}

	return true
}

func (a Argument) fields() []string {
	if a.value == "" {
		return []string{"-" + a.name}
	}

	return []string{"-" + a.name, a.value}
}

// BuildArgumentStrings returns the command line fields for the given
// [Argument]s in order.
//
// It fails with [ErrArgumentCollision] naming both arguments, if any two of
// them collide. This catches user supplied arguments overriding derived ones.
func BuildArgumentStrings(args []Argument) ([]string, error) {
	fields := make([]string, 0, 2*len(args))

	for idx, arg := range args {
		if i := slices.IndexFunc(args[:idx], arg.CollidesWith); i != -1 {
			return nil, fmt.Errorf("%w: %s, %s", ErrArgumentCollision, args[i], arg)
		}

		fields = append(fields, arg.fields()...)
	}

	return fields, nil
}
