// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import "github.com/stretchr/testify/assert"

// ArgumentValueAssertionFunc returns an [assert.ComparisonAssertionFunc] that
// can be used to assert the value of the [Argument] with the given name in a
// [Command]'s EmulatorArgs.
func ArgumentValueAssertionFunc(
	name string,
	assertion assert.ComparisonAssertionFunc,
) assert.ComparisonAssertionFunc {
	return func(t assert.TestingT, cmd, expected any, msgAndArgs ...any) bool {
		command, ok := cmd.(*Command)
		if !assert.True(t, ok, "first argument should be *Command") {
			return false
		}

		for _, arg := range command.EmulatorArgs {
			if name == arg.name {
				return assertion(t, arg.value, expected, msgAndArgs...)
			}
		}

		return assert.Fail(t, "Argument not found: "+name)
	}
}
