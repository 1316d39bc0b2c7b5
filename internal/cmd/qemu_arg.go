// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"strings"

	"github.com/rtfb/qemu-launcher/internal/qemu"
)

// qemuArgList collects additional QEMU arguments given as "name[=value]".
type qemuArgList []qemu.Argument

func (l *qemuArgList) String() string {
	if l == nil {
		return ""
	}

	parts := make([]string, 0, len(*l))
	for _, arg := range *l {
		parts = append(parts, arg.String())
	}

	return strings.Join(parts, " ")
}

// Set adds the argument. An empty value clears the list.
func (l *qemuArgList) Set(s string) error {
	if s == "" {
		*l = nil
		return nil
	}

	arg := qemu.ParseArgument(s)
	if arg.Name() == "" {
		return fmt.Errorf("%w: %s", ErrEmptyArgName, s)
	}

	*l = append(*l, arg)

	return nil
}
