// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rtfb/qemu-launcher/internal/duration"
	"github.com/rtfb/qemu-launcher/internal/qemu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createFile(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestParseArgs(t *testing.T) {
	t.Chdir(t.TempDir())
	createFile(t, "out/user_sifive_u")
	createFile(t, "out/test_os_virt32")
	require.NoError(t, os.Mkdir("out/dir", 0o755))

	tests := []struct {
		name          string
		args          []string
		expectedFlags *flags
		expectedErr   error
	}{
		{
			name: "help",
			args: []string{
				"-help",
			},
			expectedErr: ErrHelp,
		},
		{
			name: "defaults",
			expectedFlags: &flags{
				Binary: "out/user_sifive_u",
				Image:  "riscv-hobby-os-qemu",
				OutDir: "out",
			},
		},
		{
			name: "version without binary",
			args: []string{
				"-version",
				"-binary=out/missing",
			},
			expectedFlags: &flags{
				Binary:  "out/missing",
				Image:   "riscv-hobby-os-qemu",
				OutDir:  "out",
				Version: true,
			},
		},
		{
			name: "all flags",
			args: []string{
				"-binary", "out/test_os_virt32",
				"-timeout=1h 30m",
				"-qemu=/usr/bin/qemu-system-riscv32",
				"-machine", "virt",
				"-debug",
				"-bootargs=test-script 2",
				"-image=qemu:9",
				"-outdir=build",
				"-direct",
				"-qemuArg=smp=2",
				"-qemuArg", "device=virtio-rng-device",
				"-verbose",
			},
			expectedFlags: &flags{
				Binary:   "out/test_os_virt32",
				Emulator: "/usr/bin/qemu-system-riscv32",
				Machine:  "virt",
				Debug:    true,
				BootArgs: "test-script 2",
				Timeout:  duration.Duration(90 * time.Minute),
				Image:    "qemu:9",
				OutDir:   "build",
				Direct:   true,
				ExtraArgs: qemuArgList{
					qemu.UniqueArg("smp", "2"),
					qemu.RepeatableArg("device", "virtio-rng-device"),
				},
				Verbose: true,
			},
		},
		{
			name: "later flags win",
			args: []string{
				"-timeout=10m",
				"-timeout=45",
			},
			expectedFlags: &flags{
				Binary:  "out/user_sifive_u",
				Timeout: duration.Duration(45 * time.Second),
				Image:   "riscv-hobby-os-qemu",
				OutDir:  "out",
			},
		},
		{
			name: "invalid timeout",
			args: []string{
				"-timeout=1x",
			},
			expectedErr: &ParseArgsError{},
		},
		{
			name: "empty qemu arg name",
			args: []string{
				"-qemuArg==x",
			},
			expectedErr: &ParseArgsError{},
		},
		{
			name: "missing binary",
			args: []string{
				"-binary=out/missing",
			},
			expectedErr: os.ErrNotExist,
		},
		{
			name: "binary is dir",
			args: []string{
				"-binary=out/dir",
			},
			expectedErr: ErrNotRegularFile,
		},
		{
			name: "positional args",
			args: []string{
				"out/user_sifive_u",
			},
			expectedErr: &ParseArgsError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, err := parseArgs(tt.args, io.Discard)
			require.ErrorIs(t, err, tt.expectedErr)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, &ParseArgsError{})
				return
			}

			assert.Equal(t, tt.expectedFlags, flags)
		})
	}
}

func TestParseArgsUsage(t *testing.T) {
	var output bytes.Buffer

	_, err := parseArgs([]string{"-help"}, &output)
	require.ErrorIs(t, err, ErrHelp)

	assert.Contains(t, output.String(), "Usage of 'qemu-launcher'")
	assert.Contains(t, output.String(), "-timeout")
	assert.Contains(t, output.String(), "QEMU_LAUNCHER_ARGS")
}

func TestParseArgsInvalidValue(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "timeout",
			args:     []string{"-timeout=1hm"},
			expected: duration.ErrInvalidDuration.Error(),
		},
		{
			name:     "qemu arg",
			args:     []string{"-qemuArg=="},
			expected: ErrEmptyArgName.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer

			_, err := parseArgs(tt.args, &output)
			require.ErrorIs(t, err, &ParseArgsError{})

			assert.Contains(t, output.String(), tt.expected)
		})
	}
}

func TestFlags_LogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, (&flags{}).logLevel())
	assert.Equal(t, slog.LevelDebug, (&flags{Verbose: true}).logLevel())
}
