// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rtfb/qemu-launcher/internal/duration"
)

const (
	name = "qemu-launcher"

	binaryDefault = "out/user_sifive_u"
	imageDefault  = "riscv-hobby-os-qemu"
	outDirDefault = "out"

	usageMessage = `Usage of 'qemu-launcher':
    qemu-launcher [flags...]

Run the OS binary in QEMU inside a container:
	qemu-launcher -binary=out/os_sifive_u

Run a test binary with a local QEMU and stop it after 5 minutes:
	qemu-launcher -direct -binary=out/test_os_virt -timeout=5m

Start halted and wait for gdb on localhost:1234:
	qemu-launcher -binary=out/os_sifive_u -debug

The emulator output is written to <outdir>/test-run-<binary>.log and echoed.
The run ends when the output contains QUIT_QEMU.

All qemu-launcher flags can also be provided via environment variable
QEMU_LAUNCHER_ARGS or via file ./.qemu-launcher-args, with one argument per
line.
`
)

type flags struct {
	Binary    string
	Emulator  string
	Machine   string
	Debug     bool
	BootArgs  string
	Timeout   duration.Duration
	Version   bool
	Image     string
	OutDir    string
	Direct    bool
	ExtraArgs qemuArgList
	Verbose   bool
}

func (f *flags) logLevel() slog.Level {
	if f.Verbose {
		return slog.LevelDebug
	}

	return slog.LevelInfo
}

func newFlagSet(cfg *flags, output io.Writer) *flag.FlagSet {
	fsName := name + " [flags...]"
	flagSet := flag.NewFlagSet(fsName, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(flagSet.Output(), usageMessage)
		fmt.Fprintln(flagSet.Output(), "\nFlags:")
		flagSet.PrintDefaults()
	}

	flagSet.StringVar(
		&cfg.Binary,
		"binary",
		cfg.Binary,
		"OS binary to run. Its name determines machine type, bitness and "+
			"whether the run is interactive",
	)

	flagSet.TextVar(
		&cfg.Timeout,
		"timeout",
		cfg.Timeout,
		"stop QEMU after the given time, e.g. 1h30m, 90s or 45 (default none)",
	)

	flagSet.StringVar(
		&cfg.Emulator,
		"qemu",
		cfg.Emulator,
		"QEMU binary to run directly instead of in a container",
	)

	flagSet.StringVar(
		&cfg.Machine,
		"machine",
		cfg.Machine,
		"QEMU machine type to use (default derived from binary name)",
	)

	flagSet.BoolVar(
		&cfg.Debug,
		"debug",
		cfg.Debug,
		"start halted with gdb stub on localhost:1234 and write .gdbinit",
	)

	flagSet.StringVar(
		&cfg.BootArgs,
		"bootargs",
		cfg.BootArgs,
		"arguments passed to the OS, e.g. dry-run or test-script",
	)

	flagSet.StringVar(
		&cfg.Image,
		"image",
		cfg.Image,
		"container image providing QEMU",
	)

	flagSet.StringVar(
		&cfg.OutDir,
		"outdir",
		cfg.OutDir,
		"directory the log file is written to",
	)

	flagSet.BoolVar(
		&cfg.Direct,
		"direct",
		cfg.Direct,
		"run qemu-system-riscv* directly instead of in a container",
	)

	flagSet.Var(
		&cfg.ExtraArgs,
		"qemuArg",
		"additional QEMU argument as name[=value]. Flag may be used more "+
			"than once. Empty value clears the list.",
	)

	flagSet.BoolVar(
		&cfg.Verbose,
		"verbose",
		cfg.Verbose,
		"enable debug output",
	)

	flagSet.BoolVar(
		&cfg.Version,
		"version",
		cfg.Version,
		"show version of qemu-launcher and QEMU and exit",
	)

	return flagSet
}

func parseArgs(args []string, output io.Writer) (*flags, error) {
	cfg := &flags{
		Binary: binaryDefault,
		Image:  imageDefault,
		OutDir: outDirDefault,
	}

	flagSet := newFlagSet(cfg, output)

	err := flagSet.Parse(args)
	if err != nil {
		return nil, &ParseArgsError{msg: "flag parse", err: err}
	}

	if flagSet.NArg() > 0 {
		return nil, fail(flagSet, "unexpected positional arguments", nil)
	}

	// The version query does not boot the binary, so it does not need to
	// exist.
	if cfg.Version {
		return cfg, nil
	}

	err = validateFilePath(cfg.Binary)
	if err != nil {
		return nil, fail(flagSet, "binary "+cfg.Binary, err)
	}

	return cfg, nil
}

// fail fails like flag does. It prints the error first and then usage.
func fail(flagSet *flag.FlagSet, msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(flagSet.Output(), err.Error())

	flagSet.Usage()

	return err
}

func validateFilePath(name string) error {
	stat, err := os.Stat(name)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if !stat.Mode().IsRegular() {
		return ErrNotRegularFile
	}

	return nil
}
