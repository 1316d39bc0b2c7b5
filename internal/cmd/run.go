// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/rtfb/qemu-launcher/internal/container"
	"github.com/rtfb/qemu-launcher/internal/exitcode"
	"github.com/rtfb/qemu-launcher/internal/gdb"
	"github.com/rtfb/qemu-launcher/internal/launcher"
	"github.com/rtfb/qemu-launcher/internal/qemu"
)

const (
	localConfigFile = ".qemu-launcher-args"

	// localBuildDir is where a locally built QEMU is installed.
	localBuildDir = "qemu-build/bin"
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func newFlags(args []string, cfg IO) (*flags, error) {
	args, err := MergedArgs(args, os.DirFS("."), localConfigFile)
	if err != nil {
		return nil, err
	}

	flags, err := parseArgs(args, cfg.Stderr)
	if err != nil {
		return nil, fmt.Errorf("parse args: %w", err)
	}

	return flags, nil
}

func newLaunchSpec(flags *flags, cfg IO) (qemu.LaunchSpec, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return qemu.LaunchSpec{}, fmt.Errorf("get work dir: %w", err)
	}

	spec := qemu.LaunchSpec{
		Binary:        flags.Binary,
		Emulator:      flags.Emulator,
		Direct:        flags.Direct,
		Machine:       flags.Machine,
		Debug:         flags.Debug,
		BootArgs:      flags.BootArgs,
		ExtraArgs:     flags.ExtraArgs,
		Timeout:       time.Duration(flags.Timeout),
		Version:       flags.Version,
		Image:         flags.Image,
		ContainerName: name + "-" + strconv.Itoa(os.Getpid()),
		WorkDir:       workDir,
		Terminal:      isTerminal(cfg.Stdin),
	}

	if stat, err := os.Stat(localBuildDir); err == nil && stat.IsDir() {
		spec.LocalBuildDir = localBuildDir
	}

	return spec, nil
}

func run(ctx context.Context, flags *flags, cfg IO) error {
	spec, err := newLaunchSpec(flags, cfg)
	if err != nil {
		return err
	}

	cmd, err := qemu.NewCommand(spec)
	if err != nil {
		return fmt.Errorf("qemu command: %w", err)
	}

	launchCfg := launcher.Config{
		Command: cmd,
		LogPath: logPath(flags),
		Stdin:   emulatorStdin(cmd, spec.Terminal, cfg.Stdin),
		Output:  cfg.Stdout,
		Timeout: spec.Timeout,
	}

	if spec.Debug && !spec.Version {
		launchCfg.Debug = &gdb.Session{
			Binary:    spec.Binary,
			Is32Bit:   cmd.Is32Bit,
			Multicore: cmd.Multicore(),
			MMU:       cmd.HasMMU(),
		}
	}

	if cmd.Containerized {
		killer, closeKiller, err := container.NewKiller()
		if err != nil {
			return err //nolint:wrapcheck
		}
		defer closeKiller() //nolint:errcheck

		launchCfg.Killer = killer
	}

	slog.Debug("Log file", slog.String("path", launchCfg.LogPath))

	result, err := launcher.Run(ctx, launchCfg)
	if err != nil {
		return fmt.Errorf("qemu: %w", err)
	}

	slog.Debug("QEMU terminated",
		slog.String("outcome", result.Outcome.String()),
		slog.Int("exit_code", result.ExitCode),
	)

	if result.ExitCode != exitcode.Success {
		return exitcode.Error(result.ExitCode)
	}

	return nil
}

// logPath keeps version queries away from the run log of the binary, so
// asking for the version does not truncate the output of the last run.
func logPath(flags *flags) string {
	if flags.Version {
		return launcher.VersionLogFileName(flags.OutDir)
	}

	return launcher.LogFileName(flags.OutDir, flags.Binary)
}

// emulatorStdin returns the input for the emulator. The terminal is only
// handed to an interactive docker client, which forwards it with
// --interactive. A direct QEMU switches the terminal into raw mode, so C-c
// would never reach the launcher. Nil makes the launcher use a pipe.
func emulatorStdin(cmd *qemu.Command, terminal bool, stdin io.Reader) io.Reader {
	if cmd.Containerized && cmd.Interactive && terminal {
		return stdin
	}

	return nil
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help is requested. So exit without error
	// in this case.
	if errors.Is(err, ErrHelp) {
		return exitcode.Success
	}

	// ParseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return exitcode.LaunchFailure
}

func handleRunError(err error) int {
	exitCode, isExitErr := exitcode.From(err)

	// Do not print the error in case QEMU ran and the exit code is the
	// outcome of the run.
	if !isExitErr {
		slog.Error(err.Error())
	}

	return exitCode
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	setupLogging(cfg.Stderr)

	flags, err := newFlags(args, cfg)
	if err != nil {
		return handleParseArgsError(err)
	}

	slog.SetLogLoggerLevel(flags.logLevel())

	// The QEMU version is printed by the regular run, as the version query
	// is just another QEMU command.
	if flags.Version {
		fmt.Fprintf(cfg.Stdout, "%s version: %s\n", name, version())
	}

	err = run(ctx, flags, cfg)
	if err != nil {
		return handleRunError(err)
	}

	return exitcode.Success
}

const unknownVersion = "unknown"

func version() string {
	return moduleVersion(debug.ReadBuildInfo())
}

// moduleVersion returns the main module version. Binaries built from a
// checkout carry "(devel)", which says nothing about the version.
func moduleVersion(buildInfo *debug.BuildInfo, ok bool) string {
	if !ok || buildInfo == nil {
		return unknownVersion
	}

	switch buildInfo.Main.Version {
	case "", "(devel)":
		return unknownVersion
	default:
		return buildInfo.Main.Version
	}
}
