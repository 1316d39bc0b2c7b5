// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import "strings"

const (
	// ContainerRuntime is the CLI used for running containers.
	ContainerRuntime = "docker"

	// ContainerWorkDir is the path the working directory is mounted to in
	// the container.
	ContainerWorkDir = "/work"

	// containerArch32 is the positional argument that makes the image's
	// entrypoint select the 32-bit QEMU binary.
	containerArch32 = "rv32"
)

// Command is the resolved emulator invocation for a [LaunchSpec].
type Command struct {
	// Executable is the program to run. Either the QEMU binary or the
	// container runtime.
	Executable string

	// Args are all arguments for Executable.
	Args []string

	// EmulatorArgs are the arguments passed to QEMU, whether directly or
	// through the container.
	EmulatorArgs []Argument

	// Machine is the QEMU machine type.
	Machine string

	// Is32Bit is set for 32-bit targets.
	Is32Bit bool

	// Interactive is set if the user is supposed to interact with the guest.
	Interactive bool

	// Containerized is set if QEMU runs in a container of Image.
	Containerized bool

	// Image is the container image, if Containerized.
	Image string

	// ContainerName is the name of the container, if Containerized.
	ContainerName string
}

// NewCommand resolves the [Command] for the given [LaunchSpec].
func NewCommand(spec LaunchSpec) (*Command, error) {
	if spec.Binary == "" && !spec.Version {
		return nil, ErrNoBinary
	}

	cmd := &Command{
		Machine:       spec.ResolvedMachine(),
		Is32Bit:       spec.Is32Bit(),
		Interactive:   spec.Interactive(),
		Containerized: spec.Containerized(),
	}

	if spec.Version {
		cmd.EmulatorArgs = []Argument{UniqueArg(OptVersion)}
	} else {
		cmd.EmulatorArgs = emulatorArguments(spec, cmd.Machine)
	}

	emulatorArgs, err := BuildArgumentStrings(cmd.EmulatorArgs)
	if err != nil {
		return nil, err
	}

	if !cmd.Containerized {
		cmd.Executable = spec.emulatorExecutable()
		cmd.Args = emulatorArgs

		return cmd, nil
	}

	if spec.Image == "" {
		return nil, ErrNoImage
	}

	if spec.WorkDir == "" {
		return nil, ErrNoWorkDir
	}

	cmd.Executable = ContainerRuntime
	cmd.Image = spec.Image
	cmd.ContainerName = spec.ContainerName
	cmd.Args = containerArguments(spec, cmd.Interactive)
	cmd.Args = append(cmd.Args, emulatorArgs...)

	return cmd, nil
}

func emulatorArguments(spec LaunchSpec, machine string) []Argument {
	args := []Argument{
		UniqueArg(OptNoGraphic),
		UniqueArg(OptMachine, machine),
		UniqueArg(OptBIOS, "none"),
		UniqueArg(OptKernel, spec.Binary),
	}

	if spec.Debug {
		args = append(args,
			// Load the image, but stop the CPU until gdb continues it.
			UniqueArg(OptHalt),
			// Listen for gdb on localhost:1234.
			UniqueArg(OptGDBStub),
		)
	}

	if spec.BootArgs != "" {
		args = append(args, UniqueArg(OptAppend, spec.BootArgs))
	}

	return append(args, spec.ExtraArgs...)
}

func containerArguments(spec LaunchSpec, interactive bool) []string {
	args := []string{"run", "--rm"}

	if spec.ContainerName != "" {
		args = append(args, "--name", spec.ContainerName)
	}

	if interactive {
		args = append(args, "--interactive")

		if spec.Terminal {
			args = append(args, "--tty")
		}
	}

	args = append(args,
		"--net=host",
		"--volume", spec.WorkDir+":"+ContainerWorkDir,
		"--workdir", ContainerWorkDir,
		spec.Image,
	)

	if spec.Is32Bit() {
		args = append(args, containerArch32)
	}

	return args
}

// Multicore returns true if the machine has a monitor hart in addition to
// the application harts.
func (c *Command) Multicore() bool {
	return c.Machine == MachineSifiveU
}

// HasMMU returns true if the OS runs with virtual memory on the machine.
func (c *Command) HasMMU() bool {
	return c.Machine == MachineSifiveU || c.Machine == MachineVirt
}

// String returns the command line as it could be typed in a shell.
func (c *Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quote(c.Executable))

	for _, arg := range c.Args {
		parts = append(parts, quote(arg))
	}

	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"\\$") {
		return s
	}

	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
