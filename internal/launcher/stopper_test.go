// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launcher_test

import (
	"context"
	"os/exec"
	"syscall"
	"testing"

	"github.com/rtfb/qemu-launcher/internal/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

type fakeKiller struct {
	images []string
	err    error
}

func (k *fakeKiller) KillByAncestor(_ context.Context, image string) (int, error) {
	k.images = append(k.images, image)
	return len(k.images), k.err
}

func startSleep(t *testing.T) *exec.Cmd {
	t.Helper()

	cmd := exec.CommandContext(t.Context(), "sleep", "10")
	require.NoError(t, cmd.Start())

	return cmd
}

func assertTerminated(t *testing.T, cmd *exec.Cmd) {
	t.Helper()

	_ = cmd.Wait()

	status, ok := cmd.ProcessState.Sys().(syscall.WaitStatus)
	require.True(t, ok)
	assert.True(t, status.Signaled())
	assert.Equal(t, unix.SIGTERM, status.Signal())
}

func TestSignalStopper(t *testing.T) {
	cmd := startSleep(t)

	err := launcher.SignalStopper{}.Stop(t.Context(), cmd.Process)
	require.NoError(t, err)

	assertTerminated(t, cmd)

	err = launcher.SignalStopper{}.Stop(t.Context(), cmd.Process)
	require.NoError(t, err, "done process")
}

func TestContainerStopper(t *testing.T) {
	tests := []struct {
		name        string
		killErr     error
		expectedErr error
	}{
		{
			name: "killed",
		},
		{
			name:        "kill fails",
			killErr:     assert.AnError,
			expectedErr: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := startSleep(t)
			killer := &fakeKiller{err: tt.killErr}

			stopper := launcher.ContainerStopper{
				Killer: killer,
				Image:  "riscv-hobby-os-qemu",
			}

			err := stopper.Stop(t.Context(), cmd.Process)
			require.ErrorIs(t, err, tt.expectedErr)

			assert.Equal(t, []string{"riscv-hobby-os-qemu"}, killer.images)
			assertTerminated(t, cmd)
		})
	}
}
