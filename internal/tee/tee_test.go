// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package tee_test

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/rtfb/qemu-launcher/internal/sentinel"
	"github.com/rtfb/qemu-launcher/internal/tee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errWriter struct{}

func (errWriter) Write(_ []byte) (int, error) {
	return 0, assert.AnError
}

func TestTee_Drain(t *testing.T) {
	tests := []struct {
		name             string
		reader           io.Reader
		expectedOutput   string
		expectedDetected bool
		expectedErr      error
	}{
		{
			name:   "empty",
			reader: strings.NewReader(""),
		},
		{
			name:           "plain output",
			reader:         strings.NewReader("booting\nhart 0\n"),
			expectedOutput: "booting\nhart 0\n",
		},
		{
			name:             "quit sequence",
			reader:           strings.NewReader("$ echo QUIT_QEMU\nQUIT_QEMU\n"),
			expectedOutput:   "$ echo QUIT_QEMU\nQUIT_QEMU\n",
			expectedDetected: true,
		},
		{
			name:             "one byte reads",
			reader:           iotest.OneByteReader(strings.NewReader("xQUIT_QEMUx")),
			expectedOutput:   "xQUIT_QEMUx",
			expectedDetected: true,
		},
		{
			name:           "data with eof",
			reader:         iotest.DataErrReader(strings.NewReader("data")),
			expectedOutput: "data",
		},
		{
			name:           "read error",
			reader:         iotest.TimeoutReader(strings.NewReader("data")),
			expectedOutput: "data",
			expectedErr:    iotest.ErrTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer

			echo := tee.New(tt.reader, &output, &sentinel.Detector{})

			detected, err := echo.Drain()
			require.ErrorIs(t, err, tt.expectedErr)

			assert.Equal(t, tt.expectedDetected, detected)
			assert.Equal(t, tt.expectedOutput, output.String())
		})
	}
}

func TestTee_DrainWriteError(t *testing.T) {
	echo := tee.New(strings.NewReader("data"), errWriter{}, nil)

	_, err := echo.Drain()
	require.ErrorIs(t, err, assert.AnError)
}

func TestTee_DrainFlushes(t *testing.T) {
	var output bytes.Buffer

	writer := bufio.NewWriter(&output)
	echo := tee.New(strings.NewReader("no newline"), writer, nil)

	_, err := echo.Drain()
	require.NoError(t, err)

	assert.Equal(t, "no newline", output.String())
}

func TestTee_DrainGrowingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	writer, err := os.Create(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = writer.Close() })

	reader, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reader.Close() })

	var output bytes.Buffer

	echo := tee.New(reader, &output, &sentinel.Detector{})

	detected, err := echo.Drain()
	require.NoError(t, err)
	assert.False(t, detected, "nothing written yet")
	assert.Empty(t, output.String())

	_, err = writer.WriteString("first QUIT_")
	require.NoError(t, err)

	detected, err = echo.Drain()
	require.NoError(t, err)
	assert.False(t, detected)
	assert.Equal(t, "first QUIT_", output.String())

	_, err = writer.WriteString("QEMU second")
	require.NoError(t, err)

	detected, err = echo.Drain()
	require.NoError(t, err)
	assert.True(t, detected, "sequence split across drains")
	assert.Equal(t, "first QUIT_QEMU second", output.String(),
		"bytes must be echoed once and in order")

	detected, err = echo.Drain()
	require.NoError(t, err)
	assert.False(t, detected)
	assert.Equal(t, "first QUIT_QEMU second", output.String())
}
