// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sentinel_test

import (
	"strings"
	"testing"

	"github.com/rtfb/qemu-launcher/internal/sentinel"
	"github.com/stretchr/testify/assert"
)

func TestDetector_Feed(t *testing.T) {
	input := []byte(strings.Repeat(".", 40) + "XQUIT_QEMU" + "more output")
	completingIdx := 40 + len("XQUIT_QEMU") - 1

	var (
		detector   sentinel.Detector
		detections []int
	)

	for idx, b := range input {
		if detector.Feed(b) {
			detections = append(detections, idx)
		}

		assert.LessOrEqual(t, len(detector.Bytes()), sentinel.BufferSize)
	}

	assert.Equal(t, []int{completingIdx}, detections)
}

func TestDetector_Write(t *testing.T) {
	tests := []struct {
		name     string
		chunks   []string
		expected []bool
	}{
		{
			name:     "no sequence",
			chunks:   []string{"hello", "world\n"},
			expected: []bool{false, false},
		},
		{
			name:     "sequence in single chunk",
			chunks:   []string{"$ echo QUIT_QEMU\n"},
			expected: []bool{true},
		},
		{
			name:     "sequence split across chunks",
			chunks:   []string{"QUI", "T_", "QEMU"},
			expected: []bool{false, false, true},
		},
		{
			name:     "partial sequence",
			chunks:   []string{"QUIT_QEM", "X"},
			expected: []bool{false, false},
		},
		{
			name:     "binary noise around sequence",
			chunks:   []string{"\xff\xfe\xe2\x82", "QUIT_QEMU", "\xc3"},
			expected: []bool{false, true, false},
		},
		{
			name:     "repeated occurrence",
			chunks:   []string{"QUIT_QEMU", "\n", "QUIT_QEMU"},
			expected: []bool{true, false, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var detector sentinel.Detector

			actual := make([]bool, 0, len(tt.chunks))
			for _, chunk := range tt.chunks {
				actual = append(actual, detector.Write([]byte(chunk)))
			}

			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestDetector_Bounded(t *testing.T) {
	var detector sentinel.Detector

	detector.Write([]byte("0123456789abcdefghij"))

	assert.Equal(t, []byte("456789abcdefghij"), detector.Bytes())
}

func TestDetector_Reset(t *testing.T) {
	var detector sentinel.Detector

	assert.False(t, detector.Write([]byte("QUIT_")))

	detector.Reset()

	assert.Empty(t, detector.Bytes())
	assert.False(t, detector.Write([]byte("QEMU")),
		"sequence must not complete across reset")
}
