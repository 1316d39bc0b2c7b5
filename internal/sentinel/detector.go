// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sentinel detects the quit sequence the guest system prints when it
// wants the emulator to be stopped.
package sentinel

import "bytes"

// QuitSequence is the byte sequence that requests termination of the emulator
// when it appears anywhere in its output.
const QuitSequence = "QUIT_QEMU"

// BufferSize is the maximum number of trailing bytes a [Detector] keeps.
const BufferSize = 16

// Detector watches a byte stream for [QuitSequence].
//
// It keeps only the last [BufferSize] bytes. The zero value is ready to use.
// The stream is treated as raw bytes, so arbitrary binary output or broken
// multi-byte characters never make it fail.
type Detector struct {
	buf [BufferSize]byte
	len int
}

// Feed adds a single byte to the trailing buffer and reports whether this
// byte completes the quit sequence.
func (d *Detector) Feed(b byte) bool {
	if d.len == BufferSize {
		copy(d.buf[:], d.buf[1:])
		d.len--
	}

	d.buf[d.len] = b
	d.len++

	return bytes.HasSuffix(d.buf[:d.len], []byte(QuitSequence))
}

// Write feeds all bytes of p and reports if any of them completed the quit
// sequence.
func (d *Detector) Write(p []byte) bool {
	detected := false

	for _, b := range p {
		if d.Feed(b) {
			detected = true
		}
	}

	return detected
}

// Bytes returns a copy of the current trailing buffer.
func (d *Detector) Bytes() []byte {
	return bytes.Clone(d.buf[:d.len])
}

// Reset clears the trailing buffer. It must be called when the same
// [Detector] is used for a new stream.
func (d *Detector) Reset() {
	d.len = 0
}
