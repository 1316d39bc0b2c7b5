// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package tee echoes a growing log file to the terminal while the emulator
// is still writing into it.
package tee

import (
	"errors"
	"fmt"
	"io"

	"github.com/rtfb/qemu-launcher/internal/sentinel"
)

const readBufferSize = 4096

// Flusher is implemented by writers that buffer output, like [bufio.Writer].
type Flusher interface {
	Flush() error
}

// Tee copies everything appended to Source to Output and feeds it through a
// [sentinel.Detector].
//
// Source is supposed to be a reader on a file that is concurrently written by
// another process. Reading continues where the last [Tee.Drain] stopped.
type Tee struct {
	Source   io.Reader
	Output   io.Writer
	Detector *sentinel.Detector

	buf []byte
}

// New returns a new [Tee] for the given source and output using the given
// detector.
func New(src io.Reader, output io.Writer, detector *sentinel.Detector) *Tee {
	return &Tee{
		Source:   src,
		Output:   output,
		Detector: detector,
	}
}

// Drain copies all bytes currently available in Source to Output.
//
// It returns as soon as Source reports [io.EOF], which for a file being
// written means the reader caught up with the writer. It reports whether the
// quit sequence was seen in the copied bytes.
func (t *Tee) Drain() (bool, error) {
	if t.buf == nil {
		t.buf = make([]byte, readBufferSize)
	}

	detected := false

	for {
		n, err := t.Source.Read(t.buf)
		if n > 0 {
			chunk := t.buf[:n]

			if t.Detector != nil && t.Detector.Write(chunk) {
				detected = true
			}

			writeErr := t.write(chunk)
			if writeErr != nil {
				return detected, writeErr
			}
		}

		if errors.Is(err, io.EOF) {
			return detected, nil
		}

		if err != nil {
			return detected, fmt.Errorf("read: %w", err)
		}

		// Readers may return no data without error. Treat it like EOF to
		// never spin here.
		if n == 0 {
			return detected, nil
		}
	}
}

func (t *Tee) write(data []byte) error {
	_, err := t.Output.Write(data)
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}

	// Writes to an [os.File] are not buffered, so only buffering writers
	// need an explicit flush.
	flusher, ok := t.Output.(Flusher)
	if !ok {
		return nil
	}

	err = flusher.Flush()
	if err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	return nil
}
