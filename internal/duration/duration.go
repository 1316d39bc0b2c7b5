// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package duration

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const day = 24 * time.Hour

var units = map[rune]time.Duration{
	'd': day,
	'h': time.Hour,
	'm': time.Minute,
	's': time.Second,
}

// Parse parses a compact time delta.
//
// The input is a sequence of runs of digits each followed by one of the units
// "d", "h", "m" or "s". Digits at the end without a unit are seconds. Spaces
// and tabs are ignored. The result is the sum of all runs, so "1h30m" and
// "1h 1800" both result in 90 minutes.
func Parse(s string) (time.Duration, error) {
	var (
		total   time.Duration
		value   time.Duration
		pending bool
	)

	if strings.TrimSpace(s) == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidDuration)
	}

	add := func(unit time.Duration) error {
		if value > math.MaxInt64/unit {
			return fmt.Errorf("%w: %q out of range", ErrInvalidDuration, s)
		}

		total += value * unit
		if total < 0 {
			return fmt.Errorf("%w: %q out of range", ErrInvalidDuration, s)
		}

		value = 0
		pending = false

		return nil
	}

	for _, char := range s {
		switch {
		case char >= '0' && char <= '9':
			digit := time.Duration(char - '0')
			if value > (math.MaxInt64-digit)/10 {
				return 0, fmt.Errorf("%w: %q out of range", ErrInvalidDuration, s)
			}

			value = value*10 + digit
			pending = true
		case char == ' ' || char == '\t':
			continue
		default:
			unit, known := units[char]
			if !known {
				return 0, fmt.Errorf("%w: %q: unexpected %q",
					ErrInvalidDuration, s, char)
			}

			// A unit must terminate a value. Otherwise it is unclear what it
			// refers to.
			if !pending {
				return 0, fmt.Errorf("%w: %q: unit %q without value",
					ErrInvalidDuration, s, char)
			}

			err := add(unit)
			if err != nil {
				return 0, err
			}
		}
	}

	if pending {
		err := add(time.Second)
		if err != nil {
			return 0, err
		}
	}

	return total, nil
}

// Duration is a [time.Duration] that can be used as text based flag value
// with the grammar of [Parse].
type Duration time.Duration

// MarshalText implements [encoding.TextMarshaler].
func (d Duration) MarshalText() ([]byte, error) {
	if d == 0 {
		return []byte{}, nil
	}

	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*d = Duration(parsed)

	return nil
}
