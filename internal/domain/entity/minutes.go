package entity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFormat is returned when a time of day is not a valid "HH:MM".
var ErrInvalidFormat = errors.New("invalid time format, expected HH:MM")

// Minutes is a time of day expressed as minutes since midnight.
type Minutes int

// ParseMinutes converts "HH:MM" (hour 0-23, minute 0-59) into Minutes.
// Single digit parts such as "8:05" are accepted.
func ParseMinutes(s string) (Minutes, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	h, ok := parseClockPart(parts[0])
	if !ok || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	m, ok := parseClockPart(parts[1])
	if !ok || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return Minutes(h*60 + m), nil
}

// parseClockPart accepts one or two ASCII digits.
func parseClockPart(p string) (int, bool) {
	if len(p) == 0 || len(p) > 2 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// String formats m as zero-padded "HH:MM".
func (m Minutes) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}
