package timeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	segmentSeparator = " - "
	zoneSuffix       = " GMT"
)

// ErrMalformedDate marks a date string that does not follow model.DateLayout.
var ErrMalformedDate = errors.New("malformed tweet date")

// ParseResult is the outcome of parsing a display date.
// When Fallback is true the string could not be parsed, Instant holds the
// "now" substitute and Err describes what went wrong.
type ParseResult struct {
	Instant  time.Time
	Fallback bool
	Err      error
}

// ParseDate turns "HH:mm - dd/MM/yyyy GMT" back into an instant.
//
// The numeric fields are interpreted in the local zone; the GMT label is not
// applied. Malformed input never fails: it yields a fallback result whose
// instant is now.
func ParseDate(s string, now time.Time) ParseResult {
	instant, err := parseDate(s)
	if err != nil {
		return ParseResult{Instant: now, Fallback: true, Err: err}
	}
	return ParseResult{Instant: instant}
}

func parseDate(s string) (time.Time, error) {
	parts := strings.Split(s, segmentSeparator)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("%w: %q: expected time and date separated by %q", ErrMalformedDate, s, segmentSeparator)
	}

	clock, err := parseFields(parts[0], ":", 2)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: time: %v", ErrMalformedDate, s, err)
	}
	hours, minutes := clock[0], clock[1]

	date, err := parseFields(strings.TrimSuffix(parts[1], zoneSuffix), "/", 3)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: date: %v", ErrMalformedDate, s, err)
	}
	day, month, year := date[0], date[1], date[2]

	switch {
	case hours < 0 || hours > 23:
		return time.Time{}, fmt.Errorf("%w: %q: hour %d out of range", ErrMalformedDate, s, hours)
	case minutes < 0 || minutes > 59:
		return time.Time{}, fmt.Errorf("%w: %q: minute %d out of range", ErrMalformedDate, s, minutes)
	case month < 1 || month > 12:
		return time.Time{}, fmt.Errorf("%w: %q: month %d out of range", ErrMalformedDate, s, month)
	case day < 1 || day > daysIn(time.Month(month), year):
		return time.Time{}, fmt.Errorf("%w: %q: day %d out of range", ErrMalformedDate, s, day)
	}

	return time.Date(year, time.Month(month), day, hours, minutes, 0, 0, time.Local), nil
}

// parseFields splits s on sep and requires exactly n base-10 integers.
func parseFields(s, sep string, n int) ([]int, error) {
	raw := strings.Split(s, sep)
	if len(raw) != n {
		return nil, fmt.Errorf("expected %d fields separated by %q, got %d", n, sep, len(raw))
	}
	out := make([]int, n)
	for i, field := range raw {
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func daysIn(m time.Month, year int) int {
	// day 0 of the next month is the last day of m
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
