package utils

import (
	"errors"
	"time"
)

var ErrInvalidDate = errors.New("invalid date format")

// ParseDueDate accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date.
// Date-only input is normalized to midnight UTC so both forms share one
// stored representation.
func ParseDueDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	t, err := time.Parse("2006-01-02", raw)

	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
