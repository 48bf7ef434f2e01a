package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDate_RFC3339(t *testing.T) {
	parsed, err := ParseDueDate("2024-06-01T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC), parsed.UTC())
}

func TestParseDueDate_DateOnlyNormalizesToMidnightUTC(t *testing.T) {
	parsed, err := ParseDueDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), parsed)
	assert.Equal(t, time.UTC, parsed.Location())
}

func TestParseDueDate_Invalid(t *testing.T) {
	for _, raw := range []string{"", "june 1st", "2024-13-40", "01/06/2024"} {
		_, err := ParseDueDate(raw)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", raw)
	}
}
