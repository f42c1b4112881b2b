package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		input string
	}{
		{"2025-03-04"},
		{"04/03/2025"},
		{"04.03.2025"},
		{"4/3/2025"},
		{"04-03-2025"},
		{"04 Mar 2025"},
		{"4 Mar 2025"},
		{"04-Mar-2025"},
		{"4 March 2025"},
		{"04/03/25"},
		{"  04   Mar 2025 "},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}
}

func TestParseDate_DayFirst(t *testing.T) {
	got, err := ParseDate("01/02/2025")
	require.NoError(t, err)
	assert.Equal(t, time.February, got.Month())
	assert.Equal(t, 1, got.Day())
}

func TestParseDate_EmptyAndInvalid(t *testing.T) {
	got, err := ParseDate("  ")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = ParseDate("yesterday")
	assert.Error(t, err)

	_, err = ParseDate("31/02/2025")
	assert.Error(t, err)
}

func TestToISODate(t *testing.T) {
	assert.Equal(t, "2025-12-31", ToISODate(time.Date(2025, 12, 31, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", ToISODate(time.Time{}))
}

func TestCleanDateString(t *testing.T) {
	assert.Equal(t, "4 Mar 2025", CleanDateString("  4  Mar\t2025 "))
}
