package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jst = time.FixedZone("JST", 9*60*60)

func TestResolveTimed(t *testing.T) {
	day := time.Date(2025, time.April, 10, 0, 0, 0, 0, jst)

	start, end, err := ResolveTimed(day, "10:00", "12:00", false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.April, 10, 10, 0, 0, 0, jst), start)
	assert.Equal(t, time.Date(2025, time.April, 10, 12, 0, 0, 0, jst), end)
}

func TestResolveTimed_SingleDigitHour(t *testing.T) {
	day := time.Date(2025, time.April, 10, 0, 0, 0, 0, jst)

	start, _, err := ResolveTimed(day, "9:00", "15:00", false)
	require.NoError(t, err)
	assert.Equal(t, 9, start.Hour())
}

func TestResolveTimed_WithSeconds(t *testing.T) {
	day := time.Date(2025, time.April, 10, 0, 0, 0, 0, jst)

	start, _, err := ResolveTimed(day, "10:00:30", "12:00", false)
	require.NoError(t, err)
	assert.Equal(t, 30, start.Second())
}

func TestResolveTimed_OvernightCorrected(t *testing.T) {
	day := time.Date(2025, time.April, 10, 0, 0, 0, 0, jst)

	start, end, err := ResolveTimed(day, "23:00", "0:30", true)
	require.NoError(t, err)
	assert.Equal(t, 10, start.Day())
	assert.Equal(t, 11, end.Day())
	assert.True(t, end.After(start))
}

func TestResolveTimed_InvertedWithoutCorrection(t *testing.T) {
	// The full-year and half-year paths pass inverted ranges through
	// unchanged; the remote create call is what rejects them.
	day := time.Date(2025, time.April, 10, 0, 0, 0, 0, jst)

	start, end, err := ResolveTimed(day, "23:00", "0:30", false)
	require.NoError(t, err)
	assert.Equal(t, 10, end.Day())
	assert.True(t, start.After(end))
}

func TestResolveTimed_InvalidClocks(t *testing.T) {
	day := time.Date(2025, time.April, 10, 0, 0, 0, 0, jst)

	for _, tt := range []struct{ start, end string }{
		{"", "12:00"},
		{"10:00", ""},
		{"25:00", "12:00"},
		{"10:00", "12:60"},
		{"1000", "1200"},
	} {
		_, _, err := ResolveTimed(day, tt.start, tt.end, false)
		assert.Error(t, err, "start=%q end=%q", tt.start, tt.end)
	}
}
