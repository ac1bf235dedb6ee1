package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus"))
	assert.NotNil(t, Location("Mars/Olympus"))
}

func TestParseClock(t *testing.T) {
	day, err := ParseDate("2024-06-10")
	require.NoError(t, err)

	at, err := ParseClock(day, "09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, at.Hour())
	assert.Equal(t, 30, at.Minute())
	assert.Equal(t, time.June, at.Month())

	at, err = ParseClock(day, "17:45:00")
	require.NoError(t, err)
	assert.Equal(t, 17, at.Hour())

	_, err = ParseClock(day, "late")
	assert.Error(t, err)
}
