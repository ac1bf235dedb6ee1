package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/records"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusPending, Status("ARCHIVED"), false},
	}

	for _, tc := range cases {
		err := CanTransition(tc.from, tc.to)
		if tc.ok {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
		} else {
			assert.Error(t, err, "%s -> %s", tc.from, tc.to)
		}
	}
}

func TestCanReview(t *testing.T) {
	assert.True(t, CanReview(StatusCompleted, false))
	assert.False(t, CanReview(StatusCompleted, true))
	assert.False(t, CanReview(StatusConfirmed, false))
}

func TestApply(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	ap := &records.Appointment{Status: string(StatusPending)}
	err := Apply(ap, StatusConfirmed, false, now)
	assert.True(t, httperr.IsBusiness(err, "forbidden_transition"))
	assert.Equal(t, string(StatusPending), ap.Status)

	require.NoError(t, Apply(ap, StatusConfirmed, true, now))
	require.NoError(t, Apply(ap, StatusCompleted, true, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	assert.Equal(t, now, ap.UpdatedAt)

	err = Apply(ap, StatusCancelled, false, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestSlots(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	busy := []Busy{
		{Start: at(9, 30), End: at(10, 0)},
		{Start: at(10, 45), End: at(11, 15)},
	}
	slots := Slots(at(9, 0), at(11, 30), 30*time.Minute, busy)

	require.Len(t, slots, 5)
	got := map[string]bool{}
	for _, s := range slots {
		got[s.StartTime] = s.Available
	}
	assert.Equal(t, map[string]bool{
		"09:00": true,
		"09:30": false,
		"10:00": true,
		"10:30": false,
		"11:00": false,
	}, got)

	assert.Empty(t, Slots(at(9, 0), at(9, 20), 30*time.Minute, nil), "no window fits")
	assert.Empty(t, Slots(at(9, 0), at(10, 0), 0, nil))
}

func TestIsWithinWorkingHours(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	wd := &records.WorkingDay{DayOfWeek: "MONDAY", StartTime: "09:00", EndTime: "19:00"}

	assert.True(t, IsWithinWorkingHours(wd, day.Add(9*time.Hour), day.Add(9*time.Hour+30*time.Minute)))
	assert.True(t, IsWithinWorkingHours(wd, day.Add(18*time.Hour+30*time.Minute), day.Add(19*time.Hour)))
	assert.False(t, IsWithinWorkingHours(wd, day.Add(18*time.Hour+45*time.Minute), day.Add(19*time.Hour+15*time.Minute)))
	assert.False(t, IsWithinWorkingHours(&records.WorkingDay{IsClosed: true}, day.Add(10*time.Hour), day.Add(11*time.Hour)))
	assert.False(t, IsWithinWorkingHours(nil, day.Add(10*time.Hour), day.Add(11*time.Hour)))
	assert.Equal(t, "MONDAY", DayOfWeek(day))
}
