package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/records"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// IsOpen reports whether the day has usable hours.
func IsOpen(wd *records.WorkingDay) bool {
	return wd != nil && !wd.IsClosed && wd.StartTime != "" && wd.EndTime != ""
}

// Bounds resolves the opening and closing time of wd on date.
func Bounds(wd *records.WorkingDay, date time.Time) (time.Time, time.Time, error) {
	opening, err := timezone.ParseClock(date, wd.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	closing, err := timezone.ParseClock(date, wd.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return opening, closing, nil
}

// IsWithinWorkingHours checks that [start, end) lies inside the day's hours.
func IsWithinWorkingHours(wd *records.WorkingDay, start, end time.Time) bool {
	if !IsOpen(wd) {
		return false
	}
	opening, closing, err := Bounds(wd, start)
	if err != nil {
		return false
	}
	return !start.Before(opening) && !end.After(closing)
}

// DayOfWeek names t's weekday the way the API does (MONDAY..SUNDAY).
func DayOfWeek(t time.Time) string {
	switch t.Weekday() {
	case time.Monday:
		return "MONDAY"
	case time.Tuesday:
		return "TUESDAY"
	case time.Wednesday:
		return "WEDNESDAY"
	case time.Thursday:
		return "THURSDAY"
	case time.Friday:
		return "FRIDAY"
	case time.Saturday:
		return "SATURDAY"
	default:
		return "SUNDAY"
	}
}
