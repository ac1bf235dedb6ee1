package timezone

import "time"

const DefaultTimezone = "Europe/Istanbul"

const DateLayout = "2006-01-02"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

// Today is the current shop-local date as YYYY-MM-DD.
func Today() string {
	return Now().Format(DateLayout)
}

// ParseDate reads a YYYY-MM-DD date in the shop timezone.
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, Location(DefaultTimezone))
}

// ParseClock combines a date with an HH:MM or HH:MM:SS clock value.
func ParseClock(day time.Time, hm string) (time.Time, error) {
	layout := "15:04"
	if len(hm) > 5 {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), t.Second(), 0,
		day.Location(),
	), nil
}
