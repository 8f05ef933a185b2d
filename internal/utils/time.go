package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/nicolog/internal/constants"
	"github.com/julianstephens/nicolog/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// DateOf returns the calendar date (YYYY-MM-DD) of t in its own location.
func DateOf(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Stamp returns the frozen date and time-of-day bucket for an instant as seen
// from loc.
func Stamp(t time.Time, loc *time.Location) (string, models.TimeOfDay) {
	if loc == nil {
		loc = time.Local
	}
	local := t.In(loc)
	return DateOf(local), models.TimeOfDayForHour(local.Hour())
}

// OffsetMinutes returns the UTC offset of t in minutes
func OffsetMinutes(t time.Time) int {
	_, offset := t.Zone()
	return offset / 60
}

// ParseDate parses a date string in the standard format (YYYY-MM-DD).
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// ValidateDate checks if the string matches the standard date format.
func ValidateDate(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}

// AddDays shifts a YYYY-MM-DD date by n calendar days.
func AddDays(dateStr string, n int) (string, error) {
	t, err := ParseDate(dateStr)
	if err != nil {
		return "", fmt.Errorf("invalid date format: %w", err)
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}
