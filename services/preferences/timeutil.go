package preferences

import (
	"strconv"
	"strings"
	"time"

	"routed/models"
)

// timeToMinutes converts "HH:MM" into minutes since midnight. Malformed
// input yields -1, which never falls inside a valid window.
func timeToMinutes(t string) int {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return -1
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return -1
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return -1
	}
	return hours*60 + minutes
}

// IsTimeInPreferredRange reports whether t ("HH:MM") falls within any of the
// day's configured windows, inclusive on both ends. An unavailable day never
// matches.
func IsTimeInPreferredRange(t string, day models.DayAvailability) bool {
	if !day.Available {
		return false
	}
	minutes := timeToMinutes(t)
	if minutes < 0 {
		return false
	}
	for _, window := range day.PreferredTimes {
		start := timeToMinutes(window.StartTime)
		end := timeToMinutes(window.EndTime)
		if minutes >= start && minutes <= end {
			return true
		}
	}
	return false
}

var weekdays = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// DayOfWeek returns the Sunday-indexed weekday name for a "YYYY-MM-DD" date,
// or "" when the date does not parse.
func DayOfWeek(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return weekdays[int(parsed.Weekday())]
}
