package service

import (
	"alcyxob/virtual-coach/internal/domain"
	"time"
)

// ResolveWeekStart returns the Monday a plan starts on. A requested date must be
// a Monday. Without one, the next Monday after now is used; on a Monday that is
// a week later, never today.
func ResolveWeekStart(requested *time.Time, now time.Time) (time.Time, error) {
	if requested != nil {
		day := truncateToDate(*requested)
		if day.Weekday() != time.Monday {
			return time.Time{}, invalidInput("week_start_date must be a Monday")
		}
		return day, nil
	}

	today := truncateToDate(now)
	delta := (int(time.Monday) - int(today.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return today.AddDate(0, 0, delta), nil
}

// ParseWeekStart parses a YYYY-MM-DD date and checks that it is a Monday.
func ParseWeekStart(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, invalidInput("week_start_date must be a date in YYYY-MM-DD format")
	}
	return ResolveWeekStart(&t, time.Time{})
}

// truncateToDate keeps the calendar date of t as midnight UTC.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
