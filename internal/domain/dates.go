package domain

import "time"

// Date returns the UTC midnight instant for a calendar date. Event and
// race dates are normalized this way so calendar comparisons survive
// snapshot round trips regardless of the host timezone.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf truncates an instant to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}
