// Package calculator derives display values from stored records.
package calculator

import "github.com/mmynk/peopleevents/internal/models"

// Age returns the number of whole years between birthday and today.
// The count increments on the anniversary of the birthday itself, not before.
// An unset birthday yields 0.
func Age(birthday, today models.Date) int {
	if birthday.IsZero() {
		return 0
	}
	years := today.Year - birthday.Year
	if today.Month < birthday.Month || (today.Month == birthday.Month && today.Day < birthday.Day) {
		years--
	}
	return years
}

// YearsSince returns the number of whole years since an anniversary.
func YearsSince(anniversary, today models.Date) int {
	return Age(anniversary, today)
}

// FormatDate renders a date as "Jan 5, 2024", or "" when unset.
func FormatDate(d models.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format("Jan 2, 2006")
}
