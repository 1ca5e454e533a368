// Package booking holds the slot selection, summary and checkout logic of
// the booking view.
package booking

import (
	"fmt"
	"time"

	"pitchplease/internal/models"
)

// LongDateLayout matches the en-US long date shown in the summary.
const LongDateLayout = "Monday, January 2, 2006"

// FormatTime renders an hour boundary in 12-hour form. Hour 24 is the
// midnight that ends the day and renders as "12:00 AM".
func FormatTime(hour int) string {
	h := hour % 24
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:00 %s", display, suffix)
}

// FormatRange renders a slot as "9:00 AM - 10:00 AM".
func FormatRange(startHour, endHour int) string {
	return FormatTime(startHour) + " - " + FormatTime(endHour)
}

// FormatMoney rounds to two digits.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatDate renders an ISO date in the long en-US form. Unparseable input
// is returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(LongDateLayout)
}
