package booking

import (
	"errors"
	"fmt"
	"time"

	"pitchplease/internal/models"
)

var (
	ErrDateInPast    = errors.New("date is in the past")
	ErrDateTooFar    = errors.New("date is beyond the booking window")
	ErrDateMalformed = errors.New("date must be YYYY-MM-DD")
)

// Window bounds the dates offered for booking: today through today+MaxAdvance.
type Window struct {
	MaxAdvance time.Duration
	Now        func() time.Time
}

// Validate parses date and checks it against the window.
func (w Window) Validate(date string) (time.Time, error) {
	d, err := time.ParseInLocation(models.DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDateMalformed, date)
	}

	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	n := now()
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.Local)
	if d.Before(today) {
		return time.Time{}, ErrDateInPast
	}

	days := int(w.MaxAdvance / (24 * time.Hour))
	if days > 0 && d.After(today.AddDate(0, 0, days)) {
		return time.Time{}, fmt.Errorf("%w (%d days)", ErrDateTooFar, days)
	}
	return d, nil
}

// Today returns the current date in DateLayout.
func (w Window) Today() string {
	if w.Now != nil {
		return w.Now().Format(models.DateLayout)
	}
	return time.Now().Format(models.DateLayout)
}
