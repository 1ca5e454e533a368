package booking

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pitchplease/internal/metrics"
	"pitchplease/internal/models"
	"pitchplease/internal/store"
)

// ErrNoSlotsSelected is returned by Checkout when nothing is selected.
var ErrNoSlotsSelected = errors.New("please select at least one time slot to book")

// HandoffDelay is how long the checkout confirmation stays up before the
// payment view opens.
const HandoffDelay = 1500 * time.Millisecond

// Handoff tells the caller where to go after checkout.
type Handoff struct {
	TempBookingID string
	FacilityID    int64
	Target        string
	Delay         time.Duration
	Draft         models.BookingDraft
}

// Checkout turns a selection into a BookingDraft.
type Checkout struct {
	store  store.Store
	logger *zerolog.Logger
}

// NewCheckout creates a checkout over the transient store.
func NewCheckout(s store.Store, logger *zerolog.Logger) *Checkout {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Checkout{store: s, logger: logger}
}

// Proceed stores the draft under models.DraftKey and returns the payment
// hand-off. With no selection nothing is stored.
func (c *Checkout) Proceed(ctx context.Context, g *Grid, f *models.Facility) (*Handoff, error) {
	sum := Summarize(g, f)
	if !sum.Visible {
		metrics.IncCheckout("empty")
		return nil, ErrNoSlotsSelected
	}

	selected := g.Selected()
	slots := make([]models.DraftSlot, len(selected))
	for i, s := range selected {
		slots[i] = models.DraftSlot{StartHour: s.StartHour, EndHour: s.EndHour, Date: g.Date}
	}
	draft := models.BookingDraft{
		FacilityID:    f.ID,
		FacilityName:  f.Name,
		Date:          g.Date,
		FormattedDate: sum.FormattedDate,
		TimeSlots:     slots,
		HourlyRate:    f.HourlyRate,
		Hours:         sum.Hours,
		TotalAmount:   FormatMoney(sum.Total),
	}
	if err := store.SetJSON(ctx, c.store, models.DraftKey, draft); err != nil {
		metrics.IncCheckout("error")
		return nil, fmt.Errorf("save booking draft: %w", err)
	}

	tempID := "temp-" + uuid.NewString()
	q := url.Values{}
	q.Set("bookingId", tempID)
	q.Set("facilityId", strconv.FormatInt(f.ID, 10))

	c.logger.Info().
		Int64("facility_id", f.ID).
		Str("date", g.Date).
		Int("hours", sum.Hours).
		Str("total", draft.TotalAmount).
		Msg("booking draft stored")
	metrics.IncCheckout("ok")

	return &Handoff{
		TempBookingID: tempID,
		FacilityID:    f.ID,
		Target:        "payment?" + q.Encode(),
		Delay:         HandoffDelay,
		Draft:         draft,
	}, nil
}
