// Package availability resolves the 24 hourly slots of a facility's day.
package availability

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pitchplease/internal/metrics"
	"pitchplease/internal/models"
)

// degradedDraws is how many random hours are marked booked in degraded mode.
// Draws may repeat, so fewer hours can end up booked.
const degradedDraws = 6

// SlotSource fetches the authoritative slot partition.
type SlotSource interface {
	GetAvailableSlots(ctx context.Context, facilityID int64, date string) ([]models.TimeSlot, error)
}

// Result is a resolved day.
type Result struct {
	Slots    []models.TimeSlot
	Degraded bool
}

// Resolver prefers the backend and falls back to synthesized slots.
type Resolver struct {
	source   SlotSource
	degraded bool
	logger   *zerolog.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRand sets the random source used in degraded mode.
func WithRand(r *rand.Rand) Option {
	return func(res *Resolver) { res.rnd = r }
}

// WithDegradedMode toggles the synthesized fallback.
func WithDegradedMode(enabled bool) Option {
	return func(res *Resolver) { res.degraded = enabled }
}

// NewResolver creates a resolver. Degraded mode is on unless disabled.
func NewResolver(source SlotSource, logger *zerolog.Logger, opts ...Option) *Resolver {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	r := &Resolver{
		source:   source,
		degraded: true,
		logger:   logger,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the day's slots. A backend answer is used as-is; any
// failure yields synthesized data when degraded mode is on.
func (r *Resolver) Resolve(ctx context.Context, facilityID int64, date string) (Result, error) {
	slots, err := r.source.GetAvailableSlots(ctx, facilityID, date)
	if err == nil {
		metrics.IncAvailability("backend")
		return Result{Slots: slots}, nil
	}
	metrics.IncAPIError("available_slots")

	if !r.degraded || ctx.Err() != nil {
		return Result{}, fmt.Errorf("available slots: %w", err)
	}

	r.logger.Warn().
		Err(err).
		Int64("facility_id", facilityID).
		Str("date", date).
		Msg("availability unavailable, using synthesized slots")
	metrics.IncAvailability("degraded")
	return Result{Slots: r.synthesize(), Degraded: true}, nil
}

func (r *Resolver) synthesize() []models.TimeSlot {
	slots := make([]models.TimeSlot, models.HoursPerDay)
	for h := range slots {
		slots[h] = models.TimeSlot{StartHour: h, EndHour: h + 1, Available: true}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < degradedDraws; i++ {
		slots[r.rnd.Intn(models.HoursPerDay)].Available = false
	}
	return slots
}
