package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"pitchplease/internal/booking"
	"pitchplease/internal/events"
)

func (a *App) book(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usageError(commands["book"].usage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	date := a.Window.Today()
	if len(args) == 2 {
		date = args[1]
	}
	return a.openBooking(ctx, id, date)
}

// openBooking shows the booking view of a facility for date.
func (a *App) openBooking(ctx context.Context, facilityID int64, date string) error {
	if _, err := a.Window.Validate(date); err != nil {
		return err
	}
	f, err := a.Backend.GetFacility(ctx, facilityID)
	if err != nil {
		return fmt.Errorf("get facility: %w", err)
	}
	a.view = view{facility: f}
	a.out.facility(f)
	return a.loadGrid(ctx, date)
}

func (a *App) date(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError(commands["date"].usage)
	}
	if a.view.facility == nil {
		return usageError("book <facilityId> first")
	}
	if _, err := a.Window.Validate(args[0]); err != nil {
		return err
	}
	return a.loadGrid(ctx, args[0])
}

// loadGrid replaces the grid; the previous selection is dropped.
func (a *App) loadGrid(ctx context.Context, date string) error {
	res, err := a.Resolver.Resolve(ctx, a.view.facility.ID, date)
	if err != nil {
		a.view.grid = nil
		return err
	}
	a.view.grid = booking.NewGrid(a.view.facility.ID, date, res.Slots, res.Degraded)
	a.view.page = nil
	zerolog.Ctx(ctx).Debug().Int64("facility_id", a.view.facility.ID).Str("date", date).Bool("degraded", res.Degraded).Msg("grid loaded")
	return a.Bus.Publish(events.Event{Type: events.AvailabilityLoaded, Payload: a.view.grid})
}

func (a *App) toggle(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError(commands["toggle"].usage)
	}
	if a.view.grid == nil {
		return usageError("book <facilityId> first")
	}
	hours := make([]int, len(args))
	for i, arg := range args {
		hour, err := strconv.Atoi(arg)
		if err != nil {
			return usageError(commands["toggle"].usage)
		}
		hours[i] = hour
	}
	if err := a.view.grid.ToggleAll(hours...); err != nil {
		return err
	}
	return a.publishSummary()
}

func (a *App) summary(_ context.Context, _ []string) error {
	if a.view.grid == nil {
		return usageError("book <facilityId> first")
	}
	return a.publishSummary()
}

func (a *App) publishSummary() error {
	sum := booking.Summarize(a.view.grid, a.view.facility)
	return a.Bus.Publish(events.Event{Type: events.SelectionChanged, Payload: sum})
}

func (a *App) checkout(ctx context.Context, _ []string) error {
	if a.view.grid == nil {
		return booking.ErrNoSlotsSelected
	}
	h, err := a.Checkout.Proceed(ctx, a.view.grid, a.view.facility)
	if err != nil {
		return err
	}
	a.out.success("Your booking has been submitted! Redirecting to payment...")
	if err := a.Sleep(ctx, h.Delay); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Str("target", h.Target).Msg("opening payment view")
	return a.openPayment(ctx)
}
