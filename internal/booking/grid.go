package booking

import (
	"errors"
	"sort"
	"sync"

	"pitchplease/internal/models"
)

var (
	ErrSlotUnavailable = errors.New("slot is already booked")
	ErrSlotNotFound    = errors.New("no such slot")
)

// Grid is the rendered slot set for one facility and date together with
// the user's selection. A new Grid starts with nothing selected.
type Grid struct {
	FacilityID int64
	Date       string
	Degraded   bool

	mu       sync.RWMutex
	slots    []models.TimeSlot
	selected map[int]bool
}

// NewGrid builds a grid over slots.
func NewGrid(facilityID int64, date string, slots []models.TimeSlot, degraded bool) *Grid {
	cp := append([]models.TimeSlot(nil), slots...)
	sort.Slice(cp, func(i, j int) bool { return cp[i].StartHour < cp[j].StartHour })
	return &Grid{
		FacilityID: facilityID,
		Date:       date,
		Degraded:   degraded,
		slots:      cp,
		selected:   make(map[int]bool),
	}
}

// Slots returns the grid's slots in hour order.
func (g *Grid) Slots() []models.TimeSlot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]models.TimeSlot(nil), g.slots...)
}

// IsSelected reports whether the slot starting at startHour is selected.
func (g *Grid) IsSelected(startHour int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.selected[startHour]
}

// Toggle flips the selection of an available slot and returns the new
// selection state. Unavailable or unknown slots are left untouched.
func (g *Grid) Toggle(startHour int) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	slot, ok := g.find(startHour)
	if !ok {
		return false, ErrSlotNotFound
	}
	if !slot.Available {
		return false, ErrSlotUnavailable
	}
	if g.selected[startHour] {
		delete(g.selected, startHour)
		return false, nil
	}
	g.selected[startHour] = true
	return true, nil
}

// ToggleAll toggles every hour in order. If any hour cannot be toggled the
// selection is left as it was and the error names that hour.
func (g *Grid) ToggleAll(startHours ...int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, h := range startHours {
		slot, ok := g.find(h)
		if !ok {
			return &HourError{Hour: h, Err: ErrSlotNotFound}
		}
		if !slot.Available {
			return &HourError{Hour: h, Err: ErrSlotUnavailable}
		}
	}
	for _, h := range startHours {
		if g.selected[h] {
			delete(g.selected, h)
		} else {
			g.selected[h] = true
		}
	}
	return nil
}

// HourError ties a toggle failure to its hour.
type HourError struct {
	Hour int
	Err  error
}

func (e *HourError) Error() string { return FormatTime(e.Hour) + ": " + e.Err.Error() }

func (e *HourError) Unwrap() error { return e.Err }

// Selected returns the selected slots in ascending hour order.
func (g *Grid) Selected() []models.TimeSlot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]models.TimeSlot, 0, len(g.selected))
	for _, s := range g.slots {
		if g.selected[s.StartHour] {
			out = append(out, s)
		}
	}
	return out
}

func (g *Grid) find(startHour int) (models.TimeSlot, bool) {
	for _, s := range g.slots {
		if s.StartHour == startHour {
			return s, true
		}
	}
	return models.TimeSlot{}, false
}
