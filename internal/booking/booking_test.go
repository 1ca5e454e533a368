package booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchplease/internal/models"
	"pitchplease/internal/store"
)

func daySlots(booked ...int) []models.TimeSlot {
	taken := map[int]bool{}
	for _, h := range booked {
		taken[h] = true
	}
	slots := make([]models.TimeSlot, models.HoursPerDay)
	for h := range slots {
		slots[h] = models.TimeSlot{StartHour: h, EndHour: h + 1, Available: !taken[h]}
	}
	return slots
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "12:00 AM"},
		{1, "1:00 AM"},
		{11, "11:00 AM"},
		{12, "12:00 PM"},
		{13, "1:00 PM"},
		{23, "11:00 PM"},
		{24, "12:00 AM"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTime(tt.hour), "hour %d", tt.hour)
	}
	assert.Equal(t, "11:00 PM - 12:00 AM", FormatRange(23, 24))
}

func TestFormatMoneyAndDate(t *testing.T) {
	assert.Equal(t, "40.00", FormatMoney(40))
	assert.Equal(t, "10.13", FormatMoney(10.125000001))
	assert.Equal(t, "Tuesday, October 20, 2026", FormatDate("2026-10-20"))
	assert.Equal(t, "garbage", FormatDate("garbage"))
}

func TestGridToggle(t *testing.T) {
	g := NewGrid(1, "2026-10-20", daySlots(5), false)

	on, err := g.Toggle(9)
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, g.IsSelected(9))

	_, err = g.Toggle(5)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.False(t, g.IsSelected(5))

	_, err = g.Toggle(30)
	assert.ErrorIs(t, err, ErrSlotNotFound)

	on, err = g.Toggle(9)
	require.NoError(t, err)
	assert.False(t, on)
	assert.Empty(t, g.Selected())
}

func TestGridSelectedOrder(t *testing.T) {
	g := NewGrid(1, "2026-10-20", daySlots(), false)
	for _, h := range []int{14, 3, 9} {
		_, err := g.Toggle(h)
		require.NoError(t, err)
	}
	var hours []int
	for _, s := range g.Selected() {
		hours = append(hours, s.StartHour)
	}
	assert.Equal(t, []int{3, 9, 14}, hours)
}

func TestSummarize(t *testing.T) {
	f := &models.Facility{ID: 4, Name: "Court A", HourlyRate: 20}
	g := NewGrid(4, "2026-10-20", daySlots(), false)

	assert.False(t, Summarize(g, f).Visible)

	_, _ = g.Toggle(9)
	_, _ = g.Toggle(14)
	sum := Summarize(g, f)
	assert.True(t, sum.Visible)
	assert.Equal(t, 2, sum.Hours)
	assert.Equal(t, "40.00", FormatMoney(sum.Total))
	assert.Equal(t, []string{"9:00 AM - 10:00 AM", "2:00 PM - 3:00 PM"}, sum.Ranges)
	assert.Equal(t, "Tuesday, October 20, 2026", sum.FormattedDate)

	_, _ = g.Toggle(9)
	sum = Summarize(g, f)
	assert.Equal(t, 1, sum.Hours)
	assert.Equal(t, "20.00", FormatMoney(sum.Total))

	_, _ = g.Toggle(14)
	assert.False(t, Summarize(g, f).Visible)
}

func TestCheckout_Empty(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	c := NewCheckout(st, nil)

	_, err := c.Proceed(ctx, NewGrid(1, "2026-10-20", daySlots(), false), &models.Facility{ID: 1, HourlyRate: 10})
	assert.ErrorIs(t, err, ErrNoSlotsSelected)

	_, err = st.Get(ctx, models.DraftKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCheckout_StoresDraft(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	c := NewCheckout(st, nil)
	f := &models.Facility{ID: 4, Name: "Court A", HourlyRate: 20}
	g := NewGrid(4, "2026-10-20", daySlots(), false)
	_, _ = g.Toggle(14)
	_, _ = g.Toggle(9)

	h, err := c.Proceed(ctx, g, f)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(h.TempBookingID, "temp-"))
	assert.Contains(t, h.Target, "facilityId=4")
	assert.Contains(t, h.Target, "bookingId="+h.TempBookingID)
	assert.Equal(t, HandoffDelay, h.Delay)

	var draft models.BookingDraft
	require.NoError(t, store.GetJSON(ctx, st, models.DraftKey, &draft))
	assert.Equal(t, int64(4), draft.FacilityID)
	assert.Equal(t, "Court A", draft.FacilityName)
	assert.Equal(t, 2, draft.Hours)
	assert.Equal(t, "40.00", draft.TotalAmount)
	require.Len(t, draft.TimeSlots, 2)
	assert.Equal(t, 9, draft.TimeSlots[0].StartHour)
	assert.Equal(t, "2026-10-20", draft.TimeSlots[1].Date)
}

func TestWindow(t *testing.T) {
	now := time.Date(2026, 10, 14, 18, 30, 0, 0, time.Local)
	w := Window{MaxAdvance: 90 * 24 * time.Hour, Now: func() time.Time { return now }}

	_, err := w.Validate("2026-10-14")
	assert.NoError(t, err)
	_, err = w.Validate("2027-01-12")
	assert.NoError(t, err)

	_, err = w.Validate("2026-10-13")
	assert.ErrorIs(t, err, ErrDateInPast)
	_, err = w.Validate("2027-01-13")
	assert.ErrorIs(t, err, ErrDateTooFar)
	_, err = w.Validate("14/10/2026")
	assert.ErrorIs(t, err, ErrDateMalformed)

	assert.Equal(t, "2026-10-14", w.Today())
}

func TestGridToggleAll(t *testing.T) {
	g := NewGrid(1, "2026-10-20", daySlots(5), false)

	err := g.ToggleAll(9, 5, 14)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	var he *HourError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, 5, he.Hour)
	assert.Equal(t, "5:00 AM: "+ErrSlotUnavailable.Error(), err.Error())
	assert.Empty(t, g.Selected())

	assert.ErrorIs(t, g.ToggleAll(9, 30), ErrSlotNotFound)
	assert.Empty(t, g.Selected())

	require.NoError(t, g.ToggleAll(9, 14))
	assert.Len(t, g.Selected(), 2)
	require.NoError(t, g.ToggleAll(14))
	assert.Equal(t, []int{9}, []int{g.Selected()[0].StartHour})
}
