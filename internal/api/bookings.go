package api

import (
	"context"
	"fmt"
	"net/url"

	"pitchplease/internal/models"
)

// GetAvailableSlots fetches the day's slot partition for a facility.
// Slots are never cached: availability changes with every booking.
func (c *Client) GetAvailableSlots(ctx context.Context, facilityID int64, date string) ([]models.TimeSlot, error) {
	endpoint := fmt.Sprintf("%s?facilityId=%d&date=%s", c.url("/bookings/available_slots"), facilityID, url.QueryEscape(date))
	var resp models.AvailableSlotsResponse
	if err := c.doGet(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.AvailableSlots, nil
}
