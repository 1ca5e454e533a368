package models

// HoursPerDay is the fixed number of one-hour slots in a day.
const HoursPerDay = 24

// TimeSlot is one bookable hour [StartHour, EndHour).
type TimeSlot struct {
	StartHour int  `json:"startHour"`
	EndHour   int  `json:"endHour"`
	Available bool `json:"available"`
}

// AvailableSlotsResponse is the body of GET /bookings/available_slots.
type AvailableSlotsResponse struct {
	AvailableSlots []TimeSlot `json:"availableSlots"`
}

// ValidDay reports whether slots are exactly 24 contiguous one-hour slots
// starting at hour 0.
func ValidDay(slots []TimeSlot) bool {
	if len(slots) != HoursPerDay {
		return false
	}
	for i, s := range slots {
		if s.StartHour != i || s.EndHour != i+1 {
			return false
		}
	}
	return true
}
