package models

// DraftKey is the transient store key holding the serialized BookingDraft.
const DraftKey = "bookingData"

// DraftSlot is a selected slot as carried to the payment page.
type DraftSlot struct {
	StartHour int    `json:"startHour"`
	EndHour   int    `json:"endHour"`
	Date      string `json:"date"`
}

// BookingDraft is the prospective booking handed from checkout to payment.
// It is not authoritative; the backend creates the real record on payment.
type BookingDraft struct {
	FacilityID    int64       `json:"facilityId"`
	FacilityName  string      `json:"facilityName"`
	Date          string      `json:"date"`
	FormattedDate string      `json:"formattedDate"`
	TimeSlots     []DraftSlot `json:"timeSlots"`
	HourlyRate    float64     `json:"hourlyRate"`
	Hours         int         `json:"hours"`
	TotalAmount   string      `json:"totalAmount"`
}
