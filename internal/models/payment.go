package models

// PaymentMethod names accepted by the payment service.
type PaymentMethod string

const (
	MethodCreditCard   PaymentMethod = "Credit Card"
	MethodPayPal       PaymentMethod = "PayPal"
	MethodBankTransfer PaymentMethod = "Bank Transfer"
)

// PaymentMethods lists methods in display order.
var PaymentMethods = []PaymentMethod{MethodCreditCard, MethodPayPal, MethodBankTransfer}

// ParsePaymentMethod maps user input (card, paypal, bank, or the full name)
// to a method.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch s {
	case "card", "credit", "credit-card", string(MethodCreditCard):
		return MethodCreditCard, true
	case "paypal", string(MethodPayPal):
		return MethodPayPal, true
	case "bank", "bank-transfer", string(MethodBankTransfer):
		return MethodBankTransfer, true
	}
	return "", false
}

// StatusCompleted is the status sent with every simulated payment.
const StatusCompleted = "COMPLETED"

// PaymentRequest is the body of POST /payments/create.
type PaymentRequest struct {
	UserID        int64         `json:"userId"`
	UserName      string        `json:"userName"`
	FacilityID    int64         `json:"facilityId"`
	FacilityName  string        `json:"facilityName"`
	AddonsString  string        `json:"addonsString"`
	Date          string        `json:"date"`
	TimeSlots     []DraftSlot   `json:"timeSlots"`
	TotalAmount   float64       `json:"totalAmount"`
	HourlyRate    float64       `json:"hourlyRate"`
	Hours         int           `json:"hours"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	PaymentStatus string        `json:"paymentStatus"`
}

// PaymentResponse is the part of the create response the client relies on.
type PaymentResponse struct {
	ID            int64  `json:"id"`
	BookingID     int64  `json:"bookingId,omitempty"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
	TransactionID string `json:"transactionId,omitempty"`
}

// Payment is a transaction record in the payment history listings.
type Payment struct {
	ID            int64     `json:"paymentId"`
	BookingID     int64     `json:"bookingId"`
	UserID        int64     `json:"userId"`
	UserName      string    `json:"userName"`
	FacilityID    int64     `json:"facilityId"`
	FacilityName  string    `json:"facilityName"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"paymentMethod"`
	PaymentStatus string    `json:"paymentStatus"`
	TransactionID string    `json:"transactionId"`
	CreatedAt     LocalTime `json:"createdAt"`
}
