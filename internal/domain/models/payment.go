package models

import (
	"encoding/json"
	"time"
)

// Payment is one gateway payment attempt against a booking. The booking is
// referenced by id only; deleting a booking does not touch payment history.
type Payment struct {
	ID            int64           `json:"id"`
	BookingID     int64           `json:"bookingId"`
	TransactionID string          `json:"transactionId,omitempty"`
	Amount        float64         `json:"amount"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	Method        string          `json:"method,omitempty"`
	Gateway       string          `json:"gateway"`
	PaymentInfo   json.RawMessage `json:"paymentInfo,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
