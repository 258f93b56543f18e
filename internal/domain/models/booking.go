package models

import (
	"time"

	"backend/internal/domain"
)

// Booking status lifecycle: pending -> confirmed | cancelled (both terminal).
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Payment status lifecycle: pending -> paid | failed (both terminal).
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// BookingItem is one priced line inside a booking. Prices are frozen at
// booking time; the invoice never recomputes them.
type BookingItem struct {
	ID         int64   `json:"id,omitempty"`
	CatalogRef string  `json:"catalogRef"`
	Date       string  `json:"date"`
	AdultCount int     `json:"adultCount"`
	ChildCount int     `json:"childCount"`
	AdultPrice float64 `json:"adultPrice"`
	ChildPrice float64 `json:"childPrice"`
	LineTotal  float64 `json:"lineTotal"`
	Position   int     `json:"-"`
}

// Booking is the persisted priced snapshot. Immutable after creation except
// for status/paymentStatus, which only move through the transition rules
// below.
type Booking struct {
	ID             int64         `json:"id"`
	UserID         int64         `json:"userId,omitempty"`
	GuestName      string        `json:"guestName,omitempty"`
	GuestEmail     string        `json:"guestEmail,omitempty"`
	GuestContact   string        `json:"guestContact,omitempty"`
	Items          []BookingItem `json:"items"`
	PickupPoint    string        `json:"pickupPoint"`
	DropPoint      string        `json:"dropPoint"`
	SpecialRequest string        `json:"specialRequest,omitempty"`
	Subtotal       float64       `json:"subtotal"`
	FeeRate        float64       `json:"transactionFeeRate"`
	TransactionFee float64       `json:"transactionFee"`
	TotalPrice     float64       `json:"totalPrice"`
	Status         string        `json:"status"`
	PaymentStatus  string        `json:"paymentStatus"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// IsGuest reports whether the booking was made without an account.
func (b Booking) IsGuest() bool { return b.UserID == 0 }

// CustomerName returns the display name regardless of identity mode.
func (b Booking) CustomerName() string {
	if b.GuestName != "" {
		return b.GuestName
	}
	return "Registered Customer"
}

func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// TransitionStatus applies a booking-status transition. Re-applying the
// current status is a no-op success (changed=false). Terminal states accept
// no further transitions.
func TransitionStatus(current, target string) (string, bool, error) {
	if !ValidBookingStatus(target) {
		return current, false, domain.ValidationError{Field: "status", Msg: "unknown status " + target}
	}
	if current == target {
		return current, false, nil
	}
	if current != BookingPending {
		return current, false, domain.ValidationError{Field: "status", Msg: "booking is already " + current}
	}
	if target == BookingPending {
		return current, false, domain.ValidationError{Field: "status", Msg: "cannot revert to pending"}
	}
	return target, true, nil
}

// TransitionPaymentStatus mirrors TransitionStatus for the payment dimension.
// The two dimensions are independent: a confirmed booking's payment can still
// move pending -> failed.
func TransitionPaymentStatus(current, target string) (string, bool, error) {
	if !ValidPaymentStatus(target) {
		return current, false, domain.ValidationError{Field: "paymentStatus", Msg: "unknown payment status " + target}
	}
	if current == target {
		return current, false, nil
	}
	if current != PaymentPending {
		return current, false, domain.ValidationError{Field: "paymentStatus", Msg: "payment is already " + current}
	}
	if target == PaymentPending {
		return current, false, domain.ValidationError{Field: "paymentStatus", Msg: "cannot revert to pending"}
	}
	return target, true, nil
}
