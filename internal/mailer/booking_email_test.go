package mailer

import (
	"testing"

	"backend/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestBookingNotificationHTML(t *testing.T) {
	b := models.Booking{
		ID:             5,
		GuestName:      "Fatima Noor",
		GuestEmail:     "fatima@example.com",
		GuestContact:   "+971501234567",
		PickupPoint:    "Marina",
		DropPoint:      "Airport",
		Subtotal:       1200,
		FeeRate:        0.0375,
		TransactionFee: 45,
		TotalPrice:     1245,
		Items: []models.BookingItem{
			{CatalogRef: "3", Date: "2026-09-15", AdultCount: 2, ChildCount: 1, AdultPrice: 500, ChildPrice: 200, LineTotal: 1200},
		},
	}

	out := BookingNotificationHTML(b, map[string]string{"3": "Desert Safari"})

	assert.Contains(t, out, "Fatima Noor")
	assert.Contains(t, out, "Desert Safari")
	assert.Contains(t, out, "AED 1,200.00")
	assert.Contains(t, out, "Transaction Fee (3.75%)")
	assert.Contains(t, out, "AED 45.00")
	assert.Contains(t, out, "AED 1,245.00")
}

func TestBookingNotificationHTMLEscapesInput(t *testing.T) {
	b := models.Booking{
		ID:        6,
		GuestName: `<script>alert("x")</script>`,
	}
	out := BookingNotificationHTML(b, nil)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestBookingNotificationHTMLFallbackTitle(t *testing.T) {
	b := models.Booking{
		ID:    7,
		Items: []models.BookingItem{{CatalogRef: "9"}},
	}
	out := BookingNotificationHTML(b, nil)
	assert.Contains(t, out, "Tour 9")
}

func TestNotifyBookingCreatedSkipsWithoutConfig(t *testing.T) {
	n := BookingNotifier{}
	assert.NoError(t, n.NotifyBookingCreated(models.Booking{}, nil))

	n = BookingNotifier{Client: NewClient(Config{})}
	assert.NoError(t, n.NotifyBookingCreated(models.Booking{}, nil))
}
