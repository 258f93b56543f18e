package mailer

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"backend/internal/domain/models"
	"backend/internal/utils"
)

// BookingNotifier emails the admin inbox when a booking is created.
type BookingNotifier struct {
	Client     *Client
	AdminEmail string
}

func (n BookingNotifier) NotifyBookingCreated(b models.Booking, titles map[string]string) error {
	if n.Client == nil || n.AdminEmail == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return n.Client.Send(ctx, n.AdminEmail, "New Booking Received - Desert Planners", BookingNotificationHTML(b, titles))
}

// BookingNotificationHTML renders the admin summary email. Amounts come from
// the stored snapshot, same as the invoice.
func BookingNotificationHTML(b models.Booking, titles map[string]string) string {
	var items strings.Builder
	for _, it := range b.Items {
		title := titles[it.CatalogRef]
		if title == "" {
			title = "Tour " + it.CatalogRef
		}
		fmt.Fprintf(&items, `
        <li style="margin-bottom:10px;">
          <b>Tour:</b> %s<br/>
          <b>Date:</b> %s<br/>
          <b>Adults:</b> %d x %s<br/>
          <b>Children:</b> %d x %s<br/>
          <b>Line Total:</b> %s
        </li>`,
			html.EscapeString(title),
			html.EscapeString(it.Date),
			it.AdultCount, utils.FormatMoney(it.AdultPrice),
			it.ChildCount, utils.FormatMoney(it.ChildPrice),
			utils.FormatAED(it.LineTotal),
		)
	}

	contact := b.GuestContact
	if contact == "" {
		contact = "---"
	}
	special := b.SpecialRequest
	if special == "" {
		special = "None"
	}

	return fmt.Sprintf(`
<div style="font-family:'Segoe UI',Arial,sans-serif;line-height:1.7;background:#f7f7f7;padding:25px;">
  <div style="max-width:600px;margin:0 auto;background:#fff;border-radius:14px;overflow:hidden;">
    <div style="background:linear-gradient(90deg,#e82429,#721011);padding:22px 0;text-align:center;color:#fff;">
      <h1 style="margin:0;font-size:26px;font-weight:700;">Desert Planners</h1>
      <p style="margin:5px 0 0;font-size:15px;opacity:0.9;">New Booking Received</p>
    </div>
    <div style="padding:28px 30px;">
      <h2 style="margin-top:0;color:#721011;">Booking by %s</h2>
      <div style="background:#fafafa;border:1px solid #eee;border-radius:12px;padding:18px 20px;margin-top:18px;">
        <h3 style="color:#721011;margin-top:0;">Customer Details</h3>
        <p style="margin:5px 0;"><b>Name:</b> %s</p>
        <p style="margin:5px 0;"><b>Email:</b> %s</p>
        <p style="margin:5px 0;"><b>Contact:</b> %s</p>
        <p style="margin:5px 0;"><b>Pickup Point:</b> %s</p>
        <p style="margin:5px 0;"><b>Drop Point:</b> %s</p>
        <p style="margin:5px 0;"><b>Special Request:</b> %s</p>
        <p style="margin:5px 0;"><b>Booking ID:</b> %d</p>
      </div>
      <div style="background:#fafafa;border:1px solid #eee;border-radius:12px;padding:18px 20px;margin:20px 0;">
        <h3 style="color:#721011;margin-top:0;">Booking Summary</h3>
        <ul style="padding-left:18px;color:#404041;margin:0;">%s</ul>
        <hr>
        <p><b>Subtotal:</b> %s</p>
        <p><b>Transaction Fee (%.2f%%):</b> %s</p>
        <p><b>Total Price:</b> <span style="color:#e82429;">%s</span></p>
      </div>
    </div>
  </div>
</div>`,
		html.EscapeString(b.CustomerName()),
		html.EscapeString(b.CustomerName()),
		html.EscapeString(b.GuestEmail),
		html.EscapeString(contact),
		html.EscapeString(b.PickupPoint),
		html.EscapeString(b.DropPoint),
		html.EscapeString(special),
		b.ID,
		items.String(),
		utils.FormatAED(b.Subtotal),
		b.FeeRate*100,
		utils.FormatAED(b.TransactionFee),
		utils.FormatAED(b.TotalPrice),
	)
}
