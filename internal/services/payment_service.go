package services

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/gateway"
	"backend/internal/repositories"
	"backend/internal/utils"
)

// GatewayClient is the slice of the Paymennt client the service needs,
// kept small so tests can stub it.
type GatewayClient interface {
	CreateCheckout(ctx context.Context, req gateway.CheckoutRequest) (gateway.CheckoutResult, error)
}

type PaymentService struct {
	BookingRepo repositories.BookingRepository
	PaymentRepo repositories.PaymentRepository
	Gateway     GatewayClient
	FrontendURL string
	RequestID   string
}

// CreateSession asks the gateway for a hosted-checkout redirect URL and
// records a pending payment attempt. Gateway failure leaves the booking
// untouched in pending/pending; a stuck pending payment is recoverable via
// manual confirmation.
func (s PaymentService) CreateSession(ctx context.Context, bookingID int64) (string, error) {
	if bookingID <= 0 {
		return "", domain.ValidationError{Field: "bookingId", Msg: "booking id is required"}
	}
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return "", err
	}

	result, err := s.Gateway.CreateCheckout(ctx, buildCheckoutRequest(b, s.FrontendURL))
	if err != nil {
		utils.LogError(s.RequestID, "payment", "create_session", err)
		return "", err
	}

	record := models.Payment{
		BookingID:     b.ID,
		TransactionID: result.TransactionID,
		Amount:        b.TotalPrice,
		Currency:      "AED",
		Status:        models.PaymentPending,
		Gateway:       "Paymennt",
		PaymentInfo:   result.Raw,
	}
	if err := s.PaymentRepo.Upsert(record); err != nil {
		utils.LogError(s.RequestID, "payment", "record_session", err)
	}

	utils.LogEvent(s.RequestID, "payment", "create_session",
		"booking_id="+strconv.FormatInt(b.ID, 10))
	return result.RedirectURL, nil
}

func buildCheckoutRequest(b models.Booking, frontendURL string) gateway.CheckoutRequest {
	id := strconv.FormatInt(b.ID, 10)
	first, last := splitName(b.CustomerName())

	items := make([]gateway.Item, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, gateway.Item{
			Name:      "Tour " + it.CatalogRef,
			SKU:       it.CatalogRef,
			UnitPrice: it.LineTotal,
			Quantity:  1,
			LineTotal: it.LineTotal,
		})
	}
	if len(items) == 0 {
		items = append(items, gateway.Item{
			Name: "Tour Booking", UnitPrice: b.TotalPrice, Quantity: 1, LineTotal: b.TotalPrice,
		})
	}

	addr := gateway.Address{
		Name: b.CustomerName(), Address1: "Dubai", City: "Dubai",
		State: "Dubai", Zip: "00000", Country: "AE", Set: true,
	}
	return gateway.CheckoutRequest{
		RequestID: "REQ-" + id,
		OrderID:   id,
		Currency:  "AED",
		Amount:    b.TotalPrice,
		Totals: gateway.Totals{
			Subtotal:             b.TotalPrice,
			SkipTotalsValidation: true,
		},
		Items: items,
		Customer: gateway.Customer{
			ID:        id,
			FirstName: first,
			LastName:  last,
			Email:     b.GuestEmail,
			Phone:     b.GuestContact,
		},
		BillingAddress:  addr,
		DeliveryAddress: addr,
		ReturnURL:       strings.TrimRight(frontendURL, "/") + "/booking-success?reference=" + id,
		Language:        "EN",
	}
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "Guest", "User"
	case 1:
		return parts[0], "User"
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// webhookEvent tolerates both the event-typed shape ({type, data:{...}}) and
// flat status payloads.
type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Reference     string `json:"reference"`
		ID            string `json:"id"`
		TransactionID string `json:"transactionId"`
		Status        string `json:"status"`
	} `json:"data"`
	Reference     string `json:"reference"`
	BookingID     string `json:"bookingId"`
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
}

// NormalizeOutcome maps gateway vocabulary onto the payment lifecycle.
// Unknown statuses return "" and are ignored by the webhook.
func NormalizeOutcome(eventType, status string) string {
	switch strings.ToLower(strings.TrimSpace(eventType)) {
	case "payment.success":
		return models.PaymentPaid
	case "payment.failed":
		return models.PaymentFailed
	}
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "paid", "success", "successful":
		return models.PaymentPaid
	case "failed", "cancelled", "canceled":
		return models.PaymentFailed
	}
	return ""
}

// HandleWebhook consumes the raw gateway callback. Callers always answer
// 200 to the gateway regardless of the returned error; this method reports
// it for logging only.
func (s PaymentService) HandleWebhook(raw []byte) error {
	var ev webhookEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return domain.ValidationError{Field: "webhook", Msg: "unparseable payload", Err: err}
	}

	outcome := NormalizeOutcome(ev.Type, firstNonEmpty(ev.Data.Status, ev.Status))
	if outcome == "" {
		utils.LogEvent(s.RequestID, "payment", "webhook", "ignored event type="+ev.Type)
		return nil
	}

	ref := firstNonEmpty(ev.Data.Reference, ev.Reference, ev.BookingID)
	bookingID, err := strconv.ParseInt(strings.TrimSpace(ref), 10, 64)
	if err != nil || bookingID <= 0 {
		return domain.ValidationError{Field: "reference", Msg: "missing booking reference"}
	}
	txnID := firstNonEmpty(ev.Data.ID, ev.Data.TransactionID, ev.TransactionID)

	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return err
	}

	if err := s.PaymentRepo.Upsert(models.Payment{
		BookingID:     bookingID,
		TransactionID: txnID,
		Amount:        b.TotalPrice,
		Currency:      "AED",
		Status:        outcome,
		Gateway:       "Paymennt",
		PaymentInfo:   json.RawMessage(raw),
	}); err != nil {
		return err
	}

	return s.applyOutcome(b, outcome)
}

// applyOutcome drives both lifecycle dimensions from a payment result.
// Transitions are idempotent; a replayed webhook changes nothing.
func (s PaymentService) applyOutcome(b models.Booking, outcome string) error {
	payment := b.PaymentStatus
	status := b.Status

	if next, changed, err := models.TransitionPaymentStatus(payment, outcome); err == nil && changed {
		payment = next
	}

	switch outcome {
	case models.PaymentPaid:
		if next, changed, err := models.TransitionStatus(status, models.BookingConfirmed); err == nil && changed {
			status = next
		}
	case models.PaymentFailed:
		if next, changed, err := models.TransitionStatus(status, models.BookingCancelled); err == nil && changed {
			status = next
		}
	}

	if payment == b.PaymentStatus && status == b.Status {
		return nil
	}
	if err := s.BookingRepo.UpdateStatuses(b.ID, status, payment); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "payment", "webhook",
		"booking_id="+strconv.FormatInt(b.ID, 10)+" status="+status+" payment="+payment)
	return nil
}

// ManualConfirm is the ops fallback for environments without a reachable
// webhook: it forces confirmed/paid regardless of the current state.
func (s PaymentService) ManualConfirm(bookingID int64) (models.Booking, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if b.Status == models.BookingConfirmed && b.PaymentStatus == models.PaymentPaid {
		return b, nil
	}
	if err := s.BookingRepo.UpdateStatuses(b.ID, models.BookingConfirmed, models.PaymentPaid); err != nil {
		return models.Booking{}, err
	}
	b.Status = models.BookingConfirmed
	b.PaymentStatus = models.PaymentPaid
	utils.LogEvent(s.RequestID, "payment", "manual_confirm", "booking_id="+strconv.FormatInt(b.ID, 10))
	return b, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
