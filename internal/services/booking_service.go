package services

import (
	"strconv"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"
)

// BookingNotifier receives the freshly persisted booking plus display titles
// keyed by catalog ref. Delivery failures must never fail the booking.
type BookingNotifier interface {
	NotifyBookingCreated(b models.Booking, titles map[string]string) error
}

type BookingService struct {
	BookingRepo repositories.BookingRepository
	TourRepo    repositories.TourRepository
	FeeRate     float64
	Resolver    PriceResolver
	Notifier    BookingNotifier
	RequestID   string
}

type CreateBookingInput struct {
	UserID         int64
	GuestName      string
	GuestEmail     string
	GuestContact   string
	Items          []LineItemRequest
	PickupPoint    string
	DropPoint      string
	SpecialRequest string
}

func (s BookingService) resolver() PriceResolver {
	if s.Resolver != nil {
		return s.Resolver
	}
	return CatalogResolver{Tours: s.TourRepo}
}

// Create validates identity, prices the cart, and persists the snapshot in
// pending/pending. Validation happens before any write; there is no partial
// booking on failure.
func (s BookingService) Create(in CreateBookingInput) (models.Booking, error) {
	if in.UserID <= 0 {
		// Guest checkout requires the full contact triple.
		if strings.TrimSpace(in.GuestName) == "" ||
			strings.TrimSpace(in.GuestEmail) == "" ||
			strings.TrimSpace(in.GuestContact) == "" {
			return models.Booking{}, domain.ValidationError{
				Field: "guest", Msg: "guestName, guestEmail and guestContact are required for guest bookings",
			}
		}
	}

	engine := PricingEngine{FeeRate: s.FeeRate, Resolver: s.resolver()}
	cart, err := engine.Price(in.Items)
	if err != nil {
		return models.Booking{}, err
	}

	b := models.Booking{
		Items:          cart.Items,
		PickupPoint:    strings.TrimSpace(in.PickupPoint),
		DropPoint:      strings.TrimSpace(in.DropPoint),
		SpecialRequest: strings.TrimSpace(in.SpecialRequest),
		Subtotal:       cart.Subtotal,
		FeeRate:        s.FeeRate,
		TransactionFee: cart.TransactionFee,
		TotalPrice:     cart.TotalPrice,
		Status:         models.BookingPending,
		PaymentStatus:  models.PaymentPending,
	}
	if in.UserID > 0 {
		b.UserID = in.UserID
	} else {
		b.GuestName = strings.TrimSpace(in.GuestName)
		b.GuestEmail = strings.ToLower(strings.TrimSpace(in.GuestEmail))
		b.GuestContact = strings.TrimSpace(in.GuestContact)
	}

	if err := s.BookingRepo.Create(&b); err != nil {
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "create",
		"booking_id="+strconv.FormatInt(b.ID, 10)+" total="+utils.FormatMoney(b.TotalPrice))

	if s.Notifier != nil {
		if err := s.Notifier.NotifyBookingCreated(b, s.displayTitles(b.Items)); err != nil {
			utils.LogError(s.RequestID, "booking", "notify_admin", err)
		}
	}
	return b, nil
}

// displayTitles is decoration for emails/invoices; lookup failures leave the
// ref unlabeled.
func (s BookingService) displayTitles(items []models.BookingItem) map[string]string {
	titles := make(map[string]string, len(items))
	for _, it := range items {
		if _, ok := titles[it.CatalogRef]; ok {
			continue
		}
		if tour, err := s.TourRepo.GetByRef(it.CatalogRef); err == nil {
			titles[it.CatalogRef] = tour.Title
		}
	}
	return titles
}

func (s BookingService) GetByID(id int64) (models.Booking, error) {
	return s.BookingRepo.GetByID(id)
}

func (s BookingService) ListByUser(userID int64) ([]models.Booking, error) {
	if userID <= 0 {
		return nil, domain.AuthorizationError{Msg: "authentication required"}
	}
	return s.BookingRepo.ListByUser(userID)
}

func (s BookingService) ListAll() ([]models.Booking, error) {
	return s.BookingRepo.ListAll()
}

// Lookup is the guest path: both id and email are required, and the stored
// guest email must match case-insensitively. A mismatch is an authorization
// failure, distinct from not-found, so existence cannot be probed by email
// guessing.
func (s BookingService) Lookup(bookingID, email string) (models.Booking, error) {
	bookingID = strings.TrimSpace(bookingID)
	email = strings.TrimSpace(email)
	if bookingID == "" || email == "" {
		return models.Booking{}, domain.ValidationError{Field: "lookup", Msg: "bookingId and email are required"}
	}
	id, err := strconv.ParseInt(bookingID, 10, 64)
	if err != nil || id <= 0 {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	b, err := s.BookingRepo.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.GuestEmail == "" || !strings.EqualFold(b.GuestEmail, email) {
		return models.Booking{}, domain.AuthorizationError{Msg: "email does not match this booking"}
	}
	return b, nil
}

// UpdateStatus drives the booking-status dimension. Re-applying the current
// status succeeds without touching storage.
func (s BookingService) UpdateStatus(id int64, target string) (models.Booking, error) {
	b, err := s.BookingRepo.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	next, changed, err := models.TransitionStatus(b.Status, target)
	if err != nil {
		return models.Booking{}, err
	}
	if !changed {
		return b, nil
	}
	if err := s.BookingRepo.UpdateStatuses(id, next, b.PaymentStatus); err != nil {
		return models.Booking{}, err
	}
	b.Status = next
	utils.LogEvent(s.RequestID, "booking", "status",
		"booking_id="+strconv.FormatInt(id, 10)+" status="+next)
	return b, nil
}
