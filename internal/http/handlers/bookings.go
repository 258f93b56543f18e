package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"backend/internal/http/middleware"
	"backend/internal/mailer"
	"backend/internal/repositories"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

// flexPrice accepts number, numeric string, or null for client price
// overrides. Anything unparseable is treated as absent, matching the lenient
// cart payloads the frontends send.
type flexPrice struct {
	value float64
	set   bool
}

func (p *flexPrice) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	p.value = v
	p.set = true
	return nil
}

func (p flexPrice) ptr() *float64 {
	if !p.set {
		return nil
	}
	v := p.value
	return &v
}

type bookingItemRequest struct {
	CatalogRef string    `json:"catalogRef"`
	TourID     string    `json:"tourId"` // legacy field name from the web cart
	Date       string    `json:"date"`
	AdultCount int       `json:"adultCount"`
	ChildCount int       `json:"childCount"`
	AdultPrice flexPrice `json:"adultPrice"`
	ChildPrice flexPrice `json:"childPrice"`
}

func (r bookingItemRequest) ref() string {
	if r.CatalogRef != "" {
		return r.CatalogRef
	}
	return r.TourID
}

type createBookingRequest struct {
	Items          []bookingItemRequest `json:"items"`
	PickupPoint    string               `json:"pickupPoint"`
	DropPoint      string               `json:"dropPoint"`
	SpecialRequest string               `json:"specialRequest"`
	GuestName      string               `json:"guestName"`
	GuestEmail     string               `json:"guestEmail"`
	GuestContact   string               `json:"guestContact"`
}

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		BookingRepo: repositories.BookingRepository{},
		TourRepo:    repositories.TourRepository{},
		FeeRate:     env.TransactionFeeRate,
		Notifier: mailer.BookingNotifier{
			Client: mailer.NewClient(mailer.Config{
				APIKey: env.ResendAPIKey,
				From:   env.MailFrom,
			}),
			AdminEmail: env.AdminEmail,
		},
		RequestID: middleware.GetRequestID(c),
	}
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	items := make([]services.LineItemRequest, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, services.LineItemRequest{
			CatalogRef: strings.TrimSpace(it.ref()),
			Date:       strings.TrimSpace(it.Date),
			AdultCount: it.AdultCount,
			ChildCount: it.ChildCount,
			AdultPrice: it.AdultPrice.ptr(),
			ChildPrice: it.ChildPrice.ptr(),
		})
	}

	svc := bookingService(c)
	booking, err := svc.Create(services.CreateBookingInput{
		UserID:         middleware.GetUserID(c),
		GuestName:      req.GuestName,
		GuestEmail:     req.GuestEmail,
		GuestContact:   req.GuestContact,
		Items:          items,
		PickupPoint:    req.PickupPoint,
		DropPoint:      req.DropPoint,
		SpecialRequest: req.SpecialRequest,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Booking successful",
		"booking": booking,
	})
}

// GET /api/bookings (admin)
func GetAllBookings(c *gin.Context) {
	bookings, err := bookingService(c).ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

// GET /api/bookings/my
func GetMyBookings(c *gin.Context) {
	bookings, err := bookingService(c).ListByUser(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

// GET /api/bookings/:id
func GetBookingByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	booking, err := bookingService(c).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}

// GET /api/bookings/lookup?bookingId=&email=
func LookupBooking(c *gin.Context) {
	booking, err := bookingService(c).Lookup(c.Query("bookingId"), c.Query("email"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// PATCH /api/bookings/:id/status (admin)
func UpdateBookingStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	var req statusUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	booking, err := bookingService(c).UpdateStatus(id, strings.TrimSpace(req.Status))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking status updated",
		"booking": booking,
	})
}

// GET /api/bookings/:id/invoice
func DownloadInvoice(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	svc := services.InvoiceService{
		BookingRepo: repositories.BookingRepository{},
		TourRepo:    repositories.TourRepository{},
		RequestID:   middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.GenerateInvoice(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
