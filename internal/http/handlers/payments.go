package handlers

import (
	"io"
	"net/http"
	"strconv"

	"backend/internal/gateway"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"
	"backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func paymentService(c *gin.Context) services.PaymentService {
	return services.PaymentService{
		BookingRepo: repositories.BookingRepository{},
		PaymentRepo: repositories.PaymentRepository{},
		Gateway: gateway.NewClient(gateway.Config{
			APIURL:    env.PaymenntAPIURL,
			APIKey:    env.PaymenntAPIKey,
			APISecret: env.PaymenntAPISecret,
			Timeout:   env.GatewayTimeout,
		}),
		FrontendURL: env.FrontendURL,
		RequestID:   middleware.GetRequestID(c),
	}
}

type createPaymentRequest struct {
	BookingID int64 `json:"bookingId"`
}

// POST /api/payment/create
func CreatePaymentSession(c *gin.Context) {
	var req createPaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	link, err := paymentService(c).CreateSession(c.Request.Context(), req.BookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "paymentLink": link})
}

// POST /api/payment/webhook
//
// Always answers 200 so the gateway never enters a retry storm; processing
// failures are logged server-side only.
func PaymentWebhook(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err == nil {
		err = paymentService(c).HandleWebhook(raw)
	}
	if err != nil {
		utils.LogError(middleware.GetRequestID(c), "payment", "webhook", err)
	}
	c.String(http.StatusOK, "ok")
}

// PUT /api/payment/confirm/:bookingId
func ManualConfirmPayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid booking id")
		return
	}
	booking, err := paymentService(c).ManualConfirm(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking confirmed successfully (manual)",
		"booking": booking,
	})
}
