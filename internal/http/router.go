package api

import (
	stdhttp "net/http"

	intconfig "backend/internal/config"
	h "backend/internal/http/handlers"
	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"success": false,
			"message": "route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		tours := api.Group("/tours")
		tours.GET("", h.GetTours)
		tours.GET("/:id", h.GetTourByID)

		bookings := api.Group("/bookings")
		bookings.GET("/lookup", h.LookupBooking)
		bookings.GET("/my", middleware.AuthRequired(), h.GetMyBookings)
		bookings.POST("", middleware.AuthOptional(), h.CreateBooking)
		bookings.GET("", middleware.AuthRequired(), middleware.AdminOnly(), h.GetAllBookings)
		bookings.GET("/:id", h.GetBookingByID)
		bookings.GET("/:id/invoice", h.DownloadInvoice)
		bookings.PATCH("/:id/status", middleware.AuthRequired(), middleware.AdminOnly(), h.UpdateBookingStatus)

		payment := api.Group("/payment")
		payment.POST("/create", h.CreatePaymentSession)
		payment.POST("/webhook", h.PaymentWebhook)
		payment.PUT("/confirm/:bookingId", h.ManualConfirmPayment)
	}

	return r
}
