package routes

import (
	"net/http"

	"booking-service/controllers"
	apperrors "booking-service/errors"
	"booking-service/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers groups the controllers the router serves.
type Handlers struct {
	Webhook  *controllers.WebhookController
	Checkout *controllers.CheckoutController
	Bookings *controllers.BookingController
	// CheckoutPerMinute limits checkout starts per client IP.
	CheckoutPerMinute int
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	// Stripe webhooks (no auth, signature checked by the handler)
	r.POST("/api/webhook", h.Webhook.StripeWebhook)
	r.POST("/stripe/webhook", h.Webhook.StripeWebhook)

	bookings := r.Group("/api/bookings")
	bookings.Use(middleware.AuthMiddleware())
	bookings.GET("", h.Bookings.ListMyBookings)
	bookings.POST("/checkout", middleware.RateLimitMiddleware(h.CheckoutPerMinute, 10), h.Checkout.CreateCheckoutSession)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	r.NoRoute(func(c *gin.Context) {
		apperrors.HandleError(c.Writer, apperrors.ErrNotFound)
	})
}
