package controllers

import (
	"context"
	"net/http"

	apperrors "booking-service/errors"
	"booking-service/logger"
	"booking-service/middleware"
	"booking-service/models"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// CheckoutStarter prices a stay and opens the provider checkout.
type CheckoutStarter interface {
	StartCheckout(ctx context.Context, userID string, in models.CheckoutRequest) (*stripe.CheckoutSession, error)
}

type CheckoutController struct {
	Checkout CheckoutStarter
}

// CreateCheckoutSession returns the Stripe session id and hosted URL for the
// caller's stay. Errors are rendered by the error middleware.
func (cc *CheckoutController) CreateCheckoutSession(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.ErrBadRequest.Wrap(err))
		return
	}

	userID := middleware.GetUserID(c)
	sess, err := cc.Checkout.StartCheckout(c.Request.Context(), userID, req)
	if err != nil {
		logger.Warn(c.Request.Context(), "Checkout not started",
			zap.String("user", userID),
			zap.String("hotel_room", req.HotelRoom),
			zap.Error(err),
		)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": sess.ID, "url": sess.URL})
}
