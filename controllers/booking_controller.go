package controllers

import (
	"context"
	"net/http"

	apperrors "booking-service/errors"
	"booking-service/logger"
	"booking-service/middleware"
	"booking-service/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingLister interface {
	ListBookings(ctx context.Context, userID string) ([]models.Booking, error)
}

type BookingController struct {
	Bookings BookingLister
}

// ListMyBookings returns the caller's bookings.
func (bc *BookingController) ListMyBookings(c *gin.Context) {
	userID := middleware.GetUserID(c)
	bookings, err := bc.Bookings.ListBookings(c.Request.Context(), userID)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list bookings", err, zap.String("user", userID))
		_ = c.Error(apperrors.ErrInternalServer.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
