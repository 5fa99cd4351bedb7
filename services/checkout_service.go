package services

import (
	"context"
	"errors"
	"time"

	apperrors "booking-service/errors"
	"booking-service/models"
	aws_pkg "booking-service/pkg/aws"
	"booking-service/repository"

	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

const stayDateLayout = "2006-01-02"

// CheckoutSessionCreator opens a provider checkout session for a booking.
type CheckoutSessionCreator interface {
	CreateCheckoutSession(ctx context.Context, req models.BookingRequest, roomName, successURL, cancelURL string) (*stripe.CheckoutSession, error)
}

// CheckoutService prices a stay and starts the Stripe checkout whose
// completion later reaches the webhook.
type CheckoutService struct {
	rooms      repository.RoomRepository
	sessions   CheckoutSessionCreator
	metrics    MetricsRecorder
	logger     *zap.Logger
	successURL string
	cancelURL  string
}

func NewCheckoutService(rooms repository.RoomRepository, sessions CheckoutSessionCreator, metrics MetricsRecorder, logger *zap.Logger, successURL, cancelURL string) *CheckoutService {
	return &CheckoutService{
		rooms:      rooms,
		sessions:   sessions,
		metrics:    metrics,
		logger:     logger,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// StartCheckout returns the created session. Errors are *apperrors.Error.
func (s *CheckoutService) StartCheckout(ctx context.Context, userID string, in models.CheckoutRequest) (*stripe.CheckoutSession, error) {
	days, err := NumberOfNights(in.CheckinDate, in.CheckoutDate)
	if err != nil {
		return nil, apperrors.ErrInvalidStay.Wrap(err)
	}

	room, err := s.rooms.GetRoom(ctx, in.HotelRoom)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, apperrors.ErrNotFound.Wrap(err)
		}
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	if room.IsBooked {
		return nil, apperrors.ErrRoomUnavailable
	}

	req := models.BookingRequest{
		Adults:       in.Adults,
		CheckinDate:  in.CheckinDate,
		CheckoutDate: in.CheckoutDate,
		Children:     in.Children,
		HotelRoom:    room.ID,
		NumberOfDays: days,
		User:         userID,
		Discount:     room.Discount,
		TotalPrice:   room.DiscountedPrice() * float64(days),
	}

	sess, err := s.sessions.CreateCheckoutSession(ctx, req, room.Name, s.successURL, s.cancelURL)
	if err != nil {
		s.logger.Error("Stripe checkout session creation failed",
			zap.String("hotel_room", room.ID),
			zap.String("user", userID),
			zap.Error(err),
		)
		return nil, apperrors.ErrCheckoutFailed.Wrap(err)
	}

	s.logger.Info("Stripe checkout session created",
		zap.String("session_id", sess.ID),
		zap.String("hotel_room", room.ID),
		zap.Float64("total_price", req.TotalPrice),
	)
	if s.metrics != nil {
		_ = s.metrics.RecordCount(ctx, aws_pkg.MetricCheckoutSessionsCreated, map[string]string{"Service": "booking-service"})
	}
	return sess, nil
}

var errStayOrder = errors.New("checkoutDate must be after checkinDate")

// NumberOfNights parses YYYY-MM-DD dates and returns the nights between them.
func NumberOfNights(checkin, checkout string) (int, error) {
	in, err := time.Parse(stayDateLayout, checkin)
	if err != nil {
		return 0, err
	}
	out, err := time.Parse(stayDateLayout, checkout)
	if err != nil {
		return 0, err
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights < 1 {
		return 0, errStayOrder
	}
	return nights, nil
}
