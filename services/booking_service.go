package services

import (
	"context"
	"fmt"
	"time"

	"booking-service/models"
	aws_pkg "booking-service/pkg/aws"
	"booking-service/repository"

	"go.uber.org/zap"
)

// BookingEventPublisher fans out booking notifications to other services.
type BookingEventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event models.BookingConfirmedEvent) error
}

// MetricsRecorder is the subset of the CloudWatch client the services use.
type MetricsRecorder interface {
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
}

// CheckoutRef identifies the provider objects a booking came from.
type CheckoutRef struct {
	EventID   string
	SessionID string
}

// BookingService applies completed checkouts: it stores the booking and then
// marks the room as booked.
type BookingService struct {
	bookings  repository.BookingRepository
	rooms     repository.RoomRepository
	publisher BookingEventPublisher
	metrics   MetricsRecorder
	logger    *zap.Logger
	now       func() time.Time
}

// NewBookingService wires the applier. publisher and metrics may be nil.
func NewBookingService(
	bookings repository.BookingRepository,
	rooms repository.RoomRepository,
	publisher BookingEventPublisher,
	metrics MetricsRecorder,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		rooms:     rooms,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// ApplyCheckout coerces the session metadata and calls create-booking, then
// update-room. A failed create skips the room update; a failed room update
// leaves the stored booking in place.
func (s *BookingService) ApplyCheckout(ctx context.Context, metadata map[string]string, ref CheckoutRef) (*models.Booking, error) {
	req, err := ParseBookingMetadata(metadata)
	if err != nil {
		return nil, err
	}

	booking := models.NewBooking(req, ref.EventID, ref.SessionID)
	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		s.record(ctx, aws_pkg.MetricBookingsFailed, "create_booking")
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if err := s.rooms.UpdateRoom(ctx, req.HotelRoom); err != nil {
		s.record(ctx, aws_pkg.MetricBookingsFailed, "update_room")
		return nil, fmt.Errorf("update room %s: %w", req.HotelRoom, err)
	}

	s.logger.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("hotel_room", booking.HotelRoomID),
		zap.String("user", booking.UserID),
		zap.String("stripe_event_id", ref.EventID),
	)
	s.record(ctx, aws_pkg.MetricBookingsCreated, "")
	s.publishConfirmed(ctx, booking)

	return booking, nil
}

// ListBookings returns the user's bookings, newest first.
func (s *BookingService) ListBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.bookings.FindByUser(ctx, userID)
}

// publishConfirmed is best effort: a broker outage must not fail a booking
// that is already stored.
func (s *BookingService) publishConfirmed(ctx context.Context, booking *models.Booking) {
	if s.publisher == nil {
		return
	}
	event := models.NewBookingConfirmedEvent(booking, s.now())
	if err := s.publisher.PublishBookingConfirmed(ctx, event); err != nil {
		s.logger.Error("Failed to publish booking event",
			zap.String("booking_id", event.BookingID),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("Booking event published", zap.String("booking_id", event.BookingID))
}

func (s *BookingService) record(ctx context.Context, metric, stage string) {
	if s.metrics == nil {
		return
	}
	dims := map[string]string{"Service": "booking-service"}
	if stage != "" {
		dims["Stage"] = stage
	}
	if err := s.metrics.RecordCount(ctx, metric, dims); err != nil {
		s.logger.Debug("Failed to record metric", zap.String("metric", metric), zap.Error(err))
	}
}
