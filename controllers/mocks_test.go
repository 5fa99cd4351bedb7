package controllers

import (
	"context"

	"booking-service/models"
	"booking-service/services"

	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v80"
)

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) CreateBooking(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepo) FindByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

type MockRoomRepo struct {
	mock.Mock
}

func (m *MockRoomRepo) GetRoom(ctx context.Context, roomID string) (*models.HotelRoom, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HotelRoom), args.Error(1)
}

func (m *MockRoomRepo) UpdateRoom(ctx context.Context, roomID string) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

type MockDeduplicator struct {
	mock.Mock
}

func (m *MockDeduplicator) Claim(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeduplicator) Release(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

type MockCheckoutStarter struct {
	mock.Mock
}

func (m *MockCheckoutStarter) StartCheckout(ctx context.Context, userID string, in models.CheckoutRequest) (*stripe.CheckoutSession, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.CheckoutSession), args.Error(1)
}

type MockBookingLister struct {
	mock.Mock
}

func (m *MockBookingLister) ListBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

var _ CheckoutApplier = (*services.BookingService)(nil)
var _ WebhookVerifier = (*services.StripeService)(nil)
