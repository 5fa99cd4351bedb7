package services

import (
	"context"

	"booking-service/models"

	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v80"
)

// --- Mock Repositories ---

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

// --- Mock Collaborators ---

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishBookingConfirmed(ctx context.Context, event models.BookingConfirmedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error {
	args := m.Called(ctx, metricName, dimensions)
	return args.Error(0)
}

type MockSessionCreator struct {
	mock.Mock
}

func (m *MockSessionCreator) CreateCheckoutSession(ctx context.Context, req models.BookingRequest, roomName, successURL, cancelURL string) (*stripe.CheckoutSession, error) {
	args := m.Called(ctx, req, roomName, successURL, cancelURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.CheckoutSession), args.Error(1)
}

type MockSNS struct {
	mock.Mock
}

func (m *MockSNS) Publish(ctx context.Context, topicArn string, message []byte, attributes map[string]string) error {
	args := m.Called(ctx, topicArn, message, attributes)
	return args.Error(0)
}
