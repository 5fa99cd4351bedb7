package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"booking-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSNSBookingPublisher(t *testing.T) {
	const topic = "arn:aws:sns:eu-west-2:000000000000:booking-events"
	event := models.BookingConfirmedEvent{
		Type:        models.BookingConfirmedEventType,
		BookingID:   "b-1",
		HotelRoomID: "room42",
		Timestamp:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	t.Run("Success - publishes JSON with event type attribute", func(t *testing.T) {
		sns := new(MockSNS)
		sns.On("Publish", mock.Anything, topic, mock.MatchedBy(func(msg []byte) bool {
			var got models.BookingConfirmedEvent
			return json.Unmarshal(msg, &got) == nil && got.BookingID == "b-1" && got.HotelRoomID == "room42"
		}), map[string]string{"event_type": "booking_confirmed"}).Return(nil).Once()

		err := NewSNSBookingPublisher(sns, topic).PublishBookingConfirmed(context.Background(), event)

		assert.NoError(t, err)
		sns.AssertExpectations(t)
	})

	t.Run("Failure - SNS error is returned", func(t *testing.T) {
		sns := new(MockSNS)
		sns.On("Publish", mock.Anything, topic, mock.Anything, mock.Anything).Return(errors.New("throttled")).Once()

		err := NewSNSBookingPublisher(sns, topic).PublishBookingConfirmed(context.Background(), event)

		assert.EqualError(t, err, "throttled")
	})
}
