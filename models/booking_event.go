package models

import "time"

const BookingConfirmedEventType = "booking_confirmed"

// BookingConfirmedEvent is published once a booking has been stored and its
// room marked as booked.
type BookingConfirmedEvent struct {
	Type            string    `json:"type"`
	BookingID       string    `json:"booking_id"`
	UserID          string    `json:"user_id"`
	HotelRoomID     string    `json:"hotel_room_id"`
	CheckinDate     string    `json:"checkin_date"`
	CheckoutDate    string    `json:"checkout_date"`
	NumberOfDays    int       `json:"number_of_days"`
	TotalPrice      float64   `json:"total_price"`
	StripeEventID   string    `json:"stripe_event_id,omitempty"`
	StripeSessionID string    `json:"stripe_session_id,omitempty"`
	Timestamp       time.Time `json:"timestamp"` // UTC
}

// NewBookingConfirmedEvent builds the event for a stored booking.
func NewBookingConfirmedEvent(b *Booking, now time.Time) BookingConfirmedEvent {
	return BookingConfirmedEvent{
		Type:            BookingConfirmedEventType,
		BookingID:       b.ID.String(),
		UserID:          b.UserID,
		HotelRoomID:     b.HotelRoomID,
		CheckinDate:     b.CheckinDate,
		CheckoutDate:    b.CheckoutDate,
		NumberOfDays:    b.NumberOfDays,
		TotalPrice:      b.TotalPrice,
		StripeEventID:   b.StripeEventID,
		StripeSessionID: b.StripeSessionID,
		Timestamp:       now.UTC(),
	}
}
