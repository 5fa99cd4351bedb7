package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingRequest is the booking carried in a checkout session's metadata,
// after its string fields have been coerced.
type BookingRequest struct {
	Adults       int     `json:"adults"`
	CheckinDate  string  `json:"checkinDate"`
	CheckoutDate string  `json:"checkoutDate"`
	Children     int     `json:"children"`
	HotelRoom    string  `json:"hotelRoom" validate:"required"`
	NumberOfDays int     `json:"numberOfDays"`
	User         string  `json:"user" validate:"required"`
	Discount     float64 `json:"discount"`
	TotalPrice   float64 `json:"totalPrice"`
}

// Booking is the GORM model persisted in Postgres.
type Booking struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          string         `gorm:"type:varchar(128);not null;index" json:"user"`
	HotelRoomID     string         `gorm:"type:varchar(128);not null;index" json:"hotelRoom"`
	CheckinDate     string         `gorm:"type:varchar(32);not null" json:"checkinDate"`
	CheckoutDate    string         `gorm:"type:varchar(32);not null" json:"checkoutDate"`
	Adults          int            `gorm:"not null" json:"adults"`
	Children        int            `gorm:"not null" json:"children"`
	NumberOfDays    int            `gorm:"not null" json:"numberOfDays"`
	Discount        float64        `gorm:"not null" json:"discount"`
	TotalPrice      float64        `gorm:"not null" json:"totalPrice"`
	StripeEventID   string         `gorm:"type:varchar(255);index" json:"-"`
	StripeSessionID string         `gorm:"type:varchar(255);index" json:"-"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// NewBooking builds the row for req. The Stripe ids are kept for audit only;
// they are not unique, so a replayed event yields a second row.
func NewBooking(req BookingRequest, stripeEventID, stripeSessionID string) *Booking {
	return &Booking{
		UserID:          req.User,
		HotelRoomID:     req.HotelRoom,
		CheckinDate:     req.CheckinDate,
		CheckoutDate:    req.CheckoutDate,
		Adults:          req.Adults,
		Children:        req.Children,
		NumberOfDays:    req.NumberOfDays,
		Discount:        req.Discount,
		TotalPrice:      req.TotalPrice,
		StripeEventID:   stripeEventID,
		StripeSessionID: stripeSessionID,
	}
}

// CheckoutRequest is the payload for starting a Stripe checkout for a room.
type CheckoutRequest struct {
	HotelRoom    string `json:"hotelRoom" binding:"required"`
	CheckinDate  string `json:"checkinDate" binding:"required"`
	CheckoutDate string `json:"checkoutDate" binding:"required"`
	Adults       int    `json:"adults" binding:"required,min=1"`
	Children     int    `json:"children" binding:"min=0"`
}
