package repository

import (
	"context"

	"booking-service/models"

	"gorm.io/gorm"
)

// BookingRepository defines data-access operations for bookings.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	FindByUser(ctx context.Context, userID string) ([]models.Booking, error)
}

type gormBookingRepo struct {
	db *gorm.DB
}

func NewGormBookingRepo(db *gorm.DB) BookingRepository {
	return &gormBookingRepo{db: db}
}

func (r *gormBookingRepo) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *gormBookingRepo) FindByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
