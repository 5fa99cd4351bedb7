package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"booking-service/models"

	"gorm.io/gorm"
)

// ErrRoomNotFound is returned when no room has the requested id.
var ErrRoomNotFound = errors.New("hotel room not found")

// RoomRepository defines data-access operations for hotel rooms.
type RoomRepository interface {
	GetRoom(ctx context.Context, roomID string) (*models.HotelRoom, error)
	// UpdateRoom marks the room as booked.
	UpdateRoom(ctx context.Context, roomID string) error
}

type gormRoomRepo struct {
	db *gorm.DB
}

func NewGormRoomRepo(db *gorm.DB) RoomRepository {
	return &gormRoomRepo{db: db}
}

func (r *gormRoomRepo) GetRoom(ctx context.Context, roomID string) (*models.HotelRoom, error) {
	var room models.HotelRoom
	if err := r.db.WithContext(ctx).Where("id = ?", roomID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
		}
		return nil, err
	}
	return &room, nil
}

func (r *gormRoomRepo) UpdateRoom(ctx context.Context, roomID string) error {
	res := r.db.WithContext(ctx).
		Model(&models.HotelRoom{}).
		Where("id = ?", roomID).
		Updates(map[string]interface{}{
			"is_booked":  true,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	return nil
}
