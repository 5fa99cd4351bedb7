package models

import (
	"time"

	"gorm.io/gorm"
)

// HotelRoom is a bookable room. Price is per night in major currency units
// and Discount is a percentage.
type HotelRoom struct {
	ID        string         `gorm:"type:varchar(128);primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Price     float64        `gorm:"not null" json:"price"`
	Discount  float64        `gorm:"not null;default:0" json:"discount"`
	IsBooked  bool           `gorm:"not null;default:false" json:"isBooked"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// DiscountedPrice is the nightly price after the room discount.
func (r *HotelRoom) DiscountedPrice() float64 {
	return r.Price - (r.Price/100)*r.Discount
}
