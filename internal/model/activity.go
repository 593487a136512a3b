package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity types accepted by the catalog.
const (
	TypeAdventure  = "adventure"
	TypeHotel      = "hotel"
	TypeRestaurant = "restaurant"
	TypeLodge      = "lodge"
)

// ActivityTypes lists every valid listing type.
var ActivityTypes = []string{TypeAdventure, TypeHotel, TypeRestaurant, TypeLodge}

// ValidActivityType reports whether t is a known listing type.
func ValidActivityType(t string) bool {
	for _, known := range ActivityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Activity is a tourism listing: a hotel, restaurant, lodge or adventure.
// Publicly readable; only admins create, update or delete them.
type Activity struct {
	ID          string    `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Type        string    `json:"type" gorm:"size:50;not null;index"`
	Image       string    `json:"image" gorm:"size:1024;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Location    string    `json:"location" gorm:"size:255;not null"`
	FullAddress string    `json:"fullAddress,omitempty" gorm:"size:512"`
	Latitude    string    `json:"latitude,omitempty" gorm:"size:50"`
	Longitude   string    `json:"longitude,omitempty" gorm:"size:50"`
	Contact     string    `json:"contact,omitempty" gorm:"size:255"`
	Phone       string    `json:"phone,omitempty" gorm:"size:50"`
	Featured    bool      `json:"featured" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate sets a UUID before creating the record.
func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
