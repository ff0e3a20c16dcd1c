package domain

import (
	"time"

	"github.com/google/uuid"
)

type RestaurantCategory string

const (
	CategoryPizza       RestaurantCategory = "pizza"
	CategoryTraditional RestaurantCategory = "traditional"
	CategoryQuick       RestaurantCategory = "quick"
	CategoryGourmet     RestaurantCategory = "gourmet"
	CategoryBar         RestaurantCategory = "bar"
)

func (c RestaurantCategory) Valid() bool {
	switch c {
	case CategoryPizza, CategoryTraditional, CategoryQuick, CategoryGourmet, CategoryBar:
		return true
	}
	return false
}

const (
	MinRating = 1
	MaxRating = 5
)

// RestaurantEntry is a rider-recommended stop shared across the workshop.
type RestaurantEntry struct {
	ID         uuid.UUID          `json:"id"`
	TenantID   uuid.UUID          `json:"workshop_id"`
	AddedBy    uuid.UUID          `json:"added_by"`
	AuthorName string             `json:"author_name,omitempty"`
	Name       string             `json:"name"`
	Location   string             `json:"location"`
	Category   RestaurantCategory `json:"type"`
	Rating     int                `json:"rating"`
	Lat        *float64           `json:"lat"`
	Lng        *float64           `json:"lng"`
	Notes      *string            `json:"notes"`
	CreatedAt  time.Time          `json:"created_at"`
}

// HasCoordinates reports whether the entry can be placed on the map.
func (r RestaurantEntry) HasCoordinates() bool {
	return r.Lat != nil && r.Lng != nil
}
