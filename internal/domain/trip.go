package domain

import (
	"time"

	"github.com/google/uuid"
)

type Trip struct {
	ID         uuid.UUID   `json:"id"`
	ProfileID  uuid.UUID   `json:"customer_id"`
	TenantID   uuid.UUID   `json:"workshop_id"`
	Title      string      `json:"title"`
	StartDate  time.Time   `json:"start_date"`
	Distance   float64     `json:"distance"`
	Duration   *float64    `json:"duration"`
	Notes      *string     `json:"notes"`
	LikesCount int         `json:"likes_count"`
	IsShared   bool        `json:"is_shared"`
	Photos     []TripPhoto `json:"trip_photos"`
	CreatedAt  time.Time   `json:"created_at"`
}

type TripPhoto struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	URL       string    `json:"photo_url"`
	CreatedAt time.Time `json:"created_at"`
}
