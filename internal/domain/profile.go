package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the customer record linked to an auth account.
type Profile struct {
	ID              uuid.UUID `json:"id"`
	AuthAccountID   uuid.UUID `json:"auth_account_id"`
	TenantID        uuid.UUID `json:"tenant_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	AvatarURL       *string   `json:"avatar_url,omitempty"`
	BikeBrand       string    `json:"bike_brand,omitempty"`
	BikeModel       string    `json:"bike_model,omitempty"`
	BikeYear        *int      `json:"bike_year,omitempty"`
	PlateNumber     string    `json:"plate_number,omitempty"`
	CurrentDistance float64   `json:"current_km"`
	CreatedAt       time.Time `json:"created_at"`

	// Tenant is embedded when the profile is resolved for a session.
	Tenant *Tenant `json:"tenant,omitempty"`
}

// ProfileFields are the customer-supplied attributes captured at sign-up.
type ProfileFields struct {
	Name            string  `json:"name"`
	BikeBrand       string  `json:"bike_brand"`
	BikeModel       string  `json:"bike_model"`
	BikeYear        *int    `json:"bike_year"`
	PlateNumber     string  `json:"plate_number"`
	CurrentDistance float64 `json:"current_km"`
}
