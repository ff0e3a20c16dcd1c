package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type TenantStore interface {
	// GetActiveBySlug returns the single active tenant with the slug.
	GetActiveBySlug(ctx context.Context, slug string) (*Tenant, error)
	// CheckActive returns nil only while id is the active tenant for slug.
	CheckActive(ctx context.Context, id uuid.UUID, slug string) error
}

type ProfileStore interface {
	Create(ctx context.Context, p *Profile) error
	// GetByAuthAccountID returns the profile with its tenant embedded.
	GetByAuthAccountID(ctx context.Context, accountID uuid.UUID) (*Profile, error)
	UpdateAvatarURL(ctx context.Context, id uuid.UUID, tenantID uuid.UUID, url string) error
}

type TripStore interface {
	Create(ctx context.Context, t *Trip) error
	GetByID(ctx context.Context, id uuid.UUID, profileID uuid.UUID) (*Trip, error)
	// ListByProfile orders by start date, newest first, photos attached.
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]Trip, error)
	AddPhoto(ctx context.Context, p *TripPhoto) error
}

type MaintenanceStore interface {
	Create(ctx context.Context, m *MaintenanceRecord) error
	// ListByProfile orders by date, newest first.
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]MaintenanceRecord, error)
}

type AppointmentStore interface {
	// ListByProfile orders by date, newest first.
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]Appointment, error)
}

type RestaurantStore interface {
	Create(ctx context.Context, r *RestaurantEntry) error
	// ListByTenant orders by rating, highest first.
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]RestaurantEntry, error)
}

type CommunityPostStore interface {
	// ListRecentByTenant orders by creation time, newest first, capped at limit.
	ListRecentByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]CommunityPost, error)
}

type AccountStore interface {
	Create(ctx context.Context, a *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SessionRegistry tracks live session ids so sign-out can revoke a token
// before it expires.
type SessionRegistry interface {
	RegisterSession(ctx context.Context, sessionID string, accountID uuid.UUID, ttl time.Duration) error
	LookupSession(ctx context.Context, sessionID string) (uuid.UUID, bool, error)
	RevokeSession(ctx context.Context, sessionID string) error
}

type TenantCache interface {
	GetTenant(ctx context.Context, slug string) (*Tenant, bool, error)
	SetTenant(ctx context.Context, t *Tenant, ttl time.Duration) error
	InvalidateTenant(ctx context.Context, slug string) error
}

// AuthGateway signs principals in and out.
type AuthGateway interface {
	SignUp(ctx context.Context, email, password string) (*Account, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	GetSession(ctx context.Context, token string) (*Session, error)
	SignOut(ctx context.Context, token string) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

type UploadOptions struct {
	Overwrite   bool
	ContentType string
}

// BlobStore is the object storage used for trip photos and avatars.
type BlobStore interface {
	Upload(ctx context.Context, bucket, path string, data []byte, opts UploadOptions) (string, error)
	PublicURL(bucket, path string) string
	Delete(ctx context.Context, bucket, path string) error
}

// Storage buckets.
const (
	BucketTripPhotos = "trip-photos"
	BucketAvatars    = "avatars"
)
