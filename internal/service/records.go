package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"path"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/garageconnect/customer/internal/domain"
	"github.com/garageconnect/customer/internal/storage"
	"github.com/garageconnect/customer/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrTripTitleRequired        = errors.New("title is required")
	ErrInvalidDistance          = errors.New("distance must not be negative")
	ErrInvalidDuration          = errors.New("duration must not be negative")
	ErrTripNotFound             = errors.New("trip not found")
	ErrRestaurantNameRequired   = errors.New("name is required")
	ErrRestaurantLocationNeeded = errors.New("location is required")
	ErrInvalidCategory          = errors.New("invalid restaurant type")
	ErrInvalidRating            = errors.New("rating must be between 1 and 5")
	ErrIncompleteCoordinates    = errors.New("lat and lng must be given together")
	ErrInvalidMaintenanceType   = errors.New("invalid maintenance type")
	ErrMaintenanceDateRequired  = errors.New("date is required")
	ErrInvalidCost              = errors.New("cost must not be negative")
	ErrEmptyUpload              = errors.New("file is empty")
	ErrInvalidImage             = errors.New("file is not a supported image")
)

const (
	AvatarSize        = 256
	DefaultRating     = 3
	avatarJPEGQuality = 85

	// MaxAvatarPixels bounds decoded avatar size independently of the
	// upload byte cap.
	MaxAvatarPixels = 25_000_000
)

type TripInput struct {
	Title     string     `json:"title"`
	StartDate *time.Time `json:"start_date"`
	Distance  float64    `json:"distance"`
	Duration  *float64   `json:"duration"`
	Notes     *string    `json:"notes"`
}

type RestaurantInput struct {
	Name     string                    `json:"name"`
	Location string                    `json:"location"`
	Category domain.RestaurantCategory `json:"type"`
	Rating   *int                      `json:"rating"`
	Lat      *float64                  `json:"lat"`
	Lng      *float64                  `json:"lng"`
	Notes    *string                   `json:"notes"`
}

type MaintenanceInput struct {
	Type                domain.MaintenanceType `json:"type"`
	Date                *time.Time             `json:"date"`
	Distance            float64                `json:"km"`
	NextServiceDistance *float64               `json:"next_service_km"`
	Description         *string                `json:"description"`
	Cost                *decimal.Decimal       `json:"cost"`
}

// RecordService creates customer records and stores their uploads.
type RecordService struct {
	trips       domain.TripStore
	restaurants domain.RestaurantStore
	maintenance domain.MaintenanceStore
	profiles    domain.ProfileStore
	blobs       domain.BlobStore
	logger      *zap.Logger
	now         func() time.Time
}

func NewRecordService(
	ts domain.TripStore,
	rs domain.RestaurantStore,
	ms domain.MaintenanceStore,
	ps domain.ProfileStore,
	blobs domain.BlobStore,
	logger *zap.Logger,
) *RecordService {
	return &RecordService{
		trips:       ts,
		restaurants: rs,
		maintenance: ms,
		profiles:    ps,
		blobs:       blobs,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *RecordService) CreateTrip(ctx context.Context, p *domain.Profile, in TripInput) (*domain.Trip, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrTripTitleRequired
	}
	if in.Distance < 0 {
		return nil, ErrInvalidDistance
	}
	if in.Duration != nil && *in.Duration < 0 {
		return nil, ErrInvalidDuration
	}

	start := s.today()
	if in.StartDate != nil && !in.StartDate.IsZero() {
		start = *in.StartDate
	}

	t := &domain.Trip{
		ProfileID: p.ID,
		TenantID:  p.TenantID,
		Title:     title,
		StartDate: start,
		Distance:  in.Distance,
		Duration:  in.Duration,
		Notes:     optionalText(in.Notes),
	}
	if err := s.trips.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}
	return t, nil
}

func (s *RecordService) CreateRestaurant(ctx context.Context, p *domain.Profile, in RestaurantInput) (*domain.RestaurantEntry, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrRestaurantNameRequired
	}
	location := strings.TrimSpace(in.Location)
	if location == "" {
		return nil, ErrRestaurantLocationNeeded
	}

	category := in.Category
	if category == "" {
		category = domain.CategoryTraditional
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	rating := DefaultRating
	if in.Rating != nil {
		rating = *in.Rating
	}
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, ErrInvalidRating
	}
	if (in.Lat == nil) != (in.Lng == nil) {
		return nil, ErrIncompleteCoordinates
	}

	r := &domain.RestaurantEntry{
		TenantID:   p.TenantID,
		AddedBy:    p.ID,
		AuthorName: p.Name,
		Name:       name,
		Location:   location,
		Category:   category,
		Rating:     rating,
		Lat:        in.Lat,
		Lng:        in.Lng,
		Notes:      optionalText(in.Notes),
	}
	if err := s.restaurants.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	return r, nil
}

// CreateMaintenance records a customer-reported service. Customer entries
// are never verified; the workshop verifies them separately.
func (s *RecordService) CreateMaintenance(ctx context.Context, p *domain.Profile, in MaintenanceInput) (*domain.MaintenanceRecord, error) {
	if !in.Type.Valid() {
		return nil, ErrInvalidMaintenanceType
	}
	if in.Date == nil || in.Date.IsZero() {
		return nil, ErrMaintenanceDateRequired
	}
	if in.Distance < 0 {
		return nil, ErrInvalidDistance
	}
	if in.NextServiceDistance != nil && *in.NextServiceDistance < 0 {
		return nil, ErrInvalidDistance
	}
	if in.Cost != nil && in.Cost.IsNegative() {
		return nil, ErrInvalidCost
	}

	m := &domain.MaintenanceRecord{
		ProfileID:           p.ID,
		Type:                in.Type,
		Date:                *in.Date,
		Distance:            in.Distance,
		NextServiceDistance: in.NextServiceDistance,
		Description:         optionalText(in.Description),
		Cost:                in.Cost,
	}
	if err := s.maintenance.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create maintenance: %w", err)
	}
	return m, nil
}

// UploadTripPhoto stores the image under <tripID>/<unixMillis>.<ext> and
// links it to the trip, which must belong to the profile.
func (s *RecordService) UploadTripPhoto(ctx context.Context, p *domain.Profile, tripID uuid.UUID, filename string, data []byte) (*domain.TripPhoto, error) {
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}

	if _, err := s.trips.GetByID(ctx, tripID, p.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("%s/%d%s", tripID, s.now().UnixMilli(), ext)

	stored, err := s.blobs.Upload(ctx, domain.BucketTripPhotos, key, data, domain.UploadOptions{
		ContentType: storage.ContentType(filename),
	})
	if err != nil {
		return nil, fmt.Errorf("upload trip photo: %w", err)
	}

	photo := &domain.TripPhoto{
		TripID: tripID,
		URL:    s.blobs.PublicURL(domain.BucketTripPhotos, stored),
	}
	if err := s.trips.AddPhoto(ctx, photo); err != nil {
		if delErr := s.blobs.Delete(ctx, domain.BucketTripPhotos, stored); delErr != nil {
			s.logger.Warn("failed to remove unlinked trip photo",
				zap.String("path", stored),
				zap.Error(delErr),
			)
		}
		return nil, fmt.Errorf("add trip photo: %w", err)
	}
	return photo, nil
}

// UploadAvatar normalises the image to a square JPEG and replaces the
// profile's avatar.
func (s *RecordService) UploadAvatar(ctx context.Context, p *domain.Profile, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyUpload
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrInvalidImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxAvatarPixels {
		return "", ErrInvalidImage
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", ErrInvalidImage
	}
	img = imaging.Fill(img, AvatarSize, AvatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(avatarJPEGQuality)); err != nil {
		return "", fmt.Errorf("encode avatar: %w", err)
	}

	stored, err := s.blobs.Upload(ctx, domain.BucketAvatars, p.ID.String()+".jpg", buf.Bytes(), domain.UploadOptions{
		Overwrite:   true,
		ContentType: "image/jpeg",
	})
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	url := s.blobs.PublicURL(domain.BucketAvatars, stored)
	if err := s.profiles.UpdateAvatarURL(ctx, p.ID, p.TenantID, url); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrProfileNotFound
		}
		return "", fmt.Errorf("update avatar url: %w", err)
	}
	p.AvatarURL = &url
	return url, nil
}

func (s *RecordService) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
