package store

import (
	"context"
	"errors"

	"github.com/garageconnect/customer/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TripStore struct {
	db *pgxpool.Pool
}

func NewTripStore(db *pgxpool.Pool) *TripStore {
	return &TripStore{db: db}
}

const tripColumns = `id, profile_id, tenant_id, title, start_date, distance, duration, notes,
	likes_count, is_shared, created_at`

func scanTrip(row pgx.Row, t *domain.Trip) error {
	return row.Scan(&t.ID, &t.ProfileID, &t.TenantID, &t.Title, &t.StartDate, &t.Distance, &t.Duration, &t.Notes,
		&t.LikesCount, &t.IsShared, &t.CreatedAt)
}

func (s *TripStore) Create(ctx context.Context, t *domain.Trip) error {
	err := scanTrip(s.db.QueryRow(ctx,
		`INSERT INTO trips (profile_id, tenant_id, title, start_date, distance, duration, notes, is_shared)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+tripColumns,
		t.ProfileID, t.TenantID, t.Title, t.StartDate, t.Distance, t.Duration, t.Notes, t.IsShared,
	), t)
	if err != nil {
		return err
	}
	t.Photos = []domain.TripPhoto{}
	return nil
}

func (s *TripStore) GetByID(ctx context.Context, id uuid.UUID, profileID uuid.UUID) (*domain.Trip, error) {
	t := &domain.Trip{}
	err := scanTrip(s.db.QueryRow(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE id = $1 AND profile_id = $2`,
		id, profileID,
	), t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *TripStore) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]domain.Trip, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+tripColumns+` FROM trips
		 WHERE profile_id = $1
		 ORDER BY start_date DESC, created_at DESC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []domain.Trip{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		var t domain.Trip
		if err := scanTrip(rows, &t); err != nil {
			return nil, err
		}
		t.Photos = []domain.TripPhoto{}
		index[t.ID] = len(trips)
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(trips) == 0 {
		return trips, nil
	}

	ids := make([]uuid.UUID, 0, len(trips))
	for _, t := range trips {
		ids = append(ids, t.ID)
	}

	photoRows, err := s.db.Query(ctx,
		`SELECT id, trip_id, photo_url, created_at FROM trip_photos
		 WHERE trip_id = ANY($1)
		 ORDER BY created_at ASC`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer photoRows.Close()

	for photoRows.Next() {
		var p domain.TripPhoto
		if err := photoRows.Scan(&p.ID, &p.TripID, &p.URL, &p.CreatedAt); err != nil {
			return nil, err
		}
		if i, ok := index[p.TripID]; ok {
			trips[i].Photos = append(trips[i].Photos, p)
		}
	}
	return trips, photoRows.Err()
}

func (s *TripStore) AddPhoto(ctx context.Context, p *domain.TripPhoto) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO trip_photos (trip_id, photo_url) VALUES ($1, $2)
		 RETURNING id, created_at`,
		p.TripID, p.URL,
	).Scan(&p.ID, &p.CreatedAt)
}
