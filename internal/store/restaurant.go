package store

import (
	"context"

	"github.com/garageconnect/customer/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RestaurantStore struct {
	db *pgxpool.Pool
}

func NewRestaurantStore(db *pgxpool.Pool) *RestaurantStore {
	return &RestaurantStore{db: db}
}

func (s *RestaurantStore) Create(ctx context.Context, r *domain.RestaurantEntry) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO restaurants (tenant_id, added_by, name, location, type, rating, lat, lng, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		r.TenantID, r.AddedBy, r.Name, r.Location, r.Category, r.Rating, r.Lat, r.Lng, r.Notes,
	).Scan(&r.ID, &r.CreatedAt)
}

func (s *RestaurantStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.RestaurantEntry, error) {
	rows, err := s.db.Query(ctx,
		`SELECT r.id, r.tenant_id, r.added_by, COALESCE(p.name, ''), r.name, r.location, r.type,
		        r.rating, r.lat, r.lng, r.notes, r.created_at
		 FROM restaurants r
		 LEFT JOIN profiles p ON p.id = r.added_by
		 WHERE r.tenant_id = $1
		 ORDER BY r.rating DESC, r.created_at DESC`,
		tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.RestaurantEntry{}
	for rows.Next() {
		var r domain.RestaurantEntry
		if err := rows.Scan(&r.ID, &r.TenantID, &r.AddedBy, &r.AuthorName, &r.Name, &r.Location, &r.Category,
			&r.Rating, &r.Lat, &r.Lng, &r.Notes, &r.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, r)
	}
	return entries, rows.Err()
}
