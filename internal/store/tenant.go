package store

import (
	"context"

	"github.com/garageconnect/customer/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TenantStore struct {
	db *pgxpool.Pool
}

func NewTenantStore(db *pgxpool.Pool) *TenantStore {
	return &TenantStore{db: db}
}

// GetActiveBySlug fetches up to two rows so a duplicate slug is reported
// as ErrNotFound rather than silently picking one.
func (s *TenantStore) GetActiveBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, slug, name, primary_color, secondary_color, logo_url, active, created_at
		 FROM tenants WHERE slug = $1 AND active = TRUE
		 LIMIT 2`,
		slug,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []*domain.Tenant
	for rows.Next() {
		t := &domain.Tenant{}
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name, &t.PrimaryColor, &t.SecondaryColor, &t.LogoURL, &t.Active, &t.CreatedAt); err != nil {
			return nil, err
		}
		found = append(found, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(found) != 1 {
		return nil, ErrNotFound
	}
	return found[0], nil
}

// CheckActive is the cheap revalidation for a cached tenant: it returns
// ErrNotFound once the row is deactivated or its slug changes.
func (s *TenantStore) CheckActive(ctx context.Context, id uuid.UUID, slug string) error {
	var ok bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tenants WHERE id = $1 AND slug = $2 AND active = TRUE)`,
		id, slug,
	).Scan(&ok)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
