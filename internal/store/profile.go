package store

import (
	"context"
	"errors"

	"github.com/garageconnect/customer/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileStore struct {
	db *pgxpool.Pool
}

func NewProfileStore(db *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{db: db}
}

func (s *ProfileStore) Create(ctx context.Context, p *domain.Profile) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO profiles (auth_account_id, tenant_id, name, email, avatar_url,
		                       bike_brand, bike_model, bike_year, plate_number, current_km)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at`,
		p.AuthAccountID, p.TenantID, p.Name, p.Email, p.AvatarURL,
		p.BikeBrand, p.BikeModel, p.BikeYear, p.PlateNumber, p.CurrentDistance,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return err
	}
	return nil
}

// GetByAuthAccountID requires exactly one profile for the account.
func (s *ProfileStore) GetByAuthAccountID(ctx context.Context, accountID uuid.UUID) (*domain.Profile, error) {
	rows, err := s.db.Query(ctx,
		`SELECT p.id, p.auth_account_id, p.tenant_id, p.name, p.email, p.avatar_url,
		        p.bike_brand, p.bike_model, p.bike_year, p.plate_number, p.current_km, p.created_at,
		        t.id, t.slug, t.name, t.primary_color, t.secondary_color, t.logo_url, t.active, t.created_at
		 FROM profiles p
		 JOIN tenants t ON t.id = p.tenant_id
		 WHERE p.auth_account_id = $1
		 LIMIT 2`,
		accountID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []*domain.Profile
	for rows.Next() {
		p := &domain.Profile{Tenant: &domain.Tenant{}}
		t := p.Tenant
		if err := rows.Scan(
			&p.ID, &p.AuthAccountID, &p.TenantID, &p.Name, &p.Email, &p.AvatarURL,
			&p.BikeBrand, &p.BikeModel, &p.BikeYear, &p.PlateNumber, &p.CurrentDistance, &p.CreatedAt,
			&t.ID, &t.Slug, &t.Name, &t.PrimaryColor, &t.SecondaryColor, &t.LogoURL, &t.Active, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		found = append(found, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(found) != 1 {
		return nil, ErrNotFound
	}
	return found[0], nil
}

func (s *ProfileStore) UpdateAvatarURL(ctx context.Context, id uuid.UUID, tenantID uuid.UUID, url string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE profiles SET avatar_url = $1 WHERE id = $2 AND tenant_id = $3`,
		url, id, tenantID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
