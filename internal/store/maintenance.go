package store

import (
	"context"

	"github.com/garageconnect/customer/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type MaintenanceStore struct {
	db *pgxpool.Pool
}

func NewMaintenanceStore(db *pgxpool.Pool) *MaintenanceStore {
	return &MaintenanceStore{db: db}
}

// cost travels as text so it round-trips through decimal without float loss.
const maintenanceColumns = `id, profile_id, type, date, km, next_service_km, description, cost::text, verified, created_at`

func scanMaintenance(row pgx.Row, m *domain.MaintenanceRecord) error {
	var cost *string
	if err := row.Scan(&m.ID, &m.ProfileID, &m.Type, &m.Date, &m.Distance, &m.NextServiceDistance,
		&m.Description, &cost, &m.Verified, &m.CreatedAt); err != nil {
		return err
	}
	if cost != nil {
		d, err := decimal.NewFromString(*cost)
		if err != nil {
			return err
		}
		m.Cost = &d
	}
	return nil
}

func (s *MaintenanceStore) Create(ctx context.Context, m *domain.MaintenanceRecord) error {
	var cost *string
	if m.Cost != nil {
		c := m.Cost.StringFixed(2)
		cost = &c
	}
	return scanMaintenance(s.db.QueryRow(ctx,
		`INSERT INTO maintenance (profile_id, type, date, km, next_service_km, description, cost, verified)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8)
		 RETURNING `+maintenanceColumns,
		m.ProfileID, m.Type, m.Date, m.Distance, m.NextServiceDistance, m.Description, cost, m.Verified,
	), m)
}

func (s *MaintenanceStore) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]domain.MaintenanceRecord, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenance
		 WHERE profile_id = $1
		 ORDER BY date DESC, created_at DESC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.MaintenanceRecord{}
	for rows.Next() {
		var m domain.MaintenanceRecord
		if err := scanMaintenance(rows, &m); err != nil {
			return nil, err
		}
		records = append(records, m)
	}
	return records, rows.Err()
}
