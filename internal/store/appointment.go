package store

import (
	"context"

	"github.com/garageconnect/customer/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AppointmentStore struct {
	db *pgxpool.Pool
}

func NewAppointmentStore(db *pgxpool.Pool) *AppointmentStore {
	return &AppointmentStore{db: db}
}

func (s *AppointmentStore) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]domain.Appointment, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, profile_id, date, to_char(time, 'HH24:MI'), service_type, status, created_at
		 FROM appointments
		 WHERE profile_id = $1
		 ORDER BY date DESC, time DESC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := []domain.Appointment{}
	for rows.Next() {
		var a domain.Appointment
		if err := rows.Scan(&a.ID, &a.ProfileID, &a.Date, &a.Time, &a.ServiceType, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}
