package api

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/garageconnect/customer/internal/domain"
	"github.com/garageconnect/customer/internal/store"
	"github.com/google/uuid"
)

// memDB is an in-memory stand-in for the Postgres stores.
type memDB struct {
	mu           sync.Mutex
	tenants      []*domain.Tenant
	accounts     []*domain.Account
	profiles     []*domain.Profile
	trips        []domain.Trip
	maintenance  []domain.MaintenanceRecord
	appointments []domain.Appointment
	restaurants  []domain.RestaurantEntry
	posts        []domain.CommunityPost
	failTrips    bool
}

func (db *memDB) Ping(ctx context.Context) error { return nil }

type tenantStore struct{ db *memDB }

func (s tenantStore) GetActiveBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, t := range s.db.tenants {
		if t.Slug == slug && t.Active {
			cp := *t
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s tenantStore) CheckActive(ctx context.Context, id uuid.UUID, slug string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, t := range s.db.tenants {
		if t.ID == id && t.Slug == slug && t.Active {
			return nil
		}
	}
	return store.ErrNotFound
}

func (db *memDB) setTenantActive(slug string, active bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, t := range db.tenants {
		if t.Slug == slug {
			t.Active = active
		}
	}
}

type accountStore struct{ db *memDB }

func (s accountStore) Create(ctx context.Context, a *domain.Account) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, x := range s.db.accounts {
		if x.Email == a.Email {
			return store.ErrConflict
		}
	}
	a.ID = uuid.New()
	cp := *a
	s.db.accounts = append(s.db.accounts, &cp)
	return nil
}

func (s accountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, a := range s.db.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s accountStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i, a := range s.db.accounts {
		if a.ID == id {
			s.db.accounts = append(s.db.accounts[:i], s.db.accounts[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type profileStore struct{ db *memDB }

func (s profileStore) Create(ctx context.Context, p *domain.Profile) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	cp := *p
	s.db.profiles = append(s.db.profiles, &cp)
	return nil
}

func (s profileStore) GetByAuthAccountID(ctx context.Context, accountID uuid.UUID) (*domain.Profile, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, p := range s.db.profiles {
		if p.AuthAccountID == accountID {
			cp := *p
			for _, t := range s.db.tenants {
				if t.ID == cp.TenantID {
					cp.Tenant = t
				}
			}
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s profileStore) UpdateAvatarURL(ctx context.Context, id, tenantID uuid.UUID, url string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, p := range s.db.profiles {
		if p.ID == id && p.TenantID == tenantID {
			p.AvatarURL = &url
			return nil
		}
	}
	return store.ErrNotFound
}

type tripStore struct{ db *memDB }

func (s tripStore) Create(ctx context.Context, t *domain.Trip) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t.ID = uuid.New()
	t.Photos = []domain.TripPhoto{}
	s.db.trips = append(s.db.trips, *t)
	return nil
}

func (s tripStore) GetByID(ctx context.Context, id, profileID uuid.UUID) (*domain.Trip, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, t := range s.db.trips {
		if t.ID == id && t.ProfileID == profileID {
			return &t, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s tripStore) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]domain.Trip, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.failTrips {
		return nil, context.DeadlineExceeded
	}
	var out []domain.Trip
	for _, t := range s.db.trips {
		if t.ProfileID == profileID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (s tripStore) AddPhoto(ctx context.Context, p *domain.TripPhoto) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.trips {
		if s.db.trips[i].ID == p.TripID {
			p.ID = uuid.New()
			s.db.trips[i].Photos = append(s.db.trips[i].Photos, *p)
			return nil
		}
	}
	return store.ErrNotFound
}

type maintenanceStore struct{ db *memDB }

func (s maintenanceStore) Create(ctx context.Context, m *domain.MaintenanceRecord) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	m.ID = uuid.New()
	s.db.maintenance = append(s.db.maintenance, *m)
	return nil
}

func (s maintenanceStore) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]domain.MaintenanceRecord, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []domain.MaintenanceRecord
	for _, m := range s.db.maintenance {
		if m.ProfileID == profileID {
			out = append(out, m)
		}
	}
	return out, nil
}

type appointmentStore struct{ db *memDB }

func (s appointmentStore) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]domain.Appointment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []domain.Appointment
	for _, a := range s.db.appointments {
		if a.ProfileID == profileID {
			out = append(out, a)
		}
	}
	return out, nil
}

type restaurantStore struct{ db *memDB }

func (s restaurantStore) Create(ctx context.Context, r *domain.RestaurantEntry) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	r.ID = uuid.New()
	s.db.restaurants = append(s.db.restaurants, *r)
	return nil
}

func (s restaurantStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.RestaurantEntry, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []domain.RestaurantEntry
	for _, r := range s.db.restaurants {
		if r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	return out, nil
}

type postStore struct{ db *memDB }

func (s postStore) ListRecentByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.CommunityPost, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []domain.CommunityPost
	for _, p := range s.db.posts {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
