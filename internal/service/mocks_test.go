package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/garageconnect/customer/internal/domain"
	"github.com/garageconnect/customer/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var errBackend = errors.New("connection reset by peer")

// mockTenantStore implements domain.TenantStore with testify expectations.
type mockTenantStore struct {
	mock.Mock
}

func (m *mockTenantStore) GetActiveBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	args := m.Called(ctx, slug)
	if t := args.Get(0); t != nil {
		return t.(*domain.Tenant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTenantStore) CheckActive(ctx context.Context, id uuid.UUID, slug string) error {
	return m.Called(ctx, id, slug).Error(0)
}

// memTenantCache implements domain.TenantCache.
type memTenantCache struct {
	tenants map[string]*domain.Tenant
	getErr  error
	sets    int
}

func newMemTenantCache() *memTenantCache {
	return &memTenantCache{tenants: make(map[string]*domain.Tenant)}
}

func (c *memTenantCache) GetTenant(ctx context.Context, slug string) (*domain.Tenant, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	t, ok := c.tenants[slug]
	return t, ok, nil
}

func (c *memTenantCache) SetTenant(ctx context.Context, t *domain.Tenant, ttl time.Duration) error {
	c.sets++
	c.tenants[t.Slug] = t
	return nil
}

func (c *memTenantCache) InvalidateTenant(ctx context.Context, slug string) error {
	delete(c.tenants, slug)
	return nil
}

// memProfileStore implements domain.ProfileStore.
type memProfileStore struct {
	mu        sync.Mutex
	profiles  map[uuid.UUID]*domain.Profile
	tenants   map[uuid.UUID]*domain.Tenant
	createErr error
}

func newMemProfileStore(tenants ...*domain.Tenant) *memProfileStore {
	s := &memProfileStore{
		profiles: make(map[uuid.UUID]*domain.Profile),
		tenants:  make(map[uuid.UUID]*domain.Tenant),
	}
	for _, t := range tenants {
		s.tenants[t.ID] = t
	}
	return s
}

func (s *memProfileStore) Create(ctx context.Context, p *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	for _, existing := range s.profiles {
		if existing.AuthAccountID == p.AuthAccountID {
			return store.ErrConflict
		}
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	cp := *p
	s.profiles[p.ID] = &cp
	return nil
}

func (s *memProfileStore) GetByAuthAccountID(ctx context.Context, accountID uuid.UUID) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found []*domain.Profile
	for _, p := range s.profiles {
		if p.AuthAccountID == accountID {
			found = append(found, p)
		}
	}
	if len(found) != 1 {
		return nil, store.ErrNotFound
	}
	cp := *found[0]
	cp.Tenant = s.tenants[cp.TenantID]
	return &cp, nil
}

func (s *memProfileStore) UpdateAvatarURL(ctx context.Context, id uuid.UUID, tenantID uuid.UUID, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok || p.TenantID != tenantID {
		return store.ErrNotFound
	}
	p.AvatarURL = &url
	return nil
}

// memTripStore implements domain.TripStore.
type memTripStore struct {
	mu       sync.Mutex
	trips    []domain.Trip
	listErr  error
	photoErr error
}

func (s *memTripStore) Create(ctx context.Context, t *domain.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	t.Photos = []domain.TripPhoto{}
	s.trips = append(s.trips, *t)
	return nil
}

func (s *memTripStore) GetByID(ctx context.Context, id uuid.UUID, profileID uuid.UUID) (*domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.trips {
		if s.trips[i].ID == id && s.trips[i].ProfileID == profileID {
			t := s.trips[i]
			return &t, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memTripStore) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []domain.Trip
	for _, t := range s.trips {
		if t.ProfileID == profileID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (s *memTripStore) AddPhoto(ctx context.Context, p *domain.TripPhoto) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.photoErr != nil {
		return s.photoErr
	}
	for i := range s.trips {
		if s.trips[i].ID == p.TripID {
			p.ID = uuid.New()
			s.trips[i].Photos = append(s.trips[i].Photos, *p)
			return nil
		}
	}
	return store.ErrNotFound
}

// memMaintenanceStore implements domain.MaintenanceStore.
type memMaintenanceStore struct {
	records []domain.MaintenanceRecord
	listErr error
}

func (s *memMaintenanceStore) Create(ctx context.Context, m *domain.MaintenanceRecord) error {
	m.ID = uuid.New()
	s.records = append(s.records, *m)
	return nil
}

func (s *memMaintenanceStore) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]domain.MaintenanceRecord, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []domain.MaintenanceRecord
	for _, m := range s.records {
		if m.ProfileID == profileID {
			out = append(out, m)
		}
	}
	return out, nil
}

// memAppointmentStore implements domain.AppointmentStore.
type memAppointmentStore struct {
	appointments []domain.Appointment
	listErr      error
}

func (s *memAppointmentStore) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]domain.Appointment, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []domain.Appointment
	for _, a := range s.appointments {
		if a.ProfileID == profileID {
			out = append(out, a)
		}
	}
	return out, nil
}

// memRestaurantStore implements domain.RestaurantStore.
type memRestaurantStore struct {
	entries []domain.RestaurantEntry
	listErr error
}

func (s *memRestaurantStore) Create(ctx context.Context, r *domain.RestaurantEntry) error {
	r.ID = uuid.New()
	s.entries = append(s.entries, *r)
	return nil
}

func (s *memRestaurantStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.RestaurantEntry, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []domain.RestaurantEntry
	for _, r := range s.entries {
		if r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	return out, nil
}

// memPostStore implements domain.CommunityPostStore. It honours limit
// unless ignoreLimit is set, to exercise the aggregator's own cap.
type memPostStore struct {
	posts       []domain.CommunityPost
	listErr     error
	ignoreLimit bool
}

func (s *memPostStore) ListRecentByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.CommunityPost, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []domain.CommunityPost
	for _, p := range s.posts {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if !s.ignoreLimit && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// memAccounts implements domain.AccountStore.
type memAccounts struct {
	mu        sync.Mutex
	accounts  map[uuid.UUID]*domain.Account
	deleteErr error
}

func newMemAccounts() *memAccounts {
	return &memAccounts{accounts: make(map[uuid.UUID]*domain.Account)}
}

func (s *memAccounts) Create(ctx context.Context, a *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if existing.Email == a.Email {
			return store.ErrConflict
		}
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	cp := *a
	s.accounts[a.ID] = &cp
	return nil
}

func (s *memAccounts) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memAccounts) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.accounts[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.accounts, id)
	return nil
}

func (s *memAccounts) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

// memSessions implements domain.SessionRegistry.
type memSessions struct {
	mu       sync.Mutex
	sessions map[string]uuid.UUID
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: make(map[string]uuid.UUID)}
}

func (s *memSessions) RegisterSession(ctx context.Context, id string, accountID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = accountID
	return nil
}

func (s *memSessions) LookupSession(ctx context.Context, id string) (uuid.UUID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.sessions[id]
	return a, ok, nil
}

func (s *memSessions) RevokeSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *memSessions) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// memBlobs implements domain.BlobStore.
type memBlobs struct {
	objects map[string][]byte
	deleted []string
}

func newMemBlobs() *memBlobs {
	return &memBlobs{objects: make(map[string][]byte)}
}

func (b *memBlobs) Upload(ctx context.Context, bucket, path string, data []byte, opts domain.UploadOptions) (string, error) {
	key := bucket + "/" + path
	if _, ok := b.objects[key]; ok && !opts.Overwrite {
		return "", errors.New("object exists")
	}
	b.objects[key] = data
	return path, nil
}

func (b *memBlobs) PublicURL(bucket, path string) string {
	return "https://cdn.test/" + bucket + "/" + path
}

func (b *memBlobs) Delete(ctx context.Context, bucket, path string) error {
	key := bucket + "/" + path
	delete(b.objects, key)
	b.deleted = append(b.deleted, key)
	return nil
}
