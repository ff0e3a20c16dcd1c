package service

import (
	"context"
	"testing"
	"time"

	"github.com/garageconnect/customer/internal/domain"
	"github.com/garageconnect/customer/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testTenant(slug string) *domain.Tenant {
	return &domain.Tenant{
		ID:             uuid.New(),
		Slug:           slug,
		Name:           "Aroni Moto",
		PrimaryColor:   "#e11d48",
		SecondaryColor: "#111827",
		Active:         true,
	}
}

func TestSlugResolver_DemoHostsIgnorePortPathAndQuery(t *testing.T) {
	r := SlugResolver{DemoSlug: "aroni-moto", DemoHosts: []string{"localhost", "127.0.0.1", "demo.garage.app"}}

	hosts := []string{
		"localhost",
		"localhost:5173",
		"LOCALHOST:8080",
		"http://localhost:3000/trips?tab=all",
		"https://user@localhost/profile#top",
		"127.0.0.1:8080",
		"demo.garage.app",
		"https://demo.garage.app:443/explorer?lat=1",
	}
	for _, h := range hosts {
		t.Run(h, func(t *testing.T) {
			assert.Equal(t, "aroni-moto", r.ResolveSlug(h))
		})
	}
}

func TestSlugResolver_Wildcard(t *testing.T) {
	r := SlugResolver{DemoSlug: "aroni-moto", DemoHosts: []string{"*"}}
	assert.Equal(t, "aroni-moto", r.ResolveSlug("speedy.garage.app"))
	assert.Equal(t, "aroni-moto", r.ResolveSlug("example.com"))
}

func TestSlugResolver_Subdomains(t *testing.T) {
	r := SlugResolver{DemoSlug: "aroni-moto", DemoHosts: []string{"localhost"}}

	tests := []struct {
		host string
		want string
	}{
		{"speedy.garage.app", "speedy"},
		{"Speedy.Garage.App:443", "speedy"},
		{"https://speedy.garage.app/trips", "speedy"},
		{"speedy.localhost:5173", "speedy"},
		{"garage.app", ""},
		{"10.0.0.4", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ResolveSlug(tt.host))
		})
	}
}

func TestTenantService_Fetch(t *testing.T) {
	ctx := context.Background()
	tenant := testTenant("speedy")

	ts := new(mockTenantStore)
	ts.On("GetActiveBySlug", mock.Anything, "speedy").Return(tenant, nil).Once()

	cache := newMemTenantCache()
	svc := NewTenantService(ts, cache, SlugResolver{}, time.Minute, zap.NewNop())

	got, err := svc.Fetch(ctx, "speedy")
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, got.ID)
	assert.Equal(t, 1, cache.sets)

	ts.On("CheckActive", mock.Anything, tenant.ID, "speedy").Return(nil).Once()

	// Second fetch is served from cache after a cheap revalidation.
	got, err = svc.Fetch(ctx, "speedy")
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, got.ID)
	ts.AssertExpectations(t)
}

func TestTenantService_CachedTenantDeactivated(t *testing.T) {
	ctx := context.Background()
	tenant := testTenant("speedy")

	ts := new(mockTenantStore)
	ts.On("GetActiveBySlug", mock.Anything, "speedy").Return(tenant, nil).Once()
	ts.On("CheckActive", mock.Anything, tenant.ID, "speedy").Return(store.ErrNotFound).Once()

	cache := newMemTenantCache()
	svc := NewTenantService(ts, cache, SlugResolver{}, time.Minute, zap.NewNop())

	_, err := svc.Fetch(ctx, "speedy")
	require.NoError(t, err)
	require.Contains(t, cache.tenants, "speedy")

	got, err := svc.Fetch(ctx, "speedy")
	assert.ErrorIs(t, err, ErrTenantNotFound)
	assert.Nil(t, got)
	assert.NotContains(t, cache.tenants, "speedy")
	ts.AssertExpectations(t)
}

func TestTenantService_RevalidationErrorIsNotFound(t *testing.T) {
	ctx := context.Background()
	tenant := testTenant("speedy")

	ts := new(mockTenantStore)
	ts.On("CheckActive", mock.Anything, tenant.ID, "speedy").Return(errBackend).Once()

	cache := newMemTenantCache()
	cache.tenants["speedy"] = tenant
	svc := NewTenantService(ts, cache, SlugResolver{}, time.Minute, zap.NewNop())

	got, err := svc.Fetch(ctx, "speedy")
	assert.ErrorIs(t, err, ErrTenantNotFound)
	assert.Nil(t, got)
	// A backend hiccup does not evict a tenant that may still be active.
	assert.Contains(t, cache.tenants, "speedy")
	ts.AssertExpectations(t)
}

func TestTenantService_FetchCollapsesErrorsToNotFound(t *testing.T) {
	ctx := context.Background()
	inactive := testTenant("closed")
	inactive.Active = false

	ts := new(mockTenantStore)
	ts.On("GetActiveBySlug", mock.Anything, "ghost").Return(nil, store.ErrNotFound)
	ts.On("GetActiveBySlug", mock.Anything, "flaky").Return(nil, errBackend)
	ts.On("GetActiveBySlug", mock.Anything, "closed").Return(inactive, nil)

	svc := NewTenantService(ts, nil, SlugResolver{}, time.Minute, zap.NewNop())

	for _, slug := range []string{"", "ghost", "flaky", "closed"} {
		got, err := svc.Fetch(ctx, slug)
		assert.ErrorIs(t, err, ErrTenantNotFound, slug)
		assert.Nil(t, got, slug)
	}
}

func TestTenantService_CacheErrorFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	tenant := testTenant("speedy")

	ts := new(mockTenantStore)
	ts.On("GetActiveBySlug", mock.Anything, "speedy").Return(tenant, nil)

	cache := newMemTenantCache()
	cache.getErr = errBackend
	svc := NewTenantService(ts, cache, SlugResolver{}, time.Minute, zap.NewNop())

	got, err := svc.Fetch(ctx, "speedy")
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, got.ID)
}

func TestTenantService_ResolveHost(t *testing.T) {
	ctx := context.Background()
	tenant := testTenant("aroni-moto")

	ts := new(mockTenantStore)
	ts.On("GetActiveBySlug", mock.Anything, "aroni-moto").Return(tenant, nil)

	svc := NewTenantService(ts, nil, SlugResolver{DemoSlug: "aroni-moto", DemoHosts: []string{"localhost"}}, time.Minute, zap.NewNop())

	got, err := svc.ResolveHost(ctx, "localhost:5173")
	require.NoError(t, err)
	assert.Equal(t, "aroni-moto", got.Slug)

	_, err = svc.ResolveHost(ctx, "example.com")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}
