package service

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/garageconnect/customer/internal/domain"
	"github.com/garageconnect/customer/internal/store"
	"go.uber.org/zap"
)

var ErrTenantNotFound = errors.New("tenant not found")

// SlugResolver maps a request host to a tenant slug. Hosts in DemoHosts
// (or every host, when DemoHosts contains "*") resolve to DemoSlug;
// otherwise the first label of a subdomain host is the slug.
type SlugResolver struct {
	DemoSlug  string
	DemoHosts []string
}

func (r SlugResolver) ResolveSlug(host string) string {
	h := normalizeHost(host)
	if r.DemoSlug != "" {
		for _, d := range r.DemoHosts {
			if d == "*" || strings.EqualFold(d, h) {
				return r.DemoSlug
			}
		}
	}

	if net.ParseIP(h) != nil {
		return ""
	}
	labels := strings.Split(h, ".")
	switch {
	case len(labels) >= 3:
		return labels[0]
	case len(labels) == 2 && labels[1] == "localhost":
		return labels[0]
	}
	return ""
}

// normalizeHost reduces a host, host:port or URL to a lowercase hostname.
func normalizeHost(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, "@"); i >= 0 {
		s = s[i+1:]
	}
	if h, _, err := net.SplitHostPort(s); err == nil {
		s = h
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	return strings.TrimSuffix(s, ".")
}

type TenantService struct {
	store  domain.TenantStore
	cache  domain.TenantCache
	slugs  SlugResolver
	ttl    time.Duration
	logger *zap.Logger
}

// NewTenantService builds the resolver. cache may be nil.
func NewTenantService(s domain.TenantStore, c domain.TenantCache, slugs SlugResolver, ttl time.Duration, logger *zap.Logger) *TenantService {
	return &TenantService{
		store:  s,
		cache:  c,
		slugs:  slugs,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *TenantService) ResolveSlug(host string) string {
	return s.slugs.ResolveSlug(host)
}

// Fetch returns the active tenant for slug. Every failure, including a
// backend error, is reported as ErrTenantNotFound. Cache hits are
// revalidated against the store; branding fields may lag by up to the TTL.
func (s *TenantService) Fetch(ctx context.Context, slug string) (*domain.Tenant, error) {
	if slug == "" {
		return nil, ErrTenantNotFound
	}

	if s.cache != nil {
		t, ok, err := s.cache.GetTenant(ctx, slug)
		if err != nil {
			s.logger.Warn("tenant cache read failed", zap.String("tenant_slug", slug), zap.Error(err))
		} else if ok && t.Active {
			return s.revalidate(ctx, t)
		}
	}

	t, err := s.store.GetActiveBySlug(ctx, slug)
	if err != nil {
		s.logger.Warn("tenant lookup failed", zap.String("tenant_slug", slug), zap.Error(err))
		return nil, ErrTenantNotFound
	}
	if !t.Active {
		return nil, ErrTenantNotFound
	}

	if s.cache != nil {
		if err := s.cache.SetTenant(ctx, t, s.ttl); err != nil {
			s.logger.Warn("tenant cache write failed", zap.String("tenant_slug", slug), zap.Error(err))
		}
	}
	return t, nil
}

func (s *TenantService) revalidate(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	err := s.store.CheckActive(ctx, t.ID, t.Slug)
	if err == nil {
		return t, nil
	}
	if errors.Is(err, store.ErrNotFound) {
		if err := s.cache.InvalidateTenant(ctx, t.Slug); err != nil {
			s.logger.Warn("tenant cache invalidate failed", zap.String("tenant_slug", t.Slug), zap.Error(err))
		}
	} else {
		s.logger.Warn("tenant revalidation failed", zap.String("tenant_slug", t.Slug), zap.Error(err))
	}
	return nil, ErrTenantNotFound
}

func (s *TenantService) ResolveHost(ctx context.Context, host string) (*domain.Tenant, error) {
	return s.Fetch(ctx, s.ResolveSlug(host))
}
