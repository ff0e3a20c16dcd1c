package service

import (
	"context"
	"errors"

	"github.com/garageconnect/customer/internal/domain"
	"go.uber.org/zap"
)

type BootstrapState string

const (
	StateTenantNotFound BootstrapState = "tenant_not_found"
	StateLogin          BootstrapState = "login"
	StateReady          BootstrapState = "ready"
)

// BootstrapResult is the terminal state reached for a request. Theme is
// set whenever the tenant resolved; Profile and Dashboard only when ready.
type BootstrapResult struct {
	State     BootstrapState    `json:"state"`
	Tenant    *domain.Tenant    `json:"tenant,omitempty"`
	Theme     *domain.Theme     `json:"theme,omitempty"`
	Profile   *domain.Profile   `json:"profile,omitempty"`
	Dashboard *domain.Dashboard `json:"dashboard,omitempty"`
	Degraded  []string          `json:"degraded,omitempty"`
}

// Bootstrapper runs tenant, branding, session, profile and aggregate in
// order, stopping at the first step that cannot proceed.
type Bootstrapper struct {
	tenants    *TenantService
	brander    Brander
	sessions   *SessionService
	aggregator *Aggregator
	logger     *zap.Logger
}

func NewBootstrapper(ts *TenantService, b Brander, ss *SessionService, agg *Aggregator, logger *zap.Logger) *Bootstrapper {
	return &Bootstrapper{
		tenants:    ts,
		brander:    b,
		sessions:   ss,
		aggregator: agg,
		logger:     logger,
	}
}

func (b *Bootstrapper) Bootstrap(ctx context.Context, host, token string) *BootstrapResult {
	tenant, err := b.tenants.ResolveHost(ctx, host)
	if err != nil {
		return &BootstrapResult{State: StateTenantNotFound}
	}
	return b.BootstrapTenant(ctx, tenant, token)
}

// BootstrapTenant continues from an already resolved tenant.
func (b *Bootstrapper) BootstrapTenant(ctx context.Context, tenant *domain.Tenant, token string) *BootstrapResult {
	theme := b.brander.Apply(tenant)
	res := &BootstrapResult{State: StateLogin, Tenant: tenant, Theme: &theme}

	if token == "" {
		return res
	}
	_, profile, err := b.sessions.Authenticate(ctx, token)
	if err != nil {
		if !errors.Is(err, ErrNotAuthenticated) && !errors.Is(err, ErrProfileNotFound) {
			b.logger.Warn("session bootstrap failed", zap.String("tenant_slug", tenant.Slug), zap.Error(err))
		}
		return res
	}
	if profile.TenantID != tenant.ID {
		return res
	}

	d := b.aggregator.LoadAll(ctx, profile.ID, tenant.ID)
	res.State = StateReady
	res.Profile = profile
	res.Dashboard = &d
	res.Degraded = d.Degraded()
	return res
}
