package service

import (
	"context"
	"testing"
	"time"

	"github.com/garageconnect/customer/internal/auth"
	"github.com/garageconnect/customer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sessionFixture struct {
	accounts *memAccounts
	sessions *memSessions
	profiles *memProfileStore
	svc      *SessionService
}

func newSessionFixture(tenants ...*domain.Tenant) *sessionFixture {
	accounts := newMemAccounts()
	sessions := newMemSessions()
	profiles := newMemProfileStore(tenants...)
	gateway := auth.NewService(accounts, sessions, "test-secret", time.Hour)
	return &sessionFixture{
		accounts: accounts,
		sessions: sessions,
		profiles: profiles,
		svc:      NewSessionService(gateway, profiles, zap.NewNop()),
	}
}

func riderFields() domain.ProfileFields {
	year := 2021
	return domain.ProfileFields{
		Name:            "Marta Rossi",
		BikeBrand:       "Ducati",
		BikeModel:       "Monster",
		BikeYear:        &year,
		PlateNumber:     "ab 123 cd",
		CurrentDistance: 12500,
	}
}

func TestSessionService_SignUpThenSignIn(t *testing.T) {
	ctx := context.Background()
	tenant := testTenant("aroni-moto")
	f := newSessionFixture(tenant)

	created, err := f.svc.SignUp(ctx, tenant, "Marta@Example.com ", "hunter22", riderFields())
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, created.TenantID)
	assert.Equal(t, "marta@example.com", created.Email)
	assert.Equal(t, "AB 123 CD", created.PlateNumber)

	sess, p, err := f.svc.SignIn(ctx, tenant, "marta@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)

	resolved, err := f.svc.ResolveProfile(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, resolved.TenantID)
	assert.Equal(t, p.ID, resolved.ID)
	require.NotNil(t, resolved.Tenant)
	assert.Equal(t, tenant.Slug, resolved.Tenant.Slug)
}

func TestSessionService_SignUpRequiresName(t *testing.T) {
	tenant := testTenant("aroni-moto")
	f := newSessionFixture(tenant)

	fields := riderFields()
	fields.Name = "  "
	_, err := f.svc.SignUp(context.Background(), tenant, "a@b.co", "hunter22", fields)
	assert.ErrorIs(t, err, ErrProfileNameRequired)
	assert.Equal(t, 0, f.accounts.count())
}

func TestSessionService_SignUpCompensatesFailedProfile(t *testing.T) {
	ctx := context.Background()
	tenant := testTenant("aroni-moto")
	f := newSessionFixture(tenant)
	f.profiles.createErr = errBackend

	_, err := f.svc.SignUp(ctx, tenant, "a@b.co", "hunter22", riderFields())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSignUpIncomplete)
	assert.Equal(t, 0, f.accounts.count())

	// The address is free again after compensation.
	f.profiles.createErr = nil
	_, err = f.svc.SignUp(ctx, tenant, "a@b.co", "hunter22", riderFields())
	assert.NoError(t, err)
}

func TestSessionService_SignUpIncompleteWhenCompensationFails(t *testing.T) {
	tenant := testTenant("aroni-moto")
	f := newSessionFixture(tenant)
	f.profiles.createErr = errBackend
	f.accounts.deleteErr = errBackend

	_, err := f.svc.SignUp(context.Background(), tenant, "a@b.co", "hunter22", riderFields())
	assert.ErrorIs(t, err, ErrSignUpIncomplete)
	assert.Equal(t, 1, f.accounts.count())
}

func TestSessionService_SignUpPropagatesAuthErrors(t *testing.T) {
	ctx := context.Background()
	tenant := testTenant("aroni-moto")
	f := newSessionFixture(tenant)

	_, err := f.svc.SignUp(ctx, tenant, "a@b.co", "123", riderFields())
	assert.ErrorIs(t, err, auth.ErrWeakPassword)

	_, err = f.svc.SignUp(ctx, tenant, "a@b.co", "hunter22", riderFields())
	require.NoError(t, err)
	_, err = f.svc.SignUp(ctx, tenant, "A@B.co", "hunter22", riderFields())
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestSessionService_SignInRejectsOtherTenant(t *testing.T) {
	ctx := context.Background()
	home := testTenant("aroni-moto")
	other := testTenant("speedy")
	f := newSessionFixture(home, other)

	_, err := f.svc.SignUp(ctx, home, "a@b.co", "hunter22", riderFields())
	require.NoError(t, err)

	_, _, err = f.svc.SignIn(ctx, other, "a@b.co", "hunter22")
	assert.ErrorIs(t, err, ErrWrongTenant)
	assert.Equal(t, 0, f.sessions.count(), "unusable session must be signed out")
}

func TestSessionService_SignInWithoutProfile(t *testing.T) {
	ctx := context.Background()
	tenant := testTenant("aroni-moto")
	f := newSessionFixture(tenant)

	gateway := auth.NewService(f.accounts, f.sessions, "test-secret", time.Hour)
	_, err := gateway.SignUp(ctx, "orphan@b.co", "hunter22")
	require.NoError(t, err)

	_, _, err = f.svc.SignIn(ctx, tenant, "orphan@b.co", "hunter22")
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.Equal(t, 0, f.sessions.count())
}

func TestSessionService_SignInBadPassword(t *testing.T) {
	ctx := context.Background()
	tenant := testTenant("aroni-moto")
	f := newSessionFixture(tenant)

	_, err := f.svc.SignUp(ctx, tenant, "a@b.co", "hunter22", riderFields())
	require.NoError(t, err)

	_, _, err = f.svc.SignIn(ctx, tenant, "a@b.co", "wrong-pass")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestSessionService_AuthenticateAndSignOut(t *testing.T) {
	ctx := context.Background()
	tenant := testTenant("aroni-moto")
	f := newSessionFixture(tenant)

	_, err := f.svc.SignUp(ctx, tenant, "a@b.co", "hunter22", riderFields())
	require.NoError(t, err)
	sess, _, err := f.svc.SignIn(ctx, tenant, "a@b.co", "hunter22")
	require.NoError(t, err)

	_, p, err := f.svc.Authenticate(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "Marta Rossi", p.Name)

	require.NoError(t, f.svc.SignOut(ctx, sess.Token))

	_, _, err = f.svc.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, _, err = f.svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
