package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/garageconnect/customer/internal/auth"
	"github.com/garageconnect/customer/internal/domain"
	"github.com/garageconnect/customer/internal/store"
	"go.uber.org/zap"
)

var (
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrWrongTenant         = errors.New("profile is registered with another workshop")
	ErrProfileNameRequired = errors.New("name is required")
	ErrSignUpIncomplete    = errors.New("account created but profile could not be saved")
)

type SessionService struct {
	auth     domain.AuthGateway
	profiles domain.ProfileStore
	logger   *zap.Logger
}

func NewSessionService(ag domain.AuthGateway, ps domain.ProfileStore, logger *zap.Logger) *SessionService {
	return &SessionService{
		auth:     ag,
		profiles: ps,
		logger:   logger,
	}
}

func (s *SessionService) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	sess, err := s.auth.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidSession) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	return sess, nil
}

// ResolveProfile loads the single profile linked to the session's account,
// with its tenant embedded. None or several is ErrProfileNotFound.
func (s *SessionService) ResolveProfile(ctx context.Context, sess *domain.Session) (*domain.Profile, error) {
	p, err := s.profiles.GetByAuthAccountID(ctx, sess.AccountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

// Authenticate resolves a bearer token to its session and profile.
func (s *SessionService) Authenticate(ctx context.Context, token string) (*domain.Session, *domain.Profile, error) {
	sess, err := s.GetSession(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	p, err := s.ResolveProfile(ctx, sess)
	if err != nil {
		return nil, nil, err
	}
	return sess, p, nil
}

// SignIn authenticates and requires the customer to belong to tenant. A
// session that cannot be used is signed out again before returning.
func (s *SessionService) SignIn(ctx context.Context, tenant *domain.Tenant, email, password string) (*domain.Session, *domain.Profile, error) {
	sess, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}

	p, err := s.ResolveProfile(ctx, sess)
	if err == nil && p.TenantID != tenant.ID {
		err = ErrWrongTenant
	}
	if err != nil {
		if outErr := s.auth.SignOut(ctx, sess.Token); outErr != nil {
			s.logger.Warn("failed to discard unusable session", zap.Error(outErr))
		}
		return nil, nil, err
	}
	return sess, p, nil
}

// SignUp creates the auth account and then the profile scoped to tenant.
// If the profile cannot be saved the account is deleted again; when that
// also fails ErrSignUpIncomplete is returned and the orphan is logged.
func (s *SessionService) SignUp(ctx context.Context, tenant *domain.Tenant, email, password string, fields domain.ProfileFields) (*domain.Profile, error) {
	name := strings.TrimSpace(fields.Name)
	if name == "" {
		return nil, ErrProfileNameRequired
	}

	account, err := s.auth.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}

	p := &domain.Profile{
		AuthAccountID:   account.ID,
		TenantID:        tenant.ID,
		Name:            name,
		Email:           account.Email,
		BikeBrand:       strings.TrimSpace(fields.BikeBrand),
		BikeModel:       strings.TrimSpace(fields.BikeModel),
		BikeYear:        fields.BikeYear,
		PlateNumber:     strings.ToUpper(strings.TrimSpace(fields.PlateNumber)),
		CurrentDistance: fields.CurrentDistance,
	}

	if err := s.profiles.Create(ctx, p); err != nil {
		if delErr := s.auth.DeleteAccount(ctx, account.ID); delErr != nil {
			s.logger.Error("orphaned auth account after failed sign-up",
				zap.String("account_id", account.ID.String()),
				zap.String("tenant_id", tenant.ID.String()),
				zap.Error(err),
				zap.NamedError("compensation_error", delErr),
			)
			return nil, fmt.Errorf("%w: %v", ErrSignUpIncomplete, err)
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}

	p.Tenant = tenant
	return p, nil
}

func (s *SessionService) SignOut(ctx context.Context, token string) error {
	if err := s.auth.SignOut(ctx, token); err != nil {
		if errors.Is(err, auth.ErrInvalidSession) {
			return ErrNotAuthenticated
		}
		return err
	}
	return nil
}
