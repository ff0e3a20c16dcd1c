package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/garageconnect/customer/internal/domain"
	"github.com/garageconnect/customer/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

const MinPasswordLength = 6

// Claims are carried in the session token. The registered ID is the
// session id tracked by the registry.
type Claims struct {
	AccountID uuid.UUID `json:"account_id"`
	jwt.RegisteredClaims
}

// Service issues and validates sessions for email/password accounts.
type Service struct {
	accounts domain.AccountStore
	sessions domain.SessionRegistry
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewService(accounts domain.AccountStore, sessions domain.SessionRegistry, secret string, ttl time.Duration) *Service {
	return &Service{
		accounts: accounts,
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}
}

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) SignUp(ctx context.Context, email, password string) (*domain.Account, error) {
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a := &domain.Account{Email: email, PasswordHash: hash}
	if err := s.accounts.Create(ctx, a); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return a, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	a, err := s.accounts.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPasswordHash(password, a.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, a.ID)
}

func (s *Service) issue(ctx context.Context, accountID uuid.UUID) (*domain.Session, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	sessionID := uuid.NewString()

	claims := &Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	if err := s.sessions.RegisterSession(ctx, sessionID, accountID, s.ttl); err != nil {
		return nil, fmt.Errorf("register session: %w", err)
	}

	return &domain.Session{
		ID:        sessionID,
		Token:     token,
		AccountID: accountID,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *Service) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid || claims.ID == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// GetSession validates the token and checks it has not been signed out.
func (s *Service) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	accountID, ok, err := s.sessions.LookupSession(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if !ok || accountID != claims.AccountID {
		return nil, ErrInvalidSession
	}

	return &domain.Session{
		ID:        claims.ID,
		Token:     token,
		AccountID: claims.AccountID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *Service) SignOut(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}
	return s.sessions.RevokeSession(ctx, claims.ID)
}

func (s *Service) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return s.accounts.Delete(ctx, id)
}
