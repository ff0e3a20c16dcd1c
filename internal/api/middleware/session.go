package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/garageconnect/customer/internal/domain"
	"github.com/garageconnect/customer/internal/service"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Session, *domain.Profile, error)
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireSession authenticates the bearer token and requires the profile
// to belong to the tenant already resolved for the request.
func RequireSession(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			sess, profile, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrNotAuthenticated):
					writeError(w, http.StatusUnauthorized, "invalid or expired session")
				case errors.Is(err, service.ErrProfileNotFound):
					writeError(w, http.StatusForbidden, "no customer profile for this account")
				default:
					writeError(w, http.StatusInternalServerError, "failed to resolve session")
				}
				return
			}

			tenant := TenantFromContext(r.Context())
			if tenant == nil || profile.TenantID != tenant.ID {
				writeError(w, http.StatusForbidden, service.ErrWrongTenant.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess, profile)))
		})
	}
}
