package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/garageconnect/customer/internal/domain"
)

type TenantResolver interface {
	ResolveHost(ctx context.Context, host string) (*domain.Tenant, error)
}

// RequestHost prefers the first X-Forwarded-Host entry over Host.
func RequestHost(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-Host"); fwd != "" {
		host, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(host)
	}
	return r.Host
}

// Tenant resolves the workshop from the request host. Unknown or inactive
// workshops get 404.
func Tenant(resolver TenantResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenant, err := resolver.ResolveHost(r.Context(), RequestHost(r))
			if err != nil {
				writeError(w, http.StatusNotFound, "tenant not found")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), tenant)))
		})
	}
}
