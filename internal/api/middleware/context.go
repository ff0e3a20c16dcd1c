package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/garageconnect/customer/internal/domain"
)

type contextKey string

const (
	tenantContextKey  contextKey = "tenant"
	sessionContextKey contextKey = "session"
	profileContextKey contextKey = "profile"
	logTagsContextKey contextKey = "log_tags"
)

func TenantFromContext(ctx context.Context) *domain.Tenant {
	t, _ := ctx.Value(tenantContextKey).(*domain.Tenant)
	return t
}

func SessionFromContext(ctx context.Context) *domain.Session {
	s, _ := ctx.Value(sessionContextKey).(*domain.Session)
	return s
}

func ProfileFromContext(ctx context.Context) *domain.Profile {
	p, _ := ctx.Value(profileContextKey).(*domain.Profile)
	return p
}

// WithTenant stores t in ctx. Exported for handler tests.
func WithTenant(ctx context.Context, t *domain.Tenant) context.Context {
	if tags, ok := ctx.Value(logTagsContextKey).(*logTags); ok && t != nil {
		tags.tenantID = t.ID.String()
	}
	return context.WithValue(ctx, tenantContextKey, t)
}

// WithSession stores the authenticated session and profile in ctx.
func WithSession(ctx context.Context, s *domain.Session, p *domain.Profile) context.Context {
	if tags, ok := ctx.Value(logTagsContextKey).(*logTags); ok && p != nil {
		tags.profileID = p.ID.String()
	}
	ctx = context.WithValue(ctx, sessionContextKey, s)
	return context.WithValue(ctx, profileContextKey, p)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
