package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/garageconnect/customer/internal/api/middleware"
	"github.com/garageconnect/customer/internal/domain"
	"github.com/garageconnect/customer/internal/screen"
	"github.com/garageconnect/customer/internal/service"
)

type ScreenHandler struct {
	screens    *screen.Registry
	aggregator *service.Aggregator
	brander    service.Brander
	now        func() time.Time
}

func NewScreenHandler(screens *screen.Registry, agg *service.Aggregator, b service.Brander) *ScreenHandler {
	return &ScreenHandler{
		screens:    screens,
		aggregator: agg,
		brander:    b,
		now:        time.Now,
	}
}

type navigateRequest struct {
	Screen string `json:"screen"`
}

type overlayRequest struct {
	Overlay string `json:"overlay"`
}

// session returns the caller's navigator, loading its collections on
// first use.
func (h *ScreenHandler) session(w http.ResponseWriter, r *http.Request) (*screen.Navigator, *domain.Profile, bool) {
	sess := middleware.SessionFromContext(r.Context())
	profile := middleware.ProfileFromContext(r.Context())
	if sess == nil || profile == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, nil, false
	}

	nav := h.screens.GetOrCreate(sess.ID, sess.ExpiresAt)
	if !nav.Loaded() {
		nav.Refresh(r.Context(), h.loader(profile))
	}
	return nav, profile, true
}

func (h *ScreenHandler) loader(p *domain.Profile) func(context.Context) domain.Dashboard {
	return func(ctx context.Context) domain.Dashboard {
		return h.aggregator.LoadAll(ctx, p.ID, p.TenantID)
	}
}

func (h *ScreenHandler) render(w http.ResponseWriter, r *http.Request, nav *screen.Navigator, p *domain.Profile) {
	theme := h.brander.Apply(middleware.TenantFromContext(r.Context()))
	writeJSON(w, http.StatusOK, nav.View(theme, p, h.now()))
}

func (h *ScreenHandler) Get(w http.ResponseWriter, r *http.Request) {
	nav, profile, ok := h.session(w, r)
	if !ok {
		return
	}
	h.render(w, r, nav, profile)
}

func (h *ScreenHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	target, err := screen.ParseScreen(req.Screen)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	nav, profile, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := nav.Machine().Navigate(r.Context(), target); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.render(w, r, nav, profile)
}

func (h *ScreenHandler) OpenOverlay(w http.ResponseWriter, r *http.Request) {
	var req overlayRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	overlay, err := screen.ParseOverlay(req.Overlay)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	nav, profile, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := nav.Machine().OpenOverlay(overlay); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.render(w, r, nav, profile)
}

func (h *ScreenHandler) CloseOverlay(w http.ResponseWriter, r *http.Request) {
	nav, profile, ok := h.session(w, r)
	if !ok {
		return
	}
	nav.Machine().CloseOverlay()
	h.render(w, r, nav, profile)
}

// Refresh reloads the collections. A refresh overtaken by a newer one
// does not overwrite it.
func (h *ScreenHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	nav, profile, ok := h.session(w, r)
	if !ok {
		return
	}
	nav.Refresh(r.Context(), h.loader(profile))
	h.render(w, r, nav, profile)
}
