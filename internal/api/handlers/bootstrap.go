package handlers

import (
	"net/http"

	"github.com/garageconnect/customer/internal/api/middleware"
	"github.com/garageconnect/customer/internal/service"
)

type BootstrapHandler struct {
	boot *service.Bootstrapper
}

func NewBootstrapHandler(b *service.Bootstrapper) *BootstrapHandler {
	return &BootstrapHandler{boot: b}
}

// Get reports which terminal state the client should show. An unknown
// workshop is a 404 carrying the tenant_not_found state.
func (h *BootstrapHandler) Get(w http.ResponseWriter, r *http.Request) {
	res := h.boot.Bootstrap(r.Context(), middleware.RequestHost(r), middleware.BearerToken(r))

	status := http.StatusOK
	if res.State == service.StateTenantNotFound {
		status = http.StatusNotFound
	}
	writeJSON(w, status, res)
}
