package handlers

import (
	"net/http"

	"github.com/garageconnect/customer/internal/api/middleware"
	"github.com/garageconnect/customer/internal/domain"
	"github.com/garageconnect/customer/internal/service"
)

type TenantHandler struct {
	brander service.Brander
}

func NewTenantHandler(b service.Brander) *TenantHandler {
	return &TenantHandler{brander: b}
}

type tenantResponse struct {
	ID    string       `json:"id"`
	Slug  string       `json:"slug"`
	Name  string       `json:"name"`
	Theme domain.Theme `json:"theme"`
}

func (h *TenantHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	if tenant == nil {
		writeError(w, http.StatusNotFound, "tenant not found")
		return
	}

	writeJSON(w, http.StatusOK, tenantResponse{
		ID:    tenant.ID.String(),
		Slug:  tenant.Slug,
		Name:  tenant.Name,
		Theme: h.brander.Apply(tenant),
	})
}
