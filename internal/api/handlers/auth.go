package handlers

import (
	"errors"
	"net/http"

	"github.com/garageconnect/customer/internal/api/middleware"
	"github.com/garageconnect/customer/internal/auth"
	"github.com/garageconnect/customer/internal/domain"
	"github.com/garageconnect/customer/internal/screen"
	"github.com/garageconnect/customer/internal/service"
)

type AuthHandler struct {
	sessions *service.SessionService
	screens  *screen.Registry
}

func NewAuthHandler(ss *service.SessionService, screens *screen.Registry) *AuthHandler {
	return &AuthHandler{sessions: ss, screens: screens}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	domain.ProfileFields
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	*domain.Session
	Profile *domain.Profile `json:"profile"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	if tenant == nil {
		writeError(w, http.StatusNotFound, "tenant not found")
		return
	}

	var req signUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.sessions.SignUp(r.Context(), tenant, req.Email, req.Password, req.ProfileFields)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidEmail),
			errors.Is(err, auth.ErrWeakPassword),
			errors.Is(err, service.ErrProfileNameRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrEmailTaken):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrSignUpIncomplete):
			writeError(w, http.StatusInternalServerError, service.ErrSignUpIncomplete.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to sign up")
		}
		return
	}

	writeJSON(w, http.StatusCreated, profile)
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	if tenant == nil {
		writeError(w, http.StatusNotFound, "tenant not found")
		return
	}

	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sess, profile, err := h.sessions.SignIn(r.Context(), tenant, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrWrongTenant), errors.Is(err, service.ErrProfileNotFound):
			writeError(w, http.StatusForbidden, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to sign in")
		}
		return
	}

	writeJSON(w, http.StatusOK, signInResponse{Session: sess, Profile: profile})
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.sessions.SignOut(r.Context(), sess.Token); err != nil && !errors.Is(err, service.ErrNotAuthenticated) {
		writeError(w, http.StatusInternalServerError, "failed to sign out")
		return
	}
	h.screens.Drop(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}
