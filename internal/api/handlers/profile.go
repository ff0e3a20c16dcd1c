package handlers

import (
	"errors"
	"net/http"

	"github.com/garageconnect/customer/internal/api/middleware"
	"github.com/garageconnect/customer/internal/service"
)

type ProfileHandler struct {
	records *service.RecordService
}

func NewProfileHandler(rs *service.RecordService) *ProfileHandler {
	return &ProfileHandler{records: rs}
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromContext(r.Context())
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromContext(r.Context())
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	_, data, err := readUpload(w, r)
	if err != nil {
		if errors.Is(err, errUploadTooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}

	url, err := h.records.UploadAvatar(r.Context(), profile, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyUpload), errors.Is(err, service.ErrInvalidImage):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrProfileNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to upload avatar")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"avatar_url": url})
}
