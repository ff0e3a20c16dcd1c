package handlers

import (
	"errors"
	"net/http"

	"github.com/garageconnect/customer/internal/api/middleware"
	"github.com/garageconnect/customer/internal/screen"
	"github.com/garageconnect/customer/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// RecordHandler serves the customer's collections and record creation.
// Created records are also pushed into the session's navigator, if any.
type RecordHandler struct {
	records    *service.RecordService
	aggregator *service.Aggregator
	screens    *screen.Registry
}

func NewRecordHandler(rs *service.RecordService, agg *service.Aggregator, screens *screen.Registry) *RecordHandler {
	return &RecordHandler{records: rs, aggregator: agg, screens: screens}
}

func (h *RecordHandler) navigator(r *http.Request) (*screen.Navigator, bool) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		return nil, false
	}
	return h.screens.Get(sess.ID)
}

func writeRecordError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrTripTitleRequired),
		errors.Is(err, service.ErrInvalidDistance),
		errors.Is(err, service.ErrInvalidDuration),
		errors.Is(err, service.ErrRestaurantNameRequired),
		errors.Is(err, service.ErrRestaurantLocationNeeded),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrIncompleteCoordinates),
		errors.Is(err, service.ErrInvalidMaintenanceType),
		errors.Is(err, service.ErrMaintenanceDateRequired),
		errors.Is(err, service.ErrInvalidCost),
		errors.Is(err, service.ErrEmptyUpload):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTripNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func (h *RecordHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromContext(r.Context())
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	trips, err := h.aggregator.ListTrips(r.Context(), profile.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list trips")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(trips))
}

func (h *RecordHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromContext(r.Context())
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in service.TripInput
	if !decodeJSON(w, r, &in) {
		return
	}

	trip, err := h.records.CreateTrip(r.Context(), profile, in)
	if err != nil {
		writeRecordError(w, err, "failed to create trip")
		return
	}

	if nav, ok := h.navigator(r); ok {
		nav.SaveTrip(*trip)
	}
	writeJSON(w, http.StatusCreated, trip)
}

func (h *RecordHandler) UploadTripPhoto(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromContext(r.Context())
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	tripID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid trip id")
		return
	}

	name, data, err := readUpload(w, r)
	if err != nil {
		if errors.Is(err, errUploadTooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}

	photo, err := h.records.UploadTripPhoto(r.Context(), profile, tripID, name, data)
	if err != nil {
		writeRecordError(w, err, "failed to upload photo")
		return
	}

	if nav, ok := h.navigator(r); ok {
		nav.AddTripPhoto(*photo)
	}
	writeJSON(w, http.StatusCreated, photo)
}

func (h *RecordHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromContext(r.Context())
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entries, err := h.aggregator.ListRestaurants(r.Context(), profile.TenantID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list restaurants")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(entries))
}

func (h *RecordHandler) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromContext(r.Context())
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in service.RestaurantInput
	if !decodeJSON(w, r, &in) {
		return
	}

	entry, err := h.records.CreateRestaurant(r.Context(), profile, in)
	if err != nil {
		writeRecordError(w, err, "failed to create restaurant")
		return
	}

	if nav, ok := h.navigator(r); ok {
		nav.SaveRestaurant(*entry)
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *RecordHandler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromContext(r.Context())
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	records, err := h.aggregator.ListMaintenance(r.Context(), profile.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list maintenance")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(records))
}

func (h *RecordHandler) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromContext(r.Context())
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in service.MaintenanceInput
	if !decodeJSON(w, r, &in) {
		return
	}

	record, err := h.records.CreateMaintenance(r.Context(), profile, in)
	if err != nil {
		writeRecordError(w, err, "failed to create maintenance record")
		return
	}

	if nav, ok := h.navigator(r); ok {
		nav.SaveMaintenance(*record)
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *RecordHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromContext(r.Context())
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	appointments, err := h.aggregator.ListAppointments(r.Context(), profile.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list appointments")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(appointments))
}

func (h *RecordHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	profile := middleware.ProfileFromContext(r.Context())
	if profile == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	posts, err := h.aggregator.ListPosts(r.Context(), profile.TenantID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list posts")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(posts))
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
