package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	apimiddleware "github.com/voyagr/voyagr-api/internal/api/middleware"
	"github.com/voyagr/voyagr-api/internal/service"
)

// TripHandler handles trip-related API requests.
type TripHandler struct {
	tripService service.TripService
	validator   *validator.Validate
}

// NewTripHandler creates a new TripHandler with the given dependencies.
func NewTripHandler(tripService service.TripService) *TripHandler {
	return &TripHandler{
		tripService: tripService,
		validator:   validator.New(),
	}
}

// CreateTrip handles POST /trips. The trip is persisted synchronously and
// itinerary generation is queued in the background, so the response is 202
// with the generation still pending.
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := apimiddleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateTripRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if req.DepartsAt.Before(req.ArrivesAt) {
		RespondWithError(w, r, http.StatusBadRequest, "Departure must not be before arrival")
		return
	}

	trip, err := h.tripService.CreateTripAndEnqueueJob(
		r.Context(),
		userID,
		req.Title,
		req.ArrivesAt,
		req.DepartsAt,
		req.City,
		req.TotalBudget,
		req.Themes,
		req.WantedPlaces,
	)
	if err != nil {
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create trip", err)
		return
	}

	RespondWithJSON(w, r, http.StatusAccepted, newTripResponse(trip))
}

// GetTrip handles GET /trips/{id}, returning the trip with whatever
// itinerary has been generated so far.
func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := apimiddleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	tripID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid trip ID")
		return
	}

	detail, err := h.tripService.GetTripDetail(r.Context(), tripID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTripNotFound):
			RespondWithError(w, r, http.StatusNotFound, "Trip not found")
		case errors.Is(err, service.ErrTripAccessDenied):
			// Do not reveal that a trip owned by someone else exists.
			RespondWithError(w, r, http.StatusNotFound, "Trip not found")
		default:
			RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to retrieve trip", err)
		}
		return
	}

	RespondWithJSON(w, r, http.StatusOK, newTripDetailResponse(detail))
}

// ListTrips handles GET /trips, returning the caller's trips newest first.
func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := apimiddleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	trips, err := h.tripService.ListTrips(r.Context(), userID)
	if err != nil {
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list trips", err)
		return
	}

	resp := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		resp = append(resp, newTripResponse(trip))
	}

	RespondWithJSON(w, r, http.StatusOK, resp)
}

// DeleteTrip handles DELETE /trips/{id}.
func (h *TripHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := apimiddleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	tripID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid trip ID")
		return
	}

	if err := h.tripService.DeleteTrip(r.Context(), tripID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrTripNotFound):
			RespondWithError(w, r, http.StatusNotFound, "Trip not found")
		case errors.Is(err, service.ErrTripAccessDenied):
			RespondWithError(w, r, http.StatusNotFound, "Trip not found")
		default:
			RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to delete trip", err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
