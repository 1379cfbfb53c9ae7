package api

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/voyagr/voyagr-api/internal/domain"
	"github.com/voyagr/voyagr-api/internal/service"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Token is the JWT used for API authorization
	Token string `json:"token"`
}

// CreateTripRequest defines the payload for the trip creation endpoint.
// Budget is expressed in minor currency units.
type CreateTripRequest struct {
	Title        string    `json:"title"         validate:"required,max=200"`
	City         string    `json:"city"          validate:"required,max=100"`
	ArrivesAt    time.Time `json:"arrives_at"    validate:"required"`
	DepartsAt    time.Time `json:"departs_at"    validate:"required"`
	TotalBudget  int64     `json:"total_budget"  validate:"gte=0"`
	Themes       []string  `json:"themes"        validate:"max=20,dive,max=50"`
	WantedPlaces []string  `json:"wanted_places" validate:"max=50,dive,max=200"`
}

// TripResponse is the representation of a trip returned by the API.
type TripResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	City         string    `json:"city"`
	ArrivesAt    time.Time `json:"arrives_at"`
	DepartsAt    time.Time `json:"departs_at"`
	TotalBudget  int64     `json:"total_budget"`
	Themes       []string  `json:"themes"`
	WantedPlaces []string  `json:"wanted_places"`
	CreatedAt    time.Time `json:"created_at"`
}

// TripDetailResponse is a trip together with its generated itinerary.
// Days is empty until generation completes, or forever if it failed.
type TripDetailResponse struct {
	TripResponse
	Itinerary []DayResponse `json:"itinerary"`
}

// DayResponse is one itinerary day and its activities.
type DayResponse struct {
	DayIndex   int                `json:"day"`
	Date       *string            `json:"date,omitempty"`
	Activities []ActivityResponse `json:"activities"`
}

// ActivityResponse is one scheduled activity within a day. StartTime uses
// HH:mm and Duration is whole minutes. Place-only and transport-only fields
// are omitted on the other kind.
type ActivityResponse struct {
	Kind            string `json:"kind"`
	EventOrder      int    `json:"event_order"`
	StartTime       string `json:"start_time"`
	DurationMinutes int64  `json:"duration_minutes"`

	PlaceName string `json:"place_name,omitempty"`
	Cost      *int64 `json:"cost,omitempty"`
	Memo      string `json:"memo,omitempty"`
	MapURL    string `json:"map_url,omitempty"`

	TransportMode string `json:"transport_mode,omitempty"`
}

// newTripResponse maps a trip entity to its API representation.
func newTripResponse(trip *domain.Trip) TripResponse {
	themes := trip.Themes
	if themes == nil {
		themes = []string{}
	}
	places := trip.WantedPlaces
	if places == nil {
		places = []string{}
	}

	return TripResponse{
		ID:           trip.ID,
		Title:        trip.Title,
		City:         trip.City,
		ArrivesAt:    trip.ArrivesAt,
		DepartsAt:    trip.DepartsAt,
		TotalBudget:  trip.TotalBudget,
		Themes:       themes,
		WantedPlaces: places,
		CreatedAt:    trip.CreatedAt,
	}
}

// newTripDetailResponse maps a trip and its itinerary to the API shape.
func newTripDetailResponse(detail *service.TripDetail) TripDetailResponse {
	resp := TripDetailResponse{
		TripResponse: newTripResponse(detail.Trip),
		Itinerary:    make([]DayResponse, 0, len(detail.Days)),
	}

	for _, d := range detail.Days {
		day := DayResponse{
			DayIndex:   d.Day.DayIndex,
			Activities: make([]ActivityResponse, 0, len(d.Activities)),
		}
		if d.Day.Date != nil {
			formatted := d.Day.Date.Format("2006-01-02")
			day.Date = &formatted
		}

		for _, a := range d.Activities {
			day.Activities = append(day.Activities, newActivityResponse(a))
		}
		resp.Itinerary = append(resp.Itinerary, day)
	}

	return resp
}

func newActivityResponse(a *domain.ItineraryActivity) ActivityResponse {
	resp := ActivityResponse{
		Kind:            string(a.Kind),
		EventOrder:      a.EventOrder,
		StartTime:       formatStartTime(a.StartTime),
		DurationMinutes: int64(a.Duration / time.Minute),
	}

	switch a.Kind {
	case domain.ActivityKindPlace:
		cost := a.Cost
		resp.PlaceName = a.PlaceName
		resp.Cost = &cost
		resp.Memo = a.Memo
		resp.MapURL = a.MapURL
	case domain.ActivityKindTransport:
		resp.TransportMode = a.TransportMode
	}

	return resp
}

// formatStartTime renders an offset from midnight as HH:mm.
func formatStartTime(offset time.Duration) string {
	hours := int(offset / time.Hour)
	minutes := int((offset % time.Hour) / time.Minute)
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}
