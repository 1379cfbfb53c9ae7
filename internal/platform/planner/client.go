// Package planner provides the client for the external itinerary planning
// service. Given a trip's destination, dates, budget, and preferences it
// requests a day-by-day activity plan over HTTP.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/voyagr/voyagr-api/internal/config"
	"github.com/voyagr/voyagr-api/internal/domain"
	"github.com/voyagr/voyagr-api/internal/platform/logger"
)

const (
	itineraryPath = "/api/v1/itinerary"

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Client defines the interface for requesting itinerary plans.
type Client interface {
	// GenerateItinerary requests a plan for the given trip. It returns the
	// decoded response, or an error when the request fails, the service
	// responds with a non-success status, or the body cannot be decoded.
	// A single request is made per call; callers own any retry behavior.
	GenerateItinerary(ctx context.Context, trip *domain.Trip) (*ItineraryResponse, error)
}

// HTTPClient implements Client against the planning service's REST API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Ensure HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a planner client from configuration. The request
// timeout bounds the full round trip including body read.
func NewHTTPClient(cfg config.PlannerConfig, log *slog.Logger) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("planner base URL is required")
	}

	if log == nil {
		log = slog.Default()
	}

	return &HTTPClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: log.With(slog.String("component", "planner_client")),
	}, nil
}

// GenerateItinerary implements Client.GenerateItinerary.
func (c *HTTPClient) GenerateItinerary(ctx context.Context, trip *domain.Trip) (*ItineraryResponse, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	payload := requestFromTrip(trip)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling request: %v", ErrRequestFailed, err)
	}

	url := c.baseURL + itineraryPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.Debug("requesting itinerary plan",
		slog.String("trip_id", trip.ID.String()),
		slog.String("city", trip.City))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("planner request failed",
			slog.String("trip_id", trip.ID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a bounded slice of the body so the error carries context.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Warn("planner service returned non-success status",
			slog.String("trip_id", trip.ID.String()),
			slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d: %s", ErrServiceError, resp.StatusCode, snippet)
	}

	var result ItineraryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	log.Debug("itinerary plan received",
		slog.String("trip_id", trip.ID.String()),
		slog.Int("days", len(result.Itineraries)),
		slog.Duration("elapsed", time.Since(start)))

	return &result, nil
}

// requestFromTrip maps a trip entity onto the service's wire format.
func requestFromTrip(trip *domain.Trip) ItineraryRequest {
	themes := trip.Themes
	if themes == nil {
		themes = []string{}
	}
	places := trip.WantedPlaces
	if places == nil {
		places = []string{}
	}

	return ItineraryRequest{
		TripID:        trip.ID.String(),
		ArrivalDate:   trip.ArrivesAt.Format(dateLayout),
		ArrivalTime:   trip.ArrivesAt.Format(timeLayout),
		DepartureDate: trip.DepartsAt.Format(dateLayout),
		DepartureTime: trip.DepartsAt.Format(timeLayout),
		TravelCity:    trip.City,
		TotalBudget:   trip.TotalBudget,
		TravelThemes:  themes,
		WantedPlaces:  places,
	}
}
