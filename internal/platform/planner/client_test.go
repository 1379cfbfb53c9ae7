package planner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagr/voyagr-api/internal/config"
	"github.com/voyagr/voyagr-api/internal/domain"
)

func testTrip(t *testing.T) *domain.Trip {
	t.Helper()

	arrives := time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)
	departs := time.Date(2025, 6, 13, 18, 0, 0, 0, time.UTC)

	trip, err := domain.NewTrip(
		uuid.New(),
		"Summer in Lisbon",
		arrives,
		departs,
		"Lisbon",
		150000,
		[]string{"food", "history"},
		[]string{"Belem Tower"},
	)
	require.NoError(t, err)
	return trip
}

func newTestClient(t *testing.T, serverURL string) *HTTPClient {
	t.Helper()

	client, err := NewHTTPClient(config.PlannerConfig{
		BaseURL:        serverURL,
		TimeoutSeconds: 5,
	}, nil)
	require.NoError(t, err)
	return client
}

func TestGenerateItinerarySendsExpectedRequest(t *testing.T) {
	t.Parallel()

	trip := testTrip(t)

	var gotPath string
	var gotBody ItineraryRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		err := json.NewDecoder(r.Body).Decode(&gotBody)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ItineraryResponse{Message: "ok"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.GenerateItinerary(context.Background(), trip)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/itinerary", gotPath)
	assert.Equal(t, trip.ID.String(), gotBody.TripID)
	assert.Equal(t, "2025-06-10", gotBody.ArrivalDate)
	assert.Equal(t, "09:30", gotBody.ArrivalTime)
	assert.Equal(t, "2025-06-13", gotBody.DepartureDate)
	assert.Equal(t, "18:00", gotBody.DepartureTime)
	assert.Equal(t, "Lisbon", gotBody.TravelCity)
	assert.Equal(t, int64(150000), gotBody.TotalBudget)
	assert.Equal(t, []string{"food", "history"}, gotBody.TravelThemes)
	assert.Equal(t, []string{"Belem Tower"}, gotBody.WantedPlaces)
}

func TestGenerateItineraryDecodesResponse(t *testing.T) {
	t.Parallel()

	const responseBody = `{
		"message": "generated",
		"itineraries": [
			{
				"day": 1,
				"date": "2025-06-10",
				"activities": [
					{
						"type": "place",
						"placeName": "Belem Tower",
						"startTime": "10:00",
						"cost": 1200,
						"duration": 90,
						"eventOrder": 1,
						"googleMapUrl": "https://maps.example/belem"
					},
					{
						"type": "route",
						"transport": "TRAM",
						"eventOrder": 2
					}
				]
			}
		]
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(responseBody))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	resp, err := client.GenerateItinerary(context.Background(), testTrip(t))
	require.NoError(t, err)

	assert.Equal(t, "generated", resp.Message)
	require.Len(t, resp.Itineraries, 1)

	day := resp.Itineraries[0]
	assert.Equal(t, 1, day.Day)
	require.NotNil(t, day.Date)
	assert.Equal(t, "2025-06-10", *day.Date)
	require.Len(t, day.Activities, 2)

	place := day.Activities[0]
	assert.Equal(t, "place", place.Type)
	assert.Equal(t, "Belem Tower", place.PlaceName)
	require.NotNil(t, place.Cost)
	assert.Equal(t, int64(1200), *place.Cost)
	require.NotNil(t, place.Duration)
	assert.Equal(t, int64(90), *place.Duration)

	route := day.Activities[1]
	assert.Equal(t, "route", route.Type)
	assert.Equal(t, "TRAM", route.Transport)
	assert.Nil(t, route.StartTime)
	assert.Nil(t, route.Cost)
}

func TestGenerateItineraryServiceError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream model unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	resp, err := client.GenerateItinerary(context.Background(), testTrip(t))
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceError)
	assert.Contains(t, err.Error(), "502")
}

func TestGenerateItineraryInvalidBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	resp, err := client.GenerateItinerary(context.Background(), testTrip(t))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGenerateItineraryMakesExactlyOneRequest(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.GenerateItinerary(context.Background(), testTrip(t))
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	t.Parallel()

	_, err := NewHTTPClient(config.PlannerConfig{TimeoutSeconds: 5}, nil)
	assert.Error(t, err)
}
