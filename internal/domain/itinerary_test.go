package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewItineraryDay(t *testing.T) {
	t.Parallel()

	tripID := uuid.New()
	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	day, err := NewItineraryDay(tripID, 1, &date)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if day.TripID != tripID {
		t.Errorf("Expected trip ID %s, got %s", tripID, day.TripID)
	}

	if day.DayIndex != 1 {
		t.Errorf("Expected day index 1, got %d", day.DayIndex)
	}

	// Date is optional
	day, err = NewItineraryDay(tripID, 2, nil)
	if err != nil {
		t.Fatalf("Expected no error for nil date, got %v", err)
	}
	if day.Date != nil {
		t.Error("Expected nil date to be preserved")
	}

	// Day index is 1-based
	_, err = NewItineraryDay(tripID, 0, nil)
	if err != ErrInvalidDayIndex {
		t.Errorf("Expected error %v, got %v", ErrInvalidDayIndex, err)
	}

	_, err = NewItineraryDay(uuid.Nil, 1, nil)
	if err != ErrEmptyDayTripID {
		t.Errorf("Expected error %v, got %v", ErrEmptyDayTripID, err)
	}
}

func TestNewPlaceActivity(t *testing.T) {
	t.Parallel()

	dayID := uuid.New()

	activity, err := NewPlaceActivity(dayID, 3, 9*time.Hour+30*time.Minute, 2*time.Hour,
		"Nishiki Market", 1500, "try the skewers", "https://maps.example.com/nishiki")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if activity.Kind != ActivityKindPlace {
		t.Errorf("Expected kind %s, got %s", ActivityKindPlace, activity.Kind)
	}

	if activity.EventOrder != 3 {
		t.Errorf("Expected event order 3, got %d", activity.EventOrder)
	}

	if activity.TransportMode != "" {
		t.Errorf("Expected empty transport mode on place activity, got %s", activity.TransportMode)
	}

	_, err = NewPlaceActivity(dayID, 0, 0, 0, "Nishiki Market", -1, "", "")
	if err != ErrNegativeActivityCost {
		t.Errorf("Expected error %v, got %v", ErrNegativeActivityCost, err)
	}

	_, err = NewPlaceActivity(uuid.Nil, 0, 0, 0, "Nishiki Market", 0, "", "")
	if err != ErrEmptyActivityDayID {
		t.Errorf("Expected error %v, got %v", ErrEmptyActivityDayID, err)
	}
}

func TestNewTransportActivity(t *testing.T) {
	t.Parallel()

	dayID := uuid.New()

	activity, err := NewTransportActivity(dayID, 1, 8*time.Hour, 45*time.Minute, "subway")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if activity.Kind != ActivityKindTransport {
		t.Errorf("Expected kind %s, got %s", ActivityKindTransport, activity.Kind)
	}

	if activity.TransportMode != "subway" {
		t.Errorf("Expected transport mode subway, got %s", activity.TransportMode)
	}

	// Missing mode falls back to UNKNOWN
	activity, err = NewTransportActivity(dayID, 2, 0, 0, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if activity.TransportMode != TransportModeUnknown {
		t.Errorf("Expected transport mode %s, got %s", TransportModeUnknown, activity.TransportMode)
	}
}
