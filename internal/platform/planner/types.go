package planner

// ItineraryRequest is the payload sent to the planning service. Dates use
// yyyy-MM-dd and times of day use HH:mm, matching the service contract.
type ItineraryRequest struct {
	TripID        string   `json:"tripId"`
	ArrivalDate   string   `json:"arrivalDate"`
	ArrivalTime   string   `json:"arrivalTime"`
	DepartureDate string   `json:"departureDate"`
	DepartureTime string   `json:"departureTime"`
	TravelCity    string   `json:"travelCity"`
	TotalBudget   int64    `json:"totalBudget"`
	TravelThemes  []string `json:"travelTheme"`
	WantedPlaces  []string `json:"wantedPlace"`
}

// ItineraryResponse is the top-level response from the planning service.
// A nil or empty Itineraries slice means the service produced no plan.
type ItineraryResponse struct {
	Message     string         `json:"message"`
	Itineraries []ItineraryDay `json:"itineraries"`
}

// ItineraryDay is one day of the generated plan. Date may be absent when
// the service cannot pin the day to a calendar date.
type ItineraryDay struct {
	Day        int        `json:"day"`
	Date       *string    `json:"date,omitempty"`
	Activities []Activity `json:"activities"`
}

// Activity is a single entry within a day. Type distinguishes places from
// transport legs; most other fields are optional and the caller is expected
// to substitute defaults for absent values.
type Activity struct {
	Type         string  `json:"type"`
	PlaceID      *int64  `json:"placeId,omitempty"`
	PlaceName    string  `json:"placeName"`
	StartTime    *string `json:"startTime,omitempty"`
	Cost         *int64  `json:"cost,omitempty"`
	Duration     *int64  `json:"duration,omitempty"`
	Memo         string  `json:"memo"`
	Transport    string  `json:"transport"`
	EventOrder   *int    `json:"eventOrder,omitempty"`
	GoogleMapURL string  `json:"googleMapUrl"`
}
