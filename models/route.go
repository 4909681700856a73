package models

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Stop is a geocoded point in a user-defined route.
type Stop struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name,omitempty"`
}

// SuggestStopsRequest asks for points of interest along the route through
// the given stops.
type SuggestStopsRequest struct {
	Stops                 []Stop `json:"stops" binding:"required"`
	DesiredType           string `json:"desired_type,omitempty"`
	Keyword               string `json:"keyword,omitempty"`
	SampleEveryM          int    `json:"sample_every_m,omitempty"`
	SearchRadius          int    `json:"search_radius,omitempty"`
	MaxCandidates         int    `json:"max_candidates,omitempty"`
	TimeConstraintSeconds *int   `json:"time_constraint_seconds,omitempty"`
}

// Candidate is a suggested point of interest with its detour cost.
type Candidate struct {
	PlaceID                string   `json:"place_id"`
	Name                   string   `json:"name"`
	Vicinity               string   `json:"vicinity"`
	Location               *LatLng  `json:"location"`
	Types                  []string `json:"types"`
	Rating                 float64  `json:"rating,omitempty"`
	UserRatingsTotal       int      `json:"user_ratings_total,omitempty"`
	PriceLevel             int      `json:"price_level,omitempty"`
	InsertBetween          [2]int   `json:"insert_between"`
	TotalTravelTimeSeconds int      `json:"total_travel_time_seconds"`
	AddedTimeSeconds       int      `json:"added_time_seconds"`
}

// RouteSummary describes the baseline route without any candidate inserted.
type RouteSummary struct {
	OriginalTotalTravelTimeSeconds int    `json:"original_total_travel_time_seconds"`
	OriginalTotalDistanceMeters    int    `json:"original_total_distance_meters"`
	Stops                          []Stop `json:"stops"`
}

// SuggestStopsResponse is the full suggestion result.
type SuggestStopsResponse struct {
	RouteSummary RouteSummary `json:"route_summary"`
	Candidates   []Candidate  `json:"candidates"`
	GeneratedAt  string       `json:"generated_at"`
}

// PlaceSearchResult is one geocoding/search hit.
type PlaceSearchResult struct {
	Name     string `json:"name"`
	Geometry struct {
		Location LatLng `json:"location"`
	} `json:"geometry"`
}

// PlaceSearchResponse mirrors the places search contract the client renders.
type PlaceSearchResponse struct {
	Status  string              `json:"status"`
	Results []PlaceSearchResult `json:"results"`
}
