package models

// Itinerary is the strict JSON shape the generator must return. It feeds
// directly into a SuggestStopsRequest.
type Itinerary struct {
	Stops                 []string `json:"stops"`
	DesiredType           string   `json:"desired_type"`
	Keyword               string   `json:"keyword"`
	SampleEveryM          int      `json:"sample_every_m"`
	SearchRadius          int      `json:"search_radius"`
	MaxCandidates         int      `json:"max_candidates"`
	TimeConstraintSeconds int      `json:"time_constraint_seconds"`
}

// ItineraryRequest is the free-text planning input.
type ItineraryRequest struct {
	ActivityType string `json:"activity_type" binding:"required"`
	Location     string `json:"location" binding:"required"`
	StartTime    string `json:"start_time" binding:"required"` // RFC3339
	EndTime      string `json:"end_time" binding:"required"`   // RFC3339
}

// ItineraryContext is the per-user planning context kept between the
// initial generation and later per-stop edits.
type ItineraryContext struct {
	Itinerary    *Itinerary `json:"itinerary"`
	ActivityType string     `json:"activity_type"`
	Location     string     `json:"location"`
}
