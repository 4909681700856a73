package resolvers

import (
	"fmt"
	"math"
	"strings"

	"routed/models"
)

// CandidateView is the display shape for one suggested stop.
type CandidateView struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Vicinity         string   `json:"vicinity"`
	Types            []string `json:"types"`
	TypeLabels       []string `json:"type_labels"`
	Rating           string   `json:"rating,omitempty"`
	Stars            string   `json:"stars,omitempty"`
	Cost             string   `json:"cost,omitempty"`
	AddedTimeMinutes int      `json:"added_time_minutes"`
	AddedTimeLabel   string   `json:"added_time_label"`
	TotalTimeMinutes int      `json:"total_time_minutes"`
}

// RouteSummaryView is the display shape for the baseline route.
type RouteSummaryView struct {
	TotalTimeMinutes int     `json:"total_time_minutes"`
	TotalDistanceKm  float64 `json:"total_distance_km"`
	StopCount        int     `json:"stop_count"`
}

// SuggestStopsView is the rendered suggestion result. Candidates here always
// match the planner's candidates one to one.
type SuggestStopsView struct {
	RouteSummary RouteSummaryView `json:"route_summary"`
	Candidates   []CandidateView  `json:"candidates"`
	GeneratedAt  string           `json:"generated_at"`
}

// MinutesFromSeconds converts for display by rounding, not truncation, so
// 90 seconds reads as 2 minutes.
func MinutesFromSeconds(seconds int) int {
	return int(math.Round(float64(seconds) / 60.0))
}

// FormatRating renders "4.5/5 (123 reviews)". Zero ratings render empty.
func FormatRating(rating float64, reviews int) string {
	if rating <= 0 {
		return ""
	}
	if reviews > 0 {
		return fmt.Sprintf("%.1f/5 (%d reviews)", rating, reviews)
	}
	return fmt.Sprintf("%.1f/5", rating)
}

// Stars renders the rating as filled and empty stars out of five.
func Stars(rating float64) string {
	if rating <= 0 {
		return ""
	}
	filled := int(math.Round(rating))
	if filled > 5 {
		filled = 5
	}
	return strings.Repeat("★", filled) + strings.Repeat("☆", 5-filled)
}

// CostDollars renders a 1-4 price level as dollar signs.
func CostDollars(level int) string {
	if level < 1 {
		return ""
	}
	if level > 4 {
		level = 4
	}
	return strings.Repeat("$", level)
}

// PrettifyType turns a places type like "tourist_attraction" into a label.
func PrettifyType(placeType string) string {
	return strings.ReplaceAll(placeType, "_", " ")
}

// FormatAddedTime labels the detour cost, e.g. "+12 min".
func FormatAddedTime(seconds int) string {
	return fmt.Sprintf("+%d min", MinutesFromSeconds(seconds))
}

// BuildSuggestStopsView renders the planner's response for clients.
func BuildSuggestStopsView(resp *models.SuggestStopsResponse) SuggestStopsView {
	view := SuggestStopsView{
		RouteSummary: RouteSummaryView{
			TotalTimeMinutes: MinutesFromSeconds(resp.RouteSummary.OriginalTotalTravelTimeSeconds),
			TotalDistanceKm:  math.Round(float64(resp.RouteSummary.OriginalTotalDistanceMeters)/100) / 10,
			StopCount:        len(resp.RouteSummary.Stops),
		},
		Candidates:  make([]CandidateView, 0, len(resp.Candidates)),
		GeneratedAt: resp.GeneratedAt,
	}

	for _, c := range resp.Candidates {
		labels := make([]string, len(c.Types))
		for i, t := range c.Types {
			labels[i] = PrettifyType(t)
		}
		view.Candidates = append(view.Candidates, CandidateView{
			PlaceID:          c.PlaceID,
			Name:             c.Name,
			Vicinity:         c.Vicinity,
			Types:            c.Types,
			TypeLabels:       labels,
			Rating:           FormatRating(c.Rating, c.UserRatingsTotal),
			Stars:            Stars(c.Rating),
			Cost:             CostDollars(c.PriceLevel),
			AddedTimeMinutes: MinutesFromSeconds(c.AddedTimeSeconds),
			AddedTimeLabel:   FormatAddedTime(c.AddedTimeSeconds),
			TotalTimeMinutes: MinutesFromSeconds(c.TotalTravelTimeSeconds),
		})
	}
	return view
}
