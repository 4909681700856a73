package resolvers

import (
	"testing"

	"routed/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutesFromSeconds(t *testing.T) {
	assert.Equal(t, 0, MinutesFromSeconds(0))
	assert.Equal(t, 1, MinutesFromSeconds(60))
	// Rounds rather than truncates.
	assert.Equal(t, 2, MinutesFromSeconds(90))
	assert.Equal(t, 1, MinutesFromSeconds(89))
	assert.Equal(t, 10, MinutesFromSeconds(600))
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "4.5/5 (123 reviews)", FormatRating(4.5, 123))
	assert.Equal(t, "4.0/5", FormatRating(4.0, 0))
	assert.Equal(t, "", FormatRating(0, 50))
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★★★★☆", Stars(4.2))
	assert.Equal(t, "★★★★★", Stars(4.6))
	assert.Equal(t, "★★★★★", Stars(7))
	assert.Equal(t, "★☆☆☆☆", Stars(1))
	assert.Equal(t, "", Stars(0))
}

func TestCostDollars(t *testing.T) {
	assert.Equal(t, "", CostDollars(0))
	assert.Equal(t, "$", CostDollars(1))
	assert.Equal(t, "$$$$", CostDollars(4))
	assert.Equal(t, "$$$$", CostDollars(9))
}

func TestPrettifyType(t *testing.T) {
	assert.Equal(t, "tourist attraction", PrettifyType("tourist_attraction"))
	assert.Equal(t, "park", PrettifyType("park"))
}

func TestFormatAddedTime(t *testing.T) {
	assert.Equal(t, "+2 min", FormatAddedTime(90))
	assert.Equal(t, "+0 min", FormatAddedTime(10))
}

func TestBuildSuggestStopsView(t *testing.T) {
	resp := &models.SuggestStopsResponse{
		RouteSummary: models.RouteSummary{
			OriginalTotalTravelTimeSeconds: 1830,
			OriginalTotalDistanceMeters:    12345,
			Stops: []models.Stop{
				{Lat: 0, Lng: 0},
				{Lat: 0, Lng: 1},
			},
		},
		Candidates: []models.Candidate{
			{
				PlaceID:                "p1",
				Name:                   "Quick Stop",
				Vicinity:               "12 Main St",
				Types:                  []string{"tourist_attraction", "park"},
				Rating:                 4.2,
				UserRatingsTotal:       87,
				PriceLevel:             2,
				AddedTimeSeconds:       150,
				TotalTravelTimeSeconds: 1980,
			},
		},
		GeneratedAt: "2025-06-01T12:00:00Z",
	}

	view := BuildSuggestStopsView(resp)

	assert.Equal(t, 31, view.RouteSummary.TotalTimeMinutes)
	assert.Equal(t, 12.3, view.RouteSummary.TotalDistanceKm)
	assert.Equal(t, 2, view.RouteSummary.StopCount)
	assert.Equal(t, "2025-06-01T12:00:00Z", view.GeneratedAt)

	// Candidates render one to one.
	require.Len(t, view.Candidates, 1)
	c := view.Candidates[0]
	assert.Equal(t, []string{"tourist attraction", "park"}, c.TypeLabels)
	assert.Equal(t, "4.2/5 (87 reviews)", c.Rating)
	assert.Equal(t, "★★★★☆", c.Stars)
	assert.Equal(t, "$$", c.Cost)
	assert.Equal(t, 3, c.AddedTimeMinutes)
	assert.Equal(t, "+3 min", c.AddedTimeLabel)
	assert.Equal(t, 33, c.TotalTimeMinutes)
}

func TestBuildSuggestStopsViewEmpty(t *testing.T) {
	view := BuildSuggestStopsView(&models.SuggestStopsResponse{})
	assert.NotNil(t, view.Candidates)
	assert.Empty(t, view.Candidates)
}
