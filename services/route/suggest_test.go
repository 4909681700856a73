package route

import (
	"context"
	"fmt"
	"testing"
	"time"

	"routed/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMaps serves a canned route and candidate set. Directions calls that
// carry a waypoint are detour lookups for that candidate.
type fakeMaps struct {
	geocodes        map[string]models.LatLng
	baseRoute       *DirectionsRoute
	nearby          []NearbyPlace
	insertDurations map[string]int

	nearbyCalls   int
	detourLookups []string
}

func (m *fakeMaps) Geocode(ctx context.Context, address string) (models.LatLng, error) {
	loc, ok := m.geocodes[address]
	if !ok {
		return models.LatLng{}, fmt.Errorf("geocoding failed with status ZERO_RESULTS")
	}
	return loc, nil
}

func (m *fakeMaps) SearchPlace(ctx context.Context, query string) (*models.PlaceSearchResponse, error) {
	return &models.PlaceSearchResponse{Status: "OK"}, nil
}

func (m *fakeMaps) Directions(ctx context.Context, origin, destination string, waypoints []string) (*DirectionsRoute, error) {
	if len(waypoints) == 0 {
		return m.baseRoute, nil
	}
	// Detour lookup: one extra waypoint carrying the candidate address.
	addr := waypoints[0]
	m.detourLookups = append(m.detourLookups, addr)
	total, ok := m.insertDurations[addr]
	if !ok {
		return nil, fmt.Errorf("directions failed with status NOT_FOUND")
	}
	return &DirectionsRoute{
		Legs: []DirectionsLeg{{DurationSeconds: total}},
	}, nil
}

func (m *fakeMaps) PlacesNearby(ctx context.Context, loc models.LatLng, radius int, placeType, keyword string) ([]NearbyPlace, error) {
	m.nearbyCalls++
	return m.nearby, nil
}

func candidate(id, name string, lat, lng float64) NearbyPlace {
	p := NearbyPlace{
		PlaceID:          id,
		Name:             name,
		Vicinity:         "somewhere",
		Types:            []string{"restaurant"},
		Rating:           4.2,
		UserRatingsTotal: 100,
	}
	p.Geometry.Location = models.LatLng{Lat: lat, Lng: lng}
	return p
}

func newSuggestFixture() (*DefaultPlannerService, *fakeMaps) {
	// Single-leg route from (0,0) to (0,1); "??" decodes to the lone point
	// (0,0) so exactly one sample point is searched.
	base := &DirectionsRoute{
		OverviewPolyline: "??",
		Legs: []DirectionsLeg{{
			DurationSeconds: 600,
			DistanceMeters:  10000,
			StartLocation:   models.LatLng{Lat: 0, Lng: 0},
			EndLocation:     models.LatLng{Lat: 0, Lng: 1},
		}},
	}

	maps := &fakeMaps{
		geocodes:  map[string]models.LatLng{},
		baseRoute: base,
		nearby: []NearbyPlace{
			candidate("p1", "Slow Detour", 0, 0.4),
			candidate("p2", "Quick Stop", 0, 0.5),
			candidate("p1", "Slow Detour Duplicate", 0, 0.4),
			candidate("p3", "Way Out There", 0.5, 0.5),
		},
		insertDurations: map[string]int{
			formatLatLng(models.LatLng{Lat: 0, Lng: 0.4}):   900,
			formatLatLng(models.LatLng{Lat: 0, Lng: 0.5}):   720,
			formatLatLng(models.LatLng{Lat: 0.5, Lng: 0.5}): 1800,
		},
	}

	svc := NewPlannerService(maps)
	svc.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, maps
}

func twoStops() []models.Stop {
	return []models.Stop{
		{Lat: 0.000001, Lng: 0.000001},
		{Lat: 0.000001, Lng: 1},
	}
}

func TestSuggestStopsRequiresTwoStops(t *testing.T) {
	svc, _ := newSuggestFixture()

	_, err := svc.SuggestStops(context.Background(), models.SuggestStopsRequest{
		Stops: []models.Stop{{Lat: 1, Lng: 1}},
	})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
}

func TestSuggestStopsPipeline(t *testing.T) {
	svc, maps := newSuggestFixture()

	resp, err := svc.SuggestStops(context.Background(), models.SuggestStopsRequest{
		Stops: twoStops(),
	})
	require.NoError(t, err)

	assert.Equal(t, 600, resp.RouteSummary.OriginalTotalTravelTimeSeconds)
	assert.Equal(t, 10000, resp.RouteSummary.OriginalTotalDistanceMeters)
	assert.Equal(t, "2025-06-01T12:00:00Z", resp.GeneratedAt)

	// Duplicate place_id is collapsed; all three unique candidates priced.
	require.Len(t, resp.Candidates, 3)
	assert.Len(t, maps.detourLookups, 3)

	// Sorted ascending by added time.
	assert.Equal(t, "Quick Stop", resp.Candidates[0].Name)
	assert.Equal(t, 120, resp.Candidates[0].AddedTimeSeconds)
	assert.Equal(t, 720, resp.Candidates[0].TotalTravelTimeSeconds)
	assert.Equal(t, "Slow Detour", resp.Candidates[1].Name)
	assert.Equal(t, 300, resp.Candidates[1].AddedTimeSeconds)
	assert.Equal(t, "Way Out There", resp.Candidates[2].Name)
	assert.Equal(t, 1200, resp.Candidates[2].AddedTimeSeconds)

	// Single-leg route inserts between the only pair of stops.
	assert.Equal(t, [2]int{0, 1}, resp.Candidates[0].InsertBetween)
}

func TestSuggestStopsHonorsTimeConstraint(t *testing.T) {
	svc, _ := newSuggestFixture()

	constraint := 600
	resp, err := svc.SuggestStops(context.Background(), models.SuggestStopsRequest{
		Stops:                 twoStops(),
		TimeConstraintSeconds: &constraint,
	})
	require.NoError(t, err)

	// The 1200-second detour is filtered out.
	require.Len(t, resp.Candidates, 2)
	for _, c := range resp.Candidates {
		assert.LessOrEqual(t, c.AddedTimeSeconds, constraint)
	}
}

func TestSuggestStopsGeocodesAddressStops(t *testing.T) {
	svc, maps := newSuggestFixture()
	maps.geocodes["Ferry Building, San Francisco"] = models.LatLng{Lat: 0.000001, Lng: 0.000001}

	resp, err := svc.SuggestStops(context.Background(), models.SuggestStopsRequest{
		Stops: []models.Stop{
			{Name: "Ferry Building, San Francisco"},
			{Lat: 0.000001, Lng: 1},
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.000001, resp.RouteSummary.Stops[0].Lat, 1e-9)
}

func TestSuggestStopsParsesLatLngStrings(t *testing.T) {
	svc, _ := newSuggestFixture()

	resp, err := svc.SuggestStops(context.Background(), models.SuggestStopsRequest{
		Stops: []models.Stop{
			{Name: "0.000001, 0.000001"},
			{Lat: 0.000001, Lng: 1},
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.000001, resp.RouteSummary.Stops[0].Lng, 1e-9)
}

func TestSuggestStopsRejectsUngeocodableStop(t *testing.T) {
	svc, maps := newSuggestFixture()

	_, err := svc.SuggestStops(context.Background(), models.SuggestStopsRequest{
		Stops: []models.Stop{
			{Name: "nowhere at all"},
			{Lat: 0.000001, Lng: 1},
		},
	})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, reqErr.Reason, "unable to geocode")
	assert.Zero(t, maps.nearbyCalls)
}
