package route

import (
	"context"

	"routed/models"
)

// MapsService is the slice of the Google Maps surface the planner consumes.
// MapsClient is the production implementation.
type MapsService interface {
	Geocode(ctx context.Context, address string) (models.LatLng, error)
	SearchPlace(ctx context.Context, query string) (*models.PlaceSearchResponse, error)
	Directions(ctx context.Context, origin, destination string, waypoints []string) (*DirectionsRoute, error)
	PlacesNearby(ctx context.Context, loc models.LatLng, radius int, placeType, keyword string) ([]NearbyPlace, error)
}

// PlannerService finds points of interest along a multi-stop route and
// prices each one by the travel time it adds.
type PlannerService interface {
	SearchPlace(ctx context.Context, query string) (*models.PlaceSearchResponse, error)
	SuggestStops(ctx context.Context, req models.SuggestStopsRequest) (*models.SuggestStopsResponse, error)
}
