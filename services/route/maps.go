package route

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"routed/models"
)

// MapsClient wraps the Google Maps Platform web services used by the route
// planner: geocoding, text search, directions, and nearby search.
type MapsClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

const defaultMapsBaseURL = "https://maps.googleapis.com/maps/api"

func NewMapsClient(apiKey string) *MapsClient {
	return &MapsClient{
		APIKey:     apiKey,
		BaseURL:    defaultMapsBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *MapsClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if c.APIKey == "" {
		return fmt.Errorf("maps API key is not configured")
	}
	params.Set("key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("maps request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("maps request returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode maps response: %w", err)
	}
	return nil
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location models.LatLng `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves an address to coordinates. A zero-result status is an
// error; callers treat the stop as un-geocodable.
func (c *MapsClient) Geocode(ctx context.Context, address string) (models.LatLng, error) {
	params := url.Values{}
	params.Set("address", address)

	var data geocodeResponse
	if err := c.get(ctx, "/geocode/json", params, &data); err != nil {
		return models.LatLng{}, err
	}
	if data.Status != "OK" || len(data.Results) == 0 {
		return models.LatLng{}, fmt.Errorf("geocoding failed with status %s", data.Status)
	}
	return data.Results[0].Geometry.Location, nil
}

// SearchPlace runs a Places text search and returns the contract the client
// renders: status plus name/location pairs.
func (c *MapsClient) SearchPlace(ctx context.Context, query string) (*models.PlaceSearchResponse, error) {
	params := url.Values{}
	params.Set("query", query)

	var data models.PlaceSearchResponse
	if err := c.get(ctx, "/place/textsearch/json", params, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// DirectionsRoute is the subset of a directions response the planner needs.
type DirectionsRoute struct {
	OverviewPolyline string
	Legs             []DirectionsLeg
}

// DirectionsLeg carries one leg's duration, distance, and endpoints.
type DirectionsLeg struct {
	DurationSeconds int
	DistanceMeters  int
	StartLocation   models.LatLng
	EndLocation     models.LatLng
}

// TotalDurationSeconds sums leg durations.
func (r *DirectionsRoute) TotalDurationSeconds() int {
	total := 0
	for _, leg := range r.Legs {
		total += leg.DurationSeconds
	}
	return total
}

// TotalDistanceMeters sums leg distances.
func (r *DirectionsRoute) TotalDistanceMeters() int {
	total := 0
	for _, leg := range r.Legs {
		total += leg.DistanceMeters
	}
	return total
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
			StartLocation models.LatLng `json:"start_location"`
			EndLocation   models.LatLng `json:"end_location"`
		} `json:"legs"`
	} `json:"routes"`
}

// Directions fetches the route through origin, waypoints, destination.
func (c *MapsClient) Directions(ctx context.Context, origin, destination string, waypoints []string) (*DirectionsRoute, error) {
	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", destination)
	if len(waypoints) > 0 {
		params.Set("waypoints", strings.Join(waypoints, "|"))
	}

	var data directionsResponse
	if err := c.get(ctx, "/directions/json", params, &data); err != nil {
		return nil, err
	}
	if data.Status != "OK" || len(data.Routes) == 0 {
		return nil, fmt.Errorf("directions failed with status %s", data.Status)
	}

	raw := data.Routes[0]
	route := &DirectionsRoute{OverviewPolyline: raw.OverviewPolyline.Points}
	for _, leg := range raw.Legs {
		route.Legs = append(route.Legs, DirectionsLeg{
			DurationSeconds: leg.Duration.Value,
			DistanceMeters:  leg.Distance.Value,
			StartLocation:   leg.StartLocation,
			EndLocation:     leg.EndLocation,
		})
	}
	return route, nil
}

// NearbyPlace is one Places Nearby Search hit.
type NearbyPlace struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Vicinity         string   `json:"vicinity"`
	Types            []string `json:"types"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	PriceLevel       int      `json:"price_level"`
	Geometry         struct {
		Location models.LatLng `json:"location"`
	} `json:"geometry"`
}

type nearbyResponse struct {
	Status  string        `json:"status"`
	Results []NearbyPlace `json:"results"`
}

// PlacesNearby searches around a point, optionally filtered by place type
// and keyword.
func (c *MapsClient) PlacesNearby(ctx context.Context, loc models.LatLng, radius int, placeType, keyword string) ([]NearbyPlace, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", loc.Lat, loc.Lng))
	params.Set("radius", strconv.Itoa(radius))
	if placeType != "" {
		params.Set("type", placeType)
	}
	if keyword != "" {
		params.Set("keyword", keyword)
	}

	var data nearbyResponse
	if err := c.get(ctx, "/place/nearbysearch/json", params, &data); err != nil {
		return nil, err
	}
	return data.Results, nil
}
