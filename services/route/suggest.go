package route

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"time"

	"routed/models"
	"routed/utils"

	"go.uber.org/zap"
)

// Request defaults mirroring what the planner assumes when a field is left
// out.
const (
	DefaultSampleEveryM  = 1500
	DefaultSearchRadius  = 1200
	DefaultMaxCandidates = 20
)

// RequestError marks caller mistakes (bad stops, un-geocodable input) so
// handlers can answer 400 instead of 502.
type RequestError struct {
	Reason string
}

func (e *RequestError) Error() string {
	return e.Reason
}

// DefaultPlannerService implements PlannerService against the Maps backend.
type DefaultPlannerService struct {
	Maps   MapsService
	Now    func() time.Time
	logger *zap.Logger
}

func NewPlannerService(maps MapsService) *DefaultPlannerService {
	return &DefaultPlannerService{
		Maps:   maps,
		Now:    time.Now,
		logger: utils.GetLogger(),
	}
}

// SearchPlace proxies the places text search.
func (s *DefaultPlannerService) SearchPlace(ctx context.Context, query string) (*models.PlaceSearchResponse, error) {
	if query == "" {
		return nil, &RequestError{Reason: "query is required"}
	}
	return s.Maps.SearchPlace(ctx, query)
}

var latLngPattern = regexp.MustCompile(`^\s*([-+]?\d+(?:\.\d+)?)\s*,\s*([-+]?\d+(?:\.\d+)?)\s*$`)

// normalizedStop is a stop resolved to coordinates plus the string form the
// directions API receives.
type normalizedStop struct {
	loc  models.LatLng
	addr string
}

// normalizeStop accepts a coordinate pair, a "lat,lng" string in the name
// field, or a plain address to geocode.
func (s *DefaultPlannerService) normalizeStop(ctx context.Context, stop models.Stop) (normalizedStop, error) {
	if stop.Lat != 0 || stop.Lng != 0 {
		loc := models.LatLng{Lat: stop.Lat, Lng: stop.Lng}
		return normalizedStop{loc: loc, addr: formatLatLng(loc)}, nil
	}
	if m := latLngPattern.FindStringSubmatch(stop.Name); m != nil {
		lat, _ := strconv.ParseFloat(m[1], 64)
		lng, _ := strconv.ParseFloat(m[2], 64)
		loc := models.LatLng{Lat: lat, Lng: lng}
		return normalizedStop{loc: loc, addr: formatLatLng(loc)}, nil
	}
	if stop.Name == "" {
		return normalizedStop{}, &RequestError{Reason: "stop has neither coordinates nor an address"}
	}
	loc, err := s.Maps.Geocode(ctx, stop.Name)
	if err != nil {
		return normalizedStop{}, &RequestError{Reason: fmt.Sprintf("unable to geocode stop: %s", stop.Name)}
	}
	return normalizedStop{loc: loc, addr: formatLatLng(loc)}, nil
}

func formatLatLng(loc models.LatLng) string {
	return fmt.Sprintf("%f,%f", loc.Lat, loc.Lng)
}

// SuggestStops runs the full detour search: baseline directions through the
// stops, candidates gathered along the route polyline, each one re-routed to
// price the detour, filtered against the time constraint, sorted cheapest
// first.
func (s *DefaultPlannerService) SuggestStops(ctx context.Context, req models.SuggestStopsRequest) (*models.SuggestStopsResponse, error) {
	if len(req.Stops) < 2 {
		return nil, &RequestError{Reason: "provide at least 2 stops"}
	}
	sampleEveryM := req.SampleEveryM
	if sampleEveryM <= 0 {
		sampleEveryM = DefaultSampleEveryM
	}
	searchRadius := req.SearchRadius
	if searchRadius <= 0 {
		searchRadius = DefaultSearchRadius
	}
	maxCandidates := req.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}

	normalized := make([]normalizedStop, 0, len(req.Stops))
	for _, stop := range req.Stops {
		n, err := s.normalizeStop(ctx, stop)
		if err != nil {
			return nil, err
		}
		normalized = append(normalized, n)
	}

	addrs := make([]string, len(normalized))
	for i, n := range normalized {
		addrs[i] = n.addr
	}

	base, err := s.Maps.Directions(ctx, addrs[0], addrs[len(addrs)-1], addrs[1:len(addrs)-1])
	if err != nil {
		return nil, fmt.Errorf("directions failed for base route: %w", err)
	}
	if base.OverviewPolyline == "" {
		return nil, fmt.Errorf("no polyline in directions response")
	}

	candidates := s.collectCandidates(ctx, base, sampleEveryM, searchRadius, maxCandidates, req.DesiredType, req.Keyword)

	baseSeconds := base.TotalDurationSeconds()
	midpoints := legMidpoints(base)

	results := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		bestIdx := nearestLeg(c.Geometry.Location, midpoints)
		if bestIdx < 0 {
			continue
		}

		withCandidate, err := s.directionsWithInsertion(ctx, addrs, bestIdx, formatLatLng(c.Geometry.Location))
		if err != nil {
			s.logger.Warn("candidate directions failed",
				zap.String("candidate", c.Name), zap.Error(err))
			continue
		}
		totalWith := withCandidate.TotalDurationSeconds()
		added := totalWith - baseSeconds
		if req.TimeConstraintSeconds != nil && added > *req.TimeConstraintSeconds {
			continue
		}

		loc := c.Geometry.Location
		results = append(results, models.Candidate{
			PlaceID:                c.PlaceID,
			Name:                   c.Name,
			Vicinity:               c.Vicinity,
			Location:               &loc,
			Types:                  c.Types,
			Rating:                 c.Rating,
			UserRatingsTotal:       c.UserRatingsTotal,
			PriceLevel:             c.PriceLevel,
			InsertBetween:          [2]int{bestIdx, bestIdx + 1},
			TotalTravelTimeSeconds: totalWith,
			AddedTimeSeconds:       added,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].AddedTimeSeconds < results[j].AddedTimeSeconds
	})

	stops := make([]models.Stop, len(normalized))
	for i, n := range normalized {
		stops[i] = models.Stop{Lat: n.loc.Lat, Lng: n.loc.Lng, Name: req.Stops[i].Name}
	}

	return &models.SuggestStopsResponse{
		RouteSummary: models.RouteSummary{
			OriginalTotalTravelTimeSeconds: baseSeconds,
			OriginalTotalDistanceMeters:    base.TotalDistanceMeters(),
			Stops:                          stops,
		},
		Candidates:  results,
		GeneratedAt: s.Now().UTC().Format(time.RFC3339),
	}, nil
}

// collectCandidates samples the route polyline and gathers unique nearby
// places. One failed sample point never fails the whole request.
func (s *DefaultPlannerService) collectCandidates(ctx context.Context, base *DirectionsRoute, sampleEveryM, searchRadius, maxCandidates int, desiredType, keyword string) []NearbyPlace {
	path := DecodePolyline(base.OverviewPolyline)
	samples := SampleAlongPolyline(path, float64(sampleEveryM))

	seen := make(map[string]bool)
	var ordered []NearbyPlace
	for _, pt := range samples {
		places, err := s.Maps.PlacesNearby(ctx, pt, searchRadius, desiredType, keyword)
		if err != nil {
			s.logger.Warn("places lookup failed at sample point",
				zap.Float64("lat", pt.Lat), zap.Float64("lng", pt.Lng), zap.Error(err))
			continue
		}
		for _, p := range places {
			if p.PlaceID == "" || seen[p.PlaceID] {
				continue
			}
			seen[p.PlaceID] = true
			ordered = append(ordered, p)
		}
	}
	if len(ordered) > maxCandidates {
		ordered = ordered[:maxCandidates]
	}
	return ordered
}

// directionsWithInsertion re-routes with the candidate spliced in after stop
// insertIdx.
func (s *DefaultPlannerService) directionsWithInsertion(ctx context.Context, addrs []string, insertIdx int, candidateAddr string) (*DirectionsRoute, error) {
	if insertIdx < 0 || insertIdx >= len(addrs)-1 {
		return nil, fmt.Errorf("insertion index %d out of range", insertIdx)
	}
	newStops := make([]string, 0, len(addrs)+1)
	newStops = append(newStops, addrs[:insertIdx+1]...)
	newStops = append(newStops, candidateAddr)
	newStops = append(newStops, addrs[insertIdx+1:]...)
	return s.Maps.Directions(ctx, newStops[0], newStops[len(newStops)-1], newStops[1:len(newStops)-1])
}

func legMidpoints(route *DirectionsRoute) []models.LatLng {
	mids := make([]models.LatLng, len(route.Legs))
	for i, leg := range route.Legs {
		mids[i] = models.LatLng{
			Lat: (leg.StartLocation.Lat + leg.EndLocation.Lat) / 2,
			Lng: (leg.StartLocation.Lng + leg.EndLocation.Lng) / 2,
		}
	}
	return mids
}

func nearestLeg(loc models.LatLng, midpoints []models.LatLng) int {
	bestIdx := -1
	bestDist := math.Inf(1)
	for i, mid := range midpoints {
		if d := HaversineMeters(loc, mid); d < bestDist {
			bestDist = d
			bestIdx = i
		}
	}
	return bestIdx
}
