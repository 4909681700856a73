package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"

	"routed/models"
	"routed/utils"

	"go.uber.org/zap"
)

// maxTimeConstraintSeconds caps the detour budget handed to the route
// planner at eight hours regardless of trip length.
const maxTimeConstraintSeconds = 28800

// ErrNoItinerary is returned for stop edits when the user has no stored
// itinerary to edit.
var ErrNoItinerary = fmt.Errorf("no itinerary in context")

// DefaultItineraryService implements ItineraryService on an LLM plus the
// Redis context store.
type DefaultItineraryService struct {
	LLM    LLMClient
	Store  ContextStore
	logger *zap.Logger
}

func NewItineraryService(llm LLMClient, store ContextStore) *DefaultItineraryService {
	return &DefaultItineraryService{
		LLM:    llm,
		Store:  store,
		logger: utils.GetLogger(),
	}
}

// Generate builds the planning prompt, parses the model's strict-JSON reply
// with best-effort repair, validates it, and stores it as the user's
// current itinerary.
func (s *DefaultItineraryService) Generate(ctx context.Context, userID string, req models.ItineraryRequest) (*models.Itinerary, error) {
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, &models.PayloadError{Field: "start_time", Reason: "is not RFC3339"}
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, &models.PayloadError{Field: "end_time", Reason: "is not RFC3339"}
	}
	if !end.After(start) {
		return nil, &models.PayloadError{Field: "end_time", Reason: "must be after start_time"}
	}

	durationSeconds := int(end.Sub(start).Seconds())
	durationHours := int(math.Round(end.Sub(start).Hours()))
	constraint := durationSeconds
	if constraint > maxTimeConstraintSeconds {
		constraint = maxTimeConstraintSeconds
	}

	prompt := buildItineraryPrompt(req, start, end, durationHours, constraint)
	raw, err := s.LLM.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("itinerary generation failed: %w", err)
	}

	it, err := parseItinerary(raw)
	if err != nil {
		s.logger.Warn("itinerary response rejected",
			zap.String("userID", userID), zap.Error(err))
		return nil, err
	}
	if it.TimeConstraintSeconds > maxTimeConstraintSeconds {
		it.TimeConstraintSeconds = maxTimeConstraintSeconds
	}

	itCtx := &models.ItineraryContext{
		Itinerary:    it,
		ActivityType: req.ActivityType,
		Location:     req.Location,
	}
	if err := s.Store.Set(ctx, userID, itCtx); err != nil {
		s.logger.Warn("failed to store itinerary context",
			zap.String("userID", userID), zap.Error(err))
	}
	return it, nil
}

// RegenerateStop replaces one stop of the stored itinerary with a fresh
// suggestion from the model.
func (s *DefaultItineraryService) RegenerateStop(ctx context.Context, userID string, index int) (*models.Itinerary, error) {
	itCtx, err := s.Store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if itCtx == nil || itCtx.Itinerary == nil {
		return nil, ErrNoItinerary
	}
	it := itCtx.Itinerary
	if index < 0 || index >= len(it.Stops) {
		return nil, &models.PayloadError{Field: "index", Reason: "is out of range"}
	}

	prompt := fmt.Sprintf(
		"Suggest one new stop in %s suitable for a %s.\nRespond with ONLY a valid JSON array of one string, no markdown.",
		itCtx.Location, itCtx.ActivityType)
	raw, err := s.LLM.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("stop regeneration failed: %w", err)
	}

	var stops []string
	if err := json.Unmarshal([]byte(StripMarkdownFences(raw)), &stops); err != nil {
		if err := json.Unmarshal([]byte(RepairJSON(raw)), &stops); err != nil {
			return nil, &models.PayloadError{Field: "stop", Reason: "does not decode"}
		}
	}
	if len(stops) == 0 || stops[0] == "" {
		return nil, &models.PayloadError{Field: "stop", Reason: "is empty"}
	}

	it.Stops[index] = stops[0]
	if err := s.Store.Set(ctx, userID, itCtx); err != nil {
		s.logger.Warn("failed to store itinerary context",
			zap.String("userID", userID), zap.Error(err))
	}
	return it, nil
}

// RemoveStop drops one stop from the stored itinerary.
func (s *DefaultItineraryService) RemoveStop(ctx context.Context, userID string, index int) (*models.Itinerary, error) {
	itCtx, err := s.Store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if itCtx == nil || itCtx.Itinerary == nil {
		return nil, ErrNoItinerary
	}
	it := itCtx.Itinerary
	if index < 0 || index >= len(it.Stops) {
		return nil, &models.PayloadError{Field: "index", Reason: "is out of range"}
	}

	it.Stops = append(it.Stops[:index], it.Stops[index+1:]...)
	if err := s.Store.Set(ctx, userID, itCtx); err != nil {
		s.logger.Warn("failed to store itinerary context",
			zap.String("userID", userID), zap.Error(err))
	}
	return it, nil
}

// Last returns the user's stored itinerary, or nil when none exists.
func (s *DefaultItineraryService) Last(ctx context.Context, userID string) (*models.Itinerary, error) {
	itCtx, err := s.Store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if itCtx == nil {
		return nil, nil
	}
	return itCtx.Itinerary, nil
}

var countrySuffixPattern = regexp.MustCompile(`(?i), United States`)
var spacesPattern = regexp.MustCompile(`\s+`)

// MapsURL renders the itinerary as a shareable directions link. Fewer than
// two stops yields an empty URL.
func (s *DefaultItineraryService) MapsURL(it *models.Itinerary) string {
	if it == nil || len(it.Stops) < 2 {
		return ""
	}
	parts := make([]string, len(it.Stops))
	for i, stop := range it.Stops {
		cleaned := countrySuffixPattern.ReplaceAllString(stop, "")
		cleaned = strings.TrimSpace(spacesPattern.ReplaceAllString(cleaned, " "))
		parts[i] = url.PathEscape(cleaned)
	}
	return "https://www.google.com/maps/dir/" + strings.Join(parts, "/")
}

func buildItineraryPrompt(req models.ItineraryRequest, start, end time.Time, durationHours, constraintSeconds int) string {
	return fmt.Sprintf(`You are a travel itinerary planner. Create a detailed itinerary for a %s in %s from %s to %s.

Duration: %d hours

IMPORTANT: Respond with ONLY a valid JSON object in this exact format with no additional text or markdown:

{
  "stops": ["specific address or landmark 1", "specific address or landmark 2", "specific address or landmark 3"],
  "desired_type": "appropriate_google_places_type",
  "keyword": "%s",
  "sample_every_m": 1500,
  "search_radius": 1200,
  "max_candidates": 20,
  "time_constraint_seconds": %d
}

Requirements:
- Include 3-6 real, specific stops in %s suitable for a %s
- Use actual addresses, landmark names, or well-known locations
- Choose appropriate desired_type from: restaurant, tourist_attraction, museum, park, shopping_mall, amusement_park, zoo, etc.
- Order stops logically for an efficient route
- Consider the %d-hour timeframe

Respond with only the JSON object, no other text.`,
		req.ActivityType, req.Location, start.Format(time.RFC3339), end.Format(time.RFC3339),
		durationHours, req.ActivityType, constraintSeconds,
		req.Location, req.ActivityType, durationHours)
}

// parseItinerary decodes the model output, falling back to repaired JSON,
// and enforces the structural contract.
func parseItinerary(raw string) (*models.Itinerary, error) {
	cleaned := StripMarkdownFences(raw)

	var it models.Itinerary
	if err := json.Unmarshal([]byte(cleaned), &it); err != nil {
		if err := json.Unmarshal([]byte(RepairJSON(raw)), &it); err != nil {
			return nil, &models.PayloadError{Field: "itinerary", Reason: "does not decode"}
		}
	}

	if len(it.Stops) < 2 {
		return nil, &models.PayloadError{Field: "stops", Reason: "must contain at least 2 entries"}
	}
	if it.DesiredType == "" {
		return nil, &models.PayloadError{Field: "desired_type", Reason: "is required"}
	}
	if it.Keyword == "" {
		return nil, &models.PayloadError{Field: "keyword", Reason: "is required"}
	}
	return &it, nil
}
