package itinerary

import (
	"context"

	"routed/models"
)

// LLMClient abstracts the generative model behind the planner.
type LLMClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ContextStore keeps the latest planning context per user.
// RedisContextStore is the production implementation.
type ContextStore interface {
	Get(ctx context.Context, userID string) (*models.ItineraryContext, error)
	Set(ctx context.Context, userID string, itCtx *models.ItineraryContext) error
	Clear(ctx context.Context, userID string) error
}

// ItineraryService turns a free-text planning request into a structured
// itinerary and supports editing individual stops afterwards.
type ItineraryService interface {
	Generate(ctx context.Context, userID string, req models.ItineraryRequest) (*models.Itinerary, error)
	RegenerateStop(ctx context.Context, userID string, index int) (*models.Itinerary, error)
	RemoveStop(ctx context.Context, userID string, index int) (*models.Itinerary, error)
	Last(ctx context.Context, userID string) (*models.Itinerary, error)
	MapsURL(it *models.Itinerary) string
}
