package preferencesRepo

import (
	"context"

	"routed/models"
)

// Repository is the storage contract for the per-user preference record,
// the append-only booking history, and the capped assistant-offer archive.
// Reads return (nil, nil) / (empty, nil) when no record exists.
type Repository interface {
	GetPreferences(ctx context.Context, userID string) (*models.CustomerPreferences, error)
	UpsertPreferences(ctx context.Context, prefs models.CustomerPreferences) error

	GetBookingHistory(ctx context.Context, userID string) ([]models.BookingHistory, error)
	AppendBooking(ctx context.Context, booking models.BookingHistory) error

	AppendAssistantResponse(ctx context.Context, userID string, resp models.ArchivedAssistantResponse) error
	GetAssistantResponses(ctx context.Context, userID string) ([]models.ArchivedAssistantResponse, error)
}

// AssistantArchiveCap bounds the per-user offer archive; older entries are
// evicted oldest-first.
const AssistantArchiveCap = 50
