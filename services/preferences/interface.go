package preferences

import (
	"context"

	"routed/models"
)

// PreferenceService owns the durable per-user dining preferences, the
// append-only booking history, and the capped archive of voice-assistant
// offers. Reads never fail on malformed stored data; they degrade to
// absent/empty so the UI stays available.
type PreferenceService interface {
	// GetPreferences returns the user's record, or nil when none exists.
	GetPreferences(ctx context.Context, userID string) *models.CustomerPreferences
	// CreateDefaultPreferences builds, persists, and returns the default record.
	CreateDefaultPreferences(ctx context.Context, userID string) (*models.CustomerPreferences, error)
	// GetOrCreatePreferences returns the existing record, creating the
	// default one on first access.
	GetOrCreatePreferences(ctx context.Context, userID string) (*models.CustomerPreferences, error)
	// SavePreferences upserts by user_id, stamping updated_at.
	SavePreferences(ctx context.Context, prefs *models.CustomerPreferences) error
	// UpdatePreferences shallow-merges the patch over the existing record.
	// Returns nil without writing when no record exists.
	UpdatePreferences(ctx context.Context, userID string, patch models.PreferencesPatch) (*models.CustomerPreferences, error)

	GetBookingHistory(ctx context.Context, userID string) []models.BookingHistory
	AddBookingToHistory(ctx context.Context, booking models.BookingHistory) error

	// SaveAssistantResponse wraps the offer with an id and capture timestamp
	// and appends it to the per-user archive, keeping only the newest 50.
	SaveAssistantResponse(ctx context.Context, userID string, resp models.OfferOptionsResponse) error
	GetAssistantResponses(ctx context.Context, userID string) []models.ArchivedAssistantResponse

	// PreferencesSummary aggregates preferences, recent bookings, and recent
	// assistant interactions.
	PreferencesSummary(ctx context.Context, userID string) models.PreferencesSummary
}
