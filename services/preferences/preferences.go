package preferences

import (
	"context"
	"fmt"
	"time"

	preferencesRepo "routed/database/repository/preferences"
	"routed/models"
	"routed/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultPreferenceService is the production implementation.
type DefaultPreferenceService struct {
	Repo preferencesRepo.Repository
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultPreferenceService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultPreferenceService) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// defaultWeeklyAvailability returns the out-of-the-box schedule: weekday
// evenings 18:00-21:00, Friday until 22:00, Saturday 17:00-22:00, Sunday
// 17:00-21:00, all days available.
func defaultWeeklyAvailability() []models.DayAvailability {
	window := func(start, end string) []models.TimePreference {
		return []models.TimePreference{{StartTime: start, EndTime: end}}
	}
	return []models.DayAvailability{
		{Day: "monday", Available: true, PreferredTimes: window("18:00", "21:00")},
		{Day: "tuesday", Available: true, PreferredTimes: window("18:00", "21:00")},
		{Day: "wednesday", Available: true, PreferredTimes: window("18:00", "21:00")},
		{Day: "thursday", Available: true, PreferredTimes: window("18:00", "21:00")},
		{Day: "friday", Available: true, PreferredTimes: window("18:00", "22:00")},
		{Day: "saturday", Available: true, PreferredTimes: window("17:00", "22:00")},
		{Day: "sunday", Available: true, PreferredTimes: window("17:00", "21:00")},
	}
}

// GetPreferences returns the stored record, degrading to nil on any read or
// decode failure.
func (s *DefaultPreferenceService) GetPreferences(ctx context.Context, userID string) *models.CustomerPreferences {
	prefs, err := s.Repo.GetPreferences(ctx, userID)
	if err != nil {
		utils.GetLogger().Warn("preferences read degraded to absent",
			zap.String("userID", userID), zap.Error(err))
		return nil
	}
	return prefs
}

// CreateDefaultPreferences builds the default record, persists it
// immediately, and returns it.
func (s *DefaultPreferenceService) CreateDefaultPreferences(ctx context.Context, userID string) (*models.CustomerPreferences, error) {
	now := s.timestamp()
	prefs := &models.CustomerPreferences{
		ID:                         fmt.Sprintf("pref_%s", uuid.New().String()),
		UserID:                     userID,
		PreferredPartySize:         2,
		PreferredCuisineTypes:      []string{},
		DietaryRestrictions:        []string{},
		WeeklyAvailability:         defaultWeeklyAvailability(),
		PreferredBookingLeadDays:   3,
		PreferredCities:            []string{},
		MaxTravelDistanceMiles:     25,
		PreferredProviders:         []string{"opentable"},
		AcceptsDeposits:            true,
		MinCancellationWindowHours: 2,
		BookingConfirmations:       true,
		ReminderNotifications:      true,
		ReminderHoursBefore:        2,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}
	if err := s.SavePreferences(ctx, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// GetOrCreatePreferences implements the created-on-first-access lifecycle.
func (s *DefaultPreferenceService) GetOrCreatePreferences(ctx context.Context, userID string) (*models.CustomerPreferences, error) {
	if prefs := s.GetPreferences(ctx, userID); prefs != nil {
		return prefs, nil
	}
	return s.CreateDefaultPreferences(ctx, userID)
}

// SavePreferences upserts the record, stamping updated_at.
func (s *DefaultPreferenceService) SavePreferences(ctx context.Context, prefs *models.CustomerPreferences) error {
	prefs.UpdatedAt = s.timestamp()
	return s.Repo.UpsertPreferences(ctx, *prefs)
}

// UpdatePreferences shallow-merges the patch over the existing record and
// saves. A missing record is a no-op returning nil.
func (s *DefaultPreferenceService) UpdatePreferences(ctx context.Context, userID string, patch models.PreferencesPatch) (*models.CustomerPreferences, error) {
	existing := s.GetPreferences(ctx, userID)
	if existing == nil {
		return nil, nil
	}
	applyPatch(existing, patch)
	if err := s.SavePreferences(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func applyPatch(prefs *models.CustomerPreferences, patch models.PreferencesPatch) {
	if patch.PreferredPartySize != nil {
		prefs.PreferredPartySize = *patch.PreferredPartySize
	}
	if patch.PreferredCuisineTypes != nil {
		prefs.PreferredCuisineTypes = *patch.PreferredCuisineTypes
	}
	if patch.DietaryRestrictions != nil {
		prefs.DietaryRestrictions = *patch.DietaryRestrictions
	}
	if patch.WeeklyAvailability != nil {
		prefs.WeeklyAvailability = *patch.WeeklyAvailability
	}
	if patch.PreferredBookingLeadDays != nil {
		prefs.PreferredBookingLeadDays = *patch.PreferredBookingLeadDays
	}
	if patch.PreferredCities != nil {
		prefs.PreferredCities = *patch.PreferredCities
	}
	if patch.MaxTravelDistanceMiles != nil {
		prefs.MaxTravelDistanceMiles = *patch.MaxTravelDistanceMiles
	}
	if patch.PreferredProviders != nil {
		prefs.PreferredProviders = *patch.PreferredProviders
	}
	if patch.AcceptsDeposits != nil {
		prefs.AcceptsDeposits = *patch.AcceptsDeposits
	}
	if patch.MinCancellationWindowHours != nil {
		prefs.MinCancellationWindowHours = *patch.MinCancellationWindowHours
	}
	if patch.BookingConfirmations != nil {
		prefs.BookingConfirmations = *patch.BookingConfirmations
	}
	if patch.ReminderNotifications != nil {
		prefs.ReminderNotifications = *patch.ReminderNotifications
	}
	if patch.ReminderHoursBefore != nil {
		prefs.ReminderHoursBefore = *patch.ReminderHoursBefore
	}
}

// GetBookingHistory returns the user's bookings in insertion order,
// degrading to empty on read failure.
func (s *DefaultPreferenceService) GetBookingHistory(ctx context.Context, userID string) []models.BookingHistory {
	history, err := s.Repo.GetBookingHistory(ctx, userID)
	if err != nil {
		utils.GetLogger().Warn("booking history read degraded to empty",
			zap.String("userID", userID), zap.Error(err))
		return nil
	}
	return history
}

// AddBookingToHistory appends; stored entries are immutable afterward.
func (s *DefaultPreferenceService) AddBookingToHistory(ctx context.Context, booking models.BookingHistory) error {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	now := s.timestamp()
	if booking.CreatedAt == "" {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now
	return s.Repo.AppendBooking(ctx, booking)
}

// SaveAssistantResponse archives an offer with a generated id and capture
// timestamp; the repository truncates to the newest 50 atomically.
func (s *DefaultPreferenceService) SaveAssistantResponse(ctx context.Context, userID string, resp models.OfferOptionsResponse) error {
	archived := models.ArchivedAssistantResponse{
		ID:        fmt.Sprintf("vapi_%s", uuid.New().String()),
		Timestamp: s.timestamp(),
		Response:  resp,
	}
	return s.Repo.AppendAssistantResponse(ctx, userID, archived)
}

// GetAssistantResponses returns the archive oldest-first, degrading to empty.
func (s *DefaultPreferenceService) GetAssistantResponses(ctx context.Context, userID string) []models.ArchivedAssistantResponse {
	responses, err := s.Repo.GetAssistantResponses(ctx, userID)
	if err != nil {
		utils.GetLogger().Warn("assistant archive read degraded to empty",
			zap.String("userID", userID), zap.Error(err))
		return nil
	}
	return responses
}

// PreferencesSummary aggregates stored state for dashboard views.
func (s *DefaultPreferenceService) PreferencesSummary(ctx context.Context, userID string) models.PreferencesSummary {
	history := s.GetBookingHistory(ctx, userID)
	responses := s.GetAssistantResponses(ctx, userID)

	recentBookings := history
	if len(recentBookings) > 5 {
		recentBookings = recentBookings[len(recentBookings)-5:]
	}
	recentResponses := responses
	if len(recentResponses) > 3 {
		recentResponses = recentResponses[len(recentResponses)-3:]
	}

	return models.PreferencesSummary{
		Preferences:            s.GetPreferences(ctx, userID),
		TotalBookings:          len(history),
		RecentBookings:         recentBookings,
		TotalVoiceInteractions: len(responses),
		RecentResponses:        recentResponses,
	}
}
