package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"routed/models"
	"routed/services/notification"
	"routed/services/preferences"
	"routed/services/tasks"
	"routed/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoPlaces is returned before any outbound call when the request names
// zero restaurants.
var ErrNoPlaces = errors.New("no restaurants selected for reservation")

// RequestError marks caller mistakes in the reservation details.
type RequestError struct {
	Reason string
}

func (e *RequestError) Error() string {
	return e.Reason
}

// DefaultReservationService implements ReservationService.
type DefaultReservationService struct {
	Agent     AgentClient
	Prefs     preferences.PreferenceService
	Notifier  notification.NotificationService
	Scheduler tasks.ReminderScheduler
	Now       func() time.Time
	logger    *zap.Logger
}

func NewReservationService(
	agent AgentClient,
	prefs preferences.PreferenceService,
	notifier notification.NotificationService,
	scheduler tasks.ReminderScheduler,
) *DefaultReservationService {
	return &DefaultReservationService{
		Agent:     agent,
		Prefs:     prefs,
		Notifier:  notifier,
		Scheduler: scheduler,
		Now:       time.Now,
		logger:    utils.GetLogger(),
	}
}

// SubmitBatch validates, forwards to the agent, and records each confirmed
// result. Notification failures never fail the reservation itself.
func (s *DefaultReservationService) SubmitBatch(ctx context.Context, userID string, req models.BatchReservationRequest) ([]models.ReservationResult, error) {
	if len(req.PlacesData) == 0 {
		return nil, ErrNoPlaces
	}
	if err := validateDetails(req.ReservationDetails); err != nil {
		return nil, err
	}

	results, err := s.Agent.SubmitBatch(ctx, req)
	if err != nil {
		return nil, err
	}

	for _, res := range results {
		if !isConfirmed(res.Status) {
			continue
		}
		booking := s.recordBooking(ctx, userID, req.ReservationDetails, res)
		s.notify(ctx, userID, booking, res)
	}
	return results, nil
}

func validateDetails(d models.ReservationDetails) error {
	if d.PartySize <= 0 {
		return &RequestError{Reason: "party_size must be positive"}
	}
	if d.Date == "" || d.Time == "" {
		return &RequestError{Reason: "date and time are required"}
	}
	if d.Name == "" {
		return &RequestError{Reason: "name is required"}
	}
	return nil
}

func isConfirmed(status string) bool {
	return strings.EqualFold(status, models.BookingStatusConfirmed) ||
		strings.EqualFold(status, "success")
}

// recordBooking appends a confirmed fact to the user's booking history.
func (s *DefaultReservationService) recordBooking(ctx context.Context, userID string, details models.ReservationDetails, res models.ReservationResult) models.BookingHistory {
	now := s.Now().UTC().Format(time.RFC3339)
	booking := models.BookingHistory{
		ID:     "booking_" + uuid.New().String(),
		UserID: userID,
		Venue: models.OfferVenue{
			Name: res.RestaurantName,
			City: res.Location,
		},
		BookingDate: details.Date,
		PartySize:   details.PartySize,
		SelectedOption: models.BookingOption{
			TimeLocal: details.Time,
			Provider:  "reservation_agent",
		},
		BookingStatus: models.BookingStatusConfirmed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Prefs.AddBookingToHistory(ctx, booking); err != nil {
		s.logger.Error("failed to record booking",
			zap.String("userID", userID), zap.String("venue", res.RestaurantName), zap.Error(err))
	}
	return booking
}

// notify honors the user's notification preferences: a confirmation push
// right away, and a reminder task scheduled before the booking time.
func (s *DefaultReservationService) notify(ctx context.Context, userID string, booking models.BookingHistory, res models.ReservationResult) {
	prefs := s.Prefs.GetPreferences(ctx, userID)
	if prefs == nil {
		return
	}

	if prefs.BookingConfirmations && s.Notifier != nil {
		if err := s.Notifier.NotifyReservationConfirmed(ctx, userID, res.RestaurantName, res.ConfirmationNumber); err != nil {
			s.logger.Warn("confirmation push failed",
				zap.String("userID", userID), zap.Error(err))
		}
	}

	if prefs.ReminderNotifications && s.Scheduler != nil {
		fireAt, ok := reminderTime(booking, prefs.ReminderHoursBefore)
		if !ok || !fireAt.After(s.Now()) {
			return
		}
		payload := models.ReminderPayload{
			UserID:    userID,
			BookingID: booking.ID,
			Title:     "Upcoming reservation",
			Body:      fmt.Sprintf("Your table at %s is at %s.", booking.Venue.Name, booking.SelectedOption.TimeLocal),
			FireDate:  fireAt.UTC().Format(time.RFC3339),
		}
		if err := s.Scheduler.ScheduleReminder(payload, fireAt); err != nil {
			s.logger.Warn("reminder scheduling failed",
				zap.String("userID", userID), zap.Error(err))
		}
	}
}

// reminderTime parses the booking's local date/time and backs off the
// configured lead.
func reminderTime(booking models.BookingHistory, hoursBefore int) (time.Time, bool) {
	if hoursBefore <= 0 {
		hoursBefore = 2
	}
	at, err := time.Parse("2006-01-02 15:04", booking.BookingDate+" "+booking.SelectedOption.TimeLocal)
	if err != nil {
		return time.Time{}, false
	}
	return at.Add(-time.Duration(hoursBefore) * time.Hour), true
}
