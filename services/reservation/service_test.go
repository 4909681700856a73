package reservation

import (
	"context"
	"testing"
	"time"

	"routed/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAgent struct {
	results []models.ReservationResult
	err     error
	calls   int
}

func (a *fakeAgent) SubmitBatch(ctx context.Context, req models.BatchReservationRequest) ([]models.ReservationResult, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	return a.results, nil
}

// prefsStub supplies fixed preferences and records booking history writes.
type prefsStub struct {
	prefs    *models.CustomerPreferences
	bookings []models.BookingHistory
	addErr   error
}

func (p *prefsStub) GetPreferences(ctx context.Context, userID string) *models.CustomerPreferences {
	return p.prefs
}
func (p *prefsStub) CreateDefaultPreferences(ctx context.Context, userID string) (*models.CustomerPreferences, error) {
	return p.prefs, nil
}
func (p *prefsStub) GetOrCreatePreferences(ctx context.Context, userID string) (*models.CustomerPreferences, error) {
	return p.prefs, nil
}
func (p *prefsStub) SavePreferences(ctx context.Context, prefs *models.CustomerPreferences) error {
	return nil
}
func (p *prefsStub) UpdatePreferences(ctx context.Context, userID string, patch models.PreferencesPatch) (*models.CustomerPreferences, error) {
	return p.prefs, nil
}
func (p *prefsStub) GetBookingHistory(ctx context.Context, userID string) []models.BookingHistory {
	return p.bookings
}
func (p *prefsStub) AddBookingToHistory(ctx context.Context, booking models.BookingHistory) error {
	if p.addErr != nil {
		return p.addErr
	}
	p.bookings = append(p.bookings, booking)
	return nil
}
func (p *prefsStub) SaveAssistantResponse(ctx context.Context, userID string, resp models.OfferOptionsResponse) error {
	return nil
}
func (p *prefsStub) GetAssistantResponses(ctx context.Context, userID string) []models.ArchivedAssistantResponse {
	return nil
}
func (p *prefsStub) PreferencesSummary(ctx context.Context, userID string) models.PreferencesSummary {
	return models.PreferencesSummary{}
}

type fakeNotifier struct {
	confirmed []string
	err       error
}

func (n *fakeNotifier) SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error {
	return n.err
}
func (n *fakeNotifier) NotifyReservationConfirmed(ctx context.Context, userID, restaurantName, confirmation string) error {
	if n.err != nil {
		return n.err
	}
	n.confirmed = append(n.confirmed, restaurantName)
	return nil
}

type fakeScheduler struct {
	payloads []models.ReminderPayload
	fireAts  []time.Time
}

func (s *fakeScheduler) ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error {
	s.payloads = append(s.payloads, payload)
	s.fireAts = append(s.fireAts, fireAt)
	return nil
}

func notifyAllPrefs() *models.CustomerPreferences {
	return &models.CustomerPreferences{
		UserID:                "user-1",
		BookingConfirmations:  true,
		ReminderNotifications: true,
		ReminderHoursBefore:   2,
	}
}

func newReservationFixture(prefs *models.CustomerPreferences, results []models.ReservationResult) (*DefaultReservationService, *fakeAgent, *prefsStub, *fakeNotifier, *fakeScheduler) {
	agent := &fakeAgent{results: results}
	store := &prefsStub{prefs: prefs}
	notifier := &fakeNotifier{}
	scheduler := &fakeScheduler{}
	svc := NewReservationService(agent, store, notifier, scheduler)
	svc.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, agent, store, notifier, scheduler
}

func batchRequest(places ...string) models.BatchReservationRequest {
	req := models.BatchReservationRequest{
		ReservationDetails: models.ReservationDetails{
			PartySize: 2,
			Date:      "2025-06-07",
			Time:      "19:00",
			Name:      "Sam Diner",
			Phone:     "555-0100",
		},
	}
	for _, name := range places {
		req.PlacesData = append(req.PlacesData, models.ReservationPlace{Name: name})
	}
	return req
}

func TestSubmitBatchRejectsEmptyPlaces(t *testing.T) {
	svc, agent, _, _, _ := newReservationFixture(notifyAllPrefs(), nil)

	_, err := svc.SubmitBatch(context.Background(), "user-1", batchRequest())
	require.ErrorIs(t, err, ErrNoPlaces)
	// The agent is never contacted for an empty batch.
	assert.Zero(t, agent.calls)
}

func TestSubmitBatchValidatesDetails(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.BatchReservationRequest)
	}{
		{"zero party size", func(r *models.BatchReservationRequest) { r.ReservationDetails.PartySize = 0 }},
		{"missing date", func(r *models.BatchReservationRequest) { r.ReservationDetails.Date = "" }},
		{"missing time", func(r *models.BatchReservationRequest) { r.ReservationDetails.Time = "" }},
		{"missing name", func(r *models.BatchReservationRequest) { r.ReservationDetails.Name = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, agent, _, _, _ := newReservationFixture(notifyAllPrefs(), nil)
			req := batchRequest("Lilia")
			tc.mutate(&req)

			_, err := svc.SubmitBatch(context.Background(), "user-1", req)
			var reqErr *RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Zero(t, agent.calls)
		})
	}
}

func TestSubmitBatchRecordsConfirmedBookings(t *testing.T) {
	results := []models.ReservationResult{
		{RestaurantName: "Lilia", Location: "Brooklyn", Status: "confirmed", ConfirmationNumber: "ABC123"},
		{RestaurantName: "Via Carota", Status: "failed", Error: "no availability"},
		{RestaurantName: "Don Angie", Status: "Success"},
	}
	svc, _, store, notifier, _ := newReservationFixture(notifyAllPrefs(), results)

	out, err := svc.SubmitBatch(context.Background(), "user-1", batchRequest("Lilia", "Via Carota", "Don Angie"))
	require.NoError(t, err)
	assert.Equal(t, results, out)

	// Only confirmed results reach history; "Success" counts case-insensitively.
	require.Len(t, store.bookings, 2)
	first := store.bookings[0]
	assert.True(t, len(first.ID) > len("booking_"))
	assert.Equal(t, "Lilia", first.Venue.Name)
	assert.Equal(t, "Brooklyn", first.Venue.City)
	assert.Equal(t, "2025-06-07", first.BookingDate)
	assert.Equal(t, 2, first.PartySize)
	assert.Equal(t, "19:00", first.SelectedOption.TimeLocal)
	assert.Equal(t, "reservation_agent", first.SelectedOption.Provider)
	assert.Equal(t, models.BookingStatusConfirmed, first.BookingStatus)
	assert.Equal(t, "2025-06-01T12:00:00Z", first.CreatedAt)

	assert.Equal(t, []string{"Lilia", "Don Angie"}, notifier.confirmed)
}

func TestSubmitBatchSchedulesReminder(t *testing.T) {
	results := []models.ReservationResult{
		{RestaurantName: "Lilia", Status: "confirmed"},
	}
	svc, _, store, _, scheduler := newReservationFixture(notifyAllPrefs(), results)

	_, err := svc.SubmitBatch(context.Background(), "user-1", batchRequest("Lilia"))
	require.NoError(t, err)

	// Two hours before the 19:00 booking.
	require.Len(t, scheduler.payloads, 1)
	assert.Equal(t, time.Date(2025, 6, 7, 17, 0, 0, 0, time.UTC), scheduler.fireAts[0])

	payload := scheduler.payloads[0]
	assert.Equal(t, "user-1", payload.UserID)
	assert.Equal(t, store.bookings[0].ID, payload.BookingID)
	assert.Equal(t, "Upcoming reservation", payload.Title)
	assert.Contains(t, payload.Body, "Lilia")
	assert.Contains(t, payload.Body, "19:00")
}

func TestSubmitBatchSkipsPastReminder(t *testing.T) {
	results := []models.ReservationResult{
		{RestaurantName: "Lilia", Status: "confirmed"},
	}
	svc, _, _, _, scheduler := newReservationFixture(notifyAllPrefs(), results)
	// Clock past the reminder moment.
	svc.Now = func() time.Time { return time.Date(2025, 6, 7, 18, 30, 0, 0, time.UTC) }

	_, err := svc.SubmitBatch(context.Background(), "user-1", batchRequest("Lilia"))
	require.NoError(t, err)
	assert.Empty(t, scheduler.payloads)
}

func TestSubmitBatchHonorsNotificationPreferences(t *testing.T) {
	results := []models.ReservationResult{
		{RestaurantName: "Lilia", Status: "confirmed"},
	}
	prefs := notifyAllPrefs()
	prefs.BookingConfirmations = false
	prefs.ReminderNotifications = false
	svc, _, store, notifier, scheduler := newReservationFixture(prefs, results)

	_, err := svc.SubmitBatch(context.Background(), "user-1", batchRequest("Lilia"))
	require.NoError(t, err)

	// Booking is recorded either way; pushes and reminders are suppressed.
	assert.Len(t, store.bookings, 1)
	assert.Empty(t, notifier.confirmed)
	assert.Empty(t, scheduler.payloads)
}

func TestSubmitBatchDefaultsReminderLead(t *testing.T) {
	results := []models.ReservationResult{
		{RestaurantName: "Lilia", Status: "confirmed"},
	}
	prefs := notifyAllPrefs()
	prefs.ReminderHoursBefore = 0
	svc, _, _, _, scheduler := newReservationFixture(prefs, results)

	_, err := svc.SubmitBatch(context.Background(), "user-1", batchRequest("Lilia"))
	require.NoError(t, err)
	require.Len(t, scheduler.fireAts, 1)
	assert.Equal(t, time.Date(2025, 6, 7, 17, 0, 0, 0, time.UTC), scheduler.fireAts[0])
}

func TestSubmitBatchNotificationFailureDoesNotFailBatch(t *testing.T) {
	results := []models.ReservationResult{
		{RestaurantName: "Lilia", Status: "confirmed"},
	}
	svc, _, store, notifier, _ := newReservationFixture(notifyAllPrefs(), results)
	notifier.err = assert.AnError

	out, err := svc.SubmitBatch(context.Background(), "user-1", batchRequest("Lilia"))
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Len(t, store.bookings, 1)
}

func TestSubmitBatchAgentFailure(t *testing.T) {
	svc, agent, store, _, _ := newReservationFixture(notifyAllPrefs(), nil)
	agent.err = assert.AnError

	_, err := svc.SubmitBatch(context.Background(), "user-1", batchRequest("Lilia"))
	require.Error(t, err)
	assert.Empty(t, store.bookings)
}
