package models

// TimePreference is a single preferred dining window within a day,
// "HH:MM" 24-hour strings, start <= end.
type TimePreference struct {
	StartTime string `bson:"start_time" json:"start_time"`
	EndTime   string `bson:"end_time" json:"end_time"`
}

// DayAvailability describes one weekday of a user's weekly availability.
type DayAvailability struct {
	Day            string           `bson:"day" json:"day"` // "monday" .. "sunday"
	Available      bool             `bson:"available" json:"available"`
	PreferredTimes []TimePreference `bson:"preferred_times" json:"preferred_times"`
}

// CustomerPreferences is the durable per-user dining/availability/booking
// configuration. Exactly one record exists per user at any time; it is
// created on first access and mutated in place, never deleted.
type CustomerPreferences struct {
	ID     string `bson:"id" json:"id"`
	UserID string `bson:"user_id" json:"user_id"`

	// Dining preferences.
	PreferredPartySize    int      `bson:"preferred_party_size" json:"preferred_party_size"`
	PreferredCuisineTypes []string `bson:"preferred_cuisine_types" json:"preferred_cuisine_types"`
	DietaryRestrictions   []string `bson:"dietary_restrictions" json:"dietary_restrictions"`

	// Time preferences. WeeklyAvailability always holds exactly 7 entries,
	// one per weekday.
	WeeklyAvailability       []DayAvailability `bson:"weekly_availability" json:"weekly_availability"`
	PreferredBookingLeadDays int               `bson:"preferred_booking_lead_time_days" json:"preferred_booking_lead_time_days"`

	// Location preferences.
	PreferredCities        []string `bson:"preferred_cities" json:"preferred_cities"`
	MaxTravelDistanceMiles float64  `bson:"max_travel_distance_miles" json:"max_travel_distance_miles"`

	// Booking preferences.
	PreferredProviders         []string `bson:"preferred_providers" json:"preferred_providers"`
	AcceptsDeposits            bool     `bson:"accepts_deposits" json:"accepts_deposits"`
	MinCancellationWindowHours int      `bson:"min_cancellation_window_hours" json:"min_cancellation_window_hours"`

	// Notification preferences.
	BookingConfirmations  bool `bson:"booking_confirmations" json:"booking_confirmations"`
	ReminderNotifications bool `bson:"reminder_notifications" json:"reminder_notifications"`
	ReminderHoursBefore   int  `bson:"reminder_hours_before" json:"reminder_hours_before"`

	// ISO-8601 timestamps; UpdatedAt is refreshed on every mutation and is
	// never earlier than CreatedAt.
	CreatedAt string `bson:"created_at" json:"created_at"`
	UpdatedAt string `bson:"updated_at" json:"updated_at"`
}

// PreferencesPatch is a partial update to CustomerPreferences. Nil fields
// are left untouched; set fields replace the stored value wholesale.
type PreferencesPatch struct {
	PreferredPartySize         *int               `json:"preferred_party_size,omitempty"`
	PreferredCuisineTypes      *[]string          `json:"preferred_cuisine_types,omitempty"`
	DietaryRestrictions        *[]string          `json:"dietary_restrictions,omitempty"`
	WeeklyAvailability         *[]DayAvailability `json:"weekly_availability,omitempty"`
	PreferredBookingLeadDays   *int               `json:"preferred_booking_lead_time_days,omitempty"`
	PreferredCities            *[]string          `json:"preferred_cities,omitempty"`
	MaxTravelDistanceMiles     *float64           `json:"max_travel_distance_miles,omitempty"`
	PreferredProviders         *[]string          `json:"preferred_providers,omitempty"`
	AcceptsDeposits            *bool              `json:"accepts_deposits,omitempty"`
	MinCancellationWindowHours *int               `json:"min_cancellation_window_hours,omitempty"`
	BookingConfirmations       *bool              `json:"booking_confirmations,omitempty"`
	ReminderNotifications      *bool              `json:"reminder_notifications,omitempty"`
	ReminderHoursBefore        *int               `json:"reminder_hours_before,omitempty"`
}

// Booking history statuses. Status changes are appended as new facts; a
// stored BookingHistory entry is never mutated.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
	BookingStatusNoShow    = "no_show"
)

// BookingHistory is an append-only record of a completed or attempted booking.
type BookingHistory struct {
	ID             string        `bson:"id" json:"id"`
	UserID         string        `bson:"user_id" json:"user_id"`
	Venue          OfferVenue    `bson:"venue" json:"venue"`
	BookingDate    string        `bson:"booking_date" json:"booking_date"`
	PartySize      int           `bson:"party_size" json:"party_size"`
	SelectedOption BookingOption `bson:"selected_option" json:"selected_option"`
	BookingStatus  string        `bson:"booking_status" json:"booking_status"`
	CreatedAt      string        `bson:"created_at" json:"created_at"`
	UpdatedAt      string        `bson:"updated_at" json:"updated_at"`
}

// PreferencesSummary aggregates a user's stored state for dashboard views.
type PreferencesSummary struct {
	Preferences            *CustomerPreferences        `json:"preferences"`
	TotalBookings          int                         `json:"total_bookings"`
	RecentBookings         []BookingHistory            `json:"recent_bookings"`
	TotalVoiceInteractions int                         `json:"total_voice_interactions"`
	RecentResponses        []ArchivedAssistantResponse `json:"recent_responses"`
}
