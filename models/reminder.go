package models

// ReminderPayload is the asynq task payload for a scheduled booking reminder.
type ReminderPayload struct {
	UserID    string `json:"userId"`
	BookingID string `json:"bookingId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	FireDate  string `json:"fireDate"`
}
