package models

import (
	"encoding/json"
	"fmt"
)

// OfferVenue identifies the venue an offer refers to.
type OfferVenue struct {
	Name string `bson:"name" json:"name"`
	City string `bson:"city" json:"city"`
}

// OfferPolicy carries the cancellation/deposit terms attached to an option.
// Deposit is nil when the venue takes no deposit.
type OfferPolicy struct {
	Deposit           *float64 `bson:"deposit" json:"deposit"`
	CancelWindowHours int      `bson:"cancel_window_hours" json:"cancel_window_hours"`
	HoldsCard         bool     `bson:"holds_card" json:"holds_card"`
}

// BookingOption is one bookable slot offered by the voice assistant.
type BookingOption struct {
	TimeLocal string      `bson:"time_local" json:"time_local"`
	Provider  string      `bson:"provider" json:"provider"`
	TableNote string      `bson:"table_note" json:"table_note"`
	Policy    OfferPolicy `bson:"policy" json:"policy"`
}

// OfferAlternate is a fallback date/time/provider triple.
type OfferAlternate struct {
	Date      string `bson:"date" json:"date"`
	TimeLocal string `bson:"time_local" json:"time_local"`
	Provider  string `bson:"provider" json:"provider"`
}

// EventTypeOfferOptions tags structured offer messages from the assistant.
const EventTypeOfferOptions = "offer_options"

// OfferOptionsResponse is the structured booking-offer payload emitted by the
// voice assistant. It is archived verbatim and never mutated.
type OfferOptionsResponse struct {
	Type       string           `bson:"type" json:"type"`
	Venue      OfferVenue       `bson:"venue" json:"venue"`
	PartySize  int              `bson:"party_size" json:"party_size"`
	Date       string           `bson:"date" json:"date"`
	Options    []BookingOption  `bson:"options" json:"options"`
	Alternates []OfferAlternate `bson:"alternates" json:"alternates"`
}

// PayloadError reports a structured message that failed boundary validation.
// Malformed offers are rejected with this error, never silently defaulted.
type PayloadError struct {
	Field  string
	Reason string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("invalid assistant payload: %s %s", e.Field, e.Reason)
}

// Validate checks the fields an offer cannot be acted on without.
func (r *OfferOptionsResponse) Validate() error {
	if r.Type != EventTypeOfferOptions {
		return &PayloadError{Field: "type", Reason: fmt.Sprintf("expected %q, got %q", EventTypeOfferOptions, r.Type)}
	}
	if r.Venue.Name == "" {
		return &PayloadError{Field: "venue.name", Reason: "is required"}
	}
	if r.PartySize <= 0 {
		return &PayloadError{Field: "party_size", Reason: "must be positive"}
	}
	if r.Date == "" {
		return &PayloadError{Field: "date", Reason: "is required"}
	}
	if len(r.Options) == 0 {
		return &PayloadError{Field: "options", Reason: "must not be empty"}
	}
	for i, opt := range r.Options {
		if opt.TimeLocal == "" || opt.Provider == "" {
			return &PayloadError{Field: fmt.Sprintf("options[%d]", i), Reason: "missing time_local or provider"}
		}
	}
	return nil
}

// ArchivedAssistantResponse wraps an offer with a generated id and capture
// timestamp for the per-user archive.
type ArchivedAssistantResponse struct {
	ID        string               `bson:"id" json:"id"`
	Timestamp string               `bson:"timestamp" json:"timestamp"`
	Response  OfferOptionsResponse `bson:"response" json:"response"`
}

// Voice event types delivered by the assistant transport.
const (
	VoiceEventCallStart = "call-start"
	VoiceEventCallEnd   = "call-end"
	VoiceEventError     = "error"
	VoiceEventMessage   = "message"
)

// VoiceEvent is the envelope for inbound assistant events.
type VoiceEvent struct {
	Type    string          `json:"type"`
	Error   string          `json:"error,omitempty"`
	Message json.RawMessage `json:"message,omitempty"`
}
