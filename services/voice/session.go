package voice

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"routed/models"
	"routed/services/preferences"

	"go.uber.org/zap"
)

// State is the session lifecycle state.
type State string

const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateActive     State = "active"
)

// ErrGenericTransport is what observers see for transport-level failures;
// the underlying detail stays in the logs.
var ErrGenericTransport = errors.New("voice assistant connection error")

// Observer receives session events. Callbacks run on the goroutine that
// delivered the event.
type Observer interface {
	OnOffer(resp *models.OfferOptionsResponse)
	OnError(err error)
}

// Session is a disposable handle on one voice-assistant call. It is
// explicitly constructed per user, and must be Closed when the owning view
// goes away so no observer leaks across session instances.
type Session struct {
	ID     string
	UserID string

	mu       sync.Mutex
	state    State
	callID   string
	closed   bool
	observer Observer

	client      AssistantClient
	prefs       preferences.PreferenceService
	publicKey   string
	assistantID string
	logger      *zap.Logger
	onRelease   func()
}

// SetObserver registers the observer; passing nil clears it.
func (s *Session) SetObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = o
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// StartCall transitions Idle -> Connecting and issues the external start
// request; on confirmation the session becomes Active. A missing credential
// fails immediately with a ConfigError and no state change.
func (s *Session) StartCall(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return &StateError{Op: "start_call", State: s.state}
	}
	if s.state != StateIdle {
		state := s.state
		s.mu.Unlock()
		return &StateError{Op: "start_call", State: state}
	}
	if s.publicKey == "" {
		s.mu.Unlock()
		return &ConfigError{Missing: "assistant public key"}
	}
	if s.assistantID == "" {
		s.mu.Unlock()
		return &ConfigError{Missing: "assistant id"}
	}
	s.state = StateConnecting
	s.mu.Unlock()

	callID, err := s.client.StartCall(ctx, s.assistantID)
	if err != nil {
		s.logger.Error("voice call start failed", zap.String("userID", s.UserID), zap.Error(err))
		s.failToIdle()
		return err
	}

	s.mu.Lock()
	if s.state != StateConnecting {
		s.mu.Unlock()
		// The call was ended or the session closed while the start request
		// was in flight. Do not resurrect it; stop the now-orphaned call so
		// it is not left running with no handle to it.
		if err := s.client.StopCall(ctx, callID); err != nil {
			s.logger.Warn("voice call stop after stale start failed",
				zap.String("userID", s.UserID), zap.Error(err))
		}
		return nil
	}
	s.callID = callID
	s.state = StateActive
	s.mu.Unlock()
	return nil
}

// EndCall is valid from Active or Connecting; it issues the external stop
// request and returns the session to Idle.
func (s *Session) EndCall(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateActive && s.state != StateConnecting {
		state := s.state
		s.mu.Unlock()
		return &StateError{Op: "end_call", State: state}
	}
	callID := s.callID
	s.state = StateIdle
	s.callID = ""
	s.mu.Unlock()

	if callID != "" {
		if err := s.client.StopCall(ctx, callID); err != nil {
			s.logger.Warn("voice call stop failed", zap.String("userID", s.UserID), zap.Error(err))
		}
	}
	return nil
}

// HandleEvent processes one inbound assistant event. Transport errors force
// the session to Idle from any state; offer payloads are only honored while
// Active.
func (s *Session) HandleEvent(ctx context.Context, ev models.VoiceEvent) error {
	switch ev.Type {
	case models.VoiceEventCallStart:
		s.mu.Lock()
		if s.state == StateConnecting {
			s.state = StateActive
		}
		s.mu.Unlock()
		return nil

	case models.VoiceEventCallEnd:
		s.mu.Lock()
		s.state = StateIdle
		s.callID = ""
		s.mu.Unlock()
		return nil

	case models.VoiceEventError:
		s.logger.Warn("voice transport error",
			zap.String("userID", s.UserID), zap.String("detail", ev.Error))
		s.failToIdle()
		return nil

	case models.VoiceEventMessage:
		return s.handleMessage(ctx, ev.Message)

	default:
		// Unknown event types are ignored; the assistant emits more kinds
		// than this bridge consumes.
		return nil
	}
}

func (s *Session) handleMessage(ctx context.Context, raw json.RawMessage) error {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return &models.PayloadError{Field: "message", Reason: "is not valid JSON"}
	}
	if tag.Type != models.EventTypeOfferOptions {
		return nil
	}

	s.mu.Lock()
	active := s.state == StateActive
	observer := s.observer
	s.mu.Unlock()
	if !active {
		return &StateError{Op: "offer_options", State: s.State()}
	}

	var offer models.OfferOptionsResponse
	if err := json.Unmarshal(raw, &offer); err != nil {
		return &models.PayloadError{Field: "offer_options", Reason: "does not decode"}
	}
	if err := offer.Validate(); err != nil {
		return err
	}

	if err := s.prefs.SaveAssistantResponse(ctx, s.UserID, offer); err != nil {
		s.logger.Error("failed to archive assistant offer",
			zap.String("userID", s.UserID), zap.Error(err))
	}
	if observer != nil {
		observer.OnOffer(&offer)
	}
	return nil
}

// failToIdle applies the Error transition: back to Idle, generic error to
// the observer.
func (s *Session) failToIdle() {
	s.mu.Lock()
	s.state = StateIdle
	s.callID = ""
	observer := s.observer
	s.mu.Unlock()
	if observer != nil {
		observer.OnError(ErrGenericTransport)
	}
}

// Close releases the observer and the manager slot. An in-flight call is
// stopped best-effort. Safe to call more than once.
func (s *Session) Close(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	callID := s.callID
	s.state = StateIdle
	s.callID = ""
	s.observer = nil
	release := s.onRelease
	s.mu.Unlock()

	if callID != "" {
		if err := s.client.StopCall(ctx, callID); err != nil {
			s.logger.Warn("voice call stop on close failed",
				zap.String("userID", s.UserID), zap.Error(err))
		}
	}
	if release != nil {
		release()
	}
}
