package voice

import "fmt"

// ConfigError signals a missing assistant credential. Start attempts fail
// fast with this error and no state change.
type ConfigError struct {
	Missing string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("voice configuration error: %s is not set", e.Missing)
}

// StateError signals an operation attempted from the wrong session state.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s not valid in state %q", e.Op, e.State)
}

// SessionActiveError is returned when a user already holds a live session.
type SessionActiveError struct {
	UserID string
}

func (e *SessionActiveError) Error() string {
	return fmt.Sprintf("user %s already has an active voice session", e.UserID)
}
