package voice

import (
	"context"
	"sync"
	"time"

	"routed/services/preferences"
	"routed/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sessionTokenTTL bounds how long a session grant stays usable.
const sessionTokenTTL = 2 * time.Hour

// Manager owns the live voice sessions, one per user at most. Sessions are
// explicitly acquired and released rather than hanging off a global handle.
type Manager struct {
	Client      AssistantClient
	Prefs       preferences.PreferenceService
	PublicKey   string
	AssistantID string

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(client AssistantClient, prefs preferences.PreferenceService, publicKey, assistantID string) *Manager {
	return &Manager{
		Client:      client,
		Prefs:       prefs,
		PublicKey:   publicKey,
		AssistantID: assistantID,
		sessions:    make(map[string]*Session),
	}
}

// Acquire creates a fresh Idle session for the user plus a signed grant
// token for its event endpoint. A user with a live session must Close it
// first.
func (m *Manager) Acquire(userID string) (*Session, string, error) {
	m.mu.Lock()
	if _, exists := m.sessions[userID]; exists {
		m.mu.Unlock()
		return nil, "", &SessionActiveError{UserID: userID}
	}

	session := &Session{
		ID:          uuid.New().String(),
		UserID:      userID,
		state:       StateIdle,
		client:      m.Client,
		prefs:       m.Prefs,
		publicKey:   m.PublicKey,
		assistantID: m.AssistantID,
		logger:      utils.GetLogger(),
	}
	session.onRelease = func() { m.release(userID, session.ID) }
	m.sessions[userID] = session
	m.mu.Unlock()

	token, err := utils.GenerateSessionToken(userID, session.ID, sessionTokenTTL)
	if err != nil {
		session.Close(context.Background())
		return nil, "", err
	}
	return session, token, nil
}

// Get returns the user's session when the id matches.
func (m *Manager) Get(userID, sessionID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[userID]
	if !ok || session.ID != sessionID {
		return nil, false
	}
	return session, true
}

func (m *Manager) release(userID, sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session, ok := m.sessions[userID]; ok && session.ID == sessionID {
		delete(m.sessions, userID)
		utils.GetLogger().Debug("voice session released", zap.String("userID", userID))
	}
}
