package handlers

import (
	"errors"
	"net/http"

	"routed/models"
	"routed/services/voice"
	"routed/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AcquireSessionHandler creates a fresh voice session for the caller and
// returns its grant token. A second acquire while one is live answers 409.
func AcquireSessionHandler(mgr *voice.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")

		session, token, err := mgr.Acquire(userID)
		if err != nil {
			var active *voice.SessionActiveError
			if errors.As(err, &active) {
				c.JSON(http.StatusConflict, gin.H{"error": "A voice session is already active"})
				return
			}
			utils.GetLogger().Error("Failed to acquire voice session", zap.String("userID", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start a voice session"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"session_id": session.ID,
			"token":      token,
			"state":      session.State(),
		})
	}
}

// sessionFromPath resolves the caller's session by path id, answering 404
// itself when missing.
func sessionFromPath(c *gin.Context, mgr *voice.Manager) (*voice.Session, bool) {
	userID := c.GetString("userID")
	sessionID := c.Param("sessionID")
	session, ok := mgr.Get(userID, sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return nil, false
	}
	return session, true
}

// StartCallHandler begins the assistant call on an idle session.
func StartCallHandler(mgr *voice.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFromPath(c, mgr)
		if !ok {
			return
		}

		if err := session.StartCall(c.Request.Context()); err != nil {
			var cfgErr *voice.ConfigError
			var stateErr *voice.StateError
			switch {
			case errors.As(err, &cfgErr):
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Voice assistant is not configured"})
			case errors.As(err, &stateErr):
				c.JSON(http.StatusConflict, gin.H{"error": "Call cannot be started in the current state"})
			default:
				c.JSON(http.StatusBadGateway, gin.H{"error": "Voice assistant connection error"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": session.State()})
	}
}

// EndCallHandler stops an active or connecting call.
func EndCallHandler(mgr *voice.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFromPath(c, mgr)
		if !ok {
			return
		}

		if err := session.EndCall(c.Request.Context()); err != nil {
			var stateErr *voice.StateError
			if errors.As(err, &stateErr) {
				c.JSON(http.StatusConflict, gin.H{"error": "No call to end"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "Voice assistant connection error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": session.State()})
	}
}

// CloseSessionHandler disposes of the session and frees the caller's slot.
func CloseSessionHandler(mgr *voice.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFromPath(c, mgr)
		if !ok {
			return
		}
		session.Close(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"status": "closed"})
	}
}

// VoiceEventHandler ingests assistant webhook events. The route is guarded
// by the session grant token, so userID and sessionID come from the token,
// not the payload.
func VoiceEventHandler(mgr *voice.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		sessionID := c.GetString("sessionID")

		session, ok := mgr.Get(userID, sessionID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}

		var event models.VoiceEvent
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := session.HandleEvent(c.Request.Context(), event); err != nil {
			var payloadErr *models.PayloadError
			var stateErr *voice.StateError
			switch {
			case errors.As(err, &payloadErr):
				c.JSON(http.StatusBadRequest, gin.H{"error": payloadErr.Error()})
			case errors.As(err, &stateErr):
				c.JSON(http.StatusConflict, gin.H{"error": "Event not valid in the current state"})
			default:
				utils.GetLogger().Error("Voice event handling failed",
					zap.String("userID", userID), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process event"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": session.State()})
	}
}
