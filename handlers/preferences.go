package handlers

import (
	"net/http"

	"routed/models"
	"routed/services/preferences"
	"routed/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetPreferencesHandler returns the caller's preferences, creating the
// default record on first access.
func GetPreferencesHandler(svc preferences.PreferenceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		prefs, err := svc.GetOrCreatePreferences(c.Request.Context(), userID)
		if err != nil {
			utils.GetLogger().Error("Failed to load preferences", zap.String("userID", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load preferences"})
			return
		}
		c.JSON(http.StatusOK, prefs)
	}
}

// SavePreferencesHandler replaces the caller's preferences wholesale.
func SavePreferencesHandler(svc preferences.PreferenceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")

		var prefs models.CustomerPreferences
		if err := c.ShouldBindJSON(&prefs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		prefs.UserID = userID

		if err := svc.SavePreferences(c.Request.Context(), &prefs); err != nil {
			utils.GetLogger().Error("Failed to save preferences", zap.String("userID", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preferences"})
			return
		}
		c.JSON(http.StatusOK, prefs)
	}
}

// UpdatePreferencesHandler applies a partial update. Updating a user with no
// stored record is a no-op answered with 404.
func UpdatePreferencesHandler(svc preferences.PreferenceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")

		var patch models.PreferencesPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		prefs, err := svc.UpdatePreferences(c.Request.Context(), userID, patch)
		if err != nil {
			utils.GetLogger().Error("Failed to update preferences", zap.String("userID", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
			return
		}
		if prefs == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No preferences on record"})
			return
		}
		c.JSON(http.StatusOK, prefs)
	}
}

// GetBookingHistoryHandler returns the caller's booking history, empty when
// none exists.
func GetBookingHistoryHandler(svc preferences.PreferenceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		history := svc.GetBookingHistory(c.Request.Context(), userID)
		if history == nil {
			history = []models.BookingHistory{}
		}
		c.JSON(http.StatusOK, gin.H{"bookings": history})
	}
}

// AddBookingHandler appends one booking fact to the caller's history.
func AddBookingHandler(svc preferences.PreferenceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")

		var booking models.BookingHistory
		if err := c.ShouldBindJSON(&booking); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		booking.UserID = userID

		if err := svc.AddBookingToHistory(c.Request.Context(), booking); err != nil {
			utils.GetLogger().Error("Failed to record booking", zap.String("userID", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record booking"})
			return
		}
		c.JSON(http.StatusCreated, booking)
	}
}

// GetAssistantResponsesHandler returns the capped archive of assistant
// offers.
func GetAssistantResponsesHandler(svc preferences.PreferenceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		responses := svc.GetAssistantResponses(c.Request.Context(), userID)
		if responses == nil {
			responses = []models.ArchivedAssistantResponse{}
		}
		c.JSON(http.StatusOK, gin.H{"responses": responses})
	}
}

// PreferencesSummaryHandler aggregates stored state for dashboard views.
func PreferencesSummaryHandler(svc preferences.PreferenceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		c.JSON(http.StatusOK, svc.PreferencesSummary(c.Request.Context(), userID))
	}
}
