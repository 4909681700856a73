package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"routed/models"
	"routed/services/itinerary"
	"routed/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func respondItinerary(c *gin.Context, svc itinerary.ItineraryService, it *models.Itinerary) {
	c.JSON(http.StatusOK, gin.H{
		"itinerary": it,
		"maps_url":  svc.MapsURL(it),
	})
}

func itineraryError(c *gin.Context, err error) {
	var payloadErr *models.PayloadError
	switch {
	case errors.As(err, &payloadErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": payloadErr.Error()})
	case errors.Is(err, itinerary.ErrNoItinerary):
		c.JSON(http.StatusNotFound, gin.H{"error": "No itinerary to edit"})
	default:
		utils.GetLogger().Error("Itinerary operation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate itinerary"})
	}
}

// GenerateItineraryHandler plans a fresh itinerary from free-text input.
func GenerateItineraryHandler(svc itinerary.ItineraryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")

		var req models.ItineraryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		it, err := svc.Generate(c.Request.Context(), userID, req)
		if err != nil {
			itineraryError(c, err)
			return
		}
		respondItinerary(c, svc, it)
	}
}

// GetItineraryHandler returns the caller's stored itinerary.
func GetItineraryHandler(svc itinerary.ItineraryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")

		it, err := svc.Last(c.Request.Context(), userID)
		if err != nil {
			utils.GetLogger().Error("Failed to load itinerary", zap.String("userID", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load itinerary"})
			return
		}
		if it == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No itinerary on record"})
			return
		}
		respondItinerary(c, svc, it)
	}
}

func stopIndexParam(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stop index"})
		return 0, false
	}
	return idx, true
}

// RegenerateStopHandler swaps one stop for a fresh suggestion.
func RegenerateStopHandler(svc itinerary.ItineraryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		idx, ok := stopIndexParam(c)
		if !ok {
			return
		}

		it, err := svc.RegenerateStop(c.Request.Context(), userID, idx)
		if err != nil {
			itineraryError(c, err)
			return
		}
		respondItinerary(c, svc, it)
	}
}

// RemoveStopHandler drops one stop from the stored itinerary.
func RemoveStopHandler(svc itinerary.ItineraryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		idx, ok := stopIndexParam(c)
		if !ok {
			return
		}

		it, err := svc.RemoveStop(c.Request.Context(), userID, idx)
		if err != nil {
			itineraryError(c, err)
			return
		}
		respondItinerary(c, svc, it)
	}
}
