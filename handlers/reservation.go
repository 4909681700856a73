package handlers

import (
	"errors"
	"net/http"

	"routed/models"
	"routed/services/reservation"
	"routed/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BatchReserveHandler submits one reservation request against many places.
// An empty place list is rejected before any outbound call.
func BatchReserveHandler(svc reservation.ReservationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")

		var req models.BatchReservationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		results, err := svc.SubmitBatch(c.Request.Context(), userID, req)
		if err != nil {
			var reqErr *reservation.RequestError
			switch {
			case errors.Is(err, reservation.ErrNoPlaces):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Select at least one restaurant to reserve"})
			case errors.As(err, &reqErr):
				c.JSON(http.StatusBadRequest, gin.H{"error": reqErr.Reason})
			default:
				utils.GetLogger().Error("Batch reservation failed", zap.String("userID", userID), zap.Error(err))
				c.JSON(http.StatusBadGateway, gin.H{"error": "Reservation agent is unavailable"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": results})
	}
}
