package handlers

import (
	"errors"
	"net/http"

	"routed/models"
	"routed/resolvers"
	"routed/services/route"
	"routed/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchPlaceRequest is the input for place search.
type SearchPlaceRequest struct {
	Query string `json:"query" binding:"required"`
}

// SearchPlaceHandler proxies a places text search.
func SearchPlaceHandler(svc route.PlannerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SearchPlaceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		resp, err := svc.SearchPlace(c.Request.Context(), req.Query)
		if err != nil {
			var reqErr *route.RequestError
			if errors.As(err, &reqErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": reqErr.Reason})
				return
			}
			utils.GetLogger().Error("Place search failed", zap.String("query", req.Query), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Place search failed"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// SuggestStopsHandler runs the detour search and attaches the rendered view.
func SuggestStopsHandler(svc route.PlannerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SuggestStopsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		resp, err := svc.SuggestStops(c.Request.Context(), req)
		if err != nil {
			var reqErr *route.RequestError
			if errors.As(err, &reqErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": reqErr.Reason})
				return
			}
			utils.GetLogger().Error("Stop suggestion failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to find candidates"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"route_summary": resp.RouteSummary,
			"candidates":    resp.Candidates,
			"generated_at":  resp.GeneratedAt,
			"display":       resolvers.BuildSuggestStopsView(resp),
		})
	}
}
