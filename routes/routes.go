package routes

import (
	"net/http"
	"time"

	"routed/handlers"
	"routed/middleware"
	"routed/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPreferenceRoutes registers the preference-store endpoints.
func RegisterPreferenceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/preferences")
	{
		api.Use(middleware.FirebaseAuthMiddleware(hb.AuthClient))
		api.GET("", hb.GetPreferencesHandler)
		api.PUT("", hb.SavePreferencesHandler)
		api.PATCH("", hb.UpdatePreferencesHandler)
		api.GET("/summary", hb.PreferencesSummaryHandler)
		api.GET("/bookings", hb.GetBookingHistoryHandler)
		api.POST("/bookings", hb.AddBookingHandler)
		api.GET("/assistant-responses", hb.GetAssistantResponsesHandler)
	}
}

// RegisterVoiceRoutes registers the voice-session bridge endpoints. The
// event webhook is authorized by the session grant token, everything else by
// the identity provider.
func RegisterVoiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/voice")
	{
		api.POST("/event", middleware.VoiceSessionAuthMiddleware(), hb.VoiceEventHandler)

		protected := api.Group("")
		protected.Use(middleware.FirebaseAuthMiddleware(hb.AuthClient))
		protected.POST("/session", hb.AcquireSessionHandler)
		protected.POST("/session/:sessionID/start", hb.StartCallHandler)
		protected.POST("/session/:sessionID/end", hb.EndCallHandler)
		protected.DELETE("/session/:sessionID", hb.CloseSessionHandler)
	}
}

// RegisterRouteRoutes registers place search and stop suggestion.
func RegisterRouteRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/route")
	{
		api.Use(middleware.FirebaseAuthMiddleware(hb.AuthClient))
		api.POST("/search_place", hb.SearchPlaceHandler)
		api.POST("/suggest_stops", middleware.InFlightGuard("suggest_stops"), hb.SuggestStopsHandler)
	}
}

// RegisterItineraryRoutes registers itinerary generation and editing.
func RegisterItineraryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/itinerary")
	{
		api.Use(middleware.FirebaseAuthMiddleware(hb.AuthClient))
		api.POST("", middleware.InFlightGuard("generate_itinerary"), hb.GenerateItineraryHandler)
		api.GET("", hb.GetItineraryHandler)
		api.POST("/stops/:index/regenerate", hb.RegenerateStopHandler)
		api.DELETE("/stops/:index", hb.RemoveStopHandler)
	}
}

// RegisterReservationRoutes registers batch reservation submission.
func RegisterReservationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reservations")
	{
		api.Use(middleware.FirebaseAuthMiddleware(hb.AuthClient))
		api.POST("/batch", middleware.InFlightGuard("batch_reserve"), hb.BatchReserveHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the
// periodic dependency monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"message":      "Hi, I'm Routed",
			"dependencies": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterPreferenceRoutes(r, hb)
	RegisterVoiceRoutes(r, hb)
	RegisterRouteRoutes(r, hb)
	RegisterItineraryRoutes(r, hb)
	RegisterReservationRoutes(r, hb)
	RegisterHealthRoute(r)
}
