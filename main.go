package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"routed/config"
	"routed/cron"
	"routed/database"
	preferencesRepo "routed/database/repository/preferences"
	"routed/handlers"
	"routed/routes"
	"routed/services/itinerary"
	"routed/services/notification"
	"routed/services/preferences"
	"routed/services/reservation"
	"routed/services/route"
	"routed/services/tasks"
	"routed/services/voice"
	"routed/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitItineraryCache()
	utils.FirebaseInit()

	preferencesRepo.EnsureIndexes()

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetItineraryCacheClient()},
		database.MongoClient,
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	prefsRepo := preferencesRepo.NewMongoPreferencesRepo()

	// services.
	prefsService := &preferences.DefaultPreferenceService{
		Repo: prefsRepo,
	}

	assistantClient := voice.NewRestAssistantClient(
		config.AppConfig.VapiBaseURL,
		config.AppConfig.VapiPublicKey,
	)
	voiceManager := voice.NewManager(
		assistantClient,
		prefsService,
		config.AppConfig.VapiPublicKey,
		config.AppConfig.VapiAssistantID,
	)

	mapsClient := route.NewMapsClient(config.AppConfig.GoogleAPIKey)
	plannerService := route.NewPlannerService(mapsClient)

	geminiClient, err := itinerary.NewGeminiClient(config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
	}
	ctxStore := itinerary.NewRedisContextStore(utils.GetItineraryCacheClient(), 24*time.Hour)
	itineraryService := itinerary.NewItineraryService(geminiClient, ctxStore)

	notificationService := notification.NewDefaultNotificationService()
	reminderScheduler := tasks.NewAsynqScheduler()
	agentClient := reservation.NewRestAgentClient(config.AppConfig.ReservationAgentURL)
	reservationService := reservation.NewReservationService(
		agentClient,
		prefsService,
		notificationService,
		reminderScheduler,
	)

	// Background reminder worker.
	cron.InitReminderWorker(notificationService)

	// Assemble the handler bundle and register routes.
	handlerBundle := handlers.NewHandlerBundle(
		utils.AuthClient,
		prefsService,
		voiceManager,
		plannerService,
		itineraryService,
		reservationService,
	)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	_ = reminderScheduler.Close()

	logger.Sugar().Info("main: server stopped gracefully")
}
