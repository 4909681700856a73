package handlers

import (
	"routed/services/itinerary"
	"routed/services/preferences"
	"routed/services/reservation"
	"routed/services/route"
	"routed/services/voice"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers and their service dependencies
// into one struct.
type HandlerBundle struct {
	AuthClient *auth.Client
	Voice      *voice.Manager

	// Preference endpoints
	GetPreferencesHandler        gin.HandlerFunc
	SavePreferencesHandler       gin.HandlerFunc
	UpdatePreferencesHandler     gin.HandlerFunc
	GetBookingHistoryHandler     gin.HandlerFunc
	AddBookingHandler            gin.HandlerFunc
	GetAssistantResponsesHandler gin.HandlerFunc
	PreferencesSummaryHandler    gin.HandlerFunc

	// Voice session endpoints
	AcquireSessionHandler gin.HandlerFunc
	StartCallHandler      gin.HandlerFunc
	EndCallHandler        gin.HandlerFunc
	CloseSessionHandler   gin.HandlerFunc
	VoiceEventHandler     gin.HandlerFunc

	// Route endpoints
	SearchPlaceHandler  gin.HandlerFunc
	SuggestStopsHandler gin.HandlerFunc

	// Itinerary endpoints
	GenerateItineraryHandler gin.HandlerFunc
	GetItineraryHandler      gin.HandlerFunc
	RegenerateStopHandler    gin.HandlerFunc
	RemoveStopHandler        gin.HandlerFunc

	// Reservation endpoints
	BatchReserveHandler gin.HandlerFunc
}

// NewHandlerBundle wires every handler against its service.
func NewHandlerBundle(
	authClient *auth.Client,
	prefsSvc preferences.PreferenceService,
	voiceMgr *voice.Manager,
	plannerSvc route.PlannerService,
	itinerarySvc itinerary.ItineraryService,
	reservationSvc reservation.ReservationService,
) *HandlerBundle {
	return &HandlerBundle{
		AuthClient: authClient,
		Voice:      voiceMgr,

		GetPreferencesHandler:        GetPreferencesHandler(prefsSvc),
		SavePreferencesHandler:       SavePreferencesHandler(prefsSvc),
		UpdatePreferencesHandler:     UpdatePreferencesHandler(prefsSvc),
		GetBookingHistoryHandler:     GetBookingHistoryHandler(prefsSvc),
		AddBookingHandler:            AddBookingHandler(prefsSvc),
		GetAssistantResponsesHandler: GetAssistantResponsesHandler(prefsSvc),
		PreferencesSummaryHandler:    PreferencesSummaryHandler(prefsSvc),

		AcquireSessionHandler: AcquireSessionHandler(voiceMgr),
		StartCallHandler:      StartCallHandler(voiceMgr),
		EndCallHandler:        EndCallHandler(voiceMgr),
		CloseSessionHandler:   CloseSessionHandler(voiceMgr),
		VoiceEventHandler:     VoiceEventHandler(voiceMgr),

		SearchPlaceHandler:  SearchPlaceHandler(plannerSvc),
		SuggestStopsHandler: SuggestStopsHandler(plannerSvc),

		GenerateItineraryHandler: GenerateItineraryHandler(itinerarySvc),
		GetItineraryHandler:      GetItineraryHandler(itinerarySvc),
		RegenerateStopHandler:    RegenerateStopHandler(itinerarySvc),
		RemoveStopHandler:        RemoveStopHandler(itinerarySvc),

		BatchReserveHandler: BatchReserveHandler(reservationSvc),
	}
}
