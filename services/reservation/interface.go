package reservation

import (
	"context"

	"routed/models"
)

// AgentClient is the transport to the external reservation agent.
type AgentClient interface {
	SubmitBatch(ctx context.Context, req models.BatchReservationRequest) ([]models.ReservationResult, error)
}

// ReservationService submits batch reservation requests, records confirmed
// bookings, and triggers confirmation and reminder notifications per the
// user's preferences.
type ReservationService interface {
	SubmitBatch(ctx context.Context, userID string, req models.BatchReservationRequest) ([]models.ReservationResult, error)
}
