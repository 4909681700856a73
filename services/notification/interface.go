package notification

import (
	"context"
	"fmt"

	"routed/utils"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
	NotifyReservationConfirmed(ctx context.Context, userID, restaurantName, confirmation string) error
}

// DefaultNotificationService delivers pushes over per-user FCM topics, so
// devices subscribe by user id instead of the server tracking tokens.
type DefaultNotificationService struct{}

func NewDefaultNotificationService() *DefaultNotificationService {
	return &DefaultNotificationService{}
}

func userTopic(userID string) string {
	return "user-" + userID
}

// SendUserPushNotification publishes to the user's topic.
func (s *DefaultNotificationService) SendUserPushNotification(
	ctx context.Context,
	userID, title, body string,
	data map[string]string,
) error {
	if utils.FCMClient == nil {
		return fmt.Errorf("SendUserPushNotification: FCM client is not initialized")
	}
	if data == nil {
		data = map[string]string{}
	}

	msg := &messaging.Message{
		Topic: userTopic(userID),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendUserPushNotification: failed to send FCM message: %w", err)
	}
	return nil
}

// NotifyReservationConfirmed tells the user a table is locked in.
func (s *DefaultNotificationService) NotifyReservationConfirmed(
	ctx context.Context,
	userID, restaurantName, confirmation string,
) error {
	title := "Reservation confirmed"
	body := fmt.Sprintf("Your table at %s is booked.", restaurantName)
	if confirmation != "" {
		body = fmt.Sprintf("Your table at %s is booked. Confirmation %s.", restaurantName, confirmation)
	}
	return s.SendUserPushNotification(ctx, userID, title, body, map[string]string{
		"type":               "reservation_confirmed",
		"restaurantName":     restaurantName,
		"confirmationNumber": confirmation,
	})
}
