package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"loadtrack/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationLoadCreated      NotificationType = "LOAD_CREATED"
	NotificationPickupRecorded   NotificationType = "PICKUP_RECORDED"
	NotificationDeliveryRecorded NotificationType = "DELIVERY_RECORDED"
	NotificationMileageAlert     NotificationType = "MILEAGE_ALERT"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string // driver or dispatcher ID
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would have a push notification client
	// (FCM, APNS) and an SMS client for dispatcher escalation.
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyLoadCreated notifies the dispatcher that a driver booked a load.
func (s *NotificationService) NotifyLoadCreated(ctx context.Context, load *domain.Load) error {
	return s.send(ctx, Notification{
		Type:        NotificationLoadCreated,
		RecipientID: load.DispatchID,
		Title:       "Load Created",
		Message:     fmt.Sprintf("New load %s to %s, $%.2f", load.Origin, load.Destination, load.PayAmount),
		Data: map[string]interface{}{
			"load_id":   load.ID,
			"driver_id": load.DriverID,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyStageRecorded notifies the dispatcher of a stage transition.
func (s *NotificationService) NotifyStageRecorded(ctx context.Context, load *domain.Load, stage domain.ReadingStage) error {
	notifType := NotificationPickupRecorded
	title := "Pickup Recorded"
	if stage == domain.StageDelivery {
		notifType = NotificationDeliveryRecorded
		title = "Delivery Recorded"
	}

	return s.send(ctx, Notification{
		Type:        notifType,
		RecipientID: load.DispatchID,
		Title:       title,
		Message:     fmt.Sprintf("Load %s -> %s is now %s", load.Origin, load.Destination, load.Status),
		Data: map[string]interface{}{
			"load_id": load.ID,
			"stage":   stage,
			"status":  load.Status,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyMileageAlerts notifies the dispatcher about suspicious readings.
func (s *NotificationService) NotifyMileageAlerts(ctx context.Context, load *domain.Load) error {
	for _, alert := range load.MileageAlerts {
		err := s.send(ctx, Notification{
			Type:        NotificationMileageAlert,
			RecipientID: load.DispatchID,
			Title:       "Mileage Alert",
			Message:     alert.Message,
			Data: map[string]interface{}{
				"load_id":   load.ID,
				"type":      alert.Type,
				"severity":  alert.Severity,
				"value":     alert.Value,
				"threshold": alert.Threshold,
			},
			CreatedAt: time.Now(),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// send delivers a notification (mock implementation).
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		notification.Type, notification.RecipientID, notification.Title, notification.Message)
	return nil
}
