package services

import (
	"context"

	"kpimanager/models"
	"kpimanager/rbac"
	repository "kpimanager/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationService interface {
	GetNotifications(ctx context.Context, actor rbac.Actor, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, actor rbac.Actor, id primitive.ObjectID) error
	MarkAllRead(ctx context.Context, actor rbac.Actor) (int64, error)
}

type notificationService struct {
	notifications repository.NotificationRepository
}

func NewNotificationService(notifications repository.NotificationRepository) NotificationService {
	return &notificationService{notifications: notifications}
}

// Users always read and acknowledge their own notifications; no permission
// beyond authentication is involved.
func (s *notificationService) GetNotifications(ctx context.Context, actor rbac.Actor, unreadOnly bool) ([]models.Notification, error) {
	userID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, err
	}

	return s.notifications.GetForUser(ctx, userID, unreadOnly)
}

func (s *notificationService) MarkRead(ctx context.Context, actor rbac.Actor, id primitive.ObjectID) error {
	userID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return err
	}

	return s.notifications.MarkRead(ctx, id, userID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, actor rbac.Actor) (int64, error) {
	userID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return 0, err
	}

	return s.notifications.MarkAllRead(ctx, userID)
}
