package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationKPIOverdue   NotificationType = "KPI_OVERDUE"
	NotificationKPIThreshold NotificationType = "KPI_THRESHOLD"
	NotificationKPICompleted NotificationType = "KPI_COMPLETED"
	NotificationSystem       NotificationType = "SYSTEM"
	NotificationAssignment   NotificationType = "ASSIGNMENT"
)

type Notification struct {
	ID         primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Type       NotificationType    `json:"type" bson:"type"`
	Title      string              `json:"title" bson:"title"`
	Message    string              `json:"message" bson:"message"`
	UserID     primitive.ObjectID  `json:"user_id" bson:"user_id"`
	RelatedKPI *primitive.ObjectID `json:"related_kpi,omitempty" bson:"related_kpi,omitempty"`
	IsRead     bool                `json:"is_read" bson:"is_read"`
	Priority   KPIPriority         `json:"priority" bson:"priority"`
	ActionURL  string              `json:"action_url,omitempty" bson:"action_url,omitempty"`
	CreatedAt  time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at" bson:"updated_at"`
}
