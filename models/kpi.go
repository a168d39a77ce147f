package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KPIStatus is derived from progress and deadline, never set directly by
// callers. The wire values match the dashboard's display labels.
type KPIStatus string

const (
	StatusNotStarted KPIStatus = "Not Started"
	StatusInProgress KPIStatus = "In Progress"
	StatusCompleted  KPIStatus = "Completed"
	StatusOverdue    KPIStatus = "Overdue"
)

type KPIPriority string

const (
	PriorityLow      KPIPriority = "Low"
	PriorityMedium   KPIPriority = "Medium"
	PriorityHigh     KPIPriority = "High"
	PriorityCritical KPIPriority = "Critical"
)

func ValidPriority(p KPIPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ProgressEntry is a single progress update. History is append-only: entries
// are never edited, reordered, or removed.
type ProgressEntry struct {
	Value     float64            `json:"value" bson:"value"`
	Comment   string             `json:"comment,omitempty" bson:"comment,omitempty"`
	UpdatedBy primitive.ObjectID `json:"updated_by" bson:"updated_by"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

type KPI struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title        string             `json:"title" bson:"title" validate:"required"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	TargetValue  float64            `json:"target_value" bson:"target_value" validate:"gt=0"`
	CurrentValue float64            `json:"current_value" bson:"current_value" validate:"min=0"`
	Unit         string             `json:"unit" bson:"unit" validate:"required"`
	Deadline     time.Time          `json:"deadline" bson:"deadline" validate:"required"`
	Priority     KPIPriority        `json:"priority" bson:"priority"`
	Status       KPIStatus          `json:"status" bson:"status"`
	AssignedTo   primitive.ObjectID `json:"assigned_to" bson:"assigned_to"`
	DepartmentID primitive.ObjectID `json:"department_id" bson:"department_id"`
	CreatedBy    primitive.ObjectID `json:"created_by" bson:"created_by"`
	Category     string             `json:"category,omitempty" bson:"category,omitempty"`
	IsActive     bool               `json:"is_active" bson:"is_active"`
	History      []ProgressEntry    `json:"history" bson:"history"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`

	// CompletionPercentage is computed on read, never persisted.
	CompletionPercentage float64 `json:"completion_percentage" bson:"-"`
}

type CreateKPIRequest struct {
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description"`
	TargetValue  float64   `json:"target_value" validate:"gt=0"`
	CurrentValue float64   `json:"current_value" validate:"min=0"`
	Unit         string    `json:"unit" validate:"required"`
	Deadline     time.Time `json:"deadline" validate:"required"`
	Priority     string    `json:"priority"`
	AssignedTo   string    `json:"assigned_to" validate:"required"`
	DepartmentID string    `json:"department_id" validate:"required"`
	Category     string    `json:"category"`
}

type UpdateKPIRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TargetValue *float64   `json:"target_value" validate:"omitempty,gt=0"`
	Unit        string     `json:"unit"`
	Deadline    *time.Time `json:"deadline"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
}

type ProgressRequest struct {
	Value   float64 `json:"value" validate:"min=0"`
	Comment string  `json:"comment"`
}

type AssignKPIRequest struct {
	AssignedTo string `json:"assigned_to" validate:"required"`
}

// KPIFilter narrows KPI listings. Scope fields are set by the service layer
// from the actor's role, the rest come from query parameters.
type KPIFilter struct {
	Status       string
	Priority     string
	DepartmentID string
	AssignedTo   string
	Page         int
	Limit        int
}

type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalCount  int64 `json:"total_count"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

type KPIListResponse struct {
	KPIs       []KPI      `json:"kpis"`
	Pagination Pagination `json:"pagination"`
}
