package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultDepartmentColor = "#3B82F6"

type Department struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" validate:"required"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	ManagerID   primitive.ObjectID `json:"manager_id" bson:"manager_id"`
	IsActive    bool               `json:"is_active" bson:"is_active"`
	Color       string             `json:"color" bson:"color"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

type CreateDepartmentRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ManagerID   string `json:"manager_id" validate:"required"`
	Color       string `json:"color"`
}

type UpdateDepartmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ManagerID   string `json:"manager_id"`
	Color       string `json:"color"`
}
