package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID         primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Email      string              `json:"email" bson:"email" validate:"required,email"`
	Password   string              `json:"-" bson:"password"`
	FirstName  string              `json:"first_name" bson:"first_name" validate:"required"`
	LastName   string              `json:"last_name" bson:"last_name" validate:"required"`
	Role       string              `json:"role" bson:"role"`
	Department *primitive.ObjectID `json:"department,omitempty" bson:"department,omitempty"`
	IsActive   bool                `json:"is_active" bson:"is_active"`
	Avatar     string              `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Phone      string              `json:"phone,omitempty" bson:"phone,omitempty"`
	CreatedAt  time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at" bson:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	Role         string `json:"role"`
	DepartmentID string `json:"department_id"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

type CreateUserRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	Role         string `json:"role" validate:"required"`
	DepartmentID string `json:"department_id"`
	Phone        string `json:"phone"`
}

type UpdateUserRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         string `json:"role"`
	DepartmentID string `json:"department_id"`
	Avatar       string `json:"avatar"`
	Phone        string `json:"phone"`
}
