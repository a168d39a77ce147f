package services

import (
	"context"
	"errors"
	"time"

	"kpimanager/models"
	"kpimanager/rbac"
	repository "kpimanager/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	GetUsers(ctx context.Context, actor rbac.Actor) ([]models.User, error)
	GetUserByID(ctx context.Context, actor rbac.Actor, id primitive.ObjectID) (*models.User, error)
	CreateUser(ctx context.Context, actor rbac.Actor, req *models.CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, actor rbac.Actor, id primitive.ObjectID, req *models.UpdateUserRequest) (*models.User, error)
	DeactivateUser(ctx context.Context, actor rbac.Actor, id primitive.ObjectID) error
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) GetUsers(ctx context.Context, actor rbac.Actor) ([]models.User, error) {
	if err := rbac.Authorize(actor, rbac.PermUserRead); err != nil {
		return nil, err
	}

	var filter repository.UserFilter
	// Managers see only their own department's users.
	if actor.Role == rbac.RoleManager && actor.Department != "" {
		departmentID, err := primitive.ObjectIDFromHex(actor.Department)
		if err != nil {
			return nil, err
		}
		filter.DepartmentID = &departmentID
	}

	return s.users.GetAll(ctx, filter)
}

func (s *userService) GetUserByID(ctx context.Context, actor rbac.Actor, id primitive.ObjectID) (*models.User, error) {
	// Every user may read their own record; anyone else needs user:read.
	if actor.ID != id.Hex() {
		if err := rbac.Authorize(actor, rbac.PermUserRead); err != nil {
			return nil, err
		}
	}

	return s.users.GetByID(ctx, id)
}

func (s *userService) CreateUser(ctx context.Context, actor rbac.Actor, req *models.CreateUserRequest) (*models.User, error) {
	if err := rbac.Authorize(actor, rbac.PermUserCreate); err != nil {
		return nil, err
	}

	if _, err := rbac.ParseRole(req.Role); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Email:     req.Email,
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Phone:     req.Phone,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.DepartmentID != "" {
		departmentID, err := primitive.ObjectIDFromHex(req.DepartmentID)
		if err != nil {
			return nil, err
		}
		user.Department = &departmentID
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, actor rbac.Actor, id primitive.ObjectID, req *models.UpdateUserRequest) (*models.User, error) {
	if err := rbac.Authorize(actor, rbac.PermUserUpdate); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Role != "" {
		// Role changes are an Admin concern even though Managers hold
		// user:update for profile edits.
		if err := rbac.Authorize(actor, rbac.PermSystemAdmin); err != nil {
			return nil, err
		}
		if _, err := rbac.ParseRole(req.Role); err != nil {
			return nil, err
		}
		user.Role = req.Role
	}
	if req.DepartmentID != "" {
		departmentID, err := primitive.ObjectIDFromHex(req.DepartmentID)
		if err != nil {
			return nil, err
		}
		user.Department = &departmentID
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	if err := s.users.Update(ctx, id, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) DeactivateUser(ctx context.Context, actor rbac.Actor, id primitive.ObjectID) error {
	if err := rbac.Authorize(actor, rbac.PermUserDelete); err != nil {
		return err
	}

	return s.users.SoftDelete(ctx, id)
}
