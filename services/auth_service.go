package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"kpimanager/auth"
	"kpimanager/models"
	"kpimanager/rbac"
	repository "kpimanager/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.LoginResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}

type authService struct {
	users     repository.UserRepository
	jwtSecret string
}

func NewAuthService(users repository.UserRepository, jwtSecret string) AuthService {
	return &authService{
		users:     users,
		jwtSecret: jwtSecret,
	}
}

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.LoginResponse, error) {
	role := req.Role
	if role == "" {
		role = string(rbac.RoleStaff)
	}
	if _, err := rbac.ParseRole(role); err != nil {
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
		Role:      role,
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

	slog.Info("user registered", "user_id", user.ID.Hex(), "role", user.Role)

	return s.tokenResponse(user, "User registered successfully")
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	slog.Info("user logged in", "user_id", user.ID.Hex(), "role", user.Role)

	return s.tokenResponse(user, "Login successful")
}

func (s *authService) tokenResponse(user *models.User, message string) (*models.LoginResponse, error) {
	claims := auth.Claims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Role:   user.Role,
	}
	if user.Department != nil {
		claims.Department = user.Department.Hex()
	}

	accessToken, refreshToken, err := auth.GenerateTokenPair(claims, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Message:      message,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
