package services

import (
	"context"

	"kpimanager/models"
	"kpimanager/rbac"
	repository "kpimanager/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DepartmentService interface {
	GetDepartments(ctx context.Context) ([]models.Department, error)
	GetDepartmentByID(ctx context.Context, id primitive.ObjectID) (*models.Department, error)
	CreateDepartment(ctx context.Context, actor rbac.Actor, req *models.CreateDepartmentRequest) (*models.Department, error)
	UpdateDepartment(ctx context.Context, actor rbac.Actor, id primitive.ObjectID, req *models.UpdateDepartmentRequest) (*models.Department, error)
	DeactivateDepartment(ctx context.Context, actor rbac.Actor, id primitive.ObjectID) error
}

type departmentService struct {
	departments repository.DepartmentRepository
}

func NewDepartmentService(departments repository.DepartmentRepository) DepartmentService {
	return &departmentService{departments: departments}
}

// GetDepartments is open to any authenticated user: the department list
// backs assignment dropdowns for all roles.
func (s *departmentService) GetDepartments(ctx context.Context) ([]models.Department, error) {
	return s.departments.GetAll(ctx)
}

func (s *departmentService) GetDepartmentByID(ctx context.Context, id primitive.ObjectID) (*models.Department, error) {
	return s.departments.GetByID(ctx, id)
}

func (s *departmentService) CreateDepartment(ctx context.Context, actor rbac.Actor, req *models.CreateDepartmentRequest) (*models.Department, error) {
	if err := rbac.Authorize(actor, rbac.PermDepartmentCreate); err != nil {
		return nil, err
	}

	managerID, err := primitive.ObjectIDFromHex(req.ManagerID)
	if err != nil {
		return nil, err
	}

	color := req.Color
	if color == "" {
		color = models.DefaultDepartmentColor
	}

	now := timeNow()
	department := &models.Department{
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   managerID,
		IsActive:    true,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.departments.Create(ctx, department); err != nil {
		return nil, err
	}

	return department, nil
}

func (s *departmentService) UpdateDepartment(ctx context.Context, actor rbac.Actor, id primitive.ObjectID, req *models.UpdateDepartmentRequest) (*models.Department, error) {
	if err := rbac.Authorize(actor, rbac.PermDepartmentUpdate); err != nil {
		return nil, err
	}

	department, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		department.Name = req.Name
	}
	if req.Description != "" {
		department.Description = req.Description
	}
	if req.ManagerID != "" {
		managerID, err := primitive.ObjectIDFromHex(req.ManagerID)
		if err != nil {
			return nil, err
		}
		department.ManagerID = managerID
	}
	if req.Color != "" {
		department.Color = req.Color
	}

	if err := s.departments.Update(ctx, id, department); err != nil {
		return nil, err
	}

	return department, nil
}

func (s *departmentService) DeactivateDepartment(ctx context.Context, actor rbac.Actor, id primitive.ObjectID) error {
	if err := rbac.Authorize(actor, rbac.PermDepartmentDelete); err != nil {
		return err
	}

	return s.departments.SoftDelete(ctx, id)
}
