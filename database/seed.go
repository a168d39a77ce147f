package database

import (
	"context"
	"fmt"
	"time"

	"kpimanager/models"
	"kpimanager/rbac"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Seed wipes the database and loads a demo data set: one admin, three
// departments, a manager and staff per the original demo accounts, and a
// handful of KPIs in different lifecycle states. Development use only.
func Seed(ctx context.Context, db *mongo.Database) error {
	for _, name := range []string{"users", "departments", "kpis", "notifications", "scheduled_reports"} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			return fmt.Errorf("failed to clear %s: %v", name, err)
		}
	}

	now := time.Now()

	hash := func(password string) (string, error) {
		h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
		return string(h), err
	}

	adminPassword, err := hash("admin123")
	if err != nil {
		return err
	}
	admin := models.User{
		ID:        primitive.NewObjectID(),
		Email:     "admin@kpimanager.com",
		Password:  adminPassword,
		FirstName: "System",
		LastName:  "Admin",
		Role:      string(rbac.RoleAdmin),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.Collection("users").InsertOne(ctx, admin); err != nil {
		return err
	}

	departments := []models.Department{
		{ID: primitive.NewObjectID(), Name: "Sales", Description: "Sales and Business Development", ManagerID: admin.ID, IsActive: true, Color: "#3B82F6", CreatedAt: now, UpdatedAt: now},
		{ID: primitive.NewObjectID(), Name: "Marketing", Description: "Marketing and Customer Acquisition", ManagerID: admin.ID, IsActive: true, Color: "#10B981", CreatedAt: now, UpdatedAt: now},
		{ID: primitive.NewObjectID(), Name: "Operations", Description: "Operations and Process Management", ManagerID: admin.ID, IsActive: true, Color: "#F59E0B", CreatedAt: now, UpdatedAt: now},
	}
	for _, d := range departments {
		if _, err := db.Collection("departments").InsertOne(ctx, d); err != nil {
			return err
		}
	}
	sales := departments[0]

	managerPassword, err := hash("manager123")
	if err != nil {
		return err
	}
	manager := models.User{
		ID:         primitive.NewObjectID(),
		Email:      "manager@kpimanager.com",
		Password:   managerPassword,
		FirstName:  "John",
		LastName:   "Smith",
		Role:       string(rbac.RoleManager),
		Department: &sales.ID,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := db.Collection("users").InsertOne(ctx, manager); err != nil {
		return err
	}

	staffPassword, err := hash("staff123")
	if err != nil {
		return err
	}
	staff := models.User{
		ID:         primitive.NewObjectID(),
		Email:      "staff@kpimanager.com",
		Password:   staffPassword,
		FirstName:  "Sarah",
		LastName:   "Johnson",
		Role:       string(rbac.RoleStaff),
		Department: &sales.ID,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := db.Collection("users").InsertOne(ctx, staff); err != nil {
		return err
	}

	kpis := []models.KPI{
		{
			ID:           primitive.NewObjectID(),
			Title:        "Quarterly Revenue",
			Description:  "Total closed revenue for the quarter",
			TargetValue:  500000,
			CurrentValue: 120000,
			Unit:         "USD",
			Deadline:     now.AddDate(0, 2, 0),
			Priority:     models.PriorityHigh,
			Status:       models.StatusInProgress,
			AssignedTo:   staff.ID,
			DepartmentID: sales.ID,
			CreatedBy:    manager.ID,
			Category:     "Revenue",
			IsActive:     true,
			History: []models.ProgressEntry{
				{Value: 120000, Comment: "First month closed", UpdatedBy: staff.ID, UpdatedAt: now},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:           primitive.NewObjectID(),
			Title:        "New Customer Accounts",
			Description:  "Net new accounts signed",
			TargetValue:  40,
			CurrentValue: 0,
			Unit:         "accounts",
			Deadline:     now.AddDate(0, 3, 0),
			Priority:     models.PriorityMedium,
			Status:       models.StatusNotStarted,
			AssignedTo:   staff.ID,
			DepartmentID: sales.ID,
			CreatedBy:    manager.ID,
			Category:     "Growth",
			IsActive:     true,
			History:      []models.ProgressEntry{},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           primitive.NewObjectID(),
			Title:        "Lead Response Time",
			Description:  "Leads contacted within 24 hours",
			TargetValue:  95,
			CurrentValue: 97,
			Unit:         "%",
			Deadline:     now.AddDate(0, -1, 0),
			Priority:     models.PriorityCritical,
			Status:       models.StatusCompleted,
			AssignedTo:   manager.ID,
			DepartmentID: sales.ID,
			CreatedBy:    admin.ID,
			Category:     "Service",
			IsActive:     true,
			History: []models.ProgressEntry{
				{Value: 80, UpdatedBy: manager.ID, UpdatedAt: now.AddDate(0, -2, 0)},
				{Value: 97, Comment: "Process change landed", UpdatedBy: manager.ID, UpdatedAt: now.AddDate(0, -1, -5)},
			},
			CreatedAt: now.AddDate(0, -3, 0),
			UpdatedAt: now,
		},
	}
	for _, k := range kpis {
		if _, err := db.Collection("kpis").InsertOne(ctx, k); err != nil {
			return err
		}
	}

	fmt.Println("Seed data loaded successfully")
	return nil
}
