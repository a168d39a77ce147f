package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func CreateIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Unique email lookup for login and duplicate checks.
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_email").SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "is_active", Value: 1},
				{Key: "department", Value: 1},
			},
			Options: options.Index().SetName("idx_is_active_department"),
		},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %v", err)
	}

	departmentIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("idx_name").SetUnique(true),
		},
	}
	if _, err := db.Collection("departments").Indexes().CreateMany(ctx, departmentIndexes); err != nil {
		return fmt.Errorf("failed to create department indexes: %v", err)
	}

	kpiIndexes := []mongo.IndexModel{
		// LISTING: role-scoped queries filter on these combinations.
		{
			Keys: bson.D{
				{Key: "is_active", Value: 1},
				{Key: "assigned_to", Value: 1},
			},
			Options: options.Index().SetName("idx_is_active_assigned_to"),
		},
		{
			Keys: bson.D{
				{Key: "is_active", Value: 1},
				{Key: "department_id", Value: 1},
			},
			Options: options.Index().SetName("idx_is_active_department_id"),
		},
		// DASHBOARD: status counts.
		{
			Keys: bson.D{
				{Key: "is_active", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().SetName("idx_is_active_status"),
		},
		// ANALYTICS: deadline math in the performance pipeline.
		{
			Keys: bson.D{
				{Key: "is_active", Value: 1},
				{Key: "deadline", Value: 1},
			},
			Options: options.Index().SetName("idx_is_active_deadline"),
		},
	}
	if _, err := db.Collection("kpis").Indexes().CreateMany(ctx, kpiIndexes); err != nil {
		return fmt.Errorf("failed to create KPI indexes: %v", err)
	}

	notificationIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_read", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_user_id_is_read_created_at"),
		},
	}
	if _, err := db.Collection("notifications").Indexes().CreateMany(ctx, notificationIndexes); err != nil {
		return fmt.Errorf("failed to create notification indexes: %v", err)
	}

	scheduleIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "is_active", Value: 1},
				{Key: "next_run", Value: 1},
			},
			Options: options.Index().SetName("idx_is_active_next_run"),
		},
	}
	if _, err := db.Collection("scheduled_reports").Indexes().CreateMany(ctx, scheduleIndexes); err != nil {
		return fmt.Errorf("failed to create scheduled report indexes: %v", err)
	}

	fmt.Println("Database indexes created successfully")
	return nil
}
