package repository

import (
	"context"
	"fmt"
	"time"

	"kpimanager/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ScheduledReportRepository interface {
	Create(ctx context.Context, report *models.ScheduledReport) error
	// GetAll returns every active schedule; GetForUser only one user's.
	GetAll(ctx context.Context) ([]models.ScheduledReport, error)
	GetForUser(ctx context.Context, userID primitive.ObjectID) ([]models.ScheduledReport, error)
	Deactivate(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error
}

type scheduledReportRepository struct {
	collection *mongo.Collection
}

func NewScheduledReportRepository(db *mongo.Database) ScheduledReportRepository {
	return &scheduledReportRepository{
		collection: db.Collection("scheduled_reports"),
	}
}

func (r *scheduledReportRepository) Create(ctx context.Context, report *models.ScheduledReport) error {
	report.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, report)
	return err
}

func (r *scheduledReportRepository) GetAll(ctx context.Context) ([]models.ScheduledReport, error) {
	return r.find(ctx, bson.M{"is_active": true})
}

func (r *scheduledReportRepository) GetForUser(ctx context.Context, userID primitive.ObjectID) ([]models.ScheduledReport, error) {
	return r.find(ctx, bson.M{"is_active": true, "user_id": userID})
}

func (r *scheduledReportRepository) find(ctx context.Context, query bson.M) ([]models.ScheduledReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "next_run", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []models.ScheduledReport
	if err = cursor.All(ctx, &reports); err != nil {
		return nil, err
	}

	return reports, nil
}

func (r *scheduledReportRepository) Deactivate(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error {
	filter := bson.M{"_id": id, "user_id": userID, "is_active": true}
	update := bson.M{
		"$set": bson.M{
			"is_active":  false,
			"updated_at": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no scheduled report found with id %s", id.Hex())
	}

	return nil
}
