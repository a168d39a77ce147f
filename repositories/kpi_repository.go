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

type KPIRepository interface {
	Create(ctx context.Context, kpi *models.KPI) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.KPI, error)
	GetAll(ctx context.Context, filter models.KPIFilter) ([]models.KPI, int64, error)
	Find(ctx context.Context, query bson.M) ([]models.KPI, error)
	Update(ctx context.Context, id primitive.ObjectID, kpi *models.KPI) error
	// AppendProgress pushes one history entry and sets the recomputed value,
	// status, and timestamp in a single document update, so concurrent
	// writers can never leave a partial history entry behind.
	AppendProgress(ctx context.Context, id primitive.ObjectID, entry models.ProgressEntry, currentValue float64, status models.KPIStatus) error
	Assign(ctx context.Context, id primitive.ObjectID, assignee primitive.ObjectID) error
	SoftDelete(ctx context.Context, id primitive.ObjectID, updatedBy primitive.ObjectID) error
	CountByStatus(ctx context.Context, status models.KPIStatus) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	ValueTotals(ctx context.Context) (currentTotal, targetTotal float64, err error)
	PerformanceStats(ctx context.Context) ([]bson.M, error)
	GetClient() *mongo.Client
}

type kpiRepository struct {
	collection *mongo.Collection
}

func NewKPIRepository(db *mongo.Database) KPIRepository {
	return &kpiRepository{
		collection: db.Collection("kpis"),
	}
}

func (r *kpiRepository) Create(ctx context.Context, kpi *models.KPI) error {
	kpi.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, kpi)
	return err
}

func (r *kpiRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.KPI, error) {
	var kpi models.KPI
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&kpi)
	if err != nil {
		return nil, err
	}

	return &kpi, nil
}

func buildKPIQuery(filter models.KPIFilter) (bson.M, error) {
	query := bson.M{"is_active": true}

	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	if filter.DepartmentID != "" {
		departmentID, err := primitive.ObjectIDFromHex(filter.DepartmentID)
		if err != nil {
			return nil, fmt.Errorf("invalid department id %q", filter.DepartmentID)
		}
		query["department_id"] = departmentID
	}
	if filter.AssignedTo != "" {
		assignedTo, err := primitive.ObjectIDFromHex(filter.AssignedTo)
		if err != nil {
			return nil, fmt.Errorf("invalid assignee id %q", filter.AssignedTo)
		}
		query["assigned_to"] = assignedTo
	}

	return query, nil
}

func (r *kpiRepository) GetAll(ctx context.Context, filter models.KPIFilter) ([]models.KPI, int64, error) {
	query, err := buildKPIQuery(filter)
	if err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	totalCount, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var kpis []models.KPI
	if err = cursor.All(ctx, &kpis); err != nil {
		return nil, 0, err
	}

	return kpis, totalCount, nil
}

func (r *kpiRepository) Find(ctx context.Context, query bson.M) ([]models.KPI, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var kpis []models.KPI
	if err = cursor.All(ctx, &kpis); err != nil {
		return nil, err
	}

	return kpis, nil
}

func (r *kpiRepository) Update(ctx context.Context, id primitive.ObjectID, kpi *models.KPI) error {
	filter := bson.M{"_id": id}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": kpi})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no KPI found with id %s", id.Hex())
	}

	return nil
}

func (r *kpiRepository) AppendProgress(ctx context.Context, id primitive.ObjectID, entry models.ProgressEntry, currentValue float64, status models.KPIStatus) error {
	filter := bson.M{"_id": id, "is_active": true}
	update := bson.M{
		"$push": bson.M{
			"history": entry,
		},
		"$set": bson.M{
			"current_value": currentValue,
			"status":        status,
			"updated_at":    entry.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no KPI found with id %s", id.Hex())
	}

	return nil
}

func (r *kpiRepository) Assign(ctx context.Context, id primitive.ObjectID, assignee primitive.ObjectID) error {
	filter := bson.M{"_id": id, "is_active": true}
	update := bson.M{
		"$set": bson.M{
			"assigned_to": assignee,
			"updated_at":  time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no KPI found with id %s", id.Hex())
	}

	return nil
}

func (r *kpiRepository) SoftDelete(ctx context.Context, id primitive.ObjectID, updatedBy primitive.ObjectID) error {
	update := bson.M{
		"$set": bson.M{
			"is_active":  false,
			"updated_at": time.Now(),
		},
	}

	filter := bson.M{"_id": id, "is_active": true}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no KPI found with id %s or already deactivated", id.Hex())
	}

	return nil
}

func (r *kpiRepository) CountByStatus(ctx context.Context, status models.KPIStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"is_active": true, "status": status})
}

func (r *kpiRepository) CountActive(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"is_active": true})
}

func (r *kpiRepository) ValueTotals(ctx context.Context) (float64, float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"is_active": true}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"current_total": bson.M{"$sum": "$current_value"},
			"target_total":  bson.M{"$sum": "$target_value"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		CurrentTotal float64 `bson:"current_total"`
		TargetTotal  float64 `bson:"target_total"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, nil
	}

	return results[0].CurrentTotal, results[0].TargetTotal, nil
}

// PerformanceStats groups active KPIs by status with average completion and
// average days until deadline per group.
func (r *kpiRepository) PerformanceStats(ctx context.Context) ([]bson.M, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"is_active": true}}},

		bson.D{{Key: "$addFields", Value: bson.M{
			"completion_percentage": bson.M{
				"$cond": bson.M{
					"if":   bson.M{"$gt": []interface{}{"$target_value", 0}},
					"then": bson.M{"$min": []interface{}{bson.M{"$multiply": []interface{}{bson.M{"$divide": []interface{}{"$current_value", "$target_value"}}, 100}}, 100}},
					"else": 0,
				},
			},
			"days_until_deadline": bson.M{
				"$divide": []interface{}{
					bson.M{"$subtract": []interface{}{"$deadline", "$$NOW"}},
					1000 * 60 * 60 * 24,
				},
			},
			"update_count": bson.M{
				"$cond": bson.M{
					"if":   bson.M{"$isArray": "$history"},
					"then": bson.M{"$size": "$history"},
					"else": 0,
				},
			},
		}}},

		bson.D{{Key: "$group", Value: bson.M{
			"_id":                     "$status",
			"count":                   bson.M{"$sum": 1},
			"avg_completion":          bson.M{"$avg": "$completion_percentage"},
			"total_updates":           bson.M{"$sum": "$update_count"},
			"avg_days_until_deadline": bson.M{"$avg": "$days_until_deadline"},
		}}},

		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}

func (r *kpiRepository) GetClient() *mongo.Client {
	return r.collection.Database().Client()
}
