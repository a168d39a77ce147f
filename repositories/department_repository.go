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

type DepartmentRepository interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Department, error)
	GetByName(ctx context.Context, name string) (*models.Department, error)
	GetAll(ctx context.Context) ([]models.Department, error)
	Update(ctx context.Context, id primitive.ObjectID, department *models.Department) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

type departmentRepository struct {
	collection *mongo.Collection
}

func NewDepartmentRepository(db *mongo.Database) DepartmentRepository {
	return &departmentRepository{
		collection: db.Collection("departments"),
	}
}

func (r *departmentRepository) Create(ctx context.Context, department *models.Department) error {
	department.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, department)
	return err
}

func (r *departmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Department, error) {
	var department models.Department
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&department)
	if err != nil {
		return nil, err
	}

	return &department, nil
}

func (r *departmentRepository) GetByName(ctx context.Context, name string) (*models.Department, error) {
	var department models.Department
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&department)
	if err != nil {
		return nil, err
	}

	return &department, nil
}

func (r *departmentRepository) GetAll(ctx context.Context) ([]models.Department, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var departments []models.Department
	if err = cursor.All(ctx, &departments); err != nil {
		return nil, err
	}

	return departments, nil
}

func (r *departmentRepository) Update(ctx context.Context, id primitive.ObjectID, department *models.Department) error {
	department.UpdatedAt = time.Now()

	filter := bson.M{"_id": id}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": department})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no department found with id %s", id.Hex())
	}

	return nil
}

func (r *departmentRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
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
		return fmt.Errorf("no department found with id %s or already deactivated", id.Hex())
	}

	return nil
}
