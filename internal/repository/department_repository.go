package repository

import (
	"context"
	"errors"
	"time"

	"hexaboard-service/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DepartmentRepository struct {
	Col *mongo.Collection
}

func NewDepartmentRepository(db *mongo.Database) *DepartmentRepository {
	return &DepartmentRepository{Col: db.Collection("departments")}
}

func (r *DepartmentRepository) FindByID(ctx context.Context, id string) (*models.Department, error) {
	var dept models.Department
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&dept)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *DepartmentRepository) FindByName(ctx context.Context, name string) (*models.Department, error) {
	var dept models.Department
	err := r.Col.FindOne(ctx, bson.M{"name": name}).Decode(&dept)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *DepartmentRepository) FindAll(ctx context.Context) ([]models.Department, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var departments []models.Department
	if err := cur.All(ctx, &departments); err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *DepartmentRepository) Create(ctx context.Context, dept *models.Department) error {
	if dept.ID == "" {
		dept.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	dept.CreatedAt = now
	dept.UpdatedAt = now
	_, err := r.Col.InsertOne(ctx, dept)
	return err
}

// IncrementMembers adjusts the denormalized member counter. Decrements
// only match documents with a positive count, so the counter never goes
// below zero.
func (r *DepartmentRepository) IncrementMembers(ctx context.Context, id string, delta int) error {
	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["member_count"] = bson.M{"$gt": 0}
	}
	_, err := r.Col.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"member_count": delta},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// SetMemberCount overwrites the counter with a recomputed ground-truth
// value.
func (r *DepartmentRepository) SetMemberCount(ctx context.Context, id string, count int64) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"member_count": count,
		"updated_at":   time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
