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

type CourseRepository struct {
	Col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{Col: db.Collection("courses")}
}

func (r *CourseRepository) FindByID(ctx context.Context, userID, courseID string) (*models.Course, error) {
	var course models.Course
	err := r.Col.FindOne(ctx, bson.M{"_id": courseID, "user_id": userID}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindByUser(ctx context.Context, userID string) ([]models.Course, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var courses []models.Course
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now
	if course.EnrolledAt.IsZero() {
		course.EnrolledAt = now
	}
	if course.Status == "" {
		course.Status = models.CourseStatusActive
	}
	_, err := r.Col.InsertOne(ctx, course)
	return err
}

// UpdateProgress persists lecture position, progress percent and the
// completion flag in a single write.
func (r *CourseRepository) UpdateProgress(ctx context.Context, userID, courseID string, lectureIndex int, progress float64, completed bool) error {
	status := models.CourseStatusActive
	if completed {
		status = models.CourseStatusCompleted
	}
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": courseID, "user_id": userID},
		bson.M{"$set": bson.M{
			"current_lecture_index": lectureIndex,
			"progress":              progress,
			"completed":             completed,
			"status":                status,
			"updated_at":            time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, userID, courseID string) error {
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": courseID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
