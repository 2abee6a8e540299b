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

type AssignmentRepository struct {
	Col *mongo.Collection
}

func NewAssignmentRepository(db *mongo.Database) *AssignmentRepository {
	return &AssignmentRepository{Col: db.Collection("assignments")}
}

func (r *AssignmentRepository) FindByUser(ctx context.Context, userID string) ([]models.Assignment, error) {
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var assignments []models.Assignment
	if err := cur.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *AssignmentRepository) FindByCourse(ctx context.Context, userID, courseID string) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.Col.FindOne(ctx, bson.M{"user_id": userID, "course_id": courseID}).Decode(&assignment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// CreatePending inserts a pending assignment for a finished course.
// Callers check for an existing assignment first; completion writes go
// through CompleteForCourse instead.
func (r *AssignmentRepository) CreatePending(ctx context.Context, assignment *models.Assignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	assignment.Status = models.AssignmentStatusPending
	assignment.CreatedAt = time.Now().UTC()
	_, err := r.Col.InsertOne(ctx, assignment)
	return err
}

// CompleteForCourse upserts the single assignment for (user, course) into
// the completed state. The upsert keyed on the pair is what guarantees
// that any number of re-submissions leaves exactly one assignment
// document carrying the most recent marks.
func (r *AssignmentRepository) CompleteForCourse(ctx context.Context, userID, courseID, courseTitle, assessmentID string, marks float64, completedAt time.Time) error {
	filter := bson.M{"user_id": userID, "course_id": courseID}
	update := bson.M{
		"$set": bson.M{
			"status":        models.AssignmentStatusCompleted,
			"marks":         marks,
			"completed_at":  completedAt,
			"course_title":  courseTitle,
			"assessment_id": assessmentID,
		},
		"$setOnInsert": bson.M{
			"_id":        uuid.NewString(),
			"user_id":    userID,
			"course_id":  courseID,
			"created_at": completedAt,
		},
	}
	_, err := r.Col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
