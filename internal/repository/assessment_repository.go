package repository

import (
	"context"
	"errors"
	"time"

	"hexaboard-service/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AssessmentRepository struct {
	Col      *mongo.Collection
	Attempts *mongo.Collection
}

func NewAssessmentRepository(db *mongo.Database) *AssessmentRepository {
	return &AssessmentRepository{
		Col:      db.Collection("assessments"),
		Attempts: db.Collection("assessment_attempts"),
	}
}

func (r *AssessmentRepository) FindByCourse(ctx context.Context, courseID string) (*models.Assessment, error) {
	var assessment models.Assessment
	err := r.Col.FindOne(ctx, bson.M{"course_id": courseID}).Decode(&assessment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *AssessmentRepository) FindAll(ctx context.Context) ([]models.Assessment, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var assessments []models.Assessment
	if err := cur.All(ctx, &assessments); err != nil {
		return nil, err
	}
	return assessments, nil
}

func (r *AssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	if assessment.ID == "" {
		assessment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	assessment.CreatedAt = now
	assessment.UpdatedAt = now
	_, err := r.Col.InsertOne(ctx, assessment)
	return err
}

func (r *AssessmentRepository) CreateAttempt(ctx context.Context, attempt *models.AssessmentAttempt) error {
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	attempt.CreatedAt = time.Now().UTC()
	_, err := r.Attempts.InsertOne(ctx, attempt)
	return err
}

func (r *AssessmentRepository) FindAttempt(ctx context.Context, attemptID string) (*models.AssessmentAttempt, error) {
	var attempt models.AssessmentAttempt
	err := r.Attempts.FindOne(ctx, bson.M{"_id": attemptID}).Decode(&attempt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AssessmentRepository) CompleteAttempt(ctx context.Context, attemptID string, score float64, completedAt time.Time) error {
	res, err := r.Attempts.UpdateOne(ctx, bson.M{"_id": attemptID}, bson.M{"$set": bson.M{
		"score":        score,
		"completed_at": completedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
