package repository

import (
	"context"

	"hexaboard-service/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AttemptRepository holds the two append-only daily activity histories.
type AttemptRepository struct {
	Problems *mongo.Collection
	Quizzes  *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{
		Problems: db.Collection("daily_problems"),
		Quizzes:  db.Collection("quiz_history"),
	}
}

func (r *AttemptRepository) CreateProblemAttempt(ctx context.Context, attempt *models.ProblemAttempt) error {
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	_, err := r.Problems.InsertOne(ctx, attempt)
	return err
}

func (r *AttemptRepository) FindProblemAttemptsByUser(ctx context.Context, userID string) ([]models.ProblemAttempt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cur, err := r.Problems.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var attempts []models.ProblemAttempt
	if err := cur.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

// CountProblemAttemptsOnDate supports the once-per-day audit; the streak
// gate is what actually enforces it.
func (r *AttemptRepository) CountProblemAttemptsOnDate(ctx context.Context, userID, date string) (int64, error) {
	return r.Problems.CountDocuments(ctx, bson.M{"user_id": userID, "date": date})
}

func (r *AttemptRepository) CreateQuizAttempt(ctx context.Context, attempt *models.QuizAttempt) error {
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	_, err := r.Quizzes.InsertOne(ctx, attempt)
	return err
}

func (r *AttemptRepository) FindQuizAttemptsByUser(ctx context.Context, userID string) ([]models.QuizAttempt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.Quizzes.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var attempts []models.QuizAttempt
	if err := cur.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}
