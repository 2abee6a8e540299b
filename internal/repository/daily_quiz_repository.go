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

type DailyQuizRepository struct {
	Col *mongo.Collection
}

func NewDailyQuizRepository(db *mongo.Database) *DailyQuizRepository {
	return &DailyQuizRepository{Col: db.Collection("daily_quizzes")}
}

func (r *DailyQuizRepository) Create(ctx context.Context, quiz *models.DailyQuiz) error {
	if quiz.ID == "" {
		quiz.ID = uuid.NewString()
	}
	quiz.CreatedAt = time.Now().UTC()
	_, err := r.Col.InsertOne(ctx, quiz)
	return err
}

func (r *DailyQuizRepository) FindByID(ctx context.Context, quizID string) (*models.DailyQuiz, error) {
	var quiz models.DailyQuiz
	err := r.Col.FindOne(ctx, bson.M{"_id": quizID}).Decode(&quiz)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// FindOpenForDate returns the unsubmitted quiz already generated for a
// user on a date, so a page reload serves the same questions.
func (r *DailyQuizRepository) FindOpenForDate(ctx context.Context, userID, date string) (*models.DailyQuiz, error) {
	var quiz models.DailyQuiz
	err := r.Col.FindOne(ctx, bson.M{"user_id": userID, "date": date, "submitted": false}).Decode(&quiz)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *DailyQuizRepository) MarkSubmitted(ctx context.Context, quizID string) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": quizID, "submitted": false}, bson.M{"$set": bson.M{"submitted": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrConflict
	}
	return nil
}
