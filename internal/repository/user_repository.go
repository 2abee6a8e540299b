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

type UserRepository struct {
	Col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{Col: db.Collection("users")}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.Col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	_, err := r.Col.InsertOne(ctx, user)
	return err
}

func (r *UserRepository) ListFreshers(ctx context.Context) ([]models.User, error) {
	return r.list(ctx, bson.M{"role": models.RoleFresher})
}

func (r *UserRepository) ListByDepartment(ctx context.Context, departmentID string) ([]models.User, error) {
	return r.list(ctx, bson.M{"role": models.RoleFresher, "department_id": departmentID})
}

func (r *UserRepository) CountByDepartment(ctx context.Context, departmentID string) (int64, error) {
	return r.Col.CountDocuments(ctx, bson.M{"department_id": departmentID})
}

func (r *UserRepository) list(ctx context.Context, filter bson.M) ([]models.User, error) {
	cur, err := r.Col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetDepartment updates the user's department reference ("" clears it).
func (r *UserRepository) SetDepartment(ctx context.Context, userID, departmentID string) error {
	update := bson.M{"$set": bson.M{"updated_at": time.Now().UTC()}}
	if departmentID == "" {
		update["$unset"] = bson.M{"department_id": ""}
	} else {
		update["$set"].(bson.M)["department_id"] = departmentID
	}
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) IncrementCompletedCourses(ctx context.Context, userID string) error {
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$inc": bson.M{"completed_courses_count": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// CompareAndSetProblemStreak records a daily-problem submission: it sets
// the new streak and last-attempt timestamp only if the stored timestamp
// still matches what the caller observed. A concurrent submission from
// another session changes the timestamp first and this call returns
// ErrConflict instead of double-counting the streak.
func (r *UserRepository) CompareAndSetProblemStreak(ctx context.Context, userID string, observed *time.Time, now time.Time, newStreak int) error {
	return r.compareAndSetStreak(ctx, userID, "last_daily_problem", "problem_streak", observed, now, newStreak)
}

// CompareAndSetQuizStreak is the quiz-side counterpart of
// CompareAndSetProblemStreak.
func (r *UserRepository) CompareAndSetQuizStreak(ctx context.Context, userID string, observed *time.Time, now time.Time, newStreak int) error {
	return r.compareAndSetStreak(ctx, userID, "last_daily_quiz", "quiz_streak", observed, now, newStreak)
}

func (r *UserRepository) compareAndSetStreak(ctx context.Context, userID, lastField, streakField string, observed *time.Time, now time.Time, newStreak int) error {
	filter := bson.M{"_id": userID}
	if observed != nil {
		filter[lastField] = *observed
	} else {
		filter[lastField] = bson.M{"$exists": false}
	}
	res, err := r.Col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		lastField:    now,
		streakField:  newStreak,
		"updated_at": now,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrConflict
	}
	return nil
}
