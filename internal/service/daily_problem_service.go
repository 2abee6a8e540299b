package service

import (
	"context"
	"errors"
	"log"
	"time"

	"hexaboard-service/internal/event"
	"hexaboard-service/internal/gemini"
	"hexaboard-service/internal/models"
	"hexaboard-service/internal/repository"
	"hexaboard-service/internal/streak"
)

type DailyProblemService struct {
	Users     *repository.UserRepository
	Attempts  *repository.AttemptRepository
	Gemini    *gemini.Client
	Publisher *event.Publisher
}

func NewDailyProblemService(users *repository.UserRepository, attempts *repository.AttemptRepository, client *gemini.Client, publisher *event.Publisher) *DailyProblemService {
	return &DailyProblemService{Users: users, Attempts: attempts, Gemini: client, Publisher: publisher}
}

type DailyProblemStatus struct {
	Available bool   `json:"available"`
	Streak    int    `json:"streak"`
	Question  string `json:"question,omitempty"`
}

type DailyProblemResult struct {
	Correct     bool   `json:"correct"`
	SyntaxError bool   `json:"syntax_error"`
	Feedback    string `json:"feedback"`
	Streak      int    `json:"streak"`
}

// Today returns the user's gate state for the daily problem, generating a
// challenge only when the gate is open.
func (s *DailyProblemService) Today(ctx context.Context, userID string) (*DailyProblemStatus, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	available, current := streak.Gate(user.LastDailyProblem, user.ProblemStreak, time.Now().UTC())
	status := &DailyProblemStatus{Available: available, Streak: current}
	if available {
		status.Question = s.Gemini.GenerateCodingChallenge(ctx)
	}
	return status, nil
}

// Submit evaluates a solution and, only when it passes, advances the
// streak. The streak write is conditional on the last-attempt timestamp
// the caller observed; losing that race means another submission landed
// first and this one reports "already submitted" instead of counting twice.
func (s *DailyProblemService) Submit(ctx context.Context, userID, question, code string) (*DailyProblemResult, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if available, _ := streak.Gate(user.LastDailyProblem, user.ProblemStreak, now); !available {
		return nil, ErrAlreadySubmitted
	}

	eval := s.Gemini.EvaluateCode(ctx, question, code)
	if eval.Verdict != gemini.VerdictCorrect {
		return &DailyProblemResult{
			Correct:     false,
			SyntaxError: eval.Verdict == gemini.VerdictSyntaxError,
			Feedback:    eval.Feedback,
			Streak:      user.ProblemStreak,
		}, nil
	}

	newStreak := streak.Next(user.LastDailyProblem, user.ProblemStreak, now)
	err = s.Users.CompareAndSetProblemStreak(ctx, userID, user.LastDailyProblem, now, newStreak)
	if errors.Is(err, repository.ErrConflict) {
		return nil, ErrAlreadySubmitted
	}
	if err != nil {
		return nil, err
	}

	attempt := &models.ProblemAttempt{
		UserID:    userID,
		Question:  question,
		Code:      code,
		Date:      streak.DateKey(now),
		Timestamp: now,
	}
	if err := s.Attempts.CreateProblemAttempt(ctx, attempt); err != nil {
		log.Printf("Failed to record problem attempt for user %s: %v", userID, err)
	}

	if s.Publisher != nil {
		s.Publisher.Publish(event.DailyProblemSolved, map[string]interface{}{
			"user_id": userID,
			"date":    attempt.Date,
			"streak":  newStreak,
		})
	}

	return &DailyProblemResult{Correct: true, Feedback: eval.Feedback, Streak: newStreak}, nil
}

// History lists the user's solved daily problems, newest first.
func (s *DailyProblemService) History(ctx context.Context, userID string) ([]models.ProblemAttempt, error) {
	return s.Attempts.FindProblemAttemptsByUser(ctx, userID)
}
