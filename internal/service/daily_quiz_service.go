package service

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"hexaboard-service/internal/event"
	"hexaboard-service/internal/gemini"
	"hexaboard-service/internal/models"
	"hexaboard-service/internal/repository"
	"hexaboard-service/internal/streak"
)

const dailyQuizSize = 5

type DailyQuizService struct {
	Users       *repository.UserRepository
	Quizzes     *repository.DailyQuizRepository
	Attempts    *repository.AttemptRepository
	Assessments *repository.AssessmentRepository
	Gemini      *gemini.Client
	Publisher   *event.Publisher
}

func NewDailyQuizService(users *repository.UserRepository, quizzes *repository.DailyQuizRepository, attempts *repository.AttemptRepository, assessments *repository.AssessmentRepository, client *gemini.Client, publisher *event.Publisher) *DailyQuizService {
	return &DailyQuizService{Users: users, Quizzes: quizzes, Attempts: attempts, Assessments: assessments, Gemini: client, Publisher: publisher}
}

type DailyQuizView struct {
	QuizID    string                     `json:"quiz_id,omitempty"`
	Available bool                       `json:"available"`
	Streak    int                        `json:"streak"`
	Questions []models.GeneratedQuestion `json:"questions,omitempty"`
}

type DailyQuizResult struct {
	Score          float64 `json:"score"`
	CorrectAnswers int     `json:"correct_answers"`
	QuestionsCount int     `json:"questions_count"`
	Streak         int     `json:"streak"`
}

// Today serves the user's quiz for the current UTC day. The sampled
// question set is persisted before it is served, so a reload returns the
// same questions and grading always runs against what was shown. Answers
// are stripped from the served copy.
func (s *DailyQuizService) Today(ctx context.Context, userID string) (*DailyQuizView, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	available, current := streak.Gate(user.LastDailyQuiz, user.QuizStreak, now)
	view := &DailyQuizView{Available: available, Streak: current}
	if !available {
		return view, nil
	}

	today := streak.DateKey(now)
	quiz, err := s.Quizzes.FindOpenForDate(ctx, userID, today)
	if errors.Is(err, repository.ErrNotFound) {
		quiz = &models.DailyQuiz{
			UserID:    userID,
			Date:      today,
			Questions: s.pickQuestions(ctx),
		}
		if err := s.Quizzes.Create(ctx, quiz); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	view.QuizID = quiz.ID
	view.Questions = make([]models.GeneratedQuestion, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		view.Questions = append(view.Questions, q.Sanitized())
	}
	return view, nil
}

// Submit grades the stored quiz against the submitted answer indexes and
// advances the quiz streak. Unlike the daily problem, any completed quiz
// counts for the streak regardless of score.
func (s *DailyQuizService) Submit(ctx context.Context, userID, quizID string, answers []int) (*DailyQuizResult, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.UserID != userID {
		return nil, repository.ErrNotFound
	}
	if quiz.Submitted {
		return nil, ErrAlreadySubmitted
	}

	now := time.Now().UTC()
	if quiz.Date != streak.DateKey(now) {
		return nil, ErrQuizExpired
	}
	if len(answers) != len(quiz.Questions) {
		return nil, ErrAnswerCountMismatch
	}

	if available, _ := streak.Gate(user.LastDailyQuiz, user.QuizStreak, now); !available {
		return nil, ErrAlreadySubmitted
	}

	// Claim the quiz document first; a concurrent submit of the same quiz
	// loses here before any streak write happens.
	if err := s.Quizzes.MarkSubmitted(ctx, quizID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadySubmitted
		}
		return nil, err
	}

	correct, score := gradeQuiz(quiz.Questions, answers)

	newStreak := streak.Next(user.LastDailyQuiz, user.QuizStreak, now)
	err = s.Users.CompareAndSetQuizStreak(ctx, userID, user.LastDailyQuiz, now, newStreak)
	if errors.Is(err, repository.ErrConflict) {
		return nil, ErrAlreadySubmitted
	}
	if err != nil {
		return nil, err
	}

	attempt := &models.QuizAttempt{
		UserID:         userID,
		Date:           now,
		Score:          score,
		QuestionsCount: len(quiz.Questions),
		CorrectAnswers: correct,
	}
	if err := s.Attempts.CreateQuizAttempt(ctx, attempt); err != nil {
		log.Printf("Failed to record quiz attempt for user %s: %v", userID, err)
	}

	if s.Publisher != nil {
		s.Publisher.Publish(event.DailyQuizSubmitted, map[string]interface{}{
			"user_id": userID,
			"date":    quiz.Date,
			"score":   score,
			"streak":  newStreak,
		})
	}

	return &DailyQuizResult{
		Score:          score,
		CorrectAnswers: correct,
		QuestionsCount: len(quiz.Questions),
		Streak:         newStreak,
	}, nil
}

// History lists the user's past quiz attempts, newest first.
func (s *DailyQuizService) History(ctx context.Context, userID string) ([]models.QuizAttempt, error) {
	return s.Attempts.FindQuizAttemptsByUser(ctx, userID)
}

// pickQuestions samples the daily quiz from the pooled seed questions of
// every assessment, shuffled. A pool too small to fill the quiz is topped
// up with generated questions, so the quiz is always full-size.
func (s *DailyQuizService) pickQuestions(ctx context.Context) []models.GeneratedQuestion {
	var pool []models.GeneratedQuestion
	assessments, err := s.Assessments.FindAll(ctx)
	if err != nil {
		log.Printf("Failed to load assessment question pool: %v", err)
	}
	for _, a := range assessments {
		for _, q := range a.Questions {
			if q.Valid() {
				if q.CourseTitle == "" {
					q.CourseTitle = a.CourseTitle
				}
				pool = append(pool, q)
			}
		}
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > dailyQuizSize {
		pool = pool[:dailyQuizSize]
	}
	if missing := dailyQuizSize - len(pool); missing > 0 {
		pool = append(pool, s.Gemini.GenerateQuestions(ctx, "core programming concepts", missing)...)
	}
	return pool
}
