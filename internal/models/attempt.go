package models

import "time"

// ProblemAttempt is one submitted daily-problem solution. Records are
// append-only; at most one per user per UTC calendar day.
type ProblemAttempt struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Question  string    `bson:"question" json:"question"`
	Code      string    `bson:"code" json:"code"`
	Date      string    `bson:"date" json:"date"` // YYYY-MM-DD, UTC
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// QuizAttempt is one entry in a user's daily-quiz history.
type QuizAttempt struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	UserID         string    `bson:"user_id" json:"user_id"`
	Date           time.Time `bson:"date" json:"date"`
	Score          float64   `bson:"score" json:"score"`
	QuestionsCount int       `bson:"questions_count" json:"questions_count"`
	CorrectAnswers int       `bson:"correct_answers" json:"correct_answers"`
}
