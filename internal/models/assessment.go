package models

import "time"

// Assessment is the admin-authored assessment definition for a course.
// Seed questions feed the daily quiz pool; the assessment page itself
// generates a fresh question set per attempt.
type Assessment struct {
	ID           string              `bson:"_id,omitempty" json:"id"`
	CourseID     string              `bson:"course_id" json:"course_id"`
	CourseTitle  string              `bson:"course_title" json:"course_title"`
	Title        string              `bson:"title" json:"title"`
	Instructions string              `bson:"instructions" json:"instructions"`
	Questions    []GeneratedQuestion `bson:"questions" json:"questions"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updated_at"`
}

// AssessmentAttempt holds the generated question set for one started
// assessment, so grading happens server-side against what was served.
type AssessmentAttempt struct {
	ID           string              `bson:"_id,omitempty" json:"id"`
	UserID       string              `bson:"user_id" json:"user_id"`
	CourseID     string              `bson:"course_id" json:"course_id"`
	CourseTitle  string              `bson:"course_title" json:"course_title"`
	AssessmentID string              `bson:"assessment_id" json:"assessment_id"`
	Questions    []GeneratedQuestion `bson:"questions" json:"questions"`
	Score        *float64            `bson:"score,omitempty" json:"score,omitempty"`
	CompletedAt  *time.Time          `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
}

// DailyQuiz is the persisted 5-question quiz served to a user for one
// calendar day; submissions are graded against this document.
type DailyQuiz struct {
	ID        string              `bson:"_id,omitempty" json:"id"`
	UserID    string              `bson:"user_id" json:"user_id"`
	Date      string              `bson:"date" json:"date"` // YYYY-MM-DD, UTC
	Questions []GeneratedQuestion `bson:"questions" json:"questions"`
	Submitted bool                `bson:"submitted" json:"submitted"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
}
