package models

import "time"

const (
	// Status values are kept exactly as the stored documents use them;
	// "Completed" is capitalized, "pending" is not.
	AssignmentStatusPending   = "pending"
	AssignmentStatusCompleted = "Completed"
)

// Assignment tracks assessment completion for one (user, course) pair.
// There is at most one live assignment per course per user; completion
// writes go through an upsert keyed on that pair.
type Assignment struct {
	ID           string     `bson:"_id,omitempty" json:"id"`
	UserID       string     `bson:"user_id" json:"user_id"`
	CourseID     string     `bson:"course_id" json:"course_id"`
	CourseTitle  string     `bson:"course_title" json:"course_title"`
	AssessmentID string     `bson:"assessment_id,omitempty" json:"assessment_id,omitempty"`
	Status       string     `bson:"status" json:"status"`
	Marks        *float64   `bson:"marks,omitempty" json:"marks,omitempty"`
	DueDate      *time.Time `bson:"due_date,omitempty" json:"due_date,omitempty"`
	CompletedAt  *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
}

func (a *Assignment) IsCompleted() bool {
	return a.Status == AssignmentStatusCompleted
}
