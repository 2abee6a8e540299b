package models

import "time"

// Certification is append-only; one record per passing assessment attempt.
type Certification struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	Title        string    `bson:"title" json:"title"`
	CourseID     string    `bson:"course_id" json:"course_id"`
	CourseTitle  string    `bson:"course_title" json:"course_title"`
	AssessmentID string    `bson:"assessment_id,omitempty" json:"assessment_id,omitempty"`
	Score        float64   `bson:"score" json:"score"`
	Date         time.Time `bson:"date" json:"date"`
}
