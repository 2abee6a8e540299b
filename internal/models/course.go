package models

import "time"

const (
	CourseStatusActive    = "active"
	CourseStatusCompleted = "completed"
)

type Lecture struct {
	ID          string `bson:"id" json:"id"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	VideoURL    string `bson:"video_url" json:"video_url"`
}

type Course struct {
	ID                   string    `bson:"_id,omitempty" json:"id"`
	UserID               string    `bson:"user_id" json:"user_id"`
	Title                string    `bson:"title" json:"title"`
	Description          string    `bson:"description" json:"description"`
	Lectures             []Lecture `bson:"lectures" json:"lectures"`
	CurrentLectureIndex  int       `bson:"current_lecture_index" json:"current_lecture_index"`
	Progress             float64   `bson:"progress" json:"progress"`
	Completed            bool      `bson:"completed" json:"completed"`
	Status               string    `bson:"status" json:"status"`
	AssignedByDepartment string    `bson:"assigned_by_department,omitempty" json:"assigned_by_department,omitempty"`
	EnrolledAt           time.Time `bson:"enrolled_at" json:"enrolled_at"`
	CreatedAt            time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time `bson:"updated_at" json:"updated_at"`
}

// ProgressForLecture returns the completion percentage after watching the
// lecture at the given index.
func (c *Course) ProgressForLecture(index int) float64 {
	if len(c.Lectures) == 0 {
		return 0
	}
	progress := float64(index+1) / float64(len(c.Lectures)) * 100
	if progress > 100 {
		progress = 100
	}
	return progress
}
