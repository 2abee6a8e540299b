package models

import "time"

const (
	RoleFresher = "fresher"
	RoleAdmin   = "admin"
)

type User struct {
	ID                    string     `bson:"_id,omitempty" json:"id"`
	Name                  string     `bson:"name" json:"name"`
	Email                 string     `bson:"email" json:"email"`
	PasswordHash          string     `bson:"password_hash" json:"-"`
	Role                  string     `bson:"role" json:"role"`
	DepartmentID          string     `bson:"department_id,omitempty" json:"department_id,omitempty"`
	StartDate             string     `bson:"start_date,omitempty" json:"start_date,omitempty"`
	ProblemStreak         int        `bson:"problem_streak" json:"problem_streak"`
	LastDailyProblem      *time.Time `bson:"last_daily_problem,omitempty" json:"last_daily_problem,omitempty"`
	QuizStreak            int        `bson:"quiz_streak" json:"quiz_streak"`
	LastDailyQuiz         *time.Time `bson:"last_daily_quiz,omitempty" json:"last_daily_quiz,omitempty"`
	CompletedCoursesCount int        `bson:"completed_courses_count" json:"completed_courses_count"`
	CreatedAt             time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt             time.Time  `bson:"updated_at" json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
