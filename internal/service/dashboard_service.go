package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"hexaboard-service/internal/models"
	"hexaboard-service/internal/repository"
	"hexaboard-service/internal/streak"

	"github.com/redis/go-redis/v9"
)

const dashboardCacheTTL = 60 * time.Second

type DashboardService struct {
	Users          *repository.UserRepository
	Courses        *repository.CourseRepository
	Assignments    *repository.AssignmentRepository
	Certifications *repository.CertificationRepository
	Attempts       *repository.AttemptRepository
	Cache          *redis.Client
}

func NewDashboardService(
	users *repository.UserRepository,
	courses *repository.CourseRepository,
	assignments *repository.AssignmentRepository,
	certifications *repository.CertificationRepository,
	attempts *repository.AttemptRepository,
	cache *redis.Client,
) *DashboardService {
	return &DashboardService{
		Users:          users,
		Courses:        courses,
		Assignments:    assignments,
		Certifications: certifications,
		Attempts:       attempts,
		Cache:          cache,
	}
}

type Dashboard struct {
	User                 DashboardUser          `json:"user"`
	ActiveCourses        []models.Course        `json:"active_courses"`
	CompletedCourses     []models.Course        `json:"completed_courses"`
	PendingAssignments   []models.Assignment    `json:"pending_assignments"`
	CompletedAssignments []models.Assignment    `json:"completed_assignments"`
	Certifications       []models.Certification `json:"certifications"`
	RecentQuizzes        []models.QuizAttempt   `json:"recent_quizzes"`
	Stats                DashboardStats         `json:"stats"`
}

type DashboardUser struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	DepartmentID  string `json:"department_id,omitempty"`
	ProblemStreak int    `json:"problem_streak"`
	QuizStreak    int    `json:"quiz_streak"`
}

type DashboardStats struct {
	TotalCourses        int     `json:"total_courses"`
	CompletedCourses    int     `json:"completed_courses"`
	PendingAssignments  int     `json:"pending_assignments"`
	CertificationsCount int     `json:"certifications_count"`
	AverageQuizScore    float64 `json:"average_quiz_score"`
	ProblemsSolved      int     `json:"problems_solved"`
}

// Summary assembles the fresher dashboard. Results are cached briefly so
// a dashboard poll does not hammer five collections; the cache is
// best-effort and a Redis outage just means every read hits Mongo.
func (s *DashboardService) Summary(ctx context.Context, userID string) (*Dashboard, error) {
	cacheKey := "dashboard:" + userID
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached Dashboard
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	courses, err := s.Courses.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.Assignments.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	certs, err := s.Certifications.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.Attempts.FindQuizAttemptsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	problems, err := s.Attempts.FindProblemAttemptsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	dashboard := summarize(user, courses, assignments, certs, quizzes, len(problems), time.Now().UTC())

	if s.Cache != nil {
		if raw, err := json.Marshal(dashboard); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, raw, dashboardCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache dashboard for user %s: %v", userID, err)
			}
		}
	}
	return dashboard, nil
}

// Invalidate drops the cached dashboard after a write that changes it.
func (s *DashboardService) Invalidate(ctx context.Context, userID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, "dashboard:"+userID).Err(); err != nil {
		log.Printf("Failed to invalidate dashboard cache for user %s: %v", userID, err)
	}
}

// summarize folds the raw collections into the dashboard view. Courses
// and assignments are each partitioned exactly once: every course is
// either active or completed, every assignment pending or completed.
func summarize(user *models.User, courses []models.Course, assignments []models.Assignment, certs []models.Certification, quizzes []models.QuizAttempt, problemsSolved int, now time.Time) *Dashboard {
	d := &Dashboard{
		User: DashboardUser{
			ID:           user.ID,
			Name:         user.Name,
			Email:        user.Email,
			DepartmentID: user.DepartmentID,
		},
		ActiveCourses:        []models.Course{},
		CompletedCourses:     []models.Course{},
		PendingAssignments:   []models.Assignment{},
		CompletedAssignments: []models.Assignment{},
		Certifications:       certs,
		RecentQuizzes:        quizzes,
	}
	if d.Certifications == nil {
		d.Certifications = []models.Certification{}
	}
	if len(d.RecentQuizzes) > 10 {
		d.RecentQuizzes = d.RecentQuizzes[:10]
	}
	if d.RecentQuizzes == nil {
		d.RecentQuizzes = []models.QuizAttempt{}
	}

	// Displayed streaks pass through the gate so a lapsed streak shows its
	// stored value until the next submission resets it, same as the
	// submission path sees it.
	_, d.User.ProblemStreak = streak.Gate(user.LastDailyProblem, user.ProblemStreak, now)
	_, d.User.QuizStreak = streak.Gate(user.LastDailyQuiz, user.QuizStreak, now)

	for _, c := range courses {
		if c.Completed {
			d.CompletedCourses = append(d.CompletedCourses, c)
		} else {
			d.ActiveCourses = append(d.ActiveCourses, c)
		}
	}
	for _, a := range assignments {
		if a.IsCompleted() {
			d.CompletedAssignments = append(d.CompletedAssignments, a)
		} else {
			d.PendingAssignments = append(d.PendingAssignments, a)
		}
	}

	var quizTotal float64
	for _, q := range quizzes {
		quizTotal += q.Score
	}
	avg := 0.0
	if len(quizzes) > 0 {
		avg = roundMarks(quizTotal / float64(len(quizzes)))
	}

	d.Stats = DashboardStats{
		TotalCourses:        len(courses),
		CompletedCourses:    len(d.CompletedCourses),
		PendingAssignments:  len(d.PendingAssignments),
		CertificationsCount: len(certs),
		AverageQuizScore:    avg,
		ProblemsSolved:      problemsSolved,
	}
	return d
}
