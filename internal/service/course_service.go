package service

import (
	"context"
	"errors"
	"log"
	"time"

	"hexaboard-service/internal/event"
	"hexaboard-service/internal/models"
	"hexaboard-service/internal/repository"
)

// assignmentDueDays is how long a fresher has to take the assessment
// after finishing a course.
const assignmentDueDays = 7

type CourseService struct {
	Courses     *repository.CourseRepository
	Users       *repository.UserRepository
	Assignments *repository.AssignmentRepository
	Publisher   *event.Publisher
}

func NewCourseService(courses *repository.CourseRepository, users *repository.UserRepository, assignments *repository.AssignmentRepository, publisher *event.Publisher) *CourseService {
	return &CourseService{Courses: courses, Users: users, Assignments: assignments, Publisher: publisher}
}

func (s *CourseService) List(ctx context.Context, userID string) ([]models.Course, error) {
	return s.Courses.FindByUser(ctx, userID)
}

func (s *CourseService) Get(ctx context.Context, userID, courseID string) (*models.Course, error) {
	return s.Courses.FindByID(ctx, userID, courseID)
}

func (s *CourseService) Enroll(ctx context.Context, course *models.Course) error {
	return s.Courses.Create(ctx, course)
}

func (s *CourseService) Delete(ctx context.Context, userID, courseID string) error {
	return s.Courses.Delete(ctx, userID, courseID)
}

// UpdateProgress records that the user watched the lecture at the given
// index. Finishing the last lecture completes the course, which bumps the
// user's completed-course counter and opens a pending assessment
// assignment with a due date. Re-watching lectures after completion never
// re-fires the completion side effects.
func (s *CourseService) UpdateProgress(ctx context.Context, userID, courseID string, lectureIndex int) (*models.Course, error) {
	course, err := s.Courses.FindByID(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if lectureIndex < 0 || lectureIndex >= len(course.Lectures) {
		return nil, errors.New("lecture index out of range")
	}

	progress := course.ProgressForLecture(lectureIndex)
	completed := lectureIndex == len(course.Lectures)-1
	justFinished := completed && !course.Completed

	if err := s.Courses.UpdateProgress(ctx, userID, courseID, lectureIndex, progress, completed || course.Completed); err != nil {
		return nil, err
	}

	course.CurrentLectureIndex = lectureIndex
	course.Progress = progress
	course.Completed = completed || course.Completed
	if course.Completed {
		course.Status = models.CourseStatusCompleted
	}

	if justFinished {
		s.onCourseFinished(ctx, userID, course)
	}
	return course, nil
}

func (s *CourseService) onCourseFinished(ctx context.Context, userID string, course *models.Course) {
	if err := s.Users.IncrementCompletedCourses(ctx, userID); err != nil {
		log.Printf("Failed to bump completed-course count for user %s: %v", userID, err)
	}

	// A retaken course may already have an assignment; keep the existing
	// one rather than opening a second.
	_, err := s.Assignments.FindByCourse(ctx, userID, course.ID)
	if errors.Is(err, repository.ErrNotFound) {
		due := time.Now().UTC().AddDate(0, 0, assignmentDueDays)
		assignment := &models.Assignment{
			UserID:      userID,
			CourseID:    course.ID,
			CourseTitle: course.Title,
			DueDate:     &due,
		}
		if err := s.Assignments.CreatePending(ctx, assignment); err != nil {
			log.Printf("Failed to open assignment for course %s: %v", course.ID, err)
		}
	} else if err != nil {
		log.Printf("Failed to check existing assignment for course %s: %v", course.ID, err)
	}

	if s.Publisher != nil {
		s.Publisher.Publish(event.CourseFinished, map[string]interface{}{
			"user_id":   userID,
			"course_id": course.ID,
			"title":     course.Title,
		})
	}
}

// AssignToUser enrolls one fresher in a fresh copy of the course
// template, with progress reset.
func (s *CourseService) AssignToUser(ctx context.Context, userID, departmentID string, template models.Course) (*models.Course, error) {
	if _, err := s.Users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	c := template
	c.ID = ""
	c.UserID = userID
	c.AssignedByDepartment = departmentID
	c.CurrentLectureIndex = 0
	c.Progress = 0
	c.Completed = false
	c.Status = models.CourseStatusActive
	if err := s.Courses.Create(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

type CourseAssignmentReport struct {
	UserID string `json:"user_id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// BulkAssign enrolls the listed freshers, or every fresher in a
// department, in copies of the same course. Every enrollment is an
// independent write: a failed target is reported and the rest continue,
// with no rollback of earlier ones.
func (s *CourseService) BulkAssign(ctx context.Context, departmentID string, userIDs []string, template models.Course) ([]CourseAssignmentReport, error) {
	if departmentID != "" {
		freshers, err := s.Users.ListByDepartment(ctx, departmentID)
		if err != nil {
			return nil, err
		}
		for _, f := range freshers {
			userIDs = append(userIDs, f.ID)
		}
	}

	reports := make([]CourseAssignmentReport, 0, len(userIDs))
	assigned := 0
	for _, id := range userIDs {
		report := CourseAssignmentReport{UserID: id, Status: "assigned"}
		if _, err := s.AssignToUser(ctx, id, departmentID, template); err != nil {
			report.Status = "failed"
			report.Error = err.Error()
		} else {
			assigned++
		}
		reports = append(reports, report)
	}

	if s.Publisher != nil && assigned > 0 {
		s.Publisher.Publish(event.CourseBulkAssigned, map[string]interface{}{
			"department_id": departmentID,
			"title":         template.Title,
			"assigned":      assigned,
		})
	}
	return reports, nil
}

type CourseStatistics struct {
	TotalFreshers    int     `json:"total_freshers"`
	TotalCourses     int     `json:"total_courses"`
	CompletedCourses int     `json:"completed_courses"`
	AverageProgress  float64 `json:"average_progress"`
}

// Statistics aggregates course progress across every fresher, for the
// admin overview.
func (s *CourseService) Statistics(ctx context.Context) (*CourseStatistics, error) {
	freshers, err := s.Users.ListFreshers(ctx)
	if err != nil {
		return nil, err
	}

	stats := &CourseStatistics{TotalFreshers: len(freshers)}
	var progressTotal float64
	for _, f := range freshers {
		courses, err := s.Courses.FindByUser(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		for _, c := range courses {
			stats.TotalCourses++
			progressTotal += c.Progress
			if c.Completed {
				stats.CompletedCourses++
			}
		}
	}
	if stats.TotalCourses > 0 {
		stats.AverageProgress = roundMarks(progressTotal / float64(stats.TotalCourses))
	}
	return stats, nil
}
