package service

import (
	"context"
	"log"
	"time"

	"hexaboard-service/internal/event"
	"hexaboard-service/internal/gemini"
	"hexaboard-service/internal/models"
	"hexaboard-service/internal/repository"
)

const assessmentSize = 5

type AssessmentService struct {
	Assessments    *repository.AssessmentRepository
	Assignments    *repository.AssignmentRepository
	Certifications *repository.CertificationRepository
	Courses        *repository.CourseRepository
	Gemini         *gemini.Client
	Publisher      *event.Publisher
}

func NewAssessmentService(
	assessments *repository.AssessmentRepository,
	assignments *repository.AssignmentRepository,
	certifications *repository.CertificationRepository,
	courses *repository.CourseRepository,
	client *gemini.Client,
	publisher *event.Publisher,
) *AssessmentService {
	return &AssessmentService{
		Assessments:    assessments,
		Assignments:    assignments,
		Certifications: certifications,
		Courses:        courses,
		Gemini:         client,
		Publisher:      publisher,
	}
}

type StartedAssessment struct {
	AttemptID    string                     `json:"attempt_id"`
	Title        string                     `json:"title"`
	Instructions string                     `json:"instructions"`
	CourseTitle  string                     `json:"course_title"`
	Questions    []models.GeneratedQuestion `json:"questions"`
}

type AssessmentResult struct {
	Score          float64               `json:"score"`
	CorrectAnswers int                   `json:"correct_answers"`
	QuestionsCount int                   `json:"questions_count"`
	Certified      bool                  `json:"certified"`
	Certificate    *models.Certification `json:"certificate,omitempty"`
}

func (s *AssessmentService) List(ctx context.Context) ([]models.Assessment, error) {
	return s.Assessments.FindAll(ctx)
}

// Create registers an assessment definition for a course. When no seed
// questions are supplied, a set is generated from the course title.
func (s *AssessmentService) Create(ctx context.Context, assessment *models.Assessment) error {
	if len(assessment.Questions) == 0 {
		assessment.Questions = s.Gemini.GenerateQuestions(ctx, assessment.CourseTitle, assessmentSize)
	}
	return s.Assessments.Create(ctx, assessment)
}

// Start opens an attempt for the assessment attached to a course. A
// missing assessment is terminal: there is nothing sensible to generate
// an attempt against. Each attempt gets a fresh question set, persisted
// with answers so submission grades against exactly what was served.
func (s *AssessmentService) Start(ctx context.Context, userID, courseID string) (*StartedAssessment, error) {
	if _, err := s.Courses.FindByID(ctx, userID, courseID); err != nil {
		return nil, err
	}
	assessment, err := s.Assessments.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	questions := s.Gemini.GenerateQuestions(ctx, assessment.CourseTitle, assessmentSize)
	attempt := &models.AssessmentAttempt{
		UserID:       userID,
		CourseID:     courseID,
		CourseTitle:  assessment.CourseTitle,
		AssessmentID: assessment.ID,
		Questions:    questions,
	}
	if err := s.Assessments.CreateAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	served := make([]models.GeneratedQuestion, 0, len(questions))
	for _, q := range questions {
		served = append(served, q.Sanitized())
	}
	return &StartedAssessment{
		AttemptID:    attempt.ID,
		Title:        assessment.Title,
		Instructions: assessment.Instructions,
		CourseTitle:  assessment.CourseTitle,
		Questions:    served,
	}, nil
}

// Submit grades an attempt, upserts the course assignment into its
// completed state, and issues a certificate when the score clears the
// threshold. Re-taking is allowed: the assignment keeps only the latest
// marks while every pass appends its own certificate.
func (s *AssessmentService) Submit(ctx context.Context, userID, attemptID string, answers []int) (*AssessmentResult, error) {
	attempt, err := s.Assessments.FindAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, repository.ErrNotFound
	}
	if attempt.Score != nil {
		return nil, ErrAttemptCompleted
	}
	if len(answers) != len(attempt.Questions) {
		return nil, ErrAnswerCountMismatch
	}

	correct, score := gradeQuiz(attempt.Questions, answers)
	now := time.Now().UTC()
	if err := s.Assessments.CompleteAttempt(ctx, attemptID, score, now); err != nil {
		return nil, err
	}

	err = s.Assignments.CompleteForCourse(ctx, userID, attempt.CourseID, attempt.CourseTitle, attempt.AssessmentID, score, now)
	if err != nil {
		return nil, err
	}

	result := &AssessmentResult{
		Score:          score,
		CorrectAnswers: correct,
		QuestionsCount: len(attempt.Questions),
	}

	if shouldCertify(score) {
		cert := &models.Certification{
			UserID:       userID,
			Title:        attempt.CourseTitle + " Certification",
			CourseID:     attempt.CourseID,
			CourseTitle:  attempt.CourseTitle,
			AssessmentID: attempt.AssessmentID,
			Score:        score,
			Date:         now,
		}
		if err := s.Certifications.Create(ctx, cert); err != nil {
			log.Printf("Failed to store certification for user %s: %v", userID, err)
		} else {
			result.Certified = true
			result.Certificate = cert
			if s.Publisher != nil {
				s.Publisher.Publish(event.CertificateIssued, map[string]interface{}{
					"user_id":   userID,
					"course_id": attempt.CourseID,
					"score":     score,
				})
			}
		}
	}

	if s.Publisher != nil {
		s.Publisher.Publish(event.AssessmentCompleted, map[string]interface{}{
			"user_id":   userID,
			"course_id": attempt.CourseID,
			"score":     score,
			"certified": result.Certified,
		})
	}

	return result, nil
}

// Certificates lists the user's earned certifications, newest first.
func (s *AssessmentService) Certificates(ctx context.Context, userID string) ([]models.Certification, error) {
	return s.Certifications.FindByUser(ctx, userID)
}
