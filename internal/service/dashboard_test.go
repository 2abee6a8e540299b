package service

import (
	"testing"
	"time"

	"hexaboard-service/internal/models"
)

func TestSummarizePartitionsCoursesAndAssignments(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	user := &models.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}
	courses := []models.Course{
		{ID: "c1", Completed: false},
		{ID: "c2", Completed: true},
		{ID: "c3", Completed: false},
	}
	assignments := []models.Assignment{
		{ID: "a1", Status: models.AssignmentStatusPending},
		{ID: "a2", Status: models.AssignmentStatusCompleted},
	}

	d := summarize(user, courses, assignments, nil, nil, 0, now)

	if len(d.ActiveCourses)+len(d.CompletedCourses) != len(courses) {
		t.Fatalf("course partition lost entries: %d active + %d completed != %d",
			len(d.ActiveCourses), len(d.CompletedCourses), len(courses))
	}
	if len(d.ActiveCourses) != 2 || len(d.CompletedCourses) != 1 {
		t.Errorf("got %d active / %d completed courses, want 2 / 1",
			len(d.ActiveCourses), len(d.CompletedCourses))
	}
	if len(d.PendingAssignments)+len(d.CompletedAssignments) != len(assignments) {
		t.Fatalf("assignment partition lost entries")
	}
	if len(d.PendingAssignments) != 1 || len(d.CompletedAssignments) != 1 {
		t.Errorf("got %d pending / %d completed assignments, want 1 / 1",
			len(d.PendingAssignments), len(d.CompletedAssignments))
	}
	if d.Stats.TotalCourses != 3 || d.Stats.CompletedCourses != 1 || d.Stats.PendingAssignments != 1 {
		t.Errorf("stats = %+v, inconsistent with partitions", d.Stats)
	}
}

func TestSummarizeEmptyCollectionsAreNotNil(t *testing.T) {
	d := summarize(&models.User{ID: "u1"}, nil, nil, nil, nil, 0, time.Now().UTC())

	if d.ActiveCourses == nil || d.CompletedCourses == nil {
		t.Error("course slices should be empty, not nil")
	}
	if d.PendingAssignments == nil || d.CompletedAssignments == nil {
		t.Error("assignment slices should be empty, not nil")
	}
	if d.Certifications == nil || d.RecentQuizzes == nil {
		t.Error("certification and quiz slices should be empty, not nil")
	}
	if d.Stats.AverageQuizScore != 0 {
		t.Errorf("average quiz score with no quizzes = %v, want 0", d.Stats.AverageQuizScore)
	}
}

func TestSummarizeAverageQuizScore(t *testing.T) {
	quizzes := []models.QuizAttempt{
		{Score: 80},
		{Score: 60},
		{Score: 100},
	}
	d := summarize(&models.User{ID: "u1"}, nil, nil, nil, quizzes, 0, time.Now().UTC())
	if d.Stats.AverageQuizScore != 80 {
		t.Errorf("average = %v, want 80", d.Stats.AverageQuizScore)
	}
}

func TestSummarizeRecentQuizzesCapped(t *testing.T) {
	quizzes := make([]models.QuizAttempt, 15)
	d := summarize(&models.User{ID: "u1"}, nil, nil, nil, quizzes, 0, time.Now().UTC())
	if len(d.RecentQuizzes) != 10 {
		t.Errorf("recent quizzes = %d, want 10", len(d.RecentQuizzes))
	}
}

func TestSummarizeStreaksPassThroughGate(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	user := &models.User{
		ID:               "u1",
		ProblemStreak:    4,
		LastDailyProblem: &yesterday,
		QuizStreak:       2,
		LastDailyQuiz:    &now,
	}
	d := summarize(user, nil, nil, nil, nil, 0, now)
	if d.User.ProblemStreak != 4 {
		t.Errorf("problem streak = %d, want 4", d.User.ProblemStreak)
	}
	if d.User.QuizStreak != 2 {
		t.Errorf("quiz streak = %d, want 2", d.User.QuizStreak)
	}
}
