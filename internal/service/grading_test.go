package service

import (
	"testing"

	"hexaboard-service/internal/models"
)

func question(correct string) models.GeneratedQuestion {
	return models.GeneratedQuestion{
		Question:      "What is X?",
		Options:       []string{"alpha", "beta", "gamma", "delta"},
		CorrectAnswer: correct,
	}
}

func TestGradeQuiz(t *testing.T) {
	questions := []models.GeneratedQuestion{
		question("alpha"), // index 0
		question("B"),     // index 1
		question("gamma"), // index 2
		question("delta"), // index 3
	}

	tests := []struct {
		name        string
		answers     []int
		wantCorrect int
		wantScore   float64
	}{
		{"all correct", []int{0, 1, 2, 3}, 4, 100},
		{"all wrong", []int{1, 0, 3, 2}, 0, 0},
		{"partial", []int{0, 1, 0, 0}, 2, 50},
		{"unanswered counts wrong", []int{0, -1, -1, -1}, 1, 25},
		{"out of range index wrong", []int{9, 1, 2, 3}, 3, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			correct, score := gradeQuiz(questions, tt.answers)
			if correct != tt.wantCorrect {
				t.Errorf("correct = %d, want %d", correct, tt.wantCorrect)
			}
			if score != tt.wantScore {
				t.Errorf("score = %v, want %v", score, tt.wantScore)
			}
		})
	}
}

func TestGradeQuizEmptySet(t *testing.T) {
	correct, score := gradeQuiz(nil, []int{0, 1})
	if correct != 0 || score != 0 {
		t.Errorf("got (%d, %v), want (0, 0)", correct, score)
	}
}

func TestGradeQuizRoundsToTwoDecimals(t *testing.T) {
	questions := []models.GeneratedQuestion{
		question("alpha"), question("alpha"), question("alpha"),
	}
	_, score := gradeQuiz(questions, []int{0, 1, 1})
	if score != 33.33 {
		t.Errorf("score = %v, want 33.33", score)
	}
}

func TestShouldCertify(t *testing.T) {
	tests := []struct {
		score float64
		want  bool
	}{
		{0, false},
		{64.99, false},
		{65, false}, // exactly at the threshold does not certify
		{65.01, true},
		{66.67, true},
		{100, true},
	}
	for _, tt := range tests {
		if got := shouldCertify(tt.score); got != tt.want {
			t.Errorf("shouldCertify(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestRoundMarks(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{66.666666, 66.67},
		{33.333333, 33.33},
		{50, 50},
		{0.005, 0.01},
	}
	for _, tt := range tests {
		if got := roundMarks(tt.in); got != tt.want {
			t.Errorf("roundMarks(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
