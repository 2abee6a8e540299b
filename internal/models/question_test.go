package models

import "testing"

func TestCorrectIndexResolution(t *testing.T) {
	options := []string{"Paris", "London", "Berlin", "Madrid"}

	testCases := []struct {
		name          string
		correctAnswer string
		expected      int
	}{
		{"option text", "Paris", 0},
		{"option text different case", "berlin", 2},
		{"option text with whitespace", " London ", 1},
		{"letter label", "D", 3},
		{"lowercase letter label", "b", 1},
		{"numeric index", "2", 2},
		{"no match", "Rome", -1},
		{"empty answer", "", -1},
		{"letter out of range", "E", -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := GeneratedQuestion{
				Question:      "What is the capital of France?",
				Options:       options,
				CorrectAnswer: tc.correctAnswer,
			}
			if got := q.CorrectIndex(); got != tc.expected {
				t.Errorf("CorrectIndex() = %d, want %d", got, tc.expected)
			}
		})
	}
}

func TestQuestionValid(t *testing.T) {
	valid := GeneratedQuestion{
		Question:      "What is 2+2?",
		Options:       []string{"3", "4", "5", "6"},
		CorrectAnswer: "4",
	}
	if !valid.Valid() {
		t.Error("expected question to be valid")
	}

	testCases := []struct {
		name string
		q    GeneratedQuestion
	}{
		{"empty question text", GeneratedQuestion{Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"}},
		{"three options", GeneratedQuestion{Question: "q", Options: []string{"a", "b", "c"}, CorrectAnswer: "a"}},
		{"five options", GeneratedQuestion{Question: "q", Options: []string{"a", "b", "c", "d", "e"}, CorrectAnswer: "a"}},
		{"unresolvable answer", GeneratedQuestion{Question: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "z"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.q.Valid() {
				t.Error("expected question to be invalid")
			}
		})
	}
}

func TestSanitizedStripsAnswer(t *testing.T) {
	q := GeneratedQuestion{
		Question:      "q",
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: "b",
	}
	s := q.Sanitized()
	if s.CorrectAnswer != "" {
		t.Errorf("Sanitized() kept correct answer %q", s.CorrectAnswer)
	}
	if q.CorrectAnswer != "b" {
		t.Error("Sanitized() mutated the original question")
	}
}
