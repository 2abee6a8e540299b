package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func textResponse(text string) string {
	payload := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{"parts": []map[string]string{{"text": text}}}},
		},
	}
	body, _ := json.Marshal(payload)
	return string(body)
}

func newTestClient(url string, models []string) *Client {
	c := NewClient(url, "test-key", models, 2, time.Millisecond)
	c.HTTPClient = &http.Client{Timeout: 5 * time.Second}
	return c
}

const questionsJSON = `[
	{"question": "Q1?", "options": ["a", "b", "c", "d"], "correctAnswer": "a"},
	{"question": "Q2?", "options": ["a", "b", "c", "d"], "correctAnswer": "B"},
	{"question": "Q3?", "options": ["a", "b", "c", "d"], "correctAnswer": "c"},
	{"question": "Q4?", "options": ["a", "b", "c", "d"], "correctAnswer": "d"},
	{"question": "Q5?", "options": ["a", "b", "c", "d"], "correctAnswer": "a"}
]`

func TestGenerateQuestions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, textResponse(questionsJSON))
	}))
	defer server.Close()

	c := newTestClient(server.URL, []string{"gemini-1.5-flash"})
	questions := c.GenerateQuestions(context.Background(), "Go basics", 5)
	if len(questions) != 5 {
		t.Fatalf("got %d questions, want 5", len(questions))
	}
	if questions[1].CorrectIndex() != 1 {
		t.Errorf("letter-label answer resolved to %d, want 1", questions[1].CorrectIndex())
	}
}

func TestGenerateQuestionsStripsMarkdownFences(t *testing.T) {
	fenced := "```json\n" + questionsJSON + "\n```"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, textResponse(fenced))
	}))
	defer server.Close()

	c := newTestClient(server.URL, []string{"gemini-1.5-flash"})
	questions := c.GenerateQuestions(context.Background(), "SQL", 5)
	if len(questions) != 5 {
		t.Fatalf("got %d questions, want 5", len(questions))
	}
	if questions[0].Question != "Q1?" {
		t.Errorf("unexpected first question %q", questions[0].Question)
	}
}

func TestGenerateQuestionsFallsThroughModels(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		// The first model always fails; the second succeeds.
		if strings.Contains(r.URL.Path, "broken-model") {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, textResponse(questionsJSON))
	}))
	defer server.Close()

	c := newTestClient(server.URL, []string{"broken-model", "gemini-1.5-flash"})
	questions := c.GenerateQuestions(context.Background(), "networking", 5)
	if len(questions) != 5 {
		t.Fatalf("got %d questions, want 5", len(questions))
	}
	// broken-model must have been retried MaxAttempts times before the
	// fall-through, plus one successful call.
	if got := atomic.LoadInt32(&calls); got != int32(c.MaxAttempts)+1 {
		t.Errorf("total calls = %d, want %d", got, c.MaxAttempts+1)
	}
}

func TestGenerateQuestionsUsesFallbackWhenAllModelsFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(server.URL, []string{"m1", "m2"})
	questions := c.GenerateQuestions(context.Background(), "anything", 5)
	if len(questions) != 5 {
		t.Fatalf("fallback returned %d questions, want 5", len(questions))
	}
	for i, q := range questions {
		if !q.Valid() {
			t.Errorf("fallback question %d is invalid", i)
		}
	}
}

func TestMalformedJSONTriggersRetry(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			fmt.Fprint(w, textResponse("Sure! Here are some questions but not as JSON."))
			return
		}
		fmt.Fprint(w, textResponse(questionsJSON))
	}))
	defer server.Close()

	c := newTestClient(server.URL, []string{"gemini-1.5-flash"})
	questions := c.GenerateQuestions(context.Background(), "git", 5)
	if len(questions) != 5 {
		t.Fatalf("got %d questions, want 5", len(questions))
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("calls = %d, want 2 (malformed response must be retried)", calls)
	}
}

func TestEvaluateCodeVerdicts(t *testing.T) {
	testCases := []struct {
		name     string
		feedback string
		want     Verdict
	}{
		{"correct prefix", "Correct! Nice use of a hash map.", VerdictCorrect},
		{"correct with leading whitespace", "  Correct.", VerdictCorrect},
		{"syntax error", "There is a Syntax Error on line 3.", VerdictSyntaxError},
		{"plain wrong", "The loop bound is off by one.", VerdictIncorrect},
		{"mentions correct mid-sentence", "Not quite Correct, the base case is wrong.", VerdictIncorrect},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyFeedback(tc.feedback); got != tc.want {
				t.Errorf("ClassifyFeedback(%q) = %v, want %v", tc.feedback, got, tc.want)
			}
		})
	}
}

func TestEvaluateCodeFallbackIsNotCorrect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	c := newTestClient(server.URL, []string{"m1"})
	eval := c.EvaluateCode(context.Background(), "Two Sum", "return nums")
	if eval.Verdict == VerdictCorrect {
		t.Error("an outage must never grade a submission as correct")
	}
	if eval.Feedback == "" {
		t.Error("fallback feedback must not be empty")
	}
}

func TestGenerateCodingChallengeFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(server.URL, []string{"m1"})
	challenge := c.GenerateCodingChallenge(context.Background())
	if challenge == "" {
		t.Fatal("fallback challenge is empty")
	}
	if !strings.Contains(challenge, "Two Sum") {
		t.Errorf("unexpected fallback challenge: %q", challenge)
	}
}
