// Package gemini calls the Gemini generateContent REST API to produce
// assessment questions, daily coding challenges and code evaluations.
//
// Every call runs a bounded retry per model with exponential backoff,
// falls through an ordered list of model variants, and finally lands on a
// hardcoded fallback set, so callers never dead-end even when the service
// is fully unavailable. A malformed response (bad JSON, missing fields)
// counts as a failed attempt, never as a result.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"hexaboard-service/internal/models"
)

type Client struct {
	HTTPClient  *http.Client
	BaseURL     string
	APIKey      string
	Models      []string
	MaxAttempts int
	BaseBackoff time.Duration
}

func NewClient(baseURL, apiKey string, modelList []string, maxAttempts int, baseBackoff time.Duration) *Client {
	if len(modelList) == 0 {
		modelList = []string{"gemini-1.5-flash"}
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Client{
		HTTPClient:  &http.Client{Timeout: 120 * time.Second},
		BaseURL:     strings.TrimSuffix(baseURL, "/"),
		APIKey:      apiKey,
		Models:      modelList,
		MaxAttempts: maxAttempts,
		BaseBackoff: baseBackoff,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Verdict classifies a code evaluation response.
type Verdict int

const (
	VerdictIncorrect Verdict = iota
	VerdictCorrect
	VerdictSyntaxError
)

type Evaluation struct {
	Verdict  Verdict
	Feedback string
}

// ClassifyFeedback maps the evaluation text onto a verdict: a response
// beginning with "Correct" passes, one containing "Syntax Error" is a
// syntax failure, anything else is incorrect.
func ClassifyFeedback(feedback string) Verdict {
	trimmed := strings.TrimSpace(feedback)
	if strings.HasPrefix(trimmed, "Correct") {
		return VerdictCorrect
	}
	if strings.Contains(trimmed, "Syntax Error") {
		return VerdictSyntaxError
	}
	return VerdictIncorrect
}

// GenerateQuestions asks for n multiple-choice questions about a topic.
// On total failure it returns the fallback question set, never an empty
// slice.
func (c *Client) GenerateQuestions(ctx context.Context, topic string, n int) []models.GeneratedQuestion {
	prompt := fmt.Sprintf(`Generate %d multiple-choice questions about "%s". Each question should have 4 options (A, B, C, D) and indicate the correct answer. The output MUST be a JSON string, and nothing else. Example: [{"question": "What is X?", "options": ["A", "B", "C", "D"], "correctAnswer": "A"}]`, n, topic)

	var questions []models.GeneratedQuestion
	err := c.withRetry(ctx, func(model string) error {
		text, err := c.generate(ctx, model, prompt)
		if err != nil {
			return err
		}
		parsed, err := parseQuestions(text, n)
		if err != nil {
			return err
		}
		questions = parsed
		return nil
	})
	if err != nil {
		log.Printf("Question generation failed for topic %q, using fallback set: %v", topic, err)
		return FallbackQuestions(n)
	}
	return questions
}

// GenerateCodingChallenge produces a LeetCode-style daily problem
// statement, or the fallback challenge when the service is unavailable.
func (c *Client) GenerateCodingChallenge(ctx context.Context) string {
	prompt := `Generate a LeetCode-style coding challenge. Provide the problem statement, constraints, and 2-3 test cases, but do not provide the solution.`

	var challenge string
	err := c.withRetry(ctx, func(model string) error {
		text, err := c.generate(ctx, model, prompt)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("empty challenge text")
		}
		challenge = text
		return nil
	})
	if err != nil {
		log.Printf("Challenge generation failed, using fallback challenge: %v", err)
		return fallbackChallenge
	}
	return challenge
}

// EvaluateCode grades a submitted solution against its question. The
// fallback feedback is an error message, which classifies as incorrect: an
// outage never auto-passes a submission.
func (c *Client) EvaluateCode(ctx context.Context, question, code string) Evaluation {
	prompt := fmt.Sprintf("Evaluate the following code for the given question. If the code is correct, start your response with the word \"Correct\". If the code is incorrect, check for syntax errors. If there is a syntax error, respond with the phrase \"Syntax Error\". Otherwise, provide a brief evaluation of the code.\n\nQuestion: %s\n\nCode:\n%s", question, code)

	var feedback string
	err := c.withRetry(ctx, func(model string) error {
		text, err := c.generate(ctx, model, prompt)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("empty evaluation text")
		}
		feedback = text
		return nil
	})
	if err != nil {
		log.Printf("Code evaluation failed: %v", err)
		feedback = fallbackEvaluation
	}
	return Evaluation{Verdict: ClassifyFeedback(feedback), Feedback: feedback}
}

// withRetry runs fn against each configured model in order, retrying each
// up to MaxAttempts times with exponential backoff, and stops at the first
// success.
func (c *Client) withRetry(ctx context.Context, fn func(model string) error) error {
	var lastErr error
	for _, model := range c.Models {
		for attempt := 0; attempt < c.MaxAttempts; attempt++ {
			if attempt > 0 {
				backoff := c.BaseBackoff << (attempt - 1)
				select {
				case <-time.After(backoff):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			if err := fn(model); err != nil {
				lastErr = err
				log.Printf("Gemini %s attempt %d/%d failed: %v", model, attempt+1, c.MaxAttempts, err)
				continue
			}
			return nil
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no models configured")
	}
	return lastErr
}

func (c *Client) generate(ctx context.Context, model, prompt string) (string, error) {
	request := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.BaseURL, model, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response generateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to decode response: %v", err)
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("response has no candidates")
	}
	return response.Candidates[0].Content.Parts[0].Text, nil
}

// parseQuestions decodes the model's question array, tolerating markdown
// code fences around the JSON. Invalid or short sets fail the attempt.
func parseQuestions(text string, n int) ([]models.GeneratedQuestion, error) {
	cleaned := stripFences(text)
	var questions []models.GeneratedQuestion
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, fmt.Errorf("invalid question JSON: %v", err)
	}
	if len(questions) < n {
		return nil, fmt.Errorf("expected %d questions, got %d", n, len(questions))
	}
	questions = questions[:n]
	for i := range questions {
		if !questions[i].Valid() {
			return nil, fmt.Errorf("question %d has invalid structure", i)
		}
	}
	return questions, nil
}

// stripFences cuts the text down to the JSON array inside it, discarding
// any ```json fences or prose the model wrapped around it.
func stripFences(text string) string {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
