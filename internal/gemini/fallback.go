package gemini

import "hexaboard-service/internal/models"

// Hardcoded last-resort content served when every model attempt fails.

const fallbackChallenge = `**Two Sum**

Given an array of integers ` + "`nums`" + ` and an integer ` + "`target`" + `, return the indices of the two numbers that add up to ` + "`target`" + `.

Constraints:
- 2 <= nums.length <= 10^4
- Exactly one valid answer exists.
- You may not use the same element twice.

Test cases:
1. nums = [2, 7, 11, 15], target = 9 -> [0, 1]
2. nums = [3, 2, 4], target = 6 -> [1, 2]
3. nums = [3, 3], target = 6 -> [0, 1]`

const fallbackEvaluation = "Error evaluating code. Please try again."

var fallbackQuestions = []models.GeneratedQuestion{
	{
		Question:      "Which data structure uses FIFO (first in, first out) ordering?",
		Options:       []string{"Stack", "Queue", "Tree", "Graph"},
		CorrectAnswer: "Queue",
	},
	{
		Question:      "What is the time complexity of binary search on a sorted array?",
		Options:       []string{"O(n)", "O(n log n)", "O(log n)", "O(1)"},
		CorrectAnswer: "O(log n)",
	},
	{
		Question:      "Which HTTP status code indicates a resource was not found?",
		Options:       []string{"200", "301", "404", "500"},
		CorrectAnswer: "404",
	},
	{
		Question:      "In version control, what does a merge conflict indicate?",
		Options:       []string{"A failed push", "Overlapping changes to the same lines", "A missing branch", "A corrupted repository"},
		CorrectAnswer: "Overlapping changes to the same lines",
	},
	{
		Question:      "Which SQL statement retrieves rows from a table?",
		Options:       []string{"SELECT", "INSERT", "UPDATE", "DELETE"},
		CorrectAnswer: "SELECT",
	},
	{
		Question:      "What does API stand for?",
		Options:       []string{"Advanced Program Interaction", "Application Programming Interface", "Applied Protocol Integration", "Automated Process Invocation"},
		CorrectAnswer: "Application Programming Interface",
	},
	{
		Question:      "Which of these is NOT a primitive type in most languages?",
		Options:       []string{"Integer", "Boolean", "HashMap", "Float"},
		CorrectAnswer: "HashMap",
	},
}

// FallbackQuestions returns up to n questions from the hardcoded set,
// cycling if more are requested than exist.
func FallbackQuestions(n int) []models.GeneratedQuestion {
	if n <= 0 {
		return nil
	}
	questions := make([]models.GeneratedQuestion, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, fallbackQuestions[i%len(fallbackQuestions)])
	}
	return questions
}
