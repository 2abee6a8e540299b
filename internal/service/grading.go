package service

import (
	"math"

	"hexaboard-service/internal/models"
)

// certificationThreshold is the score a completed assessment must exceed
// (strictly) before a certificate is issued. A score of exactly 65 does
// not certify.
const certificationThreshold = 65.0

// gradeQuiz scores submitted answer indexes against the stored question
// set. Out-of-range or unanswered (-1) entries count as wrong.
func gradeQuiz(questions []models.GeneratedQuestion, answers []int) (correct int, score float64) {
	if len(questions) == 0 {
		return 0, 0
	}
	for i := range questions {
		if i >= len(answers) {
			break
		}
		if answers[i] >= 0 && answers[i] == questions[i].CorrectIndex() {
			correct++
		}
	}
	return correct, roundMarks(float64(correct) / float64(len(questions)) * 100)
}

func shouldCertify(score float64) bool {
	return score > certificationThreshold
}

// roundMarks rounds a percentage to two decimal places, which is how
// marks are stored and displayed everywhere.
func roundMarks(score float64) float64 {
	return math.Round(score*100) / 100
}
