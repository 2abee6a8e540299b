package models

import "strings"

// GeneratedQuestion is one multiple-choice question as produced by the
// generative service: exactly four options, and a correct answer that may
// be either the option text or a stringified option index.
type GeneratedQuestion struct {
	Question      string   `bson:"question" json:"question"`
	Options       []string `bson:"options" json:"options"`
	CorrectAnswer string   `bson:"correct_answer" json:"correctAnswer,omitempty"`
	CourseTitle   string   `bson:"course_title,omitempty" json:"courseTitle,omitempty"`
}

// CorrectIndex resolves the correct option's position. The generative
// service sometimes answers with the option text, sometimes with a letter
// label ("A".."D") and sometimes with a bare index; all three are accepted.
// Returns -1 when the answer matches no option.
func (q *GeneratedQuestion) CorrectIndex() int {
	answer := strings.TrimSpace(q.CorrectAnswer)
	if answer == "" {
		return -1
	}
	for i, opt := range q.Options {
		if strings.EqualFold(strings.TrimSpace(opt), answer) {
			return i
		}
	}
	if len(answer) == 1 {
		upper := strings.ToUpper(answer)
		if upper[0] >= 'A' && int(upper[0]-'A') < len(q.Options) {
			return int(upper[0] - 'A')
		}
		if answer[0] >= '0' && answer[0] <= '9' && int(answer[0]-'0') < len(q.Options) {
			return int(answer[0] - '0')
		}
	}
	return -1
}

// Valid reports whether the question is usable for a quiz: non-empty text,
// four options and a resolvable correct answer.
func (q *GeneratedQuestion) Valid() bool {
	if strings.TrimSpace(q.Question) == "" || len(q.Options) != 4 {
		return false
	}
	return q.CorrectIndex() >= 0
}

// Sanitized returns a copy safe to hand to the client before submission.
func (q GeneratedQuestion) Sanitized() GeneratedQuestion {
	q.CorrectAnswer = ""
	return q
}
