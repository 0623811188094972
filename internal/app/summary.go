package app

import (
	"math"

	"devops-quiz/internal/domain"
)

var gradeMessages = map[domain.Grade]string{
	domain.GradeExpert:   "Outstanding! You are a DevOps expert!",
	domain.GradeStrong:   "Great job! You have strong DevOps knowledge!",
	domain.GradeGood:     "Good effort! Keep learning more about DevOps.",
	domain.GradePractice: "Keep practicing! Review the DevOps concepts.",
}

// NewSummary scores a finished quiz. Percentage is rounded half up.
func NewSummary(topic string, score, total int) domain.Summary {
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(100 * float64(score) / float64(total)))
	}
	grade := GradeFor(percentage)
	return domain.Summary{
		Topic:      topic,
		Score:      score,
		Total:      total,
		Percentage: percentage,
		Grade:      grade,
		Message:    gradeMessages[grade],
	}
}

// GradeFor buckets a percentage: 100, >=80, >=60, anything lower.
func GradeFor(percentage int) domain.Grade {
	switch {
	case percentage >= 100:
		return domain.GradeExpert
	case percentage >= 80:
		return domain.GradeStrong
	case percentage >= 60:
		return domain.GradeGood
	default:
		return domain.GradePractice
	}
}
