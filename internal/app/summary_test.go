package app_test

import (
	"testing"

	"devops-quiz/internal/app"
	"devops-quiz/internal/domain"
)

func TestSummaryGradeBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		score      int
		total      int
		percentage int
		grade      domain.Grade
	}{
		{name: "59 percent", score: 59, total: 100, percentage: 59, grade: domain.GradePractice},
		{name: "60 percent", score: 60, total: 100, percentage: 60, grade: domain.GradeGood},
		{name: "79 percent", score: 79, total: 100, percentage: 79, grade: domain.GradeGood},
		{name: "80 percent", score: 80, total: 100, percentage: 80, grade: domain.GradeStrong},
		{name: "99 percent", score: 99, total: 100, percentage: 99, grade: domain.GradeStrong},
		{name: "100 percent", score: 100, total: 100, percentage: 100, grade: domain.GradeExpert},
		{name: "rounds half up", score: 1, total: 8, percentage: 13, grade: domain.GradePractice},
		{name: "two of three", score: 2, total: 3, percentage: 67, grade: domain.GradeGood},
		{name: "zero", score: 0, total: 5, percentage: 0, grade: domain.GradePractice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := app.NewSummary("A", tt.score, tt.total)
			if got.Percentage != tt.percentage {
				t.Fatalf("expected %d%%, got %d%%", tt.percentage, got.Percentage)
			}
			if got.Grade != tt.grade {
				t.Fatalf("expected grade %s, got %s", tt.grade, got.Grade)
			}
			if got.Message == "" {
				t.Fatalf("expected a message for grade %s", got.Grade)
			}
		})
	}
}

func TestGradeMessagesDiffer(t *testing.T) {
	seen := make(map[string]domain.Grade)
	for _, p := range []int{100, 80, 60, 0} {
		s := app.NewSummary("A", p, 100)
		if prev, ok := seen[s.Message]; ok {
			t.Fatalf("grades %s and %s share message %q", prev, s.Grade, s.Message)
		}
		seen[s.Message] = s.Grade
	}
}
