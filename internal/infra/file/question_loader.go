package file

import (
	"context"
	"fmt"
	"os"

	"devops-quiz/internal/domain"
)

// QuestionLoader reads the question bank from a JSON document on disk.
type QuestionLoader struct {
	path string
}

func NewQuestionLoader(path string) *QuestionLoader {
	return &QuestionLoader{path: path}
}

func (l *QuestionLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.path, err)
	}
	questions, err := domain.DecodeQuestions(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}
	return questions, nil
}
