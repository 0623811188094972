package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"devops-quiz/internal/domain"
)

func TestLoadQuestionsFromFile(t *testing.T) {
	path := writeFile(t, `[
		{"topic": "Git", "question": "Create a branch?", "options": ["git branch", "git push"], "answerIndex": 0, "explanation": "git branch creates one."},
		{"topic": "Linux", "question": "List files?", "options": ["cd", "ls", "pwd"], "answerIndex": 1, "explanation": ""}
	]`)

	questions, err := NewQuestionLoader(path).LoadQuestions(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if q := questions[1]; q.Prompt != "List files?" || q.AnswerIndex != 1 || len(q.Options) != 3 {
		t.Fatalf("unexpected question %+v", q)
	}
}

func TestLoadQuestionsRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: `{{`},
		{name: "empty array", content: `[]`},
		{name: "missing answerIndex", content: `[{"topic": "A", "question": "Q", "options": ["x", "y"], "explanation": "e"}]`},
		{name: "missing explanation", content: `[{"topic": "A", "question": "Q", "options": ["x", "y"], "answerIndex": 0}]`},
		{name: "one option", content: `[{"topic": "A", "question": "Q", "options": ["x"], "answerIndex": 0, "explanation": "e"}]`},
		{name: "index out of range", content: `[{"topic": "A", "question": "Q", "options": ["x", "y"], "answerIndex": 2, "explanation": "e"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQuestionLoader(writeFile(t, tt.content)).LoadQuestions(context.Background())
			if !errors.Is(err, domain.ErrInvalidData) {
				t.Fatalf("expected invalid data, got %v", err)
			}
		})
	}
}

func TestLoadQuestionsMissingFile(t *testing.T) {
	_, err := NewQuestionLoader(filepath.Join(t.TempDir(), "nope.json")).LoadQuestions(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist, got %v", err)
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}
