package terminal

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"

	"devops-quiz/internal/app"
	"devops-quiz/internal/domain"
)

func TestSessionPlaysQuizToSummary(t *testing.T) {
	engine := newEngine(t)
	var out bytes.Buffer
	// topic 1, then for three questions: pick option 2, submit, next
	input := "1\n" + strings.Repeat("2\n\n\n", 3) + "q\n"

	if err := NewSession(engine, strings.NewReader(input), &out).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	text := out.String()
	for _, want := range []string{"Choose a topic:", "1) A", "Question 3 of 3", "✓ Correct!", "3 out of 3 questions correct", "100%", "Outstanding!"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected output to contain %q:\n%s", want, text)
		}
	}
	if engine.State() != domain.StateComplete {
		t.Fatalf("expected complete, got %s", engine.State())
	}
}

func TestSessionCursorWrapsAndReportsErrors(t *testing.T) {
	engine := newEngine(t)
	var out bytes.Buffer
	s := NewSession(engine, strings.NewReader(""), &out)

	s.Handle("A")
	s.Handle("") // submit without selection
	if !strings.Contains(out.String(), domain.ErrNoSelection.Error()) {
		t.Fatalf("expected no-selection message, got %q", out.String())
	}

	s.Handle("k") // no highlight yet: wraps to last option
	if sel := engine.View().Selected; sel == nil || *sel != 1 {
		t.Fatalf("expected last option selected, got %v", sel)
	}
	s.Handle("j") // wraps to first
	if sel := engine.View().Selected; sel == nil || *sel != 0 {
		t.Fatalf("expected first option selected, got %v", sel)
	}

	s.Handle("")
	if engine.State() != domain.StateAnswerSubmitted {
		t.Fatalf("expected answered, got %s", engine.State())
	}
	s.Handle("1")
	if !strings.Contains(out.String(), domain.ErrAlreadyAnswered.Error()) {
		t.Fatalf("expected already-answered message, got %q", out.String())
	}
	if engine.View().Score != 0 {
		t.Fatalf("expected wrong answer to score 0")
	}

	s.Handle("b")
	if engine.State() != domain.StateIdle {
		t.Fatalf("expected back at topics, got %s", engine.State())
	}
}

func TestRenderIncorrectFeedback(t *testing.T) {
	var out bytes.Buffer
	view := domain.View{
		State:    domain.StateAnswerSubmitted,
		Topic:    "A",
		Position: 1,
		Total:    2,
		Question: "Q?",
		Result: &domain.AnswerResult{
			Correct:      false,
			SelectedText: "zero",
			CorrectText:  "one",
			Explanation:  "because",
		},
	}
	if err := Render(&out, view, -1); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"✗ Incorrect", "Your answer: zero", "Correct answer: one", "Explanation: because"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in %q", want, out.String())
		}
	}
}

func TestSessionOverUnloadedEngineKeepsReading(t *testing.T) {
	engine := app.NewEngine()
	var out bytes.Buffer

	if err := NewSession(engine, strings.NewReader("1\nDocker\n\nq\n"), &out).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	text := out.String()
	if got := strings.Count(text, "Questions are not loaded."); got != 4 {
		t.Fatalf("expected the not-loaded view after every command, got %d:\n%s", got, text)
	}
	if got := strings.Count(text, "! "+domain.ErrNotLoaded.Error()); got != 3 {
		t.Fatalf("expected each command to report %q, got %d:\n%s", domain.ErrNotLoaded, got, text)
	}
	if engine.State() != domain.StateNotLoaded {
		t.Fatalf("expected engine to stay unloaded, got %s", engine.State())
	}
}

func TestRenderOptionHintMatchesOptionCount(t *testing.T) {
	var out bytes.Buffer
	view := domain.View{
		State:    domain.StateQuestionActive,
		Topic:    "A",
		Position: 1,
		Total:    1,
		Question: "Q?",
		Options: []domain.OptionView{
			{Index: 0, Text: "zero"},
			{Index: 1, Text: "one"},
			{Index: 2, Text: "two"},
		},
	}
	if err := Render(&out, view, -1); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out.String(), "Pick 1-3 ") {
		t.Fatalf("expected hint for three options, got %q", out.String())
	}
}

func newEngine(t *testing.T) *app.Engine {
	t.Helper()
	engine := app.NewEngine(app.WithRand(rand.New(rand.NewSource(3))), app.WithOptionShuffle(false))
	bank := make([]domain.Question, 0, 3)
	for _, prompt := range []string{"first?", "second?", "third?"} {
		bank = append(bank, domain.Question{
			Topic:       "A",
			Prompt:      prompt,
			Options:     []string{"zero", "one"},
			AnswerIndex: 1,
			Explanation: "because",
		})
	}
	if err := engine.LoadQuestions(bank); err != nil {
		t.Fatalf("load: %v", err)
	}
	return engine
}
