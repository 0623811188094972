package terminal

import (
	"fmt"
	"io"
	"strings"

	"devops-quiz/internal/domain"
)

const barWidth = 20

// Render writes view as plain text. highlight is the display position of the
// option under the cursor, or -1 for none.
func Render(w io.Writer, view domain.View, highlight int) error {
	var b strings.Builder

	switch view.State {
	case domain.StateNotLoaded:
		b.WriteString("Questions are not loaded.\n")
	case domain.StateIdle:
		b.WriteString("Choose a topic:\n")
		for i, topic := range view.Topics {
			fmt.Fprintf(&b, "  %d) %s\n", i+1, topic)
		}
		b.WriteString("Enter a number or topic name, q to quit.\n")
	case domain.StateQuestionActive:
		renderHeader(&b, view)
		for i, opt := range view.Options {
			cursor := " "
			if i == highlight {
				cursor = ">"
			}
			mark := " "
			if opt.Selected {
				mark = "*"
			}
			fmt.Fprintf(&b, " %s[%s] %d) %s\n", cursor, mark, i+1, opt.Text)
		}
		fmt.Fprintf(&b, "Pick 1-%d or move with j/k, Enter submits, b returns to topics.\n", len(view.Options))
	case domain.StateAnswerSubmitted:
		renderHeader(&b, view)
		if r := view.Result; r != nil {
			if r.Correct {
				b.WriteString("✓ Correct!\n")
			} else {
				b.WriteString("✗ Incorrect\n")
			}
			fmt.Fprintf(&b, "Your answer: %s\n", r.SelectedText)
			if !r.Correct {
				fmt.Fprintf(&b, "Correct answer: %s\n", r.CorrectText)
			}
			fmt.Fprintf(&b, "Explanation: %s\n", r.Explanation)
		}
		b.WriteString("Press Enter for the next question.\n")
	case domain.StateComplete:
		if s := view.Summary; s != nil {
			fmt.Fprintf(&b, "Your Score (%s)\n", s.Topic)
			fmt.Fprintf(&b, "%d out of %d questions correct\n", s.Score, s.Total)
			fmt.Fprintf(&b, "%d%%\n", s.Percentage)
			fmt.Fprintf(&b, "%q\n", s.Message)
		}
		b.WriteString("Press Enter to return to topics.\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderHeader(b *strings.Builder, view domain.View) {
	filled := int(view.Progress * barWidth)
	fmt.Fprintf(b, "\n%s  Question %d of %d  [%s%s]  score %d\n",
		view.Topic, view.Position, view.Total,
		strings.Repeat("#", filled), strings.Repeat("-", barWidth-filled), view.Score)
	fmt.Fprintf(b, "%s\n", view.Question)
}
