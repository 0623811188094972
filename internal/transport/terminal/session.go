package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"devops-quiz/internal/app"
	"devops-quiz/internal/domain"
)

// Session drives an engine from line-based input and renders after every command.
type Session struct {
	engine    *app.Engine
	in        io.Reader
	out       io.Writer
	highlight int
}

func NewSession(engine *app.Engine, in io.Reader, out io.Writer) *Session {
	return &Session{engine: engine, in: in, out: out, highlight: -1}
}

// Run plays until input ends, the user quits, or ctx is canceled.
func (s *Session) Run(ctx context.Context) error {
	if err := s.render(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if quit := s.Handle(scanner.Text()); quit {
			return nil
		}
		if err := s.render(); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// Handle applies one line of input. Command errors are printed, never returned.
func (s *Session) Handle(line string) (quit bool) {
	cmd := strings.ToLower(strings.TrimSpace(line))
	if cmd == "q" || cmd == "quit" {
		return true
	}

	view := s.engine.View()
	var err error
	switch view.State {
	case domain.StateIdle:
		err = s.pickTopic(view, strings.TrimSpace(line))
	case domain.StateQuestionActive:
		err = s.answer(view, cmd)
	case domain.StateAnswerSubmitted:
		switch cmd {
		case "", "n", "next":
			s.highlight = -1
			err = s.engine.NextQuestion()
		case "b", "back":
			s.backToTopics()
		default:
			err = domain.ErrAlreadyAnswered
		}
	case domain.StateComplete:
		s.backToTopics()
	case domain.StateNotLoaded:
		err = domain.ErrNotLoaded
	}

	if err != nil {
		fmt.Fprintf(s.out, "! %v\n", err)
	}
	return false
}

func (s *Session) pickTopic(view domain.View, input string) error {
	topic := input
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(view.Topics) {
			return fmt.Errorf("%w: %q", domain.ErrEmptyTopic, input)
		}
		topic = view.Topics[n-1]
	}
	s.highlight = -1
	return s.engine.StartQuiz(topic)
}

func (s *Session) answer(view domain.View, cmd string) error {
	n := len(view.Options)
	switch cmd {
	case "", "s", "submit":
		_, err := s.engine.SubmitAnswer()
		return err
	case "b", "back":
		s.backToTopics()
		return nil
	case "j", "down":
		s.highlight = (s.highlight + 1) % n
	case "k", "up":
		if s.highlight <= 0 {
			s.highlight = n - 1
		} else {
			s.highlight--
		}
	default:
		pos, err := strconv.Atoi(cmd)
		if err != nil || pos < 1 || pos > n {
			return fmt.Errorf("%w: %q", domain.ErrOptionOutOfRange, cmd)
		}
		s.highlight = pos - 1
	}
	return s.engine.SelectAnswer(view.Options[s.highlight].Index)
}

func (s *Session) backToTopics() {
	s.highlight = -1
	s.engine.Reset()
}

func (s *Session) render() error {
	return Render(s.out, s.engine.View(), s.highlight)
}
