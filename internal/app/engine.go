package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"devops-quiz/internal/domain"
)

// QuestionSource loads the full question bank from an external store.
type QuestionSource interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRand makes shuffling deterministic; mostly useful in tests.
func WithRand(rnd *rand.Rand) EngineOption {
	return func(e *Engine) { e.rnd = rnd }
}

// WithOptionShuffle toggles randomizing the display order of answer options.
func WithOptionShuffle(enabled bool) EngineOption {
	return func(e *Engine) { e.shuffleOptions = enabled }
}

// Engine is the quiz state machine for a single player.
//
// Lifecycle: NotLoaded -> Idle -> QuestionActive <-> AnswerSubmitted -> Complete -> Idle.
// Picking a topic creates the session and activates its first question in one step.
type Engine struct {
	mu             sync.Mutex
	rnd            *rand.Rand
	shuffleOptions bool

	questions []domain.Question
	topics    []string
	state     domain.State
	session   *session

	subscribers map[chan domain.View]struct{}
}

// session is the mutable progress of one quiz attempt.
type session struct {
	topic     string
	questions []domain.Question
	order     [][]int // display order of option indexes, per question
	current   int
	score     int
	selected  *int
	answered  bool
	result    *domain.AnswerResult
	summary   *domain.Summary
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		rnd:            rand.New(rand.NewSource(time.Now().UnixNano())),
		shuffleOptions: true,
		state:          domain.StateNotLoaded,
		subscribers:    make(map[chan domain.View]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load fetches questions from source and installs them. On failure the engine
// keeps its previous state; there is no retry.
func (e *Engine) Load(ctx context.Context, source QuestionSource) error {
	questions, err := source.LoadQuestions(ctx)
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	return e.LoadQuestions(questions)
}

// LoadQuestions validates and stores the question bank, discarding any session.
func (e *Engine) LoadQuestions(questions []domain.Question) error {
	if err := domain.ValidateQuestions(questions); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.loadLocked(questions)
	e.broadcastLocked()
	return nil
}

// ensureLoaded installs questions only if nothing was loaded yet.
func (e *Engine) ensureLoaded(questions []domain.Question) error {
	if err := domain.ValidateQuestions(questions); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != domain.StateNotLoaded {
		return nil
	}
	e.loadLocked(questions)
	return nil
}

func (e *Engine) loadLocked(questions []domain.Question) {
	bank := make([]domain.Question, len(questions))
	for i, q := range questions {
		q.Options = append([]string(nil), q.Options...)
		bank[i] = q
	}
	e.questions = bank
	e.topics = domain.Topics(bank)
	e.session = nil
	e.state = domain.StateIdle
}

// Topics lists the distinct topics in ascending order.
func (e *Engine) Topics() ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == domain.StateNotLoaded {
		return nil, domain.ErrNotLoaded
	}
	return append([]string(nil), e.topics...), nil
}

// StartQuiz begins a new session over the questions of topic, in random order.
// Any session in progress is abandoned. If the topic has no questions the
// engine is left untouched.
func (e *Engine) StartQuiz(topic string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == domain.StateNotLoaded {
		return domain.ErrNotLoaded
	}

	var picked []domain.Question
	for _, q := range e.questions {
		if q.Topic == topic {
			picked = append(picked, q)
		}
	}
	if len(picked) == 0 {
		return fmt.Errorf("%w: %q", domain.ErrEmptyTopic, topic)
	}

	shuffle(e.rnd, picked)
	order := make([][]int, len(picked))
	for i, q := range picked {
		order[i] = make([]int, len(q.Options))
		for j := range order[i] {
			order[i][j] = j
		}
		if e.shuffleOptions {
			shuffle(e.rnd, order[i])
		}
	}

	e.session = &session{topic: topic, questions: picked, order: order}
	e.state = domain.StateQuestionActive
	e.broadcastLocked()
	return nil
}

// SelectAnswer picks option index (an index into Question.Options, not the
// display position) for the current question.
func (e *Engine) SelectAnswer(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case domain.StateQuestionActive:
	case domain.StateAnswerSubmitted:
		return domain.ErrAlreadyAnswered
	default:
		return domain.ErrNoActiveQuestion
	}

	q := e.session.questions[e.session.current]
	if index < 0 || index >= len(q.Options) {
		return fmt.Errorf("%w: %d", domain.ErrOptionOutOfRange, index)
	}
	e.session.selected = &index
	e.broadcastLocked()
	return nil
}

// SubmitAnswer grades the selected option. A second call for the same
// question fails with ErrAlreadyAnswered and does not touch the score.
func (e *Engine) SubmitAnswer() (domain.AnswerResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case domain.StateQuestionActive:
	case domain.StateAnswerSubmitted:
		return domain.AnswerResult{}, domain.ErrAlreadyAnswered
	default:
		return domain.AnswerResult{}, domain.ErrNoActiveQuestion
	}

	s := e.session
	if s.selected == nil {
		return domain.AnswerResult{}, domain.ErrNoSelection
	}

	q := s.questions[s.current]
	selected := *s.selected
	correct := selected == q.AnswerIndex
	if correct {
		s.score++
	}
	s.answered = true

	result := domain.AnswerResult{
		Correct:       correct,
		SelectedIndex: selected,
		SelectedText:  q.Options[selected],
		CorrectIndex:  q.AnswerIndex,
		CorrectText:   q.Options[q.AnswerIndex],
		Explanation:   q.Explanation,
		Score:         s.score,
	}
	s.result = &result
	e.state = domain.StateAnswerSubmitted
	e.broadcastLocked()
	return result, nil
}

// NextQuestion moves past an answered question, completing the quiz after the last one.
func (e *Engine) NextQuestion() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case domain.StateAnswerSubmitted:
	case domain.StateQuestionActive:
		return domain.ErrNotAnswered
	default:
		return domain.ErrNoActiveQuestion
	}

	s := e.session
	s.current++
	s.selected = nil
	s.answered = false
	s.result = nil

	if s.current >= len(s.questions) {
		summary := NewSummary(s.topic, s.score, len(s.questions))
		s.summary = &summary
		e.state = domain.StateComplete
	} else {
		e.state = domain.StateQuestionActive
	}
	e.broadcastLocked()
	return nil
}

// Summary returns the final score; it is only available once the quiz is complete.
func (e *Engine) Summary() (domain.Summary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != domain.StateComplete {
		return domain.Summary{}, domain.ErrNotComplete
	}
	return *e.session.summary, nil
}

// Reset discards the session and returns to topic selection.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session = nil
	if e.state != domain.StateNotLoaded {
		e.state = domain.StateIdle
	}
	e.broadcastLocked()
}

// State reports the current lifecycle state.
func (e *Engine) State() domain.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// View returns a snapshot of everything a presentation layer needs to render.
func (e *Engine) View() domain.View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewLocked()
}

// Subscribe returns a channel that receives a View after every transition,
// starting with the current one. The caller must invoke cancel to avoid leaks.
func (e *Engine) Subscribe() (<-chan domain.View, func()) {
	ch := make(chan domain.View, 8)

	e.mu.Lock()
	e.subscribers[ch] = struct{}{}
	// sent under the lock so no later transition can overtake it; ch is empty here
	ch <- e.viewLocked()
	e.mu.Unlock()

	cancel := func() {
		e.mu.Lock()
		if _, ok := e.subscribers[ch]; ok {
			delete(e.subscribers, ch)
			close(ch)
		}
		e.mu.Unlock()
	}
	return ch, cancel
}

func (e *Engine) broadcastLocked() {
	if len(e.subscribers) == 0 {
		return
	}
	view := e.viewLocked()
	for ch := range e.subscribers {
		select {
		case ch <- view:
		default:
			// drop the oldest view so a slow reader never blocks a transition
			select {
			case <-ch:
			default:
			}
			ch <- view
		}
	}
}

func (e *Engine) viewLocked() domain.View {
	view := domain.View{State: e.state}

	switch e.state {
	case domain.StateNotLoaded:
		return view
	case domain.StateIdle:
		view.Topics = append([]string(nil), e.topics...)
		return view
	}

	s := e.session
	view.Topic = s.topic
	view.Total = len(s.questions)
	view.Score = s.score

	if e.state == domain.StateComplete {
		view.Position = view.Total
		view.Progress = 1
		summary := *s.summary
		view.Summary = &summary
		return view
	}

	q := s.questions[s.current]
	view.Position = s.current + 1
	view.Progress = float64(s.current) / float64(view.Total)
	view.Question = q.Prompt
	view.Options = make([]domain.OptionView, 0, len(q.Options))
	for _, idx := range s.order[s.current] {
		view.Options = append(view.Options, domain.OptionView{
			Index:    idx,
			Text:     q.Options[idx],
			Selected: s.selected != nil && *s.selected == idx,
		})
	}
	if s.selected != nil {
		selected := *s.selected
		view.Selected = &selected
	}
	if s.result != nil {
		result := *s.result
		view.Result = &result
	}
	return view
}
