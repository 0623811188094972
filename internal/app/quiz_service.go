package app

import (
	"context"

	"devops-quiz/internal/domain"
)

// SessionRepository abstracts where per-player engines live (in-memory, Redis, etc).
// GetOrCreate takes a reference on the session and Release gives it back; the
// engine is dropped once no holder remains.
type SessionRepository interface {
	GetOrCreate(sessionID string, create func() *Engine) *Engine
	Get(sessionID string) (*Engine, bool)
	Release(sessionID string)
}

// QuestionRepository serves the question bank (from cache/backing store).
type QuestionRepository interface {
	GetQuestions(ctx context.Context) ([]domain.Question, error)
}

// QuizService hands out engines to players of a shared question bank.
type QuizService struct {
	sessions  SessionRepository
	questions QuestionRepository
	opts      []EngineOption
}

func NewQuizService(store SessionRepository, questions QuestionRepository, opts ...EngineOption) *QuizService {
	return &QuizService{sessions: store, questions: questions, opts: opts}
}

// Open returns the engine for sessionID, creating and loading it on first use.
// Reopening an existing session resumes it where the player left off. Every
// successful Open must be paired with a Close.
func (s *QuizService) Open(ctx context.Context, sessionID string) (*Engine, error) {
	// Players cannot start without a usable bank.
	questions, err := s.questions.GetQuestions(ctx)
	if err != nil {
		return nil, err
	}

	engine := s.sessions.GetOrCreate(sessionID, func() *Engine {
		return NewEngine(s.opts...)
	})
	if err := engine.ensureLoaded(questions); err != nil {
		s.sessions.Release(sessionID)
		return nil, err
	}
	return engine, nil
}

// Get returns an already opened engine.
func (s *QuizService) Get(_ context.Context, sessionID string) (*Engine, error) {
	engine, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return engine, nil
}

// Topics lists the topics of the current bank without opening a session.
func (s *QuizService) Topics(ctx context.Context) ([]string, error) {
	questions, err := s.questions.GetQuestions(ctx)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateQuestions(questions); err != nil {
		return nil, err
	}
	return domain.Topics(questions), nil
}

// Close releases one hold on the player's session.
func (s *QuizService) Close(_ context.Context, sessionID string) {
	s.sessions.Release(sessionID)
}
