package domain

import "errors"

var (
	// ErrInvalidData is returned when question data is empty or malformed.
	ErrInvalidData = errors.New("invalid question data")
	// ErrNotLoaded is returned when the engine is used before questions are loaded.
	ErrNotLoaded = errors.New("questions not loaded")
	// ErrEmptyTopic is returned when a topic has no questions.
	ErrEmptyTopic = errors.New("no questions available for this topic")
	// ErrNoActiveQuestion is returned when an answer command arrives outside a question.
	ErrNoActiveQuestion = errors.New("no active question")
	// ErrOptionOutOfRange indicates a selected option index does not exist.
	ErrOptionOutOfRange = errors.New("option out of range")
	// ErrNoSelection is returned when submitting without picking an option.
	ErrNoSelection = errors.New("please select an answer before submitting")
	// ErrAlreadyAnswered is returned when the current question was already submitted.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrNotAnswered is returned when advancing before the current answer is submitted.
	ErrNotAnswered = errors.New("current question not answered yet")
	// ErrNotComplete is returned when a summary is requested mid-quiz.
	ErrNotComplete = errors.New("quiz not complete")
	// ErrSessionNotFound is returned when a player session has not been opened.
	ErrSessionNotFound = errors.New("quiz session not found")
)
