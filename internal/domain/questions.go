package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// questionRecord mirrors the JSON document with pointer fields so that
// missing keys can be told apart from zero values.
type questionRecord struct {
	Topic       *string  `json:"topic"`
	Question    *string  `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex *int     `json:"answerIndex"`
	Explanation *string  `json:"explanation"`
}

// DecodeQuestions parses a JSON array of questions and validates every record.
func DecodeQuestions(data []byte) ([]Question, error) {
	var records []questionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no questions", ErrInvalidData)
	}

	questions := make([]Question, 0, len(records))
	for i, rec := range records {
		switch {
		case rec.Topic == nil:
			return nil, fmt.Errorf("%w: question %d: missing field topic", ErrInvalidData, i)
		case rec.Question == nil:
			return nil, fmt.Errorf("%w: question %d: missing field question", ErrInvalidData, i)
		case rec.Options == nil:
			return nil, fmt.Errorf("%w: question %d: missing field options", ErrInvalidData, i)
		case rec.AnswerIndex == nil:
			return nil, fmt.Errorf("%w: question %d: missing field answerIndex", ErrInvalidData, i)
		case rec.Explanation == nil:
			return nil, fmt.Errorf("%w: question %d: missing field explanation", ErrInvalidData, i)
		}
		questions = append(questions, Question{
			Topic:       *rec.Topic,
			Prompt:      *rec.Question,
			Options:     rec.Options,
			AnswerIndex: *rec.AnswerIndex,
			Explanation: *rec.Explanation,
		})
	}

	if err := ValidateQuestions(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// ValidateQuestions checks the invariants every question bank must satisfy.
func ValidateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidData)
	}
	for i, q := range questions {
		if q.Topic == "" {
			return fmt.Errorf("%w: question %d: empty topic", ErrInvalidData, i)
		}
		if q.Prompt == "" {
			return fmt.Errorf("%w: question %d: empty question text", ErrInvalidData, i)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("%w: question %d: need at least two options", ErrInvalidData, i)
		}
		if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
			return fmt.Errorf("%w: question %d: answerIndex %d out of range", ErrInvalidData, i, q.AnswerIndex)
		}
	}
	return nil
}

// Topics returns the distinct topics of questions in ascending byte order.
func Topics(questions []Question) []string {
	seen := make(map[string]struct{}, len(questions))
	topics := make([]string, 0)
	for _, q := range questions {
		if _, ok := seen[q.Topic]; ok {
			continue
		}
		seen[q.Topic] = struct{}{}
		topics = append(topics, q.Topic)
	}
	sort.Strings(topics)
	return topics
}
