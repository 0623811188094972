package postgres

import (
	"context"
	"fmt"

	"devops-quiz/internal/domain"
	"github.com/uptrace/bun"
)

type questionRow struct {
	bun.BaseModel `bun:"table:questions"`

	ID          int64    `bun:"id,pk,autoincrement"`
	Topic       string   `bun:"topic,notnull"`
	Question    string   `bun:"question,notnull"`
	Options     []string `bun:"options,array"`
	AnswerIndex int      `bun:"answer_index,notnull"`
	Explanation string   `bun:"explanation,notnull"`
}

// SeedQuestions validates and inserts questions in one transaction. With
// replace set the table is truncated first.
func SeedQuestions(ctx context.Context, db *bun.DB, questions []domain.Question, replace bool) (int, error) {
	if err := domain.ValidateQuestions(questions); err != nil {
		return 0, err
	}

	rows := make([]questionRow, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, questionRow{
			Topic:       q.Topic,
			Question:    q.Prompt,
			Options:     q.Options,
			AnswerIndex: q.AnswerIndex,
			Explanation: q.Explanation,
		})
	}

	err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if replace {
			if _, err := tx.NewTruncateTable().Model((*questionRow)(nil)).Exec(ctx); err != nil {
				return fmt.Errorf("truncate questions: %w", err)
			}
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("insert questions: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
