package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"devops-quiz/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// QuestionLoader fetches the question bank from a backing store (file, Postgres).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

// QuestionRepository caches the bank in Redis and falls back to a loader on cache miss.
// Questions are stored one hash field per topic:
//
//	HSET quiz:questions {topic} {JSON array of questions}
type QuestionRepository struct {
	client *redis.Client
	loader QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

const questionsKey = "quiz:questions"

func NewQuestionRepository(client *redis.Client, loader QuestionLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestionRepository) GetQuestions(ctx context.Context) ([]domain.Question, error) {
	if questions, ok := r.cached(ctx); ok {
		return questions, nil
	}

	result, err, _ := r.sf.Do(questionsKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if questions, ok := r.cached(ctx); ok {
			return questions, nil
		}

		questions, err := r.loader.LoadQuestions(ctx)
		if err != nil {
			return nil, err
		}

		byTopic := make(map[string][]domain.Question)
		for _, q := range questions {
			byTopic[q.Topic] = append(byTopic[q.Topic], q)
		}

		ttl := r.ttlWithJitter()
		pipe := r.client.TxPipeline()
		pipe.Del(ctx, questionsKey)
		for topic, qs := range byTopic {
			raw, err := json.Marshal(qs)
			if err != nil {
				return nil, fmt.Errorf("marshal topic %q: %w", topic, err)
			}
			pipe.HSet(ctx, questionsKey, topic, raw)
		}
		if ttl > 0 {
			pipe.Expire(ctx, questionsKey, ttl)
		}
		// cache fill is best-effort; the loaded bank is still served
		_, _ = pipe.Exec(ctx)

		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// cached rebuilds the bank from the hash, ordered by topic. Undecodable
// entries count as a miss so the loader repopulates them.
func (r *QuestionRepository) cached(ctx context.Context) ([]domain.Question, bool) {
	fields, err := r.client.HGetAll(ctx, questionsKey).Result()
	if err != nil || len(fields) == 0 {
		return nil, false
	}

	topics := make([]string, 0, len(fields))
	for topic := range fields {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	var questions []domain.Question
	for _, topic := range topics {
		var qs []domain.Question
		if err := json.Unmarshal([]byte(fields[topic]), &qs); err != nil {
			return nil, false
		}
		questions = append(questions, qs...)
	}
	return questions, true
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
