package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"devops-quiz/internal/app"
	"devops-quiz/internal/config"
	"devops-quiz/internal/domain"
	"devops-quiz/internal/infra/file"
	"devops-quiz/internal/infra/memory"
	pgloader "devops-quiz/internal/infra/postgres"
	redisinfra "devops-quiz/internal/infra/redis"
	"devops-quiz/internal/logger"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// loadConfig reads the YAML config, falling back to defaults when the file is absent.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// deps holds the infrastructure built from config; close releases it.
type deps struct {
	log       *zap.Logger
	source    app.QuestionSource
	questions app.QuestionRepository
	sessions  app.SessionRepository
	close     func()
}

func buildDeps(ctx context.Context, cfg config.Config) (*deps, error) {
	log, err := logger.New(cfg.Log.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	d := &deps{log: log}
	var closers []func()
	d.close = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		_ = log.Sync()
	}

	switch cfg.Questions.Source {
	case config.SourcePostgres:
		if cfg.Postgres.URL == "" {
			return nil, fmt.Errorf("questions.source is postgres but postgres url not configured")
		}
		pool, err := connectPostgres(ctx, cfg.Postgres.URL)
		if err != nil {
			// reported by the first load, so topic selection still renders
			log.Warn("postgres unavailable", zap.Error(err))
			d.source = unavailableSource{err: err}
			break
		}
		closers = append(closers, pool.Close)
		d.source = pgloader.NewQuestionLoader(pool)
	case config.SourceFile:
		d.source = file.NewQuestionLoader(cfg.Questions.Path)
	default:
		return nil, fmt.Errorf("unknown questions.source %q", cfg.Questions.Source)
	}

	questionTTL := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, func() { _ = client.Close() })
		d.questions = redisinfra.NewQuestionRepository(client, d.source, questionTTL)
		d.sessions = redisinfra.NewSessionStore(client, config.TTLDuration(cfg.Redis.TTL, 10*time.Minute))
		log.Info("using redis cache", zap.String("addr", cfg.Redis.Addr))
	} else {
		d.questions = memory.NewQuestionRepository(d.source, questionTTL)
		d.sessions = memory.NewSessionStore()
	}

	log.Info("question source ready", zap.String("source", cfg.Questions.Source))
	return d, nil
}

// connectPostgres builds a lazy pool; the database is first dialed by a query.
func connectPostgres(ctx context.Context, url string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	poolCfg.LazyConnect = true
	pool, err := pgxpool.ConnectConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return pool, nil
}

// unavailableSource stands in for a store that could not be set up.
type unavailableSource struct {
	err error
}

func (s unavailableSource) LoadQuestions(context.Context) ([]domain.Question, error) {
	return nil, s.err
}

func engineOptions(cfg config.Config) []app.EngineOption {
	return []app.EngineOption{app.WithOptionShuffle(cfg.ShuffleOptions())}
}
