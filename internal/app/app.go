// Package app wires the services shared by the bot and the HTTP API.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz-bot/internal/config"
	"github.com/aliskhannn/vocab-quiz-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/vocab-quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/vocab-quiz-bot/internal/repository"
	"github.com/aliskhannn/vocab-quiz-bot/internal/service"
	"github.com/aliskhannn/vocab-quiz-bot/internal/storage"
)

// Core holds the vocabulary, the quiz services and the maintenance scheduler.
type Core struct {
	Vocabulary *repository.VocabularyRepository
	Quiz       *service.QuizService
	Resolver   *service.GroupResolver
	Scheduler  *service.Scheduler

	source repository.VocabularySource
	close  func()
}

// NewCore loads the vocabulary from the configured source and registers the
// session sweep and vocabulary reload jobs. Jobs run with ctx.
func NewCore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Core, error) {
	src, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	vocab, err := repository.LoadVocabularyRepository(ctx, src)
	if err != nil {
		closeSource()
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}

	groups, _ := vocab.ListGroups(ctx)
	logger.Info("vocabulary loaded",
		zap.String("source", cfg.Vocabulary.Source),
		zap.Int("groups", len(groups)),
	)

	generator := service.NewQuestionGenerator(nil, logger.Named("generator"))
	quiz := service.NewQuizService(vocab, storage.NewQuizStorage(), generator, logger.Named("quiz"), cfg.Quiz.SessionTTL)

	c := &Core{
		Vocabulary: vocab,
		Quiz:       quiz,
		Resolver:   service.NewGroupResolver(vocab),
		Scheduler:  service.NewScheduler(logger.Named("scheduler")),
		source:     src,
		close:      closeSource,
	}

	if err = c.registerJobs(ctx, cfg, logger); err != nil {
		c.Close()
		return nil, err
	}

	return c, nil
}

func (c *Core) registerJobs(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	err := c.Scheduler.AddJob(ctx, "session-sweep", cfg.Quiz.CleanupSchedule, func(ctx context.Context) error {
		c.Quiz.PurgeExpired(ctx)
		return nil
	})
	if err != nil {
		return err
	}

	return c.Scheduler.AddJob(ctx, "vocabulary-reload", cfg.Vocabulary.ReloadSchedule, func(ctx context.Context) error {
		if err := c.Vocabulary.Reload(ctx, c.source); err != nil {
			return fmt.Errorf("reload vocabulary, keeping previous table: %w", err)
		}
		logger.Info("vocabulary reloaded")
		return nil
	})
}

// Close releases the vocabulary source.
func (c *Core) Close() {
	if c.close != nil {
		c.close()
	}
}

func openSource(ctx context.Context, cfg *config.Config) (repository.VocabularySource, func(), error) {
	switch cfg.Vocabulary.Source {
	case config.SourcePostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		return pgrepo.NewVocabularySource(pool), pool.Close, nil

	case config.SourceFile:
		return repository.NewFileSource(cfg.Vocabulary.Path), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown vocabulary source: %q", cfg.Vocabulary.Source)
	}
}
