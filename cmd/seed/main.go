package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz-bot/internal/config"
	"github.com/aliskhannn/vocab-quiz-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/vocab-quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/vocab-quiz-bot/internal/logger"
	"github.com/aliskhannn/vocab-quiz-bot/internal/repository"
	"github.com/aliskhannn/vocab-quiz-bot/migrations"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "apply migrations without importing vocabulary")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg, *migrateOnly); err != nil {
		lg.Fatal("seed failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger, migrateOnly bool) error {
	dsn, err := cfg.DB.DSN()
	if err != nil {
		return err
	}

	if err = postgres.Migrate(dsn, migrations.FS, lg); err != nil {
		return err
	}
	if migrateOnly {
		return nil
	}

	groups, err := repository.NewFileSource(cfg.Vocabulary.Path).Load(ctx)
	if err != nil {
		return err
	}
	if err = repository.ValidateGroups(groups); err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	importer := pgrepo.NewVocabularyImporter(postgres.NewTransactor(pool))
	n, err := importer.Import(ctx, groups)
	if err != nil {
		return err
	}

	lg.Info("vocabulary imported",
		zap.String("path", cfg.Vocabulary.Path),
		zap.Int("groups", len(groups)),
		zap.Int("entries", n),
	)
	return nil
}
