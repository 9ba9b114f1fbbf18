package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/vocab-quiz-bot/internal/app"
	"github.com/aliskhannn/vocab-quiz-bot/internal/config"
	"github.com/aliskhannn/vocab-quiz-bot/internal/delivery/rest"
	"github.com/aliskhannn/vocab-quiz-bot/internal/logger"
)

func main() {
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

	core, err := app.NewCore(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to initialize", zap.Error(err))
	}
	defer core.Close()

	server := rest.NewApp(rest.NewHandler(core.Quiz), lg.Named("http"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return rest.Serve(gctx, server, cfg.HTTP.Addr, cfg.HTTP.ShutdownTimeout, lg) })
	g.Go(func() error { return core.Scheduler.Run(gctx) })

	if err := g.Wait(); err != nil {
		lg.Error("api stopped with error", zap.Error(err))
		return
	}
	lg.Info("api stopped")
}
