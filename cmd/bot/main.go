package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/vocab-quiz-bot/internal/app"
	"github.com/aliskhannn/vocab-quiz-bot/internal/config"
	"github.com/aliskhannn/vocab-quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/vocab-quiz-bot/internal/infra/tts"
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

	if err := run(cfg, lg); err != nil {
		lg.Fatal("bot stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
	token, err := cfg.RequireTelegramToken()
	if err != nil {
		return err
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return err
	}
	bot.Debug = !cfg.IsProduction() && cfg.Logger.Level == "debug"
	lg.Info("authorized on telegram", zap.String("username", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	core, err := app.NewCore(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer core.Close()

	var narrator telegram.Narrator
	if cfg.Narration.Enabled {
		urls, err := tts.NewURLBuilder(cfg.Narration.BaseURL, cfg.Narration.Language)
		if err != nil {
			return err
		}
		narrator = telegram.NewAudioNarrator(bot, urls)
	}

	handler := telegram.NewHandler(
		bot,
		lg.Named("telegram"),
		core.Quiz,
		core.Resolver,
		narrator,
		telegram.Options{
			AdvanceDelay:     cfg.Quiz.AdvanceDelay,
			ConfettiLifetime: cfg.Quiz.ConfettiLifetime,
			AutoNarrate:      cfg.Narration.Auto,
		},
	)

	if err := handler.RegisterCommands(); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return handler.Run(gctx) })
	g.Go(func() error { return core.Scheduler.Run(gctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	lg.Info("shutdown signal received")
	return nil
}
