package telegram

import (
	"context"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Options tune the quiz screen behaviour.
type Options struct {
	AdvanceDelay     time.Duration // pause between an answer and the next screen
	ConfettiLifetime time.Duration // confetti message is deleted after this
	AutoNarrate      bool          // pronounce every new question
}

type Handler struct {
	bot         BotAPI
	logger      *zap.Logger
	quizService QuizService
	resolver    GroupResolver
	narrator    Narrator // nil disables the listen button
	opts        Options

	afterFunc func(d time.Duration, f func())
	pending   sync.WaitGroup
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	quizService QuizService,
	resolver GroupResolver,
	narrator Narrator,
	opts Options,
) *Handler {
	return &Handler{
		bot:         bot,
		logger:      logger,
		quizService: quizService,
		resolver:    resolver,
		narrator:    narrator,
		opts:        opts,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// RegisterCommands publishes the command list shown in the Telegram menu.
func (h *Handler) RegisterCommands() error {
	cfg := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Welcome screen"},
		tgbotapi.BotCommand{Command: "quiz", Description: "Start a quiz, e.g. /quiz day1"},
		tgbotapi.BotCommand{Command: "groups", Description: "List the available days"},
		tgbotapi.BotCommand{Command: "stop", Description: "Stop the current quiz"},
		tgbotapi.BotCommand{Command: "help", Description: "How to use the bot"},
	)
	_, err := h.bot.Request(cfg)
	return err
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer func() {
		h.bot.StopReceivingUpdates()
		h.pending.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start":
			firstName := ""
			if update.Message.From != nil {
				firstName = update.Message.From.FirstName
			}
			_ = h.withErrorHandling(h.handleStart(firstName))(ctx, chatID)

		case "quiz":
			_ = h.withErrorHandling(h.handleQuiz(update.Message.CommandArguments()))(ctx, chatID)

		case "groups":
			_ = h.withErrorHandling(h.handleGroups())(ctx, chatID)

		case "stop":
			_ = h.withErrorHandling(h.handleStop())(ctx, chatID)

		case "help":
			_ = h.send(newPlainMessage(chatID, msgHelp))

		default:
			_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
		}

		return
	}

	text := strings.TrimSpace(update.Message.Text)
	if text == "" {
		return
	}

	_ = h.withErrorHandling(h.handleGroupInput(text))(ctx, chatID)
}

// after runs fn once d has elapsed unless ctx is done by then.
func (h *Handler) after(ctx context.Context, d time.Duration, fn func(ctx context.Context)) {
	h.pending.Add(1)
	h.afterFunc(d, func() {
		defer h.pending.Done()
		if ctx.Err() != nil {
			return
		}
		fn(ctx)
	})
}

func (h *Handler) answerCallback(callbackID, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}
