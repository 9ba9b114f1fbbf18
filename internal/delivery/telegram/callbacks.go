package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	data := decodeCallback(cb.Data)
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	switch data.Action {
	case actionAnswer:
		h.handleAnswer(ctx, cb, data)

	case actionSpeak:
		h.handleSpeak(ctx, cb, data)

	case actionGroup:
		h.answerCallback(cb.ID, "")
		_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
			return h.startQuiz(ctx, chatID, data.param(0), messageID)
		})(ctx, chatID)

	case actionRetry:
		h.answerCallback(cb.ID, "")
		_ = h.withErrorHandling(h.handleRetry(data.param(0), messageID))(ctx, chatID)

	case actionMenu:
		h.answerCallback(cb.ID, "")
		if sessionID := data.param(0); sessionID != "" {
			h.quizService.Restart(ctx, sessionID)
		}
		_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
			return h.showGroups(ctx, chatID, messageID, "")
		})(ctx, chatID)

	case actionNoop:
		h.answerCallback(cb.ID, "")

	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
		h.answerCallback(cb.ID, "")
	}
}

// handleRetry restarts the quiz over the same group on the result message.
func (h *Handler) handleRetry(sessionID string, messageID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		session, err := h.quizService.GetSession(ctx, sessionID)
		if err != nil {
			// Swept already, let the user pick the group again.
			return h.showGroups(ctx, chatID, messageID, "")
		}

		h.quizService.Restart(ctx, sessionID)
		return h.startQuiz(ctx, chatID, session.Group, messageID)
	}
}

// handleSpeak pronounces the word of the given question.
func (h *Handler) handleSpeak(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) {
	num, err := data.intParam(1)
	if h.narrator == nil || err != nil {
		h.answerCallback(cb.ID, "")
		return
	}

	session, err := h.quizService.GetSession(ctx, data.param(0))
	if err != nil {
		h.answerCallback(cb.ID, msgSessionExpired)
		return
	}
	if num < 1 || num > session.TotalQuestions() {
		h.answerCallback(cb.ID, "")
		return
	}

	if !h.narrate(ctx, cb.Message.Chat.ID, session.Questions[num-1].Word) {
		h.answerCallback(cb.ID, msgNarrationFailure)
		return
	}
	h.answerCallback(cb.ID, "")
}
