package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz-bot/internal/service"
)

// startQuiz opens a session for the group and shows its first question.
// A non-zero messageID turns that message into the quiz screen.
func (h *Handler) startQuiz(ctx context.Context, chatID int64, group string, messageID int) error {
	session, err := h.quizService.StartQuiz(ctx, chatID, group)
	if errors.Is(err, service.ErrGroupNotFound) {
		// The group vanished with a vocabulary reload.
		return h.showGroups(ctx, chatID, messageID, buildGroupNotFoundMessage(group, ""))
	}
	if err != nil {
		return err
	}

	h.logger.Debug("quiz screen opened",
		zap.String("session_id", session.ID),
		zap.Int64("chat_id", chatID),
		zap.String("group", group),
	)

	return h.showQuestion(ctx, chatID, messageID, session)
}

// showQuestion renders the question awaiting an answer.
func (h *Handler) showQuestion(ctx context.Context, chatID int64, messageID int, session *entities.QuizSession) error {
	q, ok := session.CurrentQuestion()
	if !ok {
		return fmt.Errorf("session %s has no pending question", session.ID)
	}

	num := session.CurrentIndex + 1
	text := formatQuizQuestion(session.Group, q, num, session.TotalQuestions())
	kb := buildQuizAnswerKeyboard(q, session.ID, num, h.narrator != nil)

	if err := h.sendOrEdit(chatID, messageID, text, kb); err != nil {
		return err
	}

	if h.opts.AutoNarrate {
		h.narrate(ctx, chatID, q.Word)
	}
	return nil
}

// handleAnswer records the tapped option, freezes the keyboard and schedules
// the next screen after the advance delay.
func (h *Handler) handleAnswer(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) {
	sessionID := data.param(0)
	num, errNum := data.intParam(1)
	option, errOpt := data.intParam(2)
	if sessionID == "" || errNum != nil || errOpt != nil {
		h.logger.Debug("invalid answer callback", zap.String("data", data.Raw))
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	outcome, err := h.quizService.SubmitAnswer(ctx, sessionID, num, option)
	switch {
	case errors.Is(err, service.ErrStaleAnswer):
		h.answerCallback(cb.ID, msgAlreadyAnswered)
		return
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrSessionNotActive):
		h.answerCallback(cb.ID, msgSessionExpired)
		return
	case errors.Is(err, service.ErrInvalidOption):
		h.logger.Debug("answer option out of range", zap.String("data", data.Raw))
		h.answerCallback(cb.ID, "")
		return
	case err != nil:
		h.answerCallback(cb.ID, "")
		_ = h.withErrorHandling(func(context.Context, int64) error { return err })(ctx, chatID)
		return
	}

	toast := msgWrongToast
	if outcome.IsCorrect {
		toast = msgCorrectToast
	}
	h.answerCallback(cb.ID, toast)

	frozen := buildFrozenAnswerKeyboard(outcome.Question, outcome.SelectedIndex, sessionID, num, h.narrator != nil)
	_ = h.send(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, *frozen))

	h.after(ctx, h.opts.AdvanceDelay, func(ctx context.Context) {
		_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
			return h.advance(ctx, chatID, messageID, outcome)
		})(ctx, chatID)
	})
}

// advance replaces the answered question with the next one or the result screen.
func (h *Handler) advance(ctx context.Context, chatID int64, messageID int, outcome *entities.AnswerOutcome) error {
	if outcome.Finished {
		return h.showResult(ctx, chatID, messageID, outcome.SessionID, outcome.Group, *outcome.Result)
	}

	session, err := h.quizService.GetSession(ctx, outcome.SessionID)
	if errors.Is(err, service.ErrSessionNotFound) {
		h.logger.Debug("session gone before advance", zap.String("session_id", outcome.SessionID))
		return nil
	}
	if err != nil {
		return err
	}
	if !session.IsActive() {
		return nil
	}

	return h.showQuestion(ctx, chatID, messageID, session)
}

func (h *Handler) showResult(
	ctx context.Context,
	chatID int64,
	messageID int,
	sessionID string,
	group string,
	result entities.QuizResult,
) error {
	text := formatQuizResult(group, result)
	if err := h.sendOrEdit(chatID, messageID, text, buildQuizResultKeyboard(sessionID)); err != nil {
		return err
	}

	if result.Celebrate {
		h.celebrate(ctx, chatID)
	}
	return nil
}

// celebrate sends a confetti burst and removes it after the confetti lifetime.
func (h *Handler) celebrate(ctx context.Context, chatID int64) {
	sent, err := h.bot.Send(newPlainMessage(chatID, buildConfetti()))
	if err != nil {
		h.logger.Debug("confetti not sent", zap.Error(err))
		return
	}

	h.after(ctx, h.opts.ConfettiLifetime, func(context.Context) {
		if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, sent.MessageID)); err != nil {
			h.logger.Debug("confetti not deleted", zap.Error(err))
		}
	})
}

// narrate pronounces the word. Failures never interrupt the quiz.
func (h *Handler) narrate(ctx context.Context, chatID int64, word string) bool {
	if h.narrator == nil {
		return false
	}
	if err := h.narrator.Narrate(ctx, chatID, word); err != nil {
		h.logger.Debug("narration failed",
			zap.String("word", word),
			zap.Error(err),
		)
		return false
	}
	return true
}

// sendOrEdit sends a new MarkdownV2 message, or edits messageID when it is non-zero.
func (h *Handler) sendOrEdit(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) error {
	if messageID != 0 {
		return h.send(newEdit(chatID, messageID, text, kb))
	}

	msg := newMessage(chatID, text)
	if kb != nil {
		msg.ReplyMarkup = kb
	}
	return h.send(msg)
}
