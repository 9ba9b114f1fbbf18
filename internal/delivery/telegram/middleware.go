package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz-bot/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling turns handler failures into user notices. Nothing is propagated
// to the update loop, so one bad update never stops the bot.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		defer func() {
			if r := recover(); r != nil {
				h.logger.Error("handler panic",
					zap.Int64("chat_id", chatID),
					zap.Any("panic", r),
				)
				h.sendError(chatID, msgInternalError)
			}
		}()

		err := fn(ctx, chatID)
		switch {
		case err == nil:
		case errors.Is(err, service.ErrEmptyGroup):
			h.sendError(chatID, msgEmptyGroup)
		case errors.Is(err, context.Canceled):
			h.logger.Debug("handler cancelled", zap.Int64("chat_id", chatID))
		default:
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
		}
		return nil
	}
}
