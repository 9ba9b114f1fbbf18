package telegram

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz-bot/internal/service"
)

// handleStart shows the welcome screen with the group keyboard.
func (h *Handler) handleStart(firstName string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.showGroups(ctx, chatID, 0, buildWelcomeMessage(firstName))
	}
}

func (h *Handler) handleGroups() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.showGroups(ctx, chatID, 0, "")
	}
}

// handleQuiz starts a quiz for the group given as argument, or shows the groups.
func (h *Handler) handleQuiz(args string) HandlerFunc {
	args = strings.TrimSpace(args)
	if args == "" {
		return h.handleGroups()
	}
	return h.handleGroupInput(args)
}

// handleGroupInput treats typed text as a group name.
func (h *Handler) handleGroupInput(input string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		group, err := h.resolver.Resolve(ctx, input)

		var notFound *service.GroupSuggestionError
		switch {
		case errors.As(err, &notFound):
			h.logger.Debug("group not found",
				zap.Int64("chat_id", chatID),
				zap.String("input", input),
				zap.String("suggestion", notFound.Suggestion),
			)
			return h.showGroupNotFound(ctx, chatID, notFound.Input, notFound.Suggestion)
		case err != nil:
			return err
		}

		return h.startQuiz(ctx, chatID, group, 0)
	}
}

// handleStop abandons the running quiz of the chat.
func (h *Handler) handleStop() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		session, err := h.quizService.ActiveSession(ctx, chatID)
		switch {
		case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrSessionNotActive):
			return h.send(newPlainMessage(chatID, msgNoActiveQuiz))
		case err != nil:
			return err
		}

		h.quizService.Restart(ctx, session.ID)
		h.logger.Info("quiz stopped",
			zap.String("session_id", session.ID),
			zap.Int64("chat_id", chatID),
		)

		return h.send(newPlainMessage(chatID, msgQuizStopped))
	}
}

func (h *Handler) showGroupNotFound(ctx context.Context, chatID int64, input, suggestion string) error {
	text := buildGroupNotFoundMessage(input, suggestion)
	if suggestion == "" {
		return h.showGroups(ctx, chatID, 0, text)
	}
	return h.sendOrEdit(chatID, 0, text, buildSuggestionKeyboard(suggestion))
}

// showGroups renders the group keyboard under header, or under the group list when
// header is empty. A non-zero messageID edits that message instead of sending a new one.
func (h *Handler) showGroups(ctx context.Context, chatID int64, messageID int, header string) error {
	groups, err := h.quizService.ListGroups(ctx)
	if err != nil {
		return err
	}

	text := header
	switch {
	case len(groups) == 0:
		text = md(msgNoGroups)
	case text == "":
		text = buildGroupsMessage(groups)
	}

	return h.sendOrEdit(chatID, messageID, text, buildGroupsKeyboard(groups))
}
