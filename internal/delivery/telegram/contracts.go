package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocab-quiz-bot/internal/domain/entities"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type QuizService interface {
	ListGroups(ctx context.Context) ([]entities.GroupSummary, error)
	StartQuiz(ctx context.Context, chatID int64, group string) (*entities.QuizSession, error)
	GetSession(ctx context.Context, sessionID string) (*entities.QuizSession, error)
	ActiveSession(ctx context.Context, chatID int64) (*entities.QuizSession, error)
	SubmitAnswer(ctx context.Context, sessionID string, questionNum, optionIndex int) (*entities.AnswerOutcome, error)
	Restart(ctx context.Context, sessionID string)
}

type GroupResolver interface {
	Resolve(ctx context.Context, input string) (string, error)
}

// Narrator pronounces a word in the chat.
type Narrator interface {
	Narrate(ctx context.Context, chatID int64, word string) error
}
