package service

import (
	"context"
	"time"

	"github.com/aliskhannn/vocab-quiz-bot/internal/domain/entities"
)

// VocabularyRepository gives read access to the vocabulary table.
type VocabularyRepository interface {
	GetGroup(ctx context.Context, name string) ([]entities.VocabularyEntry, error)
	GetAll(ctx context.Context) ([]entities.VocabularyEntry, error)
	ListGroups(ctx context.Context) ([]entities.GroupSummary, error)
}

// QuizStorage keeps transient quiz sessions.
type QuizStorage interface {
	Store(session *entities.QuizSession)
	Get(id string) (*entities.QuizSession, bool)
	CurrentByChat(chatID int64) (string, bool)
	Update(id string, fn func(session *entities.QuizSession) error) error
	Delete(id string)
	DeleteStartedBefore(cutoff time.Time) int
}
