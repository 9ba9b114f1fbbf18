package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz-bot/internal/repository"
	"github.com/aliskhannn/vocab-quiz-bot/internal/storage"
	"github.com/aliskhannn/vocab-quiz-bot/internal/util"
)

var (
	ErrGroupNotFound    = repository.ErrGroupNotFound
	ErrEmptyGroup       = errors.New("vocabulary group has no words")
	ErrSessionNotFound  = errors.New("quiz session not found")
	ErrSessionNotActive = errors.New("quiz session is not active")
	ErrStaleAnswer      = errors.New("question is not awaiting an answer")
	ErrInvalidOption    = errors.New("invalid option index")
)

// QuizService drives quiz sessions: generation, answers and scoring.
type QuizService struct {
	vocabulary VocabularyRepository
	storage    QuizStorage
	generator  *QuestionGenerator
	logger     *zap.Logger
	sessionTTL time.Duration

	now   func() time.Time
	newID func() string
}

// NewQuizService creates a new QuizService.
func NewQuizService(
	vocabulary VocabularyRepository,
	storage QuizStorage,
	generator *QuestionGenerator,
	logger *zap.Logger,
	sessionTTL time.Duration,
) *QuizService {
	return &QuizService{
		vocabulary: vocabulary,
		storage:    storage,
		generator:  generator,
		logger:     logger,
		sessionTTL: sessionTTL,
		now:        time.Now,
		newID:      util.NewULID,
	}
}

// ListGroups returns the available vocabulary groups.
func (s *QuizService) ListGroups(ctx context.Context) ([]entities.GroupSummary, error) {
	return s.vocabulary.ListGroups(ctx)
}

// GenerateQuestions builds a fresh question set for a group without starting a session.
func (s *QuizService) GenerateQuestions(ctx context.Context, group string) ([]entities.Question, error) {
	targets, err := s.vocabulary.GetGroup(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("%q: %w", group, ErrEmptyGroup)
	}

	pool, err := s.vocabulary.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get vocabulary pool: %w", err)
	}

	return s.generator.Generate(targets, pool), nil
}

// StartQuiz generates questions for the group and opens a new session for the chat.
// A still active session of the same chat is abandoned.
func (s *QuizService) StartQuiz(ctx context.Context, chatID int64, group string) (*entities.QuizSession, error) {
	questions, err := s.GenerateQuestions(ctx, group)
	if err != nil {
		return nil, err
	}

	if prevID, ok := s.storage.CurrentByChat(chatID); ok {
		err = s.storage.Update(prevID, func(prev *entities.QuizSession) error {
			if prev.IsActive() {
				prev.Abandon()
			}
			return nil
		})
		if err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
			return nil, fmt.Errorf("abandon previous session: %w", err)
		}
	}

	session := entities.NewQuizSession(s.newID(), chatID, group, questions, s.now())
	s.storage.Store(session)

	s.logger.Info("quiz started",
		zap.String("session_id", session.ID),
		zap.Int64("chat_id", chatID),
		zap.String("group", group),
		zap.Int("questions", len(questions)),
	)

	return session.Clone(), nil
}

// GetSession returns a snapshot of the session.
func (s *QuizService) GetSession(_ context.Context, sessionID string) (*entities.QuizSession, error) {
	session, ok := s.storage.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// ActiveSession returns the chat's session that still accepts answers.
func (s *QuizService) ActiveSession(_ context.Context, chatID int64) (*entities.QuizSession, error) {
	id, ok := s.storage.CurrentByChat(chatID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	session, ok := s.storage.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !session.IsActive() {
		return nil, ErrSessionNotActive
	}
	return session, nil
}

// SubmitAnswer records the selected option for the question with the given 1-based number.
// Only the question currently awaiting an answer accepts a selection, so repeated
// taps and taps on an old question are rejected with ErrStaleAnswer.
func (s *QuizService) SubmitAnswer(
	_ context.Context,
	sessionID string,
	questionNum int,
	optionIndex int,
) (*entities.AnswerOutcome, error) {
	var outcome entities.AnswerOutcome

	err := s.storage.Update(sessionID, func(session *entities.QuizSession) error {
		if !session.IsActive() {
			return ErrSessionNotActive
		}
		if questionNum != session.CurrentIndex+1 {
			return ErrStaleAnswer
		}

		q, ok := session.CurrentQuestion()
		if !ok {
			return ErrSessionNotActive
		}
		if optionIndex < 0 || optionIndex >= len(q.Options) {
			return ErrInvalidOption
		}

		now := s.now()
		answer := entities.NewQuizAnswer(q, q.Options[optionIndex], now)
		session.Answers = append(session.Answers, answer)
		if answer.IsCorrect {
			session.Score++
		}
		session.CurrentIndex++

		outcome = entities.AnswerOutcome{
			SessionID:     session.ID,
			Group:         session.Group,
			Question:      q,
			QuestionNum:   questionNum,
			Total:         session.TotalQuestions(),
			SelectedIndex: optionIndex,
			IsCorrect:     answer.IsCorrect,
			Score:         session.Score,
		}

		if session.CurrentIndex >= session.TotalQuestions() {
			session.Complete(now)

			result, err := Result(session.Score, session.TotalQuestions())
			if err != nil {
				return err
			}
			outcome.Finished = true
			outcome.Result = &result
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if outcome.Finished {
		s.logger.Info("quiz completed",
			zap.String("session_id", sessionID),
			zap.Int("score", outcome.Result.Score),
			zap.Int("total", outcome.Result.Total),
		)
	}

	return &outcome, nil
}

// Restart discards the session. Unknown sessions are ignored.
func (s *QuizService) Restart(_ context.Context, sessionID string) {
	s.storage.Delete(sessionID)
}

// PurgeExpired drops sessions older than the configured TTL.
func (s *QuizService) PurgeExpired(_ context.Context) int {
	if s.sessionTTL <= 0 {
		return 0
	}

	removed := s.storage.DeleteStartedBefore(s.now().Add(-s.sessionTTL))
	if removed > 0 {
		s.logger.Info("expired quiz sessions removed", zap.Int("count", removed))
	}
	return removed
}
