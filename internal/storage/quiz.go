package storage

import (
	"errors"
	"sync"
	"time"

	"github.com/aliskhannn/vocab-quiz-bot/internal/domain/entities"
)

var ErrSessionNotFound = errors.New("session not found")

// QuizStorage provides in-memory storage for quiz sessions by session ID.
// Sessions are handed out as copies; mutation goes through Update.
type QuizStorage struct {
	mu       sync.RWMutex
	sessions map[string]*entities.QuizSession
	byChat   map[int64]string
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage() *QuizStorage {
	return &QuizStorage{
		sessions: make(map[string]*entities.QuizSession),
		byChat:   make(map[int64]string),
	}
}

// Store saves a session. The latest stored session of a chat becomes its current one.
func (s *QuizStorage) Store(session *entities.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = session.Clone()
	if session.ChatID != 0 {
		s.byChat[session.ChatID] = session.ID
	}
}

// Get retrieves a copy of the session with the given ID.
func (s *QuizStorage) Get(id string) (*entities.QuizSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return session.Clone(), true
}

// CurrentByChat returns the ID of the latest session stored for a chat.
func (s *QuizStorage) CurrentByChat(chatID int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byChat[chatID]
	return id, ok
}

// Update applies fn to the stored session under the write lock.
// Changes are discarded if fn returns an error.
func (s *QuizStorage) Update(id string, fn func(session *entities.QuizSession) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	working := session.Clone()
	if err := fn(working); err != nil {
		return err
	}
	s.sessions[id] = working

	return nil
}

// Delete removes the session with the given ID.
func (s *QuizStorage) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteLocked(id)
}

// DeleteStartedBefore removes sessions started before the cutoff and returns how many were removed.
func (s *QuizStorage) DeleteStartedBefore(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.StartedAt.Before(cutoff) {
			s.deleteLocked(id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions.
func (s *QuizStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *QuizStorage) deleteLocked(id string) {
	session, ok := s.sessions[id]
	if !ok {
		return
	}
	delete(s.sessions, id)
	if current, ok := s.byChat[session.ChatID]; ok && current == id {
		delete(s.byChat, session.ChatID)
	}
}
