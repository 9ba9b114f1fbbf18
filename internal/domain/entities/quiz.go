package entities

import (
	"time"
)

// Quiz session statuses.
const (
	SessionActive    = "active"
	SessionCompleted = "completed"
	SessionAbandoned = "abandoned"
)

// QuizSession represents a single quiz run over one vocabulary group.
// It lives in memory only and is discarded on restart.
type QuizSession struct {
	ID            string       // unique session ID (ULID)
	ChatID        int64        // chat the quiz is played in, 0 for stateless runs
	Group         string       // vocabulary group the questions were generated from
	Questions     []Question   // generated questions in quiz order
	CurrentIndex  int          // index of the question awaiting an answer
	Score         int          // number of correct answers so far
	Answers       []QuizAnswer // answers in the order they were given
	SessionStatus string       // session status: "active", "completed", or "abandoned"
	StartedAt     time.Time    // timestamp when the quiz started
	CompletedAt   *time.Time   // timestamp when the quiz was completed (nullable)
}

// NewQuizSession creates a new active quiz session.
func NewQuizSession(id string, chatID int64, group string, questions []Question, now time.Time) *QuizSession {
	return &QuizSession{
		ID:            id,
		ChatID:        chatID,
		Group:         group,
		Questions:     questions,
		Answers:       make([]QuizAnswer, 0, len(questions)),
		SessionStatus: SessionActive,
		StartedAt:     now,
	}
}

// TotalQuestions returns the number of questions in the session.
func (qs *QuizSession) TotalQuestions() int {
	return len(qs.Questions)
}

// IsActive reports whether the session still accepts answers.
func (qs *QuizSession) IsActive() bool {
	return qs.SessionStatus == SessionActive
}

// CurrentQuestion returns the question awaiting an answer, or false if none is left.
func (qs *QuizSession) CurrentQuestion() (Question, bool) {
	if qs.CurrentIndex < 0 || qs.CurrentIndex >= len(qs.Questions) {
		return Question{}, false
	}
	return qs.Questions[qs.CurrentIndex], true
}

// Complete marks the quiz session as completed and sets the completion timestamp.
func (qs *QuizSession) Complete(now time.Time) {
	qs.SessionStatus = SessionCompleted
	qs.CompletedAt = &now
}

// Abandon marks the session as abandoned.
func (qs *QuizSession) Abandon() {
	qs.SessionStatus = SessionAbandoned
}

// Clone returns a deep copy of the session.
func (qs *QuizSession) Clone() *QuizSession {
	c := *qs
	c.Questions = make([]Question, len(qs.Questions))
	for i, q := range qs.Questions {
		q.Options = append([]string(nil), q.Options...)
		c.Questions[i] = q
	}
	c.Answers = append([]QuizAnswer(nil), qs.Answers...)
	if qs.CompletedAt != nil {
		t := *qs.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

// QuizAnswer represents a user's answer to a quiz question.
type QuizAnswer struct {
	Word          string    // word of the answered question
	UserAnswer    string    // selected option
	CorrectAnswer string    // correct meaning
	IsCorrect     bool      // whether the answer was correct
	AnsweredAt    time.Time // timestamp when the answer was submitted
}

// NewQuizAnswer checks the selected option against the question with exact string equality.
func NewQuizAnswer(q Question, userAnswer string, now time.Time) QuizAnswer {
	return QuizAnswer{
		Word:          q.Word,
		UserAnswer:    userAnswer,
		CorrectAnswer: q.CorrectMeaning,
		IsCorrect:     q.IsCorrect(userAnswer),
		AnsweredAt:    now,
	}
}

// AnswerOutcome is returned after an answer has been recorded.
type AnswerOutcome struct {
	SessionID     string
	Group         string
	Question      Question
	QuestionNum   int // 1-based number of the answered question
	Total         int
	SelectedIndex int
	IsCorrect     bool
	Score         int
	Finished      bool
	Result        *QuizResult // set when Finished
}
