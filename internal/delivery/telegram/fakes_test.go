package telegram

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz-bot/internal/repository"
	"github.com/aliskhannn/vocab-quiz-bot/internal/service"
	"github.com/aliskhannn/vocab-quiz-bot/internal/storage"
)

const testChatID int64 = 100

type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	nextID   int
	updates  chan tgbotapi.Update
	stopped  bool
}

func newFakeBot() *fakeBot {
	return &fakeBot{nextID: 1000, updates: make(chan tgbotapi.Update, 16)}
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	b.nextID++
	return tgbotapi.Message{MessageID: b.nextID}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *fakeBot) StopReceivingUpdates() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
}

func (b *fakeBot) messages() []tgbotapi.MessageConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []tgbotapi.MessageConfig
	for _, c := range b.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m)
		}
	}
	return out
}

func (b *fakeBot) edits() []tgbotapi.EditMessageTextConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []tgbotapi.EditMessageTextConfig
	for _, c := range b.sent {
		if e, ok := c.(tgbotapi.EditMessageTextConfig); ok {
			out = append(out, e)
		}
	}
	return out
}

func (b *fakeBot) markupEdits() []tgbotapi.EditMessageReplyMarkupConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []tgbotapi.EditMessageReplyMarkupConfig
	for _, c := range b.sent {
		if e, ok := c.(tgbotapi.EditMessageReplyMarkupConfig); ok {
			out = append(out, e)
		}
	}
	return out
}

func (b *fakeBot) toasts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, c := range b.requests {
		if cb, ok := c.(tgbotapi.CallbackConfig); ok {
			out = append(out, cb.Text)
		}
	}
	return out
}

func (b *fakeBot) deletes() []tgbotapi.DeleteMessageConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []tgbotapi.DeleteMessageConfig
	for _, c := range b.requests {
		if d, ok := c.(tgbotapi.DeleteMessageConfig); ok {
			out = append(out, d)
		}
	}
	return out
}

type fakeNarrator struct {
	mu    sync.Mutex
	words []string
	err   error
}

func (n *fakeNarrator) Narrate(_ context.Context, _ int64, word string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.words = append(n.words, word)
	return nil
}

type testEnv struct {
	handler  *Handler
	bot      *fakeBot
	quiz     *service.QuizService
	narrator *fakeNarrator

	mu      sync.Mutex
	delays  []time.Duration
	pending []func()
}

func testGroups() []entities.Group {
	return []entities.Group{
		{Name: "day1", Entries: []entities.VocabularyEntry{
			{Word: "dog", Meaning: "개"},
			{Word: "cat", Meaning: "고양이"},
			{Word: "bird", Meaning: "새"},
			{Word: "fish", Meaning: "물고기"},
			{Word: "tree", Meaning: "나무"},
		}},
		{Name: "day2", Entries: []entities.VocabularyEntry{
			{Word: "apple", Meaning: "사과"},
			{Word: "water", Meaning: "물"},
			{Word: "book", Meaning: "책"},
		}},
	}
}

// newTestEnv wires a handler to real services. With deferTimers the delayed
// callbacks are queued until flush is called, otherwise they run inline.
func newTestEnv(t *testing.T, deferTimers bool) *testEnv {
	t.Helper()

	repo, err := repository.NewVocabularyRepository(testGroups())
	require.NoError(t, err)

	gen := service.NewQuestionGenerator(rand.New(rand.NewSource(7)), zap.NewNop())
	quiz := service.NewQuizService(repo, storage.NewQuizStorage(), gen, zap.NewNop(), time.Hour)

	env := &testEnv{
		bot:      newFakeBot(),
		quiz:     quiz,
		narrator: &fakeNarrator{},
	}
	env.handler = NewHandler(env.bot, zap.NewNop(), quiz, service.NewGroupResolver(repo), env.narrator, Options{
		AdvanceDelay:     time.Second,
		ConfettiLifetime: 5 * time.Second,
	})
	env.handler.afterFunc = func(d time.Duration, f func()) {
		env.mu.Lock()
		env.delays = append(env.delays, d)
		if deferTimers {
			env.pending = append(env.pending, f)
			env.mu.Unlock()
			return
		}
		env.mu.Unlock()
		f()
	}

	return env
}

func (e *testEnv) flush() {
	e.mu.Lock()
	pending := e.pending
	e.pending = nil
	e.mu.Unlock()

	for _, f := range pending {
		f()
	}
}

func commandUpdate(text string, commandLen int) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		Chat:      &tgbotapi.Chat{ID: testChatID},
		From:      &tgbotapi.User{ID: 7, FirstName: "Ann"},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: commandLen}},
	}}
}

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		Chat:      &tgbotapi.Chat{ID: testChatID},
		From:      &tgbotapi.User{ID: 7},
		Text:      text,
	}}
}

func callbackUpdate(id, data string, messageID int) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      id,
		From:    &tgbotapi.User{ID: 7},
		Message: &tgbotapi.Message{MessageID: messageID, Chat: &tgbotapi.Chat{ID: testChatID}},
		Data:    data,
	}}
}

func inlineKeyboard(t *testing.T, markup interface{}) *tgbotapi.InlineKeyboardMarkup {
	t.Helper()
	kb, ok := markup.(*tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok, "reply markup is %T", markup)
	return kb
}

func callbackDatas(kb *tgbotapi.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			if b.CallbackData != nil {
				out = append(out, *b.CallbackData)
			}
		}
	}
	return out
}
