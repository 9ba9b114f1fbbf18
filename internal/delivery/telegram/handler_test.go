package telegram

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/vocab-quiz-bot/internal/domain/entities"
)

func startQuiz(t *testing.T, env *testEnv, group string) *entities.QuizSession {
	t.Helper()

	env.handler.handleUpdate(context.Background(), commandUpdate("/quiz "+group, len("/quiz")))

	session, err := env.quiz.ActiveSession(context.Background(), testChatID)
	require.NoError(t, err)
	return session
}

func TestHandler_Start(t *testing.T) {
	env := newTestEnv(t, false)

	env.handler.handleUpdate(context.Background(), commandUpdate("/start", len("/start")))

	msgs := env.bot.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, tgbotapi.ModeMarkdownV2, msgs[0].ParseMode)
	assert.Contains(t, msgs[0].Text, "Ann")

	kb := inlineKeyboard(t, msgs[0].ReplyMarkup)
	assert.Equal(t, []string{"group:day1", "group:day2"}, callbackDatas(kb))
}

func TestHandler_QuizCommandShowsFirstQuestion(t *testing.T) {
	env := newTestEnv(t, false)

	session := startQuiz(t, env, "day1")
	assert.Equal(t, "day1", session.Group)
	assert.Equal(t, 5, session.TotalQuestions())

	msgs := env.bot.messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "1 / 5")
	assert.Contains(t, msgs[0].Text, session.Questions[0].Word)

	kb := inlineKeyboard(t, msgs[0].ReplyMarkup)
	require.Len(t, kb.InlineKeyboard, 5, "four options and the listen row")
	for i, option := range session.Questions[0].Options {
		assert.Equal(t, option, kb.InlineKeyboard[i][0].Text)
		assert.Equal(t, buildAnswerCallback(session.ID, 1, i), *kb.InlineKeyboard[i][0].CallbackData)
	}
	assert.Equal(t, buildSpeakCallback(session.ID, 1), *kb.InlineKeyboard[4][0].CallbackData)
}

func TestHandler_QuizWithoutArgumentsListsGroups(t *testing.T) {
	env := newTestEnv(t, false)

	env.handler.handleUpdate(context.Background(), commandUpdate("/quiz", len("/quiz")))

	msgs := env.bot.messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "day2")
	_, err := env.quiz.ActiveSession(context.Background(), testChatID)
	assert.Error(t, err)
}

func TestHandler_TypedGroupName(t *testing.T) {
	env := newTestEnv(t, false)

	env.handler.handleUpdate(context.Background(), textUpdate("Day 2"))

	session, err := env.quiz.ActiveSession(context.Background(), testChatID)
	require.NoError(t, err)
	assert.Equal(t, "day2", session.Group)
}

func TestHandler_UnknownGroupSuggestsClosest(t *testing.T) {
	env := newTestEnv(t, false)

	env.handler.handleUpdate(context.Background(), textUpdate("dya1"))

	msgs := env.bot.messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "Did you mean")
	kb := inlineKeyboard(t, msgs[0].ReplyMarkup)
	assert.Contains(t, callbackDatas(kb), "group:day1")

	_, err := env.quiz.ActiveSession(context.Background(), testChatID)
	assert.Error(t, err)
}

func TestHandler_UnknownGroupWithoutSuggestion(t *testing.T) {
	env := newTestEnv(t, false)

	env.handler.handleUpdate(context.Background(), textUpdate("zzzzzzzzzz"))

	msgs := env.bot.messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "was not found")
	assert.NotContains(t, msgs[0].Text, "Did you mean")
	kb := inlineKeyboard(t, msgs[0].ReplyMarkup)
	assert.Equal(t, []string{"group:day1", "group:day2"}, callbackDatas(kb))
}

func TestHandler_GroupButtonStartsQuizInPlace(t *testing.T) {
	env := newTestEnv(t, false)

	env.handler.handleUpdate(context.Background(), callbackUpdate("cb", buildGroupCallback("day1"), 42))

	edits := env.bot.edits()
	require.Len(t, edits, 1)
	assert.Equal(t, 42, edits[0].MessageID)
	assert.Contains(t, edits[0].Text, "1 / 5")
	assert.Empty(t, env.bot.messages())
}

func TestHandler_PerfectRunCelebrates(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	session := startQuiz(t, env, "day1")

	for i, q := range session.Questions {
		env.handler.handleUpdate(ctx, callbackUpdate("cb", buildAnswerCallback(session.ID, i+1, q.CorrectIndex), 55))
	}

	for _, toast := range env.bot.toasts() {
		assert.Equal(t, msgCorrectToast, toast)
	}

	edits := env.bot.edits()
	require.Len(t, edits, 5, "four next questions and the result screen")
	assert.Contains(t, edits[1].Text, "3 / 5")

	result := edits[len(edits)-1]
	assert.Equal(t, 55, result.MessageID)
	assert.Contains(t, result.Text, md("5/5 (100%)"))
	assert.Contains(t, result.Text, md("Perfect! You are a genius! 🌟"))
	assert.Equal(t,
		[]string{buildRetryCallback(session.ID), buildMenuCallback(session.ID)},
		callbackDatas(result.ReplyMarkup),
	)

	// Quiz screen plus confetti.
	msgs := env.bot.messages()
	require.Len(t, msgs, 2)
	confetti := msgs[1].Text
	assert.Equal(t, confettiPieces, len([]rune(strings.ReplaceAll(confetti, "\n", ""))))

	deletes := env.bot.deletes()
	require.Len(t, deletes, 1)
	assert.Contains(t, env.delays, 5*time.Second)
	assert.Contains(t, env.delays, time.Second)
}

func TestHandler_WrongAnswerFreezesKeyboard(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	session := startQuiz(t, env, "day1")

	q := session.Questions[0]
	wrong := (q.CorrectIndex + 1) % len(q.Options)
	env.handler.handleUpdate(ctx, callbackUpdate("cb", buildAnswerCallback(session.ID, 1, wrong), 55))

	assert.Equal(t, []string{msgWrongToast}, env.bot.toasts())

	frozen := env.bot.markupEdits()
	require.Len(t, frozen, 1)
	rows := frozen[0].ReplyMarkup.InlineKeyboard
	require.Len(t, rows, 5)
	assert.Equal(t, "✅ "+q.Options[q.CorrectIndex], rows[q.CorrectIndex][0].Text)
	assert.Equal(t, "❌ "+q.Options[wrong], rows[wrong][0].Text)
	for i := range q.Options {
		assert.Equal(t, buildNoopCallback(), *rows[i][0].CallbackData)
	}

	// Nothing moves before the advance delay.
	assert.Empty(t, env.bot.edits())
	env.flush()

	edits := env.bot.edits()
	require.Len(t, edits, 1)
	assert.Contains(t, edits[0].Text, "2 / 5")
}

func TestHandler_DoubleTapIsRejected(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	session := startQuiz(t, env, "day1")

	q := session.Questions[0]
	env.handler.handleUpdate(ctx, callbackUpdate("cb1", buildAnswerCallback(session.ID, 1, q.CorrectIndex), 55))
	env.handler.handleUpdate(ctx, callbackUpdate("cb2", buildAnswerCallback(session.ID, 1, 0), 55))

	assert.Equal(t, []string{msgCorrectToast, msgAlreadyAnswered}, env.bot.toasts())

	current, err := env.quiz.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, current.Score)
	assert.Len(t, current.Answers, 1)
}

func TestHandler_AnswerOnFinishedQuiz(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	env.handler.handleUpdate(ctx, callbackUpdate("cb", buildAnswerCallback("unknown", 1, 0), 55))
	env.handler.handleUpdate(ctx, callbackUpdate("cb", "quiz:broken", 55))

	assert.Equal(t, []string{msgSessionExpired, ""}, env.bot.toasts())
	assert.Empty(t, env.bot.messages())
}

func TestHandler_RetryStartsSameGroup(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	session := startQuiz(t, env, "day2")

	for i, q := range session.Questions {
		env.handler.handleUpdate(ctx, callbackUpdate("cb", buildAnswerCallback(session.ID, i+1, q.CorrectIndex), 55))
	}
	env.handler.handleUpdate(ctx, callbackUpdate("cb", buildRetryCallback(session.ID), 55))

	_, err := env.quiz.GetSession(ctx, session.ID)
	assert.Error(t, err)

	next, err := env.quiz.ActiveSession(ctx, testChatID)
	require.NoError(t, err)
	assert.NotEqual(t, session.ID, next.ID)
	assert.Equal(t, "day2", next.Group)

	edits := env.bot.edits()
	assert.Contains(t, edits[len(edits)-1].Text, "1 / 3")
}

func TestHandler_MenuShowsGroups(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	session := startQuiz(t, env, "day1")

	env.handler.handleUpdate(ctx, callbackUpdate("cb", buildMenuCallback(session.ID), 55))

	_, err := env.quiz.GetSession(ctx, session.ID)
	assert.Error(t, err)

	edits := env.bot.edits()
	require.Len(t, edits, 1)
	assert.Equal(t, []string{"group:day1", "group:day2"}, callbackDatas(edits[0].ReplyMarkup))
}

func TestHandler_Stop(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	env.handler.handleUpdate(ctx, commandUpdate("/stop", len("/stop")))
	startQuiz(t, env, "day1")
	env.handler.handleUpdate(ctx, commandUpdate("/stop", len("/stop")))

	msgs := env.bot.messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, msgNoActiveQuiz, msgs[0].Text)
	assert.Equal(t, msgQuizStopped, msgs[2].Text)

	_, err := env.quiz.ActiveSession(ctx, testChatID)
	assert.Error(t, err)
}

func TestHandler_Speak(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	session := startQuiz(t, env, "day1")

	env.handler.handleUpdate(ctx, callbackUpdate("cb", buildSpeakCallback(session.ID, 1), 55))
	assert.Equal(t, []string{session.Questions[0].Word}, env.narrator.words)
	assert.Equal(t, []string{""}, env.bot.toasts())

	env.narrator.err = errors.New("tts down")
	env.handler.handleUpdate(ctx, callbackUpdate("cb", buildSpeakCallback(session.ID, 2), 55))
	assert.Equal(t, []string{"", msgNarrationFailure}, env.bot.toasts())

	// A narration failure is not an error for the user.
	assert.Len(t, env.bot.messages(), 1)
}

func TestHandler_AutoNarrate(t *testing.T) {
	env := newTestEnv(t, false)
	env.handler.opts.AutoNarrate = true
	env.narrator.err = errors.New("tts down")

	session := startQuiz(t, env, "day1")
	assert.True(t, session.IsActive())
	assert.Len(t, env.bot.messages(), 1)
}

func TestHandler_NoNarratorHidesListenButton(t *testing.T) {
	env := newTestEnv(t, false)
	env.handler.narrator = nil

	startQuiz(t, env, "day1")

	kb := inlineKeyboard(t, env.bot.messages()[0].ReplyMarkup)
	assert.Len(t, kb.InlineKeyboard, 4)
}

func TestHandler_HelpAndUnknownCommand(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	env.handler.handleUpdate(ctx, commandUpdate("/help", len("/help")))
	env.handler.handleUpdate(ctx, commandUpdate("/nope", len("/nope")))

	msgs := env.bot.messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, msgHelp, msgs[0].Text)
	assert.Equal(t, msgUnknownCommand, msgs[1].Text)
}

func TestHandler_RegisterCommands(t *testing.T) {
	env := newTestEnv(t, false)

	require.NoError(t, env.handler.RegisterCommands())

	require.Len(t, env.bot.requests, 1)
	cfg, ok := env.bot.requests[0].(tgbotapi.SetMyCommandsConfig)
	require.True(t, ok)
	assert.Len(t, cfg.Commands, 5)
}

func TestHandler_RunStopsOnCancel(t *testing.T) {
	env := newTestEnv(t, false)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- env.handler.Run(ctx) }()

	env.bot.updates <- commandUpdate("/help", len("/help"))
	assert.Eventually(t, func() bool { return len(env.bot.messages()) == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("handler did not stop")
	}

	env.bot.mu.Lock()
	defer env.bot.mu.Unlock()
	assert.True(t, env.bot.stopped)
}
