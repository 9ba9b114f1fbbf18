package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocab-quiz-bot/internal/domain/entities"
)

const groupsPerRow = 2

// buildGroupsKeyboard builds the start screen keyboard, one button per group.
func buildGroupsKeyboard(groups []entities.GroupSummary) *tgbotapi.InlineKeyboardMarkup {
	if len(groups) == 0 {
		return nil
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, g := range groups {
		label := fmt.Sprintf("📅 %s (%d)", g.Name, g.Words)
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildGroupCallback(g.Name)))
		if len(row) == groupsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// buildSuggestionKeyboard offers to start the suggested group.
func buildSuggestionKeyboard(suggestion string) *tgbotapi.InlineKeyboardMarkup {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Start "+suggestion, buildGroupCallback(suggestion)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 All days", buildMenuCallback("")),
		),
	)
	return &kb
}

// buildQuizAnswerKeyboard builds keyboard for a quiz question.
func buildQuizAnswerKeyboard(q entities.Question, sessionID string, questionNum int, withSpeak bool) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		button := tgbotapi.NewInlineKeyboardButtonData(option, buildAnswerCallback(sessionID, questionNum, i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	if withSpeak {
		rows = append(rows, speakRow(sessionID, questionNum))
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// buildFrozenAnswerKeyboard shows the outcome of an answer. Option buttons no longer
// answer: the selected option is marked ✅ or ❌ and the correct one is marked ✅.
func buildFrozenAnswerKeyboard(q entities.Question, selected int, sessionID string, questionNum int, withSpeak bool) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		label := option
		switch {
		case i == q.CorrectIndex:
			label = "✅ " + option
		case i == selected:
			label = "❌ " + option
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildNoopCallback()),
		))
	}
	if withSpeak {
		rows = append(rows, speakRow(sessionID, questionNum))
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

func speakRow(sessionID string, questionNum int) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔊 Listen", buildSpeakCallback(sessionID, questionNum)),
	)
}

// buildQuizResultKeyboard builds keyboard for quiz results screen.
func buildQuizResultKeyboard(sessionID string) *tgbotapi.InlineKeyboardMarkup {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Try again", buildRetryCallback(sessionID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Choose another day", buildMenuCallback(sessionID)),
		),
	)
	return &kb
}
