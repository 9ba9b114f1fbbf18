// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocab-quiz-bot/internal/domain/entities"
)

// Notices.
const (
	msgInternalError    = "Something went wrong. Please try again later."
	msgEmptyGroup       = "This day has no words yet. Choose another one."
	msgNoGroups         = "No vocabulary is loaded yet. Please come back later."
	msgChooseGroup      = "Choose a day to practice:"
	msgNoActiveQuiz     = "There is no quiz running. Use /quiz to start one."
	msgQuizStopped      = "Quiz stopped. Use /quiz to start a new one."
	msgSessionExpired   = "This quiz is over. Start a new one!"
	msgAlreadyAnswered  = "Already answered, wait for the next question."
	msgUnknownCommand   = "Unknown command. Use /help to see what I can do."
	msgCorrectToast     = "✅ Correct!"
	msgWrongToast       = "❌ Wrong!"
	msgNarrationFailure = "Pronunciation is not available right now."
)

const msgHelp = `Commands:

/start - welcome screen
/quiz [day] - start a quiz, e.g. /quiz day1
/groups - list the available days
/stop - stop the current quiz
/help - this message

You can also just type the name of a day.`

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string, kb *tgbotapi.InlineKeyboardMarkup) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	edit.ReplyMarkup = kb
	return edit
}

// buildWelcomeMessage builds the start screen text (MarkdownV2 safe).
func buildWelcomeMessage(firstName string) string {
	var sb strings.Builder

	greeting := "Hello!"
	if firstName != "" {
		greeting = fmt.Sprintf("Hello, %s!", firstName)
	}
	sb.WriteString(md("👋 " + greeting))
	sb.WriteString("\n\n")

	sb.WriteString(bold("Vocabulary Quiz"))
	sb.WriteString(md(" helps you memorize words day by day."))
	sb.WriteString("\n\n")

	sb.WriteString(md("📖 Every day is a small group of words."))
	sb.WriteString("\n")
	sb.WriteString(md("🧠 For each word pick its meaning out of four options."))
	sb.WriteString("\n")
	sb.WriteString(md("🔊 Tap the listen button to hear the word."))
	sb.WriteString("\n\n")

	sb.WriteString(md(msgChooseGroup))

	return sb.String()
}

// buildGroupsMessage lists groups with their word counts (MarkdownV2 safe).
func buildGroupsMessage(groups []entities.GroupSummary) string {
	if len(groups) == 0 {
		return md(msgNoGroups)
	}

	var sb strings.Builder
	sb.WriteString(bold("Available days"))
	sb.WriteString("\n\n")
	for _, g := range groups {
		sb.WriteString(md(fmt.Sprintf("• %s (%s)", g.Name, formatWordCount(g.Words))))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(md(msgChooseGroup))

	return sb.String()
}

func formatWordCount(n int) string {
	if n == 1 {
		return "1 word"
	}
	return fmt.Sprintf("%d words", n)
}

// buildGroupNotFoundMessage tells the user the typed group does not exist.
func buildGroupNotFoundMessage(input, suggestion string) string {
	text := md("🤔 Day ") + bold(input) + md(" was not found.")
	if suggestion != "" {
		text += md("\nDid you mean ") + bold(suggestion) + md("?")
	}
	return text + "\n\n" + md(msgChooseGroup)
}

// formatQuizQuestion formats the quiz screen (MarkdownV2 safe).
func formatQuizQuestion(group string, q entities.Question, questionNum, total int) string {
	return fmt.Sprintf(
		"%s\n%s\n\n%s\n\n%s",
		md(fmt.Sprintf("📚 %s · %d / %d", group, questionNum, total)),
		md(buildProgressBar(questionNum-1, total, progressBarLength)),
		bold(q.Word),
		italic("Choose the correct meaning:"),
	)
}

// formatQuizResult formats the result screen (MarkdownV2 safe).
func formatQuizResult(group string, result entities.QuizResult) string {
	return fmt.Sprintf(
		"%s %s\n\n%s %s\n%s\n\n%s",
		md(tierEmoji(result.Tier)),
		md(fmt.Sprintf("Quiz %s finished!", group)),
		md("Score:"),
		bold(fmt.Sprintf("%d/%d (%d%%)", result.Score, result.Total, result.Percentage)),
		md(buildProgressBar(result.Score, result.Total, progressBarLength)),
		md(result.Message),
	)
}

func tierEmoji(tier entities.ResultTier) string {
	switch tier {
	case entities.TierPerfect:
		return "🏆"
	case entities.TierGreat:
		return "🎯"
	case entities.TierGood:
		return "📈"
	default:
		return "📚"
	}
}
