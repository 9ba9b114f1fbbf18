package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// URLBuilder returns an audio URL for a word.
type URLBuilder interface {
	URL(text string) (string, error)
}

// AudioNarrator sends the pronunciation of a word as an audio message.
type AudioNarrator struct {
	bot  BotAPI
	urls URLBuilder
}

func NewAudioNarrator(bot BotAPI, urls URLBuilder) *AudioNarrator {
	return &AudioNarrator{bot: bot, urls: urls}
}

func (n *AudioNarrator) Narrate(ctx context.Context, chatID int64, word string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	u, err := n.urls.URL(word)
	if err != nil {
		return fmt.Errorf("build narration url: %w", err)
	}

	audio := tgbotapi.NewAudio(chatID, tgbotapi.FileURL(u))
	audio.Title = word
	audio.Caption = "🔊 " + word
	audio.DisableNotification = true

	if _, err = n.bot.Send(audio); err != nil {
		return fmt.Errorf("send narration: %w", err)
	}
	return nil
}
