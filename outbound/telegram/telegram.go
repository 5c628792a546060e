package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

//go:generate mockgen -destination=mocks/mock_telegram.go -package=mocks stock-alert/outbound/telegram Sender

// Sender is the chat transport's send primitive. Implementations must be safe
// for concurrent use.
type Sender interface {
	SendText(chatID int64, text string) error
}

// BotSender sends through the Bot API client, which holds no per-call state.
type BotSender struct {
	Bot *tgbotapi.BotAPI
}

func (out BotSender) SendText(chatID int64, text string) error {
	_, err := out.Bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
