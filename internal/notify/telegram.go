package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotSender is the part of *tgbotapi.BotAPI the channel uses.
type BotSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram mirrors notifications into an operator chat. Phone numbers are
// masked and the text of sensitive kinds is withheld; the passenger still
// receives the full message over the API channel.
type Telegram struct {
	bot    BotSender
	chatID int64
}

// NewTelegram connects a bot with token. It calls getMe once to verify the
// token.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}
	return NewTelegramWithBot(bot, chatID), nil
}

func NewTelegramWithBot(bot BotSender, chatID int64) *Telegram {
	return &Telegram{bot: bot, chatID: chatID}
}

func (t *Telegram) Name() string {
	return "telegram"
}

func (t *Telegram) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	out := tgbotapi.NewMessage(t.chatID, formatOperatorText(msg))
	out.DisableWebPagePreview = true
	if _, err := t.bot.Send(out); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func formatOperatorText(msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", msg.Kind)
	if msg.ReferenceNumber != "" {
		fmt.Fprintf(&b, " %s", msg.ReferenceNumber)
	}
	fmt.Fprintf(&b, " to %s", maskPhone(msg.Phone))
	if !msg.Kind.Sensitive() {
		fmt.Fprintf(&b, "\n%s", msg.Text)
	}
	return b.String()
}

func maskPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if len(phone) <= 3 {
		return "***"
	}
	return strings.Repeat("*", len(phone)-3) + phone[len(phone)-3:]
}
