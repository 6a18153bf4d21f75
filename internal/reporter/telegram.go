package reporter

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Reporter delivers run outcome notifications.
type Reporter interface {
	RunCompleted(formType, userID string, fieldCount int) error
	RunFailed(formType, userID string, runErr error) error
}

// Nop discards all notifications. Used when no bot token is configured.
type Nop struct{}

func (Nop) RunCompleted(string, string, int) error { return nil }
func (Nop) RunFailed(string, string, error) error  { return nil }

// TelegramReporter sends run outcomes to a Telegram chat.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &TelegramReporter{bot: bot, chatID: chatID}, nil
}

func (t *TelegramReporter) sendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML"
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramReporter) RunCompleted(formType, userID string, fieldCount int) error {
	return t.sendMessage(fmt.Sprintf(
		"✅ <b>%s</b> run completed for user %s (%d fields filled)",
		formType, userID, fieldCount,
	))
}

func (t *TelegramReporter) RunFailed(formType, userID string, runErr error) error {
	return t.sendMessage(fmt.Sprintf(
		"⚠️ <b>%s</b> run failed for user %s:\n%v",
		formType, userID, runErr,
	))
}

var (
	_ Reporter = (*TelegramReporter)(nil)
	_ Reporter = Nop{}
)
