package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"streakwatch/internal/observability/metrics"
	"streakwatch/internal/resilience/retry"
)

// telegramSender is the slice of the bot API the notifier needs. It exists so
// tests can substitute a fake for the live API client.
type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramConfig contains configuration for the Telegram channel.
type TelegramConfig struct {
	// Token is the bot token issued by BotFather.
	Token string

	// ChatID is the destination chat or channel.
	ChatID int64
}

// TelegramNotifier delivers alerts to a Telegram chat. Messages are rendered
// by the caller as HTML; this type only handles transport concerns: rate
// limiting against the Bot API and retrying transient failures.
type TelegramNotifier struct {
	bot         telegramSender
	chatID      int64
	rateLimiter *RateLimiter
	retryCfg    retry.Config
}

// NewTelegramNotifier authenticates against the Bot API and returns a ready
// notifier. The limiter is set to 1 req/s with burst 1, matching Telegram's
// per-chat message limit.
func NewTelegramNotifier(cfg TelegramConfig) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	slog.Info("telegram notifier initialized",
		slog.Int64("chat_id", cfg.ChatID),
		slog.String("bot", bot.Self.UserName))

	return newTelegramNotifier(bot, cfg.ChatID), nil
}

func newTelegramNotifier(bot telegramSender, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{
		bot:         bot,
		chatID:      chatID,
		rateLimiter: NewRateLimiter(1.0, 1),
		retryCfg:    retry.NotifierConfig(),
	}
}

// Notify sends text as an HTML-formatted message. Transient delivery errors
// are retried per the notifier retry policy; the error returned is the last
// attempt's.
func (n *TelegramNotifier) Notify(ctx context.Context, text string) error {
	if err := n.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("telegram rate limit: %w", err)
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	err := retry.WithBackoff(ctx, n.retryCfg, func() error {
		_, sendErr := n.bot.Send(msg)
		return classifyTelegramError(sendErr)
	})
	if err != nil {
		metrics.RecordNotification("telegram", "error")
		slog.Error("telegram notification failed",
			slog.Int64("chat_id", n.chatID),
			slog.Any("error", err))
		return fmt.Errorf("telegram send: %w", err)
	}

	metrics.RecordNotification("telegram", "sent")
	slog.Info("telegram notification sent", slog.Int64("chat_id", n.chatID))
	return nil
}

// classifyTelegramError converts Bot API errors that carry an HTTP status into
// the retry layer's error type, so 429 and 5xx responses get retried while
// hard client errors (bad token, unknown chat) fail fast.
func classifyTelegramError(err error) error {
	if err == nil {
		return nil
	}
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) && tgErr.Code != 0 {
		return &retry.HTTPError{StatusCode: tgErr.Code, Message: tgErr.Message}
	}
	return err
}
