package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"JSMChanges/internal/ports"
)

const maxMessageLen = 4096

// Notifier sends digests to a Telegram chat via bot API.
type Notifier struct {
	bot    *bot.Bot
	chatID string
}

var _ ports.Notifier = (*Notifier)(nil)

// Option tunes the underlying bot client.
type Option func(*settings)

type settings struct {
	serverURL string
	timeout   time.Duration
}

// WithServerURL points the client at another Bot API endpoint.
func WithServerURL(url string) Option {
	return func(s *settings) { s.serverURL = url }
}

// WithTimeout bounds each API call.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

// NewNotifier registers bot token and chat identifier.
func NewNotifier(botToken, chatID string, opts ...Option) (*Notifier, error) {
	if botToken == "" || chatID == "" {
		return nil, fmt.Errorf("telegram notifier misconfigured")
	}

	s := settings{timeout: 5 * time.Second}
	for _, opt := range opts {
		opt(&s)
	}

	botOpts := []bot.Option{
		bot.WithSkipGetMe(),
		bot.WithHTTPClient(s.timeout, &http.Client{Timeout: s.timeout}),
	}
	if s.serverURL != "" {
		botOpts = append(botOpts, bot.WithServerURL(s.serverURL))
	}

	b, err := bot.New(botToken, botOpts...)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Notifier{bot: b, chatID: chatID}, nil
}

// PublishDigest posts a plain-text message to Telegram. Digests longer than
// the API limit are cut.
func (n *Notifier) PublishDigest(ctx context.Context, digest string) error {
	disabled := true
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:             n.chatID,
		Text:               truncate(digest, maxMessageLen),
		LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: &disabled},
	})
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
