// Package notify tells the workshop about new project requests and contact
// messages.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"moto-repaint-backend/internal/storage"
)

const sendTimeout = 10 * time.Second

// Notifier delivers a short text to the workshop. Implementations must not
// block the caller on network I/O.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Notify(context.Context, string) error { return nil }

// Sender is the part of tgbotapi.BotAPI used here.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// BotFactory builds a Sender for a bot token.
type BotFactory func(token string) (Sender, error)

// NewBot connects to the Telegram Bot API with a bounded HTTP client.
func NewBot(token string) (Sender, error) {
	client := &http.Client{Timeout: sendTimeout}
	return tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
}

// Fallback holds the bot credentials from configuration. They are used when
// the settings table has none.
type Fallback struct {
	Token  string
	ChatID string
}

// Telegram sends notifications through a Telegram bot. Credentials are read
// from settings on each call so that changes in the admin console apply
// without a restart.
type Telegram struct {
	settings storage.Settings
	fallback Fallback
	newBot   BotFactory
	log      *zap.Logger

	mu   sync.Mutex
	bots map[string]Sender

	wg sync.WaitGroup
}

func NewTelegram(settings storage.Settings, fallback Fallback, newBot BotFactory, log *zap.Logger) *Telegram {
	if newBot == nil {
		newBot = NewBot
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Telegram{
		settings: settings,
		fallback: fallback,
		newBot:   newBot,
		log:      log,
		bots:     make(map[string]Sender),
	}
}

func (t *Telegram) credentials(ctx context.Context) (token, chat string) {
	token = strings.TrimSpace(t.fallback.Token)
	chat = strings.TrimSpace(t.fallback.ChatID)
	if t.settings == nil {
		return token, chat
	}
	s, err := t.settings.LoadSettings(ctx)
	if err != nil {
		t.log.Warn("telegram: load settings", zap.Error(err))
		return token, chat
	}
	if v := strings.TrimSpace(s.TelegramBotToken); v != "" {
		token = v
	}
	if v := strings.TrimSpace(s.TelegramChatID); v != "" {
		chat = v
	}
	return token, chat
}

// Notify queues text for delivery and returns immediately. The send runs on
// its own context so a finished HTTP request does not cancel it.
func (t *Telegram) Notify(ctx context.Context, text string) error {
	token, chat := t.credentials(ctx)
	if token == "" || chat == "" {
		t.log.Debug("telegram: skip send, bot token or chat id not configured")
		return nil
	}
	chatID, err := strconv.ParseInt(chat, 10, 64)
	if err != nil {
		return fmt.Errorf("telegram chat id %q: %w", chat, err)
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := t.send(bgCtx, token, chatID, text); err != nil {
			t.log.Warn("telegram: send failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}()
	return nil
}

func (t *Telegram) send(ctx context.Context, token string, chatID int64, text string) error {
	bot, err := t.bot(token)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		_, err := bot.Send(tgbotapi.NewMessage(chatID, text))
		done <- err
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Telegram) bot(token string) (Sender, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if b, ok := t.bots[token]; ok {
		return b, nil
	}
	b, err := t.newBot(token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot: %w", err)
	}
	t.bots[token] = b
	return b, nil
}

// Wait blocks until queued sends have finished.
func (t *Telegram) Wait() {
	t.wg.Wait()
}
