package notify

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rxtech-lab/argo-tradelog/pkg/errors"
)

// telegramMaxLength is the Bot API limit for one message text.
const telegramMaxLength = 4096

// BotSender is the part of *tgbotapi.BotAPI the transport uses.
type BotSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramTransport sends plain text to one chat through the Bot API.
type TelegramTransport struct {
	mu        sync.Mutex
	bot       BotSender
	authorize func() (BotSender, error)
	chatID    int64
}

// NewTelegramTransport authorizes token against the public Bot API and returns
// a transport for chatID. httpTimeout bounds every Bot API request.
func NewTelegramTransport(token string, chatID int64, httpTimeout time.Duration) (*TelegramTransport, error) {
	return NewTelegramTransportWithEndpoint(token, chatID, tgbotapi.APIEndpoint, httpTimeout)
}

// NewTelegramTransportWithEndpoint is NewTelegramTransport against a self hosted
// Bot API server. endpoint is formatted with the token and the method name.
func NewTelegramTransportWithEndpoint(token string, chatID int64, endpoint string, httpTimeout time.Duration) (*TelegramTransport, error) {
	t, err := NewLazyTelegramTransport(token, chatID, endpoint, httpTimeout)
	if err != nil {
		return nil, err
	}

	if _, err := t.sender(); err != nil {
		return nil, err
	}

	return t, nil
}

// NewLazyTelegramTransport checks the credentials are present but defers the
// getMe authorization to the first Send. A failed authorization is returned by
// that Send and retried by the next one, so an unreachable Bot API at startup
// only costs the notifications sent while it is down.
func NewLazyTelegramTransport(token string, chatID int64, endpoint string, httpTimeout time.Duration) (*TelegramTransport, error) {
	if token == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "telegram bot token is required")
	}

	if chatID == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "telegram chat id is required")
	}

	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	client := &http.Client{Timeout: httpTimeout}

	return &TelegramTransport{
		mu:  sync.Mutex{},
		bot: nil,
		authorize: func() (BotSender, error) {
			bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
			if err != nil {
				return nil, errors.Wrapf(errors.ErrCodeNotificationFailure, err, "failed to authorize telegram bot (%s)", Classify(err))
			}

			return bot, nil
		},
		chatID: chatID,
	}, nil
}

// NewTelegramTransportWithBot uses an already authorized bot.
func NewTelegramTransportWithBot(bot BotSender, chatID int64) *TelegramTransport {
	return &TelegramTransport{
		mu:        sync.Mutex{},
		bot:       bot,
		authorize: nil,
		chatID:    chatID,
	}
}

// sender returns the bot, authorizing it on first use.
func (t *TelegramTransport) sender() (BotSender, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.bot != nil {
		return t.bot, nil
	}

	if t.authorize == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "telegram transport has no bot")
	}

	bot, err := t.authorize()
	if err != nil {
		return nil, err
	}

	t.bot = bot

	return bot, nil
}

// Send delivers text, split on line boundaries when it exceeds the Bot API limit.
// The Bot API client is not context aware, so ctx is checked between parts.
func (t *TelegramTransport) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return NewKindError(FailureUnknown, errors.New(errors.ErrCodeInvalidParameter, "empty notification text"))
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	bot, err := t.sender()
	if err != nil {
		return err
	}

	for _, part := range splitMessage(text, telegramMaxLength) {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg := tgbotapi.NewMessage(t.chatID, part)
		msg.DisableWebPagePreview = true

		if _, err := bot.Send(msg); err != nil {
			return err
		}
	}

	return nil
}

// splitMessage breaks text into parts of at most maxLength bytes, preferring
// line boundaries and never cutting a UTF-8 sequence.
func splitMessage(text string, maxLength int) []string {
	if len(text) <= maxLength {
		return []string{text}
	}

	var (
		parts   []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
	}

	for _, line := range strings.Split(text, "\n") {
		for len(line) > maxLength {
			flush()

			cut := maxLength
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}

			parts = append(parts, line[:cut])
			line = line[cut:]
		}

		extra := len(line)
		if current.Len() > 0 {
			extra++
		}

		if current.Len()+extra > maxLength {
			flush()
		}

		if current.Len() > 0 {
			current.WriteByte('\n')
		}

		current.WriteString(line)
	}

	flush()

	return parts
}

// NopSink accepts every message without sending it.
type NopSink struct{}

// Send implements Sink.
func (NopSink) Send(Message) Outcome {
	return Delivered()
}
