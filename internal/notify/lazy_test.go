package notify

import (
	"context"
	stderrors "errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBot struct {
	texts []string
}

func (b *recordingBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.texts = append(b.texts, c.(tgbotapi.MessageConfig).Text)

	return tgbotapi.Message{}, nil
}

func TestLazyAuthorizationRetriesUntilItSucceeds(t *testing.T) {
	bot := &recordingBot{}
	attempts := 0

	transport := &TelegramTransport{
		chatID: 42,
		authorize: func() (BotSender, error) {
			attempts++
			if attempts == 1 {
				return nil, NewKindError(FailureNetwork, stderrors.New("connection refused"))
			}

			return bot, nil
		},
	}

	err := transport.Send(context.Background(), "first")
	require.Error(t, err)
	assert.Equal(t, FailureNetwork, Classify(err))

	require.NoError(t, transport.Send(context.Background(), "second"))
	require.NoError(t, transport.Send(context.Background(), "third"))

	assert.Equal(t, 2, attempts)
	assert.Equal(t, []string{"second", "third"}, bot.texts)
}
