package telegram

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-tradelog/e2e/telegram/mockserver"
	"github.com/rxtech-lab/argo-tradelog/internal/config"
	"github.com/rxtech-lab/argo-tradelog/internal/futures"
	"github.com/rxtech-lab/argo-tradelog/internal/instrument"
	"github.com/rxtech-lab/argo-tradelog/internal/notify"
	"github.com/rxtech-lab/argo-tradelog/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	testToken  = "123456:TEST-TOKEN"
	testChatID = int64(-1001234)
)

type TelegramE2ETestSuite struct {
	suite.Suite
	server  *mockserver.MockTelegramServer
	tempDir string
	ctrl    *gomock.Controller
}

func TestTelegramE2ESuite(t *testing.T) {
	suite.Run(t, new(TelegramE2ETestSuite))
}

func (suite *TelegramE2ETestSuite) SetupTest() {
	suite.server = mockserver.NewMockTelegramServer(testToken)
	suite.Require().NoError(suite.server.Start(":0"))

	tempDir, err := os.MkdirTemp("", "telegram-e2e")
	suite.Require().NoError(err)
	suite.tempDir = tempDir
	suite.ctrl = gomock.NewController(suite.T())
}

func (suite *TelegramE2ETestSuite) TearDownTest() {
	suite.ctrl.Finish()
	suite.NoError(suite.server.Stop())
	os.RemoveAll(suite.tempDir)
}

func (suite *TelegramE2ETestSuite) config() *config.Config {
	cfg := config.Default()
	cfg.LogDir = suite.tempDir
	cfg.Timezone = "UTC"
	cfg.Telegram = config.TelegramConfig{
		Token:    testToken,
		ChatID:   testChatID,
		Endpoint: suite.server.Endpoint(),
	}
	cfg.Notify.RatePerSecond = 0
	cfg.Notify.Timeout = 2 * time.Second

	return &cfg
}

func (suite *TelegramE2ETestSuite) TestSinkDelivers() {
	sink, err := instrument.NewSink(suite.config(), nil)
	suite.Require().NoError(err)

	outcome := sink.Send(notify.Message{Text: "hello"})
	suite.True(outcome.OK(), outcome.String())

	messages := suite.server.Messages()
	suite.Require().Len(messages, 1)
	suite.Equal(testChatID, messages[0].ChatID)
	suite.Equal("hello", messages[0].Text)
	suite.True(messages[0].DisableWebPagePreview)
}

func (suite *TelegramE2ETestSuite) TestInvalidTokenIsAuthFailure() {
	cfg := suite.config()
	cfg.Telegram.Token = "999:WRONG"

	sink, err := instrument.NewSink(cfg, nil)
	suite.Require().NoError(err)

	outcome := sink.Send(notify.Message{Text: "hello"})
	suite.Equal(notify.FailureAuth, outcome.Kind)
	suite.Empty(suite.server.Messages())
}

func (suite *TelegramE2ETestSuite) TestUnreachableAtStartupRecovers() {
	offline := mockserver.NewMockTelegramServer(testToken)
	suite.Require().NoError(offline.Start("127.0.0.1:0"))

	address := strings.TrimPrefix(offline.BaseURL(), "http://")
	cfg := suite.config()
	cfg.Telegram.Endpoint = offline.Endpoint()
	suite.Require().NoError(offline.Stop())

	api := mocks.NewMockAPI(suite.ctrl)
	api.EXPECT().ClosePosition(gomock.Any(), "BTCUSDT", futures.PositionSideLong).Return(futures.OrderResult{}, nil).Times(2)

	proxy, closeFn, err := instrument.NewDefault(cfg, api, nil)
	suite.Require().NoError(err)
	defer closeFn()

	_, err = proxy.ClosePosition(context.Background(), "BTCUSDT", futures.PositionSideLong)
	suite.Require().NoError(err)

	online := mockserver.NewMockTelegramServer(testToken)
	suite.Require().NoError(online.Start(address))
	defer online.Stop()

	_, err = proxy.ClosePosition(context.Background(), "BTCUSDT", futures.PositionSideLong)
	suite.Require().NoError(err)

	messages := online.Messages()
	suite.Require().Len(messages, 1)
	suite.Contains(messages[0].Text, "Closed LONG position for BTCUSDT")

	general, err := os.ReadFile(filepath.Join(suite.tempDir, generalLogName(suite.tempDir)))
	suite.Require().NoError(err)
	suite.Contains(string(general), "Failed to send notification: network")
}

func (suite *TelegramE2ETestSuite) TestBotAPIErrorsAreClassified() {
	sink, err := instrument.NewSink(suite.config(), nil)
	suite.Require().NoError(err)

	suite.server.FailNext(
		mockserver.Failure{Code: 429, Description: "Too Many Requests: retry after 3", RetryAfter: 3},
		mockserver.Failure{Code: 403, Description: "Forbidden: bot was blocked by the user"},
		mockserver.Failure{Code: 502, Description: "Bad Gateway"},
	)

	suite.Equal(notify.FailureRateLimit, sink.Send(notify.Message{Text: "one"}).Kind)
	suite.Equal(notify.FailureAuth, sink.Send(notify.Message{Text: "two"}).Kind)
	suite.Equal(notify.FailureNetwork, sink.Send(notify.Message{Text: "three"}).Kind)
	suite.Empty(suite.server.Messages())
}

func (suite *TelegramE2ETestSuite) TestSlowServerTimesOut() {
	cfg := suite.config()
	cfg.Notify.Timeout = 200 * time.Millisecond

	sink, err := instrument.NewSink(cfg, nil)
	suite.Require().NoError(err)

	suite.server.FailNext(mockserver.Failure{Delay: 2 * time.Second})

	start := time.Now()
	outcome := sink.Send(notify.Message{Text: "slow"})
	suite.Equal(notify.FailureTimeout, outcome.Kind)
	suite.Less(time.Since(start), time.Second)
}

func (suite *TelegramE2ETestSuite) TestInstrumentedOrderNotifiesAndJournals() {
	api := mocks.NewMockAPI(suite.ctrl)
	api.EXPECT().PlaceMarketOrder(gomock.Any(), gomock.Any()).Return(futures.OrderResult{OrderID: "42"}, nil)
	api.EXPECT().ClosePosition(gomock.Any(), "ETHUSDT", futures.PositionSideShort).Return(futures.OrderResult{}, errors.New("position not found"))

	proxy, closeFn, err := instrument.NewDefault(suite.config(), api, nil)
	suite.Require().NoError(err)
	defer closeFn()

	ctx := context.Background()

	result, err := proxy.PlaceMarketOrder(ctx, futures.MarketOrderRequest{
		Symbol:   "BTCUSDT",
		Position: futures.PositionSideLong,
		Leverage: 5,
		Amount:   decimal.NewFromInt(100),
	})
	suite.Require().NoError(err)
	suite.Equal("42", result.OrderID)

	_, err = proxy.ClosePosition(ctx, "ETHUSDT", futures.PositionSideShort)
	suite.EqualError(err, "position not found")

	messages := suite.server.Messages()
	suite.Require().Len(messages, 2)
	suite.True(strings.HasPrefix(messages[0].Text, "✅ SUCCESS: Placed market LONG order for BTCUSDT"))
	suite.Contains(messages[1].Text, "Failed to close SHORT position for ETHUSDT")
	suite.Contains(messages[1].Text, "Error: position not found")

	entries, err := os.ReadDir(suite.tempDir)
	suite.Require().NoError(err)

	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	suite.Len(names, 2)

	errorLog, err := os.ReadFile(filepath.Join(suite.tempDir, names[indexOfErrorLog(names)]))
	suite.Require().NoError(err)
	suite.Contains(string(errorLog), "Failed to close SHORT position for ETHUSDT")
}

func indexOfErrorLog(names []string) int {
	for i, name := range names {
		if strings.HasSuffix(name, "_error.log") {
			return i
		}
	}

	return 0
}

// generalLogName returns the first general channel file in dir.
func generalLogName(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".log") && !strings.HasSuffix(entry.Name(), "_error.log") {
			return entry.Name()
		}
	}

	return ""
}
