package instrument_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-tradelog/internal/futures"
	"github.com/rxtech-lab/argo-tradelog/internal/instrument"
	"github.com/rxtech-lab/argo-tradelog/internal/journal"
	"github.com/rxtech-lab/argo-tradelog/internal/notify"
	"github.com/rxtech-lab/argo-tradelog/mocks"
	"github.com/rxtech-lab/argo-tradelog/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type FallbackTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	api     *mocks.MockAPI
	general *mocks.MockChannel
	errs    *mocks.MockChannel
	sink    *mocks.MockSink
	proxy   *instrument.Proxy
}

func TestFallbackSuite(t *testing.T) {
	suite.Run(t, new(FallbackTestSuite))
}

func (s *FallbackTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.api = mocks.NewMockAPI(s.ctrl)
	s.general = mocks.NewMockChannel(s.ctrl)
	s.errs = mocks.NewMockChannel(s.ctrl)
	s.sink = mocks.NewMockSink(s.ctrl)
	s.proxy = instrument.New(s.api, s.general, s.errs, s.sink)
}

func (s *FallbackTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func diskFull() error {
	return errors.New(errors.ErrCodeLogWriteFailure, "no space left on device")
}

func (s *FallbackTestSuite) TestGeneralWriteFailureFallsBackToErrorChannel() {
	s.api.EXPECT().ClosePosition(gomock.Any(), "BTCUSDT", futures.PositionSideLong).Return(futures.OrderResult{OrderID: "1"}, nil)

	gomock.InOrder(
		s.general.EXPECT().Write(gomock.Any()).Return(diskFull()),
		s.errs.EXPECT().Write(gomock.Any()).DoAndReturn(func(entry journal.Entry) error {
			s.Equal(journal.LevelError, entry.Level())
			s.Contains(entry.Message(), "Failed to write journal entry")
			s.Contains(entry.Message(), "✅ SUCCESS: Closed LONG position for BTCUSDT")

			return nil
		}),
		s.sink.EXPECT().Send(gomock.Any()).Return(notify.Delivered()),
	)

	got, err := s.proxy.ClosePosition(context.Background(), "BTCUSDT", futures.PositionSideLong)
	s.NoError(err)
	s.Equal("1", got.OrderID)
}

func (s *FallbackTestSuite) TestErrorWriteFailureFallsBackToGeneralChannel() {
	cause := stderrors.New("insufficient margin")
	s.api.EXPECT().PlaceMarketOrder(gomock.Any(), gomock.Any()).Return(futures.OrderResult{}, cause)

	gomock.InOrder(
		s.errs.EXPECT().Write(gomock.Any()).Return(diskFull()),
		s.general.EXPECT().Write(gomock.Any()).DoAndReturn(func(entry journal.Entry) error {
			s.Contains(entry.Message(), "❌ ERROR: Failed to place market SHORT order for SOLUSDT")

			return nil
		}),
		s.sink.EXPECT().Send(gomock.Any()).Return(notify.Delivered()),
	)

	_, err := s.proxy.PlaceMarketOrder(context.Background(), futures.MarketOrderRequest{
		Symbol:   "SOLUSDT",
		Position: futures.PositionSideShort,
	})
	s.True(err == cause)
}

func (s *FallbackTestSuite) TestBothChannelsFailingStillNotifies() {
	cause := stderrors.New("order would immediately trigger")
	s.api.EXPECT().SetStopLossTakeProfit(gomock.Any(), gomock.Any()).Return(nil, cause)

	s.errs.EXPECT().Write(gomock.Any()).Return(diskFull())
	s.general.EXPECT().Write(gomock.Any()).Return(diskFull())
	s.sink.EXPECT().Send(gomock.Any()).DoAndReturn(func(msg notify.Message) notify.Outcome {
		s.Contains(msg.Text, "❌ ERROR: Failed to set SL/TP for BTCUSDT (LONG)")

		return notify.Delivered()
	})

	results, err := s.proxy.SetStopLossTakeProfit(context.Background(), futures.StopLossTakeProfitRequest{
		Symbol: "BTCUSDT",
		Side:   futures.PositionSideLong,
	})
	s.Nil(results)
	s.True(err == cause)
}

func (s *FallbackTestSuite) TestNotificationFailureEntryGoesToGeneralChannel() {
	s.api.EXPECT().CancelOrder(gomock.Any(), gomock.Any()).Return(futures.CancelResult{Symbol: "BTCUSDT"}, nil)

	gomock.InOrder(
		s.general.EXPECT().Write(gomock.Any()).Return(nil),
		s.sink.EXPECT().Send(gomock.Any()).Return(notify.Failed(notify.FailureAuth, stderrors.New("Unauthorized"))),
		s.general.EXPECT().Write(gomock.Any()).DoAndReturn(func(entry journal.Entry) error {
			s.Equal(journal.LevelError, entry.Level())
			s.Equal("Failed to send notification: authentication: Unauthorized", entry.Message())

			return nil
		}),
	)

	_, err := s.proxy.CancelOrder(context.Background(), futures.CancelOrderRequest{Symbol: "BTCUSDT"})
	s.NoError(err)
}

func (s *FallbackTestSuite) TestClockStampsEntries() {
	fixed := mocks.DefaultCandleConfig().StartTime
	proxy := instrument.New(s.api, s.general, s.errs, nil, instrument.WithClock(func() time.Time { return fixed }))

	s.api.EXPECT().ClosePosition(gomock.Any(), gomock.Any(), gomock.Any()).Return(futures.OrderResult{}, nil)
	s.general.EXPECT().Write(gomock.Any()).DoAndReturn(func(entry journal.Entry) error {
		s.True(entry.Time().Equal(fixed))

		return nil
	})

	_, err := proxy.ClosePosition(context.Background(), "BTCUSDT", futures.PositionSideShort)
	s.NoError(err)
}
