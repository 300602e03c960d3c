package instrument_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-tradelog/internal/config"
	"github.com/rxtech-lab/argo-tradelog/internal/futures"
	"github.com/rxtech-lab/argo-tradelog/internal/instrument"
	"github.com/rxtech-lab/argo-tradelog/internal/notify"
	"github.com/rxtech-lab/argo-tradelog/mocks"
	"github.com/rxtech-lab/argo-tradelog/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type FactoryTestSuite struct {
	suite.Suite
	tempDir string
	ctrl    *gomock.Controller
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactoryTestSuite))
}

func (s *FactoryTestSuite) SetupTest() {
	tempDir, err := os.MkdirTemp("", "instrument_factory_test_*")
	s.Require().NoError(err)
	s.tempDir = tempDir
	s.ctrl = gomock.NewController(s.T())
}

func (s *FactoryTestSuite) TearDownTest() {
	s.ctrl.Finish()
	os.RemoveAll(s.tempDir)
}

func (s *FactoryTestSuite) config() *config.Config {
	cfg := config.Default()
	cfg.LogDir = s.tempDir
	cfg.Timezone = "UTC"
	cfg.SplitDirs = true

	return &cfg
}

func (s *FactoryTestSuite) TestDefaultWiringWritesToJournal() {
	api := mocks.NewMockAPI(s.ctrl)
	api.EXPECT().ClosePosition(gomock.Any(), "BTCUSDT", futures.PositionSideLong).Return(futures.OrderResult{}, nil)

	proxy, closeFn, err := instrument.NewDefault(s.config(), api, nil)
	s.Require().NoError(err)

	_, err = proxy.ClosePosition(context.Background(), "BTCUSDT", futures.PositionSideLong)
	s.NoError(err)
	s.NoError(closeFn())

	entries, err := os.ReadDir(filepath.Join(s.tempDir, "general_logs"))
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func (s *FactoryTestSuite) TestZeroRetentionDaysKeepsEveryFile() {
	dir := filepath.Join(s.tempDir, "general_logs")
	s.Require().NoError(os.MkdirAll(dir, 0755))

	old := filepath.Join(dir, "2020-01-01.log")
	s.Require().NoError(os.WriteFile(old, []byte("x\n"), 0644))

	cfg := s.config()
	cfg.RetentionDays = 0

	j, err := instrument.NewJournal(cfg, nil)
	s.Require().NoError(err)
	defer j.Close()

	s.Empty(j.Prune()["general"])
	s.FileExists(old)

	cfg.RetentionDays = 7

	pruning, err := instrument.NewJournal(cfg, nil)
	s.Require().NoError(err)
	defer pruning.Close()

	s.Equal([]string{old}, pruning.Prune()["general"])
	s.NoFileExists(old)
}

func (s *FactoryTestSuite) TestSinkWithoutTelegramIsNop() {
	sink, err := instrument.NewSink(s.config(), nil)
	s.Require().NoError(err)
	s.IsType(notify.NopSink{}, sink)
}

func (s *FactoryTestSuite) TestMissingDependencies() {
	_, _, err := instrument.NewDefault(nil, mocks.NewMockAPI(s.ctrl), nil)
	s.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))

	_, _, err = instrument.NewDefault(s.config(), nil, nil)
	s.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (s *FactoryTestSuite) TestParseUnknownPolicy() {
	tests := map[string]instrument.UnknownPolicy{
		"":             instrument.PassThrough,
		"pass_through": instrument.PassThrough,
		"Instrument":   instrument.Instrument,
		"reject":       instrument.Reject,
	}

	for name, want := range tests {
		got, err := instrument.ParseUnknownPolicy(name)
		s.NoError(err)
		s.Equal(want, got)
	}

	_, err := instrument.ParseUnknownPolicy("explode")
	s.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}
