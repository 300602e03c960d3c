package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rxtech-lab/argo-tradelog/internal/config"
	"github.com/rxtech-lab/argo-tradelog/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type TradelogCmdTestSuite struct {
	suite.Suite
	tempDir    string
	configPath string
	out        *bytes.Buffer
}

func TestTradelogCmdSuite(t *testing.T) {
	suite.Run(t, new(TradelogCmdTestSuite))
}

func (suite *TradelogCmdTestSuite) SetupTest() {
	tempDir, err := os.MkdirTemp("", "tradelog-cmd-test")
	suite.Require().NoError(err)
	suite.tempDir = tempDir

	for _, key := range []string{
		"TRADELOG_CONFIG", config.EnvLogDir, config.EnvTimezone, config.EnvRetentionDays,
		config.EnvTelegramToken, config.EnvTelegramChatID, config.EnvTelegramAPI, config.EnvExclusionFile,
	} {
		suite.T().Setenv(key, "")
		suite.Require().NoError(os.Unsetenv(key))
	}

	suite.configPath = filepath.Join(tempDir, "tradelog.yaml")
	content := "log_dir: " + filepath.Join(tempDir, "logs") + "\n" +
		"timezone: UTC\n" +
		"retention_days: 7\n" +
		"exclusion_file: " + filepath.Join(tempDir, "exclusion_coins.json") + "\n"
	suite.Require().NoError(os.WriteFile(suite.configPath, []byte(content), 0644))

	suite.out = &bytes.Buffer{}
}

func (suite *TradelogCmdTestSuite) TearDownTest() {
	err := os.RemoveAll(suite.tempDir)
	suite.Require().NoError(err)
}

func (suite *TradelogCmdTestSuite) run(args ...string) error {
	suite.out.Reset()

	argv := append([]string{"tradelog", "--config", suite.configPath, "--env-file", "", "--quiet"}, args...)

	return newApp(suite.out).Run(context.Background(), argv)
}

func (suite *TradelogCmdTestSuite) TestNormalizeEpoch() {
	suite.Require().NoError(suite.run("normalize", "0"))
	suite.Equal("1970-01-01 00:00:00 UTC+00:00\n", suite.out.String())
}

func (suite *TradelogCmdTestSuite) TestNormalizeWithTimezone() {
	suite.Require().NoError(suite.run("normalize", "--timezone", "Asia/Taipei", "2025-03-01T00:00:00Z"))
	suite.Equal("2025-03-01 08:00:00 UTC+08:00\n", suite.out.String())
}

func (suite *TradelogCmdTestSuite) TestNormalizeRejectsGarbage() {
	err := suite.run("normalize", "yesterday-ish")
	suite.Error(err)
	suite.Equal(2, errors.ExitCode(err))
}

func (suite *TradelogCmdTestSuite) TestMissingConfigExitsAsValidation() {
	suite.configPath = filepath.Join(suite.tempDir, "missing.yaml")

	err := suite.run("log", "hello")
	suite.Error(err)
	suite.Contains(err.Error(), "[101 invalid_configuration]")
	suite.Equal(2, errors.ExitCode(err))
}

func (suite *TradelogCmdTestSuite) TestLogThenPrune() {
	suite.Require().NoError(suite.run("log", "--at", "0", "hello", "world"))

	oldFile := filepath.Join(suite.tempDir, "logs", "1970-01-01.log")
	content, err := os.ReadFile(oldFile)
	suite.Require().NoError(err)
	suite.Equal("[1970-01-01 00:00:00 UTC+00:00] hello world\n", string(content))

	suite.Require().NoError(suite.run("prune"))
	suite.Contains(suite.out.String(), "general: 1 file(s) deleted")
	suite.Contains(suite.out.String(), oldFile)
	suite.Contains(suite.out.String(), "error: 0 file(s) deleted")
	suite.NoFileExists(oldFile)
}

func (suite *TradelogCmdTestSuite) TestLogToErrorChannel() {
	suite.Require().NoError(suite.run("log", "--error", "--at", "1741000000000", "boom"))

	content, err := os.ReadFile(filepath.Join(suite.tempDir, "logs", "2025-03-03_error.log"))
	suite.Require().NoError(err)
	suite.True(strings.HasSuffix(string(content), "] boom\n"))
}

func (suite *TradelogCmdTestSuite) TestExclusionCommands() {
	suite.Require().NoError(suite.run("exclude", "stable", "USDCUSDT", "DAI"))
	suite.Equal("added USDCUSDT\nadded DAI\n", suite.out.String())

	suite.Require().NoError(suite.run("exclude", "problematic", "LUNA", "LUNA"))
	suite.Equal("added LUNA\nskipped LUNA\n", suite.out.String())

	suite.Require().NoError(suite.run("exclude", "list"))
	suite.Equal("stable: DAI,USDC\nproblematic: LUNA\n", suite.out.String())

	suite.Require().NoError(suite.run("exclude", "filter", "BTC,USDC", "ETH", "LUNA"))
	suite.Equal("BTC,ETH\n", suite.out.String())
}

func (suite *TradelogCmdTestSuite) TestNotifyWithoutTelegramUsesNopSink() {
	suite.Require().NoError(suite.run("notify", "--text", "hello"))
	suite.Equal("delivered\n", suite.out.String())
}

func (suite *TradelogCmdTestSuite) TestInitWritesSchemaAndSample() {
	dir := filepath.Join(suite.tempDir, "generated")

	suite.Require().NoError(suite.run("init", "--dir", dir))
	suite.FileExists(filepath.Join(dir, config.SchemaFileName))

	samplePath := filepath.Join(dir, "tradelog.yaml")
	cfg, err := config.LoadWithEnvFile(samplePath, "")
	suite.Require().NoError(err)
	suite.Equal(config.DefaultTimezone, cfg.Timezone)

	suite.Require().NoError(os.WriteFile(samplePath, []byte("timezone: UTC\n"), 0644))
	suite.Require().NoError(suite.run("init", "--dir", dir))
	suite.Contains(suite.out.String(), "kept existing")

	content, err := os.ReadFile(samplePath)
	suite.Require().NoError(err)
	suite.Equal("timezone: UTC\n", string(content))
}
