// Package config loads the tradelog configuration from an optional YAML file,
// an optional .env file and the process environment, in increasing precedence.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rxtech-lab/argo-tradelog/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLogDir        = "logs"
	DefaultTimezone      = "Asia/Taipei"
	DefaultRetentionDays = 30
	DefaultNotifyTimeout = 10 * time.Second
	DefaultNotifyRate    = 1.0
	DefaultEnvFile       = ".env"
)

// Environment variables that override file values.
const (
	EnvLogDir         = "TRADELOG_LOG_DIR"
	EnvTimezone       = "TRADELOG_TIMEZONE"
	EnvRetentionDays  = "TRADELOG_RETENTION_DAYS"
	EnvTelegramToken  = "TELEGRAM_BOT_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"
	EnvTelegramAPI    = "TELEGRAM_API_ENDPOINT"
	EnvNotifyTimeout  = "TRADELOG_NOTIFY_TIMEOUT"
	EnvNotifyRate     = "TRADELOG_NOTIFY_RATE"
	EnvExclusionFile  = "TRADELOG_EXCLUSION_FILE"
	EnvLogLevel       = "TRADELOG_LOG_LEVEL"
)

type TelegramConfig struct {
	Token  string `yaml:"token" json:"-" jsonschema:"description=Bot token. Prefer the TELEGRAM_BOT_TOKEN variable"`
	ChatID int64  `yaml:"chat_id" json:"chat_id" jsonschema:"description=Chat that receives notifications" validate:"required_with=Token"`
	// Endpoint is a Bot API URL template with two %s verbs for the token and
	// the method. Empty uses the public Bot API.
	Endpoint string `yaml:"endpoint,omitempty" json:"endpoint,omitempty" validate:"omitempty,contains=%s"`
}

// Enabled reports whether Telegram credentials are configured.
func (t TelegramConfig) Enabled() bool {
	return t.Token != ""
}

type NotifyConfig struct {
	// Timeout bounds a single notification, including rate limit waits.
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"description=Upper bound for one notification,default=10s" validate:"gt=0"`
	// RatePerSecond limits notifications. 0 disables the limit.
	RatePerSecond float64 `yaml:"rate_per_second" json:"rate_per_second" jsonschema:"minimum=0,default=1" validate:"gte=0"`
	Burst         int     `yaml:"burst" json:"burst" jsonschema:"minimum=0,default=1" validate:"gte=0"`
}

type Config struct {
	LogDir        string `yaml:"log_dir" json:"log_dir" jsonschema:"description=Journal directory,default=logs" validate:"required"`
	Timezone      string `yaml:"timezone" json:"timezone" jsonschema:"description=IANA timezone for timestamps and file dates,default=Asia/Taipei" validate:"required"`
	RetentionDays int    `yaml:"retention_days" json:"retention_days" jsonschema:"description=Days of journal files to keep. 0 disables pruning,minimum=0,default=30" validate:"gte=0"`
	// SplitDirs keeps general and error files in separate sub directories.
	SplitDirs     bool           `yaml:"split_dirs" json:"split_dirs"`
	LogLevel      string         `yaml:"log_level" json:"log_level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=info" validate:"omitempty,oneof=debug info warn error"`
	Telegram      TelegramConfig `yaml:"telegram" json:"telegram"`
	Notify        NotifyConfig   `yaml:"notify" json:"notify"`
	ExclusionFile string         `yaml:"exclusion_file" json:"exclusion_file"`
	// UnknownOperations is the policy for operations outside the futures capability set.
	UnknownOperations string `yaml:"unknown_operations" json:"unknown_operations" jsonschema:"enum=pass_through,enum=instrument,enum=reject,default=pass_through" validate:"omitempty,oneof=pass_through instrument reject"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogDir:        DefaultLogDir,
		Timezone:      DefaultTimezone,
		RetentionDays: DefaultRetentionDays,
		SplitDirs:     false,
		LogLevel:      "info",
		Telegram:      TelegramConfig{Token: "", ChatID: 0},
		Notify: NotifyConfig{
			Timeout:       DefaultNotifyTimeout,
			RatePerSecond: DefaultNotifyRate,
			Burst:         1,
		},
		ExclusionFile:     "exclusion_coins.json",
		UnknownOperations: "pass_through",
	}
}

// Load reads path (skipped when empty), then .env from the working directory,
// then the environment, and validates the result.
func Load(path string) (*Config, error) {
	return LoadWithEnvFile(path, DefaultEnvFile)
}

// LoadWithEnvFile is Load with an explicit .env location. A missing env file
// is not an error. Variables already set in the environment win over the file.
func LoadWithEnvFile(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read env file %s", envFile)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) readFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	if err := yaml.Unmarshal(content, c); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config file %s", path)
	}

	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := lookup(EnvLogDir); ok {
		c.LogDir = v
	}

	if v, ok := lookup(EnvTimezone); ok {
		c.Timezone = v
	}

	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = strings.ToLower(v)
	}

	if v, ok := lookup(EnvExclusionFile); ok {
		c.ExclusionFile = v
	}

	if v, ok := lookup(EnvTelegramToken); ok {
		c.Telegram.Token = v
	}

	if v, ok := lookup(EnvRetentionDays); ok {
		days, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid %s", EnvRetentionDays)
		}

		c.RetentionDays = days
	}

	if v, ok := lookup(EnvTelegramChatID); ok {
		chatID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid %s", EnvTelegramChatID)
		}

		c.Telegram.ChatID = chatID
	}

	if v, ok := lookup(EnvTelegramAPI); ok {
		c.Telegram.Endpoint = v
	}

	if v, ok := lookup(EnvNotifyTimeout); ok {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid %s", EnvNotifyTimeout)
		}

		c.Notify.Timeout = timeout
	}

	if v, ok := lookup(EnvNotifyRate); ok {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid %s", EnvNotifyRate)
		}

		c.Notify.RatePerSecond = rate
	}

	return nil
}

// lookup returns a non-blank environment value.
func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}

	v = strings.TrimSpace(v)

	return v, v != ""
}

// Validate checks field constraints and that the timezone exists.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	if _, err := c.Location(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	return nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidTimezone, err, "unknown timezone %q", c.Timezone)
	}

	return loc, nil
}
