package journal

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rxtech-lab/argo-tradelog/internal/logger"
	"github.com/rxtech-lab/argo-tradelog/internal/timefmt"
	"github.com/rxtech-lab/argo-tradelog/pkg/errors"
	"go.uber.org/zap"
)

// ChannelConfig describes one logical log stream.
type ChannelConfig struct {
	// Name identifies the channel in diagnostics, e.g. "general" or "error".
	Name string
	// Dir is the directory holding the channel's dated files.
	Dir string
	// Naming maps a calendar date to a file name.
	Naming FileNaming
	// Retention bounds how long rotated files are kept.
	Retention RetentionPolicy
}

// Channel is an append-only writer for one stream, rotating by calendar day in
// the normalizer's zone. It is safe for concurrent use: every append, rotation
// and active-file lookup happens under one mutex.
type Channel struct {
	cfg        ChannelConfig
	normalizer *timefmt.Normalizer
	retention  *Retention
	logger     *logger.Logger

	mu     sync.Mutex
	file   *os.File
	info   os.FileInfo
	date   string
	path   string
	closed bool
}

// Option configures a Channel or a Journal.
type Option func(*options)

type options struct {
	logger *logger.Logger
}

// WithLogger sets the diagnostics logger.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) {
		o.logger = log
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: nil}
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = logger.NewNopLogger()
	}

	return o
}

// NewChannel creates a channel. No file is opened until the first Write.
func NewChannel(cfg ChannelConfig, normalizer *timefmt.Normalizer, opts ...Option) (*Channel, error) {
	if cfg.Dir == "" {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "channel %q has no directory", cfg.Name)
	}

	if normalizer == nil {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "channel %q has no time normalizer", cfg.Name)
	}

	if err := cfg.Retention.Validate(); err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	log := o.logger.Named("journal").With(zap.String("channel", cfg.Name))

	return &Channel{
		cfg:        cfg,
		normalizer: normalizer,
		retention:  NewRetention(normalizer, log),
		logger:     log,
		mu:         sync.Mutex{},
		file:       nil,
		info:       nil,
		date:       "",
		path:       "",
		closed:     false,
	}, nil
}

// Name returns the channel name.
func (c *Channel) Name() string {
	return c.cfg.Name
}

// Dir returns the channel directory.
func (c *Channel) Dir() string {
	return c.cfg.Dir
}

// Write appends entry as one line "[<timestamp>] <message>".
//
// Entries without a timestamp are stamped under the channel lock. An entry dated
// before the open file's date goes to the open file; files are never reopened
// once the channel has rotated away from them. An entry dated after today in the
// channel's zone is refused with LogWriteFailure, so the open file always
// belongs to a date that has been reached. After a rotation, retention runs
// outside the lock and its failures never reach the caller.
func (c *Channel) Write(entry Entry) error {
	rotated, err := c.append(entry)
	if err != nil {
		return err
	}

	if rotated {
		c.Prune()
	}

	return nil
}

func (c *Channel) append(entry Entry) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false, errors.Newf(errors.ErrCodeLogWriteFailure, "channel %q is closed", c.cfg.Name)
	}

	now := c.normalizer.Now()

	at := entry.Time()
	if at.IsZero() {
		at = now
	}

	date := c.normalizer.Date(at)
	if today := c.normalizer.Date(now); date > today {
		return false, errors.Newf(errors.ErrCodeLogWriteFailure,
			"entry dated %s is after today (%s) on channel %q", c.normalizer.Format(at), today, c.cfg.Name)
	}

	rotated := false

	if c.file == nil || date > c.date {
		if err := c.rotate(date); err != nil {
			return false, err
		}

		rotated = true
	}

	line := formatLine(c.normalizer.Format(at), entry.Message())
	if _, err := c.file.WriteString(line); err != nil {
		return rotated, errors.Wrapf(errors.ErrCodeLogWriteFailure, err, "failed to append to %s", c.path)
	}

	return rotated, nil
}

// rotate opens the file for date and closes the previous one. Caller holds mu.
// On failure the previous file stays open.
func (c *Channel) rotate(date string) error {
	if err := os.MkdirAll(c.cfg.Dir, 0755); err != nil {
		return errors.Wrapf(errors.ErrCodeLogWriteFailure, err, "failed to create log directory %s", c.cfg.Dir)
	}

	path := filepath.Join(c.cfg.Dir, c.cfg.Naming.FileName(date))

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeLogWriteFailure, err, "failed to open log file %s", path)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()

		return errors.Wrapf(errors.ErrCodeLogWriteFailure, err, "failed to stat log file %s", path)
	}

	previous := c.file
	previousPath := c.path

	c.file = file
	c.info = info
	c.date = date
	c.path = path

	if previous != nil {
		if err := previous.Close(); err != nil {
			c.logger.Warn("Failed to close rotated log file", zap.String("path", previousPath), zap.Error(err))
		}

		c.logger.Info("Rotated log file",
			zap.String("old_path", previousPath),
			zap.String("new_path", path),
		)
	}

	return nil
}

// Prune applies the channel's retention policy now and returns the deleted paths.
// The open file is never deleted.
func (c *Channel) Prune() []string {
	return c.retention.Prune(c.cfg.Dir, c.cfg.Naming, c.cfg.Retention, c.isActive)
}

func (c *Channel) isActive(path string, info os.FileInfo) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.file == nil {
		return false
	}

	if path == c.path {
		return true
	}

	return os.SameFile(c.info, info)
}

// ActivePath returns the path of the open file, empty before the first write.
func (c *Channel) ActivePath() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.path
}

// Sync flushes the open file to disk.
func (c *Channel) Sync() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.file == nil {
		return nil
	}

	if err := c.file.Sync(); err != nil {
		return errors.Wrapf(errors.ErrCodeLogWriteFailure, err, "failed to sync %s", c.path)
	}

	return nil
}

// Close closes the open file. Later writes fail.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true

	if c.file == nil {
		return nil
	}

	err := c.file.Close()
	c.file = nil
	c.info = nil

	if err != nil {
		return errors.Wrapf(errors.ErrCodeLogWriteFailure, err, "failed to close %s", c.path)
	}

	return nil
}
