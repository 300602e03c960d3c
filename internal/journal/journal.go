// Package journal keeps the durable, dated record of a bot's activity: one
// general and one error channel, each rotated by calendar day in a configured
// timezone and pruned by age.
//
// Default layout, one directory per deployment:
//
//	logs/2025-03-01.log
//	logs/2025-03-01_error.log
//
// With SplitDirs the channels live in logs/general_logs and logs/error_logs.
package journal

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/rxtech-lab/argo-tradelog/internal/logger"
	"github.com/rxtech-lab/argo-tradelog/internal/timefmt"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	GeneralChannel = "general"
	ErrorChannel   = "error"
)

// Config configures a Journal.
type Config struct {
	// Dir is the deployment log directory.
	Dir string
	// Retention applies to both channels independently.
	Retention RetentionPolicy
	// SplitDirs puts each channel in its own sub directory.
	SplitDirs bool
}

// Journal is the general/error channel pair.
type Journal struct {
	general    *Channel
	errs       *Channel
	normalizer *timefmt.Normalizer
	logger     *logger.Logger
}

// New creates both channels of a journal.
func New(cfg Config, normalizer *timefmt.Normalizer, opts ...Option) (*Journal, error) {
	generalDir, errorDir := cfg.Dir, cfg.Dir
	if cfg.SplitDirs {
		generalDir = filepath.Join(cfg.Dir, "general_logs")
		errorDir = filepath.Join(cfg.Dir, "error_logs")
	}

	general, err := NewChannel(ChannelConfig{
		Name:      GeneralChannel,
		Dir:       generalDir,
		Naming:    GeneralNaming,
		Retention: cfg.Retention,
	}, normalizer, opts...)
	if err != nil {
		return nil, err
	}

	errs, err := NewChannel(ChannelConfig{
		Name:      ErrorChannel,
		Dir:       errorDir,
		Naming:    ErrorNaming,
		Retention: cfg.Retention,
	}, normalizer, opts...)
	if err != nil {
		return nil, err
	}

	o := buildOptions(opts)

	return &Journal{
		general:    general,
		errs:       errs,
		normalizer: normalizer,
		logger:     o.logger.Named("journal"),
	}, nil
}

// General returns the general channel.
func (j *Journal) General() *Channel {
	return j.general
}

// Error returns the error channel.
func (j *Journal) Error() *Channel {
	return j.errs
}

// WriteLog appends message to the general channel. at is any input the
// normalizer accepts; nil means now. An unusable at, or one dated after today,
// is reported on the error channel and the current time is used instead.
func (j *Journal) WriteLog(message string, at any) error {
	entryTime := j.resolveTime("WriteLog", at)

	return j.general.Write(NewEntry(LevelInfo, message, entryTime))
}

// WriteErrorLog appends message to the error channel, see WriteLog.
func (j *Journal) WriteErrorLog(message string, at any) error {
	entryTime := j.resolveTime("WriteErrorLog", at)

	return j.errs.Write(NewEntry(LevelError, message, entryTime))
}

func (j *Journal) resolveTime(caller string, at any) time.Time {
	if at == nil {
		return time.Time{}
	}

	t, err := j.normalizer.Parse(at)
	if err == nil && j.normalizer.Date(t) <= j.normalizer.Date(j.normalizer.Now()) {
		return t
	}

	warning := fmt.Sprintf("[WARNING] Invalid time format in %s: %v. Using current time instead.", caller, at)
	if err == nil {
		warning = fmt.Sprintf("[WARNING] Future time in %s: %s. Using current time instead.", caller, j.normalizer.Format(t))
	}
	if werr := j.errs.Write(Error(warning)); werr != nil {
		j.logger.Warn("Failed to record invalid time warning", zap.Error(werr))
	}

	return time.Time{}
}

// Prune applies retention to both channels and returns the deleted paths per channel.
func (j *Journal) Prune() map[string][]string {
	var (
		mu     sync.Mutex
		result = make(map[string][]string, 2)
		group  errgroup.Group
	)

	for _, ch := range []*Channel{j.general, j.errs} {
		group.Go(func() error {
			deleted := ch.Prune()

			mu.Lock()
			result[ch.Name()] = deleted
			mu.Unlock()

			return nil
		})
	}

	_ = group.Wait()

	return result
}

// Sync flushes both channels.
func (j *Journal) Sync() error {
	var group errgroup.Group

	group.Go(j.general.Sync)
	group.Go(j.errs.Sync)

	return group.Wait()
}

// Close closes both channels and returns the first error.
func (j *Journal) Close() error {
	generalErr := j.general.Close()
	errorErr := j.errs.Close()

	if generalErr != nil {
		return generalErr
	}

	return errorErr
}
