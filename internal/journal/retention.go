package journal

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rxtech-lab/argo-tradelog/internal/logger"
	"github.com/rxtech-lab/argo-tradelog/internal/timefmt"
	"github.com/rxtech-lab/argo-tradelog/pkg/errors"
	"go.uber.org/zap"
)

// RetentionPolicy bounds how long rotated files are kept.
type RetentionPolicy struct {
	// MaxAgeDays is the largest age, in calendar days, a file may reach before it is deleted.
	// 0 keeps only today's file.
	MaxAgeDays int `yaml:"max_age_days" json:"max_age_days"`
	// KeepAll disables pruning and overrides MaxAgeDays.
	KeepAll bool `yaml:"keep_all" json:"keep_all"`
}

// Validate checks the policy bounds.
func (p RetentionPolicy) Validate() error {
	if p.MaxAgeDays < 0 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "max_age_days must be >= 0, got %d", p.MaxAgeDays)
	}

	return nil
}

// ActiveFile reports whether the file at path is a channel's currently open file.
type ActiveFile func(path string, info os.FileInfo) bool

// Retention deletes rotated files older than a policy allows.
// It holds no state beyond its clock and logger.
type Retention struct {
	normalizer *timefmt.Normalizer
	logger     *logger.Logger
}

// NewRetention creates a Retention that measures age in the normalizer's zone.
func NewRetention(normalizer *timefmt.Normalizer, log *logger.Logger) *Retention {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Retention{
		normalizer: normalizer,
		logger:     log,
	}
}

// Prune deletes the files in dir owned by naming whose rotation date is more than
// policy.MaxAgeDays days before today. The age comes from the file name, not the mtime.
// isActive may be nil. Failures are logged and skipped; the deleted paths are returned.
func (r *Retention) Prune(dir string, naming FileNaming, policy RetentionPolicy, isActive ActiveFile) []string {
	if err := policy.Validate(); err != nil {
		r.logger.Warn("Skipping retention with invalid policy", zap.String("dir", dir), zap.Error(err))

		return nil
	}

	if policy.KeepAll {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Warn("Failed to read log directory for retention", zap.String("dir", dir), zap.Error(err))
		}

		return nil
	}

	loc := r.normalizer.Location()
	today := r.normalizer.Now()

	var deleted []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		date, ok := naming.ParseDate(entry.Name(), loc)
		if !ok {
			continue
		}

		if ageInDays(date, today) <= policy.MaxAgeDays {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			r.logger.Warn("Failed to stat rotated log file", zap.String("path", path), zap.Error(err))

			continue
		}

		if isActive != nil && isActive(path, info) {
			r.logger.Debug("Keeping active log file past retention", zap.String("path", path))

			continue
		}

		if err := os.Remove(path); err != nil {
			r.logger.Warn("Failed to delete rotated log file", zap.String("path", path), zap.Error(err))

			continue
		}

		deleted = append(deleted, path)
	}

	sort.Strings(deleted)

	if len(deleted) > 0 {
		r.logger.Info("Pruned rotated log files",
			zap.String("dir", dir),
			zap.Int("max_age_days", policy.MaxAgeDays),
			zap.Strings("deleted", deleted),
		)
	}

	return deleted
}

// ageInDays counts calendar days from date to now, both read as wall dates.
func ageInDays(date, now time.Time) int {
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	return int(to.Sub(from).Hours() / 24)
}
