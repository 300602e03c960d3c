package instrument

import (
	"strings"

	"github.com/rxtech-lab/argo-tradelog/internal/config"
	"github.com/rxtech-lab/argo-tradelog/internal/futures"
	"github.com/rxtech-lab/argo-tradelog/internal/journal"
	"github.com/rxtech-lab/argo-tradelog/internal/logger"
	"github.com/rxtech-lab/argo-tradelog/internal/notify"
	"github.com/rxtech-lab/argo-tradelog/internal/timefmt"
	"github.com/rxtech-lab/argo-tradelog/pkg/errors"
)

// ParseUnknownPolicy maps the configuration names pass_through, instrument
// and reject to a policy. Empty means PassThrough.
func ParseUnknownPolicy(name string) (UnknownPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "pass_through":
		return PassThrough, nil
	case "instrument":
		return Instrument, nil
	case "reject":
		return Reject, nil
	default:
		return PassThrough, errors.Newf(errors.ErrCodeInvalidConfiguration, "unknown operation policy %q", name)
	}
}

// NewJournal builds the journal described by cfg. retention_days 0 keeps
// every file.
func NewJournal(cfg *config.Config, log *logger.Logger) (*journal.Journal, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	return journal.New(journal.Config{
		Dir:       cfg.LogDir,
		Retention: journal.RetentionPolicy{
			MaxAgeDays: cfg.RetentionDays,
			KeepAll:    cfg.RetentionDays == 0,
		},
		SplitDirs: cfg.SplitDirs,
	}, timefmt.NewNormalizer(loc), journal.WithLogger(log))
}

// NewSink builds a bounded Telegram sink, or a NopSink when no credentials are configured.
// The bot is authorized on the first notification, so an unreachable Bot API or a
// revoked token never fails startup.
func NewSink(cfg *config.Config, log *logger.Logger) (notify.Sink, error) {
	if !cfg.Telegram.Enabled() {
		log.Named("instrument").Info("Telegram is not configured, notifications are disabled")

		return notify.NopSink{}, nil
	}

	transport, err := notify.NewLazyTelegramTransport(cfg.Telegram.Token, cfg.Telegram.ChatID, cfg.Telegram.Endpoint, cfg.Notify.Timeout)
	if err != nil {
		return nil, err
	}

	return notify.NewBoundedSink(transport,
		notify.WithTimeout(cfg.Notify.Timeout),
		notify.WithRateLimit(cfg.Notify.RatePerSecond, cfg.Notify.Burst),
		notify.WithSinkLogger(log),
	), nil
}

// NewDefault wires api to a fresh journal and sink built from cfg. The
// returned close function closes the journal.
func NewDefault(cfg *config.Config, api futures.API, log *logger.Logger) (*Proxy, func() error, error) {
	if cfg == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidConfiguration, "configuration is required")
	}

	if api == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidParameter, "futures api is required")
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	policy, err := ParseUnknownPolicy(cfg.UnknownOperations)
	if err != nil {
		return nil, nil, err
	}

	j, err := NewJournal(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	sink, err := NewSink(cfg, log)
	if err != nil {
		j.Close()

		return nil, nil, err
	}

	proxy := New(api, j.General(), j.Error(), sink,
		WithLogger(log),
		WithUnknownPolicy(policy),
	)

	return proxy, j.Close, nil
}
