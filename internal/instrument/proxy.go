// Package instrument wraps a futures.API so that every state changing call is
// recorded in the journal and announced through a notification sink.
//
// Read only calls are forwarded untouched. The wrapped API's results and errors
// always reach the caller as returned; failures of the journal or the sink are
// reported through diagnostics only.
package instrument

import (
	"context"
	"time"

	"github.com/rxtech-lab/argo-tradelog/internal/futures"
	"github.com/rxtech-lab/argo-tradelog/internal/journal"
	"github.com/rxtech-lab/argo-tradelog/internal/logger"
	"github.com/rxtech-lab/argo-tradelog/internal/notify"
	"github.com/rxtech-lab/argo-tradelog/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Channel is the journal stream the proxy writes to. *journal.Channel implements it.
type Channel interface {
	Write(entry journal.Entry) error
}

// ContextSink is implemented by sinks that honour a context, such as
// *notify.BoundedSink. The proxy prefers it over Sink.Send.
type ContextSink interface {
	SendContext(ctx context.Context, msg notify.Message) notify.Outcome
}

// UnknownPolicy decides what Call does with operations outside the capability set.
type UnknownPolicy int

const (
	// PassThrough runs the operation without recording it.
	PassThrough UnknownPolicy = iota
	// Instrument records the operation like a mutating one.
	Instrument
	// Reject refuses to run the operation.
	Reject
)

// Proxy is a futures.API that instruments mutating calls of the API it wraps.
type Proxy struct {
	api     futures.API
	general Channel
	errs    Channel
	sink    notify.Sink
	logger  *logger.Logger
	now     func() time.Time
	unknown UnknownPolicy
}

var _ futures.API = (*Proxy)(nil)

// Option configures a Proxy.
type Option func(*Proxy)

// WithLogger sets the diagnostics logger.
func WithLogger(log *logger.Logger) Option {
	return func(p *Proxy) {
		p.logger = log
	}
}

// WithClock stamps entries with now instead of letting the channel stamp them.
func WithClock(now func() time.Time) Option {
	return func(p *Proxy) {
		p.now = now
	}
}

// WithUnknownPolicy sets how Call treats operations outside the capability set.
func WithUnknownPolicy(policy UnknownPolicy) Option {
	return func(p *Proxy) {
		p.unknown = policy
	}
}

// New wraps api. general receives success entries, errs receives failure
// entries. A nil sink disables notifications.
func New(api futures.API, general, errs Channel, sink notify.Sink, opts ...Option) *Proxy {
	p := &Proxy{
		api:     api,
		general: general,
		errs:    errs,
		sink:    sink,
		logger:  nil,
		now:     nil,
		unknown: PassThrough,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = logger.NewNopLogger()
	}

	if p.sink == nil {
		p.sink = notify.NopSink{}
	}

	p.logger = p.logger.Named("instrument")

	return p
}

// Unwrap returns the wrapped API.
func (p *Proxy) Unwrap() futures.API {
	return p.api
}

func (p *Proxy) SetStopLossTakeProfit(ctx context.Context, req futures.StopLossTakeProfitRequest) ([]futures.OrderResult, error) {
	return run(ctx, p, setStopLossTakeProfitAction(req), func(ctx context.Context) ([]futures.OrderResult, error) {
		return p.api.SetStopLossTakeProfit(ctx, req)
	})
}

func (p *Proxy) PlaceMarketOrder(ctx context.Context, req futures.MarketOrderRequest) (futures.OrderResult, error) {
	return run(ctx, p, placeMarketOrderAction(req), func(ctx context.Context) (futures.OrderResult, error) {
		return p.api.PlaceMarketOrder(ctx, req)
	})
}

func (p *Proxy) PlaceLimitOrder(ctx context.Context, req futures.LimitOrderRequest) (futures.OrderResult, error) {
	return run(ctx, p, placeLimitOrderAction(req), func(ctx context.Context) (futures.OrderResult, error) {
		return p.api.PlaceLimitOrder(ctx, req)
	})
}

func (p *Proxy) ClosePosition(ctx context.Context, symbol string, position futures.PositionSide) (futures.OrderResult, error) {
	return run(ctx, p, closePositionAction(symbol, position), func(ctx context.Context) (futures.OrderResult, error) {
		return p.api.ClosePosition(ctx, symbol, position)
	})
}

func (p *Proxy) CancelOrder(ctx context.Context, req futures.CancelOrderRequest) (futures.CancelResult, error) {
	return run(ctx, p, cancelOrderAction(req), func(ctx context.Context) (futures.CancelResult, error) {
		return p.api.CancelOrder(ctx, req)
	})
}

func (p *Proxy) GetPositions(ctx context.Context, symbol string) ([]futures.Position, error) {
	return p.api.GetPositions(ctx, symbol)
}

func (p *Proxy) GetOpenOrders(ctx context.Context, symbol string) ([]futures.Order, error) {
	return p.api.GetOpenOrders(ctx, symbol)
}

func (p *Proxy) FetchUSDTBalance(ctx context.Context) (futures.Balance, error) {
	return p.api.FetchUSDTBalance(ctx)
}

func (p *Proxy) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	return p.api.GetPrice(ctx, symbol)
}

func (p *Proxy) GetHistoricalData(ctx context.Context, req futures.HistoryRequest) ([]futures.Candle, error) {
	return p.api.GetHistoricalData(ctx, req)
}

// Call runs fn as operation op. Mutating operations are recorded, read only
// ones are not, and operations outside the capability set follow the proxy's
// UnknownPolicy. fn's error is returned unchanged.
func (p *Proxy) Call(ctx context.Context, op futures.Operation, fn func(ctx context.Context) error) error {
	switch futures.Classify(op) {
	case futures.ReadOnly:
		return fn(ctx)
	case futures.Mutating:
		// instrumented below
	case futures.Unknown:
		switch p.unknown {
		case Reject:
			p.logger.Warn("Rejected unknown operation", zap.String("operation", string(op)))

			return errors.Newf(errors.ErrCodeUnknownOperation, "operation %q is not part of the futures capability set", op)
		case Instrument:
			// instrumented below
		default:
			return fn(ctx)
		}
	}

	_, err := run(ctx, p, genericAction(op, nil), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})

	return err
}

func run[T any](ctx context.Context, p *Proxy, a action, call func(ctx context.Context) (T, error)) (T, error) {
	result, err := call(ctx)

	p.observe(ctx, a.record(err))

	return result, err
}

// observe journals and announces rec. It never fails.
func (p *Proxy) observe(ctx context.Context, rec ActionRecord) {
	log := p.logger.With(
		zap.String("action_id", rec.ID.String()),
		zap.String("operation", string(rec.Operation)),
		zap.Bool("success", rec.Success),
	)

	text := rec.Message()

	if rec.Success {
		p.record(log, p.general, p.errs, journal.LevelInfo, text)
	} else {
		log.Info("Trading API call failed", zap.Error(rec.Err))
		p.record(log, p.errs, p.general, journal.LevelError, text)
	}

	outcome := p.send(context.WithoutCancel(ctx), text)
	if outcome.OK() {
		return
	}

	log.Warn("Failed to send notification",
		zap.String("kind", string(outcome.Kind)),
		zap.Error(outcome.Err),
	)

	p.write(log, p.general, journal.LevelError, "Failed to send notification: "+outcome.String())
}

// record writes text to primary and falls back to secondary when that fails.
func (p *Proxy) record(log *logger.Logger, primary, secondary Channel, level journal.Level, text string) {
	if p.write(log, primary, level, text) {
		return
	}

	if primary != secondary {
		p.write(log, secondary, journal.LevelError, "Failed to write journal entry, recorded here instead: "+text)
	}
}

func (p *Proxy) write(log *logger.Logger, ch Channel, level journal.Level, text string) bool {
	if ch == nil {
		return false
	}

	if err := ch.Write(journal.NewEntry(level, text, p.stamp())); err != nil {
		log.Error("Failed to write journal entry",
			zap.String("level", string(level)),
			zap.String("message", text),
			zap.Error(err),
		)

		return false
	}

	return true
}

func (p *Proxy) send(ctx context.Context, text string) (outcome notify.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = notify.Failed(notify.FailureUnknown, errors.Newf(errors.ErrCodeNotificationFailure, "notification sink panicked: %v", r))
		}
	}()

	msg := notify.Message{Text: text}

	if cs, ok := p.sink.(ContextSink); ok {
		return cs.SendContext(ctx, msg)
	}

	return p.sink.Send(msg)
}

func (p *Proxy) stamp() time.Time {
	if p.now == nil {
		return time.Time{}
	}

	return p.now()
}
