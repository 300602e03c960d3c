package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/rxtech-lab/argo-tradelog/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a send when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// BoundedSink turns a Transport into a Sink with a hard deadline.
//
// The transport runs in its own goroutine. When the deadline passes first the
// sink returns a FailureTimeout outcome right away and cancels the transport's
// context; the goroutine ends once the transport honours it.
type BoundedSink struct {
	transport Transport
	timeout   time.Duration
	limiter   *rate.Limiter
	logger    *logger.Logger
}

// BoundedOption configures a BoundedSink.
type BoundedOption func(*BoundedSink)

// WithTimeout sets the per-send deadline. Non-positive values keep the default.
func WithTimeout(timeout time.Duration) BoundedOption {
	return func(s *BoundedSink) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithRateLimit allows perSecond sends per second with the given burst.
// Waiting for a token counts against the send deadline.
func WithRateLimit(perSecond float64, burst int) BoundedOption {
	return func(s *BoundedSink) {
		if perSecond <= 0 {
			s.limiter = nil

			return
		}

		if burst < 1 {
			burst = 1
		}

		s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithSinkLogger sets the diagnostics logger.
func WithSinkLogger(log *logger.Logger) BoundedOption {
	return func(s *BoundedSink) {
		s.logger = log
	}
}

// NewBoundedSink wraps transport.
func NewBoundedSink(transport Transport, opts ...BoundedOption) *BoundedSink {
	s := &BoundedSink{
		transport: transport,
		timeout:   DefaultTimeout,
		limiter:   nil,
		logger:    nil,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.NewNopLogger()
	}

	s.logger = s.logger.Named("notify")

	return s
}

// Timeout returns the per-send deadline.
func (s *BoundedSink) Timeout() time.Duration {
	return s.timeout
}

// Send delivers msg within the sink's timeout.
func (s *BoundedSink) Send(msg Message) Outcome {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	return s.SendContext(ctx, msg)
}

// SendContext delivers msg within the sink's timeout or until ctx is done,
// whichever comes first.
func (s *BoundedSink) SendContext(ctx context.Context, msg Message) Outcome {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if s.transport == nil {
		return Failed(FailureUnknown, fmt.Errorf("no notification transport configured"))
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			s.logger.Warn("Notification dropped by local rate limit", zap.Error(err))

			return Failed(FailureRateLimit, err)
		}
	}

	started := time.Now()
	done := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- NewKindError(FailureUnknown, fmt.Errorf("notification transport panicked: %v", r))
			}
		}()

		done <- s.transport.Send(ctx, msg.Text)
	}()

	select {
	case err := <-done:
		if err == nil {
			s.logger.Debug("Notification delivered", zap.Duration("elapsed", time.Since(started)))

			return Delivered()
		}

		kind := Classify(err)
		s.logger.Warn("Notification failed",
			zap.String("kind", string(kind)),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err),
		)

		return Failed(kind, err)
	case <-ctx.Done():
		s.logger.Warn("Notification timed out",
			zap.Duration("timeout", s.timeout),
			zap.Error(ctx.Err()),
		)

		return Failed(FailureTimeout, ctx.Err())
	}
}
