// Package notify delivers short text notifications to an operator channel.
//
// A Sink never fails across its boundary: every failure mode comes back as an
// Outcome so that callers on a trading path cannot be destabilized by it.
package notify

import (
	"context"
	"fmt"

	"github.com/rxtech-lab/argo-tradelog/pkg/errors"
)

// Message is one notification.
type Message struct {
	Text string
}

// FailureKind classifies a failed send.
type FailureKind string

const (
	FailureNone      FailureKind = ""
	FailureNetwork   FailureKind = "network"
	FailureAuth      FailureKind = "authentication"
	FailureRateLimit FailureKind = "rate_limit"
	FailureTimeout   FailureKind = "timeout"
	FailureUnknown   FailureKind = "unknown"
)

// Outcome is the result of a send.
type Outcome struct {
	Kind FailureKind
	Err  error
}

// Delivered is the successful outcome.
func Delivered() Outcome {
	return Outcome{Kind: FailureNone, Err: nil}
}

// Failed builds a failed outcome. A FailureNone kind is turned into FailureUnknown.
func Failed(kind FailureKind, err error) Outcome {
	if kind == FailureNone {
		kind = FailureUnknown
	}

	return Outcome{Kind: kind, Err: err}
}

// OK reports whether the message was delivered.
func (o Outcome) OK() bool {
	return o.Kind == FailureNone
}

// Error returns the failure as a coded NotificationFailure, nil when delivered.
func (o Outcome) Error() error {
	if o.OK() {
		return nil
	}

	code := errors.ErrCodeNotificationFailure
	if o.Kind == FailureTimeout {
		code = errors.ErrCodeNotificationTimeout
	}

	return errors.Wrapf(code, o.Err, "notification failed (%s)", o.Kind)
}

// String renders the outcome for logs.
func (o Outcome) String() string {
	if o.OK() {
		return "delivered"
	}

	if o.Err == nil {
		return string(o.Kind)
	}

	return fmt.Sprintf("%s: %v", o.Kind, o.Err)
}

// Sink sends a message and waits, bounded, for the outcome.
type Sink interface {
	Send(msg Message) Outcome
}

// Transport performs the actual delivery to one implicit destination.
// Implementations should return when ctx is done.
type Transport interface {
	Send(ctx context.Context, text string) error
}
