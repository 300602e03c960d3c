package notify

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"net/url"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// KindError lets a transport state the failure kind explicitly.
type KindError struct {
	Kind FailureKind
	Err  error
}

// NewKindError wraps err with kind.
func NewKindError(kind FailureKind, err error) *KindError {
	return &KindError{Kind: kind, Err: err}
}

func (e *KindError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}

	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *KindError) Unwrap() error {
	return e.Err
}

// Classify maps a transport error to a failure kind.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureNone
	}

	var kindErr *KindError
	if stderrors.As(err, &kindErr) && kindErr.Kind != FailureNone {
		return kindErr.Kind
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}

	var apiErr *tgbotapi.Error
	if stderrors.As(err, &apiErr) {
		return classifyStatus(apiErr.Code)
	}

	var apiErrValue tgbotapi.Error
	if stderrors.As(err, &apiErrValue) {
		return classifyStatus(apiErrValue.Code)
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		if netErr.Timeout() {
			return FailureTimeout
		}

		return FailureNetwork
	}

	var urlErr *url.Error
	if stderrors.As(err, &urlErr) {
		return FailureNetwork
	}

	return FailureUnknown
}

func classifyStatus(code int) FailureKind {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return FailureAuth
	case http.StatusTooManyRequests:
		return FailureRateLimit
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return FailureTimeout
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return FailureNetwork
	default:
		return FailureUnknown
	}
}
