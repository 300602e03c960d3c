package errors

import "strconv"

// ErrorCode identifies a failure. The hundreds digit is its Category.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidTimeFormat    ErrorCode = 102
	ErrCodeInvalidTimezone      ErrorCode = 103
	ErrCodeUnknownOperation     ErrorCode = 104

	// Journal errors (200-299)
	ErrCodeLogWriteFailure ErrorCode = 200

	// Notification errors (300-399)
	ErrCodeNotificationFailure ErrorCode = 300
	ErrCodeNotificationTimeout ErrorCode = 301

	// Trading errors (400-499), for futures API implementations
	ErrCodeTradingAPI       ErrorCode = 400
	ErrCodeOrderFailed      ErrorCode = 401
	ErrCodePositionNotFound ErrorCode = 402

	// Persistence errors (500-599)
	ErrCodePersistenceFailed ErrorCode = 500
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:              "unknown",
	ErrCodeInvalidParameter:     "invalid_parameter",
	ErrCodeInvalidConfiguration: "invalid_configuration",
	ErrCodeInvalidTimeFormat:    "invalid_time_format",
	ErrCodeInvalidTimezone:      "invalid_timezone",
	ErrCodeUnknownOperation:     "unknown_operation",
	ErrCodeLogWriteFailure:      "log_write_failure",
	ErrCodeNotificationFailure:  "notification_failure",
	ErrCodeNotificationTimeout:  "notification_timeout",
	ErrCodeTradingAPI:           "trading_api",
	ErrCodeOrderFailed:          "order_failed",
	ErrCodePositionNotFound:     "position_not_found",
	ErrCodePersistenceFailed:    "persistence_failed",
}

// String returns the snake case name of the code, or its number when unnamed.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}

	return "code_" + strconv.Itoa(int(c))
}

// Category groups codes by their hundreds digit.
type Category int

const (
	CategoryGeneral Category = iota
	CategoryValidation
	CategoryJournal
	CategoryNotification
	CategoryTrading
	CategoryPersistence
)

// Category returns the group of c. Codes outside the known ranges are general.
func (c ErrorCode) Category() Category {
	group := Category(int(c) / 100)
	if group < CategoryGeneral || group > CategoryPersistence {
		return CategoryGeneral
	}

	return group
}
