package gateway

import (
	"errors"
	"fmt"

	dErrors "travelgate/pkg/domain-errors"
)

// ErrorCategory defines the normalized failure taxonomy
type ErrorCategory string

const (
	// ErrorTimeout indicates the remote API took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorUnavailable indicates a transport failure or 5xx
	ErrorUnavailable ErrorCategory = "unavailable"

	// ErrorRejected indicates the API answered but signalled a business error
	ErrorRejected ErrorCategory = "rejected"

	// ErrorBadData indicates the API returned invalid/malformed data
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorAuthentication indicates credential or permission issues
	ErrorAuthentication ErrorCategory = "authentication"

	// ErrorNotFound indicates the requested record doesn't exist
	ErrorNotFound ErrorCategory = "not_found"

	// ErrorRateLimited indicates too many requests
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorInternal indicates an unexpected internal error
	ErrorInternal ErrorCategory = "internal"
)

// APIError wraps collaborator failures with normalized categorization.
type APIError struct {
	Category   ErrorCategory
	Operation  string
	Message    string
	Underlying error
	// Retryable marks failures the user may re-trigger; nothing retries
	// automatically.
	Retryable bool
}

func (e *APIError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("remote %s [%s]: %s: %v", e.Operation, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("remote %s [%s]: %s", e.Operation, e.Category, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Underlying
}

// NewAPIError creates a new normalized collaborator error.
func NewAPIError(category ErrorCategory, operation, message string, underlying error) *APIError {
	retryable := category == ErrorTimeout ||
		category == ErrorUnavailable ||
		category == ErrorRateLimited

	return &APIError{
		Category:   category,
		Operation:  operation,
		Message:    message,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

// IsRetryable checks if the user may usefully re-trigger the action.
func IsRetryable(err error) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Retryable
	}
	return false
}

// IsRejected reports a business-level refusal: the call completed and the
// API answered with an error payload.
func IsRejected(err error) bool {
	return GetCategory(err) == ErrorRejected
}

// GetCategory extracts the error category from an error
func GetCategory(err error) ErrorCategory {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Category
	}
	return ErrorInternal
}

// RemoteMessage returns the API's own message for rejected calls.
func RemoteMessage(err error) string {
	var ae *APIError
	if errors.As(err, &ae) && ae.Category == ErrorRejected {
		return ae.Message
	}
	return ""
}

// ToDomainError maps a collaborator failure to a client-facing domain error.
// userMessage is shown for transport-level failures.
func ToDomainError(err error, userMessage string) error {
	if err == nil {
		return nil
	}
	switch GetCategory(err) {
	case ErrorTimeout:
		return dErrors.Wrap(err, dErrors.CodeTimeout, userMessage)
	case ErrorRejected:
		msg := RemoteMessage(err)
		if msg == "" {
			msg = userMessage
		}
		return dErrors.Wrap(err, dErrors.CodeBadRequest, msg)
	case ErrorNotFound:
		return dErrors.Wrap(err, dErrors.CodeNotFound, userMessage)
	case ErrorRateLimited:
		return dErrors.Wrap(err, dErrors.CodeRateLimited, userMessage)
	case ErrorUnavailable, ErrorBadData, ErrorAuthentication:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, userMessage)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, userMessage)
	}
}
