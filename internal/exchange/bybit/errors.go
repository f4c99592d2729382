package bybit

import (
	"fmt"
	"net/http"
)

// BybitError represents a Bybit API error with additional context
type BybitError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *BybitError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("Bybit API error %d: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("Bybit API error %d: %s", e.Code, e.Message)
}

// NewBybitError creates a new BybitError
func NewBybitError(code int, message string) *BybitError {
	return &BybitError{Code: code, Message: message}
}

// WrapAPIError wraps an error with operation context
func WrapAPIError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", operation, err)
}

// Common Bybit error codes
const (
	ErrCodeInvalidAPIKey     = 10003
	ErrCodeInvalidSignature  = 10004
	ErrCodeInvalidTimestamp  = 10005
	ErrCodeRateLimitExceeded = 10006
	ErrCodeSymbolNotFound    = 110009
)

// IsRetryableError determines if an error should be retried
func IsRetryableError(err error) bool {
	if bybitErr, ok := err.(*BybitError); ok {
		switch bybitErr.Code {
		case ErrCodeRateLimitExceeded:
			return true
		case http.StatusInternalServerError:
			return true
		case http.StatusBadGateway:
			return true
		case http.StatusServiceUnavailable:
			return true
		case http.StatusGatewayTimeout:
			return true
		}
	}
	return false
}

// IsAuthenticationError checks if the error is related to authentication
func IsAuthenticationError(err error) bool {
	if bybitErr, ok := err.(*BybitError); ok {
		switch bybitErr.Code {
		case ErrCodeInvalidAPIKey, ErrCodeInvalidSignature, ErrCodeInvalidTimestamp:
			return true
		}
	}
	return false
}
