package suggest

import (
	"errors"
	"fmt"
)

// ErrNotConfigured means no provider client was supplied.
var ErrNotConfigured = errors.New("suggestions are not configured: no API key")

// InvalidRequestError is a request that failed validation before any provider call.
type InvalidRequestError struct {
	Cause error
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid suggestion request: %v", e.Cause)
}

func (e *InvalidRequestError) Unwrap() error {
	return e.Cause
}

// RateLimitError is a provider 429.
type RateLimitError struct {
	Cause error
}

func (e *RateLimitError) Error() string {
	return "Rate limit exceeded. Please try again later."
}

func (e *RateLimitError) Unwrap() error {
	return e.Cause
}

// QuotaError is a provider 402.
type QuotaError struct {
	Cause error
}

func (e *QuotaError) Error() string {
	return "AI usage limit reached. Please add credits to continue."
}

func (e *QuotaError) Unwrap() error {
	return e.Cause
}

// UpstreamError is any other provider failure, including timeouts.
type UpstreamError struct {
	Code  int
	Cause error
}

func (e *UpstreamError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("AI gateway error: %d", e.Code)
	}
	return fmt.Sprintf("AI gateway error: %v", e.Cause)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// BusyError means a suggestion for the same target is already in flight.
type BusyError struct {
	Target string
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("a suggestion for %s is already in progress", e.Target)
}
