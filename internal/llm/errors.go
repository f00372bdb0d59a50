package llm

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"google.golang.org/api/googleapi"
)

// StatusError is a provider failure that carried an HTTP status code.
type StatusError struct {
	Provider Provider
	Code     int
	Cause    error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %v", e.Provider, e.Code, e.Cause)
}

func (e *StatusError) Unwrap() error {
	return e.Cause
}

// RateLimited reports a 429.
func (e *StatusError) RateLimited() bool {
	return e.Code == http.StatusTooManyRequests
}

// QuotaExhausted reports a 402.
func (e *StatusError) QuotaExhausted() bool {
	return e.Code == http.StatusPaymentRequired
}

// StatusCode returns the provider status code carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

type httpCoder interface {
	HTTPCode() int
}

var statusPattern = regexp.MustCompile(`status code:? (\d{3})`)

// classify wraps err in a StatusError when a status code can be recovered from it.
func classify(provider Provider, err error) error {
	if code := extractCode(err); code != 0 {
		return &StatusError{Provider: provider, Code: code, Cause: err}
	}
	return err
}

func extractCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	var coder httpCoder
	if errors.As(err, &coder) && coder.HTTPCode() > 0 {
		return coder.HTTPCode()
	}
	if m := statusPattern.FindStringSubmatch(err.Error()); m != nil {
		code, _ := strconv.Atoi(m[1])
		return code
	}
	return 0
}
