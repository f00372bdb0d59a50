package server

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/jonathan/wbl-planner/internal/schemas"
	"github.com/jonathan/wbl-planner/internal/session"
	"github.com/jonathan/wbl-planner/internal/suggest"
)

// ErrSessionNotFound indicates no live session has the id
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// ErrUnknownSkill indicates the skill id is not in the catalog
type ErrUnknownSkill struct {
	SkillID string
}

func (e *ErrUnknownSkill) Error() string {
	return fmt.Sprintf("unknown skill: %s", e.SkillID)
}

// ErrUnknownStep indicates a step outside the wizard
type ErrUnknownStep struct {
	Step string
}

func (e *ErrUnknownStep) Error() string {
	return fmt.Sprintf("unknown step: %s", e.Step)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound    *ErrSessionNotFound
		unknown     *ErrUnknownSkill
		unknownStep *ErrUnknownStep
		invalid     *ErrValidation
		badRequest  *suggest.InvalidRequestError
		schemaErr   *schemas.ValidationError
		busy        *suggest.BusyError
		rateLimited *suggest.RateLimitError
		quota       *suggest.QuotaError
	)
	switch {
	case errors.As(err, &notFound), errors.As(err, &unknown), errors.As(err, &unknownStep),
		errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &invalid), errors.As(err, &badRequest), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &busy):
		return http.StatusConflict
	case errors.As(err, &rateLimited):
		return http.StatusTooManyRequests
	case errors.As(err, &quota):
		return http.StatusPaymentRequired
	case errors.Is(err, suggest.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with HTTPStatus(err) and {"error": message}.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	s.errorResponse(w, status, err.Error())
}

// decodeJSON reads a JSON body into v and, for structs, runs the validate tags.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Message: "invalid request body: " + err.Error()}
	}
	if reflect.Indirect(reflect.ValueOf(v)).Kind() != reflect.Struct {
		return nil
	}
	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &ErrValidation{Field: verrs[0].Field(), Message: "failed " + verrs[0].Tag() + " check"}
		}
		return &ErrValidation{Message: err.Error()}
	}
	return nil
}
