package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/studygram/internal/analysis"
	"github.com/jonathan/studygram/internal/ingestion"
	"github.com/jonathan/studygram/internal/study"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPayloadTooLarge indicates an upload over the configured limit
type ErrPayloadTooLarge struct {
	Limit int64
}

func (e *ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("upload exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Wrapped errors are unwrapped.
func HTTPStatus(err error) int {
	var (
		emailExists *ErrEmailAlreadyExists
		invalidCred *ErrInvalidCredentials
		validation  *ErrValidation
		tooLarge    *ErrPayloadTooLarge
		studyValid  *study.ValidationError
		unsupported *ingestion.UnsupportedTypeError
		decode      *ingestion.DecodeError
		stage       *analysis.StageError
	)

	switch {
	case errors.As(err, &validation), errors.As(err, &studyValid):
		return http.StatusBadRequest
	case errors.As(err, &invalidCred):
		return http.StatusUnauthorized
	case errors.As(err, &emailExists), errors.Is(err, study.ErrEmailExists):
		return http.StatusConflict
	case errors.Is(err, study.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &decode):
		return http.StatusUnprocessableEntity
	case errors.As(err, &stage):
		return http.StatusInternalServerError
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage hides internal failures from clients
func publicMessage(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
