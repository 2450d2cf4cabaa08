package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/iludo/profile-service/internal/domain"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

// NewConflict reports a state conflict. Clients expect 403 for these,
// not 409.
func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusForbidden, details)
}

// NewNotAcceptable reports an unmet workflow precondition (406).
func NewNotAcceptable(message string) error {
	return NewDomainError("PRECONDITION_FAILED", message, http.StatusNotAcceptable, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// sentinelStatus maps domain sentinel errors onto the wire taxonomy.
var sentinelStatus = []struct {
	err    error
	code   string
	status int
}{
	{domain.ErrUnderage, "VALIDATION_FAILED", http.StatusBadRequest},
	{domain.ErrBadPreference, "VALIDATION_FAILED", http.StatusBadRequest},
	{domain.ErrInvalidInput, "VALIDATION_FAILED", http.StatusBadRequest},
	{domain.ErrAlreadyInvited, "CONFLICT", http.StatusForbidden},
	{domain.ErrPlateTaken, "CONFLICT", http.StatusForbidden},
	{domain.ErrNoMatch, "CONFLICT", http.StatusForbidden},
	{domain.ErrProfileIncomplete, "CONFLICT", http.StatusForbidden},
	{domain.ErrNotFound, "NOT_FOUND", http.StatusNotFound},
	{domain.ErrCodeNotFound, "NOT_FOUND", http.StatusNotFound},
	{domain.ErrPlateNotFound, "NOT_FOUND", http.StatusNotFound},
	{domain.ErrNoDevices, "NOT_FOUND", http.StatusNotFound},
	{domain.ErrInviteNotReady, "PRECONDITION_FAILED", http.StatusNotAcceptable},
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	for _, entry := range sentinelStatus {
		if errors.Is(err, entry.err) {
			return &DomainError{
				Code:       entry.code,
				Message:    entry.err.Error(),
				HTTPStatus: entry.status,
				Err:        err,
			}
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
