// Package server provides the HTTP REST API for gearshift.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrSessionNotFound indicates the session does not exist
type ErrSessionNotFound struct {
	SessionID uuid.UUID
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// ErrShiftNotFound indicates the shift does not exist in the session
type ErrShiftNotFound struct {
	ShiftID uuid.UUID
}

func (e *ErrShiftNotFound) Error() string {
	return fmt.Sprintf("shift not found: %s", e.ShiftID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ErrSyncNotConfigured indicates Google Calendar credentials are missing
type ErrSyncNotConfigured struct{}

func (e *ErrSyncNotConfigured) Error() string {
	return "Google Calendar sync is not configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrSessionNotFound, *ErrShiftNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrSyncNotConfigured:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
