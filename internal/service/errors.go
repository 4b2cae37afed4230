package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrRecordIDRequired    = errors.New("record id is required")

	ErrNoSession     = errors.New("no active session")
	ErrScopeMismatch = errors.New("record belongs to a different family")

	ErrUnauthorized      = errors.New("session token is expired or invalid")
	ErrAccessDenied      = errors.New("access to the record is denied")
	ErrConflict          = errors.New("record was changed on the server")
	ErrRemoteUnavailable = errors.New("backend is unavailable")

	ErrUnsupportedOperation = errors.New("unsupported operation type")
)
