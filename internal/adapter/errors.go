package adapter

import "errors"

// Sentinel errors mapped from backend HTTP status codes.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrUnavailable         = errors.New("service unavailable")
	ErrUnexpectedStatus    = errors.New("unexpected http status")
)

var (
	// ErrEmptyAddress is returned by [NewHTTPServerAdapter] when no backend
	// address is configured.
	ErrEmptyAddress = errors.New("empty address")

	// ErrMissingRecordID is returned by Update and Delete without an id.
	ErrMissingRecordID = errors.New("record id is required")
)
