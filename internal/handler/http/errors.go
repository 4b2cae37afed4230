// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors returned by the local API handlers and middleware. Callers
// can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the session endpoint when
	// the request carries no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidJSON is returned when a request body is not valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrIntegrityCheckFailed is returned when the HashSHA256 header does
	// not match the request body.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")
)
