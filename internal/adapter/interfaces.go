// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for talking to the
// chore-keeper backend.
//
// [ServerAdapter] decouples the sync subsystem from the protocol. The package
// ships an HTTP/REST implementation ([NewHTTPServerAdapter]) built on resty.
//
// HTTP status codes are mapped to the sentinel errors in errors.go by
// mapHTTPError so callers can use [errors.Is]; [IsTransient] separates
// connectivity trouble from rejections.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-chore-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is the remote API of the backend. Every call is
// independently fallible and honours ctx cancellation.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to every subsequent request.
	SetToken(token string)

	// Token returns the bearer token currently stored, or "".
	Token() string

	// Ping checks that the backend answers. It is used by the connectivity
	// prober and does not require a token.
	Ping(ctx context.Context) error

	// List returns the full server snapshot of collection c for the caller's
	// family.
	List(ctx context.Context, c models.Collection) ([]models.Record, error)

	// Create submits a new record and returns the stored version.
	Create(ctx context.Context, c models.Collection, record models.Record) (models.Record, error)

	// Update replaces record id and returns the stored version.
	Update(ctx context.Context, c models.Collection, id string, record models.Record) (models.Record, error)

	// Delete removes record id. Deleting an already deleted record maps to
	// [ErrNotFound].
	Delete(ctx context.Context, c models.Collection, id string) error
}
