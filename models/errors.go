package models

import "errors"

var (
	// ErrUnknownCollection is returned when a collection name is not one of
	// the cached entity kinds.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrUnknownVerb is returned when a mutation verb is not create, update
	// or delete.
	ErrUnknownVerb = errors.New("unknown mutation verb")
)
