// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// Verb is the kind of mutation a queued operation performs.
type Verb string

const (
	VerbCreate Verb = "create"
	VerbUpdate Verb = "update"
	VerbDelete Verb = "delete"
)

// ParseVerb validates raw and returns the matching Verb.
func ParseVerb(raw string) (Verb, error) {
	switch Verb(raw) {
	case VerbCreate, VerbUpdate, VerbDelete:
		return Verb(raw), nil
	}
	return "", ErrUnknownVerb
}

// OperationType is the discriminant of a queued mutation, formed as
// "<verb>_<entity>" (for example update_assignment or create_reward).
// The set of valid values is closed: every (Collection, Verb) pair has
// exactly one type and Target rejects everything else.
type OperationType string

// NewOperationType returns the operation type for verb applied to c.
func NewOperationType(c Collection, verb Verb) OperationType {
	return OperationType(string(verb) + "_" + c.entity())
}

// Target resolves the collection and verb encoded in t. ok is false for
// types that were not produced by NewOperationType.
func (t OperationType) Target() (c Collection, verb Verb, ok bool) {
	raw := string(t)
	idx := strings.IndexByte(raw, '_')
	if idx <= 0 {
		return "", "", false
	}

	verb, err := ParseVerb(raw[:idx])
	if err != nil {
		return "", "", false
	}

	for _, candidate := range allCollections {
		if candidate.entity() == raw[idx+1:] {
			return candidate, verb, true
		}
	}

	return "", "", false
}

// QueuedOperation is a not-yet-confirmed remote mutation persisted in the
// local sync queue. ID is the queue sequence number assigned on enqueue and
// defines replay order.
type QueuedOperation struct {
	ID         int64         `json:"id"`
	Type       OperationType `json:"type"`
	Payload    Record        `json:"payload"`
	EnqueuedAt time.Time     `json:"enqueued_at"`
}

// Age reports how long the operation has been waiting at now.
func (o QueuedOperation) Age(now time.Time) time.Duration {
	return now.Sub(o.EnqueuedAt)
}
