// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"
)

// Collection names one kind of cached entity. Each collection is stored as
// its own keyed set of records in the local store and maps to one REST
// resource on the backend.
type Collection string

const (
	// CollectionChores holds chore (task) definitions.
	CollectionChores Collection = "chores"
	// CollectionAssignments holds chores assigned to family members.
	CollectionAssignments Collection = "assignments"
	// CollectionMembers holds the participants of a family.
	CollectionMembers Collection = "members"
	// CollectionPoints holds reward/point ledger entries.
	CollectionPoints Collection = "points"
	// CollectionRewards holds redeemable reward items.
	CollectionRewards Collection = "rewards"
)

var allCollections = []Collection{
	CollectionChores,
	CollectionAssignments,
	CollectionMembers,
	CollectionPoints,
	CollectionRewards,
}

// AllCollections returns every known collection in refresh order.
func AllCollections() []Collection {
	out := make([]Collection, len(allCollections))
	copy(out, allCollections)
	return out
}

// ParseCollection validates raw and returns the matching Collection.
func ParseCollection(raw string) (Collection, error) {
	for _, c := range allCollections {
		if string(c) == raw {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCollection, raw)
}

// entity returns the singular noun used in operation type names.
func (c Collection) entity() string {
	switch c {
	case CollectionChores:
		return "chore"
	case CollectionAssignments:
		return "assignment"
	case CollectionMembers:
		return "member"
	case CollectionPoints:
		return "point_entry"
	case CollectionRewards:
		return "reward"
	}
	return ""
}

const (
	// FieldID is the key holding a record's identifier.
	FieldID = "id"
	// FieldFamilyID is the key holding the owning family (tenant) identifier.
	FieldFamilyID = "family_id"
)

// Record is a plain snapshot of a single entity as returned by the backend.
// It is stored schema-on-write: the local store only interprets the id and
// family_id keys.
type Record map[string]any

// ID returns the record identifier or an empty string.
func (r Record) ID() string {
	return stringField(r, FieldID)
}

// FamilyID returns the owning family identifier or an empty string.
func (r Record) FamilyID() string {
	return stringField(r, FieldFamilyID)
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func stringField(r Record, key string) string {
	if r == nil {
		return ""
	}
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
