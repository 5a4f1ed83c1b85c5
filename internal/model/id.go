// Package model holds the domain types shared by the store, service and
// handler layers, plus the request payloads the handlers bind.
package model

import (
	"errors"
	"strconv"

	"github.com/oklog/ulid/v2"
)

// ErrInvalidID is returned when a raw identifier does not match the active
// storage engine's key format.
var ErrInvalidID = errors.New("invalid identifier")

// ID is an engine-assigned identifier in canonical string form.
type ID string

func (id ID) String() string {
	return string(id)
}

// IDCodec validates and canonicalizes raw identifiers for one storage engine.
// Exactly one codec is chosen at the storage boundary; callers never look at
// the raw representation.
type IDCodec interface {
	Name() string
	Parse(raw string) (ID, error)
}

// SequentialIDs are positive integers assigned by the database.
type SequentialIDs struct{}

func (SequentialIDs) Name() string {
	return "sequential"
}

func (SequentialIDs) Parse(raw string) (ID, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return "", ErrInvalidID
	}
	return ID(strconv.FormatInt(n, 10)), nil
}

// Int64 returns the numeric value of a sequential id.
func (c SequentialIDs) Int64(id ID) (int64, error) {
	if _, err := c.Parse(id.String()); err != nil {
		return 0, err
	}
	return strconv.ParseInt(id.String(), 10, 64)
}

// Format renders a database integer id.
func (SequentialIDs) Format(n int64) ID {
	return ID(strconv.FormatInt(n, 10))
}

// ULIDs are opaque, lexicographically sortable string keys.
type ULIDs struct{}

func (ULIDs) Name() string {
	return "ulid"
}

func (ULIDs) Parse(raw string) (ID, error) {
	parsed, err := ulid.ParseStrict(raw)
	if err != nil {
		return "", ErrInvalidID
	}
	return ID(parsed.String()), nil
}

// New mints a fresh ULID.
func (ULIDs) New() ID {
	return ID(ulid.Make().String())
}

// Time returns the millisecond timestamp embedded in a ULID.
func (ULIDs) Time(id ID) (uint64, error) {
	parsed, err := ulid.ParseStrict(id.String())
	if err != nil {
		return 0, ErrInvalidID
	}
	return parsed.Time(), nil
}
