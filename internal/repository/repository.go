// Package repository handles all interactions with the storage engines.
//
// It holds the venue and credential stores for each supported engine
// (PostgreSQL, Redis and an in-process memory store), abstracting query
// logic away from the service layer. Stores return ErrNotFound and
// ErrDuplicate; anything else is an engine failure.
package repository

import "errors"

var (
	// ErrNotFound reports that no record has the requested key.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate reports a write rejected by a uniqueness rule.
	ErrDuplicate = errors.New("record already exists")
)
