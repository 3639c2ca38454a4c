package storage

import (
	"github.com/shroudlabs/go-shroud-data/cache"
	"github.com/shroudlabs/go-shroud-data/errcode"
)

// ModuleCode storage module code
const ModuleCode = 20

// Module name used for error-origin tagging
const ModuleName = "storage"

// Error codes: 20xxxx
const (
	ErrCodeNotFound      = 1
	ErrCodeInternal      = 2
	ErrCodeConfigInvalid = 3
)

var (
	// ErrNotFound no record exists at the path (absence, not a failure)
	ErrNotFound = errcode.Register(errcode.New(
		ModuleCode, ErrCodeNotFound,
		ModuleName, "data not found",
	))

	// ErrInternal an error occurred while talking to the backing store
	// Wrap the backend error to preserve the cause
	ErrInternal = errcode.Register(errcode.New(
		ModuleCode, ErrCodeInternal,
		ModuleName, "internal storage error occurred",
	))

	// ErrConfigInvalid storage configuration invalid
	ErrConfigInvalid = errcode.Register(errcode.New(
		ModuleCode, ErrCodeConfigInvalid,
		ModuleName, "storage config invalid",
	))
)

// Failure origins as reported by Origin
const (
	OriginStorage = "storage"
	OriginCache   = "cache"
)

// Origin reports which layer a failure came from so callers can branch
// (a cache failure may be retried against the store, a storage failure is fatal).
// Returns "" for errors raised outside both layers.
func Origin(err error) string {
	le, ok := errcode.FromError(err)
	if !ok {
		return ""
	}
	switch le.Module() {
	case ModuleName:
		return OriginStorage
	case cache.ModuleName:
		return OriginCache
	}
	return ""
}

// IsNotFound reports whether err is the storage absence outcome
func IsNotFound(err error) bool {
	le, ok := errcode.FromError(err)
	return ok && le.Is(ErrNotFound)
}
