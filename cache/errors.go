package cache

import (
	"github.com/shroudlabs/go-shroud-data/errcode"
)

// ModuleCode cache module code
const ModuleCode = 30

// Module name used for error-origin tagging
const ModuleName = "cache"

// Error codes: 30xxxx
const (
	ErrCodeCacheMiss     = 1
	ErrCodeInternal      = 2
	ErrCodeSerialize     = 3
	ErrCodeDeserialize   = 4
	ErrCodeConfigInvalid = 5
)

var (
	// ErrCacheMiss cache entry not found (absence, not a failure)
	ErrCacheMiss = errcode.Register(errcode.New(
		ModuleCode, ErrCodeCacheMiss,
		ModuleName, "cache entry not found",
	))

	// ErrInternal an error occurred while talking to the cache backend
	// Wrap the backend error to preserve the cause
	ErrInternal = errcode.Register(errcode.New(
		ModuleCode, ErrCodeInternal,
		ModuleName, "internal cache error occurred",
	))

	// ErrSerialize serialization to the cache wire form failed
	ErrSerialize = errcode.Register(errcode.New(
		ModuleCode, ErrCodeSerialize,
		ModuleName, "cache serialize failed",
	))

	// ErrDeserialize deserialization from the cache wire form failed
	ErrDeserialize = errcode.Register(errcode.New(
		ModuleCode, ErrCodeDeserialize,
		ModuleName, "cache deserialize failed",
	))

	// ErrConfigInvalid cache configuration invalid
	ErrConfigInvalid = errcode.Register(errcode.New(
		ModuleCode, ErrCodeConfigInvalid,
		ModuleName, "cache config invalid",
	))
)

// IsCacheError reports whether err originated in the cache layer
func IsCacheError(err error) bool {
	le, ok := errcode.FromError(err)
	return ok && le.Module() == ModuleName
}
