package library

import "errors"

var (
	// ErrProviderRequired is returned when an inner provider is not provided.
	ErrProviderRequired = errors.New("provider required")

	// ErrBackendRequired is returned when a blob backend is not provided.
	ErrBackendRequired = errors.New("blob backend required")

	// ErrCacheRequired is returned when a cache is not provided.
	ErrCacheRequired = errors.New("cache required")

	// ErrKeyRequired is returned when a listing key is not provided.
	ErrKeyRequired = errors.New("listing key required")
)
