// Package common defines sentinel errors shared by the storage, model and CLI
// layers of GophWallet. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Storage errors. Every I/O failure at the persistence boundary wraps
	// ErrStorage; it is surfaced to the caller and never retried internally.
	ErrStorage = errors.New("storage error")

	// ErrNotFound is used by the CLI to report a missing pass, tag or group.
	// Store lookups never return it; absence is a nil result.
	ErrNotFound = errors.New("not found")

	// Barcode errors.
	ErrMalformedBarcodeJSON = errors.New("malformed barcode json")
	ErrInvalidDimensions    = errors.New("invalid bitmap dimensions")

	// Ordering errors.
	ErrUnknownSortOption = errors.New("unknown sort option")

	// Import errors.
	ErrMalformedPass = errors.New("malformed pass document")
)
