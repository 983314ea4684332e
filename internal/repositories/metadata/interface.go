// Package metadata stores small wallet settings as key/value rows: the
// persisted manual order and the selected sort option.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyManualOrder = "manual_order"
	KeySortOption  = "sort_option"
)

type Repository interface {
	// Get returns nil without error when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
}
