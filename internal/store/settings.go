package store

import (
	"context"

	"github.com/dmitrijs2005/gophwallet/internal/dbx"
	"github.com/dmitrijs2005/gophwallet/internal/livequery"
	"github.com/dmitrijs2005/gophwallet/internal/repositories/metadata"
)

// LoadManualOrder returns the persisted manual order, or nil when none was
// saved yet.
func (s *Store) LoadManualOrder(ctx context.Context) ([]string, error) {
	var ids []string
	if _, err := metadata.LoadJSON(ctx, s.meta, metadata.KeyManualOrder, &ids); err != nil {
		return nil, storageErr("load manual order", err)
	}
	return ids, nil
}

// ManualOrder emits the persisted manual order now and after every save.
func (s *Store) ManualOrder(ctx context.Context) <-chan []string {
	return livequery.Watch(ctx, s.broker, s.log, s.LoadManualOrder, livequery.TopicManualOrder)
}

// SetManualOrder replaces the persisted manual order.
func (s *Store) SetManualOrder(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return s.write(ctx, "save manual order", func(ctx context.Context, tx dbx.DBTX) ([]livequery.Topic, error) {
		return topics(livequery.TopicManualOrder), metadata.StoreJSON(ctx, metadata.NewSQLiteRepository(tx), metadata.KeyManualOrder, ids)
	})
}

// SortOptionName returns the persisted sort option name, or "" when unset.
func (s *Store) SortOptionName(ctx context.Context) (string, error) {
	raw, err := s.meta.Get(ctx, metadata.KeySortOption)
	if err != nil {
		return "", storageErr("load sort option", err)
	}
	return string(raw), nil
}

// SetSortOptionName persists the selected sort option name.
func (s *Store) SetSortOptionName(ctx context.Context, name string) error {
	return s.write(ctx, "save sort option", func(ctx context.Context, tx dbx.DBTX) ([]livequery.Topic, error) {
		return nil, metadata.NewSQLiteRepository(tx).Set(ctx, metadata.KeySortOption, []byte(name))
	})
}
