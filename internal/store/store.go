package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/dbx"
	"github.com/dmitrijs2005/gophwallet/internal/livequery"
	"github.com/dmitrijs2005/gophwallet/internal/logging"
	"github.com/dmitrijs2005/gophwallet/internal/models"
	"github.com/dmitrijs2005/gophwallet/internal/repositories/groups"
	"github.com/dmitrijs2005/gophwallet/internal/repositories/metadata"
	"github.com/dmitrijs2005/gophwallet/internal/repositories/passes"
	"github.com/dmitrijs2005/gophwallet/internal/repositories/tags"
)

// Store implements the wallet's CRUD operations and live queries.
type Store struct {
	db     *sql.DB
	broker *livequery.Broker
	log    logging.Logger

	// writes are serialised; last write wins at the row level.
	mu sync.Mutex

	passes passes.Repository
	tags   tags.Repository
	groups groups.Repository
	meta   metadata.Repository
}

// New wraps an already migrated database.
func New(db *sql.DB, log logging.Logger) *Store {
	log = log.With("component", "store")
	return &Store{
		db:     db,
		broker: livequery.NewBroker(log),
		log:    log,
		passes: passes.NewSQLiteRepository(db),
		tags:   tags.NewSQLiteRepository(db),
		groups: groups.NewSQLiteRepository(db),
		meta:   metadata.NewSQLiteRepository(db),
	}
}

// Open opens and migrates the database at dsn.
func Open(ctx context.Context, dsn string, log logging.Logger) (*Store, error) {
	db, err := dbx.Open(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return New(db, log), nil
}

// Close closes the database. Live queries should be cancelled first.
func (s *Store) Close() error {
	return s.db.Close()
}

// Broker exposes the change notifications, e.g. for composing live views.
func (s *Store) Broker() *livequery.Broker {
	return s.broker
}

// write runs fn in a transaction and, once it commits, publishes the topics
// fn reports as changed.
func (s *Store) write(ctx context.Context, op string, fn func(ctx context.Context, tx dbx.DBTX) ([]livequery.Topic, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed []livequery.Topic
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		changed, err = fn(ctx, tx)
		return err
	})
	if err != nil {
		s.log.Error(ctx, "write failed", "op", op, "error", err)
		return fmt.Errorf("%s: %w: %w", op, common.ErrStorage, err)
	}

	s.log.Debug(ctx, "write committed", "op", op)
	if len(changed) > 0 {
		s.broker.Publish(ctx, changed...)
	}
	return nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, common.ErrStorage, err)
}

func topics(t ...livequery.Topic) []livequery.Topic { return t }

// InsertPass stores the pass, replacing every scalar field of an existing
// pass with the same id. Tag links of the replaced pass are kept.
func (s *Store) InsertPass(ctx context.Context, p models.Pass) error {
	return s.write(ctx, "insert pass", func(ctx context.Context, tx dbx.DBTX) ([]livequery.Topic, error) {
		return topics(livequery.TopicPasses), passes.NewSQLiteRepository(tx).Upsert(ctx, &p)
	})
}

// DeletePass removes the pass and its tag links. Absent ids are a no-op.
func (s *Store) DeletePass(ctx context.Context, id string) error {
	return s.write(ctx, "delete pass", func(ctx context.Context, tx dbx.DBTX) ([]livequery.Topic, error) {
		repo := passes.NewSQLiteRepository(tx)
		if err := repo.UntagAll(ctx, id); err != nil {
			return nil, err
		}
		return topics(livequery.TopicPasses), repo.Delete(ctx, id)
	})
}

// FindPassByID returns the pass with its tags, or nil when it does not exist.
func (s *Store) FindPassByID(ctx context.Context, id string) (*models.LocalizedPassWithTags, error) {
	p, err := s.passes.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr("find pass", err)
	}
	if p == nil {
		return nil, nil
	}
	t, err := s.passes.TagsOf(ctx, id)
	if err != nil {
		return nil, storageErr("find pass", err)
	}
	return &models.LocalizedPassWithTags{Pass: *p, Tags: t}, nil
}

// ListPasses is the one-shot form of AllPasses.
func (s *Store) ListPasses(ctx context.Context) ([]models.LocalizedPassWithTags, error) {
	all, err := s.passes.GetAll(ctx)
	if err != nil {
		return nil, storageErr("list passes", err)
	}
	byPass, err := s.passes.TagsByPass(ctx)
	if err != nil {
		return nil, storageErr("list passes", err)
	}

	result := make([]models.LocalizedPassWithTags, 0, len(all))
	for _, p := range all {
		t := byPass[p.ID]
		if t == nil {
			t = []models.Tag{}
		}
		result = append(result, models.LocalizedPassWithTags{Pass: p, Tags: t})
	}
	return result, nil
}

// AllPasses emits every pass with its tags, in insertion order, now and after
// every change to passes, tags or their links. The channel closes when ctx is
// cancelled.
func (s *Store) AllPasses(ctx context.Context) <-chan []models.LocalizedPassWithTags {
	return livequery.Watch(ctx, s.broker, s.log, s.ListPasses, livequery.TopicPasses, livequery.TopicTags)
}

// UpdatablePasses returns passes that carry a web service URL.
func (s *Store) UpdatablePasses(ctx context.Context) ([]models.Pass, error) {
	res, err := s.passes.GetUpdatable(ctx)
	if err != nil {
		return nil, storageErr("updatable passes", err)
	}
	return res, nil
}

// SetArchived moves a pass in or out of the archive. Absent ids are a no-op.
func (s *Store) SetArchived(ctx context.Context, id string, archived bool) error {
	return s.write(ctx, "archive pass", func(ctx context.Context, tx dbx.DBTX) ([]livequery.Topic, error) {
		ok, err := passes.NewSQLiteRepository(tx).SetArchived(ctx, id, archived)
		if err != nil || !ok {
			return nil, err
		}
		return topics(livequery.TopicPasses), nil
	})
}
