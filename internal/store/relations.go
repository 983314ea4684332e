package store

import (
	"context"

	"github.com/dmitrijs2005/gophwallet/internal/dbx"
	"github.com/dmitrijs2005/gophwallet/internal/livequery"
	"github.com/dmitrijs2005/gophwallet/internal/models"
	"github.com/dmitrijs2005/gophwallet/internal/repositories/groups"
	"github.com/dmitrijs2005/gophwallet/internal/repositories/passes"
	"github.com/dmitrijs2005/gophwallet/internal/repositories/tags"
)

// InsertTag stores a new tag and returns its generated id.
func (s *Store) InsertTag(ctx context.Context, t models.Tag) (int64, error) {
	var id int64
	err := s.write(ctx, "insert tag", func(ctx context.Context, tx dbx.DBTX) ([]livequery.Topic, error) {
		var err error
		id, err = tags.NewSQLiteRepository(tx).Insert(ctx, t)
		return topics(livequery.TopicTags), err
	})
	return id, err
}

// DeleteTag removes the tag and unlinks it from every pass.
func (s *Store) DeleteTag(ctx context.Context, id int64) error {
	return s.write(ctx, "delete tag", func(ctx context.Context, tx dbx.DBTX) ([]livequery.Topic, error) {
		return topics(livequery.TopicTags, livequery.TopicPasses), tags.NewSQLiteRepository(tx).Delete(ctx, id)
	})
}

// ListTags is the one-shot form of AllTags.
func (s *Store) ListTags(ctx context.Context) ([]models.Tag, error) {
	res, err := s.tags.GetAll(ctx)
	if err != nil {
		return nil, storageErr("list tags", err)
	}
	return res, nil
}

// AllTags emits every tag now and after each tag change.
func (s *Store) AllTags(ctx context.Context) <-chan []models.Tag {
	return livequery.Watch(ctx, s.broker, s.log, s.ListTags, livequery.TopicTags)
}

// Tag links a pass and a tag. Linking twice keeps a single link, and the call
// is ignored unless both the pass and the tag exist.
func (s *Store) Tag(ctx context.Context, passID string, tagID int64) error {
	return s.write(ctx, "tag pass", func(ctx context.Context, tx dbx.DBTX) ([]livequery.Topic, error) {
		pr := passes.NewSQLiteRepository(tx)
		p, err := pr.GetByID(ctx, passID)
		if err != nil || p == nil {
			return nil, err
		}
		t, err := tags.NewSQLiteRepository(tx).GetByID(ctx, tagID)
		if err != nil || t == nil {
			return nil, err
		}
		ref := models.PassTagCrossRef{PassID: passID, TagID: tagID}
		return topics(livequery.TopicPasses), pr.Tag(ctx, ref)
	})
}

// Untag removes the link between a pass and a tag if it exists.
func (s *Store) Untag(ctx context.Context, passID string, tagID int64) error {
	return s.write(ctx, "untag pass", func(ctx context.Context, tx dbx.DBTX) ([]livequery.Topic, error) {
		return topics(livequery.TopicPasses), passes.NewSQLiteRepository(tx).Untag(ctx, passID, tagID)
	})
}

// InsertGroup stores a group and returns its id. A zero ID allocates a new
// one; a known ID replaces that group.
func (s *Store) InsertGroup(ctx context.Context, g models.PassGroup) (int64, error) {
	var id int64
	err := s.write(ctx, "insert group", func(ctx context.Context, tx dbx.DBTX) ([]livequery.Topic, error) {
		var err error
		id, err = groups.NewSQLiteRepository(tx).Upsert(ctx, g)
		return topics(livequery.TopicGroups), err
	})
	return id, err
}

// DeleteGroup removes the group row only. Passes that referenced it keep the
// now dangling group id.
func (s *Store) DeleteGroup(ctx context.Context, id int64) error {
	return s.write(ctx, "delete group", func(ctx context.Context, tx dbx.DBTX) ([]livequery.Topic, error) {
		return topics(livequery.TopicGroups), groups.NewSQLiteRepository(tx).Delete(ctx, id)
	})
}

// Groups returns every group ordered by id.
func (s *Store) Groups(ctx context.Context) ([]models.PassGroup, error) {
	res, err := s.groups.GetAll(ctx)
	if err != nil {
		return nil, storageErr("list groups", err)
	}
	return res, nil
}

// AllGroups emits every group now and after each group change.
func (s *Store) AllGroups(ctx context.Context) <-chan []models.PassGroup {
	return livequery.Watch(ctx, s.broker, s.log, s.Groups, livequery.TopicGroups)
}

// FindGroupByID returns the group, or nil when it does not exist.
func (s *Store) FindGroupByID(ctx context.Context, id int64) (*models.PassGroup, error) {
	g, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr("find group", err)
	}
	return g, nil
}

// Associate puts the pass into the group. Absent passes are ignored.
func (s *Store) Associate(ctx context.Context, passID string, groupID int64) error {
	return s.setGroup(ctx, "associate pass", passID, &groupID)
}

// Dissociate clears the pass's group. Absent passes are ignored.
func (s *Store) Dissociate(ctx context.Context, passID string) error {
	return s.setGroup(ctx, "dissociate pass", passID, nil)
}

func (s *Store) setGroup(ctx context.Context, op, passID string, groupID *int64) error {
	return s.write(ctx, op, func(ctx context.Context, tx dbx.DBTX) ([]livequery.Topic, error) {
		ok, err := passes.NewSQLiteRepository(tx).SetGroup(ctx, passID, groupID)
		if err != nil || !ok {
			return nil, err
		}
		return topics(livequery.TopicPasses), nil
	})
}
