package passes

import (
	"context"

	"github.com/dmitrijs2005/gophwallet/internal/models"
)

// Repository describes storage operations on passes and their relations.
type Repository interface {
	// Upsert inserts the pass or replaces every scalar column of the row with
	// the same id.
	Upsert(ctx context.Context, p *models.Pass) error

	// GetByID returns the pass, or nil without error when it does not exist.
	GetByID(ctx context.Context, id string) (*models.Pass, error)

	// GetAll returns every pass in insertion order.
	GetAll(ctx context.Context) ([]models.Pass, error)

	// GetUpdatable returns passes with a non-empty web service URL.
	GetUpdatable(ctx context.Context) ([]models.Pass, error)

	// Delete removes the pass row. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error

	// SetGroup points the pass at a group, or clears it when groupID is nil.
	// It reports whether a pass row was touched.
	SetGroup(ctx context.Context, id string, groupID *int64) (bool, error)

	// SetArchived flips the archived flag. It reports whether a row was touched.
	SetArchived(ctx context.Context, id string, archived bool) (bool, error)

	// Tag links a pass and a tag; linking an existing pair is a no-op.
	Tag(ctx context.Context, ref models.PassTagCrossRef) error

	// Untag removes one link; removing an absent pair is a no-op.
	Untag(ctx context.Context, passID string, tagID int64) error

	// UntagAll removes every link of the pass.
	UntagAll(ctx context.Context, passID string) error

	// TagsOf returns the tags linked to one pass, ordered by tag id.
	TagsOf(ctx context.Context, passID string) ([]models.Tag, error)

	// TagsByPass returns the tags of every tagged pass, keyed by pass id.
	TagsByPass(ctx context.Context) (map[string][]models.Tag, error)
}
