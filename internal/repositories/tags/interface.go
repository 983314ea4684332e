// Package tags persists user-defined tags.
package tags

import (
	"context"

	"github.com/dmitrijs2005/gophwallet/internal/models"
)

// Repository describes CRUD on tags. Deleting a tag also drops its links to
// passes.
type Repository interface {
	Insert(ctx context.Context, tag models.Tag) (int64, error)
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]models.Tag, error)
	GetByID(ctx context.Context, id int64) (*models.Tag, error)
}
