// Package groups persists pass groups. Group rows are independent of the
// passes that reference them: deleting a group leaves those passes alone.
package groups

import (
	"context"

	"github.com/dmitrijs2005/gophwallet/internal/models"
)

type Repository interface {
	// Upsert inserts a group when ID is 0 and replaces the row otherwise.
	// It returns the id of the stored row.
	Upsert(ctx context.Context, g models.PassGroup) (int64, error)
	Delete(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]models.PassGroup, error)
	GetByID(ctx context.Context, id int64) (*models.PassGroup, error)
}
