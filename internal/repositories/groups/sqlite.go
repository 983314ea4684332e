package groups

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophwallet/internal/dbx"
	"github.com/dmitrijs2005/gophwallet/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, g models.PassGroup) (int64, error) {
	if g.ID == 0 {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO pass_groups (name, description) VALUES (?, ?)`, g.Name, g.Description)
		if err != nil {
			return 0, fmt.Errorf("failed to insert group %q: %w", g.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get group id: %w", err)
		}
		return id, nil
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pass_groups (id, name, description) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, description = excluded.description
	`, g.ID, g.Name, g.Description)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert group %d: %w", g.ID, err)
	}
	return g.ID, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM pass_groups WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete group %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.PassGroup, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description FROM pass_groups ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select groups: %w", err)
	}
	defer rows.Close()

	result := make([]models.PassGroup, 0)
	for rows.Next() {
		var g models.PassGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.Description); err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.PassGroup, error) {
	var g models.PassGroup
	err := r.db.QueryRowContext(ctx, `SELECT id, name, description FROM pass_groups WHERE id = ?`, id).
		Scan(&g.ID, &g.Name, &g.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group %d: %w", id, err)
	}
	return &g, nil
}
