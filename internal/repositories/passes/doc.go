// Package passes provides the persistence layer for pass rows and their
// relations: the pass/tag cross-reference table and the group association.
//
// # Data Model
//
// A pass row holds every scalar field of models.Pass. Relevant dates and the
// barcode are stored as JSON text; timestamps as RFC 3339 text in UTC, which
// limits them to years 0 to 9999. Upserting a pass overwrites every scalar
// column, group_id included, but leaves its cross-reference rows untouched.
//
// Rows are listed in first-insertion order (SQLite rowid); an upsert of an
// existing id keeps the original position.
//
// Key Types
//
//   - type Repository       : interface used by the store
//   - type SQLiteRepository : SQLite implementation over dbx.DBTX
//
// Typical Usage
//
//	repo := passes.NewSQLiteRepository(db)
//	_ = repo.Upsert(ctx, &pass)
//	p, _ := repo.GetByID(ctx, id) // nil, nil when absent
//	_ = repo.Tag(ctx, models.PassTagCrossRef{PassID: id, TagID: tagID})
package passes
