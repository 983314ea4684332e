package passes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/dbx"
	"github.com/dmitrijs2005/gophwallet/internal/models"
)

const passColumns = `id, type, organization_name, description, serial_number, pass_type_identifier,
	added_at, relevant_dates, expiration_date, voided, archived, web_service_url, authentication_token,
	background_color, foreground_color, label_color, compatibility_mode, group_id, barcode`

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert inserts a pass or overwrites every scalar column on id conflict.
func (r *SQLiteRepository) Upsert(ctx context.Context, p *models.Pass) error {
	relevant, err := json.Marshal(orEmpty(p.RelevantDates))
	if err != nil {
		return fmt.Errorf("failed to encode relevant dates: %w", err)
	}

	addedAt, err := formatTime(p.AddedAt)
	if err != nil {
		return fmt.Errorf("failed to encode added date of %s: %w", p.ID, err)
	}
	expiration, err := nullTime(p.ExpirationDate)
	if err != nil {
		return fmt.Errorf("failed to encode expiration date of %s: %w", p.ID, err)
	}

	var barcode sql.NullString
	if p.Barcode != nil {
		b, err := p.Barcode.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to encode barcode: %w", err)
		}
		barcode = sql.NullString{String: string(b), Valid: true}
	}

	query := `INSERT INTO passes (` + passColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			organization_name = excluded.organization_name,
			description = excluded.description,
			serial_number = excluded.serial_number,
			pass_type_identifier = excluded.pass_type_identifier,
			added_at = excluded.added_at,
			relevant_dates = excluded.relevant_dates,
			expiration_date = excluded.expiration_date,
			voided = excluded.voided,
			archived = excluded.archived,
			web_service_url = excluded.web_service_url,
			authentication_token = excluded.authentication_token,
			background_color = excluded.background_color,
			foreground_color = excluded.foreground_color,
			label_color = excluded.label_color,
			compatibility_mode = excluded.compatibility_mode,
			group_id = excluded.group_id,
			barcode = excluded.barcode
	`
	_, err = r.db.ExecContext(ctx, query,
		p.ID, string(p.Type), p.OrganizationName, p.Description, p.SerialNumber, p.PassTypeIdentifier,
		addedAt, string(relevant), expiration, p.Voided, p.Archived,
		p.WebServiceURL, nullString(p.AuthenticationToken),
		nullString(p.BackgroundColor), nullString(p.ForegroundColor), nullString(p.LabelColor),
		p.CompatibilityMode, nullInt64(p.GroupID), barcode,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert pass %s: %w", p.ID, err)
	}
	return nil
}

// GetByID returns the pass with the given id, or nil when it does not exist.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Pass, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+passColumns+` FROM passes WHERE id = ?`, id)
	p, err := scanPass(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pass %s: %w", id, err)
	}
	return p, nil
}

// GetAll lists every pass in insertion order.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Pass, error) {
	return r.list(ctx, `SELECT `+passColumns+` FROM passes ORDER BY rowid`)
}

// GetUpdatable lists passes that carry a web service URL.
func (r *SQLiteRepository) GetUpdatable(ctx context.Context) ([]models.Pass, error) {
	return r.list(ctx, `SELECT `+passColumns+` FROM passes WHERE web_service_url <> '' ORDER BY rowid`)
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.Pass, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select passes: %w", err)
	}
	defer rows.Close()

	result := make([]models.Pass, 0)
	for rows.Next() {
		p, err := scanPass(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pass row: %w", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pass rows: %w", err)
	}
	return result, nil
}

// Delete removes the pass row. Absent ids are ignored.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM passes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete pass %s: %w", id, err)
	}
	return nil
}

// SetGroup sets or clears group_id.
func (r *SQLiteRepository) SetGroup(ctx context.Context, id string, groupID *int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE passes SET group_id = ? WHERE id = ?`, nullInt64(groupID), id)
	if err != nil {
		return false, fmt.Errorf("failed to set group of pass %s: %w", id, err)
	}
	return touched(res)
}

// SetArchived sets the archived flag.
func (r *SQLiteRepository) SetArchived(ctx context.Context, id string, archived bool) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE passes SET archived = ? WHERE id = ?`, archived, id)
	if err != nil {
		return false, fmt.Errorf("failed to archive pass %s: %w", id, err)
	}
	return touched(res)
}

// Tag links a pass to a tag, ignoring an existing link.
func (r *SQLiteRepository) Tag(ctx context.Context, ref models.PassTagCrossRef) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO pass_tag_cross_ref (pass_id, tag_id) VALUES (?, ?)`, ref.PassID, ref.TagID)
	if err != nil {
		return fmt.Errorf("failed to tag pass %s with %d: %w", ref.PassID, ref.TagID, err)
	}
	return nil
}

// Untag removes a single link.
func (r *SQLiteRepository) Untag(ctx context.Context, passID string, tagID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM pass_tag_cross_ref WHERE pass_id = ? AND tag_id = ?`, passID, tagID)
	if err != nil {
		return fmt.Errorf("failed to untag pass %s from %d: %w", passID, tagID, err)
	}
	return nil
}

// UntagAll removes every link of a pass.
func (r *SQLiteRepository) UntagAll(ctx context.Context, passID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM pass_tag_cross_ref WHERE pass_id = ?`, passID); err != nil {
		return fmt.Errorf("failed to untag pass %s: %w", passID, err)
	}
	return nil
}

// TagsOf returns the tags linked to a pass.
func (r *SQLiteRepository) TagsOf(ctx context.Context, passID string) ([]models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.color
		FROM pass_tag_cross_ref x JOIN tags t ON t.id = x.tag_id
		WHERE x.pass_id = ?
		ORDER BY t.id`, passID)
	if err != nil {
		return nil, fmt.Errorf("failed to select tags of pass %s: %w", passID, err)
	}
	defer rows.Close()

	result := make([]models.Tag, 0)
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tag rows: %w", err)
	}
	return result, nil
}

// TagsByPass resolves the tags of all passes in one query.
func (r *SQLiteRepository) TagsByPass(ctx context.Context) (map[string][]models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT x.pass_id, t.id, t.name, t.color
		FROM pass_tag_cross_ref x JOIN tags t ON t.id = x.tag_id
		ORDER BY x.pass_id, t.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select pass tags: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]models.Tag)
	for rows.Next() {
		var passID string
		var t models.Tag
		if err := rows.Scan(&passID, &t.ID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("failed to scan pass tag row: %w", err)
		}
		result[passID] = append(result[passID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pass tag rows: %w", err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPass(s scanner) (*models.Pass, error) {
	var (
		p                                        models.Pass
		passType, relevant, addedAt              string
		groupID                                  sql.NullInt64
		expiration, authToken, bg, fg, label, bc sql.NullString
	)
	err := s.Scan(&p.ID, &passType, &p.OrganizationName, &p.Description, &p.SerialNumber, &p.PassTypeIdentifier,
		&addedAt, &relevant, &expiration, &p.Voided, &p.Archived, &p.WebServiceURL, &authToken,
		&bg, &fg, &label, &p.CompatibilityMode, &groupID, &bc)
	if err != nil {
		return nil, err
	}

	p.Type = models.PassTypeFromString(passType)
	if p.AddedAt, err = parseTime(addedAt); err != nil {
		return nil, fmt.Errorf("decode added date of %s: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(relevant), &p.RelevantDates); err != nil {
		return nil, fmt.Errorf("decode relevant dates of %s: %w", p.ID, err)
	}
	if len(p.RelevantDates) == 0 {
		p.RelevantDates = nil
	}
	if expiration.Valid {
		t, err := parseTime(expiration.String)
		if err != nil {
			return nil, fmt.Errorf("decode expiration date of %s: %w", p.ID, err)
		}
		p.ExpirationDate = &t
	}
	p.AuthenticationToken = stringPtr(authToken)
	p.BackgroundColor = stringPtr(bg)
	p.ForegroundColor = stringPtr(fg)
	p.LabelColor = stringPtr(label)
	if groupID.Valid {
		id := groupID.Int64
		p.GroupID = &id
	}
	if bc.Valid {
		b, err := models.BarcodeFromJSON([]byte(bc.String))
		if err != nil {
			return nil, fmt.Errorf("decode barcode of %s: %w", p.ID, err)
		}
		p.Barcode = &b
	}
	return &p, nil
}

func touched(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

func orEmpty(d []models.RelevantDate) []models.RelevantDate {
	if d == nil {
		return []models.RelevantDate{}
	}
	return d
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

// Dates are stored as RFC 3339 text in UTC, which covers years 0 to 9999.
func formatTime(t time.Time) (string, error) {
	u := t.UTC()
	if y := u.Year(); y < 0 || y > 9999 {
		return "", fmt.Errorf("time %s outside years 0-9999", t)
	}
	return u.Format(time.RFC3339Nano), nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func nullTime(t *time.Time) (sql.NullString, error) {
	if t == nil {
		return sql.NullString{}, nil
	}
	s, err := formatTime(*t)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: s, Valid: true}, nil
}
