package collection

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// NotetypeRepository provides access to the notetypes table of one
// collection.
type NotetypeRepository struct {
	col *Collection
}

func NewNotetypeRepository(col *Collection) *NotetypeRepository {
	return &NotetypeRepository{col: col}
}

const notetypeColumns = `id, name, fields, templates, default_deck_id, created_at`

// FindByName returns the oldest note type with the given name, or nil when
// none exists. Names are not unique; the oldest row wins to keep lookups
// stable across imports.
func (r *NotetypeRepository) FindByName(ctx context.Context, name string) (*NotetypeRecord, error) {
	if !r.col.IsOpen() {
		return nil, ErrClosed
	}

	row := r.col.DB.QueryRowContext(ctx,
		`SELECT `+notetypeColumns+` FROM notetypes WHERE name = ? ORDER BY id LIMIT 1`, name)
	record, err := scanNotetype(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// FindByID returns the note type with the given id, or nil when it does not
// exist.
func (r *NotetypeRepository) FindByID(ctx context.Context, id int64) (*NotetypeRecord, error) {
	if !r.col.IsOpen() {
		return nil, ErrClosed
	}

	row := r.col.DB.QueryRowContext(ctx,
		`SELECT `+notetypeColumns+` FROM notetypes WHERE id = ?`, id)
	record, err := scanNotetype(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// List returns all note types ordered by name, then id.
func (r *NotetypeRepository) List(ctx context.Context) ([]NotetypeRecord, error) {
	if !r.col.IsOpen() {
		return nil, ErrClosed
	}

	rows, err := r.col.DB.QueryContext(ctx,
		`SELECT `+notetypeColumns+` FROM notetypes ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []NotetypeRecord
	for rows.Next() {
		record, err := scanNotetype(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

// Install inserts a deep copy of the given note type definition and returns
// its fresh id. The DefaultDeckID of the input is ignored: deck assignment
// is a per-note property in this collection, and a copied definition must
// not carry a deck reference from another collection.
func (r *NotetypeRepository) Install(ctx context.Context, nt NotetypeRecord) (int64, error) {
	if !r.col.IsOpen() {
		return 0, ErrClosed
	}
	if nt.Name == "" {
		return 0, fmt.Errorf("notetype repository: empty note type name")
	}
	if len(nt.Fields) == 0 {
		return 0, fmt.Errorf("notetype repository: note type %q has no fields", nt.Name)
	}

	fields, err := json.Marshal(nt.Fields)
	if err != nil {
		return 0, err
	}

	res, err := r.col.DB.ExecContext(ctx,
		`INSERT INTO notetypes(name, fields, templates, default_deck_id) VALUES(?, ?, ?, NULL)`,
		nt.Name, string(fields), nt.Templates)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// FieldNames returns the ordered field names of the note type.
func (r *NotetypeRepository) FieldNames(ctx context.Context, id int64) ([]string, error) {
	record, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: notetype %d", ErrNotFound, id)
	}
	return record.Fields, nil
}

// Count returns the number of note types in the collection.
func (r *NotetypeRepository) Count(ctx context.Context) (int64, error) {
	if !r.col.IsOpen() {
		return 0, ErrClosed
	}

	var count int64
	err := r.col.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM notetypes`).Scan(&count)
	return count, err
}

func scanNotetype(row rowScanner) (NotetypeRecord, error) {
	var (
		record        NotetypeRecord
		fields        string
		defaultDeckID sql.NullInt64
		createdAt     sql.NullTime
	)
	if err := row.Scan(&record.ID, &record.Name, &fields, &record.Templates, &defaultDeckID, &createdAt); err != nil {
		return NotetypeRecord{}, err
	}
	if err := json.Unmarshal([]byte(fields), &record.Fields); err != nil {
		return NotetypeRecord{}, fmt.Errorf("notetype %d has malformed field list: %w", record.ID, err)
	}
	record.DefaultDeckID = optionalInt64(defaultDeckID)
	record.CreatedAt = optionalTime(createdAt)
	return record, nil
}
