package collection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// NoteRepository provides access to the notes table of one collection.
type NoteRepository struct {
	col *Collection
}

func NewNoteRepository(col *Collection) *NoteRepository {
	return &NoteRepository{col: col}
}

const noteColumns = `id, guid, notetype_id, deck_id, fields, tags, csum, created_at, updated_at`

// FindByID returns the note with the given id, or nil when it does not
// exist.
func (r *NoteRepository) FindByID(ctx context.Context, id int64) (*NoteRecord, error) {
	if !r.col.IsOpen() {
		return nil, ErrClosed
	}

	row := r.col.DB.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	record, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Insert stores a newly constructed note and returns its id. The checksum
// is derived from the first field; a missing GUID is generated. The note
// must reference a note type and deck of this collection.
func (r *NoteRepository) Insert(ctx context.Context, note NoteRecord) (int64, error) {
	if !r.col.IsOpen() {
		return 0, ErrClosed
	}
	if note.NotetypeID == 0 {
		return 0, fmt.Errorf("note repository: note has no note type")
	}
	if note.DeckID == 0 {
		return 0, fmt.Errorf("note repository: note has no deck")
	}
	if len(note.Fields) == 0 {
		return 0, fmt.Errorf("note repository: note has no fields")
	}

	guid := note.GUID
	if guid == "" {
		guid = newGUID()
	}

	res, err := r.col.DB.ExecContext(ctx,
		`INSERT INTO notes(guid, notetype_id, deck_id, fields, tags, csum) VALUES(?, ?, ?, ?, ?, ?)`,
		guid, note.NotetypeID, note.DeckID, joinFields(note.Fields), joinTags(note.Tags), fieldChecksum(note.Fields[0]))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateTags replaces the tag set of an existing note.
func (r *NoteRepository) UpdateTags(ctx context.Context, id int64, tags []string) error {
	if !r.col.IsOpen() {
		return ErrClosed
	}

	res, err := r.col.DB.ExecContext(ctx,
		`UPDATE notes SET tags = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		joinTags(tags), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: note %d", ErrNotFound, id)
	}
	return nil
}

// DupeOrEmpty runs the collection's native duplicate detection against a
// candidate note: an empty normalised first field is non-importable, and a
// matching first-field checksum within the same note type is a duplicate.
func (r *NoteRepository) DupeOrEmpty(ctx context.Context, notetypeID int64, fields []string) (DupeStatus, error) {
	if !r.col.IsOpen() {
		return DupeStatusNormal, ErrClosed
	}
	if len(fields) == 0 {
		return DupeStatusEmpty, nil
	}

	csum := fieldChecksum(fields[0])
	if csum == "" {
		return DupeStatusEmpty, nil
	}

	var count int64
	err := r.col.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notes WHERE notetype_id = ? AND csum = ?`,
		notetypeID, csum).Scan(&count)
	if err != nil {
		return DupeStatusNormal, err
	}
	if count > 0 {
		return DupeStatusDuplicate, nil
	}
	return DupeStatusNormal, nil
}

func scanNote(row rowScanner) (NoteRecord, error) {
	var (
		record    NoteRecord
		fields    string
		tags      string
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)
	if err := row.Scan(&record.ID, &record.GUID, &record.NotetypeID, &record.DeckID,
		&fields, &tags, &record.Checksum, &createdAt, &updatedAt); err != nil {
		return NoteRecord{}, err
	}
	record.Fields = splitFields(fields)
	record.Tags = splitTags(tags)
	record.CreatedAt = optionalTime(createdAt)
	record.UpdatedAt = optionalTime(updatedAt)
	return record, nil
}
