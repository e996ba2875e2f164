package collection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DeckRepository provides access to the decks table of one collection.
type DeckRepository struct {
	col *Collection
}

func NewDeckRepository(col *Collection) *DeckRepository {
	return &DeckRepository{col: col}
}

// List returns all decks sorted by name.
func (r *DeckRepository) List(ctx context.Context) ([]DeckRecord, error) {
	if !r.col.IsOpen() {
		return nil, ErrClosed
	}

	rows, err := r.col.DB.QueryContext(ctx, `SELECT id, name, created_at FROM decks ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []DeckRecord
	for rows.Next() {
		record, err := scanDeck(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

// FindByID returns the deck with the given id, or nil when it does not exist.
func (r *DeckRepository) FindByID(ctx context.Context, id int64) (*DeckRecord, error) {
	if !r.col.IsOpen() {
		return nil, ErrClosed
	}

	row := r.col.DB.QueryRowContext(ctx, `SELECT id, name, created_at FROM decks WHERE id = ?`, id)
	record, err := scanDeck(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// GetOrCreate returns the id of the named deck, creating it if necessary.
func (r *DeckRepository) GetOrCreate(ctx context.Context, name string) (int64, error) {
	if !r.col.IsOpen() {
		return 0, ErrClosed
	}
	if name == "" {
		return 0, fmt.Errorf("deck repository: empty deck name")
	}

	var id int64
	err := r.col.DB.QueryRowContext(ctx, `SELECT id FROM decks WHERE name = ?`, name).Scan(&id)
	switch {
	case err == nil:
		return id, nil
	case errors.Is(err, sql.ErrNoRows):
		res, err := r.col.DB.ExecContext(ctx, `INSERT INTO decks(name) VALUES(?)`, name)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	default:
		return 0, err
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeck(row rowScanner) (DeckRecord, error) {
	var (
		record    DeckRecord
		createdAt sql.NullTime
	)
	if err := row.Scan(&record.ID, &record.Name, &createdAt); err != nil {
		return DeckRecord{}, err
	}
	record.CreatedAt = optionalTime(createdAt)
	return record, nil
}
