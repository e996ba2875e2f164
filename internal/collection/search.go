package collection

import (
	"context"
	"strings"
)

// WholeCollection is the deck scope that matches notes in every deck.
const WholeCollection int64 = 0

// Search returns the ids of notes whose fields or tags contain text,
// limited to the given deck unless the scope is WholeCollection. Results
// are ordered by note id, oldest first. Empty text matches every note in
// scope; callers enforce their own empty-search policy.
func (r *NoteRepository) Search(ctx context.Context, deckID int64, text string) ([]int64, error) {
	if !r.col.IsOpen() {
		return nil, ErrClosed
	}

	query := `SELECT id FROM notes`
	var (
		conditions []string
		args       []any
	)
	if deckID != WholeCollection {
		conditions = append(conditions, `deck_id = ?`)
		args = append(args, deckID)
	}
	if text = strings.TrimSpace(text); text != "" {
		conditions = append(conditions, `(fields LIKE ? ESCAPE '\' OR tags LIKE ? ESCAPE '\')`)
		pattern := "%" + escapeLike(text) + "%"
		args = append(args, pattern, pattern)
	}
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, ` AND `)
	}
	query += ` ORDER BY id`

	rows, err := r.col.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func escapeLike(text string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(text)
}
