// Package importer implements the note migration pipeline between two
// profile collections: note type reconciliation, tag propagation,
// duplicate suppression, media transfer, and outcome aggregation.
package importer

import (
	"context"
	"errors"
	"strings"

	"github.com/ajatt-tools/cropro/internal/collection"
	"github.com/ajatt-tools/cropro/internal/config"
)

// ErrSecondaryClosed indicates a query or read against a secondary handle
// that is not open.
var ErrSecondaryClosed = errors.New("importer: secondary collection is not open")

// Secondary manages the lifetime of the source-profile collection handle.
// At most one secondary collection is open at a time; opening a different
// profile closes the previous handle first.
type Secondary struct {
	col      *collection.Collection
	settings config.Settings
}

func NewSecondary(settings config.Settings) *Secondary {
	return &Secondary{settings: settings}
}

// Open opens the named profile as the source collection. Opening the
// profile that is already open is a no-op.
func (s *Secondary) Open(profile string) error {
	if s.col != nil && s.col.Name == profile {
		return nil
	}
	s.Close()

	col, err := collection.Open(profile)
	if err != nil {
		return err
	}
	s.col = col
	return nil
}

// IsOpen reports whether a source collection is currently open.
func (s *Secondary) IsOpen() bool {
	return s.col.IsOpen()
}

// Name returns the profile name of the open collection, or "".
func (s *Secondary) Name() string {
	if s.col == nil {
		return ""
	}
	return s.col.Name
}

// Close releases the source collection. Safe to call when nothing is open.
func (s *Secondary) Close() {
	if s.col != nil {
		_ = s.col.Close()
		s.col = nil
	}
}

// Query returns the ids of source notes matching text within the deck
// scope. An empty search short-circuits to no results unless the
// allow_empty_search setting is on; the store is not consulted in that
// case.
func (s *Secondary) Query(ctx context.Context, deckID int64, text string) ([]int64, error) {
	if !s.IsOpen() {
		return nil, ErrSecondaryClosed
	}
	if strings.TrimSpace(text) == "" && !s.settings.AllowEmptySearch {
		return nil, nil
	}
	return collection.NewNoteRepository(s.col).Search(ctx, deckID, text)
}

// ReadNote reads one source note.
func (s *Secondary) ReadNote(ctx context.Context, id int64) (*collection.NoteRecord, error) {
	if !s.IsOpen() {
		return nil, ErrSecondaryClosed
	}
	return collection.NewNoteRepository(s.col).FindByID(ctx, id)
}

// ListDecks returns the source decks sorted by name.
func (s *Secondary) ListDecks(ctx context.Context) ([]collection.DeckRecord, error) {
	if !s.IsOpen() {
		return nil, ErrSecondaryClosed
	}
	return collection.NewDeckRepository(s.col).List(ctx)
}

// MediaDir returns the source media directory path.
func (s *Secondary) MediaDir() string {
	if s.col == nil {
		return ""
	}
	return s.col.MediaDir
}

// Collection exposes the underlying handle for source-side writes such as
// the exported-tag update.
func (s *Secondary) Collection() *collection.Collection {
	return s.col
}
