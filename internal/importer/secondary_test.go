package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/ajatt-tools/cropro/internal/collection"
	"github.com/ajatt-tools/cropro/internal/config"
)

func TestSecondaryLifecycle(t *testing.T) {
	setupProfiles(t)

	secondary := NewSecondary(config.DefaultSettings())
	if secondary.IsOpen() {
		t.Fatalf("expected fresh handle to be closed")
	}

	if err := secondary.Open("bank"); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if !secondary.IsOpen() || secondary.Name() != "bank" {
		t.Fatalf("expected open handle for bank, got %q", secondary.Name())
	}

	// Re-opening the same profile keeps the handle.
	if err := secondary.Open("bank"); err != nil {
		t.Fatalf("re-Open returned error: %v", err)
	}

	// Opening a different profile swaps the handle.
	if err := secondary.Open("main"); err != nil {
		t.Fatalf("Open(main) returned error: %v", err)
	}
	if secondary.Name() != "main" {
		t.Fatalf("expected handle for main, got %q", secondary.Name())
	}

	secondary.Close()
	secondary.Close()
	if secondary.IsOpen() {
		t.Fatalf("expected handle to be closed")
	}

	if _, err := secondary.ReadNote(context.Background(), 1); !errors.Is(err, ErrSecondaryClosed) {
		t.Fatalf("expected ErrSecondaryClosed, got %v", err)
	}
}

func TestSecondaryOpenMissingProfile(t *testing.T) {
	setupProfiles(t)

	secondary := NewSecondary(config.DefaultSettings())
	if err := secondary.Open("nope"); !errors.Is(err, collection.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	if secondary.IsOpen() {
		t.Fatalf("expected handle to stay closed after failed open")
	}
}

func TestSecondaryEmptySearchPolicy(t *testing.T) {
	ctx := context.Background()
	src, _ := setupProfiles(t)
	seedSourceNote(t, src, []string{"猫", "cat"}, nil)

	settings := config.DefaultSettings()
	settings.AllowEmptySearch = false
	secondary := openSecondary(t, "bank", settings)

	ids, err := secondary.Query(ctx, collection.WholeCollection, "   ")
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty search to short-circuit, got %v", ids)
	}

	allowed := config.DefaultSettings()
	allowed.AllowEmptySearch = true
	permissive := openSecondary(t, "bank", allowed)

	ids, err = permissive.Query(ctx, collection.WholeCollection, "")
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected 1 note with allow_empty_search, got %v", ids)
	}
}

func TestSecondaryListDecksSorted(t *testing.T) {
	ctx := context.Background()
	src, _ := setupProfiles(t)
	seedDeck(t, src, "Mining")
	seedDeck(t, src, "Archive")

	secondary := openSecondary(t, "bank", config.DefaultSettings())

	decks, err := secondary.ListDecks(ctx)
	if err != nil {
		t.Fatalf("ListDecks returned error: %v", err)
	}
	if len(decks) != 2 || decks[0].Name != "Archive" || decks[1].Name != "Mining" {
		t.Fatalf("expected decks sorted by name, got %+v", decks)
	}
}
