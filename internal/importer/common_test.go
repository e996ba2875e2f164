package importer

import (
	"context"
	"testing"

	"github.com/ajatt-tools/cropro/internal/collection"
	"github.com/ajatt-tools/cropro/internal/config"
)

// setupProfiles creates a source profile ("bank") and a destination profile
// ("main") under a temporary base directory.
func setupProfiles(t *testing.T) (src, dst *collection.Collection) {
	t.Helper()
	t.Setenv("CROPRO_BASE", t.TempDir())

	src, err := collection.Create("bank")
	if err != nil {
		t.Fatalf("failed to create source profile: %v", err)
	}
	t.Cleanup(func() {
		_ = src.Close()
	})

	dst, err = collection.Create("main")
	if err != nil {
		t.Fatalf("failed to create destination profile: %v", err)
	}
	t.Cleanup(func() {
		_ = dst.Close()
	})

	return src, dst
}

func openSecondary(t *testing.T, profile string, settings config.Settings) *Secondary {
	t.Helper()
	secondary := NewSecondary(settings)
	if err := secondary.Open(profile); err != nil {
		t.Fatalf("failed to open secondary profile %s: %v", profile, err)
	}
	t.Cleanup(secondary.Close)
	return secondary
}

// seedSourceNote installs a "Japanese" note type and a "Default" deck in the
// source collection and inserts one note.
func seedSourceNote(t *testing.T, src *collection.Collection, fields, tags []string) (noteID, notetypeID int64) {
	t.Helper()
	ctx := context.Background()

	deckID, err := collection.NewDeckRepository(src).GetOrCreate(ctx, "Default")
	if err != nil {
		t.Fatalf("failed to seed source deck: %v", err)
	}

	notetypeID = seedNotetype(t, src, "Japanese", []string{"Expression", "Meaning"})

	noteID, err = collection.NewNoteRepository(src).Insert(ctx, collection.NoteRecord{
		NotetypeID: notetypeID,
		DeckID:     deckID,
		Fields:     fields,
		Tags:       tags,
	})
	if err != nil {
		t.Fatalf("failed to seed source note: %v", err)
	}
	return noteID, notetypeID
}

func seedNotetype(t *testing.T, col *collection.Collection, name string, fields []string) int64 {
	t.Helper()

	repo := collection.NewNotetypeRepository(col)
	existing, err := repo.FindByName(context.Background(), name)
	if err != nil {
		t.Fatalf("failed to look up notetype: %v", err)
	}
	if existing != nil {
		return existing.ID
	}

	id, err := repo.Install(context.Background(), collection.NotetypeRecord{Name: name, Fields: fields})
	if err != nil {
		t.Fatalf("failed to seed notetype: %v", err)
	}
	return id
}

func seedDeck(t *testing.T, col *collection.Collection, name string) int64 {
	t.Helper()
	id, err := collection.NewDeckRepository(col).GetOrCreate(context.Background(), name)
	if err != nil {
		t.Fatalf("failed to seed deck: %v", err)
	}
	return id
}

func notetypeCount(t *testing.T, col *collection.Collection) int64 {
	t.Helper()
	count, err := collection.NewNotetypeRepository(col).Count(context.Background())
	if err != nil {
		t.Fatalf("failed to count notetypes: %v", err)
	}
	return count
}
