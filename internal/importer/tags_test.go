package importer

import (
	"context"
	"reflect"
	"testing"

	"github.com/ajatt-tools/cropro/internal/collection"
	"github.com/ajatt-tools/cropro/internal/config"
)

func TestPrepareTagsExcludesLeech(t *testing.T) {
	settings := config.DefaultSettings()

	got := PrepareTags([]string{"animal", "leech", "jlpt-n5"}, settings)
	want := []string{"animal", "jlpt-n5"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("PrepareTags() = %v, want %v", got, want)
	}

	// Case differences don't smuggle the tag through.
	got = PrepareTags([]string{"Leech", "LEECH", "other"}, settings)
	if !reflect.DeepEqual(got, []string{"other"}) {
		t.Fatalf("PrepareTags() = %v, want [other]", got)
	}
}

func TestPrepareTagsCopyDisabled(t *testing.T) {
	settings := config.DefaultSettings()
	settings.CopyTags = false

	if got := PrepareTags([]string{"animal"}, settings); got != nil {
		t.Fatalf("expected no tags, got %v", got)
	}
}

func TestMarkExportedPersistsTag(t *testing.T) {
	ctx := context.Background()
	src, _ := setupProfiles(t)
	noteID, _ := seedSourceNote(t, src, []string{"猫", "cat"}, []string{"animal"})

	settings := config.DefaultSettings()

	repo := collection.NewNoteRepository(src)
	note, err := repo.FindByID(ctx, noteID)
	if err != nil || note == nil {
		t.Fatalf("failed to read note: %v", err)
	}

	if err := MarkExported(ctx, src, note, settings); err != nil {
		t.Fatalf("MarkExported returned error: %v", err)
	}

	persisted, err := repo.FindByID(ctx, noteID)
	if err != nil || persisted == nil {
		t.Fatalf("failed to re-read note: %v", err)
	}
	if !reflect.DeepEqual(persisted.Tags, []string{"animal", "exported"}) {
		t.Fatalf("unexpected tags %v", persisted.Tags)
	}

	// Marking again is a no-op.
	if err := MarkExported(ctx, src, persisted, settings); err != nil {
		t.Fatalf("second MarkExported error: %v", err)
	}
	again, err := repo.FindByID(ctx, noteID)
	if err != nil || again == nil {
		t.Fatalf("failed to re-read note: %v", err)
	}
	if len(again.Tags) != 2 {
		t.Fatalf("expected idempotent tagging, got %v", again.Tags)
	}
}

func TestMarkExportedCustomTag(t *testing.T) {
	ctx := context.Background()
	src, _ := setupProfiles(t)
	noteID, _ := seedSourceNote(t, src, []string{"犬", "dog"}, nil)

	settings := config.DefaultSettings()
	settings.ExportedTag = "migrated"

	repo := collection.NewNoteRepository(src)
	note, err := repo.FindByID(ctx, noteID)
	if err != nil || note == nil {
		t.Fatalf("failed to read note: %v", err)
	}

	if err := MarkExported(ctx, src, note, settings); err != nil {
		t.Fatalf("MarkExported returned error: %v", err)
	}

	persisted, err := repo.FindByID(ctx, noteID)
	if err != nil || persisted == nil {
		t.Fatalf("failed to re-read note: %v", err)
	}
	if !reflect.DeepEqual(persisted.Tags, []string{"migrated"}) {
		t.Fatalf("unexpected tags %v", persisted.Tags)
	}
}
