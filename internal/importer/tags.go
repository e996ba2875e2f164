package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/ajatt-tools/cropro/internal/collection"
	"github.com/ajatt-tools/cropro/internal/config"
)

// excludedTag is never copied to an imported note. The host uses it to mark
// cards suspended from review scheduling; carrying it across would suspend
// the fresh copies too.
const excludedTag = "leech"

// PrepareTags returns the tag set copied onto an imported note: all source
// tags except the excluded one, or none at all when tag copying is off.
func PrepareTags(source []string, settings config.Settings) []string {
	if !settings.CopyTags {
		return nil
	}

	tags := make([]string, 0, len(source))
	for _, tag := range source {
		if strings.EqualFold(tag, excludedTag) {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// MarkExported adds the configured exported tag to the source note and
// persists the change to the source collection immediately. This is a
// mark-as-processed semantic: it happens before duplicate detection and is
// independent of whether the destination insert succeeds.
func MarkExported(ctx context.Context, src *collection.Collection, note *collection.NoteRecord, settings config.Settings) error {
	tag := settings.ExportedTag
	if tag == "" {
		tag = "exported"
	}

	for _, existing := range note.Tags {
		if existing == tag {
			return nil
		}
	}

	tags := append(append([]string(nil), note.Tags...), tag)
	if err := collection.NewNoteRepository(src).UpdateTags(ctx, note.ID, tags); err != nil {
		return fmt.Errorf("failed to tag source note %d: %w", note.ID, err)
	}
	note.Tags = tags
	return nil
}
