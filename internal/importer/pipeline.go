package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/ajatt-tools/cropro/internal/collection"
	"github.com/ajatt-tools/cropro/internal/config"
)

// ReconcileNotetypes instructs the pipeline to derive the destination note
// type from each source note's own type instead of mapping every note onto
// one selected destination type.
const ReconcileNotetypes int64 = -1

// ErrNoNotetype indicates no destination note type was selected. The batch
// aborts before any note is processed so the caller can prompt for one.
var ErrNoNotetype = errors.New("importer: no destination note type selected")

// DuplicateGuard decides whether a constructed candidate note already
// exists in the destination. The production implementation delegates to the
// destination collection's native duplicate detection.
type DuplicateGuard interface {
	IsDuplicateOrEmpty(ctx context.Context, notetypeID int64, fields []string) (bool, error)
}

type storeGuard struct {
	col *collection.Collection
}

func (g storeGuard) IsDuplicateOrEmpty(ctx context.Context, notetypeID int64, fields []string) (bool, error) {
	status, err := collection.NewNoteRepository(g.col).DupeOrEmpty(ctx, notetypeID, fields)
	if err != nil {
		return false, err
	}
	return status != collection.DupeStatusNormal, nil
}

// Pipeline migrates notes from the secondary collection into the
// destination collection. Per-note failures never abort the batch; only
// batch-level preconditions do.
type Pipeline struct {
	dst      *collection.Collection
	src      *Secondary
	settings config.Settings
	gate     *Gate

	// guard and media are injected capabilities; NewPipeline wires the
	// destination store's own implementations.
	guard DuplicateGuard
	media MediaAdder
}

func NewPipeline(dst *collection.Collection, src *Secondary, settings config.Settings, gate *Gate) *Pipeline {
	return &Pipeline{
		dst:      dst,
		src:      src,
		settings: settings,
		gate:     gate,
		guard:    storeGuard{col: dst},
		media:    collection.NewMediaStore(dst.MediaDir),
	}
}

// Import processes the given source notes into the destination deck and
// returns the aggregated per-note outcomes.
//
// destNotetypeID selects the mapping target: a concrete destination note
// type id, ReconcileNotetypes for per-note reconciliation, or zero for
// unselected. An unselected note type aborts immediately with ErrNoNotetype
// and an all-zero result; neither store is touched.
func (p *Pipeline) Import(ctx context.Context, noteIDs []int64, destNotetypeID, destDeckID int64) (*Result, error) {
	if destNotetypeID == 0 {
		return &Result{}, ErrNoNotetype
	}

	if err := p.gate.TryAcquire(); err != nil {
		return nil, err
	}
	defer p.gate.Release()

	if !p.dst.IsOpen() {
		return nil, collection.ErrClosed
	}
	if !p.src.IsOpen() {
		return nil, ErrSecondaryClosed
	}

	if destNotetypeID != ReconcileNotetypes {
		nt, err := collection.NewNotetypeRepository(p.dst).FindByID(ctx, destNotetypeID)
		if err != nil {
			return nil, err
		}
		if nt == nil {
			return &Result{}, fmt.Errorf("%w: note type %d", ErrNoNotetype, destNotetypeID)
		}
	}

	deck, err := collection.NewDeckRepository(p.dst).FindByID(ctx, destDeckID)
	if err != nil {
		return nil, err
	}
	if deck == nil {
		return nil, fmt.Errorf("importer: destination deck %d not found", destDeckID)
	}

	result := &Result{}
	for _, id := range noteIDs {
		p.importNote(ctx, result, id, destNotetypeID, destDeckID)
	}
	return result, nil
}

// importNote walks one note through the per-note state machine: resolve the
// note type, construct the candidate with copied fields and prepared tags
// bound to the destination deck, check for duplicates, transfer media, and
// commit.
func (p *Pipeline) importNote(ctx context.Context, result *Result, noteID, destNotetypeID, deckID int64) {
	note, err := p.src.ReadNote(ctx, noteID)
	if err != nil {
		result.record(OutcomeError, noteID, err)
		return
	}
	if note == nil {
		result.record(OutcomeError, noteID, fmt.Errorf("source note %d: %w", noteID, collection.ErrNotFound))
		return
	}

	notetypeID := destNotetypeID
	if notetypeID == ReconcileNotetypes {
		srcType, err := collection.NewNotetypeRepository(p.src.Collection()).FindByID(ctx, note.NotetypeID)
		if err != nil {
			result.record(OutcomeError, noteID, err)
			return
		}
		if srcType == nil {
			result.record(OutcomeError, noteID, fmt.Errorf("source note type %d: %w", note.NotetypeID, collection.ErrNotFound))
			return
		}

		notetypeID, err = ReconcileNotetype(ctx, p.dst, *srcType, p.settings.ReuseClonedNotetypes)
		if err != nil {
			result.record(OutcomeError, noteID, err)
			return
		}
	}

	candidate := collection.NoteRecord{
		NotetypeID: notetypeID,
		DeckID:     deckID,
		Fields:     append([]string(nil), note.Fields...),
		Tags:       PrepareTags(note.Tags, p.settings),
	}

	// Mark-as-processed runs before duplicate detection: the source note is
	// tagged even when the candidate is later skipped as a duplicate.
	if p.settings.TagOriginalNotes {
		if err := MarkExported(ctx, p.src.Collection(), note, p.settings); err != nil {
			result.record(OutcomeError, noteID, err)
			return
		}
	}

	if p.settings.SkipDuplicates {
		dup, err := p.guard.IsDuplicateOrEmpty(ctx, notetypeID, candidate.Fields)
		if err != nil {
			result.record(OutcomeError, noteID, err)
			return
		}
		if dup {
			result.record(OutcomeDuplicate, noteID, nil)
			return
		}
	}

	fields, err := TransferMedia(candidate.Fields, p.src.MediaDir(), p.media)
	if err != nil {
		result.record(OutcomeError, noteID, err)
		return
	}
	candidate.Fields = fields

	newID, err := collection.NewNoteRepository(p.dst).Insert(ctx, candidate)
	if err != nil {
		result.record(OutcomeError, noteID, fmt.Errorf("failed to commit note: %w", err))
		return
	}
	result.record(OutcomeSuccess, newID, nil)
}
