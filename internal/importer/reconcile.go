package importer

import (
	"context"
	"fmt"

	"github.com/ajatt-tools/cropro/internal/collection"
)

// clonedNotetypeSuffix marks note types copied in because an existing
// destination note type with the same name had an incompatible field
// layout.
const clonedNotetypeSuffix = " cropro"

// ReconcileNotetype finds or installs a destination note type equivalent to
// the given source note type and returns its id.
//
// A destination note type with the same name and the exact same field
// sequence is reused. A name match with a different field layout forces a
// deep copy installed under the suffixed clone name; no field remapping is
// attempted. A missing name installs an unmodified copy. When reuseClones
// is set, a previously installed compatible clone is reused instead of
// re-copying on every batch.
func ReconcileNotetype(ctx context.Context, dst *collection.Collection, src collection.NotetypeRecord, reuseClones bool) (int64, error) {
	repo := collection.NewNotetypeRepository(dst)

	if reuseClones {
		clone, err := repo.FindByName(ctx, src.Name+clonedNotetypeSuffix)
		if err != nil {
			return 0, err
		}
		if clone != nil && sameFields(clone.Fields, src.Fields) {
			return clone.ID, nil
		}
	}

	existing, err := repo.FindByName(ctx, src.Name)
	if err != nil {
		return 0, err
	}

	switch {
	case existing == nil:
		return install(ctx, repo, src)
	case sameFields(existing.Fields, src.Fields):
		return existing.ID, nil
	default:
		clone := src
		clone.Name = src.Name + clonedNotetypeSuffix
		return install(ctx, repo, clone)
	}
}

func install(ctx context.Context, repo *collection.NotetypeRepository, nt collection.NotetypeRecord) (int64, error) {
	id, err := repo.Install(ctx, nt)
	if err != nil {
		return 0, fmt.Errorf("failed to install note type %q: %w", nt.Name, err)
	}
	return id, nil
}

// sameFields reports whether two field-name sequences are exactly equal:
// same names, same order, same count.
func sameFields(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
