package importer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ajatt-tools/cropro/internal/mediaref"
)

// MediaAdder is the destination media store capability consumed by the
// pipeline. AddFile returns the canonical filename under which the content
// is stored, which differs from the input base name only on a conflict with
// different content.
type MediaAdder interface {
	AddFile(srcPath string) (string, error)
}

// TransferMedia copies every attachment referenced by fields from the
// source media directory into the destination store and returns the
// rewritten field sequence. A referenced file absent on disk is skipped and
// its reference left as-is: a dangling reference is tolerated, not an
// error. The input fields are not mutated.
func TransferMedia(fields []string, srcMediaDir string, dst MediaAdder) ([]string, error) {
	out := append([]string(nil), fields...)

	for _, name := range mediaref.References(fields) {
		srcPath := filepath.Join(srcMediaDir, name)
		if _, err := os.Stat(srcPath); err != nil {
			continue
		}

		canonical, err := dst.AddFile(srcPath)
		if err != nil {
			return nil, fmt.Errorf("failed to transfer %q: %w", name, err)
		}
		if canonical != name {
			out = mediaref.Replace(out, name, canonical)
		}
	}
	return out, nil
}
