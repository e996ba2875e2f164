package collection

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MediaStore manages the media directory of one collection. Files are
// addressed by name with content checks: adding a file whose name is taken
// by identical content reuses the name, while a name taken by different
// content is disambiguated with a numeric suffix.
type MediaStore struct {
	dir string
}

func NewMediaStore(dir string) *MediaStore {
	return &MediaStore{dir: dir}
}

// Dir returns the media directory path.
func (s *MediaStore) Dir() string {
	return s.dir
}

// Exists reports whether a file with the given name is present.
func (s *MediaStore) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil
}

// AddFile copies the file at srcPath into the store and returns the
// canonical filename: the original base name when it was free or already
// held identical content, or the first numbered variant otherwise.
func (s *MediaStore) AddFile(srcPath string) (string, error) {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("failed to read media file: %w", err)
	}
	checksum := contentChecksum(content)

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	name := filepath.Base(srcPath)
	for variant := 0; ; variant++ {
		candidate := variantName(name, variant)
		destPath := filepath.Join(s.dir, candidate)

		existing, err := os.ReadFile(destPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return "", fmt.Errorf("failed to probe media file: %w", err)
			}
			if err := os.WriteFile(destPath, content, 0o600); err != nil {
				return "", fmt.Errorf("failed to write media file: %w", err)
			}
			return candidate, nil
		}

		if contentChecksum(existing) == checksum {
			return candidate, nil
		}
	}
}

// variantName disambiguates a taken filename: "pic.jpg" becomes
// "pic-1.jpg", "pic-2.jpg", and so on.
func variantName(name string, variant int) string {
	if variant == 0 {
		return name
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s-%d%s", stem, variant, ext)
}

func contentChecksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
