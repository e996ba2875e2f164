package collection

import (
	"crypto/rand"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"regexp"
	"sort"
	"strings"
	"time"
)

// fieldSeparator joins ordered field values into a single column.
const fieldSeparator = "\x1f"

func joinFields(fields []string) string {
	return strings.Join(fields, fieldSeparator)
}

func splitFields(value string) []string {
	if value == "" {
		return []string{""}
	}
	return strings.Split(value, fieldSeparator)
}

// joinTags stores tags sorted and space-separated. Tags are a set: order
// carries no meaning and duplicates collapse.
func joinTags(tags []string) string {
	seen := make(map[string]struct{}, len(tags))
	unique := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		unique = append(unique, tag)
	}
	sort.Strings(unique)
	return strings.Join(unique, " ")
}

func splitTags(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return strings.Fields(value)
}

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// normalizeField strips markup and surrounding whitespace so that duplicate
// detection compares content, not formatting.
func normalizeField(value string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(value, ""))
}

// fieldChecksum derives the duplicate-detection key from the first field.
// Empty input produces an empty checksum.
func fieldChecksum(firstField string) string {
	normalized := normalizeField(firstField)
	if normalized == "" {
		return ""
	}
	sum := sha1.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:8])
}

// newGUID produces a globally unique note identifier.
func newGUID() string {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return hex.EncodeToString([]byte(time.Now().String()))[:20]
	}
	return hex.EncodeToString(buf)
}

func optionalInt64(ni sql.NullInt64) int64 {
	if !ni.Valid {
		return 0
	}
	return ni.Int64
}

func optionalTime(nt sql.NullTime) time.Time {
	if !nt.Valid {
		return time.Time{}
	}
	return nt.Time
}
