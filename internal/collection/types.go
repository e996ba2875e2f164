package collection

import "time"

// DeckRecord represents a row in the decks table.
type DeckRecord struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// NotetypeRecord represents a row in the notetypes table. Fields holds the
// ordered field names; Templates is an opaque blob carried along when a
// note type is copied between collections.
type NotetypeRecord struct {
	ID            int64
	Name          string
	Fields        []string
	Templates     string
	DefaultDeckID int64
	CreatedAt     time.Time
}

// NoteRecord represents a row in the notes table. Fields are ordered values
// matching the note type's field names; Tags is an unordered, unique set
// stored sorted.
type NoteRecord struct {
	ID         int64
	GUID       string
	NotetypeID int64
	DeckID     int64
	Fields     []string
	Tags       []string
	Checksum   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DupeStatus classifies a candidate note against the collection's native
// duplicate detection.
type DupeStatus int

const (
	// DupeStatusNormal means the candidate is importable.
	DupeStatusNormal DupeStatus = iota
	// DupeStatusEmpty means the first field is empty after normalisation.
	DupeStatusEmpty
	// DupeStatusDuplicate means an equivalent note already exists.
	DupeStatusDuplicate
)
