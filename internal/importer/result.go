package importer

import "fmt"

// Outcome classifies the result of importing a single note.
type Outcome int

const (
	// OutcomeSuccess means the note was committed to the destination.
	OutcomeSuccess Outcome = iota
	// OutcomeDuplicate means an equivalent note already existed and the
	// candidate was skipped before media transfer.
	OutcomeDuplicate
	// OutcomeError means a store failure interrupted this note.
	OutcomeError
)

// NoteFailure records the cause of one per-note error.
type NoteFailure struct {
	NoteID int64
	Err    error
}

func (f NoteFailure) Error() string {
	return fmt.Sprintf("note %d: %v", f.NoteID, f.Err)
}

func (f NoteFailure) Unwrap() error {
	return f.Err
}

// Result aggregates per-note outcomes for one import batch. It is created
// fresh per batch and discarded after the caller consumes it.
type Result struct {
	// Successes holds destination note ids, in import order, so callers can
	// fire per-note side effects after the batch.
	Successes  []int64
	Duplicates int
	Failures   []NoteFailure
}

func (r *Result) record(outcome Outcome, noteID int64, err error) {
	switch outcome {
	case OutcomeSuccess:
		r.Successes = append(r.Successes, noteID)
	case OutcomeDuplicate:
		r.Duplicates++
	case OutcomeError:
		r.Failures = append(r.Failures, NoteFailure{NoteID: noteID, Err: err})
	}
}

// SuccessCount returns the number of committed notes.
func (r *Result) SuccessCount() int {
	return len(r.Successes)
}

// DuplicateCount returns the number of skipped duplicates.
func (r *Result) DuplicateCount() int {
	return r.Duplicates
}

// ErrorCount returns the number of per-note failures.
func (r *Result) ErrorCount() int {
	return len(r.Failures)
}

// Total returns the number of notes processed.
func (r *Result) Total() int {
	return r.SuccessCount() + r.DuplicateCount() + r.ErrorCount()
}
