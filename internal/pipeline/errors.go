package pipeline

import "errors"

// Terminal error kinds. Callers see either a complete extracted statement
// or exactly one of these; per-chunk and metadata failures are absorbed
// inside the run and only logged.
var (
	// ErrDocumentUnreadable marks input that could not be parsed as a
	// text-searchable document. Fatal, raised before any extraction.
	ErrDocumentUnreadable = errors.New("pipeline: document unreadable")

	// ErrNoTransactionsExtracted means every chunk failed or yielded
	// nothing. A genuinely empty statement is rare enough that this is
	// treated as an extraction problem, not a success with zero rows.
	ErrNoTransactionsExtracted = errors.New("pipeline: no transactions extracted")

	// ErrPersistenceFailed marks a failed final write. Nothing is
	// visible: the write is all-or-nothing.
	ErrPersistenceFailed = errors.New("pipeline: persistence failed")
)
