package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candidate is a transaction proposed by one chunk's extraction call,
// before deduplication and persistence. Amount is signed: money in is
// positive, money out is negative.
type Candidate struct {
	Date            time.Time
	Description     string
	Amount          decimal.Decimal
	Balance         *decimal.Decimal
	TransactionType *string
	CategoryLabel   *string
	ReferenceNumber *string
	IsRecurring     bool
	Evidence        string

	// Chunk is the index of the window the candidate came from,
	// kept for logging only.
	Chunk int
}
