package extract

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dvloznov/ledger-extract/internal/document"
	"github.com/dvloznov/ledger-extract/internal/domain"
)

// DefaultConcurrency bounds how many chunk calls run at once. The bound
// exists to respect inference-provider rate limits, not CPU.
const DefaultConcurrency = 4

// ChunkError records one failed or timed-out chunk call. A chunk failure
// is absorbed by the caller: the chunk contributes zero candidates and
// the run continues.
type ChunkError struct {
	Index int
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d extraction failed: %v", e.Index, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}

// TransactionExtractor fans structured extraction calls out over document
// chunks under a fixed concurrency bound and joins the results.
type TransactionExtractor struct {
	gen         Generator
	concurrency int
	timeout     time.Duration
}

func NewTransactionExtractor(gen Generator, concurrency int, timeout time.Duration) *TransactionExtractor {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &TransactionExtractor{gen: gen, concurrency: concurrency, timeout: timeout}
}

// ExtractAll runs one structured call per chunk and returns every
// candidate in chunk order, plus one ChunkError per failed chunk. Tasks
// report failure through the returned slice rather than an error so the
// join applies the absorb-per-chunk policy explicitly; only context
// cancellation aborts the whole fan-out.
func (e *TransactionExtractor) ExtractAll(ctx context.Context, chunks []document.Chunk) ([]domain.Candidate, []ChunkError) {
	results := make([][]domain.Candidate, len(chunks))
	failures := make([]*ChunkError, len(chunks))

	var g errgroup.Group
	g.SetLimit(e.concurrency)

	for _, chunk := range chunks {
		chunk := chunk
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				failures[chunk.Index] = &ChunkError{Index: chunk.Index, Err: err}
				return nil
			}
			candidates, err := e.extractChunk(ctx, chunk)
			if err != nil {
				failures[chunk.Index] = &ChunkError{Index: chunk.Index, Err: err}
				return nil
			}
			results[chunk.Index] = candidates
			return nil
		})
	}
	_ = g.Wait()

	var all []domain.Candidate
	for _, candidates := range results {
		all = append(all, candidates...)
	}
	var errs []ChunkError
	for _, f := range failures {
		if f != nil {
			errs = append(errs, *f)
		}
	}
	return all, errs
}

// extractChunk runs one bounded structured call and validates its
// payload. Non-conforming model output fails the chunk as a whole.
func (e *TransactionExtractor) extractChunk(ctx context.Context, chunk document.Chunk) ([]domain.Candidate, error) {
	cctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	out, err := e.gen.GenerateJSON(cctx, transactionsPrompt(), chunk.Text, transactionsSchema())
	if err != nil {
		return nil, err
	}

	txAny, ok := out["transactions"]
	if !ok || txAny == nil {
		return nil, fmt.Errorf("missing 'transactions' key in model output")
	}
	txSlice, ok := txAny.([]interface{})
	if !ok {
		return nil, fmt.Errorf("'transactions' is %T, want []interface{}", txAny)
	}

	candidates := make([]domain.Candidate, 0, len(txSlice))
	for i, item := range txSlice {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("transaction %d is %T, want map[string]interface{}", i, item)
		}
		c, err := candidateFromPayload(obj, chunk.Index)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}
