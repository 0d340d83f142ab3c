// Package pipeline orchestrates one statement extraction run: load the
// document, extract metadata and candidate transactions concurrently,
// deduplicate, classify, and persist the whole as one atomic aggregate.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/dvloznov/ledger-extract/internal/dedup"
	"github.com/dvloznov/ledger-extract/internal/document"
	"github.com/dvloznov/ledger-extract/internal/domain"
	"github.com/dvloznov/ledger-extract/internal/extract"
	"github.com/dvloznov/ledger-extract/internal/logger"
	"github.com/dvloznov/ledger-extract/internal/store"
)

// Phase is one stage of a run. Transitions only move forward; a run ends
// in Completed or Failed.
type Phase string

const (
	PhaseReceived      Phase = "received"
	PhaseLoading       Phase = "loading"
	PhaseExtracting    Phase = "extracting"
	PhaseDeduplicating Phase = "deduplicating"
	PhaseCategorizing  Phase = "categorizing"
	PhasePersisting    Phase = "persisting"
	PhaseCompleted     Phase = "completed"
	PhaseFailed        Phase = "failed"
)

// Request carries one document and its caller-supplied identity. MIME
// validation and temp-file lifecycle belong to the caller.
type Request struct {
	Document    io.Reader
	Title       string
	Description string
	OwnerID     uuid.UUID
	AccountID   *uuid.UUID
}

// Extractor runs the extraction pipeline. Construct with New; safe for
// concurrent runs, the category table being the only shared resource.
type Extractor struct {
	loader     DocumentLoader
	metadata   MetadataSource
	candidates CandidateSource
	store      StatementStore
	chunkOpts  document.ChunkOptions
}

func New(metadata MetadataSource, candidates CandidateSource, st StatementStore, chunkOpts document.ChunkOptions) *Extractor {
	return &Extractor{
		loader:     document.Loader{},
		metadata:   metadata,
		candidates: candidates,
		store:      st,
		chunkOpts:  chunkOpts,
	}
}

// WithLoader replaces the document loader. Used by tests and by callers
// that already hold plain text.
func (e *Extractor) WithLoader(l DocumentLoader) *Extractor {
	e.loader = l
	return e
}

// Run executes one extraction run and returns the persisted, hydrated
// aggregate. On failure nothing is persisted and exactly one terminal
// error kind comes back. Cancelling ctx aborts in-flight extraction
// calls.
func (e *Extractor) Run(ctx context.Context, req Request) (*domain.Statement, error) {
	log := logger.FromContext(ctx).With().Str("owner_id", req.OwnerID.String()).Logger()
	runID := uuid.NewString()
	log = log.With().Str("run_id", runID).Logger()

	log.Info().Str("phase", string(PhaseReceived)).Str("title", req.Title).Msg("Run received")

	// Loading
	log.Info().Str("phase", string(PhaseLoading)).Msg("Loading document text")
	text, err := e.loader.Load(req.Document)
	if err != nil {
		log.Error().Err(err).Str("phase", string(PhaseFailed)).Msg("Document unreadable")
		return nil, fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
	}

	chunks := document.Split(text, e.chunkOpts)
	log.Info().Int("chunks", len(chunks)).Int("text_tokens", document.EstimateTokens(text)).Msg("Document chunked")

	// Extracting: the metadata call and the chunk fan-out are independent
	// reads of the same immutable text and run concurrently.
	log.Info().Str("phase", string(PhaseExtracting)).Msg("Extracting")

	var (
		wg         sync.WaitGroup
		meta       *domain.StatementMetadata
		candidates []domain.Candidate
		chunkErrs  []extract.ChunkError
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if text == "" {
			meta = &domain.StatementMetadata{}
			return
		}
		m, err := e.metadata.Extract(ctx, text)
		if err != nil {
			// Metadata is secondary to the ledger: degrade to an
			// all-null record and continue.
			log.Warn().Err(err).Msg("Metadata extraction degraded; continuing with empty metadata")
			meta = &domain.StatementMetadata{}
			return
		}
		meta = m
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		candidates, chunkErrs = e.candidates.ExtractAll(ctx, chunks)
	}()

	wg.Wait()

	if err := ctx.Err(); err != nil {
		log.Warn().Err(err).Str("phase", string(PhaseFailed)).Msg("Run cancelled")
		return nil, err
	}
	for _, ce := range chunkErrs {
		log.Warn().Int("chunk", ce.Index).Err(ce.Err).Msg("Chunk contributed zero candidates")
	}

	// Deduplicating
	log.Info().Str("phase", string(PhaseDeduplicating)).Int("candidates", len(candidates)).Msg("Deduplicating")
	unique := dedup.Merge(candidates)
	if len(unique) == 0 {
		log.Error().Str("phase", string(PhaseFailed)).Int("failed_chunks", len(chunkErrs)).Msg("No transactions extracted")
		return nil, ErrNoTransactionsExtracted
	}

	// Categorizing
	log.Info().Str("phase", string(PhaseCategorizing)).Int("transactions", len(unique)).Msg("Resolving categories")
	rows := make([]domain.Transaction, 0, len(unique))
	for _, c := range unique {
		cat, err := e.store.ResolveCategory(ctx, c.CategoryLabel)
		if err != nil {
			log.Error().Err(err).Str("phase", string(PhaseFailed)).Msg("Category resolution failed")
			return nil, fmt.Errorf("%w: resolving category: %v", ErrPersistenceFailed, err)
		}
		catID := cat.ID
		rows = append(rows, domain.Transaction{
			AccountID:       req.AccountID,
			Date:            c.Date,
			Description:     c.Description,
			Amount:          c.Amount,
			Balance:         c.Balance,
			TransactionType: c.TransactionType,
			CategoryID:      &catID,
			ReferenceNumber: c.ReferenceNumber,
			IsRecurring:     c.IsRecurring,
			Evidence:        c.Evidence,
		})
	}

	// Persisting
	log.Info().Str("phase", string(PhasePersisting)).Msg("Persisting aggregate")
	stmt, err := e.store.CreateStatement(ctx, store.NewStatement{
		OwnerID:      req.OwnerID,
		AccountID:    req.AccountID,
		Title:        req.Title,
		Description:  req.Description,
		Metadata:     *meta,
		Transactions: rows,
	})
	if err != nil {
		log.Error().Err(err).Str("phase", string(PhaseFailed)).Msg("Persistence failed")
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	log.Info().
		Str("phase", string(PhaseCompleted)).
		Str("statement_id", stmt.ID.String()).
		Int("transactions", len(stmt.Transactions)).
		Msg("Run completed")
	return stmt, nil
}
