package pipeline

import (
	"context"
	"io"

	"github.com/dvloznov/ledger-extract/internal/document"
	"github.com/dvloznov/ledger-extract/internal/domain"
	"github.com/dvloznov/ledger-extract/internal/extract"
	"github.com/dvloznov/ledger-extract/internal/store"
)

// DocumentLoader turns a document byte stream into plain text with
// page-break markers. Implemented by document.Loader; replaceable in
// tests.
type DocumentLoader interface {
	Load(r io.Reader) (string, error)
}

// MetadataSource runs the statement-header extraction call.
type MetadataSource interface {
	Extract(ctx context.Context, text string) (*domain.StatementMetadata, error)
}

// CandidateSource fans extraction calls out over chunks and joins the
// candidates, reporting failed chunks separately.
type CandidateSource interface {
	ExtractAll(ctx context.Context, chunks []document.Chunk) ([]domain.Candidate, []extract.ChunkError)
}

// StatementStore is the persistence surface the orchestrator needs:
// idempotent category resolution and the atomic aggregate write.
type StatementStore interface {
	ResolveCategory(ctx context.Context, label *string) (*domain.Category, error)
	CreateStatement(ctx context.Context, in store.NewStatement) (*domain.Statement, error)
}
