package notionsync

import (
	"context"
	"fmt"

	"github.com/dvloznov/ledger-extract/internal/domain"
	"github.com/dvloznov/ledger-extract/internal/logger"
)

// ExportStatement creates one Notion page per transaction of a persisted
// statement. Export happens after the aggregate is committed, so a
// partial export never implies a partial statement; failed pages are
// counted and reported as one error at the end.
func ExportStatement(ctx context.Context, client NotionService, databaseID string, stmt *domain.Statement) error {
	log := logger.FromContext(ctx)

	log.Info().
		Str("statement_id", stmt.ID.String()).
		Int("transactions", len(stmt.Transactions)).
		Msg("Exporting statement to Notion")

	failed := 0
	for i := range stmt.Transactions {
		tx := &stmt.Transactions[i]
		props := TransactionToNotionProperties(tx, stmt.Title)
		if _, err := client.CreatePage(ctx, databaseID, props); err != nil {
			failed++
			log.Warn().Err(err).Str("transaction_id", tx.ID.String()).Msg("Failed to export transaction page")
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("ExportStatement: %w", err)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("ExportStatement: %d of %d transactions failed to export", failed, len(stmt.Transactions))
	}

	log.Info().Str("statement_id", stmt.ID.String()).Msg("Notion export complete")
	return nil
}
