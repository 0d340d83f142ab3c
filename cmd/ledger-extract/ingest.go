package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dvloznov/ledger-extract/internal/config"
	"github.com/dvloznov/ledger-extract/internal/document"
	"github.com/dvloznov/ledger-extract/internal/extract"
	"github.com/dvloznov/ledger-extract/internal/logger"
	"github.com/dvloznov/ledger-extract/internal/notionsync"
	"github.com/dvloznov/ledger-extract/internal/pipeline"
	"github.com/dvloznov/ledger-extract/internal/storage"
	"github.com/dvloznov/ledger-extract/internal/store"
)

func newIngestCmd() *cobra.Command {
	var (
		title       string
		description string
		ownerFlag   string
		accountFlag string
		notionDB    string
	)

	cmd := &cobra.Command{
		Use:   "ingest <path|gs://bucket/object>",
		Short: "Run the extraction pipeline over one statement PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]

			log := logger.New()
			ctx := logger.WithContext(cmd.Context(), log)

			ownerID, err := uuid.Parse(ownerFlag)
			if err != nil {
				return fmt.Errorf("ingest: invalid --owner: %w", err)
			}
			var accountID *uuid.UUID
			if accountFlag != "" {
				id, err := uuid.Parse(accountFlag)
				if err != nil {
					return fmt.Errorf("ingest: invalid --account: %w", err)
				}
				accountID = &id
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Database.DSN == "" {
				return fmt.Errorf("ingest: database DSN is not configured (set LEDGER_DATABASE_DSN)")
			}

			st, err := store.Open(cfg.Database.DSN, cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns)
			if err != nil {
				return err
			}
			defer st.Close()

			gen, err := extract.NewGeminiGenerator(ctx, cfg.Gemini.Model)
			if err != nil {
				return err
			}

			timeout := time.Duration(cfg.Extraction.TimeoutSeconds) * time.Second
			ext := pipeline.New(
				extract.NewMetadataExtractor(gen, timeout),
				extract.NewTransactionExtractor(gen, cfg.Extraction.Concurrency, timeout),
				st,
				document.ChunkOptions{
					ChunkTokens:   cfg.Extraction.ChunkTokens,
					OverlapTokens: cfg.Extraction.OverlapTokens,
				},
			)

			doc, err := openDocument(ctx, source)
			if err != nil {
				return err
			}

			if title == "" {
				title = filepath.Base(source)
				if storage.IsGCSURI(source) {
					title = storage.Filename(source)
				}
			}

			stmt, err := ext.Run(ctx, pipeline.Request{
				Document:    doc,
				Title:       title,
				Description: description,
				OwnerID:     ownerID,
				AccountID:   accountID,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Statement %s persisted with %d transactions.\n", stmt.ID, len(stmt.Transactions))

			if notionDB != "" {
				if cfg.Notion.Token == "" {
					return fmt.Errorf("ingest: --notion-db given but no Notion token configured")
				}
				client := notionsync.NewNotionClient(cfg.Notion.Token)
				if err := notionsync.ExportStatement(ctx, client, notionDB, stmt); err != nil {
					return err
				}
				fmt.Println("Statement exported to Notion.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "statement title (defaults to the source filename)")
	cmd.Flags().StringVar(&description, "description", "", "statement description")
	cmd.Flags().StringVar(&ownerFlag, "owner", "", "owning user ID (required)")
	cmd.Flags().StringVar(&accountFlag, "account", "", "target account ID")
	cmd.Flags().StringVar(&notionDB, "notion-db", "", "Notion database ID to export the statement to")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

// openDocument returns a reader over the statement bytes, pulling from
// GCS when the source is a gs:// URI. Temp-file lifecycle stays with the
// caller; nothing is written to disk here.
func openDocument(ctx context.Context, source string) (io.Reader, error) {
	if storage.IsGCSURI(source) {
		data, err := storage.Fetch(ctx, source)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("ingest: reading %s: %w", source, err)
	}
	return bytes.NewReader(data), nil
}
