package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dvloznov/ledger-extract/internal/config"
	"github.com/dvloznov/ledger-extract/internal/logger"
	"github.com/dvloznov/ledger-extract/internal/store"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the pipeline tables and seed the category taxonomy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()
			ctx := logger.WithContext(cmd.Context(), log)

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Database.DSN == "" {
				return fmt.Errorf("migrate: database DSN is not configured (set LEDGER_DATABASE_DSN)")
			}

			st, err := store.Open(cfg.Database.DSN, cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns)
			if err != nil {
				return err
			}
			defer st.Close()

			log.Info().Msg("Running schema migration")
			if err := st.AutoMigrate(ctx); err != nil {
				return err
			}

			log.Info().Msg("Seeding category taxonomy")
			if err := st.SeedCategories(ctx); err != nil {
				return err
			}

			fmt.Println("Migration complete.")
			return nil
		},
	}
}
