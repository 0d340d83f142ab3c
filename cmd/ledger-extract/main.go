package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dvloznov/ledger-extract/internal/logger"
)

func main() {
	log := logger.New()

	root := &cobra.Command{
		Use:           "ledger-extract",
		Short:         "Extract bank-statement ledgers from PDF documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newIngestCmd(), newMigrateCmd())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
