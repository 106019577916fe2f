package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/healthvibe/internal/app"
	"github.com/MrSnakeDoc/healthvibe/internal/config"
	"github.com/MrSnakeDoc/healthvibe/internal/export"
	"github.com/MrSnakeDoc/healthvibe/internal/logger"
	"github.com/MrSnakeDoc/healthvibe/internal/store/postgres"
	"github.com/MrSnakeDoc/healthvibe/internal/utils"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the remedy catalog as CSV or XLSX",
	Long: `Loads the catalog from the configured source (HEALTHVIBE_CATALOG_SOURCE)
and writes every remedy to --out, or stdout when --out is "-".`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format: csv or xlsx")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "output file, - for stdout")
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	db, err := app.OpenDatabase(cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer utils.MustClose(postgres.NewKV(db), "postgres", log)
	}

	cat, err := app.LoadCatalog(cmd.Context(), cfg, db, log)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "-" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOut, err)
		}
		defer utils.MustClose(f, exportOut, log)
		w = f
	}

	if err := export.Write(w, format, cat.Remedies()); err != nil {
		return err
	}
	log.Info("catalog exported",
		logger.String("format", string(format)),
		logger.String("out", exportOut),
		logger.Int("remedies", cat.Len()))
	return nil
}
