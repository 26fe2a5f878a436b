package cmd

import (
	"github.com/calderasa/tablequal/internal/contract"
	"github.com/calderasa/tablequal/internal/runner"
	"github.com/spf13/cobra"
)

// scoreCmd performs a full quality evaluation of a dataset.
var scoreCmd = &cobra.Command{
	Use:   "score <input-path>",
	Short: "Score a dataset on the five quality criteria.",
	Long: `Load a tabular dataset and score it on completeness, uniqueness,
consistency, accuracy and integrity.

Each criterion receives an integer score from 1 (critical) to 5 (excellent)
along with diagnostics naming the offending columns. The overall score is
the mean of the five, rounded to one decimal.

Supported formats: csv, json (array of flat objects), parquet.

Examples:
  # Score a CSV file
  tablequal score clientes.csv

  # Force a semicolon separator and export the report as JSON
  tablequal score vendas.csv --separator ';' --output json --output-file report.json

  # Score a parquet file without run tracking
  tablequal score eventos.parquet --history-backend none`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runner.ExecuteScore(rootCtx, cfg, historyStore); err != nil {
			contract.LogFatal("Cannot score dataset", err)
		}
	},
}
