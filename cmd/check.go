package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/calderasa/tablequal/internal/contract"
	"github.com/calderasa/tablequal/internal/runner"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check <input-path>",
	Short: "Enforce a minimum overall score for CI/CD pipelines (fails build on violations)",
	Long: `Score a dataset and compare the overall result against a minimum threshold.

Designed specifically for CI/CD integration - fails with a non-zero exit code
when the overall score falls below the threshold, making it easy to gate
pipelines on data quality.

Default threshold: 3.0

Use cases:
- Ingestion gates - block pipelines fed by degraded sources
- Release validation - ensure reference datasets before deployment
- Quality enforcement - maintain data health standards

Examples:
  # Gate on the default threshold
  tablequal check clientes.csv

  # Require a stricter overall score
  tablequal check vendas.csv --threshold 4.5`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := runner.ExecuteCheck(rootCtx, cfg, historyStore)
		if errors.Is(err, runner.ErrThresholdNotMet) {
			fmt.Printf("Check failed: %v\n", err)
			closeHistoryStore()
			os.Exit(1)
		}
		if err != nil {
			contract.LogFatal("Cannot check dataset", err)
		}
	},
}
