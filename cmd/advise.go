package cmd

import (
	"github.com/calderasa/tablequal/internal/contract"
	"github.com/calderasa/tablequal/internal/runner"
	"github.com/spf13/cobra"
)

// adviseCmd scores a dataset and asks an LLM for remediation guidance.
var adviseCmd = &cobra.Command{
	Use:   "advise <input-path>",
	Short: "Score a dataset and get AI remediation advice for weak criteria.",
	Long: `Score a dataset, then send the criteria that scored at or below the
advise-score cutoff to an OpenAI-compatible chat model for analysis.

The advice comes back in three sections: the identified problem, concrete
recommendations, and a mitigation plan for the short term.

Requires an API key via --advise-api-key, TABLEQUAL_ADVISE_API_KEY or
OPENAI_API_KEY.

Examples:
  # Advise on every criterion scoring 3 or below
  tablequal advise clientes.csv

  # Use a different model against a self-hosted endpoint
  tablequal advise vendas.csv --advise-model llama3 --advise-base-url http://localhost:11434/v1

  # Only advise on critical criteria
  tablequal advise eventos.parquet --advise-score 2`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runner.ExecuteAdvise(rootCtx, cfg, historyStore); err != nil {
			contract.LogFatal("Cannot advise on dataset", err)
		}
	},
}
