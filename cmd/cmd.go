// Package cmd defines the command-line interface for tablequal.
package cmd

import (
	"github.com/calderasa/tablequal/internal/contract"
	"github.com/calderasa/tablequal/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(adviseCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("separator", "s", "", "CSV separator override: ',' ';' tab '|' (sniffed when empty)")
	rootCmd.PersistentFlags().Int("sample-size", contract.DefaultSampleSize, "Maximum values sampled per column for integrity checks")
	rootCmd.PersistentFlags().Int64("sample-seed", contract.DefaultSampleSeed, "Seed for the column value sampler")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Float64("threshold", contract.DefaultThreshold, "Minimum acceptable overall score for the check command")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultHistoryLimit, "Number of history entries to display")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of adviseCmd to Viper
	adviseCmd.Flags().String("advise-model", contract.DefaultAdviseModel, "Chat completion model used for advice")
	adviseCmd.Flags().String("advise-base-url", "", "Override the OpenAI-compatible API base URL")
	adviseCmd.Flags().String("advise-api-key", "", "API key for the advisor (prefer TABLEQUAL_ADVISE_API_KEY or OPENAI_API_KEY)")
	adviseCmd.Flags().Int("advise-score", contract.DefaultAdviseScore, "Criteria scoring at or below this get advice")
	adviseCmd.Flags().String("advise-timeout", "", "Timeout for the advice request (e.g., '60s')")
	if err := viper.BindPFlags(adviseCmd.Flags()); err != nil {
		contract.LogFatal("Error binding advise flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
