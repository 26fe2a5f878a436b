package runner

import (
	"errors"
	"fmt"

	"github.com/calderasa/tablequal/internal/contract"
	"github.com/calderasa/tablequal/internal/parquet"
	"github.com/calderasa/tablequal/schema"
)

// ExecuteHistoryExport writes all persisted runs and their criterion scores
// to a pair of Parquet files derived from cfg.OutputFile.
func ExecuteHistoryExport(cfg *contract.Config, store contract.HistoryStore) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	runs, err := store.ListRuns(contract.MaxHistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	if len(runs) == 0 {
		return errors.New("no run history found to export")
	}

	var scores []schema.CriterionScoreRecord
	for _, run := range runs {
		runScores, err := store.ListCriterionScores(run.RunID)
		if err != nil {
			return fmt.Errorf("failed to retrieve criterion scores for run %d: %w", run.RunID, err)
		}
		scores = append(scores, runScores...)
	}

	runsFile := cfg.OutputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(runs), runsFile)

	scoresFile := cfg.OutputFile + ".criterion_scores.parquet"
	if err := parquet.WriteCriterionScoresParquet(parquet.ConvertCriterionScoreRecords(scores), scoresFile); err != nil {
		return fmt.Errorf("failed to write criterion scores: %w", err)
	}
	fmt.Printf("Exported %d criterion scores to: %s\n", len(scores), scoresFile)

	return nil
}
