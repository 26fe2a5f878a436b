// Package runner orchestrates full quality runs: it loads a dataset, scores
// it, records the run in the history store and writes the report.
package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/calderasa/tablequal/core"
	"github.com/calderasa/tablequal/internal/contract"
	"github.com/calderasa/tablequal/internal/loader"
	"github.com/calderasa/tablequal/internal/outwriter"
	"github.com/calderasa/tablequal/schema"
)

// ErrThresholdNotMet is returned by ExecuteCheck when the overall score
// falls below the configured threshold. Callers map it to a non-zero exit.
var ErrThresholdNotMet = errors.New("overall score below threshold")

// EvaluateFile loads the dataset at cfg.InputPath and scores it.
func EvaluateFile(ctx context.Context, cfg *contract.Config) (*schema.QualityReport, error) {
	ds, err := loader.Load(cfg.InputPath, loader.Options{Separator: cfg.Separator})
	if err != nil {
		return nil, err
	}
	return core.Evaluate(ctx, ds, core.Options{
		SampleSeed: cfg.SampleSeed,
		SampleSize: cfg.SampleSize,
	})
}

// ExecuteScore runs a full scoring pass and prints the report.
func ExecuteScore(ctx context.Context, cfg *contract.Config, store contract.HistoryStore) error {
	report, duration, err := scoreAndRecord(ctx, cfg, store)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteReport(report, cfg, duration)
}

// ExecuteCheck runs a scoring pass and gates on the overall score.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, store contract.HistoryStore) error {
	report, duration, err := scoreAndRecord(ctx, cfg, store)
	if err != nil {
		return err
	}
	if err := outwriter.NewOutWriter().WriteReport(report, cfg, duration); err != nil {
		return err
	}

	if report.Overall < cfg.Threshold {
		return fmt.Errorf("%w: %.1f < %.1f", ErrThresholdNotMet, report.Overall, cfg.Threshold)
	}
	fmt.Printf("Check passed: %.1f >= %.1f\n", report.Overall, cfg.Threshold)
	return nil
}

// ExecuteHistoryList prints the most recent persisted runs.
func ExecuteHistoryList(cfg *contract.Config, store contract.HistoryStore) error {
	runs, err := store.ListRuns(cfg.HistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	return outwriter.NewOutWriter().WriteRuns(runs, cfg)
}

// scoreAndRecord evaluates the dataset and persists the run. History store
// failures are logged as warnings rather than failing the scoring run.
func scoreAndRecord(ctx context.Context, cfg *contract.Config, store contract.HistoryStore) (*schema.QualityReport, time.Duration, error) {
	start := time.Now()

	var runID int64
	if store != nil {
		id, err := store.BeginRun(cfg.InputPath, start, configJSON(cfg))
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		} else {
			runID = id
		}
	}

	report, err := EvaluateFile(ctx, cfg)
	if err != nil {
		return nil, 0, err
	}
	duration := time.Since(start)

	if store != nil && runID > 0 {
		for _, c := range schema.AllCriteria {
			if res, ok := report.Result(c); ok {
				if err := store.RecordCriterionScore(runID, res); err != nil {
					contract.LogWarn("Failed to record criterion score", err)
				}
			}
		}
		reportData, _ := json.Marshal(report)
		if err := store.EndRun(runID, start.Add(duration), report, string(reportData)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	return report, duration, nil
}

// configJSON captures the run parameters that shaped the report.
func configJSON(cfg *contract.Config) string {
	params := map[string]any{
		"input":       cfg.InputPath,
		"separator":   cfg.Separator,
		"sample_size": cfg.SampleSize,
		"sample_seed": cfg.SampleSeed,
		"threshold":   cfg.Threshold,
	}
	data, _ := json.Marshal(params)
	return string(data)
}
