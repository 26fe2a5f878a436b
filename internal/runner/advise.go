package runner

import (
	"context"
	"fmt"

	"github.com/calderasa/tablequal/internal/advisor"
	"github.com/calderasa/tablequal/internal/contract"
	"github.com/calderasa/tablequal/internal/outwriter"
	"github.com/fatih/color"
)

var sectionColor = color.New(color.FgCyan, color.Bold)

// ExecuteAdvise runs a scoring pass and asks the advisor for remediation
// guidance on the criteria that scored at or below cfg.AdviseScore.
func ExecuteAdvise(ctx context.Context, cfg *contract.Config, store contract.HistoryStore) error {
	report, duration, err := scoreAndRecord(ctx, cfg, store)
	if err != nil {
		return err
	}
	if err := outwriter.NewOutWriter().WriteReport(report, cfg, duration); err != nil {
		return err
	}

	if len(report.WeakCriteria(cfg.AdviseScore)) == 0 {
		fmt.Printf("\nNo criterion scored %d or below; nothing to advise on.\n", cfg.AdviseScore)
		return nil
	}

	// The report is already out, so advisor failures degrade to a warning
	// instead of failing the run.
	adv, err := advisor.New(cfg)
	if err != nil {
		contract.LogWarn("Advisor unavailable", err)
		return nil
	}

	adviseCtx, cancel := context.WithTimeout(ctx, cfg.AdviseTimeout)
	defer cancel()

	advice, err := adv.Advise(adviseCtx, report)
	if err != nil {
		contract.LogWarn("Advice request failed", err)
		return nil
	}

	printAdviceSection("PROBLEMA IDENTIFICADO", advice.Problem, cfg.UseColors)
	printAdviceSection("RECOMENDAÇÕES", advice.Recommendations, cfg.UseColors)
	printAdviceSection("MITIGAÇÃO", advice.Mitigation, cfg.UseColors)
	return nil
}

func printAdviceSection(title, body string, useColors bool) {
	if useColors {
		fmt.Printf("\n%s\n%s\n", sectionColor.Sprintf("=== %s ===", title), body)
		return
	}
	fmt.Printf("\n=== %s ===\n%s\n", title, body)
}
