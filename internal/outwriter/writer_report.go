package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/calderasa/tablequal/internal/contract"
	"github.com/calderasa/tablequal/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeReportResults outputs the quality report, dispatching based on the output format configured.
func writeReportResults(report *schema.QualityReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
		if err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, report)
		}, "Wrote CSV")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTable(report, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeReportTable generates and writes the human-readable table.
func writeReportTable(report *schema.QualityReport, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Criterion", "Score", "Label", "Diagnostic"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	label := contract.GetPlainLabel
	if cfg.UseColors {
		label = contract.GetColorLabel
	}

	maxDiag := getMaxDiagnosticWidth(cfg)
	var data [][]string
	for _, c := range schema.AllCriteria {
		res, ok := report.Result(c)
		if !ok {
			continue
		}
		data = append(data, []string{
			string(c),
			strconv.Itoa(res.Score),
			label(res.Score),
			truncateText(strings.Join(res.Diagnostic, ", "), maxDiag),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Overall score: %.1f across %d rows and %d columns\n", report.Overall, report.Rows, report.ColumnCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Evaluation completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeReportCSV writes the quality report in CSV format: one row per
// criterion plus a final overall row.
func writeReportCSV(w io.Writer, report *schema.QualityReport) error {
	header := []string{"criterion", "score", "label", "diagnostic"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, c := range schema.AllCriteria {
			res, ok := report.Result(c)
			if !ok {
				continue
			}
			row := []string{
				string(c),
				strconv.Itoa(res.Score),
				contract.GetPlainLabel(res.Score),
				strings.Join(res.Diagnostic, "; "),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		overall := []string{"Overall", strconv.FormatFloat(report.Overall, 'f', 1, 64), "", ""}
		return csvWriter.Write(overall)
	})
}

// writeRunResults outputs persisted run history, dispatching on the output format.
func writeRunResults(runs []schema.RunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsCSV(w, runs)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsTable(runs, w)
		}, "Wrote table")
	}
}

// writeRunsTable generates and writes the human-readable run history table.
func writeRunsTable(runs []schema.RunRecord, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"ID", "Source", "Started", "Overall", "Rows", "Cols", "Duration"})

	var data [][]string
	for _, run := range runs {
		data = append(data, []string{
			strconv.FormatInt(run.RunID, 10),
			run.Source,
			run.StartTime.Format(contract.DateTimeFormat),
			strconv.FormatFloat(run.Overall, 'f', 1, 64),
			strconv.Itoa(run.Rows),
			strconv.Itoa(run.Columns),
			formatDurationMs(run.DurationMs),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Showing %d runs\n", len(runs))
	return err
}

// writeRunsCSV writes run history in CSV format.
func writeRunsCSV(w io.Writer, runs []schema.RunRecord) error {
	header := []string{"run_id", "source", "start_time", "overall", "rows", "columns", "duration_ms"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, run := range runs {
			row := []string{
				strconv.FormatInt(run.RunID, 10),
				run.Source,
				run.StartTime.Format(contract.DateTimeFormat),
				strconv.FormatFloat(run.Overall, 'f', 1, 64),
				strconv.Itoa(run.Rows),
				strconv.Itoa(run.Columns),
				formatDurationMs(run.DurationMs),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// formatDurationMs renders an optional millisecond duration for display.
func formatDurationMs(ms *int64) string {
	if ms == nil {
		return ""
	}
	return (time.Duration(*ms) * time.Millisecond).String()
}
