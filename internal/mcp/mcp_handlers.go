package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/calderasa/tablequal/internal/contract"
	"github.com/calderasa/tablequal/internal/runner"
	"github.com/calderasa/tablequal/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// checkResult is the JSON payload returned by the check_dataset tool.
type checkResult struct {
	Pass      bool                     `json:"pass"`
	Overall   float64                  `json:"overall"`
	Threshold float64                  `json:"threshold"`
	Weak      []schema.CriterionResult `json:"weak_criteria,omitempty"`
}

func (h *toolHandler) handleScoreDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputPath = request.GetString("path", "")
	if s := request.GetString("separator", ""); s != "" {
		cfg.Separator = s
	}
	if n := request.GetInt("sample_size", 0); n > 0 {
		cfg.SampleSize = n
	}

	if err := contract.RevalidateEvaluate(cfg); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid scoring parameters: %v", err)), nil
	}

	report, err := runner.EvaluateFile(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCheckDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputPath = request.GetString("path", "")
	if s := request.GetString("separator", ""); s != "" {
		cfg.Separator = s
	}
	if t := request.GetFloat("threshold", 0); t != 0 {
		cfg.Threshold = t
	}

	if err := contract.RevalidateCheck(cfg); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid check parameters: %v", err)), nil
	}

	report, err := runner.EvaluateFile(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}

	result := checkResult{
		Pass:      report.Overall >= cfg.Threshold,
		Overall:   report.Overall,
		Threshold: cfg.Threshold,
	}
	if !result.Pass {
		result.Weak = report.WeakCriteria(int(cfg.Threshold))
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
