// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/calderasa/tablequal/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Tablequal MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Tablequal Scoring Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: score_dataset ---
	s.AddTool(mcp.NewTool("score_dataset",
		mcp.WithDescription("Evaluate a tabular dataset (csv, json or parquet) against the five quality criteria and return the full report."),
		mcp.WithString("path", mcp.Description("Path to the dataset file."), mcp.Required()),
		mcp.WithString("separator", mcp.Description("CSV separator override; one of ',', ';', tab or '|'. Sniffed from the header when omitted.")),
		mcp.WithNumber("sample_size", mcp.Description("Maximum values sampled per column for integrity checks. Defaults to 100.")),
	), h.handleScoreDataset)

	// --- 2. Tool: check_dataset ---
	s.AddTool(mcp.NewTool("check_dataset",
		mcp.WithDescription("Evaluate a tabular dataset and compare its overall score against a minimum threshold."),
		mcp.WithString("path", mcp.Description("Path to the dataset file."), mcp.Required()),
		mcp.WithNumber("threshold", mcp.Description("Minimum acceptable overall score, between 1 and 5. Defaults to 3.")),
		mcp.WithString("separator", mcp.Description("CSV separator override.")),
	), h.handleCheckDataset)

	return s
}

// StartMCPServer starts the Tablequal MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
