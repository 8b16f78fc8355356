package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all datalysis MCP tools with the server
func RegisterTools(s *server.MCPServer) {
	// Tool 1: analyze_dataset - Full EDA analysis
	s.AddTool(mcp.NewTool("analyze_dataset",
		mcp.WithDescription("Profile a tabular dataset and run the appropriate exploratory analysis (basic, complex, timeseries, geospatial, or textual)"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the CSV/TSV file to analyze")),
		mcp.WithString("target_column",
			mcp.Description("Target column for imbalance and feature importance analysis")),
		mcp.WithBoolean("clean_first",
			mcp.Description("Run the cleaning pipeline before analysis (default: false)")),
		mcp.WithBoolean("with_ai",
			mcp.Description("Include AI domain detection and insights when configured (default: true)")),
		mcp.WithString("output_mode",
			mcp.Description("Result verbosity: summary or full (default: summary)")),
	), HandleAnalyzeDataset)

	// Tool 2: clean_dataset - Data cleaning pipeline
	s.AddTool(mcp.NewTool("clean_dataset",
		mcp.WithDescription("Run the staged data cleaning pipeline with a full audit log: missing data, types, duplicates, outliers, text, formats, and more"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the CSV/TSV file to clean")),
		mcp.WithString("output_path",
			mcp.Description("Write the cleaned table to this file instead of inlining it in the result")),
	), HandleCleanDataset)

	// Tool 3: query_dataset - Natural-language dataset questions
	s.AddTool(mcp.NewTool("query_dataset",
		mcp.WithDescription("Ask a natural-language question about a dataset; returns an answer, a suggested SQL query, and a visualization recommendation"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the CSV/TSV file to query")),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("The question to ask about the dataset")),
	), HandleQueryDataset)
}
