package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Ajith-oo7/Data-lysis/domain"
	"github.com/Ajith-oo7/Data-lysis/service"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

var defaultHandlers = NewHandlerSet(nil)

// HandleAnalyzeDataset handles the analyze_dataset tool
func HandleAnalyzeDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return defaultHandlers.HandleAnalyzeDataset(ctx, request)
}

// HandleCleanDataset handles the clean_dataset tool
func HandleCleanDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return defaultHandlers.HandleCleanDataset(ctx, request)
}

// HandleQueryDataset handles the query_dataset tool
func HandleQueryDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return defaultHandlers.HandleQueryDataset(ctx, request)
}

// HandleAnalyzeDataset handles the analyze_dataset tool
func (h *HandlerSet) HandleAnalyzeDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	// Tool arguments always win over config-file values in the merge.
	req := domain.AnalysisRequest{
		Path:          path,
		OutputFormat:  domain.OutputFormatJSON,
		OutputWriter:  os.Stderr,
		ExplicitFlags: map[string]bool{"no-ai": true},
	}

	if target, ok := args["target_column"].(string); ok && target != "" {
		req.TargetColumn = target
		req.ExplicitFlags["target"] = true
	}
	if cleanFirst, ok := args["clean_first"].(bool); ok {
		req.CleanFirst = cleanFirst
		req.ExplicitFlags["clean"] = true
	}
	withAI := h.deps.InsightService() != nil
	if ai, ok := args["with_ai"].(bool); ok {
		withAI = withAI && ai
	}
	req.WithDomainDetection = withAI
	req.WithAIInsights = withAI

	useCase, err := h.deps.BuildAnalyzeUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create analyzer: %v", err)), nil
	}

	response, err := useCase.ExecuteAndReturn(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	outputMode := "summary"
	if om, ok := args["output_mode"].(string); ok {
		outputMode = om
	}

	var responseData interface{}
	switch outputMode {
	case "full":
		responseData = service.Sanitize(response)
	default:
		responseData = map[string]interface{}{
			"eda_type":        response.EDAType,
			"characteristics": response.Characteristics,
			"summary":         response.Metadata.AnalysisSummary,
			"domain":          response.Domain,
			"insights":        response.Insights,
			"warnings":        response.Warnings,
		}
		responseData = service.Sanitize(responseData)
	}

	jsonData, err := json.Marshal(responseData)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleCleanDataset handles the clean_dataset tool
func (h *HandlerSet) HandleCleanDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	req := domain.CleaningRequest{
		Path:          path,
		OutputFormat:  domain.OutputFormatJSON,
		OutputWriter:  os.Stderr,
		ExplicitFlags: map[string]bool{},
	}

	useCase, err := h.deps.BuildCleanUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create cleaner: %v", err)), nil
	}

	response, err := useCase.ExecuteAndReturn(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cleaning failed: %v", err)), nil
	}

	// Optionally write the cleaned table to a file and omit it from the
	// JSON payload to keep the tool result small.
	if outputPath, ok := args["output_path"].(string); ok && outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(response.CleanedCSV), 0644); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to write cleaned data: %v", err)), nil
		}
		response.CleanedCSV = ""
	}

	jsonData, err := json.Marshal(service.Sanitize(response))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleQueryDataset handles the query_dataset tool
func (h *HandlerSet) HandleQueryDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	question, ok := args["question"].(string)
	if !ok || strings.TrimSpace(question) == "" {
		return mcp.NewToolResultError("question parameter is required and must be a non-empty string"), nil
	}

	insights := h.deps.InsightService()
	if insights == nil {
		return mcp.NewToolResultError("AI collaborator is not configured; set the API key environment variable"), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read dataset: %v", err)), nil
	}

	answer, err := insights.AnswerQuery(ctx, question, string(content))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(answer)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}
