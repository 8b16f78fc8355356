package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ajith-oo7/Data-lysis/domain"
	"github.com/Ajith-oo7/Data-lysis/internal/llm"
	"github.com/Ajith-oo7/Data-lysis/mcp"
)

type args struct {
	arguments interface{}
	setupFS   func(t *testing.T) string
}

func setupDataFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	csv := "product,price,quantity\nwidget,9.99,5\ngadget,19.99,3\ndoohickey,4.99,10\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))
	return path
}

func runToolTest(
	t *testing.T,
	setupFS func(t *testing.T) string,
	arguments interface{},
	handlerFunc func(*mcp.HandlerSet, context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error),
) *mcplib.CallToolResult {
	t.Helper()

	deps := mcp.NewTestDependencies(nil, llm.NewMockClient(), nil, "")
	h := mcp.NewHandlerSet(deps)

	var filePath string
	if setupFS != nil {
		filePath = setupFS(t)
	}
	if filePath != "" {
		if m, ok := arguments.(map[string]interface{}); ok {
			m["path"] = filePath
		}
	}

	req := mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{
			Arguments: arguments,
		},
	}

	res, err := handlerFunc(h, context.Background(), req)
	require.NoError(t, err)
	return res
}

func TestHandleAnalyzeDataset(t *testing.T) {
	type want struct {
		isError      *bool
		expectPrefix string
		check        func(t *testing.T, res *mcplib.CallToolResult)
	}
	errTrue := true
	errFalse := false

	tests := map[string]struct {
		args args
		want want
	}{
		"invalid_arguments_format": {
			args: args{arguments: "not-a-map"},
			want: want{isError: &errTrue, expectPrefix: "invalid arguments format"},
		},
		"path_missing": {
			args: args{arguments: map[string]interface{}{}},
			want: want{isError: &errTrue},
		},
		"path_not_exist": {
			args: args{arguments: map[string]interface{}{"path": "/non/existing/data.csv"}},
			want: want{isError: &errTrue, expectPrefix: "path does not exist"},
		},
		"success_summary": {
			args: args{
				setupFS:   setupDataFile,
				arguments: map[string]interface{}{},
			},
			want: want{
				isError: &errFalse,
				check: func(t *testing.T, res *mcplib.CallToolResult) {
					require.Greater(t, len(res.Content), 0)
					text := mcplib.GetTextFromContent(res.Content[0])
					require.NotEmpty(t, text)
					var result map[string]interface{}
					require.NoError(t, json.Unmarshal([]byte(text), &result))
					assert.Contains(t, result, "eda_type")
					assert.Contains(t, result, "characteristics")
					assert.NotContains(t, result, "results")
				},
			},
		},
		"success_full_output": {
			args: args{
				setupFS:   setupDataFile,
				arguments: map[string]interface{}{"output_mode": "full"},
			},
			want: want{
				isError: &errFalse,
				check: func(t *testing.T, res *mcplib.CallToolResult) {
					text := mcplib.GetTextFromContent(res.Content[0])
					var result map[string]interface{}
					require.NoError(t, json.Unmarshal([]byte(text), &result))
					assert.Contains(t, result, "results")
					assert.Contains(t, result, "profile")
				},
			},
		},
		"with_ai_disabled": {
			args: args{
				setupFS:   setupDataFile,
				arguments: map[string]interface{}{"with_ai": false},
			},
			want: want{
				isError: &errFalse,
				check: func(t *testing.T, res *mcplib.CallToolResult) {
					text := mcplib.GetTextFromContent(res.Content[0])
					var result map[string]interface{}
					require.NoError(t, json.Unmarshal([]byte(text), &result))
					assert.Nil(t, result["domain"])
				},
			},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res := runToolTest(t, tc.args.setupFS, tc.args.arguments, (*mcp.HandlerSet).HandleAnalyzeDataset)

			if tc.want.isError != nil && *tc.want.isError != res.IsError {
				t.Fatalf("IsError = %v, want %v", res.IsError, *tc.want.isError)
			}
			if tc.want.expectPrefix != "" && len(res.Content) > 0 {
				text := mcplib.GetTextFromContent(res.Content[0])
				if !strings.HasPrefix(text, tc.want.expectPrefix) {
					t.Fatalf("error text %q does not start with %q", text, tc.want.expectPrefix)
				}
			}
			if tc.want.check != nil && len(res.Content) > 0 {
				tc.want.check(t, res)
			}
		})
	}
}

func TestHandleCleanDataset(t *testing.T) {
	errTrue := true

	tests := map[string]struct {
		args    args
		isError *bool
		check   func(t *testing.T, res *mcplib.CallToolResult)
	}{
		"invalid_arguments": {
			args:    args{arguments: "not-a-map"},
			isError: &errTrue,
		},
		"path_missing": {
			args:    args{arguments: map[string]interface{}{}},
			isError: &errTrue,
		},
		"path_not_exist": {
			args:    args{arguments: map[string]interface{}{"path": "/non/existing/data.csv"}},
			isError: &errTrue,
		},
		"success": {
			args: args{
				setupFS:   setupDataFile,
				arguments: map[string]interface{}{},
			},
			check: func(t *testing.T, res *mcplib.CallToolResult) {
				text := mcplib.GetTextFromContent(res.Content[0])
				var result map[string]interface{}
				require.NoError(t, json.Unmarshal([]byte(text), &result))
				assert.Contains(t, result, "summary")
				assert.Contains(t, result, "cleaned_csv")
			},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res := runToolTest(t, tc.args.setupFS, tc.args.arguments, (*mcp.HandlerSet).HandleCleanDataset)

			if tc.isError != nil && *tc.isError != res.IsError {
				t.Fatalf("IsError = %v, want %v", res.IsError, *tc.isError)
			}
			if tc.check != nil && len(res.Content) > 0 {
				tc.check(t, res)
			}
		})
	}
}

func TestHandleCleanDatasetOutputPath(t *testing.T) {
	deps := mcp.NewTestDependencies(nil, nil, nil, "")
	h := mcp.NewHandlerSet(deps)

	dataPath := setupDataFile(t)
	outPath := filepath.Join(t.TempDir(), "cleaned.csv")

	req := mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{
			Arguments: map[string]interface{}{
				"path":        dataPath,
				"output_path": outPath,
			},
		},
	}

	res, err := h.HandleCleanDataset(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	// the cleaned table lands in the file, not the payload
	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "price")

	text := mcplib.GetTextFromContent(res.Content[0])
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	assert.NotContains(t, result, "cleaned_csv")
}

func TestHandleQueryDataset(t *testing.T) {
	dataPath := setupDataFile(t)

	t.Run("requires collaborator", func(t *testing.T) {
		deps := mcp.NewTestDependencies(nil, nil, nil, "")
		h := mcp.NewHandlerSet(deps)

		req := mcplib.CallToolRequest{
			Params: mcplib.CallToolParams{
				Arguments: map[string]interface{}{"path": dataPath, "question": "How many rows?"},
			},
		}
		res, err := h.HandleQueryDataset(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})

	t.Run("requires question", func(t *testing.T) {
		deps := mcp.NewTestDependencies(nil, llm.NewMockClient(), nil, "")
		h := mcp.NewHandlerSet(deps)

		req := mcplib.CallToolRequest{
			Params: mcplib.CallToolParams{
				Arguments: map[string]interface{}{"path": dataPath, "question": "  "},
			},
		}
		res, err := h.HandleQueryDataset(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})

	t.Run("answers with collaborator", func(t *testing.T) {
		mock := llm.NewMockClient()
		mock.Answer = &domain.QueryAnswer{Answer: "Three products.", SQL: "SELECT COUNT(*) FROM data"}
		deps := mcp.NewTestDependencies(nil, mock, nil, "")
		h := mcp.NewHandlerSet(deps)

		req := mcplib.CallToolRequest{
			Params: mcplib.CallToolParams{
				Arguments: map[string]interface{}{"path": dataPath, "question": "How many products?"},
			},
		}
		res, err := h.HandleQueryDataset(context.Background(), req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		text := mcplib.GetTextFromContent(res.Content[0])
		var answer domain.QueryAnswer
		require.NoError(t, json.Unmarshal([]byte(text), &answer))
		assert.Equal(t, "Three products.", answer.Answer)
	})
}
