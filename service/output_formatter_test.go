package service

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ajith-oo7/Data-lysis/domain"
)

func sampleAnalysisResponse() *domain.AnalysisResponse {
	return &domain.AnalysisResponse{
		EDAType: domain.EDATypeBasic,
		Characteristics: domain.DatasetCharacteristics{
			Rows:              100,
			Columns:           3,
			NumericColumns:    2,
			MissingPercentage: 5.0,
		},
		Results: map[string]any{
			"descriptive_statistics": map[string]any{
				"price": map[string]any{"mean": 9.5, "std": math.NaN()},
			},
		},
		Profile: map[string]any{
			"price": map[string]any{
				"data_type":          "numeric",
				"missing_count":      float64(2),
				"missing_percentage": 2.0,
				"unique_count":       float64(90),
			},
			"name": map[string]any{
				"data_type":          "string",
				"missing_count":      float64(0),
				"missing_percentage": 0.0,
				"unique_count":       float64(100),
			},
		},
		Metadata: domain.AnalysisMetadata{
			RunID:   "run-1",
			EDAType: domain.EDATypeBasic,
			AnalysisSummary: domain.AnalysisSummary{
				RecommendedEDAType: domain.EDATypeBasic,
				KeyCharacteristics: []string{"100 rows"},
			},
		},
		GeneratedAt: "2026-01-02T03:04:05Z",
		Version:     "test",
	}
}

func TestAnalysisFormatterJSON(t *testing.T) {
	formatter := NewAnalysisFormatter()

	out, err := formatter.Format(sampleAnalysisResponse(), domain.OutputFormatJSON)
	require.NoError(t, err)

	// non-finite floats must not leak into encoded output
	assert.NotContains(t, out, "NaN")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "basic", decoded["eda_type"])
	assert.Contains(t, decoded, "eda_metadata")
}

func TestAnalysisFormatterYAML(t *testing.T) {
	formatter := NewAnalysisFormatter()

	out, err := formatter.Format(sampleAnalysisResponse(), domain.OutputFormatYAML)
	require.NoError(t, err)
	assert.Contains(t, out, "eda_type: basic")
	assert.NotContains(t, out, "NaN")
}

func TestAnalysisFormatterText(t *testing.T) {
	formatter := NewAnalysisFormatter()
	resp := sampleAnalysisResponse()
	resp.Domain = &domain.DomainClassification{Domain: "Sales", Confidence: 0.9}
	resp.Insights = []domain.Insight{{Title: "Peak season", Description: "December doubles"}}
	resp.Warnings = []string{"insight generation degraded"}

	out, err := formatter.Format(resp, domain.OutputFormatText)
	require.NoError(t, err)
	assert.Contains(t, out, "Dataset Analysis Report")
	assert.Contains(t, out, "DATASET")
	assert.Contains(t, out, "ANALYSIS")
	assert.Contains(t, out, "DOMAIN")
	assert.Contains(t, out, "Peak season")
	assert.Contains(t, out, "WARNINGS")
	assert.Contains(t, out, "Generated at 2026-01-02T03:04:05Z")
}

func TestAnalysisFormatterCSV(t *testing.T) {
	formatter := NewAnalysisFormatter()

	out, err := formatter.Format(sampleAnalysisResponse(), domain.OutputFormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "column,data_type,missing_count,missing_percentage,unique_count", lines[0])
	// rows are sorted by column name
	assert.True(t, strings.HasPrefix(lines[1], "name,string,0,"))
	assert.True(t, strings.HasPrefix(lines[2], "price,numeric,2,"))
}

func TestAnalysisFormatterUnsupportedFormat(t *testing.T) {
	formatter := NewAnalysisFormatter()

	_, err := formatter.Format(sampleAnalysisResponse(), domain.OutputFormat("html"))
	require.Error(t, err)
	var de domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeUnsupportedFormat, de.Code)
}

func TestAnalysisFormatterWrite(t *testing.T) {
	formatter := NewAnalysisFormatter()
	var buf bytes.Buffer

	require.NoError(t, formatter.Write(sampleAnalysisResponse(), domain.OutputFormatJSON, &buf))
	assert.Contains(t, buf.String(), `"eda_type"`)
}

func TestCleaningFormatter(t *testing.T) {
	resp := &domain.CleaningResponse{
		Summary: domain.CleaningSummary{
			OriginalShape:      domain.Shape{Rows: 10, Columns: 3},
			FinalShape:         domain.Shape{Rows: 8, Columns: 3},
			RowsRemoved:        2,
			CleaningOperations: 4,
			QualityImprovement: domain.QualityImprovement{
				CompletenessBefore: 0.9,
				CompletenessAfter:  1.0,
			},
		},
		Log: []domain.CleaningLogEntry{
			{Operation: "remove_duplicates", Details: "removed 2 duplicate rows"},
		},
		CleanedCSV:  "a,b\n1,2\n",
		GeneratedAt: "2026-01-02T03:04:05Z",
		Version:     "test",
	}
	formatter := NewCleaningFormatter()

	t.Run("csv returns the cleaned table", func(t *testing.T) {
		out, err := formatter.Format(resp, domain.OutputFormatCSV)
		require.NoError(t, err)
		assert.Equal(t, "a,b\n1,2\n", out)
	})

	t.Run("text report", func(t *testing.T) {
		out, err := formatter.Format(resp, domain.OutputFormatText)
		require.NoError(t, err)
		assert.Contains(t, out, "Data Cleaning Report")
		assert.Contains(t, out, "10 rows x 3 columns")
		assert.Contains(t, out, "remove_duplicates")
	})

	t.Run("json", func(t *testing.T) {
		out, err := formatter.Format(resp, domain.OutputFormatJSON)
		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Contains(t, decoded, "summary")
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := formatter.Format(resp, domain.OutputFormat("xml"))
		assert.Error(t, err)
	})
}
