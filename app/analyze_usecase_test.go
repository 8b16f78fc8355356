package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ajith-oo7/Data-lysis/domain"
	"github.com/Ajith-oo7/Data-lysis/service"
)

const sampleCSV = "product,price,quantity\nwidget,9.99,5\ngadget,19.99,3\ndoohickey,4.99,10\n"

func newAnalyzeUseCase(t *testing.T) *AnalyzeUseCase {
	t.Helper()
	uc, err := NewAnalyzeUseCaseBuilder().
		WithService(service.NewAnalysisService(nil)).
		WithReader(service.NewDatasetReader()).
		WithFormatter(service.NewAnalysisFormatter()).
		Build()
	require.NoError(t, err)
	return uc
}

func TestAnalyzeUseCaseBuilder(t *testing.T) {
	t.Run("missing service", func(t *testing.T) {
		_, err := NewAnalyzeUseCaseBuilder().
			WithReader(service.NewDatasetReader()).
			WithFormatter(service.NewAnalysisFormatter()).
			Build()
		assert.Error(t, err)
	})

	t.Run("missing reader", func(t *testing.T) {
		_, err := NewAnalyzeUseCaseBuilder().
			WithService(service.NewAnalysisService(nil)).
			WithFormatter(service.NewAnalysisFormatter()).
			Build()
		assert.Error(t, err)
	})

	t.Run("missing formatter", func(t *testing.T) {
		_, err := NewAnalyzeUseCaseBuilder().
			WithService(service.NewAnalysisService(nil)).
			WithReader(service.NewDatasetReader()).
			Build()
		assert.Error(t, err)
	})

	t.Run("config loader is optional", func(t *testing.T) {
		uc, err := NewAnalyzeUseCaseBuilder().
			WithService(service.NewAnalysisService(nil)).
			WithReader(service.NewDatasetReader()).
			WithFormatter(service.NewAnalysisFormatter()).
			Build()
		require.NoError(t, err)
		assert.NotNil(t, uc)
	})
}

func TestAnalyzeUseCaseValidation(t *testing.T) {
	uc := newAnalyzeUseCase(t)
	var buf bytes.Buffer

	tests := []struct {
		name string
		req  domain.AnalysisRequest
	}{
		{
			name: "no input",
			req: domain.AnalysisRequest{
				OutputFormat: domain.OutputFormatJSON,
				OutputWriter: &buf,
			},
		},
		{
			name: "two inputs",
			req: domain.AnalysisRequest{
				Path:         "data.csv",
				CSVData:      sampleCSV,
				OutputFormat: domain.OutputFormatJSON,
				OutputWriter: &buf,
			},
		},
		{
			name: "nil writer",
			req: domain.AnalysisRequest{
				CSVData:      sampleCSV,
				OutputFormat: domain.OutputFormatJSON,
			},
		},
		{
			name: "unsupported format",
			req: domain.AnalysisRequest{
				CSVData:      sampleCSV,
				OutputFormat: domain.OutputFormat("html"),
				OutputWriter: &buf,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := uc.Execute(context.Background(), tt.req)
			require.Error(t, err)
			var de domain.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, domain.ErrCodeInvalidInput, de.Code)
		})
	}
}

func TestAnalyzeUseCaseRejectsUnsupportedFile(t *testing.T) {
	uc := newAnalyzeUseCase(t)
	var buf bytes.Buffer

	err := uc.Execute(context.Background(), domain.AnalysisRequest{
		Path:         "report.xlsx",
		OutputFormat: domain.OutputFormatJSON,
		OutputWriter: &buf,
	})
	assert.Error(t, err)
}

func TestAnalyzeUseCaseExecute(t *testing.T) {
	uc := newAnalyzeUseCase(t)
	var buf bytes.Buffer

	err := uc.Execute(context.Background(), domain.AnalysisRequest{
		CSVData:      sampleCSV,
		OutputFormat: domain.OutputFormatJSON,
		OutputWriter: &buf,
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "basic", decoded["eda_type"])
}

func TestAnalyzeUseCaseExecuteFromFile(t *testing.T) {
	uc := newAnalyzeUseCase(t)

	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	var buf bytes.Buffer
	err := uc.Execute(context.Background(), domain.AnalysisRequest{
		Path:         path,
		OutputFormat: domain.OutputFormatText,
		OutputWriter: &buf,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Dataset Analysis Report")
}

func TestAnalyzeUseCaseExecuteAndReturn(t *testing.T) {
	uc := newAnalyzeUseCase(t)
	var buf bytes.Buffer

	resp, err := uc.ExecuteAndReturn(context.Background(), domain.AnalysisRequest{
		CSVData:      sampleCSV,
		OutputFormat: domain.OutputFormatJSON,
		OutputWriter: &buf,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, domain.EDATypeBasic, resp.EDAType)
	// nothing is written in return mode
	assert.Zero(t, buf.Len())
}

func TestAnalyzeUseCaseConfigMerge(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "datalysis.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("analysis:\n  target_column: quantity\n"), 0o644))

	uc, err := NewAnalyzeUseCaseBuilder().
		WithService(service.NewAnalysisService(nil)).
		WithReader(service.NewDatasetReader()).
		WithFormatter(service.NewAnalysisFormatter()).
		WithConfigLoader(service.NewConfigurationLoader()).
		Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	resp, err := uc.ExecuteAndReturn(context.Background(), domain.AnalysisRequest{
		CSVData:      sampleCSV,
		ConfigPath:   configPath,
		OutputFormat: domain.OutputFormatJSON,
		OutputWriter: &buf,
	})
	require.NoError(t, err)
	// the configured target column flows into the analysis
	assert.True(t, resp.Characteristics.HasTargetVariable)
}
