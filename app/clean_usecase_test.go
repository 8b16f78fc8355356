package app

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ajith-oo7/Data-lysis/domain"
	"github.com/Ajith-oo7/Data-lysis/service"
)

func newCleanUseCase(t *testing.T) *CleanUseCase {
	t.Helper()
	uc, err := NewCleanUseCaseBuilder().
		WithService(service.NewCleaningService()).
		WithReader(service.NewDatasetReader()).
		WithFormatter(service.NewCleaningFormatter()).
		Build()
	require.NoError(t, err)
	return uc
}

func TestCleanUseCaseBuilder(t *testing.T) {
	t.Run("missing service", func(t *testing.T) {
		_, err := NewCleanUseCaseBuilder().
			WithReader(service.NewDatasetReader()).
			WithFormatter(service.NewCleaningFormatter()).
			Build()
		assert.Error(t, err)
	})

	t.Run("missing formatter", func(t *testing.T) {
		_, err := NewCleanUseCaseBuilder().
			WithService(service.NewCleaningService()).
			WithReader(service.NewDatasetReader()).
			Build()
		assert.Error(t, err)
	})

	t.Run("complete", func(t *testing.T) {
		uc, err := NewCleanUseCaseBuilder().
			WithService(service.NewCleaningService()).
			WithReader(service.NewDatasetReader()).
			WithFormatter(service.NewCleaningFormatter()).
			WithConfigLoader(service.NewCleaningConfigurationLoader()).
			Build()
		require.NoError(t, err)
		assert.NotNil(t, uc)
	})
}

func TestCleanUseCaseValidation(t *testing.T) {
	uc := newCleanUseCase(t)
	var buf bytes.Buffer

	t.Run("no input", func(t *testing.T) {
		err := uc.Execute(context.Background(), domain.CleaningRequest{
			OutputFormat: domain.OutputFormatCSV,
			OutputWriter: &buf,
		})
		require.Error(t, err)
		var de domain.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, domain.ErrCodeInvalidInput, de.Code)
	})

	t.Run("nil writer", func(t *testing.T) {
		err := uc.Execute(context.Background(), domain.CleaningRequest{
			CSVData:      sampleCSV,
			OutputFormat: domain.OutputFormatCSV,
		})
		assert.Error(t, err)
	})

	t.Run("unsupported file extension", func(t *testing.T) {
		err := uc.Execute(context.Background(), domain.CleaningRequest{
			Path:         "workbook.xlsx",
			OutputFormat: domain.OutputFormatCSV,
			OutputWriter: &buf,
		})
		assert.Error(t, err)
	})
}

func TestCleanUseCaseExecuteCSV(t *testing.T) {
	uc := newCleanUseCase(t)
	var buf bytes.Buffer

	err := uc.Execute(context.Background(), domain.CleaningRequest{
		CSVData:      "name, value\n ALICE ,1\nbob,2\nbob,2\n",
		OutputFormat: domain.OutputFormatCSV,
		OutputWriter: &buf,
	})
	require.NoError(t, err)

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// the duplicate bob row is gone
	assert.Len(t, lines, 3)
	assert.Contains(t, out, "alice")
}

func TestCleanUseCaseExecuteJSONReport(t *testing.T) {
	uc := newCleanUseCase(t)
	var buf bytes.Buffer

	err := uc.Execute(context.Background(), domain.CleaningRequest{
		CSVData:      sampleCSV,
		OutputFormat: domain.OutputFormatJSON,
		OutputWriter: &buf,
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "summary")
	assert.Contains(t, decoded, "cleaning_log")
}

func TestCleanUseCaseExecuteAndReturn(t *testing.T) {
	uc := newCleanUseCase(t)
	var buf bytes.Buffer

	resp, err := uc.ExecuteAndReturn(context.Background(), domain.CleaningRequest{
		CSVData:      sampleCSV,
		OutputFormat: domain.OutputFormatCSV,
		OutputWriter: &buf,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.CleanedCSV)
	assert.Zero(t, buf.Len())
}
