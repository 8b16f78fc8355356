package app

import (
	"context"
	"fmt"

	"github.com/Ajith-oo7/Data-lysis/domain"
)

// AnalyzeUseCase orchestrates the dataset analysis workflow
type AnalyzeUseCase struct {
	service      domain.AnalysisService
	reader       domain.DatasetReader
	formatter    domain.AnalysisFormatter
	configLoader domain.ConfigurationLoader
}

// NewAnalyzeUseCase creates a new analyze use case
func NewAnalyzeUseCase(
	service domain.AnalysisService,
	reader domain.DatasetReader,
	formatter domain.AnalysisFormatter,
	configLoader domain.ConfigurationLoader,
) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		service:      service,
		reader:       reader,
		formatter:    formatter,
		configLoader: configLoader,
	}
}

// Execute performs the complete analysis workflow
func (uc *AnalyzeUseCase) Execute(ctx context.Context, req domain.AnalysisRequest) error {
	response, finalReq, err := uc.run(ctx, req)
	if err != nil {
		return err
	}

	if err := uc.formatter.Write(response, finalReq.OutputFormat, finalReq.OutputWriter); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	return nil
}

// ExecuteAndReturn performs the analysis workflow and returns the response
// instead of writing it. Used by callers that post-process the result.
func (uc *AnalyzeUseCase) ExecuteAndReturn(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResponse, error) {
	response, _, err := uc.run(ctx, req)
	return response, err
}

func (uc *AnalyzeUseCase) run(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResponse, domain.AnalysisRequest, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, req, domain.NewInvalidInputError("invalid request", err)
	}

	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return nil, req, domain.NewConfigError("failed to load configuration", err)
	}

	if finalReq.Path != "" {
		if !uc.reader.IsValidDataFile(finalReq.Path) {
			return nil, finalReq, domain.NewInvalidInputError(
				fmt.Sprintf("not a supported data file: %s", finalReq.Path), nil)
		}
	}

	response, err := uc.service.Analyze(ctx, finalReq)
	if err != nil {
		return nil, finalReq, err
	}

	return response, finalReq, nil
}

// validateRequest validates the analysis request
func (uc *AnalyzeUseCase) validateRequest(req domain.AnalysisRequest) error {
	inputs := 0
	if req.Path != "" {
		inputs++
	}
	if req.CSVData != "" {
		inputs++
	}
	if len(req.Records) > 0 {
		inputs++
	}
	if inputs == 0 {
		return fmt.Errorf("no input specified")
	}
	if inputs > 1 {
		return fmt.Errorf("only one of path, CSV data, or records may be specified")
	}

	if req.OutputWriter == nil {
		return fmt.Errorf("output writer is required")
	}

	switch req.OutputFormat {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML, domain.OutputFormatCSV:
	default:
		return fmt.Errorf("unsupported output format: %s", req.OutputFormat)
	}

	return nil
}

// loadAndMergeConfig loads configuration from file and merges with request
func (uc *AnalyzeUseCase) loadAndMergeConfig(req domain.AnalysisRequest) (domain.AnalysisRequest, error) {
	if uc.configLoader == nil {
		return req, nil
	}

	var configReq *domain.AnalysisRequest
	var err error

	if req.ConfigPath != "" {
		configReq, err = uc.configLoader.LoadConfig(req.ConfigPath)
		if err != nil {
			return req, fmt.Errorf("failed to load config from %s: %w", req.ConfigPath, err)
		}
	} else {
		configReq = uc.configLoader.LoadDefaultConfig()
	}

	if configReq != nil {
		merged := uc.configLoader.MergeConfig(configReq, &req)
		return *merged, nil
	}

	return req, nil
}

// AnalyzeUseCaseBuilder provides a builder pattern for creating AnalyzeUseCase
type AnalyzeUseCaseBuilder struct {
	service      domain.AnalysisService
	reader       domain.DatasetReader
	formatter    domain.AnalysisFormatter
	configLoader domain.ConfigurationLoader
}

// NewAnalyzeUseCaseBuilder creates a new builder
func NewAnalyzeUseCaseBuilder() *AnalyzeUseCaseBuilder {
	return &AnalyzeUseCaseBuilder{}
}

// WithService sets the analysis service
func (b *AnalyzeUseCaseBuilder) WithService(service domain.AnalysisService) *AnalyzeUseCaseBuilder {
	b.service = service
	return b
}

// WithReader sets the dataset reader
func (b *AnalyzeUseCaseBuilder) WithReader(reader domain.DatasetReader) *AnalyzeUseCaseBuilder {
	b.reader = reader
	return b
}

// WithFormatter sets the output formatter
func (b *AnalyzeUseCaseBuilder) WithFormatter(formatter domain.AnalysisFormatter) *AnalyzeUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *AnalyzeUseCaseBuilder) WithConfigLoader(configLoader domain.ConfigurationLoader) *AnalyzeUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// Build creates the AnalyzeUseCase with the configured dependencies
func (b *AnalyzeUseCaseBuilder) Build() (*AnalyzeUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("analysis service is required")
	}
	if b.reader == nil {
		return nil, fmt.Errorf("dataset reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}

	// ConfigLoader is optional; config loading is skipped when nil
	return NewAnalyzeUseCase(
		b.service,
		b.reader,
		b.formatter,
		b.configLoader,
	), nil
}
