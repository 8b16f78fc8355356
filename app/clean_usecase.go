package app

import (
	"context"
	"fmt"

	"github.com/Ajith-oo7/Data-lysis/domain"
	"github.com/Ajith-oo7/Data-lysis/service"
)

// CleanUseCase orchestrates the data cleaning workflow
type CleanUseCase struct {
	service      domain.CleaningService
	reader       domain.DatasetReader
	formatter    domain.CleaningFormatter
	configLoader *service.CleaningConfigurationLoader
}

// NewCleanUseCase creates a new clean use case
func NewCleanUseCase(
	cleaningService domain.CleaningService,
	reader domain.DatasetReader,
	formatter domain.CleaningFormatter,
	configLoader *service.CleaningConfigurationLoader,
) *CleanUseCase {
	return &CleanUseCase{
		service:      cleaningService,
		reader:       reader,
		formatter:    formatter,
		configLoader: configLoader,
	}
}

// Execute performs the complete cleaning workflow
func (uc *CleanUseCase) Execute(ctx context.Context, req domain.CleaningRequest) error {
	response, finalReq, err := uc.run(ctx, req)
	if err != nil {
		return err
	}

	if err := uc.formatter.Write(response, finalReq.OutputFormat, finalReq.OutputWriter); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	return nil
}

// ExecuteAndReturn performs the cleaning workflow and returns the response
func (uc *CleanUseCase) ExecuteAndReturn(ctx context.Context, req domain.CleaningRequest) (*domain.CleaningResponse, error) {
	response, _, err := uc.run(ctx, req)
	return response, err
}

func (uc *CleanUseCase) run(ctx context.Context, req domain.CleaningRequest) (*domain.CleaningResponse, domain.CleaningRequest, error) {
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

	response, err := uc.service.Clean(ctx, finalReq)
	if err != nil {
		return nil, finalReq, err
	}

	return response, finalReq, nil
}

// validateRequest validates the cleaning request
func (uc *CleanUseCase) validateRequest(req domain.CleaningRequest) error {
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

func (uc *CleanUseCase) loadAndMergeConfig(req domain.CleaningRequest) (domain.CleaningRequest, error) {
	if uc.configLoader == nil {
		return req, nil
	}

	var configReq *domain.CleaningRequest
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

// CleanUseCaseBuilder provides a builder pattern for creating CleanUseCase
type CleanUseCaseBuilder struct {
	service      domain.CleaningService
	reader       domain.DatasetReader
	formatter    domain.CleaningFormatter
	configLoader *service.CleaningConfigurationLoader
}

// NewCleanUseCaseBuilder creates a new builder
func NewCleanUseCaseBuilder() *CleanUseCaseBuilder {
	return &CleanUseCaseBuilder{}
}

// WithService sets the cleaning service
func (b *CleanUseCaseBuilder) WithService(cleaningService domain.CleaningService) *CleanUseCaseBuilder {
	b.service = cleaningService
	return b
}

// WithReader sets the dataset reader
func (b *CleanUseCaseBuilder) WithReader(reader domain.DatasetReader) *CleanUseCaseBuilder {
	b.reader = reader
	return b
}

// WithFormatter sets the output formatter
func (b *CleanUseCaseBuilder) WithFormatter(formatter domain.CleaningFormatter) *CleanUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *CleanUseCaseBuilder) WithConfigLoader(configLoader *service.CleaningConfigurationLoader) *CleanUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// Build creates the CleanUseCase with the configured dependencies
func (b *CleanUseCaseBuilder) Build() (*CleanUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("cleaning service is required")
	}
	if b.reader == nil {
		return nil, fmt.Errorf("dataset reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}

	return NewCleanUseCase(
		b.service,
		b.reader,
		b.formatter,
		b.configLoader,
	), nil
}
