package service

import (
	"os"
	"path/filepath"

	"github.com/Ajith-oo7/Data-lysis/domain"
	"github.com/Ajith-oo7/Data-lysis/internal/config"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.AnalysisRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}

	return c.convertToAnalysisRequest(cfg), nil
}

// LoadDefaultConfig loads the default configuration, first checking for a
// config file in the working directory
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.AnalysisRequest {
	if configFile := c.FindDefaultConfigFile(); configFile != "" {
		if req, err := c.LoadConfig(configFile); err == nil {
			return req
		}
	}

	return c.convertToAnalysisRequest(config.DefaultConfig())
}

// FindDefaultConfigFile looks for a datalysis config file in the current directory
func (c *ConfigurationLoaderImpl) FindDefaultConfigFile() string {
	candidates := []string{
		".datalysis.toml",
		"datalysis.yaml",
		"datalysis.yml",
		".datalysis.yaml",
		".datalysis.yml",
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for _, name := range candidates {
		path := filepath.Join(cwd, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// MergeConfig merges CLI flags with configuration file, respecting explicitly
// set flags
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.AnalysisRequest, override *domain.AnalysisRequest) *domain.AnalysisRequest {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	tracker := config.NewFlagTrackerWithFlags(override.ExplicitFlags)
	merged := *base

	// Input always comes from the command line
	merged.Path = override.Path
	merged.CSVData = override.CSVData
	merged.Records = override.Records

	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.OutputPath != "" {
		merged.OutputPath = override.OutputPath
	}
	if override.OutputFormat != "" && (override.OutputFormat != domain.OutputFormatText ||
		tracker.WasSet("json") || tracker.WasSet("yaml") || tracker.WasSet("csv")) {
		merged.OutputFormat = override.OutputFormat
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	merged.TargetColumn = tracker.MergeString(merged.TargetColumn, override.TargetColumn, "target")
	merged.ShowDetails = tracker.MergeBool(merged.ShowDetails, override.ShowDetails, "details")
	merged.CleanFirst = tracker.MergeBool(merged.CleanFirst, override.CleanFirst, "clean")
	merged.WithDomainDetection = tracker.MergeBool(merged.WithDomainDetection, override.WithDomainDetection, "no-ai")
	merged.WithAIInsights = tracker.MergeBool(merged.WithAIInsights, override.WithAIInsights, "no-ai")

	if override.CleaningOptions != nil {
		merged.CleaningOptions = override.CleaningOptions
	}

	merged.ExplicitFlags = override.ExplicitFlags

	return &merged
}

// convertToAnalysisRequest converts internal config to a domain request
func (c *ConfigurationLoaderImpl) convertToAnalysisRequest(cfg *config.Config) *domain.AnalysisRequest {
	var outputFormat domain.OutputFormat
	switch cfg.Output.Format {
	case "json":
		outputFormat = domain.OutputFormatJSON
	case "yaml":
		outputFormat = domain.OutputFormatYAML
	case "csv":
		outputFormat = domain.OutputFormatCSV
	default:
		outputFormat = domain.OutputFormatText
	}

	return &domain.AnalysisRequest{
		TargetColumn:        cfg.Analysis.TargetColumn,
		CleaningOptions:     cfg.Cleaning.ToCleaningOptions(),
		WithDomainDetection: cfg.AI.Enabled,
		WithAIInsights:      cfg.AI.Enabled,
		OutputFormat:        outputFormat,
		ShowDetails:         cfg.Output.ShowDetails,
	}
}

// CleaningConfigurationLoader loads cleaning pipeline configuration
type CleaningConfigurationLoader struct {
	inner *ConfigurationLoaderImpl
}

// NewCleaningConfigurationLoader creates a configuration loader for the clean command
func NewCleaningConfigurationLoader() *CleaningConfigurationLoader {
	return &CleaningConfigurationLoader{inner: NewConfigurationLoader()}
}

// LoadConfig loads cleaning configuration from the specified path
func (c *CleaningConfigurationLoader) LoadConfig(path string) (*domain.CleaningRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}

	return c.convertToCleaningRequest(cfg), nil
}

// LoadDefaultConfig loads the default cleaning configuration
func (c *CleaningConfigurationLoader) LoadDefaultConfig() *domain.CleaningRequest {
	if configFile := c.inner.FindDefaultConfigFile(); configFile != "" {
		if req, err := c.LoadConfig(configFile); err == nil {
			return req
		}
	}

	return c.convertToCleaningRequest(config.DefaultConfig())
}

// MergeConfig merges CLI flags with configuration file
func (c *CleaningConfigurationLoader) MergeConfig(base *domain.CleaningRequest, override *domain.CleaningRequest) *domain.CleaningRequest {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	tracker := config.NewFlagTrackerWithFlags(override.ExplicitFlags)
	merged := *base

	merged.Path = override.Path
	merged.CSVData = override.CSVData
	merged.Records = override.Records

	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.OutputPath != "" {
		merged.OutputPath = override.OutputPath
	}
	if override.OutputFormat != "" && (override.OutputFormat != domain.OutputFormatText ||
		tracker.WasSet("json") || tracker.WasSet("yaml") || tracker.WasSet("csv")) {
		merged.OutputFormat = override.OutputFormat
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	if override.Options != nil {
		if merged.Options == nil {
			merged.Options = override.Options
		} else {
			merged.Options = c.mergeOptions(merged.Options, override.Options, tracker)
		}
	}

	merged.ExplicitFlags = override.ExplicitFlags

	return &merged
}

func (c *CleaningConfigurationLoader) mergeOptions(base, override *domain.CleaningOptions, tracker *config.FlagTracker) *domain.CleaningOptions {
	merged := *base

	merged.HandleMissing = tracker.MergeBool(merged.HandleMissing, override.HandleMissing, "skip-missing")
	merged.RemoveDuplicates = tracker.MergeBool(merged.RemoveDuplicates, override.RemoveDuplicates, "skip-duplicates")
	merged.HandleOutliers = tracker.MergeBool(merged.HandleOutliers, override.HandleOutliers, "skip-outliers")
	merged.Standardize = tracker.MergeBool(merged.Standardize, override.Standardize, "standardize")
	merged.EncodeCategorical = tracker.MergeBool(merged.EncodeCategorical, override.EncodeCategorical, "encode")

	merged.Outliers.Method = tracker.MergeString(merged.Outliers.Method, override.Outliers.Method, "outlier-method")
	merged.Outliers.Action = tracker.MergeString(merged.Outliers.Action, override.Outliers.Action, "outlier-action")
	merged.Missing.ImputationStrategy = tracker.MergeString(merged.Missing.ImputationStrategy, override.Missing.ImputationStrategy, "imputation")
	merged.Scaling.Method = tracker.MergeString(merged.Scaling.Method, override.Scaling.Method, "scaling-method")

	return &merged
}

func (c *CleaningConfigurationLoader) convertToCleaningRequest(cfg *config.Config) *domain.CleaningRequest {
	var outputFormat domain.OutputFormat
	switch cfg.Output.Format {
	case "json":
		outputFormat = domain.OutputFormatJSON
	case "yaml":
		outputFormat = domain.OutputFormatYAML
	default:
		// Cleaning defaults to CSV so the cleaned table can be piped onward
		outputFormat = domain.OutputFormatCSV
	}

	return &domain.CleaningRequest{
		Options:      cfg.Cleaning.ToCleaningOptions(),
		OutputFormat: outputFormat,
	}
}
