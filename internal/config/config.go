package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Ajith-oo7/Data-lysis/domain"
)

// Default missing-data thresholds
const (
	// DefaultColumnMissingThreshold drops columns missing more than this fraction
	DefaultColumnMissingThreshold = 0.5

	// DefaultRowMissingThreshold drops rows missing more than this fraction
	DefaultRowMissingThreshold = 0.7

	// DefaultKNNNeighbors is the neighbor count for KNN imputation
	DefaultKNNNeighbors = 5

	// DefaultMaxCategoriesOneHot caps one-hot expansion per column
	DefaultMaxCategoriesOneHot = 10
)

// Config represents the main configuration structure
type Config struct {
	// Analysis holds general analysis configuration
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`

	// Cleaning holds cleaning pipeline configuration
	Cleaning CleaningConfig `mapstructure:"cleaning" yaml:"cleaning"`

	// AI holds LLM collaborator configuration
	AI AIConfig `mapstructure:"ai" yaml:"ai"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" yaml:"output"`
}

// AnalysisConfig holds general analysis configuration
type AnalysisConfig struct {
	// IncludePatterns specifies file patterns to include
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns specifies file patterns to exclude
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Recursive controls whether to collect files from directories recursively
	Recursive bool `mapstructure:"recursive" yaml:"recursive"`

	// TargetColumn names the supervised target, if any
	TargetColumn string `mapstructure:"target_column" yaml:"target_column"`

	// SampleRows is how many rows to include in previews and LLM prompts
	SampleRows int `mapstructure:"sample_rows" yaml:"sample_rows"`
}

// CleaningConfig holds per-stage cleaning configuration. Stage flags mirror
// the pipeline order; nested sections configure individual stages.
type CleaningConfig struct {
	HandleMissing         bool `mapstructure:"handle_missing" yaml:"handle_missing"`
	CorrectTypes          bool `mapstructure:"correct_types" yaml:"correct_types"`
	RemoveDuplicates      bool `mapstructure:"remove_duplicates" yaml:"remove_duplicates"`
	HandleOutliers        bool `mapstructure:"handle_outliers" yaml:"handle_outliers"`
	StandardizeData       bool `mapstructure:"standardize_data" yaml:"standardize_data"`
	CleanText             bool `mapstructure:"clean_text" yaml:"clean_text"`
	ValidateIntegrity     bool `mapstructure:"validate_integrity" yaml:"validate_integrity"`
	FixFormats            bool `mapstructure:"fix_formats" yaml:"fix_formats"`
	EncodeCategorical     bool `mapstructure:"encode_categorical" yaml:"encode_categorical"`
	CreateBins            bool `mapstructure:"create_bins" yaml:"create_bins"`
	FeatureEngineering    bool `mapstructure:"feature_engineering" yaml:"feature_engineering"`
	AggregateTransform    bool `mapstructure:"aggregate_transform" yaml:"aggregate_transform"`
	CleanGeospatial       bool `mapstructure:"clean_geospatial" yaml:"clean_geospatial"`
	HandleUnitConversions bool `mapstructure:"handle_unit_conversions" yaml:"handle_unit_conversions"`

	ColumnMissingThreshold  float64 `mapstructure:"column_missing_threshold" yaml:"column_missing_threshold"`
	RowMissingThreshold     float64 `mapstructure:"row_missing_threshold" yaml:"row_missing_threshold"`
	ImputationStrategy      string  `mapstructure:"imputation_strategy" yaml:"imputation_strategy"`
	CreateMissingIndicators bool    `mapstructure:"create_missing_indicators" yaml:"create_missing_indicators"`
	UseKNNImputation        bool    `mapstructure:"use_knn_imputation" yaml:"use_knn_imputation"`
	KNNNeighbors            int     `mapstructure:"knn_neighbors" yaml:"knn_neighbors"`

	OutlierMethod string `mapstructure:"outlier_method" yaml:"outlier_method"`
	OutlierAction string `mapstructure:"outlier_action" yaml:"outlier_action"`

	ScalingMethod string `mapstructure:"scaling_method" yaml:"scaling_method"`

	FuzzyDuplicates bool `mapstructure:"fuzzy_duplicates" yaml:"fuzzy_duplicates"`

	EncodingMethod      string `mapstructure:"encoding_method" yaml:"encoding_method"`
	EncodingTarget      string `mapstructure:"encoding_target" yaml:"encoding_target"`
	MaxCategoriesOneHot int    `mapstructure:"max_categories_onehot" yaml:"max_categories_onehot"`

	ExtractDateFeatures bool `mapstructure:"extract_date_features" yaml:"extract_date_features"`
	ExtractTextFeatures bool `mapstructure:"extract_text_features" yaml:"extract_text_features"`

	AutoDetectUnits bool `mapstructure:"auto_detect_units" yaml:"auto_detect_units"`
}

// AIConfig holds LLM collaborator configuration
type AIConfig struct {
	// Enabled controls whether domain detection and AI insights run at all
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Model is the chat completion model name
	Model string `mapstructure:"model" yaml:"model"`

	// APIKeyEnv names the environment variable holding the API key
	APIKeyEnv string `mapstructure:"api_key_env" yaml:"api_key_env"`

	// MaxSampleRows limits how many rows are sent in prompts
	MaxSampleRows int `mapstructure:"max_sample_rows" yaml:"max_sample_rows"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv
	Format string `mapstructure:"format" yaml:"format"`

	// ShowDetails controls whether to show detailed breakdowns in text output
	ShowDetails bool `mapstructure:"show_details" yaml:"show_details"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	opts := domain.DefaultCleaningOptions()
	return &Config{
		Analysis: AnalysisConfig{
			IncludePatterns: []string{"*.csv"},
			ExcludePatterns: []string{},
			Recursive:       true,
			SampleRows:      5,
		},
		Cleaning: CleaningConfig{
			HandleMissing:           opts.HandleMissing,
			CorrectTypes:            opts.CorrectTypes,
			RemoveDuplicates:        opts.RemoveDuplicates,
			HandleOutliers:          opts.HandleOutliers,
			CleanText:               opts.CleanText,
			ValidateIntegrity:       opts.ValidateIntegrity,
			FixFormats:              opts.FixFormats,
			ColumnMissingThreshold:  DefaultColumnMissingThreshold,
			RowMissingThreshold:     DefaultRowMissingThreshold,
			ImputationStrategy:      opts.Missing.ImputationStrategy,
			CreateMissingIndicators: opts.Missing.CreateMissingIndicators,
			KNNNeighbors:            DefaultKNNNeighbors,
			OutlierMethod:           opts.Outliers.Method,
			OutlierAction:           opts.Outliers.Action,
			ScalingMethod:           opts.Scaling.Method,
			EncodingMethod:          opts.Encoding.Method,
			MaxCategoriesOneHot:     DefaultMaxCategoriesOneHot,
			ExtractDateFeatures:     opts.Features.ExtractDateFeatures,
		},
		AI: AIConfig{
			Enabled:       true,
			Model:         "gpt-4o-mini",
			APIKeyEnv:     "OPENAI_API_KEY",
			MaxSampleRows: 10,
		},
		Output: OutputConfig{
			Format:      "text",
			ShowDetails: false,
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	// If no config path specified, try to find default config files
	if configPath == "" {
		configPath = findDefaultConfig()
	}

	// If still no config found, try TOML discovery, then fall back to defaults
	if configPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			if tomlCfg, err := NewTomlConfigLoader().LoadConfig(cwd); err == nil {
				return tomlCfg, nil
			}
		}
		return config, nil
	}

	if filepath.Ext(configPath) == ".toml" {
		return loadTomlFile(configPath)
	}

	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to read config file %s", configPath), err)
	}

	// Unknown keys are ignored; present keys override the defaults
	if err := v.Unmarshal(config); err != nil {
		return nil, domain.NewConfigError("failed to unmarshal config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}

	return config, nil
}

// findDefaultConfig looks for default configuration files in common locations
func findDefaultConfig() string {
	candidates := []string{
		"datalysis.yaml",
		"datalysis.yml",
		".datalysis.yaml",
		".datalysis.yml",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		for _, candidate := range candidates {
			path := filepath.Join(home, candidate)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
		"csv":  true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, csv", c.Output.Format)
	}

	if c.Cleaning.ColumnMissingThreshold < 0 || c.Cleaning.ColumnMissingThreshold > 1 {
		return fmt.Errorf("cleaning.column_missing_threshold must be between 0.0 and 1.0, got %f", c.Cleaning.ColumnMissingThreshold)
	}
	if c.Cleaning.RowMissingThreshold < 0 || c.Cleaning.RowMissingThreshold > 1 {
		return fmt.Errorf("cleaning.row_missing_threshold must be between 0.0 and 1.0, got %f", c.Cleaning.RowMissingThreshold)
	}

	validImputation := map[string]bool{"mean": true, "median": true, "smart": true, "": true}
	if !validImputation[c.Cleaning.ImputationStrategy] {
		return fmt.Errorf("invalid cleaning.imputation_strategy '%s', must be one of: mean, median, smart", c.Cleaning.ImputationStrategy)
	}

	validOutlierMethods := map[string]bool{"iqr": true, "zscore": true, "": true}
	if !validOutlierMethods[c.Cleaning.OutlierMethod] {
		return fmt.Errorf("invalid cleaning.outlier_method '%s', must be one of: iqr, zscore", c.Cleaning.OutlierMethod)
	}

	validOutlierActions := map[string]bool{"remove": true, "cap": true, "keep": true, "": true}
	if !validOutlierActions[c.Cleaning.OutlierAction] {
		return fmt.Errorf("invalid cleaning.outlier_action '%s', must be one of: remove, cap, keep", c.Cleaning.OutlierAction)
	}

	validScaling := map[string]bool{"standard": true, "minmax": true, "robust": true, "log": true, "boxcox": true, "": true}
	if !validScaling[c.Cleaning.ScalingMethod] {
		return fmt.Errorf("invalid cleaning.scaling_method '%s', must be one of: standard, minmax, robust, log, boxcox", c.Cleaning.ScalingMethod)
	}

	validEncoding := map[string]bool{"label": true, "onehot": true, "target": true, "frequency": true, "": true}
	if !validEncoding[c.Cleaning.EncodingMethod] {
		return fmt.Errorf("invalid cleaning.encoding_method '%s', must be one of: label, onehot, target, frequency", c.Cleaning.EncodingMethod)
	}

	if c.Cleaning.KNNNeighbors < 1 {
		return fmt.Errorf("cleaning.knn_neighbors must be >= 1, got %d", c.Cleaning.KNNNeighbors)
	}

	if c.Analysis.SampleRows < 1 {
		return fmt.Errorf("analysis.sample_rows must be >= 1, got %d", c.Analysis.SampleRows)
	}

	if len(c.Analysis.IncludePatterns) == 0 {
		return fmt.Errorf("analysis.include_patterns cannot be empty")
	}

	return nil
}

// ToCleaningOptions converts the cleaning section into pipeline options
func (c *CleaningConfig) ToCleaningOptions() *domain.CleaningOptions {
	return &domain.CleaningOptions{
		HandleMissing:         c.HandleMissing,
		CorrectTypes:          c.CorrectTypes,
		RemoveDuplicates:      c.RemoveDuplicates,
		HandleOutliers:        c.HandleOutliers,
		Standardize:           c.StandardizeData,
		CleanText:             c.CleanText,
		ValidateIntegrity:     c.ValidateIntegrity,
		FixFormats:            c.FixFormats,
		EncodeCategorical:     c.EncodeCategorical,
		CreateBins:            c.CreateBins,
		FeatureEngineering:    c.FeatureEngineering,
		AggregateTransform:    c.AggregateTransform,
		CleanGeospatial:       c.CleanGeospatial,
		HandleUnitConversions: c.HandleUnitConversions,
		Missing: domain.MissingOptions{
			CreateMissingIndicators: c.CreateMissingIndicators,
			ColumnMissingThreshold:  c.ColumnMissingThreshold,
			RowMissingThreshold:     c.RowMissingThreshold,
			ImputationStrategy:      c.ImputationStrategy,
			UseKNNImputation:        c.UseKNNImputation,
			KNNNeighbors:            c.KNNNeighbors,
		},
		Duplicates: domain.DuplicateOptions{
			FuzzyMatching: c.FuzzyDuplicates,
		},
		Outliers: domain.OutlierOptions{
			Method: c.OutlierMethod,
			Action: c.OutlierAction,
		},
		Scaling: domain.ScalingOptions{
			Method: c.ScalingMethod,
		},
		Text: domain.TextOptions{
			NormalizeCase:     true,
			RemoveExtraSpaces: true,
			StandardizeValues: true,
		},
		Validation: domain.ValidationOptions{
			FixDateLogic: true,
		},
		Encoding: domain.EncodingOptions{
			Method:              c.EncodingMethod,
			TargetColumn:        c.EncodingTarget,
			MaxCategoriesOneHot: c.MaxCategoriesOneHot,
		},
		Features: domain.FeatureOptions{
			ExtractDateFeatures: c.ExtractDateFeatures,
			ExtractTextFeatures: c.ExtractTextFeatures,
		},
		UnitConversion: domain.UnitConversionOptions{
			AutoDetectUnits: c.AutoDetectUnits,
		},
	}
}
