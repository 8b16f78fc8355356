package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/Ajith-oo7/Data-lysis/domain"
)

// DatalysisTomlConfig represents the structure of .datalysis.toml. Boolean
// fields are pointers so an absent key can be told apart from an explicit
// false.
type DatalysisTomlConfig struct {
	Analysis TomlAnalysisConfig `toml:"analysis"`
	Cleaning TomlCleaningConfig `toml:"cleaning"`
	AI       TomlAIConfig       `toml:"ai"`
	Output   TomlOutputConfig   `toml:"output"`
}

type TomlAnalysisConfig struct {
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
	Recursive       *bool    `toml:"recursive"`
	TargetColumn    string   `toml:"target_column"`
	SampleRows      int      `toml:"sample_rows"`
}

type TomlCleaningConfig struct {
	HandleMissing         *bool `toml:"handle_missing"`
	CorrectTypes          *bool `toml:"correct_types"`
	RemoveDuplicates      *bool `toml:"remove_duplicates"`
	HandleOutliers        *bool `toml:"handle_outliers"`
	StandardizeData       *bool `toml:"standardize_data"`
	CleanText             *bool `toml:"clean_text"`
	ValidateIntegrity     *bool `toml:"validate_integrity"`
	FixFormats            *bool `toml:"fix_formats"`
	EncodeCategorical     *bool `toml:"encode_categorical"`
	CreateBins            *bool `toml:"create_bins"`
	FeatureEngineering    *bool `toml:"feature_engineering"`
	AggregateTransform    *bool `toml:"aggregate_transform"`
	CleanGeospatial       *bool `toml:"clean_geospatial"`
	HandleUnitConversions *bool `toml:"handle_unit_conversions"`

	ColumnMissingThreshold  float64 `toml:"column_missing_threshold"`
	RowMissingThreshold     float64 `toml:"row_missing_threshold"`
	ImputationStrategy      string  `toml:"imputation_strategy"`
	CreateMissingIndicators *bool   `toml:"create_missing_indicators"`
	UseKNNImputation        *bool   `toml:"use_knn_imputation"`
	KNNNeighbors            int     `toml:"knn_neighbors"`

	OutlierMethod string `toml:"outlier_method"`
	OutlierAction string `toml:"outlier_action"`

	ScalingMethod string `toml:"scaling_method"`

	FuzzyDuplicates *bool `toml:"fuzzy_duplicates"`

	EncodingMethod      string `toml:"encoding_method"`
	EncodingTarget      string `toml:"encoding_target"`
	MaxCategoriesOneHot int    `toml:"max_categories_onehot"`

	ExtractDateFeatures *bool `toml:"extract_date_features"`
	ExtractTextFeatures *bool `toml:"extract_text_features"`

	AutoDetectUnits *bool `toml:"auto_detect_units"`
}

type TomlAIConfig struct {
	Enabled       *bool  `toml:"enabled"`
	Model         string `toml:"model"`
	APIKeyEnv     string `toml:"api_key_env"`
	MaxSampleRows int    `toml:"max_sample_rows"`
}

type TomlOutputConfig struct {
	Format      string `toml:"format"`
	ShowDetails *bool  `toml:"show_details"`
}

// TomlConfigLoader handles TOML-only configuration loading
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig walks up from startDir looking for .datalysis.toml and merges it
// over the defaults. Returns defaults when no file is found.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, error) {
	configPath, err := l.findDatalysisToml(startDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return loadTomlFile(configPath)
}

// findDatalysisToml walks up the directory tree to find .datalysis.toml
func (l *TomlConfigLoader) findDatalysisToml(startDir string) (string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".datalysis.toml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

// loadTomlFile reads and parses one TOML config file into a merged Config
func loadTomlFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to read config file "+path, err)
	}

	var tomlCfg DatalysisTomlConfig
	if err := toml.Unmarshal(data, &tomlCfg); err != nil {
		return nil, domain.NewConfigError("failed to parse "+path, err)
	}

	config := DefaultConfig()
	mergeTomlConfig(config, &tomlCfg)

	if err := config.Validate(); err != nil {
		return nil, domain.NewConfigError("invalid configuration in "+path, err)
	}

	return config, nil
}

// mergeTomlConfig merges parsed TOML values into defaults, overriding only
// keys that were present
func mergeTomlConfig(defaults *Config, t *DatalysisTomlConfig) {
	// Analysis
	if len(t.Analysis.IncludePatterns) > 0 {
		defaults.Analysis.IncludePatterns = t.Analysis.IncludePatterns
	}
	if len(t.Analysis.ExcludePatterns) > 0 {
		defaults.Analysis.ExcludePatterns = t.Analysis.ExcludePatterns
	}
	if t.Analysis.Recursive != nil {
		defaults.Analysis.Recursive = *t.Analysis.Recursive
	}
	if t.Analysis.TargetColumn != "" {
		defaults.Analysis.TargetColumn = t.Analysis.TargetColumn
	}
	if t.Analysis.SampleRows > 0 {
		defaults.Analysis.SampleRows = t.Analysis.SampleRows
	}

	// Cleaning stage flags
	mergeBoolPtr(&defaults.Cleaning.HandleMissing, t.Cleaning.HandleMissing)
	mergeBoolPtr(&defaults.Cleaning.CorrectTypes, t.Cleaning.CorrectTypes)
	mergeBoolPtr(&defaults.Cleaning.RemoveDuplicates, t.Cleaning.RemoveDuplicates)
	mergeBoolPtr(&defaults.Cleaning.HandleOutliers, t.Cleaning.HandleOutliers)
	mergeBoolPtr(&defaults.Cleaning.StandardizeData, t.Cleaning.StandardizeData)
	mergeBoolPtr(&defaults.Cleaning.CleanText, t.Cleaning.CleanText)
	mergeBoolPtr(&defaults.Cleaning.ValidateIntegrity, t.Cleaning.ValidateIntegrity)
	mergeBoolPtr(&defaults.Cleaning.FixFormats, t.Cleaning.FixFormats)
	mergeBoolPtr(&defaults.Cleaning.EncodeCategorical, t.Cleaning.EncodeCategorical)
	mergeBoolPtr(&defaults.Cleaning.CreateBins, t.Cleaning.CreateBins)
	mergeBoolPtr(&defaults.Cleaning.FeatureEngineering, t.Cleaning.FeatureEngineering)
	mergeBoolPtr(&defaults.Cleaning.AggregateTransform, t.Cleaning.AggregateTransform)
	mergeBoolPtr(&defaults.Cleaning.CleanGeospatial, t.Cleaning.CleanGeospatial)
	mergeBoolPtr(&defaults.Cleaning.HandleUnitConversions, t.Cleaning.HandleUnitConversions)

	// Cleaning stage options
	if t.Cleaning.ColumnMissingThreshold > 0 {
		defaults.Cleaning.ColumnMissingThreshold = t.Cleaning.ColumnMissingThreshold
	}
	if t.Cleaning.RowMissingThreshold > 0 {
		defaults.Cleaning.RowMissingThreshold = t.Cleaning.RowMissingThreshold
	}
	if t.Cleaning.ImputationStrategy != "" {
		defaults.Cleaning.ImputationStrategy = t.Cleaning.ImputationStrategy
	}
	mergeBoolPtr(&defaults.Cleaning.CreateMissingIndicators, t.Cleaning.CreateMissingIndicators)
	mergeBoolPtr(&defaults.Cleaning.UseKNNImputation, t.Cleaning.UseKNNImputation)
	if t.Cleaning.KNNNeighbors > 0 {
		defaults.Cleaning.KNNNeighbors = t.Cleaning.KNNNeighbors
	}
	if t.Cleaning.OutlierMethod != "" {
		defaults.Cleaning.OutlierMethod = t.Cleaning.OutlierMethod
	}
	if t.Cleaning.OutlierAction != "" {
		defaults.Cleaning.OutlierAction = t.Cleaning.OutlierAction
	}
	if t.Cleaning.ScalingMethod != "" {
		defaults.Cleaning.ScalingMethod = t.Cleaning.ScalingMethod
	}
	mergeBoolPtr(&defaults.Cleaning.FuzzyDuplicates, t.Cleaning.FuzzyDuplicates)
	if t.Cleaning.EncodingMethod != "" {
		defaults.Cleaning.EncodingMethod = t.Cleaning.EncodingMethod
	}
	if t.Cleaning.EncodingTarget != "" {
		defaults.Cleaning.EncodingTarget = t.Cleaning.EncodingTarget
	}
	if t.Cleaning.MaxCategoriesOneHot > 0 {
		defaults.Cleaning.MaxCategoriesOneHot = t.Cleaning.MaxCategoriesOneHot
	}
	mergeBoolPtr(&defaults.Cleaning.ExtractDateFeatures, t.Cleaning.ExtractDateFeatures)
	mergeBoolPtr(&defaults.Cleaning.ExtractTextFeatures, t.Cleaning.ExtractTextFeatures)
	mergeBoolPtr(&defaults.Cleaning.AutoDetectUnits, t.Cleaning.AutoDetectUnits)

	// AI
	mergeBoolPtr(&defaults.AI.Enabled, t.AI.Enabled)
	if t.AI.Model != "" {
		defaults.AI.Model = t.AI.Model
	}
	if t.AI.APIKeyEnv != "" {
		defaults.AI.APIKeyEnv = t.AI.APIKeyEnv
	}
	if t.AI.MaxSampleRows > 0 {
		defaults.AI.MaxSampleRows = t.AI.MaxSampleRows
	}

	// Output
	if t.Output.Format != "" {
		defaults.Output.Format = t.Output.Format
	}
	mergeBoolPtr(&defaults.Output.ShowDetails, t.Output.ShowDetails)
}

func mergeBoolPtr(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
