package domain

import (
	"context"
	"io"
)

// CleaningLogEntry is one record in the append-only cleaning audit trail
type CleaningLogEntry struct {
	Timestamp   string `json:"timestamp" yaml:"timestamp"`
	Operation   string `json:"operation" yaml:"operation"`
	Details     string `json:"details" yaml:"details"`
	RowsBefore  int    `json:"rows_before" yaml:"rows_before"`
	RowsAfter   int    `json:"rows_after" yaml:"rows_after"`
	RowsChanged int    `json:"rows_changed" yaml:"rows_changed"`
}

// Shape is a row/column count pair
type Shape struct {
	Rows    int `json:"rows" yaml:"rows"`
	Columns int `json:"columns" yaml:"columns"`
}

// QualityImprovement compares data quality before and after cleaning
type QualityImprovement struct {
	MissingValueReduction float64 `json:"missing_value_reduction" yaml:"missing_value_reduction"`
	CompletenessBefore    float64 `json:"completeness_before" yaml:"completeness_before"`
	CompletenessAfter     float64 `json:"completeness_after" yaml:"completeness_after"`
	DataConsistencyScore  float64 `json:"data_consistency_score" yaml:"data_consistency_score"`
}

// CleaningSummary describes the overall effect of one pipeline run
type CleaningSummary struct {
	OriginalShape      Shape              `json:"original_shape" yaml:"original_shape"`
	FinalShape         Shape              `json:"final_shape" yaml:"final_shape"`
	RowsRemoved        int                `json:"rows_removed" yaml:"rows_removed"`
	ColumnsRemoved     int                `json:"columns_removed" yaml:"columns_removed"`
	CleaningOperations int                `json:"cleaning_operations" yaml:"cleaning_operations"`
	QualityImprovement QualityImprovement `json:"data_quality_improvement" yaml:"data_quality_improvement"`
	FinalDataTypes     map[string]string  `json:"final_data_types" yaml:"final_data_types"`
	MissingValuesFinal map[string]int     `json:"missing_values_final" yaml:"missing_values_final"`
}

// MissingOptions configures stage 1 (missing-data handling)
type MissingOptions struct {
	CreateMissingIndicators bool    `json:"create_missing_indicators"`
	ColumnMissingThreshold  float64 `json:"column_missing_threshold"`
	RowMissingThreshold     float64 `json:"row_missing_threshold"`
	ImputationStrategy      string  `json:"imputation_strategy"` // mean, median, smart
	UseKNNImputation        bool    `json:"use_knn_imputation"`
	KNNNeighbors            int     `json:"knn_neighbors"`
}

// DuplicateOptions configures stage 3 (duplicate removal)
type DuplicateOptions struct {
	FuzzyMatching bool `json:"fuzzy_matching"`
}

// OutlierOptions configures stage 4 (outlier handling)
type OutlierOptions struct {
	Method string `json:"method"` // iqr, zscore
	Action string `json:"action"` // remove, cap, keep
}

// ScalingOptions configures stage 5 (standardize/normalize)
type ScalingOptions struct {
	Method string `json:"method"` // standard, minmax, robust, log, boxcox
}

// TextOptions configures stage 6 (text cleaning)
type TextOptions struct {
	NormalizeCase           bool `json:"normalize_case"`
	RemoveHTMLTags          bool `json:"remove_html_tags"`
	RemoveEmojis            bool `json:"remove_emojis"`
	RemoveSpecialChars      bool `json:"remove_special_chars"`
	RemoveExtraSpaces       bool `json:"remove_extra_spaces"`
	RemovePunctuation       bool `json:"remove_punctuation"`
	StandardizeValues       bool `json:"standardize_values"`
	AdvancedStandardization bool `json:"advanced_standardization"`
}

// Constraint is a per-column min/max domain bound; nil means unbounded
type Constraint struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// ValidationOptions configures stage 7 (integrity validation)
type ValidationOptions struct {
	FixDateLogic      bool                  `json:"fix_date_logic"`
	DomainConstraints map[string]Constraint `json:"domain_constraints"`
}

// EncodingOptions configures stage 9 (categorical encoding)
type EncodingOptions struct {
	Method              string `json:"method"` // label, onehot, target, frequency
	TargetColumn        string `json:"target_column"`
	MaxCategoriesOneHot int    `json:"max_categories_onehot"`
}

// BinningRule describes how one column is binned
type BinningRule struct {
	Method     string    `json:"method"` // equal_width, equal_frequency, custom
	Bins       int       `json:"bins"`
	CustomBins []float64 `json:"custom_bins,omitempty"`
}

// BinningOptions configures stage 10 (binning)
type BinningOptions struct {
	Rules map[string]BinningRule `json:"binning_rules"`
}

// FeatureOptions configures stage 11 (feature engineering)
type FeatureOptions struct {
	ExtractDateFeatures bool `json:"extract_date_features"`
	ExtractTextFeatures bool `json:"extract_text_features"`
}

// AggregationOptions configures stage 12 (group-by transform).
// GroupRules maps a group-by column to {aggregated column: aggregate func}.
type AggregationOptions struct {
	GroupRules map[string]map[string]string `json:"group_rules"`
}

// UnitRule describes an explicit per-column unit conversion
type UnitRule struct {
	Type       string `json:"type"`       // distance, weight, temperature, volume
	Conversion string `json:"conversion"` // e.g. km_to_miles
}

// UnitConversionOptions configures stage 14 (unit conversion)
type UnitConversionOptions struct {
	Rules           map[string]UnitRule `json:"conversion_rules"`
	AutoDetectUnits bool                `json:"auto_detect_units"`
}

// CleaningOptions is the full pipeline configuration: one enable flag per
// stage plus nested per-stage options. Unknown config keys are ignored by the
// loaders, not treated as errors.
type CleaningOptions struct {
	HandleMissing         bool `json:"handle_missing"`
	CorrectTypes          bool `json:"correct_types"`
	RemoveDuplicates      bool `json:"remove_duplicates"`
	HandleOutliers        bool `json:"handle_outliers"`
	Standardize           bool `json:"standardize"`
	CleanText             bool `json:"clean_text"`
	ValidateIntegrity     bool `json:"validate_integrity"`
	FixFormats            bool `json:"fix_formats"`
	EncodeCategorical     bool `json:"encode_categorical"`
	CreateBins            bool `json:"create_bins"`
	FeatureEngineering    bool `json:"feature_engineering"`
	AggregateTransform    bool `json:"aggregate_transform"`
	CleanGeospatial       bool `json:"clean_geospatial"`
	HandleUnitConversions bool `json:"handle_unit_conversions"`

	Missing        MissingOptions        `json:"missing_config"`
	Duplicates     DuplicateOptions      `json:"duplicate_config"`
	Outliers       OutlierOptions        `json:"outlier_config"`
	Scaling        ScalingOptions        `json:"scaling_config"`
	Text           TextOptions           `json:"text_config"`
	Validation     ValidationOptions     `json:"validation_config"`
	Encoding       EncodingOptions       `json:"encoding_config"`
	Binning        BinningOptions        `json:"binning_config"`
	Features       FeatureOptions        `json:"feature_config"`
	Aggregation    AggregationOptions    `json:"aggregation_config"`
	UnitConversion UnitConversionOptions `json:"unit_conversion_config"`
}

// DefaultCleaningOptions returns the documented stage defaults
func DefaultCleaningOptions() *CleaningOptions {
	return &CleaningOptions{
		HandleMissing:     true,
		CorrectTypes:      true,
		RemoveDuplicates:  true,
		HandleOutliers:    true,
		CleanText:         true,
		ValidateIntegrity: true,
		FixFormats:        true,
		Missing: MissingOptions{
			ColumnMissingThreshold: 0.5,
			RowMissingThreshold:    0.7,
			ImputationStrategy:     "smart",
			KNNNeighbors:           5,
		},
		Outliers: OutlierOptions{
			Method: "iqr",
			Action: "cap",
		},
		Scaling: ScalingOptions{
			Method: "standard",
		},
		Text: TextOptions{
			NormalizeCase:     true,
			RemoveExtraSpaces: true,
			StandardizeValues: true,
		},
		Validation: ValidationOptions{
			FixDateLogic: true,
		},
		Encoding: EncodingOptions{
			Method:              "onehot",
			MaxCategoriesOneHot: 10,
		},
		Features: FeatureOptions{
			ExtractDateFeatures: true,
		},
	}
}

// CleaningRequest represents a request to run the cleaning pipeline
type CleaningRequest struct {
	// Input: exactly one of Path, CSVData, or Records must be set
	Path    string
	CSVData string
	Records []map[string]any

	Options *CleaningOptions

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string

	ConfigPath string

	ExplicitFlags map[string]bool
}

// CleaningResponse represents the result of one pipeline run
type CleaningResponse struct {
	Summary CleaningSummary    `json:"summary" yaml:"summary"`
	Log     []CleaningLogEntry `json:"cleaning_log" yaml:"cleaning_log"`

	// CleanedCSV holds the full cleaned table serialized as CSV
	CleanedCSV string       `json:"cleaned_csv,omitempty" yaml:"cleaned_csv,omitempty"`
	Preview    *DataPreview `json:"data_preview,omitempty" yaml:"data_preview,omitempty"`

	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// CleaningService defines the core business logic for the cleaning pipeline
type CleaningService interface {
	Clean(ctx context.Context, req CleaningRequest) (*CleaningResponse, error)
}

// CleaningFormatter formats cleaning responses for output
type CleaningFormatter interface {
	Format(response *CleaningResponse, format OutputFormat) (string, error)
	Write(response *CleaningResponse, format OutputFormat, writer io.Writer) error
}
