package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
)

// EDAType identifies which analysis strategy a dataset routes to
type EDAType string

const (
	EDATypeBasic      EDAType = "basic"
	EDATypeComplex    EDAType = "complex"
	EDATypeTimeseries EDAType = "timeseries"
	EDATypeGeospatial EDAType = "geospatial"
	EDATypeTextual    EDAType = "textual"
)

// DatasetCharacteristics holds the dataset-level metrics the router decides on.
// Recomputed per analysis run, never cached across invocations.
type DatasetCharacteristics struct {
	Rows                   int     `json:"rows" yaml:"rows"`
	Columns                int     `json:"columns" yaml:"columns"`
	NumericColumns         int     `json:"numeric_columns" yaml:"numeric_columns"`
	CategoricalColumns     int     `json:"categorical_columns" yaml:"categorical_columns"`
	TextColumns            int     `json:"text_columns" yaml:"text_columns"`
	DatetimeColumns        int     `json:"datetime_columns" yaml:"datetime_columns"`
	GeospatialColumns      int     `json:"geospatial_columns" yaml:"geospatial_columns"`
	HighCardinalityColumns int     `json:"high_cardinality_columns" yaml:"high_cardinality_columns"`
	MissingPercentage      float64 `json:"missing_percentage" yaml:"missing_percentage"`
	DuplicatePercentage    float64 `json:"duplicate_percentage" yaml:"duplicate_percentage"`
	IsTimeSeries           bool    `json:"is_time_series" yaml:"is_time_series"`
	IsHighDimensional      bool    `json:"is_high_dimensional" yaml:"is_high_dimensional"`
	IsImbalanced           bool    `json:"is_imbalanced" yaml:"is_imbalanced"`
	HasTargetVariable      bool    `json:"has_target_variable" yaml:"has_target_variable"`
	ComplexityScore        float64 `json:"complexity_score" yaml:"complexity_score"`
}

// AnalysisSummary describes why an EDA type was chosen and what to do next
type AnalysisSummary struct {
	RecommendedEDAType      EDAType  `json:"recommended_eda_type" yaml:"recommended_eda_type"`
	ComplexityScore         float64  `json:"complexity_score" yaml:"complexity_score"`
	KeyCharacteristics      []string `json:"key_characteristics" yaml:"key_characteristics"`
	AnalysisRecommendations []string `json:"analysis_recommendations" yaml:"analysis_recommendations"`
}

// AnalysisMetadata is the eda_metadata block attached to every report
type AnalysisMetadata struct {
	RunID           string                 `json:"run_id" yaml:"run_id"`
	EDAType         EDAType                `json:"eda_type" yaml:"eda_type"`
	Characteristics DatasetCharacteristics `json:"characteristics" yaml:"characteristics"`
	Timestamp       string                 `json:"timestamp" yaml:"timestamp"`
	AnalysisSummary AnalysisSummary        `json:"analysis_summary" yaml:"analysis_summary"`
}

// DataPreview is a small head-of-table excerpt included in responses
type DataPreview struct {
	Headers   []string         `json:"headers" yaml:"headers"`
	Rows      []map[string]any `json:"rows" yaml:"rows"`
	TotalRows int              `json:"totalRows" yaml:"totalRows"`
}

// AnalysisRequest represents a request for dataset analysis
type AnalysisRequest struct {
	// Input: exactly one of Path, CSVData, or Records must be set
	Path    string
	CSVData string
	Records []map[string]any

	// Optional target column for imbalance/feature-importance analysis
	TargetColumn string

	// Run the cleaning pipeline before analysis
	CleanFirst      bool
	CleaningOptions *CleaningOptions

	// Ask the external LLM collaborator for domain classification and insights
	WithDomainDetection bool
	WithAIInsights      bool

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
	ShowDetails  bool

	// Configuration
	ConfigPath string

	// Track which flags were explicitly set on the command line
	ExplicitFlags map[string]bool
}

// AnalysisResponse represents the complete analysis result.
// Results maps analysis-step names to step-specific nested structures; a step
// that could not run holds a {"message": ...} or {"error": ...} stub instead.
type AnalysisResponse struct {
	EDAType         EDAType                `json:"eda_type" yaml:"eda_type"`
	Characteristics DatasetCharacteristics `json:"characteristics" yaml:"characteristics"`
	Results         map[string]any         `json:"results" yaml:"results"`
	Metadata        AnalysisMetadata       `json:"eda_metadata" yaml:"eda_metadata"`

	Profile  map[string]any        `json:"profile,omitempty" yaml:"profile,omitempty"`
	Preview  *DataPreview          `json:"data_preview,omitempty" yaml:"data_preview,omitempty"`
	Domain   *DomainClassification `json:"domain,omitempty" yaml:"domain,omitempty"`
	Insights []Insight             `json:"insights,omitempty" yaml:"insights,omitempty"`

	CleaningLog []CleaningLogEntry `json:"cleaning_log,omitempty" yaml:"cleaning_log,omitempty"`

	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// FailureResult is the top-level payload returned when a dataset cannot be
// constructed at all
type FailureResult struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// AnalysisService defines the core business logic for dataset analysis
type AnalysisService interface {
	// Analyze routes the dataset through the appropriate EDA strategy
	Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResponse, error)
}

// DatasetReader defines the interface for locating and reading tabular input files
type DatasetReader interface {
	// CollectDataFiles finds CSV files in the given paths
	CollectDataFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// IsValidDataFile checks if a file looks like a supported tabular format
	IsValidDataFile(path string) bool
}

// AnalysisFormatter formats analysis responses for output
type AnalysisFormatter interface {
	Format(response *AnalysisResponse, format OutputFormat) (string, error)
	Write(response *AnalysisResponse, format OutputFormat, writer io.Writer) error
}

// ConfigurationLoader loads and merges analysis configuration
type ConfigurationLoader interface {
	LoadConfig(path string) (*AnalysisRequest, error)
	LoadDefaultConfig() *AnalysisRequest
	MergeConfig(base *AnalysisRequest, override *AnalysisRequest) *AnalysisRequest
}
