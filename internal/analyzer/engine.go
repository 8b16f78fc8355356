package analyzer

import (
	"fmt"
	"time"

	"github.com/Ajith-oo7/Data-lysis/domain"
	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

// Engine routes a dataset to its analysis strategy and assembles the result
// map. Strategies layer on the basic pipeline so every report carries the
// same baseline blocks.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Analyze computes characteristics, routes to a strategy, runs its steps, and
// attaches metadata. Individual step failures degrade to inline error stubs.
func (e *Engine) Analyze(ds *dataset.Dataset, targetColumn string) (domain.EDAType, domain.DatasetCharacteristics, map[string]any) {
	chars := AnalyzeCharacteristics(ds, targetColumn)
	edaType := DetermineEDAType(chars)

	results := e.runBasic(ds, targetColumn)
	switch edaType {
	case domain.EDATypeComplex:
		results["multivariate_analysis"] = runStep(func() any { return multivariateAnalysis(ds, targetColumn) })
		results["dimensionality_reduction"] = runStep(func() any { return dimensionalityReduction(ds) })
		results["feature_importance"] = runStep(func() any { return featureImportance(ds, targetColumn) })
		results["statistical_tests"] = runStep(func() any { return statisticalTests(ds, targetColumn) })
		results["clustering_analysis"] = runStep(func() any { return clusteringAnalysis(ds) })
	case domain.EDATypeTimeseries:
		results["temporal_patterns"] = runStep(func() any { return temporalPatterns(ds) })
		results["seasonality_analysis"] = runStep(func() any { return seasonalityAnalysis(ds) })
		results["trend_analysis"] = runStep(func() any { return trendAnalysis(ds) })
		results["time_series_decomposition"] = runStep(func() any { return timeSeriesDecomposition(ds) })
		results["autocorrelation"] = runStep(func() any { return autocorrelationAnalysis(ds) })
	case domain.EDATypeGeospatial:
		results["spatial_distribution"] = runStep(func() any { return spatialDistribution(ds) })
		results["geographic_patterns"] = runStep(func() any { return geographicPatterns(ds) })
		results["spatial_clustering"] = runStep(func() any { return spatialClustering(ds) })
		results["coordinate_validation"] = runStep(func() any { return coordinateValidation(ds) })
	case domain.EDATypeTextual:
		results["text_statistics"] = runStep(func() any { return textStatistics(ds) })
		results["text_patterns"] = runStep(func() any { return textPatterns(ds) })
		results["vocabulary_analysis"] = runStep(func() any { return vocabularyAnalysis(ds) })
		results["text_quality"] = runStep(func() any { return textQuality(ds) })
	}
	results["eda_type"] = string(edaType)

	results["eda_metadata"] = map[string]any{
		"eda_type":         string(edaType),
		"characteristics":  chars,
		"timestamp":        time.Now().Format(time.RFC3339),
		"analysis_summary": analysisSummary(edaType, chars),
	}

	return edaType, chars, results
}

func (e *Engine) runBasic(ds *dataset.Dataset, targetColumn string) map[string]any {
	return map[string]any{
		"eda_type":           string(domain.EDATypeBasic),
		"summary_statistics": runStep(func() any { return basicSummaryStats(ds) }),
		"data_quality":       runStep(func() any { return basicDataQuality(ds) }),
		"distributions":      runStep(func() any { return basicDistributions(ds) }),
		"correlations":       runStep(func() any { return basicCorrelations(ds) }),
		"visualizations":     runStep(func() any { return basicVisualizations(ds) }),
		"insights":           runStep(func() any { return basicInsights(ds, targetColumn) }),
	}
}

// runStep isolates a single analysis step: a panic becomes an inline error
// stub instead of failing the report.
func runStep(fn func() any) (result any) {
	defer func() {
		if r := recover(); r != nil {
			result = map[string]any{"error": fmt.Sprintf("Analysis step failed: %v", r)}
		}
	}()
	return fn()
}

// Summary builds the routing summary attached to report metadata.
func (e *Engine) Summary(edaType domain.EDAType, chars domain.DatasetCharacteristics) domain.AnalysisSummary {
	return analysisSummary(edaType, chars)
}

func analysisSummary(edaType domain.EDAType, chars domain.DatasetCharacteristics) domain.AnalysisSummary {
	return domain.AnalysisSummary{
		RecommendedEDAType:      edaType,
		ComplexityScore:         chars.ComplexityScore,
		KeyCharacteristics:      keyCharacteristics(chars),
		AnalysisRecommendations: recommendations(edaType),
	}
}

func keyCharacteristics(c domain.DatasetCharacteristics) []string {
	var out []string
	if c.IsHighDimensional {
		out = append(out, fmt.Sprintf("High-dimensional data (%d features)", c.Columns))
	}
	if c.IsTimeSeries {
		out = append(out, "Time series data detected")
	}
	if c.GeospatialColumns > 0 {
		out = append(out, fmt.Sprintf("Geospatial data (%d geo columns)", c.GeospatialColumns))
	}
	if c.TextColumns > 0 {
		out = append(out, fmt.Sprintf("Text data (%d text columns)", c.TextColumns))
	}
	if c.MissingPercentage > 15 {
		out = append(out, fmt.Sprintf("High missing data (%.1f%%)", c.MissingPercentage))
	}
	if c.IsImbalanced {
		out = append(out, "Imbalanced target variable")
	}
	return out
}

func recommendations(edaType domain.EDAType) []string {
	switch edaType {
	case domain.EDATypeComplex:
		return []string{
			"Perform dimensionality reduction to understand feature relationships",
			"Analyze multivariate interactions and feature importance",
			"Consider advanced statistical tests and clustering",
		}
	case domain.EDATypeTimeseries:
		return []string{
			"Analyze temporal patterns and trends",
			"Check for seasonality and cyclical behavior",
			"Examine autocorrelation and time dependencies",
		}
	case domain.EDATypeGeospatial:
		return []string{
			"Visualize spatial distribution patterns",
			"Analyze geographic clustering and hotspots",
			"Validate coordinate data quality",
		}
	case domain.EDATypeTextual:
		return []string{
			"Analyze text length and vocabulary diversity",
			"Examine common patterns and themes",
			"Check text quality and preprocessing needs",
		}
	default:
		return []string{
			"Focus on data quality checks and basic relationships",
			"Examine distributions and simple correlations",
			"Identify obvious patterns and outliers",
		}
	}
}
