package analyzer

import (
	"fmt"
	"math"

	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

// basicSummaryStats produces dataset shape, column type counts, and per-column
// numeric/categorical summaries.
func basicSummaryStats(ds *dataset.Dataset) map[string]any {
	numericCols := numericColumns(ds)
	categoricalCols := stringColumns(ds)

	summary := map[string]any{
		"dataset_shape": map[string]any{
			"rows":    ds.NumRows(),
			"columns": ds.NumColumns(),
		},
		"column_types": map[string]any{
			"numeric":     len(numericCols),
			"categorical": len(categoricalCols),
			"datetime":    len(timeColumns(ds)),
		},
	}

	numericSummary := map[string]any{}
	for _, col := range numericCols {
		values := col.Floats()
		if len(values) == 0 {
			continue
		}
		minV, maxV := values[0], values[0]
		for _, v := range values {
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}
		numericSummary[col.Name] = map[string]any{
			"count": len(values),
			"mean":  finite(mean(values)),
			"std":   finite(stdDev(values)),
			"min":   finite(minV),
			"max":   finite(maxV),
			"q25":   finite(quantile(values, 0.25)),
			"q50":   finite(quantile(values, 0.50)),
			"q75":   finite(quantile(values, 0.75)),
		}
	}
	summary["numeric_summary"] = numericSummary

	categoricalSummary := map[string]any{}
	for _, col := range categoricalCols {
		counts := col.ValueCounts()
		entry := map[string]any{
			"unique_values":      col.UniqueCount(),
			"most_frequent":      nil,
			"most_frequent_count": 0,
		}
		if len(counts) > 0 {
			entry["most_frequent"] = counts[0].Value
			entry["most_frequent_count"] = counts[0].Count
			top := map[string]int{}
			for i, vc := range counts {
				if i >= 5 {
					break
				}
				top[vc.Value] = vc.Count
			}
			entry["top_5_values"] = top
		}
		categoricalSummary[col.Name] = entry
	}
	summary["categorical_summary"] = categoricalSummary

	return summary
}

func basicDataQuality(ds *dataset.Dataset) map[string]any {
	rows, cols := ds.NumRows(), ds.NumColumns()
	totalCells := rows * cols
	missingCells := ds.MissingCells()

	missingByColumn := map[string]int{}
	for _, col := range ds.Columns() {
		if n := col.MissingCount(); n > 0 {
			missingByColumn[col.Name] = n
		}
	}

	rowsWithMissing := 0
	for i := 0; i < rows; i++ {
		for _, col := range ds.Columns() {
			if col.Cells[i].IsNull() {
				rowsWithMissing++
				break
			}
		}
	}

	missingPct := 0.0
	if totalCells > 0 {
		missingPct = float64(missingCells) / float64(totalCells) * 100
	}
	dupes := ds.DuplicateCount()
	dupPct := 0.0
	if rows > 0 {
		dupPct = float64(dupes) / float64(rows) * 100
	}

	dataTypes := map[string]string{}
	memPerColumn := map[string]int{}
	var memTotal int
	for _, col := range ds.Columns() {
		dataTypes[col.Name] = col.Type.String()
		b := col.MemoryBytes()
		memPerColumn[col.Name] = b
		memTotal += b
	}

	return map[string]any{
		"missing_data": map[string]any{
			"total_missing_cells":  missingCells,
			"missing_percentage":   missingPct,
			"columns_with_missing": missingByColumn,
			"rows_with_missing":    rowsWithMissing,
		},
		"duplicates": map[string]any{
			"duplicate_rows":       dupes,
			"duplicate_percentage": dupPct,
		},
		"data_types": dataTypes,
		"memory_usage": map[string]any{
			"total_memory_mb":   float64(memTotal) / 1024 / 1024,
			"memory_per_column": memPerColumn,
		},
	}
}

func basicDistributions(ds *dataset.Dataset) map[string]any {
	distributions := map[string]any{}
	for _, col := range numericColumns(ds) {
		values := col.Floats()
		if len(values) == 0 {
			continue
		}
		skew := finiteOr(skewness(values), 0)
		kurt := finiteOr(exKurtosis(values), 0)

		var normality map[string]any
		if len(values) >= 3 && len(values) <= 5000 {
			if w, p, ok := shapiroWilk(values); ok {
				normality = map[string]any{
					"test":      "shapiro_wilk",
					"statistic": w,
					"p_value":   p,
					"is_normal": p > 0.05,
				}
			}
		}

		distributions[col.Name] = map[string]any{
			"skewness":          skew,
			"kurtosis":          kurt,
			"normality_test":    normality,
			"distribution_type": classifyDistribution(skew, kurt),
		}
	}
	return distributions
}

// classifyDistribution buckets a distribution by skewness and excess kurtosis
func classifyDistribution(skew, kurt float64) string {
	switch {
	case math.Abs(skew) < 0.5 && math.Abs(kurt) < 0.5:
		return "normal"
	case skew > 1:
		return "right_skewed"
	case skew < -1:
		return "left_skewed"
	case kurt > 1:
		return "heavy_tailed"
	case kurt < -1:
		return "light_tailed"
	default:
		return "moderately_skewed"
	}
}

func basicCorrelations(ds *dataset.Dataset) map[string]any {
	numericCols := numericColumns(ds)
	if len(numericCols) < 2 {
		return map[string]any{"message": "Insufficient numeric columns for correlation analysis"}
	}

	matrix := map[string]map[string]any{}
	var strong []map[string]any
	var absSum float64
	var absCount int

	for i, a := range numericCols {
		row := map[string]any{}
		for j, b := range numericCols {
			r := pairwiseCorrelation(a, b)
			if i == j {
				r = 1
			}
			row[b.Name] = finite(round3(r))
			if !math.IsNaN(r) {
				absSum += math.Abs(r)
				absCount++
			}
			if j > i && math.Abs(r) > 0.7 {
				strength := "strong positive"
				if r < 0 {
					strength = "strong negative"
				}
				strong = append(strong, map[string]any{
					"variable1":   a.Name,
					"variable2":   b.Name,
					"correlation": r,
					"strength":    strength,
				})
			}
		}
		matrix[a.Name] = row
	}

	avg := 0.0
	if absCount > 0 {
		avg = absSum / float64(absCount)
	}
	return map[string]any{
		"correlation_matrix":  matrix,
		"strong_correlations": strong,
		"average_correlation": avg,
	}
}

// basicVisualizations suggests charts: histograms for up to three numeric
// columns, bar charts for up to two categorical columns, and a correlation
// heatmap when at least three numeric columns exist.
func basicVisualizations(ds *dataset.Dataset) []map[string]any {
	var visualizations []map[string]any
	numericCols := numericColumns(ds)
	categoricalCols := stringColumns(ds)

	for i, col := range numericCols {
		if i >= 3 {
			break
		}
		visualizations = append(visualizations, map[string]any{
			"type":        "histogram",
			"title":       fmt.Sprintf("Distribution of %s", col.Name),
			"data":        histogramData(col.Floats(), 10),
			"description": fmt.Sprintf("Shows the frequency distribution of %s", col.Name),
		})
	}

	for i, col := range categoricalCols {
		if i >= 2 {
			break
		}
		counts := col.ValueCounts()
		var categories []string
		var values []int
		for j, vc := range counts {
			if j >= 10 {
				break
			}
			categories = append(categories, vc.Value)
			values = append(values, vc.Count)
		}
		visualizations = append(visualizations, map[string]any{
			"type":  "bar",
			"title": fmt.Sprintf("Top Values in %s", col.Name),
			"data": map[string]any{
				"categories": categories,
				"values":     values,
			},
			"description": fmt.Sprintf("Shows the most frequent values in %s", col.Name),
		})
	}

	if len(numericCols) >= 3 {
		var labels []string
		var matrix [][]any
		for _, a := range numericCols {
			labels = append(labels, a.Name)
			var row []any
			for _, b := range numericCols {
				r := pairwiseCorrelation(a, b)
				if a == b {
					r = 1
				}
				row = append(row, finite(round3(r)))
			}
			matrix = append(matrix, row)
		}
		visualizations = append(visualizations, map[string]any{
			"type":  "heatmap",
			"title": "Correlation Matrix",
			"data": map[string]any{
				"matrix": matrix,
				"labels": labels,
			},
			"description": "Shows correlations between numeric variables",
		})
	}

	return visualizations
}

func histogramData(values []float64, bins int) map[string]any {
	if len(values) == 0 {
		return map[string]any{"bins": []string{}, "counts": []int{}}
	}
	edges, counts := histogram(values, bins)
	labels := make([]string, len(counts))
	for i := range counts {
		labels[i] = fmt.Sprintf("%.2f-%.2f", edges[i], edges[i+1])
	}
	return map[string]any{"bins": labels, "counts": counts}
}

func basicInsights(ds *dataset.Dataset, targetColumn string) []map[string]any {
	insights := []map[string]any{
		{
			"type":           "overview",
			"title":          "Dataset Overview",
			"description":    fmt.Sprintf("Dataset contains %d rows and %d columns", ds.NumRows(), ds.NumColumns()),
			"recommendation": "Start with data quality checks and basic visualizations",
		},
	}

	totalCells := ds.NumRows() * ds.NumColumns()
	if totalCells > 0 {
		missingPct := float64(ds.MissingCells()) / float64(totalCells) * 100
		if missingPct > 5 {
			insights = append(insights, map[string]any{
				"type":           "data_quality",
				"title":          "Missing Data Detected",
				"description":    fmt.Sprintf("%.1f%% of data points are missing", missingPct),
				"recommendation": "Consider imputation strategies or removal of sparse columns",
			})
		}
	}

	numericCols := numericColumns(ds)
	if len(numericCols) >= 2 {
		maxCorr := 0.0
		for i := range numericCols {
			for j := i + 1; j < len(numericCols); j++ {
				r := math.Abs(pairwiseCorrelation(numericCols[i], numericCols[j]))
				if !math.IsNaN(r) && r > maxCorr {
					maxCorr = r
				}
			}
		}
		if maxCorr > 0.8 {
			insights = append(insights, map[string]any{
				"type":           "correlation",
				"title":          "High Correlation Detected",
				"description":    fmt.Sprintf("Maximum correlation between variables is %.2f", maxCorr),
				"recommendation": "Consider feature selection to remove redundant variables",
			})
		}
	}

	return insights
}

func numericColumns(ds *dataset.Dataset) []*dataset.Column {
	var cols []*dataset.Column
	for _, col := range ds.Columns() {
		if col.Type == dataset.TypeFloat {
			cols = append(cols, col)
		}
	}
	return cols
}

func stringColumns(ds *dataset.Dataset) []*dataset.Column {
	var cols []*dataset.Column
	for _, col := range ds.Columns() {
		if col.Type == dataset.TypeString {
			cols = append(cols, col)
		}
	}
	return cols
}

func timeColumns(ds *dataset.Dataset) []*dataset.Column {
	var cols []*dataset.Column
	for _, col := range ds.Columns() {
		if col.Type == dataset.TypeTime {
			cols = append(cols, col)
		}
	}
	return cols
}
