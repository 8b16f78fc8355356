package analyzer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ajith-oo7/Data-lysis/domain"
)

func TestEngineStrategyResults(t *testing.T) {
	t.Run("TimeseriesDatasetGetsTemporalSteps", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("recorded,sales\n")
		for i := 1; i <= 12; i++ {
			fmt.Fprintf(&b, "2024-%02d-01,%d\n", i, 100+i*3)
		}
		ds := mustDataset(t, b.String())
		engine := NewEngine()

		edaType, chars, results := engine.Analyze(ds, "")

		assert.Equal(t, domain.EDATypeTimeseries, edaType)
		assert.True(t, chars.IsTimeSeries)
		for _, key := range []string{
			"temporal_patterns",
			"seasonality_analysis",
			"trend_analysis",
			"time_series_decomposition",
			"autocorrelation",
		} {
			assert.Contains(t, results, key)
		}
		assert.Equal(t, string(domain.EDATypeTimeseries), results["eda_type"])
		assert.Contains(t, results, "eda_metadata")
	})

	t.Run("TextualDatasetGetsTextSteps", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("review,reply\n")
		for i := 0; i < 6; i++ {
			fmt.Fprintf(&b, "this product exceeded every expectation I had going in %d,", i)
			fmt.Fprintf(&b, "thank you for the detailed feedback on your order number %d\n", i)
		}
		ds := mustDataset(t, b.String())
		engine := NewEngine()

		edaType, chars, results := engine.Analyze(ds, "")

		assert.Equal(t, domain.EDATypeTextual, edaType)
		assert.Equal(t, 2, chars.TextColumns)
		for _, key := range []string{
			"text_statistics",
			"text_patterns",
			"vocabulary_analysis",
			"text_quality",
		} {
			assert.Contains(t, results, key)
		}
		assert.Equal(t, string(domain.EDATypeTextual), results["eda_type"])
	})

	t.Run("WideNumericDatasetGetsComplexSteps", func(t *testing.T) {
		const cols = 16
		var b strings.Builder
		for i := 0; i < cols; i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "f%02d", i)
		}
		b.WriteByte('\n')
		for row := 0; row < 8; row++ {
			for i := 0; i < cols; i++ {
				if i > 0 {
					b.WriteByte(',')
				}
				fmt.Fprintf(&b, "%d.%d", row*cols+i, i)
			}
			b.WriteByte('\n')
		}
		ds := mustDataset(t, b.String())
		engine := NewEngine()

		edaType, chars, results := engine.Analyze(ds, "")

		assert.Equal(t, domain.EDATypeComplex, edaType)
		assert.True(t, chars.IsHighDimensional)
		for _, key := range []string{
			"multivariate_analysis",
			"dimensionality_reduction",
			"feature_importance",
			"statistical_tests",
			"clustering_analysis",
		} {
			assert.Contains(t, results, key)
		}
		assert.Equal(t, string(domain.EDATypeComplex), results["eda_type"])
	})
}
