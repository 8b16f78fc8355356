package analyzer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantile(t *testing.T) {
	t.Run("LinearInterpolation", func(t *testing.T) {
		values := []float64{1, 2, 3, 4, 100}
		assert.InDelta(t, 2.0, quantile(values, 0.25), 1e-9)
		assert.InDelta(t, 3.0, quantile(values, 0.5), 1e-9)
		assert.InDelta(t, 4.0, quantile(values, 0.75), 1e-9)
	})

	t.Run("Extremes", func(t *testing.T) {
		values := []float64{5, 1, 3}
		assert.Equal(t, 1.0, quantile(values, 0))
		assert.Equal(t, 5.0, quantile(values, 1))
	})

	t.Run("SingleValue", func(t *testing.T) {
		assert.Equal(t, 7.0, quantile([]float64{7}, 0.5))
	})

	t.Run("EmptyIsNaN", func(t *testing.T) {
		assert.True(t, math.IsNaN(quantile(nil, 0.5)))
	})
}

func TestCorrSlices(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{2, 4, 6, 8, 10}
	assert.InDelta(t, 1.0, corrSlices(xs, ys), 1e-9)

	neg := []float64{10, 8, 6, 4, 2}
	assert.InDelta(t, -1.0, corrSlices(xs, neg), 1e-9)
}

func TestHistogram(t *testing.T) {
	edges, counts := histogram([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 5)

	assert.Len(t, edges, 6)
	assert.Len(t, counts, 5)

	total := 0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, 10, total)
	assert.Equal(t, 1.0, edges[0])
	assert.Equal(t, 10.0, edges[len(edges)-1])
}

func TestShapiroWilk(t *testing.T) {
	t.Run("TooFewValues", func(t *testing.T) {
		_, _, ok := shapiroWilk([]float64{1, 2})
		assert.False(t, ok)
	})

	t.Run("NearNormalSample", func(t *testing.T) {
		// Symmetric bell-ish sample
		values := []float64{-2.1, -1.5, -1.0, -0.6, -0.3, 0, 0.3, 0.6, 1.0, 1.5, 2.1}
		w, p, ok := shapiroWilk(values)
		assert.True(t, ok)
		assert.Greater(t, w, 0.9)
		assert.Greater(t, p, 0.05)
	})

	t.Run("HeavilySkewedSample", func(t *testing.T) {
		values := []float64{1, 1, 1, 1, 1, 1, 1, 2, 3, 5, 50, 400}
		w, _, ok := shapiroWilk(values)
		assert.True(t, ok)
		assert.Less(t, w, 0.7)
	})
}

func TestKMeansDeterminism(t *testing.T) {
	points := [][]float64{
		{0, 0}, {0.1, 0.2}, {0.2, 0.1},
		{5, 5}, {5.1, 5.2}, {5.2, 4.9},
	}

	first := kmeans(points, 2)
	second := kmeans(points, 2)

	assert.Equal(t, first.Labels, second.Labels)
	assert.InDelta(t, first.Inertia, second.Inertia, 1e-12)

	// The two obvious clusters separate
	assert.Equal(t, first.Labels[0], first.Labels[1])
	assert.Equal(t, first.Labels[3], first.Labels[4])
	assert.NotEqual(t, first.Labels[0], first.Labels[3])
}

func TestSilhouetteScore(t *testing.T) {
	points := [][]float64{
		{0, 0}, {0.1, 0}, {10, 10}, {10.1, 10},
	}
	labels := []int{0, 0, 1, 1}

	score := silhouetteScore(points, labels, 2)
	assert.Greater(t, score, 0.9)
}
