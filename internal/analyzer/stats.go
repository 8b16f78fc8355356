// Package analyzer implements the EDA core: dataset characteristics, the
// EDA-type router, and the five analysis strategies.
package analyzer

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

// quantile computes the p-quantile with linear interpolation between order
// statistics (the convention the reference statistics stack uses, which
// differs from gonum's empirical CDF conventions). Input need not be sorted.
func quantile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return quantileSorted(sorted, p)
}

func quantileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	h := p * float64(n-1)
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	if lo == hi {
		return sorted[lo]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}

func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}

func skewness(values []float64) float64 {
	if len(values) < 3 {
		return 0
	}
	return stat.Skew(values, nil)
}

func exKurtosis(values []float64) float64 {
	if len(values) < 4 {
		return 0
	}
	return stat.ExKurtosis(values, nil)
}

// pairwiseCorrelation computes the Pearson correlation over rows where both
// cells are present
func pairwiseCorrelation(a, b *dataset.Column) float64 {
	var xs, ys []float64
	for i := 0; i < len(a.Cells) && i < len(b.Cells); i++ {
		x, okX := a.Cells[i].Float64()
		y, okY := b.Cells[i].Float64()
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

// corrSlices is pairwiseCorrelation over plain slices of equal length
func corrSlices(xs, ys []float64) float64 {
	if len(xs) < 2 || len(xs) != len(ys) {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

// histogram bins values into equal-width bins, returning edges and counts
func histogram(values []float64, bins int) (edges []float64, counts []int) {
	if len(values) == 0 || bins < 1 {
		return nil, nil
	}
	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	edges = make([]float64, bins+1)
	counts = make([]int, bins)
	width := (maxV - minV) / float64(bins)
	if width == 0 {
		width = 1
	}
	for i := range edges {
		edges[i] = minV + float64(i)*width
	}
	for _, v := range values {
		idx := int((v - minV) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}
	return edges, counts
}

// standardized returns z-scored copies of the input columns (population std),
// dropping rows with any missing value. Returns row-major points.
func standardized(cols []*dataset.Column) [][]float64 {
	if len(cols) == 0 {
		return nil
	}
	n := cols[0].Len()
	var rows [][]float64
	for i := 0; i < n; i++ {
		point := make([]float64, len(cols))
		ok := true
		for j, col := range cols {
			v, present := col.Cells[i].Float64()
			if !present {
				ok = false
				break
			}
			point[j] = v
		}
		if ok {
			rows = append(rows, point)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	for j := range cols {
		var col []float64
		for _, r := range rows {
			col = append(col, r[j])
		}
		m := mean(col)
		sd := popStdDev(col, m)
		if sd == 0 {
			sd = 1
		}
		for _, r := range rows {
			r[j] = (r[j] - m) / sd
		}
	}
	return rows
}

func popStdDev(values []float64, m float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}

// finite replaces NaN/Inf with nil so results always serialize cleanly
func finite(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// finiteOr replaces NaN/Inf with a fallback value
func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
