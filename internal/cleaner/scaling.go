package cleaner

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

// standardize is stage 5: standard/minmax/robust scaling, or a log1p or
// Box-Cox transform for skewed data. Non-positive columns are shifted
// positive before log/Box-Cox; Box-Cox falls back to log1p when its MLE
// search fails.
func (p *Pipeline) standardize(ds *dataset.Dataset) *dataset.Dataset {
	method := p.opts.Scaling.Method
	if method == "" {
		method = "standard"
	}

	var numericCols []*dataset.Column
	for _, col := range ds.Columns() {
		if col.Type == dataset.TypeFloat {
			numericCols = append(numericCols, col)
		}
	}
	if len(numericCols) == 0 {
		return ds
	}

	switch method {
	case "log":
		for _, col := range numericCols {
			applyLog1p(col)
		}
		p.logOperation(
			"transform_log",
			fmt.Sprintf("Applied log transform to %d numeric columns", len(numericCols)),
			ds.NumRows(), ds.NumRows(),
		)
	case "boxcox":
		for _, col := range numericCols {
			applyBoxCox(col)
		}
		p.logOperation(
			"transform_boxcox",
			fmt.Sprintf("Applied Box-Cox transform to %d numeric columns", len(numericCols)),
			ds.NumRows(), ds.NumRows(),
		)
	default:
		for _, col := range numericCols {
			scaleColumn(col, method)
		}
		p.logOperation(
			fmt.Sprintf("scale_%s", method),
			fmt.Sprintf("Applied %s scaling to %d numeric columns", method, len(numericCols)),
			ds.NumRows(), ds.NumRows(),
		)
	}
	return ds
}

func scaleColumn(col *dataset.Column, method string) {
	values := col.Floats()
	if len(values) == 0 {
		return
	}

	var transform func(float64) float64
	switch method {
	case "minmax":
		minV, maxV := values[0], values[0]
		for _, v := range values {
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}
		span := maxV - minV
		if span == 0 {
			span = 1
		}
		transform = func(v float64) float64 { return (v - minV) / span }
	case "robust":
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		median := interpolatedQuantile(sorted, 0.5)
		iqr := interpolatedQuantile(sorted, 0.75) - interpolatedQuantile(sorted, 0.25)
		if iqr == 0 {
			iqr = 1
		}
		transform = func(v float64) float64 { return (v - median) / iqr }
	default:
		m := stat.Mean(values, nil)
		sd := popStd(values, m)
		if sd == 0 {
			sd = 1
		}
		transform = func(v float64) float64 { return (v - m) / sd }
	}

	for i, cell := range col.Cells {
		if v, ok := cell.Float64(); ok {
			col.Cells[i] = dataset.Float(transform(v))
		}
	}
}

// applyLog1p shifts the column positive if needed, then applies log(1+x)
func applyLog1p(col *dataset.Column) {
	shift := positiveShift(col)
	for i, cell := range col.Cells {
		if v, ok := cell.Float64(); ok {
			col.Cells[i] = dataset.Float(math.Log1p(v + shift))
		}
	}
}

// positiveShift returns the offset required to make every value positive
func positiveShift(col *dataset.Column) float64 {
	values := col.Floats()
	if len(values) == 0 {
		return 0
	}
	minV := values[0]
	for _, v := range values {
		minV = math.Min(minV, v)
	}
	if minV <= 0 {
		return -minV + 1
	}
	return 0
}

// applyBoxCox transforms the column with the lambda maximizing the Box-Cox
// log-likelihood, searched by golden section over [-5, 5]. Degenerate
// columns fall back to log1p.
func applyBoxCox(col *dataset.Column) {
	shift := positiveShift(col)
	var values []float64
	for _, cell := range col.Cells {
		if v, ok := cell.Float64(); ok {
			values = append(values, v+shift)
		}
	}
	if len(values) < 3 {
		applyLog1p(col)
		return
	}

	lambda, ok := boxCoxLambda(values)
	if !ok {
		applyLog1p(col)
		return
	}

	for i, cell := range col.Cells {
		if v, ok := cell.Float64(); ok {
			col.Cells[i] = dataset.Float(boxCoxTransform(v+shift, lambda))
		}
	}
}

func boxCoxTransform(x, lambda float64) float64 {
	if lambda == 0 {
		return math.Log(x)
	}
	return (math.Pow(x, lambda) - 1) / lambda
}

// boxCoxLambda maximizes the profile log-likelihood by golden-section search
func boxCoxLambda(values []float64) (float64, bool) {
	const (
		lo        = -5.0
		hi        = 5.0
		tolerance = 1e-4
		phi       = 0.6180339887498949
	)
	a, b := lo, hi
	c := b - phi*(b-a)
	d := a + phi*(b-a)
	fc := boxCoxLogLikelihood(values, c)
	fd := boxCoxLogLikelihood(values, d)
	if math.IsNaN(fc) || math.IsNaN(fd) {
		return 0, false
	}
	for b-a > tolerance {
		if fc > fd {
			b, d, fd = d, c, fc
			c = b - phi*(b-a)
			fc = boxCoxLogLikelihood(values, c)
		} else {
			a, c, fc = c, d, fd
			d = a + phi*(b-a)
			fd = boxCoxLogLikelihood(values, d)
		}
		if math.IsNaN(fc) || math.IsNaN(fd) {
			return 0, false
		}
	}
	return (a + b) / 2, true
}

func boxCoxLogLikelihood(values []float64, lambda float64) float64 {
	n := float64(len(values))
	transformed := make([]float64, len(values))
	var logSum float64
	for i, v := range values {
		transformed[i] = boxCoxTransform(v, lambda)
		logSum += math.Log(v)
	}
	m := stat.Mean(transformed, nil)
	variance := 0.0
	for _, t := range transformed {
		d := t - m
		variance += d * d
	}
	variance /= n
	if variance <= 0 {
		return math.NaN()
	}
	return -n/2*math.Log(variance) + (lambda-1)*logSum
}

func popStd(values []float64, m float64) float64 {
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}

