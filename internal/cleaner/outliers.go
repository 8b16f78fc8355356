package cleaner

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

// handleOutliers is stage 4: per numeric column, compute bounds via the IQR
// rule (Q1-1.5*IQR, Q3+1.5*IQR) or the z-score rule (mean +/- 3*std), then
// remove the offending rows, cap values to the bounds, or keep them.
func (p *Pipeline) handleOutliers(ds *dataset.Dataset) *dataset.Dataset {
	cfg := p.opts.Outliers
	method := cfg.Method
	if method == "" {
		method = "iqr"
	}
	action := cfg.Action
	if action == "" {
		action = "cap"
	}

	for _, col := range ds.Columns() {
		if col.Type != dataset.TypeFloat {
			continue
		}
		values := col.Floats()
		if len(values) < 2 {
			continue
		}

		var lower, upper float64
		switch method {
		case "zscore":
			m := stat.Mean(values, nil)
			sd := stat.StdDev(values, nil)
			lower, upper = m-3*sd, m+3*sd
		default:
			q1, q3 := interpolatedQuartiles(values)
			iqr := q3 - q1
			lower, upper = q1-1.5*iqr, q3+1.5*iqr
		}

		outliers := 0
		for _, cell := range col.Cells {
			if v, ok := cell.Float64(); ok && (v < lower || v > upper) {
				outliers++
			}
		}
		if outliers == 0 {
			continue
		}

		switch action {
		case "remove":
			keep := make([]bool, ds.NumRows())
			for i, cell := range col.Cells {
				v, ok := cell.Float64()
				keep[i] = !ok || (v >= lower && v <= upper)
			}
			ds.FilterRows(keep)
		case "cap":
			for i, cell := range col.Cells {
				if v, ok := cell.Float64(); ok {
					if v < lower {
						col.Cells[i] = dataset.Float(lower)
					} else if v > upper {
						col.Cells[i] = dataset.Float(upper)
					}
				}
			}
		}

		p.logOperation(
			fmt.Sprintf("handle_outliers_%s", action),
			fmt.Sprintf("Handled %d outliers in %s using %s method", outliers, col.Name, method),
			ds.NumRows(), ds.NumRows(),
		)
	}
	return ds
}

// interpolatedQuartiles computes Q1/Q3 with linear interpolation between
// order statistics, matching the quantile convention of the analysis side.
func interpolatedQuartiles(values []float64) (q1, q3 float64) {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return interpolatedQuantile(sorted, 0.25), interpolatedQuantile(sorted, 0.75)
}

func interpolatedQuantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := p * float64(n-1)
	lo := int(h)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
