package cleaner

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

const missingIndicatorSuffix = "_was_missing"

// handleMissing is stage 1: optional was-missing indicators, dropping sparse
// columns and rows, then imputation (mean/median/smart for numeric, mode for
// strings, forward-then-backward fill for datetimes), with an optional KNN
// pass over the numeric columns.
func (p *Pipeline) handleMissing(ds *dataset.Dataset) *dataset.Dataset {
	cfg := p.opts.Missing
	rowsBefore := ds.NumRows()

	if cfg.CreateMissingIndicators {
		for _, col := range ds.Columns() {
			if col.MissingCount() == 0 {
				continue
			}
			if strings.HasSuffix(col.Name, missingIndicatorSuffix) {
				continue
			}
			indicator := &dataset.Column{
				Name: col.Name + missingIndicatorSuffix,
				Type: dataset.TypeFloat,
			}
			for _, cell := range col.Cells {
				if cell.IsNull() {
					indicator.Cells = append(indicator.Cells, dataset.Float(1))
				} else {
					indicator.Cells = append(indicator.Cells, dataset.Float(0))
				}
			}
			ds.AddColumn(indicator)
		}
	}

	colThreshold := cfg.ColumnMissingThreshold
	if colThreshold == 0 {
		colThreshold = 0.5
	}
	var dropped []string
	for _, col := range ds.Columns() {
		if strings.HasSuffix(col.Name, missingIndicatorSuffix) {
			continue
		}
		if ds.NumRows() == 0 {
			break
		}
		missingPct := float64(col.MissingCount()) / float64(ds.NumRows())
		if missingPct > colThreshold {
			dropped = append(dropped, col.Name)
		}
	}
	for _, name := range dropped {
		ds.DropColumn(name)
	}
	if len(dropped) > 0 {
		p.logOperation(
			"remove_missing_columns",
			fmt.Sprintf("Removed columns with >%.0f%% missing: %v", colThreshold*100, dropped),
			rowsBefore, ds.NumRows(),
		)
	}

	rowThreshold := cfg.RowMissingThreshold
	if rowThreshold == 0 {
		rowThreshold = 0.7
	}
	if ds.NumColumns() > 0 {
		keep := make([]bool, ds.NumRows())
		for i := range keep {
			missing := 0
			for _, col := range ds.Columns() {
				if col.Cells[i].IsNull() {
					missing++
				}
			}
			keep[i] = float64(missing)/float64(ds.NumColumns()) <= rowThreshold
		}
		ds.FilterRows(keep)
	}
	if removed := rowsBefore - ds.NumRows(); removed > 0 {
		p.logOperation(
			"remove_missing_rows",
			fmt.Sprintf("Removed %d rows with >%.0f%% missing values", removed, rowThreshold*100),
			rowsBefore, ds.NumRows(),
		)
	}

	strategy := cfg.ImputationStrategy
	if strategy == "" {
		strategy = "smart"
	}
	for _, col := range ds.Columns() {
		if col.MissingCount() == 0 {
			continue
		}
		switch col.Type {
		case dataset.TypeFloat:
			imputeNumeric(col, strategy)
		case dataset.TypeString:
			imputeMode(col)
		case dataset.TypeTime:
			imputeFill(col)
		}
	}

	if cfg.UseKNNImputation {
		k := cfg.KNNNeighbors
		if k <= 0 {
			k = 5
		}
		knnImpute(ds, k)
	}

	return ds
}

// imputeNumeric fills numeric nulls: median when |skew| > 1 under the smart
// strategy, otherwise mean or median as configured.
func imputeNumeric(col *dataset.Column, strategy string) {
	values := col.Floats()
	if len(values) == 0 {
		return
	}
	var fill float64
	switch strategy {
	case "mean":
		fill = stat.Mean(values, nil)
	case "median":
		fill = medianOf(values)
	default:
		skew := 0.0
		if len(values) >= 3 {
			skew = stat.Skew(values, nil)
		}
		if math.Abs(skew) > 1 {
			fill = medianOf(values)
		} else {
			fill = stat.Mean(values, nil)
		}
	}
	for i, cell := range col.Cells {
		if cell.IsNull() {
			col.Cells[i] = dataset.Float(fill)
		}
	}
}

func imputeMode(col *dataset.Column) {
	counts := col.ValueCounts()
	fill := "Unknown"
	if len(counts) > 0 {
		fill = counts[0].Value
	}
	for i, cell := range col.Cells {
		if cell.IsNull() {
			col.Cells[i] = dataset.String(fill)
		}
	}
}

// imputeFill forward-fills then backward-fills datetime nulls
func imputeFill(col *dataset.Column) {
	for i := 1; i < len(col.Cells); i++ {
		if col.Cells[i].IsNull() && !col.Cells[i-1].IsNull() {
			col.Cells[i] = col.Cells[i-1]
		}
	}
	for i := len(col.Cells) - 2; i >= 0; i-- {
		if col.Cells[i].IsNull() && !col.Cells[i+1].IsNull() {
			col.Cells[i] = col.Cells[i+1]
		}
	}
}

// knnImpute replaces remaining numeric nulls with the mean of the k nearest
// complete rows, measured by euclidean distance over shared present columns.
func knnImpute(ds *dataset.Dataset, k int) {
	var numericCols []*dataset.Column
	for _, col := range ds.Columns() {
		if col.Type == dataset.TypeFloat {
			numericCols = append(numericCols, col)
		}
	}
	if len(numericCols) < 2 {
		return
	}

	n := ds.NumRows()
	type gap struct{ row, colIdx int }
	var gaps []gap
	for j, col := range numericCols {
		for i := 0; i < n; i++ {
			if col.Cells[i].IsNull() {
				gaps = append(gaps, gap{i, j})
			}
		}
	}
	if len(gaps) == 0 {
		return
	}

	for _, g := range gaps {
		type neighbor struct {
			dist  float64
			value float64
		}
		var neighbors []neighbor
		for other := 0; other < n; other++ {
			if other == g.row {
				continue
			}
			v, ok := numericCols[g.colIdx].Cells[other].Float64()
			if !ok {
				continue
			}
			dist, shared := rowDistance(numericCols, g.row, other, g.colIdx)
			if shared == 0 {
				continue
			}
			neighbors = append(neighbors, neighbor{dist, v})
		}
		if len(neighbors) == 0 {
			continue
		}
		sort.Slice(neighbors, func(a, b int) bool { return neighbors[a].dist < neighbors[b].dist })
		if len(neighbors) > k {
			neighbors = neighbors[:k]
		}
		var sum float64
		for _, nb := range neighbors {
			sum += nb.value
		}
		numericCols[g.colIdx].Cells[g.row] = dataset.Float(sum / float64(len(neighbors)))
	}
}

func rowDistance(cols []*dataset.Column, a, b, skip int) (float64, int) {
	var ss float64
	shared := 0
	for j, col := range cols {
		if j == skip {
			continue
		}
		va, okA := col.Cells[a].Float64()
		vb, okB := col.Cells[b].Float64()
		if !okA || !okB {
			continue
		}
		d := va - vb
		ss += d * d
		shared++
	}
	if shared == 0 {
		return math.Inf(1), 0
	}
	return math.Sqrt(ss / float64(shared)), shared
}

func medianOf(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
