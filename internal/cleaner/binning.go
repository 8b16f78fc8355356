package cleaner

import (
	"fmt"
	"math"
	"sort"

	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

// createBins is stage 10 (opt-in): per-column binning into a new _binned
// column using equal-width, equal-frequency, or user-supplied custom edges.
func (p *Pipeline) createBins(ds *dataset.Dataset) *dataset.Dataset {
	for name, rule := range p.opts.Binning.Rules {
		col, ok := ds.Column(name)
		if !ok || col.Type != dataset.TypeFloat {
			continue
		}

		var edges []float64
		switch rule.Method {
		case "equal_frequency":
			edges = equalFrequencyEdges(col.Floats(), rule.Bins)
		case "custom":
			edges = rule.CustomBins
		default:
			edges = equalWidthEdges(col.Floats(), rule.Bins)
		}
		if len(edges) < 2 {
			continue
		}

		binned := &dataset.Column{
			Name: name + "_binned",
			Type: dataset.TypeString,
		}
		for _, cell := range col.Cells {
			v, present := cell.Float64()
			if !present {
				binned.Cells = append(binned.Cells, dataset.Null())
				continue
			}
			binned.Cells = append(binned.Cells, dataset.String(binLabel(v, edges)))
		}
		ds.AddColumn(binned)
	}
	return ds
}

func equalWidthEdges(values []float64, bins int) []float64 {
	if len(values) == 0 || bins < 1 {
		return nil
	}
	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	if minV == maxV {
		return nil
	}
	edges := make([]float64, bins+1)
	width := (maxV - minV) / float64(bins)
	for i := range edges {
		edges[i] = minV + float64(i)*width
	}
	return edges
}

func equalFrequencyEdges(values []float64, bins int) []float64 {
	if len(values) == 0 || bins < 1 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	edges := make([]float64, 0, bins+1)
	for i := 0; i <= bins; i++ {
		edges = append(edges, interpolatedQuantile(sorted, float64(i)/float64(bins)))
	}
	// collapse duplicate edges from ties
	dedup := edges[:1]
	for _, e := range edges[1:] {
		if e > dedup[len(dedup)-1] {
			dedup = append(dedup, e)
		}
	}
	return dedup
}

// binLabel assigns v to a half-open interval label; the last bin is closed
func binLabel(v float64, edges []float64) string {
	if v < edges[0] || v > edges[len(edges)-1] {
		return "out_of_range"
	}
	for i := 1; i < len(edges); i++ {
		if v < edges[i] || i == len(edges)-1 {
			return fmt.Sprintf("(%.3f, %.3f]", edges[i-1], edges[i])
		}
	}
	return "out_of_range"
}
