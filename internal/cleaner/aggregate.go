package cleaner

import (
	"fmt"
	"math"

	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

// aggregateTransform is stage 12 (opt-in): for each group rule, broadcast an
// aggregate of one column back onto every row sharing the group-by value,
// as a new column named <col>_<func>_by_<group>.
func (p *Pipeline) aggregateTransform(ds *dataset.Dataset) *dataset.Dataset {
	for groupName, aggRules := range p.opts.Aggregation.GroupRules {
		groupCol, ok := ds.Column(groupName)
		if !ok {
			continue
		}
		for aggName, aggFunc := range aggRules {
			aggCol, ok := ds.Column(aggName)
			if !ok || aggCol.Type != dataset.TypeFloat {
				continue
			}

			groups := map[string][]float64{}
			for i, cell := range aggCol.Cells {
				v, present := cell.Float64()
				if !present {
					continue
				}
				key := groupCol.Cells[i].Repr()
				groups[key] = append(groups[key], v)
			}

			aggregates := make(map[string]float64, len(groups))
			for key, values := range groups {
				aggregates[key] = applyAggregate(values, aggFunc)
			}

			out := &dataset.Column{
				Name: fmt.Sprintf("%s_%s_by_%s", aggName, aggFunc, groupName),
				Type: dataset.TypeFloat,
			}
			for i := range aggCol.Cells {
				key := groupCol.Cells[i].Repr()
				if agg, found := aggregates[key]; found {
					out.Cells = append(out.Cells, dataset.Float(agg))
				} else {
					out.Cells = append(out.Cells, dataset.Null())
				}
			}
			ds.AddColumn(out)
		}
	}
	return ds
}

func applyAggregate(values []float64, fn string) float64 {
	switch fn {
	case "sum":
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum
	case "min":
		minV := values[0]
		for _, v := range values {
			minV = math.Min(minV, v)
		}
		return minV
	case "max":
		maxV := values[0]
		for _, v := range values {
			maxV = math.Max(maxV, v)
		}
		return maxV
	case "median":
		return medianOf(values)
	case "count":
		return float64(len(values))
	default: // mean
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	}
}
