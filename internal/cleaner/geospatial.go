package cleaner

import (
	"fmt"
	"strings"

	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

// cleanGeospatial is stage 13 (opt-in): drops rows whose latitude falls
// outside [-90, 90] or longitude outside [-180, 180].
func (p *Pipeline) cleanGeospatial(ds *dataset.Dataset) *dataset.Dataset {
	for _, col := range ds.Columns() {
		if col.Type != dataset.TypeFloat {
			continue
		}
		lower := strings.ToLower(col.Name)

		var lo, hi float64
		switch {
		case strings.Contains(lower, "lon") || strings.Contains(lower, "lng"):
			lo, hi = -180, 180
		case strings.Contains(lower, "lat"):
			lo, hi = -90, 90
		default:
			continue
		}

		rowsBefore := ds.NumRows()
		keep := make([]bool, rowsBefore)
		for i, cell := range col.Cells {
			v, ok := cell.Float64()
			keep[i] = !ok || (v >= lo && v <= hi)
		}
		ds.FilterRows(keep)
		if removed := rowsBefore - ds.NumRows(); removed > 0 {
			p.logOperation(
				"clean_geospatial",
				fmt.Sprintf("Removed %d rows with out-of-range coordinates in %s", removed, col.Name),
				rowsBefore, ds.NumRows(),
			)
		}
	}
	return ds
}
