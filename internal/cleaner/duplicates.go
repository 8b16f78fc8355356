package cleaner

import (
	"fmt"
	"strings"

	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

// removeDuplicates is stage 3: drops exact full-row duplicates, keeping the
// first occurrence. With fuzzy matching enabled, text columns are lowercased
// and trimmed first so near-identical rows collapse into exact duplicates.
func (p *Pipeline) removeDuplicates(ds *dataset.Dataset) *dataset.Dataset {
	if p.opts.Duplicates.FuzzyMatching {
		for _, col := range ds.Columns() {
			if col.Type != dataset.TypeString {
				continue
			}
			for i, cell := range col.Cells {
				if s, ok := cell.Text(); ok {
					col.Cells[i] = dataset.String(strings.ToLower(strings.TrimSpace(s)))
				}
			}
		}
	}

	rowsBefore := ds.NumRows()
	mask := ds.DuplicateMask()
	keep := make([]bool, len(mask))
	for i, dup := range mask {
		keep[i] = !dup
	}
	ds.FilterRows(keep)

	if removed := rowsBefore - ds.NumRows(); removed > 0 {
		p.logOperation(
			"remove_exact_duplicates",
			fmt.Sprintf("Removed %d exact duplicate rows", removed),
			rowsBefore, ds.NumRows(),
		)
	}
	return ds
}
