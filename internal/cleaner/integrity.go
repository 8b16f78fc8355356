package cleaner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

// validateIntegrity is stage 7: swaps inverted start/end datetime pairs and
// filters rows violating user-supplied per-column min/max constraints.
func (p *Pipeline) validateIntegrity(ds *dataset.Dataset) *dataset.Dataset {
	cfg := p.opts.Validation

	if cfg.FixDateLogic {
		var startCols, endCols []*dataset.Column
		for _, col := range ds.Columns() {
			if col.Type != dataset.TypeTime {
				continue
			}
			lower := strings.ToLower(col.Name)
			if strings.Contains(lower, "start") {
				startCols = append(startCols, col)
			}
			if strings.Contains(lower, "end") {
				endCols = append(endCols, col)
			}
		}
		for _, start := range startCols {
			for _, end := range endCols {
				swapped := 0
				for i := 0; i < start.Len() && i < end.Len(); i++ {
					s, okS := start.Cells[i].Timestamp()
					e, okE := end.Cells[i].Timestamp()
					if okS && okE && s.After(e) {
						start.Cells[i], end.Cells[i] = end.Cells[i], start.Cells[i]
						swapped++
					}
				}
				if swapped > 0 {
					p.logOperation(
						"fix_date_logic",
						fmt.Sprintf("Swapped %d inverted %s/%s ranges", swapped, start.Name, end.Name),
						ds.NumRows(), ds.NumRows(),
					)
				}
			}
		}
	}

	for name, constraint := range cfg.DomainConstraints {
		col, ok := ds.Column(name)
		if !ok || col.Type != dataset.TypeFloat {
			continue
		}
		rowsBefore := ds.NumRows()
		keep := make([]bool, rowsBefore)
		for i, cell := range col.Cells {
			v, present := cell.Float64()
			if !present {
				keep[i] = true
				continue
			}
			keep[i] = (constraint.Min == nil || v >= *constraint.Min) &&
				(constraint.Max == nil || v <= *constraint.Max)
		}
		ds.FilterRows(keep)
		if removed := rowsBefore - ds.NumRows(); removed > 0 {
			p.logOperation(
				"apply_domain_constraints",
				fmt.Sprintf("Removed %d rows violating constraints on %s", removed, name),
				rowsBefore, ds.NumRows(),
			)
		}
	}

	return ds
}

var (
	phoneDigitsPattern  = regexp.MustCompile(`[^\d]`)
	currencyDigitsOnly  = regexp.MustCompile(`[^\d.-]`)
	phoneColumnKeywords = []string{"phone", "tel", "mobile"}
	moneyColumnKeywords = []string{"price", "cost", "amount", "salary"}
)

// fixFormats is stage 8: phone-like string columns keep digits only,
// email-like columns are lowercased and trimmed, currency-like columns are
// stripped to numerals and coerced to numeric.
func (p *Pipeline) fixFormats(ds *dataset.Dataset) *dataset.Dataset {
	for _, col := range ds.Columns() {
		if col.Type != dataset.TypeString {
			continue
		}
		lower := strings.ToLower(col.Name)

		switch {
		case containsAny(lower, phoneColumnKeywords):
			for i, cell := range col.Cells {
				if s, ok := cell.Text(); ok {
					col.Cells[i] = dataset.String(phoneDigitsPattern.ReplaceAllString(s, ""))
				}
			}
		case strings.Contains(lower, "email"):
			for i, cell := range col.Cells {
				if s, ok := cell.Text(); ok {
					col.Cells[i] = dataset.String(strings.ToLower(strings.TrimSpace(s)))
				}
			}
		case containsAny(lower, moneyColumnKeywords):
			numeric := &dataset.Column{Name: col.Name, Type: dataset.TypeFloat}
			for _, cell := range col.Cells {
				s, ok := cell.Text()
				if !ok {
					numeric.Cells = append(numeric.Cells, dataset.Null())
					continue
				}
				stripped := currencyDigitsOnly.ReplaceAllString(s, "")
				if v, parsed := dataset.ParseFloat(stripped); parsed {
					numeric.Cells = append(numeric.Cells, dataset.Float(v))
				} else {
					numeric.Cells = append(numeric.Cells, dataset.Null())
				}
			}
			ds.ReplaceColumn(numeric)
		}
	}
	return ds
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
