package cleaner

import (
	"regexp"
	"strings"

	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

var nonNumericChars = regexp.MustCompile(`[^\d.-]`)

// correctTypes is stage 2: string columns are coerced to numeric when at
// least 80% of values parse after stripping non-numeric characters, else to
// datetime when at least 50% parse, else flagged categorical when the unique
// ratio is below 0.1 or the unique count below 20.
func (p *Pipeline) correctTypes(ds *dataset.Dataset) *dataset.Dataset {
	for _, col := range ds.Columns() {
		if col.Type != dataset.TypeString {
			continue
		}

		if numeric, ok := tryNumericCoercion(col); ok {
			ds.ReplaceColumn(numeric)
			continue
		}

		if dataset.TimeParseRatio(col) > 0.5 {
			ds.ReplaceColumn(dataset.CoerceToTime(col))
			continue
		}

		rows := ds.NumRows()
		if rows > 0 {
			unique := col.UniqueCount()
			if float64(unique)/float64(rows) < 0.1 || unique < 20 {
				col.Categorical = true
			}
		}
	}
	return ds
}

// tryNumericCoercion strips non-digit characters and parses; succeeds when
// more than 80% of all rows yield a number.
func tryNumericCoercion(col *dataset.Column) (*dataset.Column, bool) {
	total := len(col.Cells)
	if total == 0 {
		return nil, false
	}
	out := &dataset.Column{Name: col.Name, Type: dataset.TypeFloat}
	parsed := 0
	for _, cell := range col.Cells {
		s, ok := cell.Text()
		if !ok {
			out.Cells = append(out.Cells, dataset.Null())
			continue
		}
		stripped := nonNumericChars.ReplaceAllString(strings.TrimSpace(s), "")
		v, ok := dataset.ParseFloat(stripped)
		if !ok {
			out.Cells = append(out.Cells, dataset.Null())
			continue
		}
		out.Cells = append(out.Cells, dataset.Float(v))
		parsed++
	}
	if float64(parsed)/float64(total) > 0.8 {
		return out, true
	}
	return nil, false
}
