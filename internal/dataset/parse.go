package dataset

import (
	"strconv"
	"strings"
	"time"
)

// ParseFloat parses a numeric literal, tolerating thousands separators
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.Count(s, ",") > 0 && !strings.Contains(s, ".") {
		// "1,234" style separators only; "1,2" stays unparsed
		stripped := strings.ReplaceAll(s, ",", "")
		if len(stripped) >= 4 {
			s = stripped
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// timeLayouts are tried in order for timestamp coercion
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"01/02/2006 15:04:05",
	"02-Jan-2006",
	"Jan 2, 2006",
	"2006-01",
}

// ParseTime parses a timestamp using the supported layouts
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TimeParseRatio returns the fraction of a column's non-null values that
// coerce to timestamps (1.0 for columns already stored as time).
func TimeParseRatio(col *Column) float64 {
	if col.Type == TypeTime {
		return 1.0
	}
	if col.Type == TypeFloat {
		return 0
	}
	total, parsed := 0, 0
	for _, cell := range col.Cells {
		s, ok := cell.Text()
		if !ok {
			continue
		}
		total++
		if _, ok := ParseTime(s); ok {
			parsed++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(parsed) / float64(total)
}

// CoerceToTime converts a text column to timestamp storage; unparseable
// values become null.
func CoerceToTime(col *Column) *Column {
	out := &Column{Name: col.Name, Type: TypeTime, Cells: make([]Cell, len(col.Cells))}
	for i, cell := range col.Cells {
		if t, ok := cell.Timestamp(); ok {
			out.Cells[i] = Time(t)
			continue
		}
		if s, ok := cell.Text(); ok {
			if t, ok := ParseTime(s); ok {
				out.Cells[i] = Time(t)
				continue
			}
		}
		out.Cells[i] = Null()
	}
	return out
}
