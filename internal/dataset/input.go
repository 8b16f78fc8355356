package dataset

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Ajith-oo7/Data-lysis/domain"
)

// Input is the sum of the accepted input representations: a delimited-text
// blob, an ordered sequence of row-records, or a pre-built table. Exactly one
// field must be set.
type Input struct {
	CSV     string
	Records []map[string]any
	Table   *Dataset
}

// FromInput normalizes any accepted representation to the canonical Dataset.
// Anything else (or an empty input) is an input error, never a zero-row table.
func FromInput(in Input) (*Dataset, error) {
	switch {
	case in.Table != nil:
		return in.Table, nil
	case in.Records != nil:
		return NewFromRecords(in.Records)
	case strings.TrimSpace(in.CSV) != "":
		return NewFromCSV(in.CSV)
	default:
		return nil, domain.NewEmptyDatasetError("no input data provided")
	}
}

// NewFromCSV parses a delimited-text blob with a header row. Column storage
// types are inferred: a column where every non-empty value parses as a number
// becomes numeric; everything else stays text (datetime coercion is a
// cleaning-stage concern, semantic classification a profiler concern).
func NewFromCSV(blob string) (*Dataset, error) {
	r := csv.NewReader(strings.NewReader(blob))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, domain.NewInvalidInputError("invalid CSV format", err)
	}
	if len(rows) == 0 {
		return nil, domain.NewEmptyDatasetError("empty CSV input")
	}

	header := rows[0]
	data := rows[1:]
	if len(data) == 0 {
		return nil, domain.NewEmptyDatasetError("CSV input has a header but no rows")
	}

	cols := make([]*Column, len(header))
	for j, name := range header {
		cells := make([]Cell, len(data))
		for i, record := range data {
			if j >= len(record) {
				cells[i] = Null()
				continue
			}
			cells[i] = cellFromString(record[j])
		}
		cols[j] = inferColumn(strings.TrimSpace(name), cells)
	}
	return New(cols)
}

// NewFromRecords builds a dataset from row-records. Record order is row
// order; the column set is the union of keys, ordered alphabetically since Go
// maps carry no insertion order.
func NewFromRecords(records []map[string]any) (*Dataset, error) {
	if len(records) == 0 {
		return nil, domain.NewEmptyDatasetError("empty record sequence")
	}

	nameSet := make(map[string]struct{})
	for _, rec := range records {
		for k := range rec {
			nameSet[k] = struct{}{}
		}
	}
	names := make([]string, 0, len(nameSet))
	for k := range nameSet {
		names = append(names, k)
	}
	sort.Strings(names)

	cols := make([]*Column, len(names))
	for j, name := range names {
		cells := make([]Cell, len(records))
		for i, rec := range records {
			cells[i] = cellFromValue(rec[name])
		}
		cols[j] = inferColumn(name, cells)
	}
	return New(cols)
}

// cellFromString maps a raw CSV field to a cell; empty and NA markers are null
func cellFromString(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" || isMissingMarker(s) {
		return Null()
	}
	return String(s)
}

func isMissingMarker(s string) bool {
	switch strings.ToLower(s) {
	case "na", "n/a", "nan", "null", "none":
		return true
	}
	return false
}

// cellFromValue maps a record scalar to a cell
func cellFromValue(v any) Cell {
	switch val := v.(type) {
	case nil:
		return Null()
	case float64:
		return Float(val)
	case float32:
		return Float(float64(val))
	case int:
		return Float(float64(val))
	case int32:
		return Float(float64(val))
	case int64:
		return Float(float64(val))
	case bool:
		if val {
			return String("true")
		}
		return String("false")
	case time.Time:
		return Time(val)
	case string:
		return cellFromString(val)
	default:
		return cellFromString(fmt.Sprintf("%v", val))
	}
}

// inferColumn assigns a storage type: numeric if every non-null value parses
// as a number, time if every value is already a timestamp, otherwise text.
func inferColumn(name string, cells []Cell) *Column {
	allFloat := true
	allTime := true
	nonNull := 0
	for _, c := range cells {
		if c.IsNull() {
			continue
		}
		nonNull++
		switch c.Kind() {
		case KindFloat:
			allTime = false
		case KindTime:
			allFloat = false
		case KindString:
			allTime = false
			s, _ := c.Text()
			if _, ok := ParseFloat(s); !ok {
				allFloat = false
			}
		}
	}

	col := &Column{Name: name, Cells: cells}
	switch {
	case nonNull == 0:
		col.Type = TypeString
	case allFloat:
		col.Type = TypeFloat
		for i, c := range cells {
			if s, ok := c.Text(); ok {
				v, _ := ParseFloat(s)
				col.Cells[i] = Float(v)
			}
		}
	case allTime:
		col.Type = TypeTime
	default:
		col.Type = TypeString
		for i, c := range cells {
			if v, ok := c.Float64(); ok {
				col.Cells[i] = String(Float(v).Repr())
			}
		}
	}
	return col
}
