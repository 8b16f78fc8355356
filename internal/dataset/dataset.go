// Package dataset provides the canonical in-memory representation of a
// rectangular dataset: an ordered sequence of named, equally sized columns of
// typed cells. All analysis and cleaning components operate on this type.
package dataset

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Ajith-oo7/Data-lysis/domain"
)

// ColType is the storage type of a column
type ColType uint8

const (
	TypeString ColType = iota
	TypeFloat
	TypeTime
)

func (t ColType) String() string {
	switch t {
	case TypeFloat:
		return "float64"
	case TypeTime:
		return "datetime64"
	default:
		return "object"
	}
}

// CellKind is the runtime kind of a single cell value
type CellKind uint8

const (
	KindNull CellKind = iota
	KindFloat
	KindString
	KindTime
)

// Cell is one typed value: numeric, text, timestamp, or missing
type Cell struct {
	kind CellKind
	f    float64
	s    string
	t    time.Time
}

// Null returns a missing cell
func Null() Cell { return Cell{kind: KindNull} }

// Float returns a numeric cell
func Float(v float64) Cell { return Cell{kind: KindFloat, f: v} }

// String returns a text cell
func String(s string) Cell { return Cell{kind: KindString, s: s} }

// Time returns a timestamp cell
func Time(t time.Time) Cell { return Cell{kind: KindTime, t: t} }

// IsNull reports whether the cell is missing
func (c Cell) IsNull() bool { return c.kind == KindNull }

// Kind returns the runtime kind of the cell
func (c Cell) Kind() CellKind { return c.kind }

// Float64 returns the numeric value and whether the cell holds one
func (c Cell) Float64() (float64, bool) {
	if c.kind == KindFloat {
		return c.f, true
	}
	return 0, false
}

// Text returns the string value and whether the cell holds one
func (c Cell) Text() (string, bool) {
	if c.kind == KindString {
		return c.s, true
	}
	return "", false
}

// Timestamp returns the time value and whether the cell holds one
func (c Cell) Timestamp() (time.Time, bool) {
	if c.kind == KindTime {
		return c.t, true
	}
	return time.Time{}, false
}

// Value returns the cell as a plain Go value (nil for missing)
func (c Cell) Value() any {
	switch c.kind {
	case KindFloat:
		return c.f
	case KindString:
		return c.s
	case KindTime:
		return c.t
	default:
		return nil
	}
}

// Repr renders the cell for row-equality hashing and CSV output
func (c Cell) Repr() string {
	switch c.kind {
	case KindFloat:
		return strconv.FormatFloat(c.f, 'g', -1, 64)
	case KindString:
		return c.s
	case KindTime:
		return c.t.Format(time.RFC3339)
	default:
		return ""
	}
}

// Column is an ordered sequence of typed cells with a storage type.
// Categorical marks columns that were explicitly converted to a categorical
// dtype by the cleaning pipeline.
type Column struct {
	Name        string
	Type        ColType
	Categorical bool
	Cells       []Cell
}

// Len returns the number of cells (row count)
func (c *Column) Len() int { return len(c.Cells) }

// MissingCount returns the number of null cells
func (c *Column) MissingCount() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.IsNull() {
			n++
		}
	}
	return n
}

// UniqueCount returns the number of distinct non-null values
func (c *Column) UniqueCount() int {
	seen := make(map[string]struct{}, len(c.Cells))
	for _, cell := range c.Cells {
		if cell.IsNull() {
			continue
		}
		seen[cell.Repr()] = struct{}{}
	}
	return len(seen)
}

// Floats returns all non-null numeric values in order
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if v, ok := cell.Float64(); ok {
			out = append(out, v)
		}
	}
	return out
}

// Strings returns all non-null values rendered as text, in order
func (c *Column) Strings() []string {
	out := make([]string, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if cell.IsNull() {
			continue
		}
		out = append(out, cell.Repr())
	}
	return out
}

// Times returns all non-null timestamp values in order
func (c *Column) Times() []time.Time {
	out := make([]time.Time, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if t, ok := cell.Timestamp(); ok {
			out = append(out, t)
		}
	}
	return out
}

// ValueCounts returns distinct values with their frequencies, most frequent
// first; ties break on value order for determinism.
func (c *Column) ValueCounts() []ValueCount {
	counts := make(map[string]int)
	for _, cell := range c.Cells {
		if cell.IsNull() {
			continue
		}
		counts[cell.Repr()]++
	}
	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// ValueCount pairs a distinct value with its frequency
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Clone returns a deep copy of the column
func (c *Column) Clone() *Column {
	cells := make([]Cell, len(c.Cells))
	copy(cells, c.Cells)
	return &Column{Name: c.Name, Type: c.Type, Categorical: c.Categorical, Cells: cells}
}

// Dataset is an ordered collection of equally sized named columns.
// Invariants: all columns share the same length; names are unique.
type Dataset struct {
	cols  []*Column
	index map[string]int
}

// New builds a dataset from columns, validating the shape invariants
func New(cols []*Column) (*Dataset, error) {
	ds := &Dataset{index: make(map[string]int, len(cols))}
	rows := -1
	for _, col := range cols {
		if _, dup := ds.index[col.Name]; dup {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("duplicate column name: %s", col.Name), nil)
		}
		if rows == -1 {
			rows = col.Len()
		} else if col.Len() != rows {
			return nil, domain.NewInvalidInputError(
				fmt.Sprintf("column %s has %d rows, expected %d", col.Name, col.Len(), rows), nil)
		}
		ds.index[col.Name] = len(ds.cols)
		ds.cols = append(ds.cols, col)
	}
	return ds, nil
}

// NumRows returns the row count
func (ds *Dataset) NumRows() int {
	if len(ds.cols) == 0 {
		return 0
	}
	return ds.cols[0].Len()
}

// NumColumns returns the column count
func (ds *Dataset) NumColumns() int { return len(ds.cols) }

// ColumnNames returns column names in order
func (ds *Dataset) ColumnNames() []string {
	names := make([]string, len(ds.cols))
	for i, c := range ds.cols {
		names[i] = c.Name
	}
	return names
}

// Columns returns the ordered column slice. Callers must not reorder it.
func (ds *Dataset) Columns() []*Column { return ds.cols }

// Column looks a column up by name
func (ds *Dataset) Column(name string) (*Column, bool) {
	i, ok := ds.index[name]
	if !ok {
		return nil, false
	}
	return ds.cols[i], true
}

// HasColumn reports whether the dataset contains the named column
func (ds *Dataset) HasColumn(name string) bool {
	_, ok := ds.index[name]
	return ok
}

// AddColumn appends a column; its length must match the dataset
func (ds *Dataset) AddColumn(col *Column) error {
	if _, dup := ds.index[col.Name]; dup {
		return domain.NewInvalidInputError(fmt.Sprintf("duplicate column name: %s", col.Name), nil)
	}
	if len(ds.cols) > 0 && col.Len() != ds.NumRows() {
		return domain.NewInvalidInputError(
			fmt.Sprintf("column %s has %d rows, expected %d", col.Name, col.Len(), ds.NumRows()), nil)
	}
	ds.index[col.Name] = len(ds.cols)
	ds.cols = append(ds.cols, col)
	return nil
}

// DropColumn removes a column by name; unknown names are ignored
func (ds *Dataset) DropColumn(name string) {
	i, ok := ds.index[name]
	if !ok {
		return
	}
	ds.cols = append(ds.cols[:i], ds.cols[i+1:]...)
	delete(ds.index, name)
	for j := i; j < len(ds.cols); j++ {
		ds.index[ds.cols[j].Name] = j
	}
}

// ReplaceColumn swaps a column in place, keeping its position
func (ds *Dataset) ReplaceColumn(col *Column) {
	if i, ok := ds.index[col.Name]; ok {
		ds.cols[i] = col
	}
}

// FilterRows keeps only rows where keep[i] is true, across every column
func (ds *Dataset) FilterRows(keep []bool) {
	for _, col := range ds.cols {
		filtered := col.Cells[:0]
		for i, cell := range col.Cells {
			if keep[i] {
				filtered = append(filtered, cell)
			}
		}
		col.Cells = filtered
	}
}

// Clone returns a deep copy of the dataset
func (ds *Dataset) Clone() *Dataset {
	cols := make([]*Column, len(ds.cols))
	for i, c := range ds.cols {
		cols[i] = c.Clone()
	}
	out, _ := New(cols)
	return out
}

// MissingCells returns the total number of null cells
func (ds *Dataset) MissingCells() int {
	n := 0
	for _, col := range ds.cols {
		n += col.MissingCount()
	}
	return n
}

// rowKey renders a full row for exact-equality comparison
func (ds *Dataset) rowKey(row int) string {
	var b strings.Builder
	for _, col := range ds.cols {
		cell := col.Cells[row]
		if cell.IsNull() {
			b.WriteString("\x00N")
		} else {
			b.WriteString(cell.Repr())
		}
		b.WriteByte('\x1f')
	}
	return b.String()
}

// DuplicateMask marks rows that exactly duplicate an earlier row
func (ds *Dataset) DuplicateMask() []bool {
	seen := make(map[string]struct{}, ds.NumRows())
	mask := make([]bool, ds.NumRows())
	for i := 0; i < ds.NumRows(); i++ {
		key := ds.rowKey(i)
		if _, ok := seen[key]; ok {
			mask[i] = true
		} else {
			seen[key] = struct{}{}
		}
	}
	return mask
}

// DuplicateCount returns the number of rows that duplicate an earlier row
func (ds *Dataset) DuplicateCount() int {
	n := 0
	for _, dup := range ds.DuplicateMask() {
		if dup {
			n++
		}
	}
	return n
}

// Row returns one row as a name → value record
func (ds *Dataset) Row(i int) map[string]any {
	rec := make(map[string]any, len(ds.cols))
	for _, col := range ds.cols {
		rec[col.Name] = col.Cells[i].Value()
	}
	return rec
}

// Head returns the first n rows as records
func (ds *Dataset) Head(n int) []map[string]any {
	if n > ds.NumRows() {
		n = ds.NumRows()
	}
	out := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, ds.Row(i))
	}
	return out
}

// ToCSV serializes the dataset with a header row
func (ds *Dataset) ToCSV() string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write(ds.ColumnNames())
	for i := 0; i < ds.NumRows(); i++ {
		record := make([]string, len(ds.cols))
		for j, col := range ds.cols {
			record[j] = col.Cells[i].Repr()
		}
		_ = w.Write(record)
	}
	w.Flush()
	return b.String()
}

// MemoryBytes estimates the in-memory footprint of the dataset
func (ds *Dataset) MemoryBytes() int {
	total := 0
	for _, col := range ds.cols {
		total += col.MemoryBytes()
	}
	return total
}

// MemoryBytes estimates the in-memory footprint of the column
func (c *Column) MemoryBytes() int {
	total := 0
	for _, cell := range c.Cells {
		switch cell.Kind() {
		case KindString:
			total += 16 + len(cell.s)
		default:
			total += 16
		}
	}
	return total
}
