package cleaner

import (
	"fmt"
	"sort"

	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

// encodeCategorical is stage 9 (opt-in): label, one-hot, target-mean, or
// frequency encoding of string columns. One-hot replaces the source column;
// target and frequency encodings keep the original alongside the new column.
func (p *Pipeline) encodeCategorical(ds *dataset.Dataset) *dataset.Dataset {
	cfg := p.opts.Encoding
	method := cfg.Method
	if method == "" {
		method = "onehot"
	}
	maxOneHot := cfg.MaxCategoriesOneHot
	if maxOneHot <= 0 {
		maxOneHot = 10
	}

	var categoricalCols []*dataset.Column
	for _, col := range ds.Columns() {
		if col.Type == dataset.TypeString {
			categoricalCols = append(categoricalCols, col)
		}
	}

	for _, col := range categoricalCols {
		switch method {
		case "label":
			labelEncode(ds, col)
		case "target":
			if cfg.TargetColumn == "" {
				continue
			}
			target, ok := ds.Column(cfg.TargetColumn)
			if !ok || target.Type != dataset.TypeFloat {
				continue
			}
			targetEncode(ds, col, target)
		case "frequency":
			frequencyEncode(ds, col)
		default:
			if col.UniqueCount() <= maxOneHot {
				oneHotEncode(ds, col)
			}
		}
	}

	p.logOperation(
		fmt.Sprintf("encode_%s", method),
		fmt.Sprintf("Applied %s encoding to categorical columns", method),
		ds.NumRows(), ds.NumRows(),
	)
	return ds
}

// labelEncode replaces values with integer ids assigned in sorted value order
func labelEncode(ds *dataset.Dataset, col *dataset.Column) {
	var values []string
	seen := map[string]struct{}{}
	for _, cell := range col.Cells {
		key := cell.Repr()
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			values = append(values, key)
		}
	}
	sort.Strings(values)
	ids := make(map[string]int, len(values))
	for i, v := range values {
		ids[v] = i
	}

	encoded := &dataset.Column{Name: col.Name, Type: dataset.TypeFloat}
	for _, cell := range col.Cells {
		encoded.Cells = append(encoded.Cells, dataset.Float(float64(ids[cell.Repr()])))
	}
	ds.ReplaceColumn(encoded)
}

// oneHotEncode replaces the column with one 0/1 column per category
func oneHotEncode(ds *dataset.Dataset, col *dataset.Column) {
	counts := col.ValueCounts()
	categories := make([]string, len(counts))
	for i, vc := range counts {
		categories[i] = vc.Value
	}
	sort.Strings(categories)

	for _, category := range categories {
		dummy := &dataset.Column{
			Name: fmt.Sprintf("%s_%s", col.Name, category),
			Type: dataset.TypeFloat,
		}
		for _, cell := range col.Cells {
			if s, ok := cell.Text(); ok && s == category {
				dummy.Cells = append(dummy.Cells, dataset.Float(1))
			} else {
				dummy.Cells = append(dummy.Cells, dataset.Float(0))
			}
		}
		ds.AddColumn(dummy)
	}
	ds.DropColumn(col.Name)
}

// targetEncode maps each category to the mean of the numeric target
func targetEncode(ds *dataset.Dataset, col, target *dataset.Column) {
	sums := map[string]float64{}
	counts := map[string]int{}
	for i, cell := range col.Cells {
		s, okS := cell.Text()
		v, okV := target.Cells[i].Float64()
		if okS && okV {
			sums[s] += v
			counts[s]++
		}
	}

	encoded := &dataset.Column{
		Name: col.Name + "_target_encoded",
		Type: dataset.TypeFloat,
	}
	for _, cell := range col.Cells {
		s, ok := cell.Text()
		if !ok || counts[s] == 0 {
			encoded.Cells = append(encoded.Cells, dataset.Null())
			continue
		}
		encoded.Cells = append(encoded.Cells, dataset.Float(sums[s]/float64(counts[s])))
	}
	ds.AddColumn(encoded)
}

// frequencyEncode maps each category to its occurrence count
func frequencyEncode(ds *dataset.Dataset, col *dataset.Column) {
	freq := map[string]int{}
	for _, cell := range col.Cells {
		if s, ok := cell.Text(); ok {
			freq[s]++
		}
	}

	encoded := &dataset.Column{
		Name: col.Name + "_frequency_encoded",
		Type: dataset.TypeFloat,
	}
	for _, cell := range col.Cells {
		s, ok := cell.Text()
		if !ok {
			encoded.Cells = append(encoded.Cells, dataset.Null())
			continue
		}
		encoded.Cells = append(encoded.Cells, dataset.Float(float64(freq[s])))
	}
	ds.AddColumn(encoded)
}
