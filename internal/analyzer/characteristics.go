package analyzer

import (
	"strings"

	"github.com/Ajith-oo7/Data-lysis/domain"
	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
	"github.com/Ajith-oo7/Data-lysis/internal/profiler"
)

const (
	textAvgLengthThreshold   = 50
	textUniqueRatioThreshold = 0.8
	highCardinalityThreshold = 50
	highDimColumns           = 20
	highDimNumeric           = 15
)

// AnalyzeCharacteristics inspects the dataset and produces the structural
// summary that drives EDA-type routing and the complexity score.
func AnalyzeCharacteristics(ds *dataset.Dataset, targetColumn string) domain.DatasetCharacteristics {
	rows := ds.NumRows()
	columns := ds.NumColumns()

	var numericCols, categoricalCols, textCols, datetimeCols, geoCols, highCardCols int

	for _, col := range ds.Columns() {
		switch {
		case col.Type == dataset.TypeFloat:
			numericCols++
		case col.Type == dataset.TypeTime:
			datetimeCols++
		default:
			// string columns that parse as dates count as datetime, the
			// rest split into text / high-cardinality / plain categorical
			if dataset.TimeParseRatio(col) >= 0.5 {
				datetimeCols++
				continue
			}
			categoricalCols++
			unique := col.UniqueCount()
			uniqueRatio := 0.0
			if rows > 0 {
				uniqueRatio = float64(unique) / float64(rows)
			}
			avgLen := averageStringLength(col)
			if avgLen > textAvgLengthThreshold || uniqueRatio > textUniqueRatioThreshold {
				textCols++
			} else if unique > highCardinalityThreshold {
				highCardCols++
			}
		}
	}

	for _, name := range ds.ColumnNames() {
		if profiler.HasGeoKeyword(name) {
			geoCols++
		}
	}

	isTimeSeries := datetimeCols > 0
	if !isTimeSeries {
		for _, name := range ds.ColumnNames() {
			lower := strings.ToLower(name)
			if strings.Contains(lower, "time") || strings.Contains(lower, "date") {
				isTimeSeries = true
				break
			}
		}
	}

	missingPct := 0.0
	if rows > 0 && columns > 0 {
		missingPct = float64(ds.MissingCells()) / float64(rows*columns) * 100
	}
	duplicatePct := 0.0
	if rows > 0 {
		duplicatePct = float64(ds.DuplicateCount()) / float64(rows) * 100
	}

	hasTarget := targetColumn != "" && ds.HasColumn(targetColumn)
	isImbalanced := false
	if hasTarget {
		if target, ok := ds.Column(targetColumn); ok && target.Type == dataset.TypeString {
			isImbalanced = targetIsImbalanced(target)
		}
	}

	chars := domain.DatasetCharacteristics{
		Rows:                   rows,
		Columns:                columns,
		NumericColumns:         numericCols,
		CategoricalColumns:     categoricalCols,
		TextColumns:            textCols,
		DatetimeColumns:        datetimeCols,
		GeospatialColumns:      geoCols,
		HighCardinalityColumns: highCardCols,
		MissingPercentage:      missingPct,
		DuplicatePercentage:    duplicatePct,
		IsTimeSeries:           isTimeSeries,
		IsHighDimensional:      columns > highDimColumns || numericCols > highDimNumeric,
		IsImbalanced:           isImbalanced,
		HasTargetVariable:      hasTarget,
	}
	chars.ComplexityScore = complexityScore(chars)
	return chars
}

// complexityScore maps characteristics to a 0-100 score. Tiers accumulate
// across size, feature mix, special data types, and missingness.
func complexityScore(c domain.DatasetCharacteristics) float64 {
	score := 0.0

	switch {
	case c.Rows > 10000:
		score += 15
	case c.Rows > 1000:
		score += 10
	default:
		score += 5
	}

	switch {
	case c.Columns > 50:
		score += 20
	case c.Columns > 20:
		score += 15
	case c.Columns > 10:
		score += 10
	default:
		score += 5
	}

	score += minFloat(float64(c.NumericColumns)*2, 20)
	score += minFloat(float64(c.CategoricalColumns)*1.5, 15)
	score += minFloat(float64(c.TextColumns)*3, 15)
	score += minFloat(float64(c.HighCardinalityColumns)*2, 10)

	if c.IsTimeSeries {
		score += 10
	}
	if c.GeospatialColumns > 0 {
		score += 10
	}

	if c.MissingPercentage > 20 {
		score += 10
	} else if c.MissingPercentage > 10 {
		score += 5
	}

	return minFloat(score, 100)
}

func averageStringLength(col *dataset.Column) float64 {
	var total, count int
	for _, cell := range col.Cells {
		if cell.IsNull() {
			continue
		}
		total += len(cell.Repr())
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

// targetIsImbalanced flags a categorical target whose majority class exceeds
// 80% or whose minority class falls below 10%. Single-class targets are not
// considered imbalanced.
func targetIsImbalanced(col *dataset.Column) bool {
	counts := col.ValueCounts()
	if len(counts) < 2 {
		return false
	}
	var total int
	for _, vc := range counts {
		total += vc.Count
	}
	if total == 0 {
		return false
	}
	majority := float64(counts[0].Count) / float64(total)
	minority := float64(counts[len(counts)-1].Count) / float64(total)
	return majority > 0.8 || minority < 0.1
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
