package cleaner

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/Ajith-oo7/Data-lysis/domain"
	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

// summary builds the before/after report attached to every Clean call.
func (p *Pipeline) summary(original, cleaned *dataset.Dataset) domain.CleaningSummary {
	origMissing := original.MissingCells()
	cleanMissing := cleaned.MissingCells()
	origCells := original.NumRows() * original.NumColumns()
	cleanCells := cleaned.NumRows() * cleaned.NumColumns()

	var reduction float64
	if origCells > 0 {
		reduction = float64(origMissing-cleanMissing) / float64(origCells)
	}
	completenessBefore := 0.0
	if origCells > 0 {
		completenessBefore = 1 - float64(origMissing)/float64(origCells)
	}
	completenessAfter := 1.0
	if cleanCells > 0 {
		completenessAfter = 1 - float64(cleanMissing)/float64(cleanCells)
	}

	types := make(map[string]string, cleaned.NumColumns())
	missing := make(map[string]int, cleaned.NumColumns())
	for _, col := range cleaned.Columns() {
		types[col.Name] = col.Type.String()
		missing[col.Name] = col.MissingCount()
	}

	return domain.CleaningSummary{
		OriginalShape:      domain.Shape{Rows: original.NumRows(), Columns: original.NumColumns()},
		FinalShape:         domain.Shape{Rows: cleaned.NumRows(), Columns: cleaned.NumColumns()},
		RowsRemoved:        original.NumRows() - cleaned.NumRows(),
		ColumnsRemoved:     original.NumColumns() - cleaned.NumColumns(),
		CleaningOperations: len(p.log),
		QualityImprovement: domain.QualityImprovement{
			MissingValueReduction: reduction,
			CompletenessBefore:    completenessBefore,
			CompletenessAfter:     completenessAfter,
			DataConsistencyScore:  consistencyScore(cleaned),
		},
		FinalDataTypes:     types,
		MissingValuesFinal: missing,
	}
}

// consistencyScore rates how uniform the cleaned data looks. Numeric columns
// score by inverse coefficient of variation, string columns by how repetitive
// their values are. Returns 1.0 for an empty dataset.
func consistencyScore(ds *dataset.Dataset) float64 {
	var scores []float64
	for _, col := range ds.Columns() {
		switch col.Type {
		case dataset.TypeFloat:
			values := col.Floats()
			if len(values) == 0 {
				continue
			}
			mean, std := stat.MeanStdDev(values, nil)
			cv := 0.0
			if mean != 0 {
				cv = math.Abs(std / mean)
			}
			scores = append(scores, math.Min(1, 1/(1+cv)))
		case dataset.TypeString:
			n := col.Len() - col.MissingCount()
			if n == 0 {
				continue
			}
			ratio := float64(col.UniqueCount()) / float64(n)
			if ratio < 1 {
				scores = append(scores, 1-ratio)
			} else {
				scores = append(scores, 0.5)
			}
		}
	}
	if len(scores) == 0 {
		return 1.0
	}
	return stat.Mean(scores, nil)
}
