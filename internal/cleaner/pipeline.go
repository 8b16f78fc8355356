// Package cleaner implements the fourteen-stage data cleaning pipeline with
// an append-only audit log.
package cleaner

import (
	"time"

	"github.com/Ajith-oo7/Data-lysis/domain"
	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

// Pipeline runs the cleaning stages in a fixed order. Each stage is gated by
// its enable flag and appends audit entries when it changes the data. A
// Pipeline is single-use: construct one per cleaning run.
type Pipeline struct {
	opts *domain.CleaningOptions
	log  []domain.CleaningLogEntry

	originalShape domain.Shape
	finalShape    domain.Shape
}

func NewPipeline(opts *domain.CleaningOptions) *Pipeline {
	if opts == nil {
		opts = domain.DefaultCleaningOptions()
	}
	return &Pipeline{opts: opts}
}

// Clean runs the enabled stages in order and returns the cleaned dataset with
// its summary. Stage order matters: types are corrected before outlier and
// scaling stages, duplicates are removed before integrity checks, and text is
// cleaned before format fixing.
func (p *Pipeline) Clean(ds *dataset.Dataset) (*dataset.Dataset, domain.CleaningSummary) {
	original := ds
	p.originalShape = domain.Shape{Rows: ds.NumRows(), Columns: ds.NumColumns()}
	cleaned := ds.Clone()

	if p.opts.HandleMissing {
		cleaned = p.handleMissing(cleaned)
	}
	if p.opts.CorrectTypes {
		cleaned = p.correctTypes(cleaned)
	}
	if p.opts.RemoveDuplicates {
		cleaned = p.removeDuplicates(cleaned)
	}
	if p.opts.HandleOutliers {
		cleaned = p.handleOutliers(cleaned)
	}
	if p.opts.Standardize {
		cleaned = p.standardize(cleaned)
	}
	if p.opts.CleanText {
		cleaned = p.cleanText(cleaned)
	}
	if p.opts.ValidateIntegrity {
		cleaned = p.validateIntegrity(cleaned)
	}
	if p.opts.FixFormats {
		cleaned = p.fixFormats(cleaned)
	}
	if p.opts.EncodeCategorical {
		cleaned = p.encodeCategorical(cleaned)
	}
	if p.opts.CreateBins {
		cleaned = p.createBins(cleaned)
	}
	if p.opts.FeatureEngineering {
		cleaned = p.engineerFeatures(cleaned)
	}
	if p.opts.AggregateTransform {
		cleaned = p.aggregateTransform(cleaned)
	}
	if p.opts.CleanGeospatial {
		cleaned = p.cleanGeospatial(cleaned)
	}
	if p.opts.HandleUnitConversions {
		cleaned = p.convertUnits(cleaned)
	}

	p.finalShape = domain.Shape{Rows: cleaned.NumRows(), Columns: cleaned.NumColumns()}
	return cleaned, p.summary(original, cleaned)
}

// Log returns the audit trail accumulated so far
func (p *Pipeline) Log() []domain.CleaningLogEntry {
	return p.log
}

func (p *Pipeline) logOperation(operation, details string, rowsBefore, rowsAfter int) {
	p.log = append(p.log, domain.CleaningLogEntry{
		Timestamp:   time.Now().Format(time.RFC3339),
		Operation:   operation,
		Details:     details,
		RowsBefore:  rowsBefore,
		RowsAfter:   rowsAfter,
		RowsChanged: rowsBefore - rowsAfter,
	})
}
