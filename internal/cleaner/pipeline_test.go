package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ajith-oo7/Data-lysis/domain"
	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

func mustDataset(t *testing.T, csv string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.NewFromCSV(csv)
	require.NoError(t, err)
	return ds
}

func onlyStages(set func(*domain.CleaningOptions)) *domain.CleaningOptions {
	opts := &domain.CleaningOptions{
		Missing: domain.MissingOptions{
			ColumnMissingThreshold: 0.5,
			RowMissingThreshold:    0.7,
			ImputationStrategy:     "smart",
		},
		Outliers: domain.OutlierOptions{Method: "iqr", Action: "cap"},
	}
	set(opts)
	return opts
}

func TestHandleMissing(t *testing.T) {
	t.Run("DropsMostlyMissingColumn", func(t *testing.T) {
		ds := mustDataset(t, "a,b\n1,NA\n2,NA\n3,NA\n4,x\n")
		p := NewPipeline(onlyStages(func(o *domain.CleaningOptions) { o.HandleMissing = true }))

		cleaned, _ := p.Clean(ds)
		assert.False(t, cleaned.HasColumn("b"))
		assert.True(t, cleaned.HasColumn("a"))
	})

	t.Run("ImputesRemainingNulls", func(t *testing.T) {
		ds := mustDataset(t, "v,w\n1,a\nNA,a\n3,NA\n5,b\n")
		p := NewPipeline(onlyStages(func(o *domain.CleaningOptions) { o.HandleMissing = true }))

		cleaned, _ := p.Clean(ds)
		v, _ := cleaned.Column("v")
		assert.Equal(t, 0, v.MissingCount())

		w, _ := cleaned.Column("w")
		assert.Equal(t, 0, w.MissingCount())
		// mode imputation picks the most frequent value
		s, _ := w.Cells[2].Text()
		assert.Equal(t, "a", s)
	})

	t.Run("MissingIndicators", func(t *testing.T) {
		ds := mustDataset(t, "v\n1\nNA\n3\n")
		p := NewPipeline(onlyStages(func(o *domain.CleaningOptions) {
			o.HandleMissing = true
			o.Missing.CreateMissingIndicators = true
		}))

		cleaned, _ := p.Clean(ds)
		ind, ok := cleaned.Column("v_was_missing")
		require.True(t, ok)
		assert.Equal(t, []float64{0, 1, 0}, ind.Floats())
	})
}

func TestCorrectTypes(t *testing.T) {
	ds := mustDataset(t, "price\n$1.50\n$2.00\n$3.25\n")
	p := NewPipeline(onlyStages(func(o *domain.CleaningOptions) { o.CorrectTypes = true }))

	cleaned, _ := p.Clean(ds)
	price, _ := cleaned.Column("price")
	assert.Equal(t, dataset.TypeFloat, price.Type)
	assert.Equal(t, []float64{1.5, 2.0, 3.25}, price.Floats())
}

func TestRemoveDuplicates(t *testing.T) {
	ds := mustDataset(t, "a,b\n1,x\n1,x\n2,y\n")
	p := NewPipeline(onlyStages(func(o *domain.CleaningOptions) { o.RemoveDuplicates = true }))

	cleaned, summary := p.Clean(ds)
	assert.Equal(t, 2, cleaned.NumRows())
	assert.Equal(t, 1, summary.RowsRemoved)

	// Idempotent: cleaning again removes nothing
	p2 := NewPipeline(onlyStages(func(o *domain.CleaningOptions) { o.RemoveDuplicates = true }))
	again, summary2 := p2.Clean(cleaned)
	assert.Equal(t, 2, again.NumRows())
	assert.Equal(t, 0, summary2.RowsRemoved)
}

func TestHandleOutliers(t *testing.T) {
	t.Run("IQRCapBounds", func(t *testing.T) {
		// Q1=2, Q3=4, IQR=2 so the cap bounds are [-1, 7]
		ds := mustDataset(t, "v\n1\n2\n3\n4\n100\n")
		p := NewPipeline(onlyStages(func(o *domain.CleaningOptions) { o.HandleOutliers = true }))

		cleaned, _ := p.Clean(ds)
		v, _ := cleaned.Column("v")
		values := v.Floats()
		assert.Equal(t, []float64{1, 2, 3, 4, 7}, values)
	})

	t.Run("RemoveAction", func(t *testing.T) {
		ds := mustDataset(t, "v\n1\n2\n3\n4\n100\n")
		p := NewPipeline(onlyStages(func(o *domain.CleaningOptions) {
			o.HandleOutliers = true
			o.Outliers.Action = "remove"
		}))

		cleaned, _ := p.Clean(ds)
		assert.Equal(t, 4, cleaned.NumRows())
	})

	t.Run("KeepActionLeavesData", func(t *testing.T) {
		ds := mustDataset(t, "v\n1\n2\n3\n4\n100\n")
		p := NewPipeline(onlyStages(func(o *domain.CleaningOptions) {
			o.HandleOutliers = true
			o.Outliers.Action = "keep"
		}))

		cleaned, _ := p.Clean(ds)
		v, _ := cleaned.Column("v")
		assert.Contains(t, v.Floats(), 100.0)
	})
}

func TestStandardize(t *testing.T) {
	ds := mustDataset(t, "v\n1\n2\n3\n4\n5\n")
	p := NewPipeline(onlyStages(func(o *domain.CleaningOptions) {
		o.Standardize = true
		o.Scaling.Method = "minmax"
	}))

	cleaned, _ := p.Clean(ds)
	v, _ := cleaned.Column("v")
	values := v.Floats()
	assert.InDelta(t, 0.0, values[0], 1e-9)
	assert.InDelta(t, 1.0, values[4], 1e-9)
}

func TestCleanText(t *testing.T) {
	ds := mustDataset(t, "name\n  ALICE   SMITH \nBob\n")
	p := NewPipeline(onlyStages(func(o *domain.CleaningOptions) {
		o.CleanText = true
		o.Text = domain.TextOptions{NormalizeCase: true, RemoveExtraSpaces: true}
	}))

	cleaned, _ := p.Clean(ds)
	name, _ := cleaned.Column("name")
	s, _ := name.Cells[0].Text()
	assert.Equal(t, "alice smith", s)
}

func TestEncodeCategorical(t *testing.T) {
	t.Run("OneHot", func(t *testing.T) {
		ds := mustDataset(t, "color\nred\nblue\nred\n")
		p := NewPipeline(onlyStages(func(o *domain.CleaningOptions) {
			o.CorrectTypes = true
			o.EncodeCategorical = true
			o.Encoding = domain.EncodingOptions{Method: "onehot", MaxCategoriesOneHot: 10}
		}))

		cleaned, _ := p.Clean(ds)
		red, ok := cleaned.Column("color_red")
		require.True(t, ok)
		assert.Equal(t, []float64{1, 0, 1}, red.Floats())
	})

	t.Run("LabelEncoding", func(t *testing.T) {
		ds := mustDataset(t, "size\nsmall\nlarge\nsmall\n")
		p := NewPipeline(onlyStages(func(o *domain.CleaningOptions) {
			o.CorrectTypes = true
			o.EncodeCategorical = true
			o.Encoding = domain.EncodingOptions{Method: "label"}
		}))

		cleaned, _ := p.Clean(ds)
		size, _ := cleaned.Column("size")
		assert.Equal(t, dataset.TypeFloat, size.Type)
		values := size.Floats()
		assert.Equal(t, values[0], values[2])
		assert.NotEqual(t, values[0], values[1])
	})
}

func TestAuditLog(t *testing.T) {
	ds := mustDataset(t, "v\n1\n1\n2\n3\n4\n100\nNA\n")
	p := NewPipeline(domain.DefaultCleaningOptions())

	_, summary := p.Clean(ds)
	log := p.Log()

	require.NotEmpty(t, log)
	assert.Equal(t, len(log), summary.CleaningOperations)
	for _, entry := range log {
		assert.NotEmpty(t, entry.Timestamp)
		assert.NotEmpty(t, entry.Operation)
		assert.NotEmpty(t, entry.Details)
	}
}

func TestCleaningSummary(t *testing.T) {
	ds := mustDataset(t, "a,b\n1,x\n1,x\nNA,y\n3,z\n")
	p := NewPipeline(domain.DefaultCleaningOptions())

	cleaned, summary := p.Clean(ds)

	assert.Equal(t, domain.Shape{Rows: 4, Columns: 2}, summary.OriginalShape)
	assert.Equal(t, cleaned.NumRows(), summary.FinalShape.Rows)
	assert.GreaterOrEqual(t, summary.QualityImprovement.CompletenessAfter, summary.QualityImprovement.CompletenessBefore)
	assert.Len(t, summary.FinalDataTypes, cleaned.NumColumns())

	for _, count := range summary.MissingValuesFinal {
		assert.Zero(t, count)
	}
}

func TestEmptyOptionsPipelineIsIdentity(t *testing.T) {
	ds := mustDataset(t, "a\n1\n2\n")
	p := NewPipeline(&domain.CleaningOptions{})

	cleaned, summary := p.Clean(ds)
	assert.Equal(t, 2, cleaned.NumRows())
	assert.Equal(t, 0, summary.CleaningOperations)
	assert.Empty(t, p.Log())
}
