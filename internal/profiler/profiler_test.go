package profiler

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

func mustDataset(t *testing.T, csv string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.NewFromCSV(csv)
	require.NoError(t, err)
	return ds
}

func TestClassify(t *testing.T) {
	t.Run("NumericColumn", func(t *testing.T) {
		ds := mustDataset(t, "amount\n1\n2\n3\n")
		col, _ := ds.Column("amount")
		assert.Equal(t, TypeNumeric, Classify(col))
	})

	t.Run("GeoKeywordOnNumeric", func(t *testing.T) {
		ds := mustDataset(t, "latitude\n40.7\n34.1\n")
		col, _ := ds.Column("latitude")
		assert.Equal(t, TypeGeospatial, Classify(col))
	})

	t.Run("DatetimeByParsing", func(t *testing.T) {
		ds := mustDataset(t, "created\n2024-01-01\n2024-02-01\n2024-03-01\n")
		col, _ := ds.Column("created")
		assert.Equal(t, TypeDatetime, Classify(col))
	})

	t.Run("CategoricalLowCardinality", func(t *testing.T) {
		ds := mustDataset(t, "color\nred\nblue\nred\ngreen\nred\n")
		col, _ := ds.Column("color")
		assert.Equal(t, TypeCategorical, Classify(col))
	})

	t.Run("TextHighCardinality", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("comment\n")
		for i := 0; i < 30; i++ {
			fmt.Fprintf(&b, "totally unique free text value number %d\n", i)
		}
		ds := mustDataset(t, b.String())
		col, _ := ds.Column("comment")
		assert.Equal(t, TypeText, Classify(col))
	})

	t.Run("AllMissingIsOther", func(t *testing.T) {
		ds := mustDataset(t, "a,b\n1,NA\n2,NA\n")
		col, _ := ds.Column("b")
		assert.Equal(t, TypeOther, Classify(col))
	})
}

func TestProfileColumnNumeric(t *testing.T) {
	ds := mustDataset(t, "v\n1\n2\n3\n4\n5\n")
	col, _ := ds.Column("v")
	p := ProfileColumn(col)

	assert.Equal(t, "numeric", p.DataType)
	assert.Equal(t, 5, p.Count)
	assert.Equal(t, 0, p.MissingCount)
	require.NotNil(t, p.Min)
	require.NotNil(t, p.Max)
	require.NotNil(t, p.Mean)
	require.NotNil(t, p.Median)
	assert.Equal(t, 1.0, *p.Min)
	assert.Equal(t, 5.0, *p.Max)
	assert.Equal(t, 3.0, *p.Mean)
	assert.Equal(t, 3.0, *p.Median)
}

func TestProfileColumnIDDetection(t *testing.T) {
	var b strings.Builder
	b.WriteString("user_id\n")
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&b, "%d\n", i)
	}
	ds := mustDataset(t, b.String())
	col, _ := ds.Column("user_id")
	p := ProfileColumn(col)

	assert.True(t, p.IsLikelyID)
}

func TestProfileColumnCategorical(t *testing.T) {
	ds := mustDataset(t, "status\nactive\nactive\ninactive\nactive\n")
	col, _ := ds.Column("status")
	p := ProfileColumn(col)

	assert.Equal(t, "string", p.DataType)
	assert.True(t, p.IsCategorical)
	require.NotEmpty(t, p.TopValues)
	assert.Equal(t, "active", p.TopValues[0].Value)
	assert.Equal(t, 3, p.TopValues[0].Count)
}

func TestProfileColumnDatetime(t *testing.T) {
	ds := mustDataset(t, "date\n2024-01-01\n2024-01-11\n2024-01-21\n")
	col, _ := ds.Column("date")
	p := ProfileColumn(col)

	assert.Equal(t, "datetime", p.DataType)
	require.NotNil(t, p.RangeDays)
	assert.Equal(t, 20, *p.RangeDays)
	assert.NotEmpty(t, p.MinTime)
	assert.NotEmpty(t, p.MaxTime)
}

func TestProfileColumnMissing(t *testing.T) {
	ds := mustDataset(t, "v\n1\nNA\n3\nNA\n")
	col, _ := ds.Column("v")
	p := ProfileColumn(col)

	assert.Equal(t, 2, p.MissingCount)
	assert.InDelta(t, 50.0, p.MissingPercentage, 1e-9)
}

func TestProfileDataset(t *testing.T) {
	ds := mustDataset(t, "name,age\nalice,30\nbob,25\n")
	profiles := ProfileDataset(ds)

	require.Len(t, profiles, 2)
	assert.Contains(t, profiles, "name")
	assert.Contains(t, profiles, "age")
	assert.Equal(t, "numeric", profiles["age"].DataType)
}
