package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ajith-oo7/Data-lysis/domain"
)

func TestDetermineEDAType(t *testing.T) {
	tests := []struct {
		name  string
		chars domain.DatasetCharacteristics
		want  domain.EDAType
	}{
		{
			name: "SmallCleanTableIsBasic",
			chars: domain.DatasetCharacteristics{
				Rows: 100, Columns: 5, NumericColumns: 3, CategoricalColumns: 2,
			},
			want: domain.EDATypeBasic,
		},
		{
			name: "TwoGeoColumnsIsGeospatial",
			chars: domain.DatasetCharacteristics{
				Rows: 100, Columns: 6, GeospatialColumns: 2,
			},
			want: domain.EDATypeGeospatial,
		},
		{
			name: "GeospatialBeatsTextual",
			chars: domain.DatasetCharacteristics{
				Rows: 100, Columns: 6, GeospatialColumns: 2, TextColumns: 3,
			},
			want: domain.EDATypeGeospatial,
		},
		{
			name: "TwoTextColumnsIsTextual",
			chars: domain.DatasetCharacteristics{
				Rows: 100, Columns: 8, TextColumns: 2,
			},
			want: domain.EDATypeTextual,
		},
		{
			name: "TextRatioAboveThirtyPercentIsTextual",
			chars: domain.DatasetCharacteristics{
				Rows: 100, Columns: 3, TextColumns: 1,
			},
			want: domain.EDATypeTextual,
		},
		{
			name: "DatetimeDrivenTimeseries",
			chars: domain.DatasetCharacteristics{
				Rows: 500, Columns: 4, DatetimeColumns: 1, IsTimeSeries: true,
			},
			want: domain.EDATypeTimeseries,
		},
		{
			name: "TimeKeywordWithoutDatetimeColumnStaysBasic",
			chars: domain.DatasetCharacteristics{
				Rows: 100, Columns: 4, IsTimeSeries: true, DatetimeColumns: 0,
			},
			want: domain.EDATypeBasic,
		},
		{
			name: "TwoComplexConditionsIsComplex",
			chars: domain.DatasetCharacteristics{
				Rows: 5000, Columns: 25, NumericColumns: 18,
				IsHighDimensional: true, ComplexityScore: 70,
			},
			want: domain.EDATypeComplex,
		},
		{
			name: "OneComplexConditionIsNotEnough",
			chars: domain.DatasetCharacteristics{
				Rows: 5000, Columns: 12, MissingPercentage: 20,
			},
			want: domain.EDATypeBasic,
		},
		{
			name: "ImbalancedTargetPlusWideTableIsComplex",
			chars: domain.DatasetCharacteristics{
				Rows: 2000, Columns: 16,
				IsImbalanced: true, HasTargetVariable: true,
			},
			want: domain.EDATypeComplex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineEDAType(tt.chars))
		})
	}
}

func TestComplexityScoreMonotonicity(t *testing.T) {
	small := complexityScore(domain.DatasetCharacteristics{Rows: 100, Columns: 5, NumericColumns: 2})
	large := complexityScore(domain.DatasetCharacteristics{
		Rows: 50000, Columns: 60, NumericColumns: 20, TextColumns: 5,
		IsTimeSeries: true, GeospatialColumns: 2, MissingPercentage: 25,
	})

	assert.Less(t, small, large)
	assert.LessOrEqual(t, large, 100.0)
	assert.Greater(t, small, 0.0)
}
