package analyzer

import "github.com/Ajith-oo7/Data-lysis/domain"

// DetermineEDAType routes a dataset to one of the five analysis strategies.
// Decisions are priority ordered: geospatial beats textual beats timeseries
// beats complex, with basic as the fallback.
func DetermineEDAType(c domain.DatasetCharacteristics) domain.EDAType {
	if c.GeospatialColumns >= 2 {
		return domain.EDATypeGeospatial
	}

	if c.Columns > 0 {
		textRatio := float64(c.TextColumns) / float64(c.Columns)
		if c.TextColumns >= 2 || textRatio > 0.3 {
			return domain.EDATypeTextual
		}
	}

	if c.IsTimeSeries && c.DatetimeColumns > 0 {
		return domain.EDATypeTimeseries
	}

	complexConditions := 0
	for _, cond := range []bool{
		c.IsHighDimensional,
		c.ComplexityScore > 60,
		c.HighCardinalityColumns > 3,
		c.IsImbalanced && c.HasTargetVariable,
		c.MissingPercentage > 15,
		c.Columns > 15,
	} {
		if cond {
			complexConditions++
		}
	}
	if complexConditions >= 2 {
		return domain.EDATypeComplex
	}

	return domain.EDATypeBasic
}
