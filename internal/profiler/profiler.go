// Package profiler classifies each column's semantic type and computes
// type-specific descriptive statistics.
package profiler

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

// SemanticType is a column's derived semantic classification. It is never
// stored on the dataset; callers recompute it whenever needed.
type SemanticType string

const (
	TypeNumeric     SemanticType = "numeric"
	TypeCategorical SemanticType = "categorical"
	TypeText        SemanticType = "text"
	TypeDatetime    SemanticType = "datetime"
	TypeGeospatial  SemanticType = "geospatial"
	TypeOther       SemanticType = "other"
)

// geoKeywords mark latitude/longitude columns by name
var geoKeywords = []string{"lat", "lon", "lng", "latitude", "longitude", "coord", "geo"}

// dateKeywords mark probable datetime columns by name
var dateKeywords = []string{"date", "time", "year", "month", "day"}

// HasGeoKeyword reports whether a column name contains a geo keyword
func HasGeoKeyword(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range geoKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// HasDateKeyword reports whether a column name contains a date/time keyword
func HasDateKeyword(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range dateKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// datetimeParseThreshold is the minimum fraction of values that must coerce
// to timestamps for a text column to classify as datetime.
const datetimeParseThreshold = 0.5

// Classify returns the semantic type of a column.
//
// Classification rules:
//   - time storage, or text that mostly parses as timestamps (or carries a
//     date keyword with successful coercion) → datetime
//   - numeric storage with a geo-keyword name → geospatial
//   - numeric storage otherwise → numeric
//   - text: categorical when unique ratio < 0.15 or unique count < 20, else text
func Classify(col *dataset.Column) SemanticType {
	switch col.Type {
	case dataset.TypeTime:
		return TypeDatetime
	case dataset.TypeFloat:
		if HasGeoKeyword(col.Name) {
			return TypeGeospatial
		}
		return TypeNumeric
	}

	nonNull := col.Len() - col.MissingCount()
	if nonNull == 0 {
		return TypeOther
	}

	ratio := dataset.TimeParseRatio(col)
	if ratio >= datetimeParseThreshold || (HasDateKeyword(col.Name) && ratio > 0) {
		return TypeDatetime
	}

	unique := col.UniqueCount()
	uniquePct := float64(unique) / float64(nonNull) * 100
	if uniquePct < 15 || unique < 20 {
		return TypeCategorical
	}
	return TypeText
}

// Profile holds the per-column profile (a superset of the spec's contract;
// unused fields stay at zero values for types they don't apply to).
type Profile struct {
	Name              string `json:"name"`
	DataType          string `json:"data_type"`
	Count             int    `json:"count"`
	MissingCount      int    `json:"missing_count"`
	MissingPercentage float64 `json:"missing_percentage"`
	UniqueCount       int    `json:"unique_count"`
	UniquePercentage  float64 `json:"unique_percentage"`

	// Numeric stats
	Min        *float64 `json:"min,omitempty"`
	Max        *float64 `json:"max,omitempty"`
	Mean       *float64 `json:"mean,omitempty"`
	Median     *float64 `json:"median,omitempty"`
	Std        *float64 `json:"std,omitempty"`
	IsLikelyID bool     `json:"is_likely_id,omitempty"`

	// String stats
	MinLength     int     `json:"min_length,omitempty"`
	MaxLength     int     `json:"max_length,omitempty"`
	AvgLength     float64 `json:"avg_length,omitempty"`
	IsCategorical bool    `json:"is_categorical,omitempty"`
	TopValues     []dataset.ValueCount `json:"top_values,omitempty"`

	// Datetime stats
	MinTime   string `json:"min_time,omitempty"`
	MaxTime   string `json:"max_time,omitempty"`
	RangeDays *int   `json:"range_days,omitempty"`
}

// topValueLimit caps the top-N value/frequency pairs reported for
// categorical columns.
const topValueLimit = 10

// ProfileColumn computes the full profile for one column. Empty (all-missing)
// columns yield zeroed stats rather than an error.
func ProfileColumn(col *dataset.Column) Profile {
	p := Profile{
		Name:         col.Name,
		Count:        col.Len(),
		MissingCount: col.MissingCount(),
		UniqueCount:  col.UniqueCount(),
	}
	if p.Count > 0 {
		p.MissingPercentage = float64(p.MissingCount) / float64(p.Count) * 100
		p.UniquePercentage = float64(p.UniqueCount) / float64(p.Count) * 100
	}

	switch Classify(col) {
	case TypeNumeric, TypeGeospatial:
		p.DataType = "numeric"
		profileNumeric(col, &p)
	case TypeDatetime:
		p.DataType = "datetime"
		profileDatetime(col, &p)
	case TypeCategorical, TypeText:
		p.DataType = "string"
		profileString(col, &p)
	default:
		p.DataType = "other"
	}
	return p
}

// ProfileDataset profiles every column, keyed by name
func ProfileDataset(ds *dataset.Dataset) map[string]Profile {
	out := make(map[string]Profile, ds.NumColumns())
	for _, col := range ds.Columns() {
		out[col.Name] = ProfileColumn(col)
	}
	return out
}

func profileNumeric(col *dataset.Column, p *Profile) {
	values := col.Floats()
	if len(values) == 0 {
		return
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	minV, maxV := sorted[0], sorted[len(sorted)-1]
	mean := stat.Mean(values, nil)
	median := medianSorted(sorted)
	p.Min, p.Max, p.Mean, p.Median = &minV, &maxV, &mean, &median
	if len(values) > 1 {
		std := stat.StdDev(values, nil)
		p.Std = &std
	}
	p.IsLikelyID = p.UniquePercentage > 90 && p.MissingPercentage < 5
}

func profileString(col *dataset.Column, p *Profile) {
	values := col.Strings()
	if len(values) == 0 {
		return
	}
	minLen, maxLen, total := len(values[0]), len(values[0]), 0
	for _, s := range values {
		n := len(s)
		if n < minLen {
			minLen = n
		}
		if n > maxLen {
			maxLen = n
		}
		total += n
	}
	p.MinLength = minLen
	p.MaxLength = maxLen
	p.AvgLength = float64(total) / float64(len(values))

	// categorical vs free text: unique% of non-null values < 15 or unique count < 20
	uniquePct := float64(p.UniqueCount) / float64(len(values)) * 100
	p.IsCategorical = uniquePct < 15 || p.UniqueCount < 20

	if p.IsCategorical {
		counts := col.ValueCounts()
		if len(counts) > topValueLimit {
			counts = counts[:topValueLimit]
		}
		p.TopValues = counts
	}
}

func profileDatetime(col *dataset.Column, p *Profile) {
	c := col
	if c.Type != dataset.TypeTime {
		c = dataset.CoerceToTime(col)
	}
	times := c.Times()
	if len(times) == 0 {
		return
	}
	minT, maxT := times[0], times[0]
	for _, t := range times {
		if t.Before(minT) {
			minT = t
		}
		if t.After(maxT) {
			maxT = t
		}
	}
	p.MinTime = minT.Format("2006-01-02T15:04:05")
	p.MaxTime = maxT.Format("2006-01-02T15:04:05")
	days := int(maxT.Sub(minT).Hours() / 24)
	p.RangeDays = &days
}

func medianSorted(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
