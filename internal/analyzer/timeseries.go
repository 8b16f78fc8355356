package analyzer

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
	"github.com/Ajith-oo7/Data-lysis/internal/profiler"
)

// datetimeCandidates returns the datetime columns, falling back to string
// columns whose names look date-like when none carry a datetime dtype. String
// candidates are coerced so downstream steps always see timestamps.
func datetimeCandidates(ds *dataset.Dataset) []*dataset.Column {
	cols := timeColumns(ds)
	if len(cols) > 0 {
		return cols
	}
	for _, col := range ds.Columns() {
		if col.Type == dataset.TypeString && profiler.HasDateKeyword(col.Name) {
			cols = append(cols, dataset.CoerceToTime(col))
		}
	}
	return cols
}

func temporalPatterns(ds *dataset.Dataset) map[string]any {
	candidates := datetimeCandidates(ds)
	if len(candidates) == 0 {
		return map[string]any{"message": "No datetime columns found for temporal analysis"}
	}

	patterns := map[string]any{}
	for i, col := range candidates {
		if i >= 2 {
			break
		}
		times := col.Times()
		if len(times) == 0 {
			continue
		}
		sorted := append([]time.Time(nil), times...)
		sort.Slice(sorted, func(a, b int) bool { return sorted[a].Before(sorted[b]) })
		start, end := sorted[0], sorted[len(sorted)-1]

		byYear := map[int]int{}
		byMonth := map[int]int{}
		byWeekday := map[int]int{}
		byHour := map[int]int{}
		hourSum := 0
		for _, t := range times {
			byYear[t.Year()]++
			byMonth[int(t.Month())]++
			// Monday=0 to match the original reports
			byWeekday[(int(t.Weekday())+6)%7]++
			byHour[t.Hour()]++
			hourSum += t.Hour()
		}
		if hourSum == 0 {
			byHour = map[int]int{}
		}

		patterns[col.Name] = map[string]any{
			"date_range": map[string]any{
				"start":     start.Format(time.RFC3339),
				"end":       end.Format(time.RFC3339),
				"span_days": int(end.Sub(start).Hours() / 24),
			},
			"temporal_distribution": map[string]any{
				"by_year":        byYear,
				"by_month":       byMonth,
				"by_day_of_week": byWeekday,
				"by_hour":        byHour,
			},
			"frequency_analysis": frequencyAnalysis(sorted),
		}
	}
	return patterns
}

// frequencyAnalysis inspects gaps between consecutive sorted timestamps
func frequencyAnalysis(sorted []time.Time) map[string]any {
	if len(sorted) < 2 {
		return map[string]any{"message": "Insufficient data for frequency analysis"}
	}

	var diffDays []float64
	var zeroGaps int
	modeCounts := map[int]int{}
	for i := 1; i < len(sorted); i++ {
		days := sorted[i].Sub(sorted[i-1]).Hours() / 24
		whole := int(days)
		diffDays = append(diffDays, float64(whole))
		modeCounts[whole]++
		if whole == 0 {
			zeroGaps++
		}
	}

	modeDays, modeCount := 0, -1
	for d, c := range modeCounts {
		if c > modeCount || (c == modeCount && d < modeDays) {
			modeDays, modeCount = d, c
		}
	}

	avg := mean(diffDays)
	return map[string]any{
		"average_interval_days":     avg,
		"median_interval_days":      quantile(diffDays, 0.5),
		"most_common_interval_days": float64(modeDays),
		"irregular_intervals":       zeroGaps,
		"frequency_assessment":      assessFrequency(avg),
	}
}

func assessFrequency(avgDays float64) string {
	switch {
	case avgDays < 1:
		return "sub_daily"
	case avgDays <= 1.5:
		return "daily"
	case avgDays <= 8:
		return "weekly"
	case avgDays <= 32:
		return "monthly"
	case avgDays <= 95:
		return "quarterly"
	case avgDays <= 370:
		return "yearly"
	default:
		return "irregular"
	}
}

// timeValuePairs joins a datetime column with a numeric column, dropping rows
// missing either side, sorted by time.
func timeValuePairs(dateCol, numCol *dataset.Column) ([]time.Time, []float64) {
	type pair struct {
		t time.Time
		v float64
	}
	var pairs []pair
	for i := 0; i < dateCol.Len() && i < numCol.Len(); i++ {
		t, okT := dateCol.Cells[i].Timestamp()
		v, okV := numCol.Cells[i].Float64()
		if okT && okV {
			pairs = append(pairs, pair{t, v})
		}
	}
	sort.SliceStable(pairs, func(a, b int) bool { return pairs[a].t.Before(pairs[b].t) })
	ts := make([]time.Time, len(pairs))
	vs := make([]float64, len(pairs))
	for i, p := range pairs {
		ts[i] = p.t
		vs[i] = p.v
	}
	return ts, vs
}

// seasonalityAnalysis reports monthly and weekly averages of numeric series
// against the primary datetime column, with coefficients of variation.
func seasonalityAnalysis(ds *dataset.Dataset) map[string]any {
	dateCols := datetimeCandidates(ds)
	numericCols := numericColumns(ds)
	if len(dateCols) == 0 || len(numericCols) == 0 {
		return map[string]any{"message": "Need both datetime and numeric columns for seasonality analysis"}
	}

	seasonality := map[string]any{}
	dateCol := dateCols[0]
	for i, numCol := range numericCols {
		if i >= 3 {
			break
		}
		ts, vs := timeValuePairs(dateCol, numCol)
		if len(ts) < 12 {
			continue
		}

		monthly := groupedMeans(ts, vs, func(t time.Time) int { return int(t.Month()) })
		weekly := groupedMeans(ts, vs, func(t time.Time) int { return (int(t.Weekday()) + 6) % 7 })

		seasonality[fmt.Sprintf("%s_%s", dateCol.Name, numCol.Name)] = map[string]any{
			"monthly_averages": monthly,
			"weekly_averages":  weekly,
			"seasonal_variance": map[string]any{
				"monthly_cv": coefficientOfVariation(mapValues(monthly)),
				"weekly_cv":  coefficientOfVariation(mapValues(weekly)),
			},
		}
	}
	return seasonality
}

func groupedMeans(ts []time.Time, vs []float64, key func(time.Time) int) map[int]float64 {
	sums := map[int]float64{}
	counts := map[int]int{}
	for i, t := range ts {
		k := key(t)
		sums[k] += vs[i]
		counts[k]++
	}
	means := map[int]float64{}
	for k, s := range sums {
		means[k] = s / float64(counts[k])
	}
	return means
}

func mapValues(m map[int]float64) []float64 {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	values := make([]float64, len(keys))
	for i, k := range keys {
		values[i] = m[k]
	}
	return values
}

func coefficientOfVariation(values []float64) float64 {
	m := mean(values)
	if m == 0 || math.IsNaN(m) {
		return 0
	}
	return finiteOr(stdDev(values)/m, 0)
}

// trendAnalysis fits a linear trend to each numeric series over time order
// and reports slope, fit quality, and a moving average.
func trendAnalysis(ds *dataset.Dataset) map[string]any {
	dateCols := datetimeCandidates(ds)
	numericCols := numericColumns(ds)
	if len(dateCols) == 0 || len(numericCols) == 0 {
		return map[string]any{"message": "Need both datetime and numeric columns for trend analysis"}
	}

	trends := map[string]any{}
	dateCol := dateCols[0]
	for i, numCol := range numericCols {
		if i >= 3 {
			break
		}
		ts, vs := timeValuePairs(dateCol, numCol)
		if len(ts) < 5 {
			continue
		}

		xs := make([]float64, len(vs))
		for j := range xs {
			xs[j] = float64(j)
		}
		slope, intercept := linearFit(xs, vs)
		r := corrSlices(xs, vs)
		rSquared := finiteOr(r*r, 0)

		windowSize := len(vs) / 3
		if windowSize > 7 {
			windowSize = 7
		}
		var movingAvg []float64
		direction := "insufficient_data"
		if windowSize >= 2 {
			movingAvg = rollingMean(vs, windowSize)
			switch {
			case slope > 0:
				direction = "increasing"
			case slope < 0:
				direction = "decreasing"
			default:
				direction = "stable"
			}
		} else {
			movingAvg = vs
		}

		strength := "weak"
		if rSquared > 0.7 {
			strength = "strong"
		} else if rSquared > 0.3 {
			strength = "moderate"
		}

		trends[fmt.Sprintf("%s_%s", dateCol.Name, numCol.Name)] = map[string]any{
			"linear_trend": map[string]any{
				"slope":     finite(slope),
				"intercept": finite(intercept),
				"r_squared": rSquared,
				"direction": direction,
			},
			"moving_average": movingAvg,
			"trend_strength": strength,
		}
	}
	return trends
}

func linearFit(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))
	if n == 0 {
		return 0, 0
	}
	mx, my := mean(xs), mean(ys)
	var sxx, sxy float64
	for i := range xs {
		dx := xs[i] - mx
		sxx += dx * dx
		sxy += dx * (ys[i] - my)
	}
	if sxx == 0 {
		return 0, my
	}
	slope = sxy / sxx
	intercept = my - slope*mx
	return slope, intercept
}

// rollingMean drops the leading window-1 positions, like a trailing window
func rollingMean(vs []float64, window int) []float64 {
	if window < 1 || len(vs) < window {
		return nil
	}
	out := make([]float64, 0, len(vs)-window+1)
	var sum float64
	for i, v := range vs {
		sum += v
		if i >= window {
			sum -= vs[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out
}

// timeSeriesDecomposition splits each series into trend (centered moving
// average), monthly seasonal means, and residual. Requires at least 24
// observations.
func timeSeriesDecomposition(ds *dataset.Dataset) map[string]any {
	dateCols := datetimeCandidates(ds)
	numericCols := numericColumns(ds)
	if len(dateCols) == 0 || len(numericCols) == 0 {
		return map[string]any{"message": "Need both datetime and numeric columns for decomposition"}
	}

	decomposition := map[string]any{}
	dateCol := dateCols[0]
	for i, numCol := range numericCols {
		if i >= 2 {
			break
		}
		ts, vs := timeValuePairs(dateCol, numCol)
		if len(ts) < 24 {
			continue
		}

		windowSize := len(vs) / 4
		if windowSize > 12 {
			windowSize = 12
		}
		trend := centeredRollingMean(vs, windowSize)

		detrended := make([]float64, len(vs))
		for j := range vs {
			if math.IsNaN(trend[j]) {
				detrended[j] = math.NaN()
			} else {
				detrended[j] = vs[j] - trend[j]
			}
		}

		seasonal := monthlySeasonal(ts, detrended)
		residual := make([]float64, len(vs))
		for j := range vs {
			residual[j] = detrended[j] - seasonal[j]
		}

		totalVar := variance(vs)
		trendVarExplained := 0.0
		seasonalStrength := 0.0
		if totalVar != 0 {
			trendVarExplained = finiteOr(1-varianceNaN(trend)/totalVar, 0)
			seasonalStrength = finiteOr(varianceNaN(seasonal)/totalVar, 0)
		}

		decomposition[fmt.Sprintf("%s_%s", dateCol.Name, numCol.Name)] = map[string]any{
			"trend_component":    dropNaN(trend),
			"seasonal_component": dropNaN(seasonal),
			"residual_component": dropNaN(residual),
			"decomposition_quality": map[string]any{
				"trend_variance_explained": trendVarExplained,
				"seasonal_strength":        seasonalStrength,
			},
		}
	}
	return decomposition
}

// centeredRollingMean pads the edges with NaN
func centeredRollingMean(vs []float64, window int) []float64 {
	out := make([]float64, len(vs))
	half := window / 2
	for i := range vs {
		lo := i - half
		hi := lo + window
		if lo < 0 || hi > len(vs) {
			out[i] = math.NaN()
			continue
		}
		var sum float64
		for _, v := range vs[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(window)
	}
	return out
}

// monthlySeasonal assigns each position the mean detrended value of its month
func monthlySeasonal(ts []time.Time, detrended []float64) []float64 {
	sums := map[int]float64{}
	counts := map[int]int{}
	for i, t := range ts {
		if math.IsNaN(detrended[i]) {
			continue
		}
		m := int(t.Month())
		sums[m] += detrended[i]
		counts[m]++
	}
	out := make([]float64, len(ts))
	for i, t := range ts {
		m := int(t.Month())
		if counts[m] == 0 {
			out[i] = 0
			continue
		}
		out[i] = sums[m] / float64(counts[m])
	}
	return out
}

func variance(vs []float64) float64 {
	sd := stdDev(vs)
	return sd * sd
}

func varianceNaN(vs []float64) float64 {
	var clean []float64
	for _, v := range vs {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	return variance(clean)
}

func dropNaN(vs []float64) []float64 {
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// autocorrelationAnalysis computes lagged self-correlation for the first
// three numeric columns, flagging lags with |r| > 0.3 as significant.
func autocorrelationAnalysis(ds *dataset.Dataset) map[string]any {
	autocorr := map[string]any{}
	for i, col := range numericColumns(ds) {
		if i >= 3 {
			break
		}
		values := col.Floats()
		if len(values) < 10 {
			continue
		}

		maxLags := len(values) / 4
		if maxLags > 20 {
			maxLags = 20
		}
		var lagValues []map[string]any
		var significant []map[string]any
		best := map[string]any(nil)
		bestAbs := -1.0
		for lag := 1; lag <= maxLags; lag++ {
			r := finiteOr(corrSlices(values[:len(values)-lag], values[lag:]), 0)
			entry := map[string]any{"lag": lag, "autocorrelation": r}
			lagValues = append(lagValues, entry)
			if math.Abs(r) > 0.3 {
				significant = append(significant, entry)
			}
			if math.Abs(r) > bestAbs {
				bestAbs = math.Abs(r)
				best = entry
			}
		}

		autocorr[col.Name] = map[string]any{
			"autocorrelation_values": lagValues,
			"significant_lags":       significant,
			"max_autocorr":           best,
		}
	}
	return autocorr
}
