package analyzer

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

func multivariateAnalysis(ds *dataset.Dataset, targetColumn string) map[string]any {
	numericCols := numericColumns(ds)
	if len(numericCols) < 3 {
		return map[string]any{"message": "Insufficient numeric variables for multivariate analysis"}
	}

	result := map[string]any{
		"partial_correlations": partialCorrelationProxy(numericCols),
		"multicollinearity":    vifProxy(numericCols),
	}
	if targetColumn != "" && ds.HasColumn(targetColumn) {
		result["target_analysis"] = targetRelationships(ds, targetColumn)
	} else {
		result["target_analysis"] = nil
	}
	return result
}

// partialCorrelationProxy returns the plain correlation matrix with a note;
// true partial correlations need a precision-matrix inversion that this
// report does not attempt.
func partialCorrelationProxy(cols []*dataset.Column) map[string]any {
	matrix := map[string]map[string]any{}
	for i, a := range cols {
		row := map[string]any{}
		for j, b := range cols {
			r := pairwiseCorrelation(a, b)
			if i == j {
				r = 1
			}
			row[b.Name] = finite(round3(r))
		}
		matrix[a.Name] = row
	}
	return map[string]any{
		"note":               "Simplified correlation analysis - partial correlations require advanced implementation",
		"correlation_matrix": matrix,
	}
}

// vifProxy approximates the variance inflation factor for each numeric
// column as 1/(1-r^2) against the row-mean of the remaining columns,
// capped at 999 when |r| >= 0.99.
func vifProxy(cols []*dataset.Column) map[string]float64 {
	vif := map[string]float64{}
	n := cols[0].Len()
	for idx, col := range cols {
		var xs, ys []float64
		for i := 0; i < n; i++ {
			v, ok := col.Cells[i].Float64()
			if !ok {
				continue
			}
			var sum float64
			var count int
			for j, other := range cols {
				if j == idx {
					continue
				}
				if ov, ook := other.Cells[i].Float64(); ook {
					sum += ov
					count++
				}
			}
			if count == 0 {
				continue
			}
			xs = append(xs, v)
			ys = append(ys, sum/float64(count))
		}
		r := corrSlices(xs, ys)
		if math.IsNaN(r) {
			continue
		}
		if math.Abs(r) >= 0.99 {
			vif[col.Name] = 999
		} else {
			vif[col.Name] = 1 / (1 - r*r)
		}
	}
	return vif
}

func targetRelationships(ds *dataset.Dataset, targetColumn string) map[string]any {
	target, _ := ds.Column(targetColumn)
	if target.Type == dataset.TypeFloat {
		values := target.Floats()
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, v := range values {
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}
		return map[string]any{
			"target_type": "numeric",
			"target_summary": map[string]any{
				"mean": finite(mean(values)),
				"std":  finite(stdDev(values)),
				"min":  finite(minV),
				"max":  finite(maxV),
			},
		}
	}

	counts := target.ValueCounts()
	distribution := map[string]int{}
	for _, vc := range counts {
		distribution[vc.Value] = vc.Count
	}
	summary := map[string]any{
		"unique_values": len(counts),
		"distribution":  distribution,
	}
	if len(counts) > 0 {
		summary["most_common"] = counts[0].Value
	}
	return map[string]any{
		"target_type":    "categorical",
		"target_summary": summary,
	}
}

// dimensionalityReduction runs PCA on the standardized complete rows of the
// numeric columns and reports explained variance plus the leading components.
func dimensionalityReduction(ds *dataset.Dataset) map[string]any {
	numericCols := numericColumns(ds)
	if len(numericCols) < 3 {
		return map[string]any{"message": "Insufficient numeric variables for PCA"}
	}

	rows := completeRows(numericCols)
	if len(rows) == 0 {
		return map[string]any{"message": "No valid data for PCA after removing missing values"}
	}

	scaled := standardized(numericCols)
	data := mat.NewDense(len(scaled), len(numericCols), nil)
	for i, row := range scaled {
		data.SetRow(i, row)
	}

	var pc stat.PC
	if !pc.PrincipalComponents(data, nil) {
		return map[string]any{"message": "PCA decomposition failed"}
	}

	varSlice := pc.VarsTo(nil)
	var totalVar float64
	for _, v := range varSlice {
		totalVar += v
	}
	explained := make([]float64, len(varSlice))
	cumulative := make([]float64, len(varSlice))
	running := 0.0
	for i, v := range varSlice {
		if totalVar > 0 {
			explained[i] = v / totalVar
		}
		running += explained[i]
		cumulative[i] = running
	}

	n95 := componentsForVariance(cumulative, 0.95)
	n90 := componentsForVariance(cumulative, 0.90)

	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	nComponents := len(varSlice)
	if nComponents > 5 {
		nComponents = 5
	}
	components := make([][]float64, nComponents)
	for i := 0; i < nComponents; i++ {
		comp := make([]float64, len(numericCols))
		for j := range comp {
			comp[j] = vecs.At(j, i)
		}
		components[i] = comp
	}

	return map[string]any{
		"explained_variance_ratio":   explained,
		"cumulative_variance":        cumulative,
		"components_for_95_variance": n95,
		"components_for_90_variance": n90,
		"total_components":           len(numericCols),
		"principal_components":       components,
	}
}

func componentsForVariance(cumulative []float64, threshold float64) int {
	for i, v := range cumulative {
		if v >= threshold {
			return i + 1
		}
	}
	return len(cumulative)
}

func completeRows(cols []*dataset.Column) [][]float64 {
	if len(cols) == 0 {
		return nil
	}
	var rows [][]float64
	for i := 0; i < cols[0].Len(); i++ {
		point := make([]float64, len(cols))
		ok := true
		for j, col := range cols {
			v, present := col.Cells[i].Float64()
			if !present {
				ok = false
				break
			}
			point[j] = v
		}
		if ok {
			rows = append(rows, point)
		}
	}
	return rows
}

// featureImportance ranks numeric features by mutual information with the
// target. Continuous variables are discretized into deciles first; the
// regression/classification branch is chosen by the target's dtype.
func featureImportance(ds *dataset.Dataset, targetColumn string) map[string]any {
	if targetColumn == "" || !ds.HasColumn(targetColumn) {
		return map[string]any{"message": "Target column required for feature importance analysis"}
	}

	target, _ := ds.Column(targetColumn)
	var featureCols []*dataset.Column
	for _, col := range numericColumns(ds) {
		if col.Name != targetColumn {
			featureCols = append(featureCols, col)
		}
	}
	if len(featureCols) < 2 {
		return map[string]any{"message": "Insufficient features for importance analysis"}
	}

	// rows complete across all features and the target
	all := append(append([]*dataset.Column{}, featureCols...), target)
	rowsOK := make([]bool, target.Len())
	complete := 0
	for i := range rowsOK {
		ok := true
		for _, col := range all {
			if i >= col.Len() || col.Cells[i].IsNull() {
				ok = false
				break
			}
		}
		rowsOK[i] = ok
		if ok {
			complete++
		}
	}
	if complete < 10 {
		return map[string]any{"message": "Insufficient data after removing missing values"}
	}

	isRegression := target.Type == dataset.TypeFloat
	targetLabels := discretizeColumn(target, rowsOK)

	type scored struct {
		Feature    string  `json:"feature"`
		Importance float64 `json:"importance"`
	}
	ranking := make([]scored, 0, len(featureCols))
	for _, col := range featureCols {
		labels := discretizeColumn(col, rowsOK)
		ranking = append(ranking, scored{Feature: col.Name, Importance: round3(mutualInformation(labels, targetLabels))})
	}
	sort.SliceStable(ranking, func(i, j int) bool { return ranking[i].Importance > ranking[j].Importance })

	analysisType := "classification"
	if isRegression {
		analysisType = "regression"
	}
	top := ranking
	if len(top) > 5 {
		top = top[:5]
	}
	return map[string]any{
		"feature_importance": ranking,
		"analysis_type":      analysisType,
		"top_features":       top,
	}
}

// discretizeColumn maps the selected rows of a column to integer labels:
// decile bins for numeric columns, distinct-value ids otherwise.
func discretizeColumn(col *dataset.Column, rowsOK []bool) []int {
	var labels []int
	if col.Type == dataset.TypeFloat {
		var values []float64
		for i, ok := range rowsOK {
			if !ok {
				continue
			}
			v, _ := col.Cells[i].Float64()
			values = append(values, v)
		}
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		edges := make([]float64, 9)
		for i := range edges {
			edges[i] = quantileSorted(sorted, float64(i+1)/10)
		}
		for _, v := range values {
			bin := 0
			for _, e := range edges {
				if v > e {
					bin++
				}
			}
			labels = append(labels, bin)
		}
		return labels
	}

	ids := map[string]int{}
	for i, ok := range rowsOK {
		if !ok {
			continue
		}
		key := col.Cells[i].Repr()
		id, seen := ids[key]
		if !seen {
			id = len(ids)
			ids[key] = id
		}
		labels = append(labels, id)
	}
	return labels
}

// mutualInformation computes empirical MI in nats between two label slices
func mutualInformation(a, b []int) float64 {
	n := len(a)
	if n == 0 || n != len(b) {
		return 0
	}
	joint := map[[2]int]int{}
	pa := map[int]int{}
	pb := map[int]int{}
	for i := 0; i < n; i++ {
		joint[[2]int{a[i], b[i]}]++
		pa[a[i]]++
		pb[b[i]]++
	}
	var mi float64
	fn := float64(n)
	for key, count := range joint {
		pxy := float64(count) / fn
		px := float64(pa[key[0]]) / fn
		py := float64(pb[key[1]]) / fn
		mi += pxy * math.Log(pxy/(px*py))
	}
	if mi < 0 {
		mi = 0
	}
	return mi
}

// statisticalTests runs Shapiro-Wilk normality tests on numeric columns and
// chi-square independence tests on the first few categorical column pairs.
func statisticalTests(ds *dataset.Dataset, targetColumn string) map[string]any {
	tests := map[string]any{}

	normality := map[string]any{}
	for _, col := range numericColumns(ds) {
		values := col.Floats()
		if len(values) < 3 || len(values) > 5000 {
			continue
		}
		w, p, ok := shapiroWilk(values)
		if !ok {
			normality[col.Name] = map[string]any{"error": "Test failed"}
			continue
		}
		normality[col.Name] = map[string]any{
			"statistic": w,
			"p_value":   p,
			"is_normal": p > 0.05,
		}
	}
	tests["normality_tests"] = normality

	categoricalCols := stringColumns(ds)
	if len(categoricalCols) >= 2 {
		chiTests := map[string]any{}
		limit1 := len(categoricalCols)
		if limit1 > 3 {
			limit1 = 3
		}
		for i := 0; i < limit1; i++ {
			limit2 := len(categoricalCols)
			if limit2 > 4 {
				limit2 = 4
			}
			for j := i + 1; j < limit2; j++ {
				key := fmt.Sprintf("%s_vs_%s", categoricalCols[i].Name, categoricalCols[j].Name)
				chi2, p, dof, ok := chiSquareIndependence(categoricalCols[i], categoricalCols[j])
				if !ok {
					chiTests[key] = map[string]any{"error": "Test failed"}
					continue
				}
				chiTests[key] = map[string]any{
					"chi2_statistic":     chi2,
					"p_value":            p,
					"degrees_of_freedom": dof,
					"is_independent":     p > 0.05,
				}
			}
		}
		tests["chi_square_tests"] = chiTests
	}

	return tests
}

// chiSquareIndependence builds the contingency table of two categorical
// columns and runs Pearson's chi-square test.
func chiSquareIndependence(a, b *dataset.Column) (chi2, p float64, dof int, ok bool) {
	type pair struct{ x, y string }
	counts := map[pair]int{}
	rowTotals := map[string]int{}
	colTotals := map[string]int{}
	total := 0
	for i := 0; i < a.Len() && i < b.Len(); i++ {
		x, okX := a.Cells[i].Text()
		y, okY := b.Cells[i].Text()
		if !okX || !okY {
			continue
		}
		counts[pair{x, y}]++
		rowTotals[x]++
		colTotals[y]++
		total++
	}
	if total == 0 || len(rowTotals) < 2 || len(colTotals) < 2 {
		return 0, 0, 0, false
	}

	for x, rt := range rowTotals {
		for y, ct := range colTotals {
			expected := float64(rt) * float64(ct) / float64(total)
			if expected == 0 {
				continue
			}
			observed := float64(counts[pair{x, y}])
			d := observed - expected
			chi2 += d * d / expected
		}
	}
	dof = (len(rowTotals) - 1) * (len(colTotals) - 1)
	dist := distuv.ChiSquared{K: float64(dof)}
	p = dist.Survival(chi2)
	return chi2, p, dof, true
}

// clusteringAnalysis sweeps k-means over k=2..10 on standardized numeric
// rows, recording inertia and silhouette per k and picking the elbow point.
func clusteringAnalysis(ds *dataset.Dataset) map[string]any {
	numericCols := numericColumns(ds)
	if len(numericCols) < 2 {
		return map[string]any{"message": "Insufficient numeric variables for clustering"}
	}

	points := standardized(numericCols)
	if len(points) < 10 {
		return map[string]any{"message": "Insufficient data for clustering"}
	}

	maxK := len(points) / 2
	if maxK > 10 {
		maxK = 10
	}
	var ks []int
	var inertias []float64
	var silhouettes []float64
	for k := 2; k <= maxK; k++ {
		res := kmeans(points, k)
		if math.IsInf(res.Inertia, 1) {
			break
		}
		ks = append(ks, k)
		inertias = append(inertias, res.Inertia)
		silhouettes = append(silhouettes, silhouetteScore(points, res.Labels, k))
	}

	optimalK := elbowK(ks, inertias)
	return map[string]any{
		"k_values":          ks,
		"inertias":          inertias,
		"silhouette_scores": silhouettes,
		"optimal_k":         optimalK,
		"recommendation":    fmt.Sprintf("Optimal number of clusters appears to be %d", optimalK),
	}
}
