package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
	"github.com/Ajith-oo7/Data-lysis/internal/profiler"
)

const earthRadiusKm = 6371.0

// geoColumns returns numeric columns with geographic names, in dataset order
func geoColumns(ds *dataset.Dataset) []*dataset.Column {
	var cols []*dataset.Column
	for _, col := range ds.Columns() {
		if col.Type == dataset.TypeFloat && profiler.HasGeoKeyword(col.Name) {
			cols = append(cols, col)
		}
	}
	return cols
}

// coordinatePairs groups geo columns pairwise in order: (0,1), (2,3), ...
func coordinatePairs(cols []*dataset.Column) [][2]*dataset.Column {
	var pairs [][2]*dataset.Column
	for i := 0; i+1 < len(cols); i += 2 {
		pairs = append(pairs, [2]*dataset.Column{cols[i], cols[i+1]})
	}
	return pairs
}

// validCoordinates extracts rows where both values are present and in range
func validCoordinates(latCol, lonCol *dataset.Column) (lats, lons []float64) {
	for i := 0; i < latCol.Len() && i < lonCol.Len(); i++ {
		lat, okLat := latCol.Cells[i].Float64()
		lon, okLon := lonCol.Cells[i].Float64()
		if !okLat || !okLon {
			continue
		}
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			continue
		}
		lats = append(lats, lat)
		lons = append(lons, lon)
	}
	return lats, lons
}

func spatialDistribution(ds *dataset.Dataset) map[string]any {
	geoCols := geoColumns(ds)
	if len(geoCols) < 2 {
		return map[string]any{"message": "Insufficient geographic columns for spatial analysis"}
	}

	analysis := map[string]any{}
	for _, pair := range coordinatePairs(geoCols) {
		latCol, lonCol := pair[0], pair[1]
		lats, lons := validCoordinates(latCol, lonCol)
		if len(lats) == 0 {
			continue
		}

		latMin, latMax := minMax(lats)
		lonMin, lonMax := minMax(lons)

		analysis[fmt.Sprintf("%s_%s", latCol.Name, lonCol.Name)] = map[string]any{
			"coordinate_summary": map[string]any{
				"valid_coordinates": len(lats),
				"latitude_range": map[string]any{
					"min":    latMin,
					"max":    latMax,
					"center": mean(lats),
				},
				"longitude_range": map[string]any{
					"min":    lonMin,
					"max":    lonMax,
					"center": mean(lons),
				},
			},
			"spatial_extent":   spatialExtent(latMin, latMax, lonMin, lonMax),
			"density_analysis": pointDensity(lats, lons),
		}
	}
	return analysis
}

// spatialExtent approximates bounding-box area with 1 degree ~= 111 km
func spatialExtent(latMin, latMax, lonMin, lonMax float64) map[string]any {
	latSpan := latMax - latMin
	lonSpan := lonMax - lonMin
	return map[string]any{
		"latitude_span":       latSpan,
		"longitude_span":      lonSpan,
		"approximate_area_km2": latSpan * lonSpan * 111 * 111,
	}
}

// pointDensity bins coordinates into a grid and summarizes cell occupancy
func pointDensity(lats, lons []float64) map[string]any {
	latBins := len(lats) / 5
	if latBins > 10 {
		latBins = 10
	}
	lonBins := latBins
	if latBins < 2 || lonBins < 2 {
		return map[string]any{"message": "Insufficient data for density analysis"}
	}

	latMin, latMax := minMax(lats)
	lonMin, lonMax := minMax(lons)
	latWidth := (latMax - latMin) / float64(latBins)
	lonWidth := (lonMax - lonMin) / float64(lonBins)
	if latWidth == 0 {
		latWidth = 1
	}
	if lonWidth == 0 {
		lonWidth = 1
	}

	grid := make([]float64, latBins*lonBins)
	for i := range lats {
		r := int((lats[i] - latMin) / latWidth)
		c := int((lons[i] - lonMin) / lonWidth)
		if r >= latBins {
			r = latBins - 1
		}
		if c >= lonBins {
			c = lonBins - 1
		}
		grid[r*lonBins+c]++
	}

	maxDensity := 0.0
	for _, v := range grid {
		maxDensity = math.Max(maxDensity, v)
	}
	return map[string]any{
		"max_density":      int(maxDensity),
		"avg_density":      mean(grid),
		"density_variance": popVariance(grid),
		"grid_dimensions":  fmt.Sprintf("%dx%d", latBins, lonBins),
	}
}

func geographicPatterns(ds *dataset.Dataset) map[string]any {
	geoCols := geoColumns(ds)
	if len(geoCols) < 2 {
		return map[string]any{"message": "Insufficient geographic columns for pattern analysis"}
	}

	patterns := map[string]any{}
	for _, pair := range coordinatePairs(geoCols) {
		latCol, lonCol := pair[0], pair[1]
		lats, lons := validCoordinates(latCol, lonCol)
		if len(lats) < 5 {
			continue
		}

		patterns[fmt.Sprintf("%s_%s", latCol.Name, lonCol.Name)] = map[string]any{
			"grid_analysis":     pointDensity(lats, lons),
			"distance_analysis": distanceAnalysis(lats, lons),
			"geographic_center": map[string]any{
				"latitude":  mean(lats),
				"longitude": mean(lons),
			},
		}
	}
	return patterns
}

// distanceAnalysis summarizes pairwise haversine distances; the point set is
// capped at 200 to bound the quadratic cost.
func distanceAnalysis(lats, lons []float64) map[string]any {
	n := len(lats)
	if n > 200 {
		n = 200
	}
	var distances []float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			distances = append(distances, haversineKm(lats[i], lons[i], lats[j], lons[j]))
		}
	}
	if len(distances) == 0 {
		return map[string]any{"message": "Insufficient data for distance analysis"}
	}
	minD, maxD := minMax(distances)
	return map[string]any{
		"mean_distance_km":   mean(distances),
		"median_distance_km": quantile(distances, 0.5),
		"min_distance_km":    minD,
		"max_distance_km":    maxD,
	}
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180
	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// spatialClustering sweeps k-means over k=2..7 on standardized coordinates,
// reporting per-cluster size, center, and radius.
func spatialClustering(ds *dataset.Dataset) map[string]any {
	geoCols := geoColumns(ds)
	if len(geoCols) < 2 {
		return map[string]any{"message": "Insufficient geographic columns for clustering analysis"}
	}

	clustering := map[string]any{}
	for _, pair := range coordinatePairs(geoCols) {
		latCol, lonCol := pair[0], pair[1]
		lats, lons := validCoordinates(latCol, lonCol)
		if len(lats) < 10 {
			continue
		}

		points := standardizePoints(lats, lons)
		maxK := len(lats) / 3
		if maxK > 7 {
			maxK = 7
		}
		results := map[string]any{}
		for k := 2; k <= maxK; k++ {
			res := kmeans(points, k)
			if math.IsInf(res.Inertia, 1) {
				break
			}
			var stats []map[string]any
			for clusterID := 0; clusterID < k; clusterID++ {
				var cLats, cLons []float64
				for i, label := range res.Labels {
					if label == clusterID {
						cLats = append(cLats, lats[i])
						cLons = append(cLons, lons[i])
					}
				}
				if len(cLats) == 0 {
					continue
				}
				centerLat, centerLon := mean(cLats), mean(cLons)
				stats = append(stats, map[string]any{
					"cluster_id": clusterID,
					"size":       len(cLats),
					"center_lat": centerLat,
					"center_lon": centerLon,
					"radius_km":  clusterRadiusKm(cLats, cLons, centerLat, centerLon),
				})
			}
			results[fmt.Sprintf("k_%d", k)] = map[string]any{
				"inertia":  res.Inertia,
				"clusters": stats,
			}
		}
		clustering[fmt.Sprintf("%s_%s", latCol.Name, lonCol.Name)] = results
	}
	return clustering
}

func standardizePoints(lats, lons []float64) [][]float64 {
	mLat, mLon := mean(lats), mean(lons)
	sdLat := popStdDev(lats, mLat)
	sdLon := popStdDev(lons, mLon)
	if sdLat == 0 {
		sdLat = 1
	}
	if sdLon == 0 {
		sdLon = 1
	}
	points := make([][]float64, len(lats))
	for i := range lats {
		points[i] = []float64{(lats[i] - mLat) / sdLat, (lons[i] - mLon) / sdLon}
	}
	return points
}

// clusterRadiusKm is the mean haversine distance from members to the center
func clusterRadiusKm(lats, lons []float64, centerLat, centerLon float64) float64 {
	var total float64
	for i := range lats {
		total += haversineKm(lats[i], lons[i], centerLat, centerLon)
	}
	return total / float64(len(lats))
}

// coordinateValidation checks each geo column individually against the valid
// latitude or longitude range, keyed off the column name.
func coordinateValidation(ds *dataset.Dataset) map[string]any {
	validation := map[string]any{}
	for _, col := range geoColumns(ds) {
		values := col.Floats()
		lower := strings.ToLower(col.Name)

		var lo, hi float64
		var coordType string
		switch {
		case strings.Contains(lower, "lon") || strings.Contains(lower, "lng"):
			lo, hi, coordType = -180, 180, "longitude"
		case strings.Contains(lower, "lat"):
			lo, hi, coordType = -90, 90, "latitude"
		default:
			continue
		}

		valid, below, above := 0, 0, 0
		for _, v := range values {
			switch {
			case v < lo:
				below++
			case v > hi:
				above++
			default:
				valid++
			}
		}
		validityPct := 0.0
		if len(values) > 0 {
			validityPct = float64(valid) / float64(len(values)) * 100
		}
		validation[col.Name] = map[string]any{
			"total_values":        len(values),
			"valid_coordinates":   valid,
			"invalid_coordinates": below + above,
			"validity_percentage": validityPct,
			"coordinate_type":     coordType,
			"range_issues": map[string]any{
				fmt.Sprintf("below_%d", int(lo)): below,
				fmt.Sprintf("above_%d", int(hi)): above,
			},
		}
	}
	if len(validation) == 0 {
		return map[string]any{"message": "No geographic columns found for validation"}
	}
	return validation
}

func minMax(vs []float64) (minV, maxV float64) {
	minV, maxV = vs[0], vs[0]
	for _, v := range vs {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	return minV, maxV
}

func popVariance(vs []float64) float64 {
	m := mean(vs)
	sd := popStdDev(vs, m)
	return sd * sd
}
