package analyzer

import (
	"math"
	"math/rand"
)

const (
	kmeansSeed    = 42
	kmeansInit    = 10
	kmeansMaxIter = 300
)

type kmeansResult struct {
	Labels    []int
	Centers   [][]float64
	Inertia   float64
	Converged bool
}

// kmeans clusters row-major points into k clusters. Runs kmeansInit random
// initializations from a fixed seed and keeps the run with the lowest inertia,
// so results are reproducible across invocations.
func kmeans(points [][]float64, k int) kmeansResult {
	best := kmeansResult{Inertia: math.Inf(1)}
	if len(points) == 0 || k < 1 || k > len(points) {
		return best
	}
	rng := rand.New(rand.NewSource(kmeansSeed))
	for run := 0; run < kmeansInit; run++ {
		res := kmeansOnce(points, k, rng)
		if res.Inertia < best.Inertia {
			best = res
		}
	}
	return best
}

func kmeansOnce(points [][]float64, k int, rng *rand.Rand) kmeansResult {
	dim := len(points[0])
	centers := make([][]float64, k)
	for i, idx := range rng.Perm(len(points))[:k] {
		centers[i] = append([]float64(nil), points[idx]...)
	}
	labels := make([]int, len(points))
	converged := false

	for iter := 0; iter < kmeansMaxIter; iter++ {
		changed := false
		for i, p := range points {
			nearest := nearestCenter(p, centers)
			if labels[i] != nearest {
				labels[i] = nearest
				changed = true
			}
		}
		sums := make([][]float64, k)
		counts := make([]int, k)
		for i := range sums {
			sums[i] = make([]float64, dim)
		}
		for i, p := range points {
			c := labels[i]
			counts[c]++
			for j, v := range p {
				sums[c][j] += v
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				// reseed empty cluster at a random point
				centers[c] = append([]float64(nil), points[rng.Intn(len(points))]...)
				continue
			}
			for j := range sums[c] {
				centers[c][j] = sums[c][j] / float64(counts[c])
			}
		}
		if !changed && iter > 0 {
			converged = true
			break
		}
	}

	var inertia float64
	for i, p := range points {
		inertia += sqDist(p, centers[labels[i]])
	}
	return kmeansResult{Labels: labels, Centers: centers, Inertia: inertia, Converged: converged}
}

func nearestCenter(p []float64, centers [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, c := range centers {
		if d := sqDist(p, c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

// silhouetteScore computes the mean silhouette coefficient over all points.
// Returns 0 when the clustering is degenerate (single cluster or singleton
// sample).
func silhouetteScore(points [][]float64, labels []int, k int) float64 {
	if k < 2 || len(points) < 3 {
		return 0
	}
	var total float64
	counted := 0
	for i, p := range points {
		intra, inter := silhouetteDistances(points, labels, i, p, k)
		if intra < 0 || inter == math.Inf(1) {
			continue
		}
		denom := math.Max(intra, inter)
		if denom == 0 {
			continue
		}
		total += (inter - intra) / denom
		counted++
	}
	if counted == 0 {
		return 0
	}
	return total / float64(counted)
}

func silhouetteDistances(points [][]float64, labels []int, i int, p []float64, k int) (intra, inter float64) {
	sums := make([]float64, k)
	counts := make([]int, k)
	for j, q := range points {
		if j == i {
			continue
		}
		d := math.Sqrt(sqDist(p, q))
		sums[labels[j]] += d
		counts[labels[j]]++
	}
	own := labels[i]
	if counts[own] == 0 {
		return -1, math.Inf(1)
	}
	intra = sums[own] / float64(counts[own])
	inter = math.Inf(1)
	for c := 0; c < k; c++ {
		if c == own || counts[c] == 0 {
			continue
		}
		if avg := sums[c] / float64(counts[c]); avg < inter {
			inter = avg
		}
	}
	return intra, inter
}

// elbowK picks the cluster count where inertia's second difference is largest.
// Falls back to 2 when fewer than three candidates are available.
func elbowK(ks []int, inertias []float64) int {
	if len(inertias) < 3 {
		return 2
	}
	bestK, bestDiff := ks[1], math.Inf(-1)
	for i := 1; i < len(inertias)-1; i++ {
		second := inertias[i-1] - 2*inertias[i] + inertias[i+1]
		if second > bestDiff {
			bestDiff = second
			bestK = ks[i]
		}
	}
	return bestK
}
