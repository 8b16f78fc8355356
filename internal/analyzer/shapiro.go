package analyzer

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// shapiroWilk runs the Shapiro-Wilk normality test (Royston's AS R94
// approximation, valid for 3 <= n <= 5000). Returns the W statistic and
// the approximate p-value.
func shapiroWilk(values []float64) (w, p float64, ok bool) {
	n := len(values)
	if n < 3 {
		return 0, 0, false
	}
	x := append([]float64(nil), values...)
	sort.Float64s(x)
	if x[0] == x[n-1] {
		// constant sample
		return 0, 0, false
	}

	norm := distuv.Normal{Mu: 0, Sigma: 1}

	// expected values of normal order statistics (Blom approximation)
	m := make([]float64, n)
	var ssm float64
	for i := 0; i < n; i++ {
		m[i] = norm.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		ssm += m[i] * m[i]
	}

	// weights
	a := make([]float64, n)
	rsn := 1 / math.Sqrt(float64(n))
	if n <= 5 {
		if n == 3 {
			a[0] = math.Sqrt(0.5)
			a[2] = -a[0]
		} else {
			an := polyEval([]float64{-2.706056, 4.434685, -2.071190, -0.147981, 0.221157, m[n-1] / math.Sqrt(ssm)}, rsn)
			phi := (ssm - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
			a[n-1] = an
			a[0] = -an
			for i := 1; i < n-1; i++ {
				a[i] = m[i] / math.Sqrt(phi)
			}
		}
	} else {
		an := polyEval([]float64{-2.706056, 4.434685, -2.071190, -0.147981, 0.221157, m[n-1] / math.Sqrt(ssm)}, rsn)
		an1 := polyEval([]float64{-3.582633, 5.682633, -1.752461, -0.293762, 0.042981, m[n-2] / math.Sqrt(ssm)}, rsn)
		phi := (ssm - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
		a[n-1] = an
		a[n-2] = an1
		a[0] = -an
		a[1] = -an1
		for i := 2; i < n-2; i++ {
			a[i] = m[i] / math.Sqrt(phi)
		}
	}

	mu := mean(x)
	var num, den float64
	for i := 0; i < n; i++ {
		num += a[i] * x[i]
		d := x[i] - mu
		den += d * d
	}
	w = num * num / den
	if w > 1 {
		w = 1
	}

	// p-value
	switch {
	case n == 3:
		pw := 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		if pw < 0 {
			pw = 0
		}
		return w, pw, true
	case n <= 11:
		fn := float64(n)
		g := -2.273 + 0.459*fn
		mu := 0.5440 - 0.39978*fn + 0.025054*fn*fn - 0.0006714*fn*fn*fn
		sigma := math.Exp(1.3822 - 0.77857*fn + 0.062767*fn*fn - 0.0020322*fn*fn*fn)
		z := (-math.Log(g-math.Log(1-w)) - mu) / sigma
		return w, upperTailNormal(z), true
	default:
		ln := math.Log(float64(n))
		mu := -1.5861 - 0.31082*ln - 0.083751*ln*ln + 0.0038915*ln*ln*ln
		sigma := math.Exp(-0.4803 - 0.082676*ln + 0.0030302*ln*ln)
		z := (math.Log(1-w) - mu) / sigma
		return w, upperTailNormal(z), true
	}
}

// polyEval evaluates c[0]*x^5 + c[1]*x^4 + ... + c[5] (descending powers,
// constant term last)
func polyEval(c []float64, x float64) float64 {
	result := 0.0
	for _, coef := range c {
		result = result*x + coef
	}
	return result
}

func upperTailNormal(z float64) float64 {
	return 0.5 * math.Erfc(z/math.Sqrt2)
}
