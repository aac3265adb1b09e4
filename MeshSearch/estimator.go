package MeshSearch

import (
	"fmt"
	"math"
)

// NonConvergentPairError reports a resolution pair whose refinement did not
// reduce the metric, so no order of accuracy can be read from it.
type NonConvergentPairError struct {
	N1, N2           int
	Metric1, Metric2 float64
	Log              []Record
}

func (e *NonConvergentPairError) Error() string {
	return fmt.Sprintf("non-convergent pair: metric(%d)=%g did not improve to metric(%d)=%g",
		e.N1, e.Metric1, e.N2, e.Metric2)
}

// EstimateRate fits the two samples to metric(N) ~ C*N^(-p) and returns p:
// for N2 = 2*N1 this is log2(metric1/metric2). A pair whose refinement did
// not reduce the metric, or with non-positive or non-finite metrics, is
// flagged as non-convergent rather than producing a silent p <= 0.
func EstimateRate(n1 int, m1 float64, n2 int, m2 float64) (p float64, err error) {
	if n2 <= n1 {
		return 0, fmt.Errorf("rate estimate requires n2 > n1, got %d, %d", n1, n2)
	}
	bad := func(m float64) bool { return !(m > 0) || math.IsInf(m, 0) }
	if bad(m1) || bad(m2) || m2 >= m1 {
		return 0, &NonConvergentPairError{N1: n1, N2: n2, Metric1: m1, Metric2: m2}
	}
	p = math.Log(m1/m2) / math.Log(float64(n2)/float64(n1))
	return p, nil
}

// PredictTarget inverts the power-law model for the resolution expected to
// reach tol: N_target = N1*(metric1/tol)^(1/p), rounded up to the next even
// integer and clamped to [nMin, nMax].
func PredictTarget(n1 int, m1, tol, p float64, nMin, nMax int) int {
	nt := float64(n1) * math.Pow(m1/tol, 1/p)
	n := int(math.Ceil(nt))
	if n%2 != 0 {
		n++
	}
	if n < nMin {
		n = nMin
	}
	if n > nMax {
		n = nMax
	}
	return n
}
