package MeshSearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateRate(t *testing.T) {
	// Synthetic second-order data recovers p = 2 exactly
	{
		C := 3.7
		m := func(n int) float64 { return C / float64(n*n) }
		p, err := EstimateRate(64, m(64), 128, m(128))
		require.NoError(t, err)
		assert.InDelta(t, 2.0, p, 1.e-12)
	}
	// Non-doubled spacing uses the general ratio
	{
		m := func(n int) float64 { return 1 / float64(n*n*n) }
		p, err := EstimateRate(16, m(16), 48, m(48))
		require.NoError(t, err)
		assert.InDelta(t, 3.0, p, 1.e-12)
	}
	// Refinement that does not reduce the metric is flagged, not silently
	// returned as p <= 0
	{
		var ncp *NonConvergentPairError
		_, err := EstimateRate(64, 0.05, 128, 0.05)
		require.ErrorAs(t, err, &ncp)
		_, err = EstimateRate(64, 0.05, 128, 0.07)
		require.ErrorAs(t, err, &ncp)
		_, err = EstimateRate(64, 0, 128, 0.07)
		require.ErrorAs(t, err, &ncp)
	}
}

// The documented worked example: metrics 0.145 at N=64 and 0.048 at N=128
// give p close to 1.59, and a 0.016 tolerance predicts a 256 target.
func TestPredictTarget(t *testing.T) {
	p, err := EstimateRate(64, 0.145, 128, 0.048)
	require.NoError(t, err)
	assert.InDelta(t, 1.59, p, 0.01)
	n := PredictTarget(64, 0.145, 0.016, p, 128, 1024)
	assert.Equal(t, 256, n)
	// Clamping to the bracket bounds
	assert.Equal(t, 128, PredictTarget(64, 0.145, 0.2, p, 128, 1024))
	assert.Equal(t, 512, PredictTarget(64, 0.145, 1.e-9, p, 128, 512))
}
