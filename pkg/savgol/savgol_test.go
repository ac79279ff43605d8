package savgol

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterValidation(t *testing.T) {
	y := make([]float64, 50)

	_, err := Filter(y, 14, 3) // even window
	require.Error(t, err)

	_, err = Filter(y, 15, 15) // order >= window
	require.Error(t, err)

	_, err = Filter(y[:10], 15, 3) // too few samples
	require.Error(t, err)
}

func TestFilterPreservesPolynomials(t *testing.T) {
	// A Savitzky-Golay filter of order 3 reproduces any cubic exactly,
	// including at the edges.
	y := make([]float64, 60)
	for i := range y {
		x := float64(i)
		y[i] = 0.5 + 2*x - 0.3*x*x + 0.01*x*x*x
	}
	out, err := Filter(y, 15, 3)
	require.NoError(t, err)
	require.Len(t, out, len(y))
	for i := range y {
		require.InDelta(t, y[i], out[i], 1e-5)
	}
}

func TestFilterReducesNoise(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n := 200
	clean := make([]float64, n)
	noisy := make([]float64, n)
	for i := range clean {
		clean[i] = math.Sin(float64(i) * 0.1)
		noisy[i] = clean[i] + rng.NormFloat64()*0.2
	}
	out, err := Filter(noisy, 15, 3)
	require.NoError(t, err)

	mse := func(a []float64) float64 {
		sum := 0.0
		for i := range a {
			d := a[i] - clean[i]
			sum += d * d
		}
		return sum / float64(len(a))
	}
	require.Less(t, mse(out), mse(noisy)/2)
}
