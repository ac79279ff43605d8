// Package savgol implements Savitzky-Golay smoothing: a least-squares
// polynomial fit over a sliding window, reduced to a convolution.
package savgol

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Filter smooths y with a Savitzky-Golay filter of the given window length
// and polynomial order. The window must be odd and larger than the order.
// Edge samples are produced by evaluating the first/last full-window fit at
// their offsets, so the output has the same length as the input.
func Filter(y []float64, window, order int) ([]float64, error) {
	if window < 3 || window%2 == 0 {
		return nil, fmt.Errorf("window must be odd and >= 3, got %d", window)
	}
	if order < 1 || order >= window {
		return nil, fmt.Errorf("order must be in [1, window), got order=%d window=%d", order, window)
	}
	if len(y) < window {
		return nil, fmt.Errorf("need at least %d samples, got %d", window, len(y))
	}

	pinv, err := pseudoInverse(window, order)
	if err != nil {
		return nil, err
	}

	half := window / 2
	n := len(y)
	out := make([]float64, n)

	// Interior: the fitted polynomial evaluated at the window center is just
	// its constant coefficient, so one dot product per sample.
	for i := half; i < n-half; i++ {
		sum := 0.0
		for j := 0; j < window; j++ {
			sum += pinv.At(0, j) * y[i-half+j]
		}
		out[i] = sum
	}

	// Edges: fit the first/last full window once, then evaluate the
	// polynomial at each off-center offset.
	evalAt := func(start int, offset float64) float64 {
		val := 0.0
		pow := 1.0
		for k := 0; k <= order; k++ {
			ck := 0.0
			for j := 0; j < window; j++ {
				ck += pinv.At(k, j) * y[start+j]
			}
			val += ck * pow
			pow *= offset
		}
		return val
	}
	for i := 0; i < half; i++ {
		out[i] = evalAt(0, float64(i-half))
	}
	for i := n - half; i < n; i++ {
		out[i] = evalAt(n-window, float64(i-(n-window)-half))
	}
	return out, nil
}

// pseudoInverse returns (AᵀA)⁻¹Aᵀ for the polynomial design matrix
// A[j][k] = (j - window/2)^k.
func pseudoInverse(window, order int) (*mat.Dense, error) {
	half := window / 2
	a := mat.NewDense(window, order+1, nil)
	for j := 0; j < window; j++ {
		pow := 1.0
		for k := 0; k <= order; k++ {
			a.Set(j, k, pow)
			pow *= float64(j - half)
		}
	}
	var ata mat.Dense
	ata.Mul(a.T(), a)
	var inv mat.Dense
	if err := inv.Inverse(&ata); err != nil {
		return nil, fmt.Errorf("degenerate design matrix: %w", err)
	}
	var pinv mat.Dense
	pinv.Mul(&inv, a.T())
	return &pinv, nil
}
