package pose

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/require"
)

func TestAngle(t *testing.T) {
	a := Keypoint{X: 0, Y: 0, Score: 1}
	b := Keypoint{X: 1, Y: 0, Score: 1}
	c := Keypoint{X: 2, Y: 0, Score: 1}
	require.InDelta(t, 180, Angle(a, b, c), 1)

	c = Keypoint{X: 1, Y: 1, Score: 1}
	require.InDelta(t, 90, Angle(a, b, c), 1)

	// Degenerate: coincident points.
	require.True(t, math32.IsNaN(Angle(a, a, c)))
}

func TestDistanceMidpoint(t *testing.T) {
	a := Keypoint{X: 0, Y: 0, Score: 0.9}
	b := Keypoint{X: 3, Y: 4, Score: 0.5}
	require.InDelta(t, 5, Distance(a, b), 1e-6)

	mid := Midpoint(a, b)
	require.InDelta(t, 1.5, mid.X, 1e-6)
	require.InDelta(t, 2, mid.Y, 1e-6)
	require.InDelta(t, 0.5, mid.Score, 1e-6)
}
