package analysis

import (
	"testing"

	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/require"
)

func TestBalanceStaticPose(t *testing.T) {
	a, err := NewAnalyzerFromFrames(makeFrames(30, 0.9, nil), DefaultConfig(), logs.NewTestingLog(t))
	require.NoError(t, err)

	b := a.Balance()
	require.Len(t, b.Trajectory, 30)
	require.InDelta(t, 0, b.StabilityX, 1e-6)
	require.InDelta(t, 0, b.StabilityY, 1e-6)
	require.InDelta(t, 0, b.VelocityMean, 1e-6)
	require.InDelta(t, 0, b.VelocityStd, 1e-6)

	// The body is symmetric about x=100, so the CoM must sit on that line,
	// somewhere between the shoulders and the hips.
	require.InDelta(t, 100, b.Trajectory[0].X, 1e-6)
	require.Greater(t, b.Trajectory[0].Y, 70.0)
	require.Less(t, b.Trajectory[0].Y, 170.0)

	// Memoized on first access.
	require.Same(t, b, a.Balance())
}

func TestBalanceHipFallback(t *testing.T) {
	// No keypoint passes the balance gate, but the hips were detected, so
	// the CoM falls back to the hip midpoint.
	a, err := NewAnalyzerFromFrames(makeFrames(5, 0.3, nil), DefaultConfig(), logs.NewTestingLog(t))
	require.NoError(t, err)

	b := a.Balance()
	require.InDelta(t, 100, b.Trajectory[0].X, 1e-6)
	require.InDelta(t, 130, b.Trajectory[0].Y, 1e-6)
}

func TestBalanceOriginFallback(t *testing.T) {
	a, err := NewAnalyzerFromFrames(makeFrames(5, 0, nil), DefaultConfig(), logs.NewTestingLog(t))
	require.NoError(t, err)

	b := a.Balance()
	require.Equal(t, Point{}, b.Trajectory[0])
}

func TestBalanceSegmentWeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, seg := range bodySegments {
		sum += seg.Weight
	}
	require.InDelta(t, 1, sum, 1e-9)
}
