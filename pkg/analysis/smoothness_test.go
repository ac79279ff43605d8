package analysis

import (
	"testing"

	"github.com/cyclopcam/logs"
	"github.com/motionlab/baduanjin/pkg/pose"
	"github.com/stretchr/testify/require"
)

func TestSmoothnessConstantVelocityHasZeroJerk(t *testing.T) {
	frames := makeFrames(60, 0.8, func(i int, p *pose.Pose) {
		for k := range p {
			p[k].X += float32(i) * 2
		}
	})
	a, err := NewAnalyzerFromFrames(frames, DefaultConfig(), logs.NewTestingLog(t))
	require.NoError(t, err)

	m := a.Smoothness()
	require.Len(t, m, 4)
	for name, jerk := range m {
		require.InDelta(t, 0, jerk, 1e-6, "joint %v", name)
	}
}

func TestSmoothnessSkipsLowConfidenceJoints(t *testing.T) {
	frames := makeFrames(60, 0.8, func(i int, p *pose.Pose) {
		p[pose.LeftAnkle].Score = 0.3
		p[pose.RightAnkle].Score = 0.3
	})
	a, err := NewAnalyzerFromFrames(frames, DefaultConfig(), logs.NewTestingLog(t))
	require.NoError(t, err)

	m := a.Smoothness()
	require.Contains(t, m, "Left Wrist")
	require.Contains(t, m, "Right Wrist")
	require.NotContains(t, m, "Left Ankle")
	require.NotContains(t, m, "Right Ankle")
}

func TestSmoothnessNonNegative(t *testing.T) {
	a, err := NewAnalyzerFromFrames(circularArmFrames(50), DefaultConfig(), logs.NewTestingLog(t))
	require.NoError(t, err)

	for name, jerk := range a.Smoothness() {
		require.GreaterOrEqual(t, jerk, 0.0, "joint %v", name)
	}
}
