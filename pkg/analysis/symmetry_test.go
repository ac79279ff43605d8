package analysis

import (
	"math"
	"testing"

	"github.com/cyclopcam/logs"
	"github.com/motionlab/baduanjin/pkg/pose"
	"github.com/stretchr/testify/require"
)

// mirroredFrames builds a movement that is perfectly left/right symmetric
// about the nose's x coordinate.
func mirroredFrames(n int) []pose.Frame {
	return makeFrames(n, 0.8, func(i int, p *pose.Pose) {
		spread := float32(math.Sin(float64(i)*0.2)) * 20
		for _, pair := range pose.LeftRightPairs {
			baseY := p[pair.Left].Y + float32(math.Cos(float64(i)*0.15))*10
			offset := p[pose.Nose].X - p[pair.Left].X + spread
			p[pair.Left] = pose.Keypoint{X: p[pose.Nose].X - offset, Y: baseY, Score: 0.8}
			p[pair.Right] = pose.Keypoint{X: p[pose.Nose].X + offset, Y: baseY, Score: 0.8}
		}
	})
}

func TestSymmetryPerfectMirror(t *testing.T) {
	a, err := NewAnalyzerFromFrames(mirroredFrames(40), DefaultConfig(), logs.NewTestingLog(t))
	require.NoError(t, err)

	m := a.Symmetry()
	require.Len(t, m, len(pose.LeftRightPairs))
	for name, dist := range m {
		require.InDelta(t, 0, dist, 1e-4, "pair %v", name)
	}
}

func TestSymmetrySkipsLowConfidencePairs(t *testing.T) {
	frames := makeFrames(40, 0.8, func(i int, p *pose.Pose) {
		p[pose.LeftWrist].Score = 0.2
	})
	a, err := NewAnalyzerFromFrames(frames, DefaultConfig(), logs.NewTestingLog(t))
	require.NoError(t, err)

	m := a.Symmetry()
	require.NotContains(t, m, "Left Wrist - Right Wrist")
	require.Contains(t, m, "Left Knee - Right Knee")
}

func TestSymmetryWithoutReferencePoint(t *testing.T) {
	// Neither the nose nor the shoulders are reliable: no pair can be scored.
	frames := makeFrames(40, 0.8, func(i int, p *pose.Pose) {
		p[pose.Nose].Score = 0.1
		p[pose.LeftShoulder].Score = 0.1
		p[pose.RightShoulder].Score = 0.1
	})
	a, err := NewAnalyzerFromFrames(frames, DefaultConfig(), logs.NewTestingLog(t))
	require.NoError(t, err)

	require.Empty(t, a.Symmetry())
}

func TestSymmetryShoulderMidpointFallback(t *testing.T) {
	// Nose unreliable, shoulders fine: pairs are still scored against the
	// shoulder midpoint.
	frames := makeFrames(40, 0.8, func(i int, p *pose.Pose) {
		p[pose.Nose].Score = 0.1
	})
	a, err := NewAnalyzerFromFrames(frames, DefaultConfig(), logs.NewTestingLog(t))
	require.NoError(t, err)

	require.NotEmpty(t, a.Symmetry())
}
