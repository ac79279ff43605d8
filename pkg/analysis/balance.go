package analysis

import (
	"math"

	"github.com/motionlab/baduanjin/pkg/pose"
	"github.com/motionlab/baduanjin/pkg/stats"
)

// Point is a 2D position in image coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BalanceMetrics summarizes the center-of-mass behavior of a session.
// Stability is the per-axis standard deviation of the CoM; velocity is the
// mean/std of the per-frame CoM displacement magnitude.
type BalanceMetrics struct {
	StabilityX   float64 `json:"comStabilityX"`
	StabilityY   float64 `json:"comStabilityY"`
	VelocityMean float64 `json:"comVelocityMean"`
	VelocityStd  float64 `json:"comVelocityStd"`
	Trajectory   []Point `json:"comTrajectory"`
}

// Body segments and their mass fractions, used to approximate the CoM by
// weighted keypoint averaging. The weights sum to 1.
var bodySegments = []struct {
	Name      string
	Weight    float64
	Keypoints []int
}{
	{"head", 0.08, []int{pose.Nose, pose.LeftEye, pose.RightEye, pose.LeftEar, pose.RightEar}},
	{"torso", 0.55, []int{pose.LeftShoulder, pose.RightShoulder, pose.LeftHip, pose.RightHip}},
	{"left arm", 0.05, []int{pose.LeftElbow, pose.LeftWrist}},
	{"right arm", 0.05, []int{pose.RightElbow, pose.RightWrist}},
	{"left leg", 0.135, []int{pose.LeftKnee, pose.LeftAnkle}},
	{"right leg", 0.135, []int{pose.RightKnee, pose.RightAnkle}},
}

// Balance computes (once) the per-frame CoM trajectory and its session-level
// stability and velocity metrics.
func (a *Analyzer) Balance() *BalanceMetrics {
	if a.balance != nil {
		return a.balance
	}
	n := len(a.frames)
	traj := make([]Point, n)
	for i := 0; i < n; i++ {
		traj[i] = a.centerOfMass(i)
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range traj {
		xs[i] = p.X
		ys[i] = p.Y
	}
	speeds := make([]float64, 0, n)
	for i := 1; i < n; i++ {
		speeds = append(speeds, math.Hypot(xs[i]-xs[i-1], ys[i]-ys[i-1]))
	}

	a.balance = &BalanceMetrics{
		StabilityX:   stats.Std(xs),
		StabilityY:   stats.Std(ys),
		VelocityMean: stats.Mean(speeds),
		VelocityStd:  stats.Std(speeds),
		Trajectory:   traj,
	}
	return a.balance
}

// centerOfMass estimates one frame's CoM. Each segment averages its
// keypoints above the balance gate; the segment weights are renormalized
// over only the segments actually present. With no usable segment we fall
// back to the hip midpoint, and failing that to the origin.
func (a *Analyzer) centerOfMass(frame int) Point {
	gate := float64(a.cfg.BalanceMinScore)
	sumX, sumY, usedWeight := 0.0, 0.0, 0.0
	for _, seg := range bodySegments {
		px, py, count := 0.0, 0.0, 0
		for _, kp := range seg.Keypoints {
			t := &a.trajectories[kp]
			if float64(t.Score[frame]) > gate {
				px += t.X[frame]
				py += t.Y[frame]
				count++
			}
		}
		if count == 0 {
			continue
		}
		sumX += seg.Weight * px / float64(count)
		sumY += seg.Weight * py / float64(count)
		usedWeight += seg.Weight
	}
	if usedWeight > 0 {
		return Point{X: sumX / usedWeight, Y: sumY / usedWeight}
	}
	return a.hipMidpoint(frame)
}

// hipMidpoint is the CoM fallback: the midpoint of whichever hips were
// detected at all (any nonzero confidence; the balance gate has already
// failed by the time we get here), or the origin when neither was.
func (a *Analyzer) hipMidpoint(frame int) Point {
	lh := &a.trajectories[pose.LeftHip]
	rh := &a.trajectories[pose.RightHip]
	lOK := lh.Score[frame] > 0
	rOK := rh.Score[frame] > 0
	switch {
	case lOK && rOK:
		return Point{X: (lh.X[frame] + rh.X[frame]) / 2, Y: (lh.Y[frame] + rh.Y[frame]) / 2}
	case lOK:
		return Point{X: lh.X[frame], Y: lh.Y[frame]}
	case rOK:
		return Point{X: rh.X[frame], Y: rh.Y[frame]}
	}
	return Point{}
}
