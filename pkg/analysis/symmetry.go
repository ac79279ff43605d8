package analysis

import (
	"math"

	"github.com/motionlab/baduanjin/pkg/pose"
)

// Symmetry computes (once) the left/right mirrored-distance metric for each
// joint pair. Zero means a perfectly mirrored movement. A pair is skipped
// when either side's mean confidence is below the motion gate, or when no
// reference point is available.
func (a *Analyzer) Symmetry() map[string]float64 {
	if a.symmetry != nil {
		return a.symmetry
	}
	result := map[string]float64{}
	refX, refY, ok := a.referenceTrajectory()
	if !ok {
		a.log.Warnf("Symmetry: no reference point (nose or shoulders), skipping all pairs")
		a.symmetry = result
		return result
	}
	gate := float64(a.cfg.MotionMinScore)
	for _, pair := range pose.LeftRightPairs {
		if math.Min(a.meanScore(pair.Left), a.meanScore(pair.Right)) < gate {
			a.log.Infof("Symmetry: skipping %v, mean confidence below %.2f", pair.Name, a.cfg.MotionMinScore)
			continue
		}
		left := a.trajectories[pair.Left]
		right := a.trajectories[pair.Right]
		sum := 0.0
		for i := range refX {
			// Left position relative to the reference, against the right
			// position mirrored horizontally about the reference x.
			lx := left.X[i] - refX[i]
			ly := left.Y[i] - refY[i]
			mx := refX[i] - right.X[i]
			my := right.Y[i] - refY[i]
			sum += math.Hypot(lx-mx, ly-my)
		}
		result[pair.Name] = sum / float64(len(refX))
	}
	a.symmetry = result
	return result
}

// referenceTrajectory picks the mirror axis for symmetry: the nose when it
// is reliably detected, otherwise the shoulder midpoint.
func (a *Analyzer) referenceTrajectory() (x, y []float64, ok bool) {
	gate := float64(a.cfg.MotionMinScore)
	if a.meanScore(pose.Nose) >= gate {
		t := a.trajectories[pose.Nose]
		return t.X, t.Y, true
	}
	if a.meanScore(pose.LeftShoulder) >= gate && a.meanScore(pose.RightShoulder) >= gate {
		ls := a.trajectories[pose.LeftShoulder]
		rs := a.trajectories[pose.RightShoulder]
		n := len(ls.X)
		x = make([]float64, n)
		y = make([]float64, n)
		for i := 0; i < n; i++ {
			x[i] = (ls.X[i] + rs.X[i]) / 2
			y[i] = (ls.Y[i] + rs.Y[i]) / 2
		}
		return x, y, true
	}
	return nil, nil, false
}
