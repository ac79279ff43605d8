package analysis

import (
	"math"

	"github.com/motionlab/baduanjin/pkg/pose"
	"github.com/motionlab/baduanjin/pkg/stats"
)

// The distal joints whose movement smoothness we score. Proximal joints move
// too little for jerk to be informative.
var smoothnessJoints = []struct {
	Name  string
	Index int
}{
	{"Left Wrist", pose.LeftWrist},
	{"Right Wrist", pose.RightWrist},
	{"Left Ankle", pose.LeftAnkle},
	{"Right Ankle", pose.RightAnkle},
}

// Smoothness computes (once) the mean jerk magnitude per tracked joint.
// Lower is smoother. A joint whose mean confidence is below the motion gate
// is skipped; skips are independent per joint.
func (a *Analyzer) Smoothness() map[string]float64 {
	if a.smoothness != nil {
		return a.smoothness
	}
	result := map[string]float64{}
	for _, joint := range smoothnessJoints {
		if a.meanScore(joint.Index) < float64(a.cfg.MotionMinScore) {
			a.log.Infof("Smoothness: skipping %v, mean confidence below %.2f", joint.Name, a.cfg.MotionMinScore)
			continue
		}
		t := a.trajectories[joint.Index]
		jx := diff3(t.X)
		jy := diff3(t.Y)
		if jx == nil {
			continue // too few frames for a third difference
		}
		mags := make([]float64, len(jx))
		for i := range jx {
			mags[i] = math.Hypot(jx[i], jy[i])
		}
		result[joint.Name] = stats.Mean(mags)
	}
	a.smoothness = result
	return result
}

// diff3 takes three successive finite differences (velocity, acceleration,
// jerk). Returns nil when the input is too short.
func diff3(values []float64) []float64 {
	v := values
	for d := 0; d < 3; d++ {
		if len(v) < 2 {
			return nil
		}
		next := make([]float64, len(v)-1)
		for i := range next {
			next[i] = v[i+1] - v[i]
		}
		v = next
	}
	return v
}
