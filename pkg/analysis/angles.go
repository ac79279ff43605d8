package analysis

import (
	"math"

	"github.com/motionlab/baduanjin/pkg/pose"
)

// AngleDefinition names a 3-point joint angle. The angle is measured at P2,
// between the rays P2->P1 and P2->P3.
type AngleDefinition struct {
	Name string
	P1   int
	P2   int
	P3   int
}

// AngleCatalog is the fixed set of ten named joint angles tracked per frame.
var AngleCatalog = []AngleDefinition{
	{"Left Elbow", pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist},
	{"Right Elbow", pose.RightShoulder, pose.RightElbow, pose.RightWrist},
	{"Left Shoulder", pose.LeftElbow, pose.LeftShoulder, pose.LeftHip},
	{"Right Shoulder", pose.RightElbow, pose.RightShoulder, pose.RightHip},
	{"Left Hip", pose.LeftShoulder, pose.LeftHip, pose.LeftKnee},
	{"Right Hip", pose.RightShoulder, pose.RightHip, pose.RightKnee},
	{"Left Knee", pose.LeftHip, pose.LeftKnee, pose.LeftAnkle},
	{"Right Knee", pose.RightHip, pose.RightKnee, pose.RightAnkle},
	{"Spine Top", pose.Nose, pose.LeftShoulder, pose.RightShoulder},
	{"Spine Bottom", pose.LeftShoulder, pose.LeftHip, pose.RightHip},
}

// JointAngleSeries is a frame-indexed table with one column per named angle.
// A value is NaN when the angle could not be computed for that frame; the
// row is kept so frame alignment is preserved.
type JointAngleSeries struct {
	FrameIDs []int       `json:"frameIds"`
	Names    []string    `json:"names"`
	Values   [][]float64 `json:"values"` // [frame][angle], degrees or NaN
}

// Column returns the value sequence for one named angle, or nil if the name
// is not in the catalog.
func (s *JointAngleSeries) Column(name string) []float64 {
	for c, n := range s.Names {
		if n == name {
			col := make([]float64, len(s.Values))
			for i := range s.Values {
				col[i] = s.Values[i][c]
			}
			return col
		}
	}
	return nil
}

// JointAngles computes (once) the full joint-angle table from the smoothed
// trajectories. An angle is computed only when all three defining points
// reach the angle confidence gate for that frame.
func (a *Analyzer) JointAngles() *JointAngleSeries {
	if a.angles != nil {
		return a.angles
	}
	n := len(a.frames)
	series := &JointAngleSeries{
		FrameIDs: make([]int, n),
		Names:    make([]string, len(AngleCatalog)),
		Values:   make([][]float64, n),
	}
	for c, def := range AngleCatalog {
		series.Names[c] = def.Name
	}
	for i := range a.frames {
		series.FrameIDs[i] = a.frames[i].ID
		row := make([]float64, len(AngleCatalog))
		for c, def := range AngleCatalog {
			row[c] = a.angleAt(i, def)
		}
		series.Values[i] = row
	}
	a.angles = series
	return series
}

// angleAt computes one named angle for one frame, from the smoothed
// trajectories, or NaN if gated or degenerate.
func (a *Analyzer) angleAt(frame int, def AngleDefinition) float64 {
	gate := float64(a.cfg.AngleMinScore)
	for _, kp := range []int{def.P1, def.P2, def.P3} {
		if float64(a.trajectories[kp].Score[frame]) < gate {
			return math.NaN()
		}
	}
	p1 := a.trajectories[def.P1]
	p2 := a.trajectories[def.P2]
	p3 := a.trajectories[def.P3]
	return angleBetween(
		p1.X[frame], p1.Y[frame],
		p2.X[frame], p2.Y[frame],
		p3.X[frame], p3.Y[frame],
	)
}

// angleBetween returns the angle in degrees at (bx,by) between the rays
// toward (ax,ay) and (cx,cy), or NaN when a ray is degenerate.
func angleBetween(ax, ay, bx, by, cx, cy float64) float64 {
	v1x, v1y := ax-bx, ay-by
	v2x, v2y := cx-bx, cy-by
	n1 := math.Hypot(v1x, v1y)
	n2 := math.Hypot(v2x, v2y)
	if n1 < 1e-6 || n2 < 1e-6 {
		return math.NaN()
	}
	cos := (v1x*v2x + v1y*v2y) / (n1 * n2)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}
