package realtime

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/motionlab/baduanjin/pkg/pose"
)

// PoseQuality holds generic alignment sub-scores (0-100) computed from
// shoulder/hip geometry, independent of which exercise is active.
type PoseQuality struct {
	ShoulderAlignment float64 `json:"shoulderAlignment"`
	HipAlignment      float64 `json:"hipAlignment"`
	SpineAlignment    float64 `json:"spineAlignment"`
	Stability         float64 `json:"stability"`
}

// Feedback is the per-frame output of the tracker: the live form score with
// its supporting messages and corrections.
type Feedback struct {
	ExerciseID        int         `json:"exerciseId"`
	ExerciseName      string      `json:"exerciseName"`
	Phase             string      `json:"phase"`
	CompletionPercent float64     `json:"completionPercent"` // 0-100
	FormScore         float64     `json:"formScore"`         // 0-100
	Messages          []string    `json:"messages"`
	Corrections       []string    `json:"corrections"`
	Quality           PoseQuality `json:"quality"`
	Timestamp         time.Time   `json:"timestamp"`
}

// clampScore clamps a form score into [0,100].
func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// scorePostureAlignment is the generic alignment scorer: level shoulders,
// level hips and a vertical shoulder-to-hip line, each scored 0-100 relative
// to shoulder width.
func scorePostureAlignment(p *pose.Pose) (shoulder, hip, spine float64) {
	width := shoulderWidth(p)
	if width < 1e-3 {
		return 0, 0, 0
	}
	shoulderTilt := math32.Abs(p[pose.LeftShoulder].Y-p[pose.RightShoulder].Y) / width
	hipTilt := math32.Abs(p[pose.LeftHip].Y-p[pose.RightHip].Y) / width

	midShoulder := pose.Midpoint(p[pose.LeftShoulder], p[pose.RightShoulder])
	midHip := pose.Midpoint(p[pose.LeftHip], p[pose.RightHip])
	lean := math32.Abs(midShoulder.X-midHip.X) / width

	shoulder = clampScore(100 - float64(shoulderTilt)*250)
	hip = clampScore(100 - float64(hipTilt)*250)
	spine = clampScore(100 - float64(lean)*200)
	return shoulder, hip, spine
}

// scoreStability is the generic stability scorer: how still the hip midpoint
// has been over the recent pose history, normalized by shoulder width.
func scoreStability(p *pose.Pose, history []TimedPose) float64 {
	width := shoulderWidth(p)
	if width < 1e-3 || len(history) < 2 {
		return 100
	}
	// Mean drift of the hip midpoint across the recent history.
	drift := float32(0)
	prev := hipMid(&history[0].Pose)
	for i := 1; i < len(history); i++ {
		cur := hipMid(&history[i].Pose)
		drift += pose.Distance(prev, cur)
		prev = cur
	}
	drift /= float32(len(history) - 1)
	return clampScore(100 - float64(drift/width)*400)
}

func shoulderWidth(p *pose.Pose) float32 {
	return math32.Abs(p[pose.LeftShoulder].X - p[pose.RightShoulder].X)
}

func hipMid(p *pose.Pose) pose.Keypoint {
	return pose.Midpoint(p[pose.LeftHip], p[pose.RightHip])
}

func shoulderMid(p *pose.Pose) pose.Keypoint {
	return pose.Midpoint(p[pose.LeftShoulder], p[pose.RightShoulder])
}
