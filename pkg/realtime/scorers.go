package realtime

import (
	"github.com/chewxy/math32"
	"github.com/motionlab/baduanjin/pkg/pose"
)

// A scorer judges one pose against one exercise's form rules for the current
// phase. It returns a 0-100 score plus feedback messages and concrete
// corrections. Scorers are pure: all session state lives in the Tracker.
type scorerFunc func(p *pose.Pose, phase string) (score float64, messages, corrections []string)

// The per-exercise scoring table. A lookup map keeps each exercise's rules
// isolated and independently testable.
var scorers = map[int]scorerFunc{
	1: scoreHoldUpTheHeavens,
	2: scoreDrawingTheBow,
	3: scoreSeparateHeavenAndEarth,
	4: scoreOwlGazesBackwards,
	5: scoreSwayHeadShakeTail,
	6: scoreHoldTheFeet,
	7: scoreClenchedFists,
	8: scoreBouncingOnToes,
}

// Penalty thresholds shared by several scorers, all relative to shoulder
// width so they are camera-distance invariant.
const (
	handAsymmetryRatio = 0.25 // wrist height mismatch
	torsoLeanRatio     = 0.20 // horizontal shoulder/hip midpoint offset
	horseStanceRatio   = 1.20 // minimum ankle spread for horse stance
	feetTogetherRatio  = 0.60 // maximum ankle spread for feet together
	straightKneeDeg    = 150  // knee angle above this counts as straight
)

func scoreHoldUpTheHeavens(p *pose.Pose, phase string) (float64, []string, []string) {
	score := 100.0
	messages := []string{}
	corrections := []string{}
	width := shoulderWidth(p)
	if width < 1e-3 {
		return 0, []string{"shoulders not visible"}, nil
	}

	if math32.Abs(p[pose.LeftWrist].Y-p[pose.RightWrist].Y) > handAsymmetryRatio*width {
		score -= 15
		messages = append(messages, "hands are at different heights")
		corrections = append(corrections, "keep both hands rising together")
	}
	if phase == "hold" || phase == "raise" {
		// Both wrists should clear the head at the top of the movement.
		if p[pose.LeftWrist].Y > p[pose.Nose].Y || p[pose.RightWrist].Y > p[pose.Nose].Y {
			score -= 20
			messages = append(messages, "arms are not fully extended overhead")
			corrections = append(corrections, "press both palms up past the crown of the head")
		}
	}
	if torsoLean(p) > torsoLeanRatio {
		score -= 15
		messages = append(messages, "torso is leaning")
		corrections = append(corrections, "stack the shoulders over the hips")
	}
	return clampScore(score), messages, corrections
}

func scoreDrawingTheBow(p *pose.Pose, phase string) (float64, []string, []string) {
	score := 100.0
	messages := []string{}
	corrections := []string{}
	width := shoulderWidth(p)
	if width < 1e-3 {
		return 0, []string{"shoulders not visible"}, nil
	}

	if stanceWidth(p) < horseStanceRatio*width {
		score -= 20
		messages = append(messages, "stance is too narrow")
		corrections = append(corrections, "step wider into horse stance")
	}
	if phase == "draw" || phase == "hold" {
		// At least one arm should be extended out to the side.
		leftReach := math32.Abs(p[pose.LeftWrist].X - p[pose.LeftShoulder].X)
		rightReach := math32.Abs(p[pose.RightWrist].X - p[pose.RightShoulder].X)
		if math32.Max(leftReach, rightReach) < 0.8*width {
			score -= 15
			messages = append(messages, "bow arm is not extended")
			corrections = append(corrections, "reach the bow arm fully out to the side")
		}
	}
	if math32.Abs(p[pose.LeftShoulder].Y-p[pose.RightShoulder].Y) > 0.15*width {
		score -= 10
		messages = append(messages, "shoulders are uneven")
		corrections = append(corrections, "settle both shoulders to the same height")
	}
	return clampScore(score), messages, corrections
}

func scoreSeparateHeavenAndEarth(p *pose.Pose, phase string) (float64, []string, []string) {
	score := 100.0
	messages := []string{}
	corrections := []string{}
	width := shoulderWidth(p)
	if width < 1e-3 {
		return 0, []string{"shoulders not visible"}, nil
	}

	if phase == "separate" || phase == "hold" {
		highWrist := math32.Min(p[pose.LeftWrist].Y, p[pose.RightWrist].Y)
		lowWrist := math32.Max(p[pose.LeftWrist].Y, p[pose.RightWrist].Y)
		hipY := hipMid(p).Y
		if highWrist > p[pose.Nose].Y || lowWrist < hipY {
			score -= 25
			messages = append(messages, "palms are not fully separated")
			corrections = append(corrections, "press one palm up overhead and one palm down past the hip")
		}
	}
	if torsoLean(p) > torsoLeanRatio {
		score -= 15
		messages = append(messages, "torso is tilting sideways")
		corrections = append(corrections, "keep the trunk vertical while the arms separate")
	}
	return clampScore(score), messages, corrections
}

func scoreOwlGazesBackwards(p *pose.Pose, phase string) (float64, []string, []string) {
	score := 100.0
	messages := []string{}
	corrections := []string{}
	width := shoulderWidth(p)
	if width < 1e-3 {
		return 0, []string{"shoulders not visible"}, nil
	}

	if phase == "turn" || phase == "gaze" {
		// The nose drifting off the shoulder midline is our head-turn proxy.
		if math32.Abs(p[pose.Nose].X-shoulderMid(p).X) < 0.15*width {
			score -= 20
			messages = append(messages, "head turn is too small")
			corrections = append(corrections, "rotate the head further to gaze behind you")
		}
	}
	if math32.Abs(p[pose.LeftHip].Y-p[pose.RightHip].Y) > 0.15*width {
		score -= 10
		messages = append(messages, "hips are twisting with the head")
		corrections = append(corrections, "keep the hips square to the front")
	}
	if p[pose.LeftWrist].Y < p[pose.LeftShoulder].Y || p[pose.RightWrist].Y < p[pose.RightShoulder].Y {
		score -= 10
		messages = append(messages, "arms are lifting")
		corrections = append(corrections, "let the arms hang relaxed at the sides")
	}
	return clampScore(score), messages, corrections
}

func scoreSwayHeadShakeTail(p *pose.Pose, phase string) (float64, []string, []string) {
	score := 100.0
	messages := []string{}
	corrections := []string{}
	width := shoulderWidth(p)
	if width < 1e-3 {
		return 0, []string{"shoulders not visible"}, nil
	}

	if stanceWidth(p) < horseStanceRatio*width {
		score -= 15
		messages = append(messages, "stance is too narrow for this movement")
		corrections = append(corrections, "widen the feet well beyond the shoulders")
	}
	if phase == "sink" || phase == "sway" {
		if minKneeAngle(p) > straightKneeDeg {
			score -= 20
			messages = append(messages, "knees are too straight")
			corrections = append(corrections, "sink deeper into the horse stance")
		}
	}
	return clampScore(score), messages, corrections
}

func scoreHoldTheFeet(p *pose.Pose, phase string) (float64, []string, []string) {
	score := 100.0
	messages := []string{}
	corrections := []string{}
	width := shoulderWidth(p)
	if width < 1e-3 {
		return 0, []string{"shoulders not visible"}, nil
	}

	if phase == "fold" || phase == "hold" {
		if p[pose.Nose].Y < hipMid(p).Y {
			score -= 25
			messages = append(messages, "fold is too shallow")
			corrections = append(corrections, "hinge further forward from the hips")
		}
		if minKneeAngle(p) < straightKneeDeg {
			score -= 15
			messages = append(messages, "knees are bending in the fold")
			corrections = append(corrections, "keep the legs long, knees soft but not bent")
		}
		leftGap := pose.Distance(p[pose.LeftWrist], p[pose.LeftAnkle])
		rightGap := pose.Distance(p[pose.RightWrist], p[pose.RightAnkle])
		if math32.Min(leftGap, rightGap) > 0.8*width {
			score -= 10
			messages = append(messages, "hands are far from the feet")
			corrections = append(corrections, "slide the hands further down toward the feet")
		}
	}
	return clampScore(score), messages, corrections
}

func scoreClenchedFists(p *pose.Pose, phase string) (float64, []string, []string) {
	score := 100.0
	messages := []string{}
	corrections := []string{}
	width := shoulderWidth(p)
	if width < 1e-3 {
		return 0, []string{"shoulders not visible"}, nil
	}

	if stanceWidth(p) < horseStanceRatio*width {
		score -= 20
		messages = append(messages, "stance is too narrow")
		corrections = append(corrections, "hold a wide horse stance while punching")
	}
	if phase == "punch" || phase == "hold" {
		leftReach := math32.Abs(p[pose.LeftWrist].X - p[pose.LeftShoulder].X)
		rightReach := math32.Abs(p[pose.RightWrist].X - p[pose.RightShoulder].X)
		if math32.Max(leftReach, rightReach) < width {
			score -= 15
			messages = append(messages, "punch is not fully extended")
			corrections = append(corrections, "extend the fist slowly to full reach at shoulder height")
		}
	}
	if torsoLean(p) > torsoLeanRatio {
		score -= 10
		messages = append(messages, "body is leaning into the punch")
		corrections = append(corrections, "keep the trunk upright, power comes from the stance")
	}
	return clampScore(score), messages, corrections
}

func scoreBouncingOnToes(p *pose.Pose, phase string) (float64, []string, []string) {
	score := 100.0
	messages := []string{}
	corrections := []string{}
	width := shoulderWidth(p)
	if width < 1e-3 {
		return 0, []string{"shoulders not visible"}, nil
	}

	if stanceWidth(p) > feetTogetherRatio*width {
		score -= 15
		messages = append(messages, "feet are apart")
		corrections = append(corrections, "bring the feet together under the hips")
	}
	if torsoLean(p) > 0.15 {
		score -= 15
		messages = append(messages, "body is tipping")
		corrections = append(corrections, "rise and drop along a vertical line")
	}
	hipY := hipMid(p).Y
	if p[pose.LeftWrist].Y < hipY || p[pose.RightWrist].Y < hipY {
		score -= 10
		messages = append(messages, "arms are lifting")
		corrections = append(corrections, "let the arms hang loose at the sides")
	}
	return clampScore(score), messages, corrections
}

// torsoLean is the horizontal offset between the shoulder and hip midpoints,
// as a fraction of shoulder width.
func torsoLean(p *pose.Pose) float32 {
	width := shoulderWidth(p)
	if width < 1e-3 {
		return 0
	}
	return math32.Abs(shoulderMid(p).X-hipMid(p).X) / width
}

// stanceWidth is the horizontal distance between the ankles.
func stanceWidth(p *pose.Pose) float32 {
	return math32.Abs(p[pose.LeftAnkle].X - p[pose.RightAnkle].X)
}

// minKneeAngle is the straighter-leg bound: the smaller of the two
// hip-knee-ankle angles, in degrees. Returns 180 when both are degenerate.
func minKneeAngle(p *pose.Pose) float32 {
	left := pose.Angle(p[pose.LeftHip], p[pose.LeftKnee], p[pose.LeftAnkle])
	right := pose.Angle(p[pose.RightHip], p[pose.RightKnee], p[pose.RightAnkle])
	angle := float32(180)
	if !math32.IsNaN(left) {
		angle = left
	}
	if !math32.IsNaN(right) && right < angle {
		angle = right
	}
	return angle
}
