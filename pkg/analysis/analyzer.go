// Package analysis derives movement-quality metrics from a recorded COCO-17
// keypoint session: smoothed trajectories, joint angles, key poses, jerk,
// left/right symmetry and center-of-mass stability.
package analysis

import (
	"errors"

	"github.com/cyclopcam/logs"
	"github.com/motionlab/baduanjin/pkg/pose"
	"github.com/motionlab/baduanjin/pkg/savgol"
	"github.com/motionlab/baduanjin/pkg/stats"
)

var ErrNoFrames = errors.New("session has no usable frames")

// Trajectory is one keypoint's position sequence across the session, aligned
// to frame order. X and Y are smoothed; Score keeps the original detector
// confidences untouched.
type Trajectory struct {
	X     []float64
	Y     []float64
	Score []float32
}

// Analyzer computes offline movement metrics for one recorded session.
// Trajectories are smoothed eagerly at construction; every other metric
// group is computed on first access and memoized. The analyzer is
// single-threaded: share one instance per goroutine or serialize access.
type Analyzer struct {
	log     logs.Log
	cfg     Config
	frames  []pose.Frame
	skipped int // frames dropped during document reduction

	trajectories [pose.NumKeypoints]Trajectory

	// Memoized metric groups, nil until first access.
	angles     *JointAngleSeries
	keyPoses   []KeyPose
	smoothness map[string]float64
	symmetry   map[string]float64
	balance    *BalanceMetrics
}

// NewAnalyzer builds an analyzer from an already-parsed session document.
// Top-level document validation is ParseDocument's job; this fails only when
// no frame survived reduction.
func NewAnalyzer(doc *pose.Document, cfg Config, logger logs.Log) (*Analyzer, error) {
	frames, skipped := doc.Frames()
	a, err := NewAnalyzerFromFrames(frames, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.skipped = skipped
	if skipped > 0 {
		logger.Infof("Session reduction skipped %v malformed frames", skipped)
	}
	return a, nil
}

// NewAnalyzerFromFrames builds an analyzer from pre-reduced frames.
func NewAnalyzerFromFrames(frames []pose.Frame, cfg Config, logger logs.Log) (*Analyzer, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	a := &Analyzer{
		log:    logger,
		cfg:    cfg,
		frames: frames,
	}
	a.smoothTrajectories()
	return a, nil
}

// NumFrames returns the number of usable frames in the session.
func (a *Analyzer) NumFrames() int { return len(a.frames) }

// SkippedFrames returns the number of frames dropped during reduction.
func (a *Analyzer) SkippedFrames() int { return a.skipped }

// Trajectory returns the smoothed trajectory for one keypoint index.
func (a *Analyzer) Trajectory(kp int) *Trajectory { return &a.trajectories[kp] }

// smoothTrajectories runs the Savitzky-Golay preprocessor over every
// keypoint. Smoothing only touches samples whose confidence exceeds the
// angle gate, and requires more valid samples than the window length;
// anything else passes through raw. A smoothing failure downgrades that one
// keypoint to its raw values.
func (a *Analyzer) smoothTrajectories() {
	n := len(a.frames)
	for kp := 0; kp < pose.NumKeypoints; kp++ {
		t := Trajectory{
			X:     make([]float64, n),
			Y:     make([]float64, n),
			Score: make([]float32, n),
		}
		valid := make([]int, 0, n)
		for i, f := range a.frames {
			t.X[i] = float64(f.Pose[kp].X)
			t.Y[i] = float64(f.Pose[kp].Y)
			t.Score[i] = f.Pose[kp].Score
			if f.Pose[kp].Score > a.cfg.AngleMinScore {
				valid = append(valid, i)
			}
		}
		if n >= 2 && len(valid) > a.cfg.SmoothingWindow {
			if err := smoothAxes(t.X, t.Y, valid, a.cfg); err != nil {
				a.log.Warnf("Smoothing failed for %v, keeping raw values: %v", pose.KeypointNames[kp], err)
			}
		}
		a.trajectories[kp] = t
	}
}

// smoothAxes filters the valid samples of both axes as contiguous series and
// writes the results back at the same indices, leaving low-confidence samples
// bit-identical to their inputs. On error neither axis is modified, so a
// failed keypoint keeps its raw values throughout.
func smoothAxes(x, y []float64, valid []int, cfg Config) error {
	sx, err := filterSubset(x, valid, cfg)
	if err != nil {
		return err
	}
	sy, err := filterSubset(y, valid, cfg)
	if err != nil {
		return err
	}
	for i, idx := range valid {
		x[idx] = sx[i]
		y[idx] = sy[i]
	}
	return nil
}

func filterSubset(values []float64, valid []int, cfg Config) ([]float64, error) {
	sub := make([]float64, len(valid))
	for i, idx := range valid {
		sub[i] = values[idx]
	}
	return savgol.Filter(sub, cfg.SmoothingWindow, cfg.SmoothingOrder)
}

// meanScore returns the mean confidence of one keypoint across the session.
func (a *Analyzer) meanScore(kp int) float64 {
	return stats.Mean(a.trajectories[kp].Score)
}
