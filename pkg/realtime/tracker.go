package realtime

import (
	"fmt"
	"time"

	"github.com/bmharper/ringbuffer"
	"github.com/cyclopcam/logs"
	"github.com/motionlab/baduanjin/pkg/pose"
)

// Config collects the tracker's thresholds and buffer sizes.
type Config struct {
	MinVisibleKeypoints int           // Keypoints above VisibleMinScore required to score a frame
	VisibleMinScore     float32       // Per-keypoint confidence gate for visibility
	NominalDuration     time.Duration // Assumed duration of one exercise, drives completion %
	HistoryCap          int           // Pose/feedback history length that triggers a trim
	HistoryTrim         int           // History length after a trim
	SummaryWindow       int           // Number of recent form scores averaged at exercise end
	CompleteThreshold   float64       // Average form score above which an exercise counts as completed
}

// DefaultConfig returns the tracker configuration used in production.
// NominalDuration is a placeholder heuristic: every exercise is assumed to
// take 20 seconds regardless of type.
func DefaultConfig() Config {
	return Config{
		MinVisibleKeypoints: 8,
		VisibleMinScore:     0.50,
		NominalDuration:     20 * time.Second,
		HistoryCap:          100,
		HistoryTrim:         50,
		SummaryWindow:       10,
		CompleteThreshold:   70,
	}
}

// TimedPose is one history entry: a pose and when it was captured.
type TimedPose struct {
	Timestamp time.Time `json:"timestamp"`
	Pose      pose.Pose `json:"pose"`
}

// Tracker is the live session state machine: ready -> active(phase) -> ready.
// It is designed to be called once per captured frame from a single capture
// loop; it performs no locking itself, so a shared instance must be
// serialized by the caller.
type Tracker struct {
	Log logs.Log
	cfg Config

	current *ExerciseDefinition // nil while no exercise is active
	phase   string
	started time.Time

	poseHistory     []TimedPose
	feedbackHistory []Feedback
	recentScores    ringbuffer.RingP[float64]

	attempted     int
	completed     int
	allFormScores []float64
	sessionStart  time.Time

	nowFunc func() time.Time // swappable for tests
}

// NewTracker creates a tracker for one live session.
func NewTracker(cfg Config, logger logs.Log) *Tracker {
	t := &Tracker{
		Log:          logger,
		cfg:          cfg,
		recentScores: ringbuffer.NewRingP[float64](nextPowerOf2(cfg.SummaryWindow)),
		nowFunc:      time.Now,
	}
	t.sessionStart = t.nowFunc()
	return t
}

// The ring buffer needs a power-of-2 capacity.
func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// StartResult is the structured outcome of StartExercise. A live UI reacts
// to Success/Error rather than handling exceptions.
type StartResult struct {
	Success     bool     `json:"success"`
	Error       string   `json:"error,omitempty"`
	ExerciseID  int      `json:"exerciseId,omitempty"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Phases      []string `json:"phases,omitempty"`
}

// StartExercise activates an exercise from the catalog, resetting phase,
// timer and history. An unknown id fails structurally, not with an error.
func (t *Tracker) StartExercise(id int) StartResult {
	def, ok := Catalog[id]
	if !ok {
		return StartResult{
			Success: false,
			Error:   fmt.Sprintf("unknown exercise id %d: valid ids are 1-8", id),
		}
	}
	t.current = def
	t.phase = def.Phases[0]
	t.started = t.nowFunc()
	t.poseHistory = t.poseHistory[:0]
	t.feedbackHistory = t.feedbackHistory[:0]
	t.recentScores = ringbuffer.NewRingP[float64](nextPowerOf2(t.cfg.SummaryWindow))
	t.attempted++
	t.Log.Infof("Exercise %v started: %v", def.ID, def.Name)
	return StartResult{
		Success:     true,
		ExerciseID:  def.ID,
		Name:        def.Name,
		Description: def.Description,
		Phases:      def.Phases,
	}
}

// ProcessRealTimePose scores one live frame. Returns nil when no exercise is
// active. The first detection is the tracked subject; a frame without enough
// confident keypoints still yields a fully formed Feedback with a zero score.
func (t *Tracker) ProcessRealTimePose(detections []pose.Detection) *Feedback {
	if t.current == nil {
		return nil
	}
	now := t.nowFunc()
	elapsed := now.Sub(t.started)
	t.phase = t.phaseForElapsed(elapsed)

	p, visible := t.extractPose(detections)
	fb := Feedback{
		ExerciseID:        t.current.ID,
		ExerciseName:      t.current.Name,
		Phase:             t.phase,
		CompletionPercent: t.completionPercent(elapsed),
		Timestamp:         now,
	}
	if !visible {
		fb.FormScore = 0
		fb.Messages = []string{"pose not clearly detected, adjust your position or lighting"}
		t.record(p, fb)
		return &fb
	}

	score, messages, corrections := scorers[t.current.ID](&p, t.phase)
	fb.FormScore = clampScore(score)
	fb.Messages = messages
	fb.Corrections = corrections
	fb.Quality.ShoulderAlignment, fb.Quality.HipAlignment, fb.Quality.SpineAlignment = scorePostureAlignment(&p)
	fb.Quality.Stability = scoreStability(&p, t.poseHistory)

	t.recentScores.Add(fb.FormScore)
	t.allFormScores = append(t.allFormScores, fb.FormScore)
	t.record(p, fb)
	return &fb
}

// extractPose reduces the detection list to the first subject and checks the
// visibility gate.
func (t *Tracker) extractPose(detections []pose.Detection) (pose.Pose, bool) {
	var p pose.Pose
	if len(detections) == 0 {
		return p, false
	}
	p, ok := detections[0].Pose()
	if !ok {
		return p, false
	}
	return p, p.NumConfident(t.cfg.VisibleMinScore) >= t.cfg.MinVisibleKeypoints
}

// phaseForElapsed slices the nominal exercise duration evenly across the
// exercise's phases.
func (t *Tracker) phaseForElapsed(elapsed time.Duration) string {
	phases := t.current.Phases
	slot := int(elapsed * time.Duration(len(phases)) / t.cfg.NominalDuration)
	if slot >= len(phases) {
		slot = len(phases) - 1
	}
	return phases[slot]
}

func (t *Tracker) completionPercent(elapsed time.Duration) float64 {
	pct := elapsed.Seconds() / t.cfg.NominalDuration.Seconds() * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

// record appends to the pose/feedback history, trimming each buffer down to
// HistoryTrim entries once it reaches HistoryCap.
func (t *Tracker) record(p pose.Pose, fb Feedback) {
	t.poseHistory = append(t.poseHistory, TimedPose{Timestamp: fb.Timestamp, Pose: p})
	if len(t.poseHistory) >= t.cfg.HistoryCap {
		t.poseHistory = append(t.poseHistory[:0], t.poseHistory[len(t.poseHistory)-t.cfg.HistoryTrim:]...)
	}
	t.feedbackHistory = append(t.feedbackHistory, fb)
	if len(t.feedbackHistory) >= t.cfg.HistoryCap {
		t.feedbackHistory = append(t.feedbackHistory[:0], t.feedbackHistory[len(t.feedbackHistory)-t.cfg.HistoryTrim:]...)
	}
}

// ExerciseSummary is the result of one completed exercise attempt.
type ExerciseSummary struct {
	ExerciseID       int           `json:"exerciseId"`
	Name             string        `json:"name"`
	Duration         time.Duration `json:"duration"`
	AverageFormScore float64       `json:"averageFormScore"`
	FramesScored     int           `json:"framesScored"`
	Completed        bool          `json:"completed"`
}

// EndResult is the structured outcome of EndExercise.
type EndResult struct {
	Success bool             `json:"success"`
	Error   string           `json:"error,omitempty"`
	Summary *ExerciseSummary `json:"summary,omitempty"`
}

// EndExercise finalizes the active exercise: the last few form scores are
// averaged into a summary and the tracker returns to ready.
func (t *Tracker) EndExercise() EndResult {
	if t.current == nil {
		return EndResult{Success: false, Error: "no active exercise"}
	}
	// Average the last SummaryWindow scores (the ring may hold slightly more,
	// since its capacity is rounded up to a power of 2).
	n := t.recentScores.Len()
	if n > t.cfg.SummaryWindow {
		n = t.cfg.SummaryWindow
	}
	avg := 0.0
	for i := t.recentScores.Len() - n; i < t.recentScores.Len(); i++ {
		avg += t.recentScores.Peek(i)
	}
	if n > 0 {
		avg /= float64(n)
	}
	completed := avg > t.cfg.CompleteThreshold
	if completed {
		t.completed++
	}
	summary := &ExerciseSummary{
		ExerciseID:       t.current.ID,
		Name:             t.current.Name,
		Duration:         t.nowFunc().Sub(t.started),
		AverageFormScore: avg,
		FramesScored:     n,
		Completed:        completed,
	}
	t.Log.Infof("Exercise %v ended: average form %.1f over %v frames (completed=%v)", t.current.ID, avg, n, completed)
	t.current = nil
	t.phase = ""
	return EndResult{Success: true, Summary: summary}
}
