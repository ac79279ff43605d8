package realtime

import (
	"testing"
	"time"

	"github.com/cyclopcam/logs"
	"github.com/motionlab/baduanjin/pkg/pose"
	"github.com/stretchr/testify/require"
)

// idealPoseHeavens is a near-perfect pose for exercise 1: hands overhead and
// level, torso stacked.
func idealPoseHeavens(score float32) pose.Pose {
	var p pose.Pose
	set := func(idx int, x, y float32) {
		p[idx] = pose.Keypoint{X: x, Y: y, Score: score}
	}
	set(pose.Nose, 100, 40)
	set(pose.LeftEye, 96, 36)
	set(pose.RightEye, 104, 36)
	set(pose.LeftEar, 92, 38)
	set(pose.RightEar, 108, 38)
	set(pose.LeftShoulder, 90, 70)
	set(pose.RightShoulder, 110, 70)
	set(pose.LeftElbow, 88, 45)
	set(pose.RightElbow, 112, 45)
	set(pose.LeftWrist, 95, 20)
	set(pose.RightWrist, 105, 20)
	set(pose.LeftHip, 92, 130)
	set(pose.RightHip, 108, 130)
	set(pose.LeftKnee, 91, 170)
	set(pose.RightKnee, 109, 170)
	set(pose.LeftAnkle, 90, 210)
	set(pose.RightAnkle, 110, 210)
	return p
}

func toDetections(p pose.Pose) []pose.Detection {
	det := pose.Detection{
		Keypoints:   make([][]float32, pose.NumKeypoints),
		Confidences: make([]float32, pose.NumKeypoints),
	}
	for i := 0; i < pose.NumKeypoints; i++ {
		det.Keypoints[i] = []float32{p[i].X, p[i].Y}
		det.Confidences[i] = p[i].Score
	}
	return []pose.Detection{det}
}

// newTestTracker returns a tracker with a controllable clock.
func newTestTracker(t *testing.T) (*Tracker, *time.Time) {
	tr := NewTracker(DefaultConfig(), logs.NewTestingLog(t))
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	tr.nowFunc = func() time.Time { return now }
	tr.sessionStart = now
	return tr, &now
}

func TestStartExerciseUnknownID(t *testing.T) {
	tr, _ := newTestTracker(t)
	for _, id := range []int{0, 99, -1} {
		res := tr.StartExercise(id)
		require.False(t, res.Success)
		require.NotEmpty(t, res.Error)
	}
	require.Equal(t, 0, tr.SessionStatistics().ExercisesAttempted)
}

func TestStartExerciseValidIDs(t *testing.T) {
	tr, _ := newTestTracker(t)
	for id := 1; id <= 8; id++ {
		res := tr.StartExercise(id)
		require.True(t, res.Success)
		require.Empty(t, res.Error)
		require.Equal(t, id, res.ExerciseID)
		require.NotEmpty(t, res.Name)
		require.NotEmpty(t, res.Description)
		require.NotEmpty(t, res.Phases)
	}
	require.Equal(t, 8, tr.SessionStatistics().ExercisesAttempted)
}

func TestProcessWithoutActiveExercise(t *testing.T) {
	tr, _ := newTestTracker(t)
	require.Nil(t, tr.ProcessRealTimePose(toDetections(idealPoseHeavens(0.9))))
}

func TestProcessLowConfidencePose(t *testing.T) {
	tr, _ := newTestTracker(t)
	require.True(t, tr.StartExercise(1).Success)

	fb := tr.ProcessRealTimePose(toDetections(idealPoseHeavens(0.3)))
	require.NotNil(t, fb)
	require.Equal(t, 0.0, fb.FormScore)
	require.Contains(t, fb.Messages[0], "not clearly detected")
	require.Equal(t, 1, fb.ExerciseID)
	require.NotEmpty(t, fb.Phase)
}

func TestProcessNoDetections(t *testing.T) {
	tr, _ := newTestTracker(t)
	require.True(t, tr.StartExercise(1).Success)

	fb := tr.ProcessRealTimePose(nil)
	require.NotNil(t, fb)
	require.Equal(t, 0.0, fb.FormScore)
}

func TestProcessGoodPose(t *testing.T) {
	tr, now := newTestTracker(t)
	require.True(t, tr.StartExercise(1).Success)

	*now = now.Add(12 * time.Second) // inside the "hold" phase
	fb := tr.ProcessRealTimePose(toDetections(idealPoseHeavens(0.9)))
	require.NotNil(t, fb)
	require.Equal(t, "hold", fb.Phase)
	require.Equal(t, 100.0, fb.FormScore)
	require.Empty(t, fb.Messages)
	require.InDelta(t, 60, fb.CompletionPercent, 1e-9)
	require.Greater(t, fb.Quality.ShoulderAlignment, 90.0)
	require.Greater(t, fb.Quality.SpineAlignment, 90.0)
}

func TestCompletionPercentClamped(t *testing.T) {
	tr, now := newTestTracker(t)
	require.True(t, tr.StartExercise(2).Success)

	*now = now.Add(45 * time.Second)
	fb := tr.ProcessRealTimePose(toDetections(idealPoseHeavens(0.9)))
	require.NotNil(t, fb)
	require.Equal(t, 100.0, fb.CompletionPercent)
	// Past the nominal duration we stay in the final phase.
	require.Equal(t, "release", fb.Phase)
}

func TestEndExerciseWithoutStart(t *testing.T) {
	tr, _ := newTestTracker(t)
	res := tr.EndExercise()
	require.False(t, res.Success)
	require.NotEmpty(t, res.Error)
}

func TestEndExerciseSummary(t *testing.T) {
	tr, now := newTestTracker(t)
	require.True(t, tr.StartExercise(1).Success)

	for i := 0; i < 15; i++ {
		*now = now.Add(time.Second)
		require.NotNil(t, tr.ProcessRealTimePose(toDetections(idealPoseHeavens(0.9))))
	}
	res := tr.EndExercise()
	require.True(t, res.Success)
	require.NotNil(t, res.Summary)
	require.Equal(t, 100.0, res.Summary.AverageFormScore)
	require.True(t, res.Summary.Completed)
	require.Equal(t, 10, res.Summary.FramesScored)

	stats := tr.SessionStatistics()
	require.Equal(t, 1, stats.ExercisesAttempted)
	require.Equal(t, 1, stats.ExercisesCompleted)

	// Back to ready: another end fails, processing is a no-op.
	require.False(t, tr.EndExercise().Success)
	require.Nil(t, tr.ProcessRealTimePose(toDetections(idealPoseHeavens(0.9))))
}

func TestHistoryTrimming(t *testing.T) {
	cfg := DefaultConfig()
	tr := NewTracker(cfg, logs.NewTestingLog(t))
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	tr.nowFunc = func() time.Time { return now }

	require.True(t, tr.StartExercise(3).Success)
	for i := 0; i < 130; i++ {
		now = now.Add(100 * time.Millisecond)
		tr.ProcessRealTimePose(toDetections(idealPoseHeavens(0.9)))
	}
	// 130 frames: trimmed from 100 down to 50, then grown by 30.
	require.Len(t, tr.poseHistory, 80)
	require.Len(t, tr.feedbackHistory, 80)

	export := tr.ExportSessionData()
	require.LessOrEqual(t, len(export.RecentPoses), cfg.HistoryTrim)
	require.Equal(t, 80, export.Session.FeedbackEntries)
}

func TestSessionStatistics(t *testing.T) {
	tr, now := newTestTracker(t)
	require.True(t, tr.StartExercise(1).Success)
	for i := 0; i < 5; i++ {
		*now = now.Add(time.Second)
		tr.ProcessRealTimePose(toDetections(idealPoseHeavens(0.9)))
	}
	*now = now.Add(time.Minute)

	stats := tr.SessionStatistics()
	require.Equal(t, 100.0, stats.AverageFormScore)
	require.Equal(t, 100.0, stats.ConsistencyScore) // identical scores, zero variance
	require.Equal(t, 65*time.Second, stats.SessionDuration)
	require.NotEmpty(t, stats.Recommendations)
	// One exercise attempted: the "try more exercises" nudge is present.
	require.Contains(t, stats.Recommendations[len(stats.Recommendations)-1], "3 of the 8")
}

func TestExportSessionData(t *testing.T) {
	tr, now := newTestTracker(t)
	require.True(t, tr.StartExercise(5).Success)
	for i := 0; i < 3; i++ {
		*now = now.Add(time.Second)
		tr.ProcessRealTimePose(toDetections(idealPoseHeavens(0.9)))
	}

	export := tr.ExportSessionData()
	require.Equal(t, 5, export.Session.ActiveExercise)
	require.Len(t, export.FeedbackHistory, 3)
	require.Len(t, export.RecentPoses, 3)
	require.Equal(t, 1, export.Statistics.ExercisesAttempted)

	// Idempotent-safe: exporting again yields the same content.
	again := tr.ExportSessionData()
	require.Equal(t, export.FeedbackHistory, again.FeedbackHistory)
}
