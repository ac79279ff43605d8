package realtime

import (
	"time"

	"github.com/motionlab/baduanjin/pkg/stats"
)

// SessionStats aggregates the whole live session so far.
type SessionStats struct {
	ExercisesAttempted int           `json:"exercisesAttempted"`
	ExercisesCompleted int           `json:"exercisesCompleted"`
	AverageFormScore   float64       `json:"averageFormScore"`
	SessionDuration    time.Duration `json:"sessionDuration"`
	ConsistencyScore   float64       `json:"consistencyScore"`
	Recommendations    []string      `json:"recommendations"`
}

// SessionStatistics summarizes the session: aggregate counts, mean form
// score, a movement-consistency score derived from score variance, and
// rule-based recommendations. Callable at any time, active exercise or not.
func (t *Tracker) SessionStatistics() SessionStats {
	mean, variance := stats.MeanVar(t.allFormScores)
	consistency := 100 - variance
	if consistency < 0 {
		consistency = 0
	}
	return SessionStats{
		ExercisesAttempted: t.attempted,
		ExercisesCompleted: t.completed,
		AverageFormScore:   mean,
		SessionDuration:    t.nowFunc().Sub(t.sessionStart),
		ConsistencyScore:   consistency,
		Recommendations:    t.recommendations(mean),
	}
}

// recommendations keys simple coaching advice off the mean form score bands,
// with a nudge to try more of the routine when fewer than 3 exercises have
// been attempted.
func (t *Tracker) recommendations(meanScore float64) []string {
	recs := []string{}
	switch {
	case len(t.allFormScores) == 0:
		recs = append(recs, "start an exercise to receive form feedback")
	case meanScore < 60:
		recs = append(recs, "slow down and focus on the basic shape of each movement")
		recs = append(recs, "review the common mistakes for each exercise before repeating it")
	case meanScore < 80:
		recs = append(recs, "good foundation: refine your alignment during the hold phases")
	default:
		recs = append(recs, "excellent form, consider longer holds or a slower tempo")
	}
	if t.attempted > 0 && t.attempted < 3 {
		recs = append(recs, "try at least 3 of the 8 exercises for a balanced session")
	}
	return recs
}

// SessionInfo identifies the session and its current state.
type SessionInfo struct {
	StartedAt       time.Time `json:"startedAt"`
	ActiveExercise  int       `json:"activeExercise"` // 0 when idle
	CurrentPhase    string    `json:"currentPhase,omitempty"`
	ExportedAt      time.Time `json:"exportedAt"`
	FeedbackEntries int       `json:"feedbackEntries"`
}

// SessionExport is a full session snapshot, ready for JSON serialization.
// Persisting it is the caller's job.
type SessionExport struct {
	Session         SessionInfo  `json:"session"`
	Statistics      SessionStats `json:"statistics"`
	FeedbackHistory []Feedback   `json:"feedbackHistory"`
	RecentPoses     []TimedPose  `json:"recentPoses"`
}

// ExportSessionData snapshots the session: info, statistics, the feedback
// history, and the last 50 poses. Safe to call repeatedly.
func (t *Tracker) ExportSessionData() SessionExport {
	activeID := 0
	if t.current != nil {
		activeID = t.current.ID
	}
	recent := t.poseHistory
	if len(recent) > t.cfg.HistoryTrim {
		recent = recent[len(recent)-t.cfg.HistoryTrim:]
	}
	return SessionExport{
		Session: SessionInfo{
			StartedAt:       t.sessionStart,
			ActiveExercise:  activeID,
			CurrentPhase:    t.phase,
			ExportedAt:      t.nowFunc(),
			FeedbackEntries: len(t.feedbackHistory),
		},
		Statistics:      t.SessionStatistics(),
		FeedbackHistory: append([]Feedback(nil), t.feedbackHistory...),
		RecentPoses:     append([]TimedPose(nil), recent...),
	}
}
