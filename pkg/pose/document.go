package pose

import (
	"encoding/json"
	"errors"
	"fmt"
)

// The offline input contract: a recorded session document as emitted by the
// upstream pose estimator. meta_info describes the dataset/keypoint layout
// and is informational only; instance_info is the ordered frame list.

var (
	ErrMissingMetaInfo     = errors.New("document has no meta_info")
	ErrMissingInstanceInfo = errors.New("document has no instance_info")
	ErrEmptyInstanceInfo   = errors.New("document instance_info is empty")
	ErrNoInstances         = errors.New("first frame has no instances")
)

// Instance is one person's keypoint estimate within a recorded frame.
type Instance struct {
	Keypoints [][]float32 `json:"keypoints"`       // 17 x [x,y]
	Scores    []float32   `json:"keypoint_scores"` // 17 confidences
}

// DocumentFrame is one recorded frame, possibly containing multiple people.
type DocumentFrame struct {
	FrameID   *int       `json:"frame_id"` // nil when the estimator omitted it
	Instances []Instance `json:"instances"`
}

// Document is a full recorded session.
type Document struct {
	MetaInfo     json.RawMessage `json:"meta_info"`
	InstanceInfo []DocumentFrame `json:"instance_info"`
}

// ParseDocument decodes and validates a recorded session document.
// Fails fast on a malformed top level; per-frame problems are left for
// Frames() to skip over.
func ParseDocument(data []byte) (*Document, error) {
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("invalid session document: %w", err)
	}
	if len(doc.MetaInfo) == 0 || string(doc.MetaInfo) == "null" {
		return nil, ErrMissingMetaInfo
	}
	if doc.InstanceInfo == nil {
		return nil, ErrMissingInstanceInfo
	}
	if len(doc.InstanceInfo) == 0 {
		return nil, ErrEmptyInstanceInfo
	}
	if len(doc.InstanceInfo[0].Instances) == 0 {
		return nil, ErrNoInstances
	}
	return doc, nil
}

// MeanScore returns the mean keypoint confidence of the instance.
func (in *Instance) MeanScore() float32 {
	if len(in.Scores) == 0 {
		return 0
	}
	sum := float32(0)
	for _, s := range in.Scores {
		sum += s
	}
	return sum / float32(len(in.Scores))
}

// BestInstance reduces a multi-person frame to a single subject: the instance
// with the highest mean keypoint score. This is deliberately a standalone
// pure function so the reduction policy can be swapped (e.g. for track-id
// continuity) without touching the downstream metrics.
func BestInstance(instances []Instance) *Instance {
	var best *Instance
	bestScore := float32(-1)
	for i := range instances {
		if s := instances[i].MeanScore(); s > bestScore {
			best = &instances[i]
			bestScore = s
		}
	}
	return best
}

// Frames reduces the document to one Pose per frame, ordered by frame id.
// Frames with no usable instance are skipped; the second return value is the
// number of skipped frames, for diagnostics. A missing frame_id falls back to
// sequential numbering.
func (d *Document) Frames() ([]Frame, int) {
	frames := make([]Frame, 0, len(d.InstanceInfo))
	skipped := 0
	for i := range d.InstanceInfo {
		df := &d.InstanceInfo[i]
		best := BestInstance(df.Instances)
		if best == nil {
			skipped++
			continue
		}
		det := Detection{Keypoints: best.Keypoints, Confidences: best.Scores}
		p, ok := det.Pose()
		if !ok {
			skipped++
			continue
		}
		id := i
		if df.FrameID != nil {
			id = *df.FrameID
		}
		frames = append(frames, Frame{ID: id, Pose: p})
	}
	return frames, skipped
}
