// Package pose holds the COCO-17 keypoint data model that is shared between
// the offline analyzer and the real-time tracker.
package pose

// Keypoint is a single detected joint position with its detector confidence.
type Keypoint struct {
	X     float32 `json:"x"`
	Y     float32 `json:"y"`
	Score float32 `json:"score"` // Detector confidence, 0..1
}

// Pose is one person's full COCO-17 keypoint set for a single frame.
type Pose [NumKeypoints]Keypoint

// Frame is one time step of a recorded session, reduced to a single subject.
type Frame struct {
	ID   int  `json:"frameId"`
	Pose Pose `json:"pose"`
}

// MeanScore returns the mean detector confidence across all keypoints.
func (p *Pose) MeanScore() float32 {
	sum := float32(0)
	for i := range p {
		sum += p[i].Score
	}
	return sum / NumKeypoints
}

// NumConfident returns the number of keypoints with confidence above threshold.
func (p *Pose) NumConfident(threshold float32) int {
	n := 0
	for i := range p {
		if p[i].Score > threshold {
			n++
		}
	}
	return n
}

// Detection is the per-person online input contract: one pose estimate as
// emitted by the upstream detector for a live frame.
type Detection struct {
	Keypoints   [][]float32 `json:"keypoints"`   // 17 x [x,y]
	Confidences []float32   `json:"confidences"` // 17 scores
}

// Pose converts a raw detection into a Pose.
// Returns false if the detection does not carry a full COCO-17 layout.
func (d *Detection) Pose() (Pose, bool) {
	var p Pose
	if len(d.Keypoints) < NumKeypoints || len(d.Confidences) < NumKeypoints {
		return p, false
	}
	for i := 0; i < NumKeypoints; i++ {
		if len(d.Keypoints[i]) < 2 {
			return p, false
		}
		p[i] = Keypoint{
			X:     d.Keypoints[i][0],
			Y:     d.Keypoints[i][1],
			Score: d.Confidences[i],
		}
	}
	return p, true
}
