package analysis

import (
	"github.com/motionlab/baduanjin/pkg/pose"
)

// basePose is an anatomically plausible standing pose in image coordinates
// (y grows downward), with every keypoint at the given confidence.
func basePose(score float32) pose.Pose {
	var p pose.Pose
	set := func(idx int, x, y float32) {
		p[idx] = pose.Keypoint{X: x, Y: y, Score: score}
	}
	set(pose.Nose, 100, 40)
	set(pose.LeftEye, 96, 36)
	set(pose.RightEye, 104, 36)
	set(pose.LeftEar, 92, 38)
	set(pose.RightEar, 108, 38)
	set(pose.LeftShoulder, 85, 70)
	set(pose.RightShoulder, 115, 70)
	set(pose.LeftElbow, 80, 100)
	set(pose.RightElbow, 120, 100)
	set(pose.LeftWrist, 78, 128)
	set(pose.RightWrist, 122, 128)
	set(pose.LeftHip, 90, 130)
	set(pose.RightHip, 110, 130)
	set(pose.LeftKnee, 88, 170)
	set(pose.RightKnee, 112, 170)
	set(pose.LeftAnkle, 87, 210)
	set(pose.RightAnkle, 113, 210)
	return p
}

// makeFrames builds n frames from basePose, letting mutate adjust each frame.
func makeFrames(n int, score float32, mutate func(i int, p *pose.Pose)) []pose.Frame {
	frames := make([]pose.Frame, n)
	for i := 0; i < n; i++ {
		p := basePose(score)
		if mutate != nil {
			mutate(i, &p)
		}
		frames[i] = pose.Frame{ID: i, Pose: p}
	}
	return frames
}
