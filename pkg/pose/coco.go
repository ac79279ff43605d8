package pose

// COCO-17 keypoint indices, as produced by the upstream pose estimator.
const (
	Nose          = 0
	LeftEye       = 1
	RightEye      = 2
	LeftEar       = 3
	RightEar      = 4
	LeftShoulder  = 5
	RightShoulder = 6
	LeftElbow     = 7
	RightElbow    = 8
	LeftWrist     = 9
	RightWrist    = 10
	LeftHip       = 11
	RightHip      = 12
	LeftKnee      = 13
	RightKnee     = 14
	LeftAnkle     = 15
	RightAnkle    = 16
)

// NumKeypoints is the size of the COCO-17 layout.
const NumKeypoints = 17

// COCO-17 keypoint names, indexed by keypoint index.
var KeypointNames = []string{
	"Nose",
	"Left Eye",
	"Right Eye",
	"Left Ear",
	"Right Ear",
	"Left Shoulder",
	"Right Shoulder",
	"Left Elbow",
	"Right Elbow",
	"Left Wrist",
	"Right Wrist",
	"Left Hip",
	"Right Hip",
	"Left Knee",
	"Right Knee",
	"Left Ankle",
	"Right Ankle",
}

// JointPair is a left/right joint pairing used for symmetry analysis.
type JointPair struct {
	Name  string
	Left  int
	Right int
}

// The six left/right pairs that the symmetry analyzer compares.
var LeftRightPairs = []JointPair{
	{"Left Shoulder - Right Shoulder", LeftShoulder, RightShoulder},
	{"Left Elbow - Right Elbow", LeftElbow, RightElbow},
	{"Left Wrist - Right Wrist", LeftWrist, RightWrist},
	{"Left Hip - Right Hip", LeftHip, RightHip},
	{"Left Knee - Right Knee", LeftKnee, RightKnee},
	{"Left Ankle - Right Ankle", LeftAnkle, RightAnkle},
}

// Skeleton edges (pairs of keypoint indices), useful for rendering overlays.
var Skeleton = [][2]int{
	{RightAnkle, RightKnee}, {RightKnee, RightHip},
	{LeftAnkle, LeftKnee}, {LeftKnee, LeftHip},
	{RightHip, LeftHip},
	{LeftShoulder, LeftHip}, {RightShoulder, RightHip},
	{LeftShoulder, RightShoulder},
	{LeftShoulder, LeftElbow}, {LeftElbow, LeftWrist},
	{RightShoulder, RightElbow}, {RightElbow, RightWrist},
	{Nose, LeftEye}, {Nose, RightEye},
	{LeftEye, LeftEar}, {RightEye, RightEar},
}
