package analysis

// Config collects every threshold and tuning parameter of the offline
// analyzer in one place, so tests can vary them and the origin of each gate
// stays traceable. The three confidence gates are intentionally independent:
// unifying them would silently change behavior.
type Config struct {
	// AngleMinScore gates joint-angle computation and trajectory smoothing.
	// A point at or below this confidence is never altered by smoothing, and
	// an angle is NaN unless all three defining points reach it.
	AngleMinScore float32

	// MotionMinScore gates the smoothness and symmetry analyzers: a joint
	// (or pair) whose mean confidence falls below it is skipped.
	MotionMinScore float32

	// BalanceMinScore gates which keypoints contribute to a CoM segment.
	BalanceMinScore float32

	SmoothingWindow int // Savitzky-Golay window length (odd)
	SmoothingOrder  int // Savitzky-Golay polynomial order (< window)

	KeyPoseCount   int   // Maximum number of key poses per session
	KMeansSeed     int64 // Fixed seed, for deterministic clustering
	KMeansRestarts int   // Number of k-means initializations
	KMeansMaxIter  int   // Iteration cap per initialization

	// MaxNaNColumnRatio drops an angle column from clustering when more than
	// this fraction of its values is NaN.
	MaxNaNColumnRatio float64

	// DefaultImputedAngle replaces an entirely-NaN angle column, in degrees.
	DefaultImputedAngle float64
}

// DefaultConfig returns the analyzer configuration used in production.
func DefaultConfig() Config {
	return Config{
		AngleMinScore:       0.30,
		MotionMinScore:      0.40,
		BalanceMinScore:     0.50,
		SmoothingWindow:     15,
		SmoothingOrder:      3,
		KeyPoseCount:        8,
		KMeansSeed:          42,
		KMeansRestarts:      10,
		KMeansMaxIter:       100,
		MaxNaNColumnRatio:   0.70,
		DefaultImputedAngle: 90,
	}
}
