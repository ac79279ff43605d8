package analysis

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"github.com/motionlab/baduanjin/pkg/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// KeyPose is a representative frame selected by clustering joint-angle
// vectors: one per cluster, closest to the cluster centroid.
type KeyPose struct {
	FrameID   int `json:"frameId"`
	ClusterID int `json:"clusterId"`
}

// KeyPoses identifies (once) up to Config.KeyPoseCount representative poses,
// sorted by frame id. Clustering failures never surface to the caller: any
// error falls back to evenly spaced frames.
func (a *Analyzer) KeyPoses() []KeyPose {
	if a.keyPoses != nil {
		return a.keyPoses
	}
	poses, err := identifyKeyPoses(a.JointAngles(), a.cfg)
	if err != nil {
		a.log.Warnf("Key pose clustering failed (%v), falling back to evenly spaced frames", err)
		poses = evenlySpacedKeyPoses(a.JointAngles().FrameIDs, a.cfg.KeyPoseCount)
	}
	a.keyPoses = poses
	return poses
}

func identifyKeyPoses(series *JointAngleSeries, cfg Config) ([]KeyPose, error) {
	n := len(series.Values)
	if n == 0 {
		return nil, errors.New("empty angle series")
	}

	// Keep only columns with enough real data.
	cols := usableColumns(series, cfg.MaxNaNColumnRatio)
	if len(cols) == 0 {
		return nil, errors.New("every angle column exceeds the NaN budget")
	}

	// Median-impute remaining NaNs, then z-score standardize each column.
	rows := imputeAndStandardize(series, cols, cfg.DefaultImputedAngle)

	k := cfg.KeyPoseCount
	if n <= k {
		// Every frame is its own key pose.
		poses := make([]KeyPose, n)
		for i := range poses {
			poses[i] = KeyPose{FrameID: series.FrameIDs[i], ClusterID: i}
		}
		return poses, nil
	}

	centroids, assignment := kmeans(rows, k, cfg)

	// Pick the frame closest to each centroid.
	poses := make([]KeyPose, 0, k)
	for c := 0; c < k; c++ {
		best := -1
		bestDist := math.Inf(1)
		for i := range rows {
			if assignment[i] != c {
				continue
			}
			if d := floats.Distance(rows[i], centroids[c], 2); d < bestDist {
				bestDist = d
				best = i
			}
		}
		if best >= 0 {
			poses = append(poses, KeyPose{FrameID: series.FrameIDs[best], ClusterID: c})
		}
	}
	sort.Slice(poses, func(i, j int) bool { return poses[i].FrameID < poses[j].FrameID })
	return poses, nil
}

// usableColumns returns the catalog indices of angle columns whose NaN ratio
// is within budget.
func usableColumns(series *JointAngleSeries, maxNaNRatio float64) []int {
	cols := []int{}
	n := len(series.Values)
	for c := range series.Names {
		nan := 0
		for i := 0; i < n; i++ {
			if math.IsNaN(series.Values[i][c]) {
				nan++
			}
		}
		if float64(nan)/float64(n) <= maxNaNRatio {
			cols = append(cols, c)
		}
	}
	return cols
}

// imputeAndStandardize builds the clustering matrix: NaNs replaced by the
// column median (or the default angle when a column is entirely NaN), then
// each column shifted/scaled to zero mean and unit deviation.
func imputeAndStandardize(series *JointAngleSeries, cols []int, defaultAngle float64) [][]float64 {
	n := len(series.Values)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, len(cols))
	}
	for j, c := range cols {
		finite := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			if v := series.Values[i][c]; !math.IsNaN(v) {
				finite = append(finite, v)
			}
		}
		fill := defaultAngle
		if len(finite) > 0 {
			fill = stats.Median(finite)
		}
		col := make([]float64, n)
		for i := 0; i < n; i++ {
			col[i] = series.Values[i][c]
			if math.IsNaN(col[i]) {
				col[i] = fill
			}
		}
		mean, std := stat.MeanStdDev(col, nil)
		if std < 1e-12 || math.IsNaN(std) {
			std = 1
		}
		for i := 0; i < n; i++ {
			rows[i][j] = (col[i] - mean) / std
		}
	}
	return rows
}

// kmeans runs Lloyd's algorithm with KMeansRestarts seeded initializations
// and returns the centroids and assignment of the lowest-inertia run.
// The fixed seed keeps key pose selection deterministic across runs.
func kmeans(rows [][]float64, k int, cfg Config) (centroids [][]float64, assignment []int) {
	rng := rand.New(rand.NewSource(cfg.KMeansSeed))
	dim := len(rows[0])
	bestInertia := math.Inf(1)

	for restart := 0; restart < cfg.KMeansRestarts; restart++ {
		cents := make([][]float64, k)
		for c, idx := range rng.Perm(len(rows))[:k] {
			cents[c] = append([]float64(nil), rows[idx]...)
		}
		assign := make([]int, len(rows))

		for iter := 0; iter < cfg.KMeansMaxIter; iter++ {
			changed := false
			for i, row := range rows {
				best := 0
				bestDist := math.Inf(1)
				for c := range cents {
					if d := floats.Distance(row, cents[c], 2); d < bestDist {
						bestDist = d
						best = c
					}
				}
				if assign[i] != best {
					assign[i] = best
					changed = true
				}
			}
			counts := make([]int, k)
			sums := make([][]float64, k)
			for c := range sums {
				sums[c] = make([]float64, dim)
			}
			for i, row := range rows {
				floats.Add(sums[assign[i]], row)
				counts[assign[i]]++
			}
			for c := range cents {
				if counts[c] > 0 {
					floats.Scale(1/float64(counts[c]), sums[c])
					cents[c] = sums[c]
				}
			}
			if !changed {
				break
			}
		}

		inertia := 0.0
		for i, row := range rows {
			d := floats.Distance(row, cents[assign[i]], 2)
			inertia += d * d
		}
		if inertia < bestInertia {
			bestInertia = inertia
			centroids = cents
			assignment = assign
		}
	}
	return centroids, assignment
}

// evenlySpacedKeyPoses is the clustering fallback: n frames spanning the
// whole session at even intervals.
func evenlySpacedKeyPoses(frameIDs []int, n int) []KeyPose {
	if len(frameIDs) == 0 {
		return nil
	}
	if len(frameIDs) <= n {
		poses := make([]KeyPose, len(frameIDs))
		for i, id := range frameIDs {
			poses[i] = KeyPose{FrameID: id, ClusterID: i}
		}
		return poses
	}
	if n == 1 {
		return []KeyPose{{FrameID: frameIDs[len(frameIDs)/2], ClusterID: 0}}
	}
	poses := make([]KeyPose, n)
	for i := 0; i < n; i++ {
		idx := i * (len(frameIDs) - 1) / (n - 1)
		poses[i] = KeyPose{FrameID: frameIDs[idx], ClusterID: i}
	}
	return poses
}
