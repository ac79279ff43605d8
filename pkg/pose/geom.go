package pose

import (
	"github.com/chewxy/math32"
)

// Distance returns the Euclidean distance between two keypoints.
func Distance(a, b Keypoint) float32 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math32.Sqrt(dx*dx + dy*dy)
}

// Midpoint returns the point halfway between a and b.
// The resulting score is the smaller of the two input scores.
func Midpoint(a, b Keypoint) Keypoint {
	return Keypoint{
		X:     (a.X + b.X) / 2,
		Y:     (a.Y + b.Y) / 2,
		Score: math32.Min(a.Score, b.Score),
	}
}

// Angle returns the angle in degrees at vertex b, formed by the rays b->a and
// b->c. Returns NaN when either ray is degenerate (norm below 1e-6).
func Angle(a, b, c Keypoint) float32 {
	v1x, v1y := a.X-b.X, a.Y-b.Y
	v2x, v2y := c.X-b.X, c.Y-b.Y
	n1 := math32.Sqrt(v1x*v1x + v1y*v1y)
	n2 := math32.Sqrt(v2x*v2x + v2y*v2y)
	if n1 < 1e-6 || n2 < 1e-6 {
		return math32.NaN()
	}
	cos := (v1x*v2x + v1y*v2y) / (n1 * n2)
	cos = math32.Max(-1, math32.Min(1, cos))
	return math32.Acos(cos) * 180 / math32.Pi
}
