package tracer

import (
	"math"
	"math/rand"
)

// Candidates drawn per placed point in BestCandidate.
const DefaultCandidates = 2

// Point2D is a point in the plane of an area light.
type Point2D struct {
	X, Y float64
}

// BestCandidate places n points in the w x h rectangle centered on the origin
// using Mitchell's best-candidate algorithm: each new point is the one among
// a few uniform candidates that lies farthest from the points placed so far.
// It is a cheap approximation of blue noise, not a Poisson disc sampler.
func BestCandidate(w, h float64, n, candidates int, rng *rand.Rand) []Point2D {
	if n <= 0 {
		return nil
	}
	if candidates < 1 {
		candidates = 1
	}
	uniform := func() Point2D {
		return Point2D{(rng.Float64() - 0.5) * w, (rng.Float64() - 0.5) * h}
	}

	points := make([]Point2D, 0, n)
	points = append(points, uniform())
	for len(points) < n {
		var best Point2D
		bestDist := -1.0
		for j := 0; j < candidates; j++ {
			c := uniform()
			d := math.Inf(1)
			for _, p := range points {
				d = math.Min(d, math.Hypot(p.X-c.X, p.Y-c.Y))
			}
			if d > bestDist {
				best, bestDist = c, d
			}
		}
		points = append(points, best)
	}
	return points
}
