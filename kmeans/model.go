package kmeans

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
)

type Model struct {
	points []Point
	means  []Point
	groups [][]Point

	rounds int
	min    float64
	max    float64
	rnd    *rand.Rand
	logger *slog.Logger
}

// Fit clusters points into k groups. The returned model owns its centroids
// and groups; points is only read.
func Fit(points []Point, k int, opts ...Option) (*Model, error) {
	o := buildOptions(opts)
	switch {
	case len(points) == 0:
		return nil, fmt.Errorf("%w: empty point set", ErrInvalidInput)
	case k < 1:
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrInvalidInput, k)
	case o.rounds < 1:
		return nil, fmt.Errorf("%w: rounds must be positive, got %d", ErrInvalidInput, o.rounds)
	}

	m := newModel(points, k, o)
	for range m.rounds {
		m.updateMeans()
		m.recluster()
	}

	m.logger.Debug("kmeans fitted", "k", k, "rounds", m.rounds, "points", len(points),
		"empty", len(m.Empty()))
	return m, nil
}

func newModel(points []Point, k int, o options) *Model {
	lo, hi := points[0].MinComponent(), points[0].MaxComponent()
	for _, p := range points[1:] {
		lo = min(lo, p.MinComponent())
		hi = max(hi, p.MaxComponent())
	}

	return &Model{
		points: points,
		means:  make([]Point, k),
		groups: make([][]Point, k),
		rounds: o.rounds,
		min:    lo,
		max:    hi,
		rnd:    o.rnd,
		logger: o.logger,
	}
}

// randomMean draws every component uniformly from the observed value range.
func (m *Model) randomMean() Point {
	span := m.max - m.min
	return Point{
		X: m.min + span*m.rnd.Float64(),
		Y: m.min + span*m.rnd.Float64(),
		Z: m.min + span*m.rnd.Float64(),
	}
}

// updateMeans moves each centroid to the mean of its group. Centroids of
// empty groups are reseeded, every round they stay empty.
func (m *Model) updateMeans() {
	for i, group := range m.groups {
		if len(group) == 0 {
			m.means[i] = m.randomMean()
			continue
		}

		var mean Point
		for _, p := range group {
			mean.Accumulate(p)
		}
		mean.Divide(len(group))
		m.means[i] = mean
	}
}

// recluster rebuilds all groups from scratch against the current centroids.
func (m *Model) recluster() {
	for i := range m.groups {
		m.groups[i] = m.groups[i][:0]
	}

	for _, p := range m.points {
		i := m.Nearest(p)
		m.groups[i] = append(m.groups[i], p)
	}
}

// Nearest returns the index of the centroid closest to p. Ties go to the
// lowest index.
func (m *Model) Nearest(p Point) int {
	best, bestDist := 0, m.means[0].DistanceSqr(p)
	for i, mean := range m.means[1:] {
		if d := mean.DistanceSqr(p); d < bestDist {
			best, bestDist = i+1, d
		}
	}
	return best
}

// Predict returns the centroid closest to p. p does not need to be one of the
// points the model was fitted on.
func (m *Model) Predict(p Point) Point {
	return m.means[m.Nearest(p)]
}

func (m *Model) K() int {
	return len(m.means)
}

func (m *Model) Rounds() int {
	return m.rounds
}

// Bounds returns the smallest and largest component seen in the input, the
// range random centroids are drawn from.
func (m *Model) Bounds() (float64, float64) {
	return m.min, m.max
}

// Centroids returns a copy of the final centroids, indexed like Groups.
func (m *Model) Centroids() []Point {
	return append([]Point(nil), m.means...)
}

// Groups returns a copy of the final group membership.
func (m *Model) Groups() [][]Point {
	res := make([][]Point, len(m.groups))
	for i, g := range m.groups {
		res[i] = append([]Point(nil), g...)
	}
	return res
}

// Empty lists the centroids no input point was assigned to in the last round.
func (m *Model) Empty() []int {
	var res []int
	for i, g := range m.groups {
		if len(g) == 0 {
			res = append(res, i)
		}
	}
	return res
}
