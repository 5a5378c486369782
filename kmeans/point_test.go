package kmeans

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointArithmetic(t *testing.T) {
	p := NewPoint(1, 2, 3)
	q := NewPoint(10, 20, 30)

	assert.Equal(t, NewPoint(11, 22, 33), p.Add(q))
	assert.Equal(t, NewPoint(1, 2, 3), p, "Add must not change the receiver")

	acc := Point{}
	acc.Accumulate(p)
	acc.Accumulate(q)
	acc.Accumulate(NewPoint(1, 2, 3))
	assert.Equal(t, NewPoint(12, 24, 36), acc)

	acc.Divide(3)
	assert.Equal(t, NewPoint(4, 8, 12), acc)
}

func TestPointDividePanicsOnZero(t *testing.T) {
	p := NewPoint(1, 1, 1)
	assert.Panics(t, func() { p.Divide(0) })
}

func TestDistanceSqr(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
	}{
		{"same", NewPoint(5, 6, 7), NewPoint(5, 6, 7), 0},
		{"axis", NewPoint(0, 0, 0), NewPoint(3, 0, 0), 9},
		{"diagonal", NewPoint(1, 2, 3), NewPoint(4, 6, 3), 25},
		{"extremes", NewPoint(0, 0, 0), NewPoint(255, 255, 255), 3 * 255 * 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.DistanceSqr(tt.b))
			assert.Equal(t, tt.want, tt.b.DistanceSqr(tt.a))
		})
	}
}

func TestDistanceSqrZeroOnlyForEqualPoints(t *testing.T) {
	pts := []Point{
		NewPoint(0, 0, 0), NewPoint(0, 0, 1), NewPoint(0, 1, 0),
		NewPoint(1, 0, 0), NewPoint(255, 0, 128), NewPoint(255, 255, 255),
	}
	for _, a := range pts {
		for _, b := range pts {
			d := a.DistanceSqr(b)
			assert.GreaterOrEqual(t, d, 0.0)
			assert.Equal(t, a == b, d == 0, "%v vs %v", a, b)
		}
	}
}

func TestPointOrder(t *testing.T) {
	pts := []Point{
		NewPoint(2, 0, 0), NewPoint(1, 5, 0), NewPoint(1, 2, 9), NewPoint(1, 2, 3),
	}
	slices.SortFunc(pts, Point.Compare)
	assert.Equal(t, []Point{
		NewPoint(1, 2, 3), NewPoint(1, 2, 9), NewPoint(1, 5, 0), NewPoint(2, 0, 0),
	}, pts)

	assert.Zero(t, NewPoint(1, 2, 3).Compare(NewPoint(1, 2, 3)))
	assert.False(t, NewPoint(1, 2, 3).Less(NewPoint(1, 2, 3)))
}

func TestPointComponents(t *testing.T) {
	p := NewPoint(40, 7, 200)
	assert.Equal(t, 7.0, p.MinComponent())
	assert.Equal(t, 200.0, p.MaxComponent())
}

func TestPointAsMapKey(t *testing.T) {
	seen := map[Point]int{}
	seen[NewPoint(1, 2, 3)]++
	seen[NewPoint(1, 2, 3)]++
	seen[NewPoint(3, 2, 1)]++
	assert.Equal(t, map[Point]int{NewPoint(1, 2, 3): 2, NewPoint(3, 2, 1): 1}, seen)
}
