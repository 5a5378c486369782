package kmeans

// Point is a three component value, typically the R, G and B channels of a
// pixel. Points are comparable and can be used as map keys; components are
// expected to be finite.
type Point struct {
	X float64
	Y float64
	Z float64
}

// NewPoint returns the point (x, y, z).
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Add returns the component-wise sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{
		X: p.X + q.X,
		Y: p.Y + q.Y,
		Z: p.Z + q.Z,
	}
}

// Accumulate adds q to p in place.
func (p *Point) Accumulate(q Point) {
	p.X += q.X
	p.Y += q.Y
	p.Z += q.Z
}

// Divide scales p in place by 1/n. n must be positive.
func (p *Point) Divide(n int) {
	if n <= 0 {
		panic("kmeans: division by non-positive count")
	}
	d := float64(n)
	p.X /= d
	p.Y /= d
	p.Z /= d
}

// DistanceSqr returns the squared euclidean distance between p and q.
func (p Point) DistanceSqr(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	dz := p.Z - q.Z
	return dx*dx + dy*dy + dz*dz
}

// Less orders points lexicographically by X, then Y, then Z.
func (p Point) Less(q Point) bool {
	switch {
	case p.X != q.X:
		return p.X < q.X
	case p.Y != q.Y:
		return p.Y < q.Y
	default:
		return p.Z < q.Z
	}
}

// Compare is the three-way form of Less, suitable for slices.SortFunc.
func (p Point) Compare(q Point) int {
	switch {
	case p.Less(q):
		return -1
	case q.Less(p):
		return 1
	}
	return 0
}

// MinComponent returns the smallest of the three components.
func (p Point) MinComponent() float64 {
	return min(p.X, p.Y, p.Z)
}

// MaxComponent returns the largest of the three components.
func (p Point) MaxComponent() float64 {
	return max(p.X, p.Y, p.Z)
}
