// Package pixels converts between images and kmeans points and runs the
// colour quantization pipeline over a whole image.
package pixels

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"kmquant/kmeans"
)

// FromImage returns one point per pixel in row-major order. Channels are
// read as 8-bit non-premultiplied values; alpha is dropped.
func FromImage(img image.Image) []kmeans.Point {
	b := img.Bounds()
	res := make([]kmeans.Point, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			res = append(res, kmeans.NewPoint(float64(c.R), float64(c.G), float64(c.B)))
		}
	}
	return res
}

// Unique returns the distinct points, sorted so that the result does not
// depend on input order.
func Unique(points []kmeans.Point) []kmeans.Point {
	seen := make(map[kmeans.Point]struct{}, len(points))
	res := make([]kmeans.Point, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		res = append(res, p)
	}
	slices.SortFunc(res, kmeans.Point.Compare)
	return res
}

// ToColor rounds p to the nearest opaque 8-bit colour.
func ToColor(p kmeans.Point) color.NRGBA {
	return color.NRGBA{
		R: channel(p.X),
		G: channel(p.Y),
		B: channel(p.Z),
		A: 0xFF,
	}
}

func channel(v float64) uint8 {
	return uint8(min(max(math.Round(v), 0), 0xFF))
}

// ToImage lays points out row-major over r.
func ToImage(points []kmeans.Point, r image.Rectangle) (*image.NRGBA, error) {
	if n := r.Dx() * r.Dy(); n != len(points) {
		return nil, fmt.Errorf("point count %d does not match %dx%d image", len(points), r.Dx(), r.Dy())
	}

	dest := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	i := 0
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			dest.SetNRGBA(x, y, ToColor(points[i]))
			i++
		}
	}
	return dest, nil
}
