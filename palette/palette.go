// Package palette turns fitted centroids into colour palettes and stores them
// as RIFF PAL files.
package palette

import (
	"image/color"

	"kmquant/kmeans"
	"kmquant/pixels"

	"github.com/lucasb-eyer/go-colorful"
)

// FromPoints rounds every centroid to an opaque 8-bit colour, keeping order.
func FromPoints(points []kmeans.Point) color.Palette {
	pal := make(color.Palette, len(points))
	for i, p := range points {
		pal[i] = pixels.ToColor(p)
	}
	return pal
}

// FromModel returns the palette of the centroids that own at least one point.
func FromModel(m *kmeans.Model) color.Palette {
	centroids := m.Centroids()
	used := centroids[:0]
	for i, g := range m.Groups() {
		if len(g) > 0 {
			used = append(used, centroids[i])
		}
	}
	return FromPoints(used)
}

// Hex renders c as #rrggbb, ignoring alpha.
func Hex(c color.Color) string {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	nc.A = 0xFF
	cf, _ := colorful.MakeColor(nc)
	return cf.Hex()
}

// HexList renders every colour of pal with Hex.
func HexList(pal color.Palette) []string {
	res := make([]string, len(pal))
	for i, c := range pal {
		res[i] = Hex(c)
	}
	return res
}
