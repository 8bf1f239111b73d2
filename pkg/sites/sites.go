// Package sites places the seed points of a diagram.
package sites

import (
	"math"

	"github.com/0x0FACED/go-voronoi-paint/pkg/prng"
	"github.com/0x0FACED/go-voronoi-paint/pkg/props"
	"github.com/0x0FACED/go-voronoi-paint/pkg/voronoi"
)

// Site is an input point together with the colour of its cell.
type Site struct {
	X         float64
	Y         float64
	CellColor string
}

func (s Site) Vertex() voronoi.Vertex {
	return voronoi.Vertex{X: s.X, Y: s.Y}
}

// autoCellSpacing is the canvas length, in pixels, per automatic cell.
const autoCellSpacing = 30

// Count resolves the number of sites for a canvas. Auto gives one cell per
// 30px of width plus one per 30px of height, at least two.
func Count(c props.CellCount, width, height float64) int {
	if !c.Auto {
		return c.N
	}
	n := int(math.Floor(width/autoCellSpacing + height/autoCellSpacing))
	return max(2, n)
}

// Generate places n sites inside the canvas inset by marginFraction on each
// side. The random stream is created from seed on every call, so identical
// arguments always give identical output.
func Generate(width, height, marginFraction float64, cellColors []string, n int, seed int32) []Site {
	if n <= 0 {
		return []Site{}
	}

	rand := prng.New(seed)

	xo := width * marginFraction
	yo := height * marginFraction
	dx := width - xo*2
	dy := height - yo*2

	list := make([]Site, n)
	for i := range list {
		// Draw order is x, x-jitter, y, y-jitter.
		x := xo + rand.Float64()*dx + rand.Float64()/dx
		y := yo + rand.Float64()*dy + rand.Float64()/dy
		list[i] = Site{X: x, Y: y}
		if len(cellColors) > 0 {
			list[i].CellColor = cellColors[i%len(cellColors)]
		}
	}
	return list
}

// Override replaces the first site, which is how the pointer position
// becomes a site.
func Override(list []Site, x, y float64, cellColor string) {
	if len(list) == 0 {
		return
	}
	list[0] = Site{X: x, Y: y, CellColor: cellColor}
}

// Vertices projects sites onto the points handed to the geometry engine.
func Vertices(list []Site) []voronoi.Vertex {
	out := make([]voronoi.Vertex, len(list))
	for i, s := range list {
		out[i] = s.Vertex()
	}
	return out
}
