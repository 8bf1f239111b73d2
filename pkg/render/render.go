// Package render draws a computed diagram onto a 2D drawing surface.
package render

import (
	"math"

	"github.com/0x0FACED/go-voronoi-paint/pkg/colors"
	"github.com/0x0FACED/go-voronoi-paint/pkg/props"
	"github.com/0x0FACED/go-voronoi-paint/pkg/sites"
	"github.com/0x0FACED/go-voronoi-paint/pkg/voronoi"
)

// Surface is the subset of a canvas 2D context the renderer needs.
// Fill and Stroke paint the current path without consuming it; only
// BeginPath starts a new one.
type Surface interface {
	ClearRect(x, y, w, h float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, r, angle1, angle2 float64)
	ClosePath()
	SetFillColor(c string)
	SetStrokeColor(c string)
	SetLineWidth(w float64)
	Fill()
	Stroke()
}

// Size of the painted area in surface units.
type Size struct {
	Width  float64
	Height float64
}

// Clear wipes the canvas together with a margin around it, so strokes that
// run outside the visible area do not survive into the next frame.
func Clear(s Surface, size Size) {
	s.ClearRect(-size.Width, -size.Height, 3*size.Width, 3*size.Height)
}

// Draw renders one frame: the optional highlight under site 0, every closed
// cell filled with its site colour and outlined, and the site dots.
func Draw(s Surface, size Size, d *voronoi.Diagram, list []sites.Site, cfg props.Config) {
	Clear(s, size)
	if d == nil {
		return
	}

	if cfg.PointerEnabled() {
		if cell := d.CellOf(0); cell != nil && cell.Closed() {
			cellPath(s, cell)
			s.SetFillColor(cfg.HighlightColor)
			s.Fill()
		}
	}

	s.SetStrokeColor(cfg.LineColor)
	s.SetLineWidth(cfg.LineWidth)
	for _, cell := range d.Cells {
		if !cell.Closed() {
			continue
		}
		cellPath(s, cell)
		s.SetFillColor(cellColor(cell, list))
		s.Fill()
		s.Stroke()
	}

	if colors.IsTransparent(cfg.DotColor) || cfg.DotSize <= 0 {
		return
	}
	s.SetFillColor(cfg.DotColor)
	for _, site := range list {
		s.BeginPath()
		s.Arc(site.X, site.Y, cfg.DotSize, 0, 2*math.Pi)
		s.Fill()
	}
}

func cellPath(s Surface, cell *voronoi.Cell) {
	poly := cell.Polygon()
	s.BeginPath()
	s.MoveTo(poly[0].X, poly[0].Y)
	for _, v := range poly[1:] {
		s.LineTo(v.X, v.Y)
	}
	s.ClosePath()
}

func cellColor(cell *voronoi.Cell, list []sites.Site) string {
	if cell.SiteIndex < 0 || cell.SiteIndex >= len(list) {
		return colors.Transparent
	}
	if c := list[cell.SiteIndex].CellColor; colors.Valid(c) {
		return c
	}
	return colors.Transparent
}
