package voronoi

import (
	"math"
)

type Vertex struct {
	X float64
	Y float64
}

// NoVertex marks an edge end that has not been computed yet.
var NoVertex = Vertex{math.Inf(1), math.Inf(1)}

func (v Vertex) finite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// siteEvent - точка входа вместе с её индексом во входном слайсе
type siteEvent struct {
	Vertex
	index int
}

type siteEvents []siteEvent

func (s siteEvents) Len() int      { return len(s) }
func (s siteEvents) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

// сверху вниз, при равном Y - слева направо, чтобы дубликаты шли подряд
func (s siteEvents) Less(i, j int) bool {
	if s[i].Y != s[j].Y {
		return s[i].Y < s[j].Y
	}
	return s[i].X < s[j].X
}

// Bounding Box
type BoundingBox struct {
	Xl, Xr, Yt, Yb float64
}

// Create new Bounding Box
func NewBoundingBox(xl, xr, yt, yb float64) BoundingBox {
	return BoundingBox{xl, xr, yt, yb}
}

// Grow extends the box by d on every side.
func (b BoundingBox) Grow(d float64) BoundingBox {
	return BoundingBox{b.Xl - d, b.Xr + d, b.Yt - d, b.Yb + d}
}

func (b BoundingBox) valid() bool {
	for _, v := range []float64{b.Xl, b.Xr, b.Yt, b.Yb} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.Xr > b.Xl && b.Yb > b.Yt
}

// Edge between two cells. RightCell is nil for edges lying on the bounding box.
type Edge struct {
	LeftCell  *Cell
	RightCell *Cell
	Va        Vertex
	Vb        Vertex
}

func (e *Edge) reset(LeftCell, RightCell *Cell) {
	e.LeftCell = LeftCell
	e.RightCell = RightCell
	e.Va = NoVertex
	e.Vb = NoVertex
}

// Halfedge is one side of an Edge, seen from Cell.
type Halfedge struct {
	Cell  *Cell
	Edge  *Edge
	Angle float64
}

type halfedges []*Halfedge

func (s halfedges) Len() int      { return len(s) }
func (s halfedges) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

type halfedgesByAngle struct{ halfedges }

func (s halfedgesByAngle) Less(i, j int) bool { return s.halfedges[i].Angle > s.halfedges[j].Angle }

func (h *Halfedge) reset(edge *Edge, LeftCell, RightCell *Cell) {
	h.Cell = LeftCell
	h.Edge = edge

	// угол определяет порядок полуребер вокруг ячейки
	if RightCell != nil {
		h.Angle = math.Atan2(RightCell.Site.Y-LeftCell.Site.Y, RightCell.Site.X-LeftCell.Site.X)
		return
	}

	va := edge.Va
	vb := edge.Vb
	if edge.LeftCell == LeftCell {
		h.Angle = math.Atan2(vb.X-va.X, va.Y-vb.Y)
	} else {
		h.Angle = math.Atan2(va.X-vb.X, vb.Y-va.Y)
	}
}

// StartPoint is where the halfedge begins when walking around its cell.
func (h *Halfedge) StartPoint() Vertex {
	if h.Edge.LeftCell == h.Cell {
		return h.Edge.Va
	}
	return h.Edge.Vb
}

// EndPoint is where the halfedge ends when walking around its cell.
func (h *Halfedge) EndPoint() Vertex {
	if h.Edge.LeftCell == h.Cell {
		return h.Edge.Vb
	}
	return h.Edge.Va
}

func equalWithEpsilon(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func lessThanWithEpsilon(a, b float64) bool {
	return b-a > 1e-9
}

func greaterThanWithEpsilon(a, b float64) bool {
	return a-b > 1e-9
}

func sameVertex(a, b Vertex) bool {
	return equalWithEpsilon(a.X, b.X) && equalWithEpsilon(a.Y, b.Y)
}
