package voronoi

import "sort"

// Cell is the region of one input site. SiteIndex is the position of that
// site in the slice handed to Compute.
type Cell struct {
	Site      Vertex
	SiteIndex int
	Halfedges []*Halfedge
}

func (t *Cell) reset(site Vertex, index int) {
	t.Site = site
	t.SiteIndex = index
	t.Halfedges = t.Halfedges[:0]
}

// Closed reports whether the cell has enough halfedges to form a polygon.
func (t *Cell) Closed() bool {
	return len(t.Halfedges) > 2
}

// Polygon returns the cell outline: the start point of the first halfedge
// followed by the end point of every halfedge.
func (t *Cell) Polygon() []Vertex {
	if len(t.Halfedges) == 0 {
		return nil
	}
	out := make([]Vertex, 0, len(t.Halfedges)+1)
	out = append(out, t.Halfedges[0].StartPoint())
	for _, h := range t.Halfedges {
		out = append(out, h.EndPoint())
	}
	return out
}

// prepare выбрасывает полуребра, чьи ребра не были достроены или были
// отсечены, и сортирует оставшиеся по углу
func (t *Cell) prepare() int {
	halfedges := t.Halfedges

	for iHalfedge := len(halfedges) - 1; iHalfedge >= 0; iHalfedge-- {
		edge := halfedges[iHalfedge].Edge

		if edge.Vb == NoVertex || edge.Va == NoVertex {
			halfedges = append(halfedges[:iHalfedge], halfedges[iHalfedge+1:]...)
		}
	}

	sort.Sort(halfedgesByAngle{halfedges})
	t.Halfedges = halfedges
	return len(halfedges)
}
