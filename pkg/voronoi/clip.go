package voronoi

import "fmt"

// connectEdge достраивает полубесконечное ребро до границы bbox.
// Возвращает false, если ребро не пересекает bbox.
func connectEdge(edge *Edge, bbox BoundingBox) bool {
	vb := edge.Vb
	if vb != NoVertex {
		return true
	}

	va := edge.Va
	xl := bbox.Xl
	xr := bbox.Xr
	yt := bbox.Yt
	yb := bbox.Yb
	LeftSite := edge.LeftCell.Site
	RightSite := edge.RightCell.Site
	lx := LeftSite.X
	ly := LeftSite.Y
	rx := RightSite.X
	ry := RightSite.Y
	// середина между сайтами и наклон серединного перпендикуляра
	fx := (lx + rx) / 2
	fy := (ly + ry) / 2

	var fm, fb float64

	if !equalWithEpsilon(ry, ly) {
		fm = (lx - rx) / (ry - ly)
		fb = fy - fm*fx
	}

	switch {
	case equalWithEpsilon(ry, ly):
		// вертикальная прямая вне bbox
		if fx < xl || fx >= xr {
			return false
		}
		if lx > rx {
			// вниз
			if va == NoVertex {
				va = Vertex{fx, yt}
			} else if va.Y >= yb {
				return false
			}
			vb = Vertex{fx, yb}
		} else {
			// вверх
			if va == NoVertex {
				va = Vertex{fx, yb}
			} else if va.Y < yt {
				return false
			}
			vb = Vertex{fx, yt}
		}

	case fm < -1 || fm > 1:
		// крутая прямая: пересекаем верх и низ
		if lx > rx {
			if va == NoVertex {
				va = Vertex{(yt - fb) / fm, yt}
			} else if va.Y >= yb {
				return false
			}
			vb = Vertex{(yb - fb) / fm, yb}
		} else {
			if va == NoVertex {
				va = Vertex{(yb - fb) / fm, yb}
			} else if va.Y < yt {
				return false
			}
			vb = Vertex{(yt - fb) / fm, yt}
		}

	default:
		// пологая прямая: пересекаем левую и правую стороны
		if ly < ry {
			if va == NoVertex {
				va = Vertex{xl, fm*xl + fb}
			} else if va.X >= xr {
				return false
			}
			vb = Vertex{xr, fm*xr + fb}
		} else {
			if va == NoVertex {
				va = Vertex{xr, fm*xr + fb}
			} else if va.X < xl {
				return false
			}
			vb = Vertex{xl, fm*xl + fb}
		}
	}
	edge.Va = va
	edge.Vb = vb
	return true
}

// clipSide - один шаг Лианга-Барски: p - направление, q - расстояние до стороны.
func clipSide(p, q float64, t0, t1 *float64) bool {
	if p == 0 {
		return q >= 0
	}
	r := q / p
	if p < 0 {
		if r > *t1 {
			return false
		}
		if r > *t0 {
			*t0 = r
		}
	} else {
		if r < *t0 {
			return false
		}
		if r < *t1 {
			*t1 = r
		}
	}
	return true
}

// clipEdge обрезает отрезок по bbox (Лианг-Барски).
func clipEdge(edge *Edge, bbox BoundingBox) bool {
	ax := edge.Va.X
	ay := edge.Va.Y
	dx := edge.Vb.X - ax
	dy := edge.Vb.Y - ay
	t0, t1 := 0.0, 1.0

	if !clipSide(-dx, ax-bbox.Xl, &t0, &t1) ||
		!clipSide(dx, bbox.Xr-ax, &t0, &t1) ||
		!clipSide(-dy, ay-bbox.Yt, &t0, &t1) ||
		!clipSide(dy, bbox.Yb-ay, &t0, &t1) {
		return false
	}

	if t0 > 0 {
		edge.Va = Vertex{ax + t0*dx, ay + t0*dy}
	}
	if t1 < 1 {
		edge.Vb = Vertex{ax + t1*dx, ay + t1*dy}
	}
	return true
}

// clipEdges достраивает и обрезает все ребра; невидимые и вырожденные
// ребра помечаются NoVertex и выбрасываются из диаграммы.
func (s *Voronoi) clipEdges(bbox BoundingBox) {
	for i := len(s.edges) - 1; i >= 0; i-- {
		edge := s.edges[i]

		if !connectEdge(edge, bbox) || !clipEdge(edge, bbox) || sameVertex(edge.Va, edge.Vb) {
			edge.Va = NoVertex
			edge.Vb = NoVertex
			s.edges = append(s.edges[:i], s.edges[i+1:]...)
		}
	}
}

// nextBorderPoint - следующая точка при обходе границы bbox против часовой
// стрелки от va к vz. last - true, если отрезок va-vb заканчивается в vz.
func nextBorderPoint(va, vz Vertex, bbox BoundingBox) (vb Vertex, last bool, ok bool) {
	xl, xr, yt, yb := bbox.Xl, bbox.Xr, bbox.Yt, bbox.Yb

	switch {
	// вниз по левой стороне
	case equalWithEpsilon(va.X, xl) && lessThanWithEpsilon(va.Y, yb):
		if equalWithEpsilon(vz.X, xl) {
			return Vertex{xl, vz.Y}, true, true
		}
		return Vertex{xl, yb}, false, true
	// вправо по нижней стороне
	case equalWithEpsilon(va.Y, yb) && lessThanWithEpsilon(va.X, xr):
		if equalWithEpsilon(vz.Y, yb) {
			return Vertex{vz.X, yb}, true, true
		}
		return Vertex{xr, yb}, false, true
	// вверх по правой стороне
	case equalWithEpsilon(va.X, xr) && greaterThanWithEpsilon(va.Y, yt):
		if equalWithEpsilon(vz.X, xr) {
			return Vertex{xr, vz.Y}, true, true
		}
		return Vertex{xr, yt}, false, true
	// влево по верхней стороне
	case equalWithEpsilon(va.Y, yt) && greaterThanWithEpsilon(va.X, xl):
		if equalWithEpsilon(vz.Y, yt) {
			return Vertex{vz.X, yt}, true, true
		}
		return Vertex{xl, yt}, false, true
	}
	return Vertex{}, false, false
}

// maxBorderSteps - больше сторон, чем у прямоугольника, обойти нельзя
const maxBorderSteps = 5

// closeCells замыкает ячейки, добавляя ребра вдоль bbox там, где конец
// одного полуребра не совпадает с началом следующего.
func (s *Voronoi) closeCells(bbox BoundingBox) error {
	// единственная точка - ячейка совпадает с bbox
	if len(s.cells) == 1 && s.cells[0].prepare() == 0 {
		s.closeWholeBox(s.cells[0], bbox)
		return nil
	}

	for _, cell := range s.cells {
		if cell.prepare() == 0 {
			continue
		}

		for iLeft := 0; iLeft < len(cell.Halfedges); iLeft++ {
			va := cell.Halfedges[iLeft].EndPoint()
			vz := cell.Halfedges[(iLeft+1)%len(cell.Halfedges)].StartPoint()
			if sameVertex(va, vz) {
				continue
			}

			for step := 0; ; step++ {
				if step == maxBorderSteps {
					return fmt.Errorf("%w: cell %d does not close along the bounding box", ErrDegenerate, cell.SiteIndex)
				}
				vb, last, ok := nextBorderPoint(va, vz, bbox)
				if !ok {
					return fmt.Errorf("%w: cell %d has an open end at (%g, %g) off the bounding box", ErrDegenerate, cell.SiteIndex, va.X, va.Y)
				}

				edge := s.createBorderEdge(cell, va, vb)
				iLeft++
				cell.Halfedges = append(cell.Halfedges, nil)
				copy(cell.Halfedges[iLeft+1:], cell.Halfedges[iLeft:])
				cell.Halfedges[iLeft] = s.newHalfedge(edge, cell, nil)

				if last {
					break
				}
				va = vb
			}
		}
	}
	return nil
}

func (s *Voronoi) closeWholeBox(cell *Cell, bbox BoundingBox) {
	corners := []Vertex{
		{bbox.Xl, bbox.Yt},
		{bbox.Xl, bbox.Yb},
		{bbox.Xr, bbox.Yb},
		{bbox.Xr, bbox.Yt},
	}
	for i, va := range corners {
		vb := corners[(i+1)%len(corners)]
		edge := s.createBorderEdge(cell, va, vb)
		h := s.newHalfedge(edge, cell, nil)
		cell.Halfedges = append(cell.Halfedges, h)
	}
}

// prepareCells - вариант без замыкания: только чистка и сортировка полуребер
func (s *Voronoi) prepareCells() {
	for _, cell := range s.cells {
		cell.prepare()
	}
}
