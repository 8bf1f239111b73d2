package voronoi

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/0x0FACED/go-voronoi-paint/pkg/logger"
)

// Состояние одного прохода алгоритма Форчуна
type Voronoi struct {
	// ячейки диаграммы Вороного
	cells []*Cell
	// ребра диаграммы Вороного (после clipEdges - только видимые)
	edges []*Edge

	// все выделенные ребра и полуребра, нужны для recycle
	allEdges     []*Edge
	allHalfedges []*Halfedge

	// мапа для быстрого доступа к ячейке по координатам (ключу)
	cellsMap map[Vertex]*Cell

	// Пляжная линия (красно-черное дерево)
	// динамические меняется при продвижении, охватывает всю высоту от 0 до H
	beachline rbt
	// События круга (для отслеживания, когда пляжная линия исчезнет)
	circleEvents rbt
	// следующее событие круга
	firstCircleEvent *circleEvent

	pool   *pool
	Logger *logger.ZapLogger
}

func (s *Voronoi) cell(site Vertex) *Cell {
	ret := s.cellsMap[site]
	if ret == nil {
		panic(fmt.Sprintf("couldn't find cell for site %v", site))
	}
	return ret
}

func (s *Voronoi) newEdge(LeftCell, RightCell *Cell) *Edge {
	edge := s.pool.edge()
	edge.reset(LeftCell, RightCell)
	s.allEdges = append(s.allEdges, edge)
	return edge
}

func (s *Voronoi) newHalfedge(edge *Edge, LeftCell, RightCell *Cell) *Halfedge {
	h := s.pool.halfedge()
	h.reset(edge, LeftCell, RightCell)
	s.allHalfedges = append(s.allHalfedges, h)
	return h
}

// Создание ребра
func (s *Voronoi) createEdge(LeftCell, RightCell *Cell, va, vb Vertex) *Edge {
	edge := s.newEdge(LeftCell, RightCell)
	s.edges = append(s.edges, edge)
	if va != NoVertex {
		s.setEdgeStartpoint(edge, LeftCell, RightCell, va)
	}

	if vb != NoVertex {
		s.setEdgeEndpoint(edge, LeftCell, RightCell, vb)
	}

	LeftCell.Halfedges = append(LeftCell.Halfedges, s.newHalfedge(edge, LeftCell, RightCell))
	RightCell.Halfedges = append(RightCell.Halfedges, s.newHalfedge(edge, RightCell, LeftCell))
	return edge
}

// Ребро вдоль границы bounding box, у него нет правой ячейки
func (s *Voronoi) createBorderEdge(LeftCell *Cell, va, vb Vertex) *Edge {
	edge := s.newEdge(LeftCell, nil)
	edge.Va = va
	edge.Vb = vb

	s.edges = append(s.edges, edge)
	return edge
}

func (s *Voronoi) setEdgeStartpoint(edge *Edge, LeftCell, RightCell *Cell, vertex Vertex) {
	if edge.Va == NoVertex && edge.Vb == NoVertex {
		edge.Va = vertex
		edge.LeftCell = LeftCell
		edge.RightCell = RightCell
	} else if edge.LeftCell == RightCell {
		edge.Vb = vertex
	} else {
		edge.Va = vertex
	}
}

func (s *Voronoi) setEdgeEndpoint(edge *Edge, LeftCell, RightCell *Cell, vertex Vertex) {
	s.setEdgeStartpoint(edge, RightCell, LeftCell, vertex)
}

func (s *Voronoi) detachBeachSection(arc *BeachSection) {
	s.detachCircleEvent(arc)
	s.beachline.removeNode(arc.node)
	s.pool.releaseBeachSection(arc)
}

// removeBeachSection обрабатывает событие круга: дуга схлопывается в вершину
func (s *Voronoi) removeBeachSection(bs *BeachSection) {
	circle := bs.circleEvent
	x := circle.x
	y := circle.ycenter
	vertex := Vertex{x, y}
	previous := bs.node.previous
	next := bs.node.next
	disappearingTransitions := BeachSectionPtrs{bs}

	s.detachBeachSection(bs)

	// в одной вершине могут схлопнуться сразу несколько дуг
	lArc := previous.value.(*BeachSection)
	for lArc.circleEvent != nil &&
		math.Abs(x-lArc.circleEvent.x) < 1e-9 &&
		math.Abs(y-lArc.circleEvent.ycenter) < 1e-9 {

		previous = lArc.node.previous
		disappearingTransitions.appendLeft(lArc)
		s.detachBeachSection(lArc)
		lArc = previous.value.(*BeachSection)
	}

	disappearingTransitions.appendLeft(lArc)
	s.detachCircleEvent(lArc)

	rArc := next.value.(*BeachSection)
	for rArc.circleEvent != nil &&
		math.Abs(x-rArc.circleEvent.x) < 1e-9 &&
		math.Abs(y-rArc.circleEvent.ycenter) < 1e-9 {
		next = rArc.node.next
		disappearingTransitions.appendRight(rArc)
		s.detachBeachSection(rArc)
		rArc = next.value.(*BeachSection)
	}

	disappearingTransitions.appendRight(rArc)
	s.detachCircleEvent(rArc)

	nArcs := len(disappearingTransitions)

	for iArc := 1; iArc < nArcs; iArc++ {
		rArc = disappearingTransitions[iArc]
		lArc = disappearingTransitions[iArc-1]
		s.setEdgeStartpoint(rArc.edge, s.cell(lArc.site), s.cell(rArc.site), vertex)
	}

	lArc = disappearingTransitions[0]
	rArc = disappearingTransitions[nArcs-1]
	rArc.edge = s.createEdge(s.cell(lArc.site), s.cell(rArc.site), NoVertex, vertex)

	s.attachCircleEvent(lArc)
	s.attachCircleEvent(rArc)
}

// addBeachSection обрабатывает событие точки
func (s *Voronoi) addBeachSection(site Vertex) {
	// позиция по X
	x := site.X
	// линия текущей позиции прямого сканирования
	directrix := site.Y

	// Парабола - все точки, находящиеся на ОДИНАКОВОМ расстоянии от site и directrix.
	// Когда параболы пересекаются, строится прямая (граница двух областей),
	// когда пересекаются 3 параболы - границы смыкаются и ставится вершина.

	// lNode и rNode - узлы, между которыми встанет новая дуга
	var lNode, rNode *rbtNode
	// расстояния между новым сайтом и точками пересечения парабол пляжной линии
	var dxl, dxr float64
	node := s.beachline.root

	for node != nil {
		nodeBeachSection := node.value.(*BeachSection)
		dxl = leftBreakPoint(nodeBeachSection, directrix) - x
		if dxl > 1e-9 {
			node = node.left
		} else {
			dxr = x - rightBreakPoint(nodeBeachSection, directrix)
			if dxr > 1e-9 {
				if node.right == nil {
					lNode = node
					break
				}
				node = node.right
			} else {
				if dxl > -1e-9 {
					lNode = node.previous
					rNode = node
				} else if dxr > -1e-9 {
					lNode = node
					rNode = node.next
				} else {
					lNode = node
					rNode = node
				}
				break
			}
		}
	}

	var lArc, rArc *BeachSection

	if lNode != nil {
		lArc = lNode.value.(*BeachSection)
	}
	if rNode != nil {
		rArc = rNode.value.(*BeachSection)
	}

	newArc := s.pool.beachSection(site)
	if lArc == nil {
		s.beachline.insertSuccessor(nil, newArc)
	} else {
		s.beachline.insertSuccessor(lArc.node, newArc)
	}

	// первая дуга на пляжной линии
	if lArc == nil && rArc == nil {
		return
	}

	// новая дуга делит существующую на две
	if lArc == rArc {
		s.detachCircleEvent(lArc)

		rArc = s.pool.beachSection(lArc.site)
		s.beachline.insertSuccessor(newArc.node, rArc)

		newArc.edge = s.createEdge(s.cell(lArc.site), s.cell(newArc.site), NoVertex, NoVertex)
		rArc.edge = newArc.edge

		s.attachCircleEvent(lArc)
		s.attachCircleEvent(rArc)
		return
	}

	// новая дуга справа от последней
	if lArc != nil && rArc == nil {
		newArc.edge = s.createEdge(s.cell(lArc.site), s.cell(newArc.site), NoVertex, NoVertex)
		return
	}

	// новая дуга ровно между двумя существующими: сразу получаем вершину
	if lArc != rArc {
		s.detachCircleEvent(lArc)
		s.detachCircleEvent(rArc)

		LeftSite := lArc.site
		ax := LeftSite.X
		ay := LeftSite.Y
		bx := site.X - ax
		by := site.Y - ay
		RightSite := rArc.site
		cx := RightSite.X - ax
		cy := RightSite.Y - ay
		d := 2 * (bx*cy - by*cx)
		hb := bx*bx + by*by
		hc := cx*cx + cy*cy
		vertex := Vertex{(cy*hb-by*hc)/d + ax, (bx*hc-cx*hb)/d + ay}

		lCell := s.cell(LeftSite)
		cell := s.cell(site)
		rCell := s.cell(RightSite)

		s.setEdgeStartpoint(rArc.edge, lCell, rCell, vertex)

		newArc.edge = s.createEdge(lCell, cell, NoVertex, vertex)
		rArc.edge = s.createEdge(cell, rCell, NoVertex, vertex)

		s.attachCircleEvent(lArc)
		s.attachCircleEvent(rArc)
	}
}

type circleEvent struct {
	node    *rbtNode
	site    Vertex
	arc     *BeachSection
	x       float64
	y       float64
	ycenter float64
}

func (s *circleEvent) bindToNode(node *rbtNode) {
	s.node = node
}

func (s *circleEvent) Node() *rbtNode {
	return s.node
}

func (s *Voronoi) attachCircleEvent(arc *BeachSection) {
	lArc := arc.node.previous
	rArc := arc.node.next
	if lArc == nil || rArc == nil {
		return
	}
	LeftSite := lArc.value.(*BeachSection).site
	cSite := arc.site
	RightSite := rArc.value.(*BeachSection).site

	if LeftSite == RightSite {
		return
	}

	bx := cSite.X
	by := cSite.Y
	ax := LeftSite.X - bx
	ay := LeftSite.Y - by
	cx := RightSite.X - bx
	cy := RightSite.Y - by

	// дуги расходятся - схлопывания не будет
	d := 2 * (ax*cy - ay*cx)
	if d >= -2e-12 {
		return
	}

	ha := ax*ax + ay*ay
	hc := cx*cx + cy*cy
	x := (cy*ha - ay*hc) / d
	y := (ax*hc - cx*ha) / d
	ycenter := y + by

	event := s.pool.circleEvent()
	event.arc = arc
	event.site = cSite
	event.x = x + bx
	event.y = ycenter + math.Sqrt(x*x+y*y)
	event.ycenter = ycenter

	arc.circleEvent = event

	var predecessor *rbtNode
	node := s.circleEvents.root
	for node != nil {
		nodeValue := node.value.(*circleEvent)
		if event.y < nodeValue.y || (event.y == nodeValue.y && event.x <= nodeValue.x) {
			if node.left != nil {
				node = node.left
			} else {
				predecessor = node.previous
				break
			}
		} else {
			if node.right != nil {
				node = node.right
			} else {
				predecessor = node
				break
			}
		}
	}
	s.circleEvents.insertSuccessor(predecessor, event)
	if predecessor == nil {
		s.firstCircleEvent = event
	}
}

func (s *Voronoi) detachCircleEvent(arc *BeachSection) {
	circle := arc.circleEvent
	if circle == nil {
		return
	}
	if circle.node.previous == nil {
		if circle.node.next != nil {
			s.firstCircleEvent = circle.node.next.value.(*circleEvent)
		} else {
			s.firstCircleEvent = nil
		}
	}
	s.circleEvents.removeNode(circle.node)
	arc.circleEvent = nil
	s.pool.releaseCircleEvent(circle)
}

// sweep - основной цикл: события точек и событий круга сверху вниз
func (s *Voronoi) sweep(sites siteEvents) {
	s.Logger.Debug("[f] sweep started", zap.Int("sites", len(sites)))

	next := 0
	pop := func() *siteEvent {
		if next >= len(sites) {
			return nil
		}
		site := &sites[next]
		next++
		return site
	}

	site := pop()
	prevSiteX := math.NaN()
	prevSiteY := math.NaN()

	for {
		// надо узнать, какое событие обрабатываем: точки или круга, и какое поступило раньше
		circle := s.firstCircleEvent

		if site != nil && (circle == nil || site.Y < circle.y || (site.Y == circle.y && site.X < circle.x)) {
			// дубликаты не порождают ячеек, ячейка остается за первым индексом
			if site.X != prevSiteX || site.Y != prevSiteY {
				cell := s.pool.cell()
				cell.reset(site.Vertex, site.index)
				s.cells = append(s.cells, cell)
				s.cellsMap[site.Vertex] = cell
				s.addBeachSection(site.Vertex)
				prevSiteY = site.Y
				prevSiteX = site.X
			} else {
				s.Logger.Warn("[f] duplicate site skipped", zap.Int("index", site.index), zap.Float64("x", site.X), zap.Float64("y", site.Y))
			}
			site = pop()
		} else if circle != nil {
			s.removeBeachSection(circle.arc)
		} else {
			break
		}
	}

	s.Logger.Debug("[f] sweep finished", zap.Int("cells", len(s.cells)), zap.Int("edges", len(s.edges)))
}
