package voronoi

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/0x0FACED/go-voronoi-paint/pkg/logger"
)

var (
	// ErrGeometry is wrapped by every error Compute returns.
	ErrGeometry = errors.New("voronoi: geometry error")

	ErrNoSites          = fmt.Errorf("%w: no sites", ErrGeometry)
	ErrEmptyBoundingBox = fmt.Errorf("%w: empty bounding box", ErrGeometry)
	ErrInvalidSite      = fmt.Errorf("%w: site is not finite", ErrGeometry)
	ErrDegenerate       = fmt.Errorf("%w: degenerate diagram", ErrGeometry)
)

// Diagram is the result of one computation. Cells and Edges stay valid until
// the diagram is handed back to Engine.Recycle.
type Diagram struct {
	Cells []*Cell
	Edges []*Edge

	bySite       []*Cell
	allEdges     []*Edge
	allHalfedges []*Halfedge
}

// CellOf returns the cell created for sites[i], or nil when i is out of range
// or the site duplicated an earlier one.
func (d *Diagram) CellOf(i int) *Cell {
	if d == nil || i < 0 || i >= len(d.bySite) {
		return nil
	}
	return d.bySite[i]
}

// Engine computes diagrams and keeps the memory of recycled ones for reuse.
// An Engine is not safe for concurrent use.
type Engine struct {
	log  *logger.ZapLogger
	pool pool
}

func NewEngine(log *logger.ZapLogger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{log: log}
}

// Compute runs the sweep over sites and closes every cell against bbox.
// The input slice is left untouched.
func (e *Engine) Compute(sites []Vertex, bbox BoundingBox) (*Diagram, error) {
	return e.compute(sites, bbox, true)
}

func (e *Engine) compute(sites []Vertex, bbox BoundingBox, closeCells bool) (d *Diagram, err error) {
	if len(sites) == 0 {
		return nil, ErrNoSites
	}
	if !bbox.valid() {
		return nil, fmt.Errorf("%w: %+v", ErrEmptyBoundingBox, bbox)
	}

	events := make(siteEvents, len(sites))
	for i, site := range sites {
		if !site.finite() {
			return nil, fmt.Errorf("%w: sites[%d] = (%g, %g)", ErrInvalidSite, i, site.X, site.Y)
		}
		events[i] = siteEvent{Vertex: site, index: i}
	}
	// сортируем сверху вниз; при равных координатах раньше идет меньший индекс
	sort.Stable(events)

	start := time.Now()
	v := &Voronoi{
		cellsMap: make(map[Vertex]*Cell, len(sites)),
		pool:     &e.pool,
		Logger:   e.log,
	}
	v.beachline.free = e.pool.nodes

	defer func() {
		e.pool.nodes = append(v.beachline.free, v.circleEvents.free...)
		if r := recover(); r != nil {
			e.log.Error("[f] sweep failed", zap.Any("panic", r))
			d, err = nil, fmt.Errorf("%w: %v", ErrDegenerate, r)
		}
	}()

	v.sweep(events)
	v.clipEdges(bbox)
	if closeCells {
		if err := v.closeCells(bbox); err != nil {
			e.log.Error("[f] closing cells failed", zap.Error(err))
			return nil, err
		}
	} else {
		v.prepareCells()
	}

	d = &Diagram{
		Cells:        v.cells,
		Edges:        v.edges,
		bySite:       make([]*Cell, len(sites)),
		allEdges:     v.allEdges,
		allHalfedges: v.allHalfedges,
	}
	for _, cell := range v.cells {
		d.bySite[cell.SiteIndex] = cell
	}

	e.log.Debug("[f] diagram computed",
		zap.Int("sites", len(sites)),
		zap.Int("cells", len(d.Cells)),
		zap.Int("edges", len(d.Edges)),
		zap.Duration("took", time.Since(start)))
	return d, nil
}

// Recycle hands the memory of d back to the engine for the next Compute and
// empties d. A nil or already recycled diagram is ignored.
func (e *Engine) Recycle(d *Diagram) {
	if d == nil || d.bySite == nil {
		return
	}
	e.pool.cells = append(e.pool.cells, d.Cells...)
	e.pool.edges = append(e.pool.edges, d.allEdges...)
	e.pool.halfedges = append(e.pool.halfedges, d.allHalfedges...)
	e.log.Debug("[f] diagram recycled", zap.Int("cells", len(d.Cells)), zap.Int("edges", len(d.allEdges)))
	*d = Diagram{}
}

// Основная функция - база.
// Считает диаграмму одноразовым движком; closeCells=false оставляет ячейки
// незамкнутыми вдоль bbox.
func CreateDiagram(sites []Vertex, bbox BoundingBox, closeCells bool, log *logger.ZapLogger) (*Diagram, error) {
	return NewEngine(log).compute(sites, bbox, closeCells)
}

// pool - свалка объектов для повторного использования между вычислениями
type pool struct {
	cells         []*Cell
	edges         []*Edge
	halfedges     []*Halfedge
	beachSections []*BeachSection
	circleEvents  []*circleEvent
	nodes         []*rbtNode
}

func (p *pool) cell() *Cell {
	if last := len(p.cells) - 1; last >= 0 {
		c := p.cells[last]
		p.cells = p.cells[:last]
		return c
	}
	return &Cell{}
}

func (p *pool) edge() *Edge {
	if last := len(p.edges) - 1; last >= 0 {
		e := p.edges[last]
		p.edges = p.edges[:last]
		return e
	}
	return &Edge{}
}

func (p *pool) halfedge() *Halfedge {
	if last := len(p.halfedges) - 1; last >= 0 {
		h := p.halfedges[last]
		p.halfedges = p.halfedges[:last]
		return h
	}
	return &Halfedge{}
}

func (p *pool) beachSection(site Vertex) *BeachSection {
	var b *BeachSection
	if last := len(p.beachSections) - 1; last >= 0 {
		b = p.beachSections[last]
		p.beachSections = p.beachSections[:last]
	} else {
		b = &BeachSection{}
	}
	*b = BeachSection{site: site}
	return b
}

// releaseBeachSection не обнуляет дугу: removeBeachSection читает site и
// edge уже отсоединенных дуг
func (p *pool) releaseBeachSection(b *BeachSection) {
	p.beachSections = append(p.beachSections, b)
}

func (p *pool) circleEvent() *circleEvent {
	var c *circleEvent
	if last := len(p.circleEvents) - 1; last >= 0 {
		c = p.circleEvents[last]
		p.circleEvents = p.circleEvents[:last]
	} else {
		c = &circleEvent{}
	}
	*c = circleEvent{}
	return c
}

func (p *pool) releaseCircleEvent(c *circleEvent) {
	p.circleEvents = append(p.circleEvents, c)
}
