package server

import (
	"container/list"
	"sync"

	"go.uber.org/zap"

	"github.com/0x0FACED/go-voronoi-paint/pkg/logger"
	"github.com/0x0FACED/go-voronoi-paint/pkg/paint"
)

// DefaultMaxElements bounds the painters kept when the config sets no limit.
const DefaultMaxElements = 256

// element is one painted element. mu serialises its paint cycles.
type element struct {
	mu      sync.Mutex
	name    string
	painter *paint.Painter
	lru     *list.Element
}

// registry hands out one painter per element name. Painters never share
// state, so different elements paint in parallel. Once limit names are held,
// the least recently painted element is dropped along with its diagram.
type registry struct {
	log      *logger.ZapLogger
	mu       sync.Mutex
	limit    int
	elements map[string]*element
	order    *list.List // front = most recent
}

func newRegistry(log *logger.ZapLogger, limit int) *registry {
	if limit <= 0 {
		limit = DefaultMaxElements
	}
	return &registry{
		log:      log,
		limit:    limit,
		elements: make(map[string]*element),
		order:    list.New(),
	}
}

func (r *registry) get(name string) *element {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.elements[name]; ok {
		r.order.MoveToFront(e.lru)
		return e
	}

	for len(r.elements) >= r.limit {
		r.evictOldest()
	}

	e := &element{
		name:    name,
		painter: paint.New(paint.WithLogger(r.log.With(zap.String("element", name)))),
	}
	e.lru = r.order.PushFront(e)
	r.elements[name] = e
	r.log.Debug("[http] new painted element", zap.String("element", name), zap.String("painter", e.painter.ID()))
	return e
}

// evictOldest must be called with r.mu held. A cycle already running on the
// evicted element finishes on its own painter.
func (r *registry) evictOldest() {
	back := r.order.Back()
	if back == nil {
		return
	}
	e := r.order.Remove(back).(*element)
	delete(r.elements, e.name)
	r.log.Debug("[http] painted element evicted", zap.String("element", e.name), zap.String("painter", e.painter.ID()))
}

// with runs fn while holding the element's lock.
func (r *registry) with(name string, fn func(p *paint.Painter)) {
	e := r.get(name)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.painter)
}

func (r *registry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.elements)
}
