// Package paint runs the paint cycle: style resolution, site generation,
// diagram computation and rendering, once per redraw request.
package paint

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/0x0FACED/go-voronoi-paint/pkg/logger"
	"github.com/0x0FACED/go-voronoi-paint/pkg/props"
	"github.com/0x0FACED/go-voronoi-paint/pkg/render"
	"github.com/0x0FACED/go-voronoi-paint/pkg/sites"
	"github.com/0x0FACED/go-voronoi-paint/pkg/voronoi"
)

// ErrBusy is returned when Paint is called while a cycle is still running.
var ErrBusy = errors.New("paint: cycle already in progress")

type State int

const (
	Idle State = iota
	Painting
)

func (s State) String() string {
	if s == Painting {
		return "painting"
	}
	return "idle"
}

// Definition is what a host registers before the first invocation.
type Definition struct {
	Name            string   `json:"name"`
	InputProperties []string `json:"inputProperties"`
}

// Worklet describes the painter under its registered name.
func Worklet() Definition {
	return Definition{
		Name:            "voronoi",
		InputProperties: append([]string(nil), props.InputProperties...),
	}
}

// Result reports one cycle. Err is nil, ErrBusy or a voronoi.ErrGeometry;
// in the geometry case the surface was left cleared.
type Result struct {
	Config props.Config
	Sites  []sites.Site
	Cells  int
	Took   time.Duration
	Err    error
}

// Painter owns the diagram of one painted element between cycles.
// It is not safe for concurrent use; the host serialises calls.
type Painter struct {
	id      string
	log     *logger.ZapLogger
	engine  *voronoi.Engine
	state   State
	diagram *voronoi.Diagram
}

type Option func(*Painter)

func WithLogger(log *logger.ZapLogger) Option {
	return func(p *Painter) {
		if log != nil {
			p.log = log
		}
	}
}

// WithEngine makes the painter compute with e instead of a private engine.
func WithEngine(e *voronoi.Engine) Option {
	return func(p *Painter) {
		if e != nil {
			p.engine = e
		}
	}
}

func New(opts ...Option) *Painter {
	p := &Painter{
		id:  uuid.NewString(),
		log: logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.With(zap.String("painter", p.id))
	if p.engine == nil {
		p.engine = voronoi.NewEngine(p.log)
	}
	return p
}

func (p *Painter) ID() string { return p.id }

func (p *Painter) State() State { return p.state }

// Diagram returns the diagram drawn by the last successful cycle, or nil.
func (p *Painter) Diagram() *voronoi.Diagram { return p.diagram }

// Paint runs one cycle onto s. It never panics on bad input: unusable
// properties fall back to defaults and geometry failures leave a cleared
// surface.
func (p *Painter) Paint(s render.Surface, size render.Size, bag props.Bag) Result {
	if p.state == Painting {
		p.log.Warn("[paint] re-entrant paint request rejected")
		return Result{Err: ErrBusy}
	}
	p.state = Painting
	defer func() { p.state = Idle }()

	start := time.Now()
	cfg := props.Resolve(bag, p.log)

	n := sites.Count(cfg.Cells, size.Width, size.Height)
	list := sites.Generate(size.Width, size.Height, cfg.MarginFraction(), cfg.CellColors, n, cfg.Seed)
	if cfg.PointerEnabled() {
		sites.Override(list, float64(cfg.MouseX), float64(cfg.MouseY), cfg.HighlightColor)
	}

	p.engine.Recycle(p.diagram)
	p.diagram = nil

	// strokes may reach past the canvas by one line width
	bbox := voronoi.NewBoundingBox(0, size.Width, 0, size.Height).Grow(cfg.LineWidth)
	d, err := p.engine.Compute(sites.Vertices(list), bbox)
	if err != nil {
		render.Clear(s, size)
		p.log.Warn("[paint] diagram not computed, frame left blank",
			zap.Error(err),
			zap.Int("sites", len(list)),
			zap.Float64("width", size.Width),
			zap.Float64("height", size.Height))
		return Result{Config: cfg, Sites: list, Took: time.Since(start), Err: err}
	}

	render.Draw(s, size, d, list, cfg)
	p.diagram = d

	res := Result{Config: cfg, Sites: list, Cells: len(d.Cells), Took: time.Since(start)}
	p.log.Debug("[paint] frame painted",
		zap.Int("sites", len(list)),
		zap.Int("cells", res.Cells),
		zap.Bool("pointer", cfg.PointerEnabled()),
		zap.Duration("took", res.Took))
	return res
}
