package paint_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/0x0FACED/go-voronoi-paint/pkg/logger"
	"github.com/0x0FACED/go-voronoi-paint/pkg/paint"
	"github.com/0x0FACED/go-voronoi-paint/pkg/props"
	"github.com/0x0FACED/go-voronoi-paint/pkg/render"
	"github.com/0x0FACED/go-voronoi-paint/pkg/sites"
	"github.com/0x0FACED/go-voronoi-paint/pkg/voronoi"
)

// PainterSuite drives whole paint cycles against a recording surface.
type PainterSuite struct {
	suite.Suite
	log     *logger.ZapLogger
	painter *paint.Painter
	rec     *render.Recorder
	size    render.Size
}

func (s *PainterSuite) SetupTest() {
	s.log = logger.New()
	s.painter = paint.New(paint.WithLogger(s.log))
	s.rec = &render.Recorder{}
	s.size = render.Size{Width: 300, Height: 200}
}

// TestDefaults paints the default 25 cells and keeps the diagram.
func (s *PainterSuite) TestDefaults() {
	res := s.painter.Paint(s.rec, s.size, nil)
	require.NoError(s.T(), res.Err)
	require.Len(s.T(), res.Sites, props.DefaultNumberOfCells)
	require.Equal(s.T(), props.DefaultNumberOfCells, res.Cells)
	require.Equal(s.T(), paint.Idle, s.painter.State())
	require.NotNil(s.T(), s.painter.Diagram())

	require.Equal(s.T(), "clearRect", s.rec.Ops[0].Name)
	require.Equal(s.T(), res.Cells, s.rec.Count("fill"))
	require.Equal(s.T(), res.Cells, s.rec.Count("stroke"))
}

// TestDeterministic draws the same frame from two independent painters.
func (s *PainterSuite) TestDeterministic() {
	bag := props.Map{}
	require.NoError(s.T(), bag.Set("numberOfCells", props.StringValue("auto")))
	require.NoError(s.T(), bag.Set("seed", props.NumberValue(42)))

	other := &render.Recorder{}
	s.painter.Paint(s.rec, s.size, bag)
	paint.New().Paint(other, s.size, bag)
	require.Equal(s.T(), s.rec.Ops, other.Ops)
}

// TestAutoCount sizes the site set from the canvas.
func (s *PainterSuite) TestAutoCount() {
	bag := props.Map{props.NumberOfCells: props.StringValue("auto")}
	res := s.painter.Paint(s.rec, render.Size{Width: 300, Height: 300}, bag)
	require.NoError(s.T(), res.Err)
	require.Len(s.T(), res.Sites, 20)
}

// TestPointerOverride replaces site 0 with the pointer and highlights its cell.
func (s *PainterSuite) TestPointerOverride() {
	bag := props.Map{
		props.MouseX: props.NumberValue(50),
		props.MouseY: props.StringValue("75"),
	}
	res := s.painter.Paint(s.rec, s.size, bag)
	require.NoError(s.T(), res.Err)
	require.Equal(s.T(), sites.Site{X: 50, Y: 75, CellColor: props.DefaultHighlightColor}, res.Sites[0])

	cell := s.painter.Diagram().CellOf(0)
	require.NotNil(s.T(), cell)
	require.Equal(s.T(), voronoi.Vertex{X: 50, Y: 75}, cell.Site)

	// highlight fill comes on top of one fill per cell
	require.Equal(s.T(), res.Cells+1, s.rec.Count("fill"))
}

// TestResolverFallback keeps painting when one property is unusable.
func (s *PainterSuite) TestResolverFallback() {
	bag := props.Map{
		props.LineWidth:     props.StringValue(""),
		props.LineColor:     props.StringValue("not a colour"),
		props.NumberOfCells: props.NumberValue(5),
	}
	res := s.painter.Paint(s.rec, s.size, bag)
	require.NoError(s.T(), res.Err)
	require.Equal(s.T(), float64(props.DefaultLineWidth), res.Config.LineWidth)
	require.Equal(s.T(), props.DefaultLineColor, res.Config.LineColor)
	require.Len(s.T(), res.Sites, 5)
	require.Contains(s.T(), s.log.Logs(), "falling back to default")
}

// TestComputationFailure leaves only the clear operation on the surface.
func (s *PainterSuite) TestComputationFailure() {
	require.NoError(s.T(), s.painter.Paint(s.rec, s.size, nil).Err)
	require.NotNil(s.T(), s.painter.Diagram())

	// a 50% margin leaves no room for the sites
	rec := &render.Recorder{}
	res := s.painter.Paint(rec, s.size, props.Map{props.Margin: props.NumberValue(50)})
	require.ErrorIs(s.T(), res.Err, voronoi.ErrGeometry)
	require.Len(s.T(), rec.Ops, 1)
	require.Equal(s.T(), "clearRect", rec.Ops[0].Name)
	require.Nil(s.T(), s.painter.Diagram())
	require.Equal(s.T(), paint.Idle, s.painter.State())

	// the next good cycle recovers
	require.NoError(s.T(), s.painter.Paint(&render.Recorder{}, s.size, nil).Err)
	require.NotNil(s.T(), s.painter.Diagram())
}

// TestRecycleBetweenCycles hands the previous diagram back before computing.
func (s *PainterSuite) TestRecycleBetweenCycles() {
	s.painter.Paint(s.rec, s.size, nil)
	first := s.painter.Diagram()
	require.NotEmpty(s.T(), first.Cells)

	s.painter.Paint(&render.Recorder{}, s.size, nil)
	second := s.painter.Diagram()
	require.NotSame(s.T(), first, second)
	require.Empty(s.T(), first.Cells)
	require.Len(s.T(), second.Cells, props.DefaultNumberOfCells)
}

// reentrantSurface calls back into the painter from inside a cycle.
type reentrantSurface struct {
	render.Recorder
	painter *paint.Painter
	nested  []paint.Result
}

func (r *reentrantSurface) ClearRect(x, y, w, h float64) {
	r.Recorder.ClearRect(x, y, w, h)
	if r.painter.State() == paint.Painting {
		r.nested = append(r.nested, r.painter.Paint(&render.Recorder{}, render.Size{Width: 10, Height: 10}, nil))
	}
}

// TestReentrantPaintRejected refuses a second cycle while one is running.
func (s *PainterSuite) TestReentrantPaintRejected() {
	surface := &reentrantSurface{painter: s.painter}
	res := s.painter.Paint(surface, s.size, nil)
	require.NoError(s.T(), res.Err)
	require.Len(s.T(), surface.nested, 1)
	require.ErrorIs(s.T(), surface.nested[0].Err, paint.ErrBusy)
	require.Equal(s.T(), paint.Idle, s.painter.State())
}

// TestSharedEngine lets painters reuse one engine's pool.
func (s *PainterSuite) TestSharedEngine() {
	engine := voronoi.NewEngine(nil)
	a := paint.New(paint.WithEngine(engine))
	b := paint.New(paint.WithEngine(engine))
	require.NotEqual(s.T(), a.ID(), b.ID())

	require.NoError(s.T(), a.Paint(&render.Recorder{}, s.size, nil).Err)
	require.NoError(s.T(), b.Paint(&render.Recorder{}, s.size, nil).Err)
	require.NotSame(s.T(), a.Diagram(), b.Diagram())
	require.Len(s.T(), a.Diagram().Cells, props.DefaultNumberOfCells)
}

// TestWorklet exposes the registration contract.
func (s *PainterSuite) TestWorklet() {
	def := paint.Worklet()
	require.Equal(s.T(), "voronoi", def.Name)
	require.Equal(s.T(), props.InputProperties, def.InputProperties)
	require.Equal(s.T(), "idle", paint.Idle.String())
	require.Equal(s.T(), "painting", paint.Painting.String())
}

func TestPainterSuite(t *testing.T) {
	suite.Run(t, new(PainterSuite))
}
