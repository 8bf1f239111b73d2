package voronoi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/0x0FACED/go-voronoi-paint/pkg/logger"
	"github.com/0x0FACED/go-voronoi-paint/pkg/prng"
)

// EngineSuite covers diagram computation, degenerate inputs and recycling.
type EngineSuite struct {
	suite.Suite
	engine *Engine
	bbox   BoundingBox
}

func (s *EngineSuite) SetupTest() {
	s.engine = NewEngine(logger.New())
	s.bbox = NewBoundingBox(0, 300, 0, 200)
}

func polygonArea(poly []Vertex) float64 {
	var a float64
	for i := 0; i+1 < len(poly); i++ {
		a += poly[i].X*poly[i+1].Y - poly[i+1].X*poly[i].Y
	}
	return math.Abs(a) / 2
}

func contains(poly []Vertex, p Vertex) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

func randomSites(n int, seed int32, bbox BoundingBox) []Vertex {
	r := prng.New(seed)
	out := make([]Vertex, n)
	for i := range out {
		out[i] = Vertex{
			X: bbox.Xl + r.Float64()*(bbox.Xr-bbox.Xl),
			Y: bbox.Yt + r.Float64()*(bbox.Yb-bbox.Yt),
		}
	}
	return out
}

// requireTiling checks that every cell is a closed polygon around its own
// site and that the cells cover the bounding box exactly once.
func (s *EngineSuite) requireTiling(d *Diagram, sites []Vertex, bbox BoundingBox) {
	var total float64
	for _, cell := range d.Cells {
		require.True(s.T(), cell.Closed(), "cell %d is not closed", cell.SiteIndex)

		hs := cell.Halfedges
		for i := range hs {
			end := hs[i].EndPoint()
			start := hs[(i+1)%len(hs)].StartPoint()
			require.True(s.T(), sameVertex(end, start), "cell %d: gap between halfedges %d and %d", cell.SiteIndex, i, i+1)
		}

		poly := cell.Polygon()
		require.True(s.T(), contains(poly, sites[cell.SiteIndex]), "cell %d does not contain its site", cell.SiteIndex)
		total += polygonArea(poly)
	}

	want := (bbox.Xr - bbox.Xl) * (bbox.Yb - bbox.Yt)
	require.InDelta(s.T(), want, total, want*1e-6)
}

// TestTwoSites splits the box between two cells.
func (s *EngineSuite) TestTwoSites() {
	sites := []Vertex{{100, 100}, {200, 100}}
	d, err := s.engine.Compute(sites, s.bbox)
	require.NoError(s.T(), err)
	require.Len(s.T(), d.Cells, 2)
	s.requireTiling(d, sites, s.bbox)

	left := d.CellOf(0)
	require.NotNil(s.T(), left)
	require.InDelta(s.T(), 150*200, polygonArea(left.Polygon()), 1e-6)
}

// TestGrid computes a 3x3 lattice, whose cells are all rectangles.
func (s *EngineSuite) TestGrid() {
	var sites []Vertex
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			sites = append(sites, Vertex{50 + float64(x)*100, 33 + float64(y)*67})
		}
	}
	d, err := s.engine.Compute(sites, s.bbox)
	require.NoError(s.T(), err)
	require.Len(s.T(), d.Cells, 9)
	s.requireTiling(d, sites, s.bbox)
}

// TestRandomSites checks the tiling property on many random layouts.
func (s *EngineSuite) TestRandomSites() {
	for seed := int32(1); seed <= 20; seed++ {
		sites := randomSites(60, seed, s.bbox)
		d, err := s.engine.Compute(sites, s.bbox)
		require.NoError(s.T(), err, "seed %d", seed)
		require.Len(s.T(), d.Cells, len(sites))
		s.requireTiling(d, sites, s.bbox)
		s.engine.Recycle(d)
	}
}

// TestCellOf maps every input index to the cell built for that site.
func (s *EngineSuite) TestCellOf() {
	sites := randomSites(25, 7, s.bbox)
	d, err := s.engine.Compute(sites, s.bbox)
	require.NoError(s.T(), err)

	for i, site := range sites {
		cell := d.CellOf(i)
		require.NotNil(s.T(), cell)
		require.Equal(s.T(), i, cell.SiteIndex)
		require.Equal(s.T(), site, cell.Site)
	}
	require.Nil(s.T(), d.CellOf(-1))
	require.Nil(s.T(), d.CellOf(len(sites)))

	var nilDiagram *Diagram
	require.Nil(s.T(), nilDiagram.CellOf(0))
}

// TestInputNotReordered makes sure Compute does not sort the caller's slice.
func (s *EngineSuite) TestInputNotReordered() {
	sites := []Vertex{{250, 150}, {10, 10}, {120, 90}}
	orig := append([]Vertex(nil), sites...)
	_, err := s.engine.Compute(sites, s.bbox)
	require.NoError(s.T(), err)
	require.Equal(s.T(), orig, sites)
}

// TestDuplicateSites gives the cell to the first occurrence only.
func (s *EngineSuite) TestDuplicateSites() {
	sites := []Vertex{{150, 100}, {50, 50}, {150, 100}, {250, 150}}
	d, err := s.engine.Compute(sites, s.bbox)
	require.NoError(s.T(), err)
	require.Len(s.T(), d.Cells, 3)
	require.NotNil(s.T(), d.CellOf(0))
	require.Nil(s.T(), d.CellOf(2))
}

// TestSingleSite makes the whole box one cell.
func (s *EngineSuite) TestSingleSite() {
	sites := []Vertex{{10, 20}}
	d, err := s.engine.Compute(sites, s.bbox)
	require.NoError(s.T(), err)
	require.Len(s.T(), d.Cells, 1)
	require.Len(s.T(), d.Cells[0].Halfedges, 4)
	s.requireTiling(d, sites, s.bbox)
}

// TestDegenerateInputs returns geometry errors instead of panicking.
func (s *EngineSuite) TestDegenerateInputs() {
	_, err := s.engine.Compute(nil, s.bbox)
	require.ErrorIs(s.T(), err, ErrNoSites)
	require.ErrorIs(s.T(), err, ErrGeometry)

	_, err = s.engine.Compute([]Vertex{{1, 1}}, NewBoundingBox(10, 10, 0, 5))
	require.ErrorIs(s.T(), err, ErrEmptyBoundingBox)

	_, err = s.engine.Compute([]Vertex{{1, 1}}, NewBoundingBox(0, 10, 0, math.NaN()))
	require.ErrorIs(s.T(), err, ErrEmptyBoundingBox)

	_, err = s.engine.Compute([]Vertex{{1, 1}, {math.Inf(1), 2}}, s.bbox)
	require.ErrorIs(s.T(), err, ErrInvalidSite)
	require.ErrorIs(s.T(), err, ErrGeometry)
}

// TestCollinearSites handles parallel bisectors.
func (s *EngineSuite) TestCollinearSites() {
	sites := []Vertex{{50, 100}, {150, 100}, {250, 100}}
	d, err := s.engine.Compute(sites, s.bbox)
	require.NoError(s.T(), err)
	require.Len(s.T(), d.Cells, 3)
	s.requireTiling(d, sites, s.bbox)
}

// TestRecycle empties the diagram and feeds its memory to the next computation.
func (s *EngineSuite) TestRecycle() {
	sites := randomSites(30, 3, s.bbox)
	d, err := s.engine.Compute(sites, s.bbox)
	require.NoError(s.T(), err)

	cells := len(d.Cells)
	halfedges := len(d.allHalfedges)
	s.engine.Recycle(d)

	require.Empty(s.T(), d.Cells)
	require.Empty(s.T(), d.Edges)
	require.Nil(s.T(), d.CellOf(0))
	require.Len(s.T(), s.engine.pool.cells, cells)
	require.Len(s.T(), s.engine.pool.halfedges, halfedges)

	// recycling twice and recycling nil are no-ops
	s.engine.Recycle(d)
	s.engine.Recycle(nil)
	require.Len(s.T(), s.engine.pool.cells, cells)

	d2, err := s.engine.Compute(sites, s.bbox)
	require.NoError(s.T(), err)
	require.Empty(s.T(), s.engine.pool.cells)
	s.requireTiling(d2, sites, s.bbox)
}

// TestCreateDiagramOpenCells keeps the unclosed variant available.
func (s *EngineSuite) TestCreateDiagramOpenCells() {
	sites := []Vertex{{100, 100}, {200, 100}}
	d, err := CreateDiagram(sites, s.bbox, false, nil)
	require.NoError(s.T(), err)
	require.Len(s.T(), d.Cells, 2)
	for _, cell := range d.Cells {
		require.Len(s.T(), cell.Halfedges, 1)
		require.False(s.T(), cell.Closed())
	}
	require.Len(s.T(), d.Edges, 1)
}

// TestGrow extends the box on every side.
func (s *EngineSuite) TestGrow() {
	require.Equal(s.T(), NewBoundingBox(-2, 302, -2, 202), s.bbox.Grow(2))
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}
