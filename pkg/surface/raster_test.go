package surface_test

import (
	"bytes"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x0FACED/go-voronoi-paint/pkg/props"
	"github.com/0x0FACED/go-voronoi-paint/pkg/render"
	"github.com/0x0FACED/go-voronoi-paint/pkg/sites"
	"github.com/0x0FACED/go-voronoi-paint/pkg/surface"
	"github.com/0x0FACED/go-voronoi-paint/pkg/voronoi"
)

func at(r *surface.Raster, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(r.Image().At(x, y)).(color.NRGBA)
}

func square(r *surface.Raster, x, y, side float64) {
	r.BeginPath()
	r.MoveTo(x, y)
	r.LineTo(x+side, y)
	r.LineTo(x+side, y+side)
	r.LineTo(x, y+side)
	r.ClosePath()
}

// TestNewBounds rejects empty and oversized rasters.
func TestNewBounds(t *testing.T) {
	for _, tc := range []struct{ w, h int }{{0, 10}, {10, 0}, {-1, 5}, {surface.MaxSide + 1, 1}} {
		_, err := surface.New(tc.w, tc.h, nil)
		assert.Error(t, err, "%dx%d", tc.w, tc.h)
	}
	r, err := surface.New(3, 4, nil)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, 3, r.Width())
	assert.Equal(t, 4, r.Height())
}

// TestFillAndClear paints a square and wipes part of it again.
func TestFillAndClear(t *testing.T) {
	r, err := surface.New(100, 100, nil)
	require.NoError(t, err)
	defer r.Close()

	square(r, 10, 10, 80)
	r.SetFillColor("red")
	r.Fill()
	require.NoError(t, r.EncodePNG(io.Discard))

	c := at(r, 50, 50)
	assert.Greater(t, c.R, uint8(200))
	assert.Less(t, c.G, uint8(50))
	assert.Greater(t, c.A, uint8(200))
	assert.Zero(t, at(r, 5, 5).A)

	r.ClearRect(40, 40, 20, 20)
	assert.Zero(t, at(r, 50, 50).A)
	assert.Greater(t, at(r, 20, 20).A, uint8(200))

	r.ClearRect(-100, -100, 300, 300)
	assert.Zero(t, at(r, 20, 20).A)
}

// TestPathSurvivesFill strokes the same path that was just filled.
func TestPathSurvivesFill(t *testing.T) {
	r, err := surface.New(100, 100, nil)
	require.NoError(t, err)
	defer r.Close()

	square(r, 20, 20, 60)
	r.SetFillColor("transparent")
	r.SetStrokeColor("#0000ff")
	r.SetLineWidth(6)
	r.Fill()
	r.Stroke()

	edge := at(r, 20, 50)
	assert.Greater(t, edge.B, uint8(150))
	assert.Zero(t, at(r, 50, 50).A)
}

// TestInvalidColourIsTransparent paints nothing for colours that do not parse.
func TestInvalidColourIsTransparent(t *testing.T) {
	r, err := surface.New(20, 20, nil)
	require.NoError(t, err)
	defer r.Close()

	square(r, 0, 0, 20)
	r.SetFillColor("definitely not a colour")
	r.Fill()
	assert.Zero(t, at(r, 10, 10).A)
}

// TestDiagramToPNG renders a full frame and encodes it.
func TestDiagramToPNG(t *testing.T) {
	r, err := surface.New(120, 80, nil)
	require.NoError(t, err)
	defer r.Close()

	cfg := props.Defaults()
	list := sites.Generate(120, 80, 0, cfg.CellColors, 10, cfg.Seed)
	d, err := voronoi.NewEngine(nil).Compute(sites.Vertices(list), voronoi.NewBoundingBox(-1, 121, -1, 81))
	require.NoError(t, err)

	render.Draw(r, render.Size{Width: 120, Height: 80}, d, list, cfg)
	assert.Greater(t, at(r, 60, 40).A, uint8(200))

	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}
