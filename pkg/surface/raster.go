// Package surface implements render.Surface on top of a gg raster context.
package surface

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/gogpu/gg"
	"go.uber.org/zap"

	"github.com/0x0FACED/go-voronoi-paint/pkg/colors"
	"github.com/0x0FACED/go-voronoi-paint/pkg/logger"
)

// MaxSide bounds both dimensions of a raster.
const MaxSide = 4096

// Raster draws into an in-memory RGBA image. Colours that do not parse are
// painted as transparent.
type Raster struct {
	dc     *gg.Context
	log    *logger.ZapLogger
	fill   gg.RGBA
	stroke gg.RGBA
	err    error
}

// New allocates a width x height raster. Both sides must be in [1, MaxSide].
func New(width, height int, log *logger.ZapLogger) (*Raster, error) {
	if width < 1 || height < 1 || width > MaxSide || height > MaxSide {
		return nil, fmt.Errorf("surface: size %dx%d out of range [1, %d]", width, height, MaxSide)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Raster{
		dc:     gg.NewContext(width, height),
		log:    log,
		stroke: gg.RGBA2(0, 0, 0, 1),
	}, nil
}

func (r *Raster) Width() int  { return r.dc.Width() }
func (r *Raster) Height() int { return r.dc.Height() }

// ClearRect makes the rectangle fully transparent. A rectangle covering the
// whole raster clears it in one go.
func (r *Raster) ClearRect(x, y, w, h float64) {
	x0, y0 := int(math.Max(math.Floor(x), 0)), int(math.Max(math.Floor(y), 0))
	x1 := int(math.Min(math.Ceil(x+w), float64(r.Width())))
	y1 := int(math.Min(math.Ceil(y+h), float64(r.Height())))

	if x0 == 0 && y0 == 0 && x1 == r.Width() && y1 == r.Height() {
		r.dc.Clear()
		return
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			r.dc.SetPixel(px, py, gg.Transparent)
		}
	}
}

func (r *Raster) BeginPath() { r.dc.ClearPath() }

func (r *Raster) MoveTo(x, y float64) { r.dc.MoveTo(x, y) }

func (r *Raster) LineTo(x, y float64) { r.dc.LineTo(x, y) }

func (r *Raster) Arc(x, y, radius, angle1, angle2 float64) {
	r.dc.DrawArc(x, y, radius, angle1, angle2)
}

func (r *Raster) ClosePath() { r.dc.ClosePath() }

func (r *Raster) SetFillColor(c string) { r.fill = r.parse(c) }

func (r *Raster) SetStrokeColor(c string) { r.stroke = r.parse(c) }

func (r *Raster) SetLineWidth(w float64) { r.dc.SetLineWidth(w) }

// Fill paints the current path and keeps it for a following Stroke.
func (r *Raster) Fill() {
	if r.fill.A == 0 {
		return
	}
	// fill and stroke share one brush in gg
	r.dc.SetFillBrush(gg.Solid(r.fill))
	r.keep(r.dc.FillPreserve())
}

// Stroke outlines the current path and keeps it.
func (r *Raster) Stroke() {
	if r.stroke.A == 0 {
		return
	}
	r.dc.SetStrokeBrush(gg.Solid(r.stroke))
	r.keep(r.dc.StrokePreserve())
}

func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

// EncodePNG writes the raster as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if r.err != nil {
		return fmt.Errorf("surface: drawing failed: %w", r.err)
	}
	if err := r.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("surface: encode png: %w", err)
	}
	return nil
}

func (r *Raster) Close() error {
	return r.dc.Close()
}

func (r *Raster) keep(err error) {
	if err != nil && r.err == nil {
		r.log.Error("[surface] rasterisation failed", zap.Error(err))
		r.err = err
	}
}

func (r *Raster) parse(s string) gg.RGBA {
	c, err := colors.Parse(s)
	if err != nil {
		r.log.Debug("[surface] unusable colour, painting transparent", zap.String("color", s))
		return gg.Transparent
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return gg.RGBA2(float64(n.R)/255, float64(n.G)/255, float64(n.B)/255, float64(n.A)/255)
}
