package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/0x0FACED/go-voronoi-paint/pkg/chart"
	"github.com/0x0FACED/go-voronoi-paint/pkg/paint"
	"github.com/0x0FACED/go-voronoi-paint/pkg/props"
	"github.com/0x0FACED/go-voronoi-paint/pkg/render"
	"github.com/0x0FACED/go-voronoi-paint/pkg/surface"
	"github.com/0x0FACED/go-voronoi-paint/static"
)

const (
	headerPaintError = "X-Paint-Error"
	headerPainter    = "X-Painter"

	defaultElement = "demo"
)

var errBadSize = errors.New("bad canvas size")

// canvasSize reads width and height from the query, falling back to the
// configured canvas.
func (s *Server) canvasSize(q url.Values) (int, int, error) {
	side := func(key string, def int) (int, error) {
		raw := strings.TrimSpace(q.Get(key))
		if raw == "" {
			return def, nil
		}
		n, err := strconv.Atoi(strings.TrimSuffix(raw, "px"))
		if err != nil {
			return 0, fmt.Errorf("%w: %s=%q", errBadSize, key, raw)
		}
		if n < 1 || n > surface.MaxSide {
			return 0, fmt.Errorf("%w: %s=%d out of range [1, %d]", errBadSize, key, n, surface.MaxSide)
		}
		return n, nil
	}

	w, err := side("width", s.cfg.Canvas.Width)
	if err != nil {
		return 0, 0, err
	}
	h, err := side("height", s.cfg.Canvas.Height)
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

// bag layers the request's query over the configured style.
func (s *Server) bag(q url.Values) props.Bag {
	return props.Overlay(props.FromValues(q), s.base)
}

func elementName(r *http.Request) string {
	name := strings.TrimSuffix(chi.URLParam(r, "element"), ".png")
	if name == "" {
		return defaultElement
	}
	return name
}

func (s *Server) handlePaint(w http.ResponseWriter, r *http.Request) {
	name := elementName(r)
	q := r.URL.Query()
	width, height, err := s.canvasSize(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	raster, err := surface.New(width, height, s.log)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer raster.Close()

	var res paint.Result
	var painter string
	s.elements.with(name, func(p *paint.Painter) {
		painter = p.ID()
		res = p.Paint(raster, render.Size{Width: float64(width), Height: float64(height)}, s.bag(q))
	})
	if errors.Is(res.Err, paint.ErrBusy) {
		http.Error(w, res.Err.Error(), http.StatusConflict)
		return
	}

	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf); err != nil {
		s.log.Error("[http] png encoding failed", zap.String("element", name), zap.Error(err))
		http.Error(w, "png encoding failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set(headerPainter, painter)
	if res.Err != nil {
		// blank frame, still a valid image
		w.Header().Set(headerPaintError, res.Err.Error())
	}
	w.Write(buf.Bytes())
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name := elementName(r)
	q := r.URL.Query()
	width, height, err := s.canvasSize(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var page bytes.Buffer
	s.elements.with(name, func(p *paint.Painter) {
		res := p.Paint(&render.Recorder{}, render.Size{Width: float64(width), Height: float64(height)}, s.bag(q))
		if res.Err != nil {
			err = res.Err
			return
		}
		o := chart.DefaultOptions()
		o.Title = fmt.Sprintf("Voronoi diagram: %s (%d cells)", name, res.Cells)
		o.LineWidth = res.Config.LineWidth
		err = chart.Render(&page, res.Sites, p.Diagram(), o)
	})
	if err != nil {
		s.log.Warn("[http] chart not rendered", zap.String("element", name), zap.Error(err))
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page.Bytes())
}

func (s *Server) handleWorklet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(paint.Worklet()); err != nil {
		s.log.Error("[http] worklet encoding failed", zap.Error(err))
	}
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, s.log.Logs())
	if r.URL.Query().Get("clear") != "" {
		s.log.ClearLogs()
	}
}

// http обработчик страницы с формой свойств и превью
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	fmt.Fprintln(w, static.Part1)
	fmt.Fprintln(w, `<form id="diagram-form">`)
	for _, name := range props.InputProperties {
		if name == props.MouseX || name == props.MouseY {
			continue
		}
		value := props.DefaultString(name)
		if v := s.base.Get(name); !v.Empty() {
			value = v.String()
		}
		key := props.ShortKey(name)
		fmt.Fprintf(w, "<label for=%q>%s</label><input type=\"text\" id=%q name=%q value=\"%s\"><br>\n",
			key, html.EscapeString(name), key, key, html.EscapeString(value))
	}
	fmt.Fprintln(w, `<input type="submit" value="Paint"> <a id="chart-link" href="/chart/`+defaultElement+`" target="_blank">chart</a>`)
	fmt.Fprintln(w, `</form>`)
	fmt.Fprintf(w, "<img id=\"canvas\" data-element=%q width=\"%d\" height=\"%d\" src=\"/paint/%s.png\" alt=\"voronoi\">\n",
		defaultElement, s.cfg.Canvas.Width, s.cfg.Canvas.Height, defaultElement)

	fmt.Fprintln(w, static.Part2)
	fmt.Fprintln(w, s.log.Logs())
	fmt.Fprintln(w, static.Part3)
}
