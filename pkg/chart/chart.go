// Package chart exports a computed diagram as an interactive echarts page.
package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/0x0FACED/go-voronoi-paint/pkg/colors"
	"github.com/0x0FACED/go-voronoi-paint/pkg/sites"
	"github.com/0x0FACED/go-voronoi-paint/pkg/voronoi"
)

// Options controls the look of the chart.
type Options struct {
	Title     string
	Width     string // css size of the chart, e.g. "1020px"
	Height    string
	LineColor string
	LineWidth float64
}

func DefaultOptions() Options {
	return Options{
		Title:     "Voronoi diagram",
		Width:     "1020px",
		Height:    "580px",
		LineColor: "white",
		LineWidth: 2,
	}
}

// Оформление скаттера: темный фон страницы, светлые оси, зум колесом
func prepareScatter(scatter *charts.Scatter, o Options) {
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Height: o.Height,
			Width:  o.Width,
		}),
		charts.WithLegendOpts(opts.Legend{
			TextStyle: &opts.TextStyle{
				Color: "white",
			},
			Right: "10%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:                o.Title,
			TitleBackgroundColor: "white",
			Left:                 "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "x",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "y",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

// Build turns the sites and the closed cells of d into a scatter chart with
// one outline series per cell, drawn in the cell's colour.
func Build(list []sites.Site, d *voronoi.Diagram, o Options) *charts.Scatter {
	scatter := charts.NewScatter()
	prepareScatter(scatter, o)

	points := make([]opts.ScatterData, 0, len(list))
	for _, site := range list {
		points = append(points, opts.ScatterData{
			Value: []float64{site.X, site.Y},
		})
	}
	scatter.AddSeries("Sites", points).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: o.LineColor,
			}),
		)

	if d == nil {
		return scatter
	}

	for _, cell := range d.Cells {
		if !cell.Closed() {
			continue
		}
		poly := cell.Polygon()
		data := make([]opts.LineData, 0, len(poly))
		for _, v := range poly {
			data = append(data, opts.LineData{Value: []float64{v.X, v.Y}})
		}

		color := o.LineColor
		if cell.SiteIndex < len(list) && colors.Valid(list[cell.SiteIndex].CellColor) {
			color = list[cell.SiteIndex].CellColor
		}

		line := charts.NewLine()
		line.AddSeries(fmt.Sprintf("Cell %d", cell.SiteIndex), data).
			SetSeriesOptions(
				charts.WithLineStyleOpts(opts.LineStyle{
					Width: float32(o.LineWidth),
					Color: color,
				}),
			)
		scatter.Overlap(line)
	}

	return scatter
}

// Render writes the chart page for the diagram to w.
func Render(w io.Writer, list []sites.Site, d *voronoi.Diagram, o Options) error {
	if err := Build(list, d, o).Render(w); err != nil {
		return fmt.Errorf("chart: render: %w", err)
	}
	return nil
}
