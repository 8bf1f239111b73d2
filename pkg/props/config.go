package props

import (
	"strconv"
	"strings"
)

// CellCount is either a fixed number of cells or "auto".
type CellCount struct {
	N    int
	Auto bool
}

func (c CellCount) String() string {
	if c.Auto {
		return "auto"
	}
	return strconv.Itoa(c.N)
}

// Config is the fully resolved style of one paint cycle.
type Config struct {
	Cells          CellCount
	Margin         float64 // percent, [0, 50]
	LineColor      string
	LineWidth      float64
	DotColor       string
	DotSize        float64
	CellColors     []string
	Seed           int32
	MouseX         int
	MouseY         int
	HighlightColor string
}

// MarginFraction converts Margin from percent into a fraction of the canvas.
func (c Config) MarginFraction() float64 {
	return c.Margin / 100
}

// PointerEnabled reports whether a pointer position was supplied.
func (c Config) PointerEnabled() bool {
	return c.MouseX >= 0 && c.MouseY >= 0
}

const (
	DefaultNumberOfCells  = 25
	DefaultMargin         = 0
	DefaultLineColor      = "#000"
	DefaultLineWidth      = 1
	DefaultDotColor       = "transparent"
	DefaultDotSize        = 2
	DefaultSeed           = 123456
	DefaultMouse          = -1
	DefaultHighlightColor = "yellow"
)

// DefaultPalette returns a fresh copy of the default cell colours.
func DefaultPalette() []string {
	return []string{"#66ccff", "#99ffcc", "#00ffcc", "#33ccff", "#99ff99", "#66ff99", "#00ffff"}
}

func Defaults() Config {
	return Config{
		Cells:          CellCount{N: DefaultNumberOfCells},
		Margin:         DefaultMargin,
		LineColor:      DefaultLineColor,
		LineWidth:      DefaultLineWidth,
		DotColor:       DefaultDotColor,
		DotSize:        DefaultDotSize,
		CellColors:     DefaultPalette(),
		Seed:           DefaultSeed,
		MouseX:         DefaultMouse,
		MouseY:         DefaultMouse,
		HighlightColor: DefaultHighlightColor,
	}
}

// DefaultString is the stylesheet spelling of a property's default value.
func DefaultString(name string) string {
	d := Defaults()
	switch name {
	case NumberOfCells:
		return d.Cells.String()
	case Margin:
		return strconv.FormatFloat(d.Margin, 'g', -1, 64)
	case LineColor:
		return d.LineColor
	case LineWidth:
		return strconv.FormatFloat(d.LineWidth, 'g', -1, 64)
	case DotColor:
		return d.DotColor
	case DotSize:
		return strconv.FormatFloat(d.DotSize, 'g', -1, 64)
	case CellColors:
		return strings.Join(d.CellColors, ", ")
	case Seed:
		return strconv.Itoa(int(d.Seed))
	case MouseX:
		return strconv.Itoa(d.MouseX)
	case MouseY:
		return strconv.Itoa(d.MouseY)
	case HighlightColor:
		return d.HighlightColor
	}
	return ""
}
