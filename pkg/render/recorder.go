package render

import (
	"fmt"
	"strings"
)

// Op is one recorded surface call.
type Op struct {
	Name  string
	Args  []float64
	Color string
}

func (o Op) String() string {
	var b strings.Builder
	b.WriteString(o.Name)
	b.WriteByte('(')
	for i, a := range o.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%g", a)
	}
	if o.Color != "" {
		if len(o.Args) > 0 {
			b.WriteString(", ")
		}
		b.WriteString(o.Color)
	}
	b.WriteByte(')')
	return b.String()
}

// Recorder is a Surface that only remembers what was asked of it.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) add(name, color string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args, Color: color})
}

func (r *Recorder) ClearRect(x, y, w, h float64) { r.add("clearRect", "", x, y, w, h) }
func (r *Recorder) BeginPath() { r.add("beginPath", "") }
func (r *Recorder) MoveTo(x, y float64) { r.add("moveTo", "", x, y) }
func (r *Recorder) LineTo(x, y float64) { r.add("lineTo", "", x, y) }
func (r *Recorder) Arc(x, y, rad, a1, a2 float64) { r.add("arc", "", x, y, rad, a1, a2) }
func (r *Recorder) ClosePath() { r.add("closePath", "") }
func (r *Recorder) SetFillColor(c string) { r.add("fillStyle", c) }
func (r *Recorder) SetStrokeColor(c string) { r.add("strokeStyle", c) }
func (r *Recorder) SetLineWidth(w float64) { r.add("lineWidth", "", w) }
func (r *Recorder) Fill() { r.add("fill", "") }
func (r *Recorder) Stroke() { r.add("stroke", "") }

// Count returns how many times the named operation was recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Reset forgets every recorded operation.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

func (r *Recorder) String() string {
	lines := make([]string, len(r.Ops))
	for i, op := range r.Ops {
		lines[i] = op.String()
	}
	return strings.Join(lines, "\n")
}
