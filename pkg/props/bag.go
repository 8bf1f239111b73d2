package props

import (
	"fmt"
	"net/url"
	"sort"
)

// Declared input properties, in registration order.
const (
	NumberOfCells  = "--voronoi-number-of-cells"
	Margin         = "--voronoi-margin"
	LineColor      = "--voronoi-line-color"
	LineWidth      = "--voronoi-line-width"
	DotColor       = "--voronoi-dot-color"
	DotSize        = "--voronoi-dot-size"
	CellColors     = "--voronoi-cell-colors"
	Seed           = "--voronoi-seed"
	MouseX         = "--voronoi-mouse-x"
	MouseY         = "--voronoi-mouse-y"
	HighlightColor = "--voronoi-highlight-color"
)

// InputProperties is the list a host registers before the first paint.
var InputProperties = []string{
	NumberOfCells,
	Margin,
	LineColor,
	LineWidth,
	DotColor,
	DotSize,
	CellColors,
	Seed,
	MouseX,
	MouseY,
	HighlightColor,
}

// shortKeys maps the camel-case keys used in query strings and config files
// onto the declared property names.
var shortKeys = map[string]string{
	"numberOfCells":  NumberOfCells,
	"margin":         Margin,
	"lineColor":      LineColor,
	"lineWidth":      LineWidth,
	"dotColor":       DotColor,
	"dotSize":        DotSize,
	"cellColors":     CellColors,
	"seed":           Seed,
	"mouseX":         MouseX,
	"mouseY":         MouseY,
	"highlightColor": HighlightColor,
}

// Canonical returns the declared property name for either spelling.
func Canonical(key string) (string, bool) {
	if name, ok := shortKeys[key]; ok {
		return name, true
	}
	for _, name := range InputProperties {
		if name == key {
			return name, true
		}
	}
	return "", false
}

// ShortKey is the camel-case key of a declared property name.
func ShortKey(name string) string {
	for k, n := range shortKeys {
		if n == name {
			return k
		}
	}
	return name
}

// Bag is a read-only view over raw style values keyed by property name.
type Bag interface {
	Get(name string) Value
}

// Map is the plain Bag implementation.
type Map map[string]Value

func (m Map) Get(name string) Value {
	return m[name]
}

// Set stores v under the canonical name of key. Unknown keys are rejected.
func (m Map) Set(key string, v Value) error {
	name, ok := Canonical(key)
	if !ok {
		return fmt.Errorf("unknown property %q", key)
	}
	m[name] = v
	return nil
}

// FromValues builds a Map from query or form values. Repeated keys become
// List values; unknown keys are ignored.
func FromValues(values url.Values) Map {
	m := Map{}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		vs := values[k]
		name, ok := Canonical(k)
		if !ok || len(vs) == 0 {
			continue
		}
		if len(vs) == 1 {
			m[name] = StringValue(vs[0])
		} else {
			m[name] = ListValue(vs...)
		}
	}
	return m
}

// FromTOML converts a decoded TOML table. Numbers stay typed, strings stay
// unparsed and arrays become List values.
func FromTOML(table map[string]any) (Map, error) {
	m := Map{}
	for k, raw := range table {
		name, ok := Canonical(k)
		if !ok {
			return nil, fmt.Errorf("unknown property %q", k)
		}
		switch v := raw.(type) {
		case int64:
			m[name] = NumberValue(float64(v))
		case int:
			m[name] = NumberValue(float64(v))
		case float64:
			m[name] = NumberValue(v)
		case string:
			m[name] = StringValue(v)
		case []any:
			entries := make([]string, 0, len(v))
			for _, e := range v {
				s, ok := e.(string)
				if !ok {
					return nil, fmt.Errorf("property %q: array entries must be strings, got %T", k, e)
				}
				entries = append(entries, s)
			}
			m[name] = ListValue(entries...)
		case []string:
			m[name] = ListValue(v...)
		default:
			return nil, fmt.Errorf("property %q: unsupported value type %T", k, raw)
		}
	}
	return m, nil
}

// Overlay returns a Bag in which the first non-empty value among bags wins.
func Overlay(bags ...Bag) Bag {
	return overlay(bags)
}

type overlay []Bag

func (o overlay) Get(name string) Value {
	for _, b := range o {
		if b == nil {
			continue
		}
		if v := b.Get(name); !v.Empty() {
			return v
		}
	}
	return Value{}
}
