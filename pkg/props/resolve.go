package props

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/0x0FACED/go-voronoi-paint/pkg/colors"
	"github.com/0x0FACED/go-voronoi-paint/pkg/logger"
)

var (
	ErrMalformed    = errors.New("malformed value")
	ErrOutOfRange   = errors.New("value out of range")
	ErrIncompatible = errors.New("incompatible value shape")
)

const maxMargin = 50

// Resolve turns the raw bag into a Config. It never fails: a field that is
// absent takes its default, a field that is malformed is logged and takes its
// default, and the remaining fields are resolved independently.
func Resolve(bag Bag, log *logger.ZapLogger) Config {
	if log == nil {
		log = logger.Nop()
	}
	cfg := Defaults()
	if bag == nil {
		return cfg
	}

	field := func(name string, apply func(Value) error) {
		v := bag.Get(name)
		if v.Empty() {
			return
		}
		if err := apply(v); err != nil {
			log.Warn("[props] falling back to default",
				zap.String("property", name),
				zap.String("kind", v.Kind().String()),
				zap.String("raw", v.String()),
				zap.String("default", DefaultString(name)),
				zap.Error(err))
		}
	}

	field(NumberOfCells, func(v Value) error {
		if s, ok := scalar(v); ok && strings.EqualFold(strings.TrimSpace(s), "auto") {
			cfg.Cells = CellCount{Auto: true}
			return nil
		}
		n, err := intValue(v)
		if err != nil {
			return err
		}
		if n < 1 {
			return fmt.Errorf("%w: %d < 1", ErrOutOfRange, n)
		}
		if n > math.MaxInt32 {
			return fmt.Errorf("%w: %d", ErrOutOfRange, n)
		}
		cfg.Cells = CellCount{N: int(n)}
		return nil
	})

	field(Margin, func(v Value) error {
		f, err := floatValue(v)
		if err != nil {
			return err
		}
		cfg.Margin = math.Max(0, math.Min(maxMargin, f))
		return nil
	})

	field(LineColor, func(v Value) error {
		c, err := colorValue(v)
		if err != nil {
			return err
		}
		cfg.LineColor = c
		return nil
	})

	field(LineWidth, func(v Value) error {
		f, err := floatValue(v)
		if err != nil {
			return err
		}
		if f <= 0 {
			return fmt.Errorf("%w: line width must be > 0", ErrOutOfRange)
		}
		cfg.LineWidth = f
		return nil
	})

	field(DotColor, func(v Value) error {
		c, err := colorValue(v)
		if err != nil {
			return err
		}
		cfg.DotColor = c
		return nil
	})

	field(DotSize, func(v Value) error {
		f, err := floatValue(v)
		if err != nil {
			return err
		}
		if f < 0 {
			return fmt.Errorf("%w: dot size must be >= 0", ErrOutOfRange)
		}
		cfg.DotSize = f
		return nil
	})

	field(CellColors, func(v Value) error {
		palette, err := paletteValue(v, log)
		if err != nil {
			return err
		}
		cfg.CellColors = palette
		return nil
	})

	field(Seed, func(v Value) error {
		n, err := intValue(v)
		if err != nil {
			return err
		}
		// Same truncation as `seed | 0`.
		cfg.Seed = int32(n)
		return nil
	})

	field(MouseX, func(v Value) error {
		n, err := intValue(v)
		if err != nil {
			return err
		}
		cfg.MouseX = clampInt(n)
		return nil
	})

	field(MouseY, func(v Value) error {
		n, err := intValue(v)
		if err != nil {
			return err
		}
		cfg.MouseY = clampInt(n)
		return nil
	})

	field(HighlightColor, func(v Value) error {
		c, err := colorValue(v)
		if err != nil {
			return err
		}
		cfg.HighlightColor = c
		return nil
	})

	return cfg
}

// scalar returns the single string carried by v. A List contributes its
// first non-empty entry.
func scalar(v Value) (string, bool) {
	switch v.Kind() {
	case Unparsed:
		return v.str, true
	case List:
		for _, e := range v.list {
			if strings.TrimSpace(e) != "" {
				return e, true
			}
		}
	}
	return "", false
}

func trimUnit(s string) string {
	s = strings.TrimSpace(s)
	for _, unit := range []string{"px", "%"} {
		if t, ok := strings.CutSuffix(s, unit); ok {
			return strings.TrimSpace(t)
		}
	}
	return s
}

func floatValue(v Value) (float64, error) {
	var f float64
	if v.Kind() == Number {
		switch v.Unit() {
		case "", "px", "%", "percent":
		default:
			return 0, fmt.Errorf("%w: unit %q", ErrIncompatible, v.Unit())
		}
		f = v.num
	} else {
		s, ok := scalar(v)
		if !ok {
			return 0, fmt.Errorf("%w: not a number", ErrMalformed)
		}
		parsed, err := strconv.ParseFloat(trimUnit(s), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrMalformed, s)
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: not finite", ErrMalformed)
	}
	return f, nil
}

func intValue(v Value) (int64, error) {
	if v.Kind() != Number {
		if s, ok := scalar(v); ok {
			if n, err := strconv.ParseInt(trimUnit(s), 10, 64); err == nil {
				return n, nil
			}
		}
	}
	f, err := floatValue(v)
	if err != nil {
		return 0, err
	}
	if math.Abs(f) >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %g", ErrOutOfRange, f)
	}
	return int64(f), nil
}

func clampInt(n int64) int {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	if n < math.MinInt32 {
		return math.MinInt32
	}
	return int(n)
}

func colorValue(v Value) (string, error) {
	s, ok := scalar(v)
	if !ok {
		return "", fmt.Errorf("%w: %s value for a color", ErrIncompatible, v.Kind())
	}
	s = strings.TrimSpace(s)
	if !colors.Valid(s) {
		return "", fmt.Errorf("%w: %q is not a color", ErrMalformed, s)
	}
	return s, nil
}

// paletteValue splits a delimited string or gathers list entries. Entries that
// are not colours are dropped; an empty result is an error so the default
// palette is used.
func paletteValue(v Value, log *logger.ZapLogger) ([]string, error) {
	var raw []string
	switch v.Kind() {
	case Unparsed:
		raw = splitTopLevel(v.str)
	case List:
		raw = v.list
	default:
		return nil, fmt.Errorf("%w: %s cannot hold a list of colors, declare %s untyped", ErrIncompatible, v.Kind(), CellColors)
	}

	palette := make([]string, 0, len(raw))
	for _, e := range raw {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !colors.Valid(e) {
			log.Warn("[props] dropping cell color", zap.String("color", e))
			continue
		}
		palette = append(palette, e)
	}
	if len(palette) == 0 {
		return nil, fmt.Errorf("%w: no usable colors", ErrMalformed)
	}
	return palette, nil
}

// splitTopLevel splits s on commas that are not inside parentheses, so
// functional notations such as rgb(255,0,0) stay whole.
func splitTopLevel(s string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	return append(out, s[start:])
}
