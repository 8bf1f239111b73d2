// Package colors parses the CSS colour strings accepted by the style properties.
package colors

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

const Transparent = "transparent"

var ErrInvalidColor = errors.New("invalid color")

// Parse understands "transparent", the CSS named colours, #rgb, #rgba,
// #rrggbb, #rrggbbaa, rgb(r, g, b) and rgba(r, g, b, a).
func Parse(s string) (color.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return nil, fmt.Errorf("%w: empty", ErrInvalidColor)
	case v == Transparent:
		return color.NRGBA{}, nil
	case strings.HasPrefix(v, "#"):
		return parseHex(v[1:], s)
	case strings.HasPrefix(v, "rgba(") && strings.HasSuffix(v, ")"):
		return parseFunc(v[5:len(v)-1], 4, s)
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		return parseFunc(v[4:len(v)-1], 3, s)
	}

	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// Valid reports whether Parse accepts s.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// IsTransparent reports whether s is the "transparent" keyword.
func IsTransparent(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), Transparent)
}

func parseHex(h, orig string) (color.Color, error) {
	digits := make([]uint8, len(h))
	for i := 0; i < len(h); i++ {
		d, ok := hexDigit(h[i])
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
		}
		digits[i] = d
	}

	c := color.NRGBA{A: 0xff}
	switch len(digits) {
	case 3, 4:
		c.R, c.G, c.B = digits[0]*17, digits[1]*17, digits[2]*17
		if len(digits) == 4 {
			c.A = digits[3] * 17
		}
	case 6, 8:
		c.R = digits[0]<<4 | digits[1]
		c.G = digits[2]<<4 | digits[3]
		c.B = digits[4]<<4 | digits[5]
		if len(digits) == 8 {
			c.A = digits[6]<<4 | digits[7]
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	return c, nil
}

func hexDigit(b byte) (uint8, bool) {
	switch {
	case '0' <= b && b <= '9':
		return b - '0', true
	case 'a' <= b && b <= 'f':
		return b - 'a' + 10, true
	}
	return 0, false
}

func parseFunc(args string, n int, orig string) (color.Color, error) {
	parts := strings.Split(args, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := channel(parts[i], 255)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
		}
		ch[i] = v
	}

	c := color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: 0xff}
	if n == 4 {
		a, err := channel(parts[3], 1)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
		}
		c.A = a
	}
	return c, nil
}

// channel parses a number or percentage where max maps to 255.
func channel(s string, max float64) (uint8, error) {
	s = strings.TrimSpace(s)
	if p, ok := strings.CutSuffix(s, "%"); ok {
		s = p
		max = 100
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidColor
	}
	f = math.Max(0, math.Min(max, f))
	return uint8(math.Round(f / max * 255)), nil
}
