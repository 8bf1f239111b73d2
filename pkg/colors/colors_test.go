package colors

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParse covers every accepted notation.
func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want color.Color
	}{
		{"#000", color.NRGBA{A: 255}},
		{"#66ccff", color.NRGBA{R: 0x66, G: 0xcc, B: 0xff, A: 255}},
		{"#66CCFF80", color.NRGBA{R: 0x66, G: 0xcc, B: 0xff, A: 0x80}},
		{"#f008", color.NRGBA{R: 255, A: 0x88}},
		{"yellow", color.RGBA{R: 255, G: 255, A: 255}},
		{"  Yellow ", color.RGBA{R: 255, G: 255, A: 255}},
		{"transparent", color.NRGBA{}},
		{"rgb(10, 20, 30)", color.NRGBA{R: 10, G: 20, B: 30, A: 255}},
		{"rgba(255,0,0,0.5)", color.NRGBA{R: 255, A: 128}},
		{"rgb(100%, 0%, 50%)", color.NRGBA{R: 255, B: 128, A: 255}},
	}

	for _, tc := range cases {
		got, err := Parse(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}

// TestParseInvalid makes sure malformed strings are rejected with ErrInvalidColor.
func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#ggg", "notacolor", "rgb(1,2)", "rgba(1,2,3)", "rgb(a,b,c)"} {
		_, err := Parse(in)
		require.ErrorIs(t, err, ErrInvalidColor, in)
		require.False(t, Valid(in), in)
	}
}

// TestHelpers checks IsTransparent.
func TestHelpers(t *testing.T) {
	require.True(t, IsTransparent(" Transparent"))
	require.False(t, IsTransparent("#000"))
}
