package cli

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x0FACED/go-voronoi-paint/pkg/props"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := New(&out, &errOut).Execute(context.Background(), args)
	return out.String(), errOut.String(), err
}

func decodeSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

// TestProperties lists every declared property with its default.
func TestProperties(t *testing.T) {
	out, _, err := run(t, "properties")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(props.InputProperties)+1)
	assert.Contains(t, lines[0], "PROPERTY")
	for i, name := range props.InputProperties {
		assert.Contains(t, lines[i+1], name)
		assert.Contains(t, lines[i+1], props.ShortKey(name))
	}
	assert.Contains(t, out, "123456")
}

// TestRender writes a PNG of the requested size.
func TestRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	_, logs, err := run(t, "render", "-o", path, "--width", "90", "--height", "60",
		"--set", "numberOfCells=auto", "--set", "dotColor=black")
	require.NoError(t, err)
	assert.Contains(t, logs, "frame written")

	w, h := decodeSize(t, path)
	assert.Equal(t, 90, w)
	assert.Equal(t, 60, h)
}

// TestRenderWithConfig takes the canvas and style from a config file.
func TestRenderWithConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "voronoi.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
[canvas]
width = 40
height = 30

[log]
level = "debug"

[style]
cellColors = ["red", "blue"]
`), 0o644))

	out := filepath.Join(dir, "frame.png")
	_, logs, err := run(t, "render", "-c", cfgPath, "-o", out)
	require.NoError(t, err)
	assert.Contains(t, logs, "frame painted")

	w, h := decodeSize(t, out)
	assert.Equal(t, 40, w)
	assert.Equal(t, 30, h)
}

// TestRenderBlankFrame still writes a file when the diagram cannot be computed.
func TestRenderBlankFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.png")
	_, logs, err := run(t, "render", "-o", path, "--width", "20", "--height", "20", "--set", "margin=50")
	require.NoError(t, err)
	assert.Contains(t, logs, "blank frame")
	_, statErr := os.Stat(path)
	require.NoError(t, statErr)
}

// TestRenderErrors reports bad flags instead of painting.
func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"set without value", []string{"--set", "seed"}},
		{"unknown property", []string{"--set", "colour=red"}},
		{"size out of range", []string{"--width", "5000"}},
		{"negative size", []string{"--height", "-1"}},
		{"missing directory", []string{"-o", filepath.Join(dir, "nope", "x.png")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"render", "-o", filepath.Join(dir, "x.png")}, tt.args...)
			_, _, err := run(t, args...)
			assert.Error(t, err)
		})
	}
}

// TestParseSets builds single values and lists from repeated keys.
func TestParseSets(t *testing.T) {
	m, err := parseSets([]string{"seed=7", "cellColors=red", "--voronoi-cell-colors=blue", "margin= 10 "})
	require.NoError(t, err)

	assert.Equal(t, props.StringValue("7"), m.Get(props.Seed))
	assert.Equal(t, props.ListValue("red", "blue"), m.Get(props.CellColors))
	assert.Equal(t, props.StringValue(" 10 "), m.Get(props.Margin))

	_, err = parseSets([]string{"=1"})
	assert.Error(t, err)
}
