// Package colormap maps scalars in [0,1] to colors from sequential,
// perceptually uniform colormaps and pairs probability grids with their
// display colors for the heatmap frontend.
package colormap

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/banshee-data/coverage.report/internal/grid"
)

// Map names a supported colormap.
type Map string

const (
	// Viridis is used for probability grids.
	Viridis Map = "viridis"
	// Magma is used for entropy grids.
	Magma Map = "magma"
)

// Anchor stops for each map. Lookup interpolates between neighbouring
// stops in Lab space, which keeps the ramp perceptually even.
var stops = map[Map][]string{
	Viridis: {
		"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
		"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
	},
	Magma: {
		"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f",
		"#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf",
	},
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("colormap: bad hex stop %q: %v", s, err))
	}
	return c
}

var parsed = func() map[Map][]colorful.Color {
	m := make(map[Map][]colorful.Color, len(stops))
	for name, hexes := range stops {
		cs := make([]colorful.Color, len(hexes))
		for i, h := range hexes {
			cs[i] = mustHex(h)
		}
		m[name] = cs
	}
	return m
}()

// HexStops returns the anchor colors of m as hex strings, for chart
// visual-map ramps. Unknown maps fall back to Viridis.
func HexStops(m Map) []string {
	if s, ok := stops[m]; ok {
		return s
	}
	return stops[Viridis]
}

// Lookup returns the 8-bit RGB color for scalar v under colormap m.
// Inputs outside [0,1] are clamped. Unknown maps fall back to Viridis.
func Lookup(v float64, m Map) RGB {
	cs, ok := parsed[m]
	if !ok {
		cs = parsed[Viridis]
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	t := v * float64(len(cs)-1)
	i := int(t)
	if i >= len(cs)-1 {
		r, g, b := cs[len(cs)-1].RGB255()
		return RGB{R: r, G: g, B: b}
	}
	c := cs[i].BlendLab(cs[i+1], t-float64(i)).Clamped()
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}
}

// PairGrid pairs every cell of g with its color under m, producing the
// value-color grid the estimate response is built from.
func PairGrid(g grid.Grid[float64], m Map) grid.Grid[Cell] {
	return grid.Map(g, func(v float64) Cell {
		return Cell{Value: v, Color: Lookup(v, m)}
	})
}

// Palette returns an n-step color ramp for m, suitable for gonum/plot
// heatmap palettes.
func Palette(m Map, n int) []color.Color {
	if n < 2 {
		n = 2
	}
	out := make([]color.Color, n)
	for i := range out {
		c := Lookup(float64(i)/float64(n-1), m)
		out[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	}
	return out
}
