// heatmap-plot runs the coverage estimator on a scenario file and
// renders the probability and entropy grids as PNG heatmaps, for
// offline inspection without the server.
//
// Usage:
//
//	heatmap-plot -input scenario.json -output plots/
//
// The scenario file has the same shape as the estimate request body:
// {"mask": {...}, "rectangles": [...]}.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/coverage.report/internal/colormap"
	"github.com/banshee-data/coverage.report/internal/grid"
	"github.com/banshee-data/coverage.report/internal/sim"
)

var (
	input       = flag.String("input", "", "Scenario JSON file (mask + rectangles)")
	output      = flag.String("output", "plots", "Output directory for PNGs")
	simulations = flag.Int("simulations", sim.DefaultSimulations, "Trial count")
	seed        = flag.Int64("seed", 0, "PRNG seed (0 = time-based)")
)

// scenario mirrors the estimate request body.
type scenario struct {
	Mask       grid.Grid[bool] `json:"mask"`
	Rectangles []grid.Rect     `json:"rectangles"`
}

func loadScenario(path string) (*scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	var sc scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	for i, r := range sc.Rectangles {
		if r.Width < 1 || r.Height < 1 {
			return nil, fmt.Errorf("rectangle %d is %dx%d, dimensions must be positive", i, r.Width, r.Height)
		}
	}
	return &sc, nil
}

// gridXYZ adapts a grid to gonum/plot's heatmap input. Plot rows grow
// upward, so row 0 of the grid is flipped to the top of the image.
type gridXYZ struct {
	g grid.Grid[float64]
}

func (d gridXYZ) Dims() (c, r int) { return d.g.Cols(), d.g.Rows() }
func (d gridXYZ) X(c int) float64  { return float64(c) }
func (d gridXYZ) Y(r int) float64  { return float64(r) }
func (d gridXYZ) Z(c, r int) float64 {
	return d.g.At(grid.Position{X: c, Y: d.g.Rows() - 1 - r})
}

// ramp is a fixed color list satisfying gonum/plot's palette.Palette.
type ramp []color.Color

func (r ramp) Colors() []color.Color { return r }

func savePNG(g grid.Grid[float64], m colormap.Map, title, file string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "col"
	p.Y.Label.Text = "row"

	hm := plotter.NewHeatMap(gridXYZ{g}, ramp(colormap.Palette(m, 256)))
	hm.Min, hm.Max = 0, 1
	p.Add(hm)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, file); err != nil {
		return fmt.Errorf("failed to save %s: %w", file, err)
	}
	return nil
}

func main() {
	flag.Parse()

	if *input == "" {
		log.Fatal("-input scenario file is required")
	}

	sc, err := loadScenario(*input)
	if err != nil {
		log.Fatalf("scenario: %v", err)
	}

	if err := os.MkdirAll(*output, 0755); err != nil {
		log.Fatalf("failed to create output dir: %v", err)
	}

	est := &sim.Estimator{Simulations: *simulations, Seed: *seed}
	probs := est.Probabilities(sc.Mask, sc.Rectangles)
	entropy := sim.Entropy(probs)

	probFile := filepath.Join(*output, "probabilities.png")
	if err := savePNG(probs, colormap.Viridis, "Coverage probability", probFile); err != nil {
		log.Fatal(err)
	}
	entFile := filepath.Join(*output, "entropy.png")
	if err := savePNG(entropy, colormap.Magma, "Coverage entropy", entFile); err != nil {
		log.Fatal(err)
	}

	log.Printf("wrote %s and %s", probFile, entFile)
}
