package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/coverage.report/internal/colormap"
	"github.com/banshee-data/coverage.report/internal/grid"
	"github.com/banshee-data/coverage.report/internal/httputil"
)

const echartsAssetsPrefix = "https://go-echarts.github.io/go-echarts-assets/assets/"

// handleHeatmapChart renders the probability and entropy grids for a
// posted scenario as an HTML page with two ECharts heatmaps. This is a
// debugging-only endpoint for eyeballing results without the frontend.
func (s *Server) handleHeatmapChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}

	var params RequestParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		httputil.BadRequest(w, fmt.Sprintf("malformed request: %v", err))
		return
	}
	if err := s.validateParams(&params); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	probs, entropy := s.estimate(&params)

	page := components.NewPage()
	page.SetAssetsHost(echartsAssetsPrefix)
	page.AddCharts(
		heatmapChart("Coverage probability", probs, colormap.Viridis),
		heatmapChart("Coverage entropy", entropy, colormap.Magma),
	)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// heatmapChart builds one cols x rows heatmap of g, colored with the
// anchor ramp of m. Row 0 is drawn at the top to match the mask layout.
func heatmapChart(title string, g grid.Grid[float64], m colormap.Map) *charts.HeatMap {
	xLabels := make([]string, g.Cols())
	for x := range xLabels {
		xLabels[x] = strconv.Itoa(x)
	}
	yLabels := make([]string, g.Rows())
	data := make([]opts.HeatMapData, 0, g.Rows()*g.Cols())
	for y := 0; y < g.Rows(); y++ {
		// ECharts draws category axes bottom-up; flip so row 0 is on top.
		yLabels[g.Rows()-1-y] = strconv.Itoa(y)
		for x := 0; x < g.Cols(); x++ {
			v := g.At(grid.Position{X: x, Y: y})
			data = append(data, opts.HeatMapData{Value: [3]interface{}{x, g.Rows() - 1 - y, v}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Theme: "dark", Width: "600px", Height: "600px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("%dx%d grid", g.Rows(), g.Cols())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: xLabels, Name: "col"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: yLabels, Name: "row"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        1,
			InRange:    &opts.VisualMapInRange{Color: colormap.HexStops(m)},
		}),
	)
	hm.AddSeries(title, data)
	return hm
}
