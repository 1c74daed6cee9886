package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/coverage.report/internal/colormap"
	"github.com/banshee-data/coverage.report/internal/grid"
	"github.com/banshee-data/coverage.report/internal/httputil"
	"github.com/banshee-data/coverage.report/internal/sim"
)

// RequestParams is the estimate request body.
type RequestParams struct {
	// Mask marks cells forbidden for placement (true = occupied).
	Mask grid.Grid[bool] `json:"mask"`
	// Rectangles to place, in order. Dimensions must be positive.
	Rectangles []grid.Rect `json:"rectangles"`
}

// ResponseMessage is the estimate response body. Both grids have the
// shape of the request mask; probabilities are colored with Viridis and
// entropy with Magma.
type ResponseMessage struct {
	RunID         string                   `json:"run_id"`
	Probabilities grid.Grid[colormap.Cell] `json:"probabilities"`
	Entropy       grid.Grid[colormap.Cell] `json:"entropy"`
}

// validateParams applies the boundary policy: the mask must stay within
// the configured caps and every rectangle needs positive dimensions.
func (s *Server) validateParams(params *RequestParams) error {
	if params.Mask.Rows() > s.maxRows || params.Mask.Cols() > s.maxCols {
		return fmt.Errorf("grid is %dx%d, maximum is %dx%d",
			params.Mask.Rows(), params.Mask.Cols(), s.maxRows, s.maxCols)
	}
	for i, r := range params.Rectangles {
		if r.Width < 1 || r.Height < 1 {
			return fmt.Errorf("rectangle %d is %dx%d, dimensions must be positive", i, r.Width, r.Height)
		}
	}
	return nil
}

// estimate runs the simulation for params and builds the colored
// response grids. Shared by the JSON endpoint and the debug chart page.
func (s *Server) estimate(params *RequestParams) (probs, entropy grid.Grid[float64]) {
	probs = s.est.Probabilities(params.Mask, params.Rectangles)
	return probs, sim.Entropy(probs)
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
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

	runID := uuid.NewString()
	start := time.Now()
	probs, entropy := s.estimate(&params)
	log.Printf("estimate run %s: %dx%d mask, %d rectangles, %v",
		runID, params.Mask.Rows(), params.Mask.Cols(), len(params.Rectangles),
		time.Since(start).Round(time.Millisecond))

	w.Header().Set("X-Run-Id", runID)
	httputil.WriteJSONOK(w, ResponseMessage{
		RunID:         runID,
		Probabilities: colormap.PairGrid(probs, colormap.Viridis),
		Entropy:       colormap.PairGrid(entropy, colormap.Magma),
	})
}
