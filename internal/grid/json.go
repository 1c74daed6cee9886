package grid

import (
	"encoding/json"
	"fmt"
)

// Wire shape for grids: {"rows": R, "cols": C, "data": [[..C..] x R]}
// with data row-major (outer index is the row).
type gridJSON[T comparable] struct {
	Rows int   `json:"rows"`
	Cols int   `json:"cols"`
	Data [][]T `json:"data"`
}

// MarshalJSON encodes the grid in its nested wire shape.
func (g Grid[T]) MarshalJSON() ([]byte, error) {
	data := make([][]T, g.rows)
	for y := 0; y < g.rows; y++ {
		data[y] = g.cells[y*g.cols : (y+1)*g.cols]
	}
	return json.Marshal(gridJSON[T]{Rows: g.rows, Cols: g.cols, Data: data})
}

// UnmarshalJSON decodes the nested wire shape, rejecting negative
// dimensions, row-count mismatches, and ragged rows so the simulation
// core never sees a malformed grid.
func (g *Grid[T]) UnmarshalJSON(b []byte) error {
	var raw gridJSON[T]
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Rows < 0 || raw.Cols < 0 {
		return fmt.Errorf("grid: negative dimensions %dx%d", raw.Rows, raw.Cols)
	}
	if len(raw.Data) != raw.Rows {
		return fmt.Errorf("grid: got %d rows of data, want %d", len(raw.Data), raw.Rows)
	}
	cells := make([]T, 0, raw.Rows*raw.Cols)
	for y, row := range raw.Data {
		if len(row) != raw.Cols {
			return fmt.Errorf("grid: row %d has %d columns, want %d", y, len(row), raw.Cols)
		}
		cells = append(cells, row...)
	}
	g.rows, g.cols, g.cells = raw.Rows, raw.Cols, cells
	return nil
}
