package colormap

import (
	"encoding/json"
	"fmt"
)

// RGB is an 8-bit-per-channel color, serialized as a three-integer
// array [r, g, b].
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// MarshalJSON encodes the color as [r, g, b].
func (c RGB) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]uint8{c.R, c.G, c.B})
}

// UnmarshalJSON decodes a [r, g, b] array.
func (c *RGB) UnmarshalJSON(b []byte) error {
	var arr [3]uint8
	if err := json.Unmarshal(b, &arr); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	c.R, c.G, c.B = arr[0], arr[1], arr[2]
	return nil
}

// Cell is a grid value paired with its display color. It is serialized
// as a two-element array [value, [r, g, b]], the shape the frontend
// renders from.
type Cell struct {
	Value float64
	Color RGB
}

// MarshalJSON encodes the cell as [value, [r, g, b]].
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{c.Value, c.Color})
}

// UnmarshalJSON decodes a [value, [r, g, b]] pair.
func (c *Cell) UnmarshalJSON(b []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("cell: %w", err)
	}
	if err := json.Unmarshal(raw[0], &c.Value); err != nil {
		return fmt.Errorf("cell value: %w", err)
	}
	if err := json.Unmarshal(raw[1], &c.Color); err != nil {
		return fmt.Errorf("cell color: %w", err)
	}
	return nil
}
