package grid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	g := New(2, 3, 1.5)
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 3, g.Cols())
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, 1.5, g.At(Position{X: x, Y: y}))
		}
	}
}

func TestSetAt(t *testing.T) {
	t.Parallel()

	g := New(3, 3, false)
	g.Set(Position{X: 2, Y: 1}, true)
	assert.True(t, g.At(Position{X: 2, Y: 1}))
	assert.False(t, g.At(Position{X: 1, Y: 2}))
}

func TestAt_OutOfRangePanics(t *testing.T) {
	t.Parallel()

	g := New(2, 2, 0)
	assert.Panics(t, func() { g.At(Position{X: 2, Y: 0}) })
	assert.Panics(t, func() { g.At(Position{X: 0, Y: 2}) })
	assert.Panics(t, func() { g.At(Position{X: -1, Y: 0}) })
}

func TestClone_Independent(t *testing.T) {
	t.Parallel()

	g := New(2, 2, 0)
	c := g.Clone()
	c.Set(Position{X: 0, Y: 0}, 7)
	assert.Equal(t, 0, g.At(Position{X: 0, Y: 0}))
	assert.Equal(t, 7, c.At(Position{X: 0, Y: 0}))
}

func TestAll(t *testing.T) {
	t.Parallel()

	t.Run("uniform region", func(t *testing.T) {
		g := New(2, 2, true)
		assert.True(t, g.All(Position{}, Rect{Width: 2, Height: 2}, true))
	})

	t.Run("out of bounds is false, not an error", func(t *testing.T) {
		g := New(2, 2, true)
		assert.False(t, g.All(Position{X: 1, Y: 1}, Rect{Width: 2, Height: 2}, true))
		assert.False(t, g.All(Position{X: 0, Y: 0}, Rect{Width: 3, Height: 1}, true))
		assert.False(t, g.All(Position{X: 0, Y: 0}, Rect{Width: 1, Height: 3}, true))
	})

	t.Run("one mismatched cell", func(t *testing.T) {
		g := New(3, 3, false)
		g.Set(Position{X: 1, Y: 1}, true)
		assert.False(t, g.All(Position{}, Rect{Width: 2, Height: 2}, false))
		assert.True(t, g.All(Position{X: 1, Y: 2}, Rect{Width: 2, Height: 1}, false))
	})
}

func TestScale(t *testing.T) {
	t.Parallel()

	g := New(2, 2, 4.0)
	out := Scale(g, 0.5)
	assert.Equal(t, 2.0, out.At(Position{X: 1, Y: 1}))
	// input untouched
	assert.Equal(t, 4.0, g.At(Position{X: 1, Y: 1}))
}

func TestMap(t *testing.T) {
	t.Parallel()

	g := New(2, 2, 3)
	out := Map(g, func(v int) float64 { return float64(v) * 2 })
	assert.Equal(t, 2, out.Rows())
	assert.Equal(t, 6.0, out.At(Position{X: 0, Y: 1}))
}

func TestRect(t *testing.T) {
	t.Parallel()

	r := Rect{Width: 3, Height: 4}
	assert.Equal(t, 12, r.Area())

	r.Transpose()
	assert.Equal(t, Rect{Width: 4, Height: 3}, r)
	r.Transpose()
	assert.Equal(t, Rect{Width: 3, Height: 4}, r, "transpose must be an involution")
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	g := New(2, 3, false)
	g.Set(Position{X: 2, Y: 1}, true)

	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rows":2,"cols":3,"data":[[false,false,false],[false,false,true]]}`, string(data))

	var back Grid[bool]
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, g, back)
}

func TestUnmarshal_Rejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
	}{
		{"ragged rows", `{"rows":2,"cols":2,"data":[[true,false],[true]]}`},
		{"row count mismatch", `{"rows":3,"cols":2,"data":[[true,false],[true,false]]}`},
		{"negative dims", `{"rows":-1,"cols":2,"data":[]}`},
		{"missing data", `{"rows":1,"cols":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var g Grid[bool]
			assert.Error(t, json.Unmarshal([]byte(tc.in), &g))
		})
	}
}

func TestUnmarshal_EmptyGrid(t *testing.T) {
	t.Parallel()

	var g Grid[bool]
	require.NoError(t, json.Unmarshal([]byte(`{"rows":0,"cols":0,"data":[]}`), &g))
	assert.Equal(t, 0, g.Rows())
	assert.Equal(t, 0, g.Cols())
}
