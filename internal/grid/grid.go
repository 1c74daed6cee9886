// Package grid provides the dense 2D cell grids the placement simulation
// runs on: a generic row-major Grid, the Position addressing scheme, and
// the Rect shape being placed.
package grid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Position addresses a single cell. X is the column, Y is the row.
type Position struct {
	X int
	Y int
}

// Grid is a dense rows x cols array of cells stored row-major.
// The zero value is an empty 0x0 grid.
type Grid[T comparable] struct {
	rows  int
	cols  int
	cells []T
}

// New returns a rows x cols grid with every cell set to v.
func New[T comparable](rows, cols int, v T) Grid[T] {
	cells := make([]T, rows*cols)
	for i := range cells {
		cells[i] = v
	}
	return Grid[T]{rows: rows, cols: cols, cells: cells}
}

// Rows returns the number of rows.
func (g Grid[T]) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g Grid[T]) Cols() int { return g.cols }

func (g Grid[T]) index(p Position) int {
	if p.X < 0 || p.X >= g.cols || p.Y < 0 || p.Y >= g.rows {
		panic(fmt.Sprintf("grid: position (%d,%d) out of range for %dx%d grid", p.X, p.Y, g.rows, g.cols))
	}
	return p.Y*g.cols + p.X
}

// At returns the cell at p. Out-of-range positions are programming
// errors and panic.
func (g Grid[T]) At(p Position) T {
	return g.cells[g.index(p)]
}

// Set writes v to the cell at p.
func (g *Grid[T]) Set(p Position, v T) {
	g.cells[g.index(p)] = v
}

// Clone returns a deep copy. Grids share their backing slice when copied
// by value, so concurrent trials must clone before mutating.
func (g Grid[T]) Clone() Grid[T] {
	cells := make([]T, len(g.cells))
	copy(cells, g.cells)
	return Grid[T]{rows: g.rows, cols: g.cols, cells: cells}
}

// All reports whether the sub-rectangle anchored at p with r's current
// orientation lies fully inside the grid and every cell in it equals v.
// A sub-rectangle that would exceed the grid on either axis yields false.
func (g Grid[T]) All(p Position, r Rect, v T) bool {
	if p.X+r.Width > g.cols || p.Y+r.Height > g.rows {
		return false
	}
	for y := p.Y; y < p.Y+r.Height; y++ {
		for x := p.X; x < p.X+r.Width; x++ {
			if g.cells[y*g.cols+x] != v {
				return false
			}
		}
	}
	return true
}

// Scale returns a copy of g with every cell multiplied by s. Dimensions
// are preserved.
func Scale(g Grid[float64], s float64) Grid[float64] {
	out := g.Clone()
	floats.Scale(s, out.cells)
	return out
}

// Map returns a grid of the same shape with f applied to every cell.
func Map[T, U comparable](g Grid[T], f func(T) U) Grid[U] {
	cells := make([]U, len(g.cells))
	for i, v := range g.cells {
		cells[i] = f(v)
	}
	return Grid[U]{rows: g.rows, cols: g.cols, cells: cells}
}
