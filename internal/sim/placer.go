// Package sim implements the Monte-Carlo coverage estimator: randomized
// non-overlapping placement of rectangles on a masked grid, parallel
// repetition into per-cell coverage frequencies, and the binary-entropy
// transform of the resulting probability grid.
package sim

import (
	"math/rand"

	"github.com/banshee-data/coverage.report/internal/grid"
)

// freeAnchors returns every unoccupied cell of mask in row-major order.
func freeAnchors(mask grid.Grid[bool]) []grid.Position {
	anchors := make([]grid.Position, 0, mask.Rows()*mask.Cols())
	for y := 0; y < mask.Rows(); y++ {
		for x := 0; x < mask.Cols(); x++ {
			p := grid.Position{X: x, Y: y}
			if !mask.At(p) {
				anchors = append(anchors, p)
			}
		}
	}
	return anchors
}

// fitsEither reports whether r fits inside a rows x cols grid when
// anchored at p in at least one of its two orientations. Occupancy is
// not considered here, only the grid boundary.
func fitsEither(p grid.Position, r grid.Rect, rows, cols int) bool {
	return (p.X+r.Width <= cols && p.Y+r.Height <= rows) ||
		(p.X+r.Height <= cols && p.Y+r.Width <= rows)
}

// placeAll runs a single placement trial: it attempts to place every
// rectangle of rects, in order, on the free cells of mask. Anchors are
// examined in a uniformly shuffled order; at each anchor the current
// orientation is tried first, then the transposed one. On success it
// returns a label grid where 0 is uncovered and k>0 marks cells covered
// by the k-th rectangle. The second return is false when any rectangle
// could not be placed.
//
// placeAll owns its arguments: mask is mutated as rectangles are
// committed and rects is mutated by transposition. Callers must pass
// clones.
func placeAll(mask grid.Grid[bool], rects []grid.Rect, rng *rand.Rand) (grid.Grid[int], bool) {
	labels := grid.New(mask.Rows(), mask.Cols(), 0)

	for i := range rects {
		r := &rects[i]

		anchors := freeAnchors(mask)
		candidates := anchors[:0]
		for _, p := range anchors {
			if fitsEither(p, *r, mask.Rows(), mask.Cols()) {
				candidates = append(candidates, p)
			}
		}
		if len(candidates) == 0 {
			return grid.Grid[int]{}, false
		}
		rng.Shuffle(len(candidates), func(a, b int) {
			candidates[a], candidates[b] = candidates[b], candidates[a]
		})

		placed := false
		for _, p := range candidates {
			for orientation := 0; orientation < 2; orientation++ {
				if mask.All(p, *r, false) {
					commit(&mask, &labels, p, *r, i+1)
					placed = true
					break
				}
				r.Transpose()
			}
			if placed {
				break
			}
		}
		if !placed {
			return grid.Grid[int]{}, false
		}
	}
	return labels, true
}

// commit marks the cells of r anchored at p as occupied in mask and
// writes label into the same cells of labels.
func commit(mask *grid.Grid[bool], labels *grid.Grid[int], p grid.Position, r grid.Rect, label int) {
	for y := p.Y; y < p.Y+r.Height; y++ {
		for x := p.X; x < p.X+r.Width; x++ {
			pos := grid.Position{X: x, Y: y}
			mask.Set(pos, true)
			labels.Set(pos, label)
		}
	}
}
