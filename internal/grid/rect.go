package grid

// Rect is an oriented width x height rectangle. Dimensions must be at
// least 1 for anything handed to the placer; the boundary enforces that.
type Rect struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns width times height.
func (r Rect) Area() int { return r.Width * r.Height }

// Transpose swaps width and height in place, rotating the rectangle by
// 90 degrees. Applying it twice restores the original orientation.
func (r *Rect) Transpose() {
	r.Width, r.Height = r.Height, r.Width
}
