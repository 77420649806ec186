package dom

// Rect is an element's bounding rectangle in document coordinates.
// Width and Height may be negative; the edge accessors normalize.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewRect creates a rect from position and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Top returns the top edge (y for positive height, y + height for negative).
func (r Rect) Top() float64 {
	if r.Height < 0 {
		return r.Y + r.Height
	}
	return r.Y
}

// Bottom returns the bottom edge (y + height for positive height, y for negative).
func (r Rect) Bottom() float64 {
	if r.Height < 0 {
		return r.Y
	}
	return r.Y + r.Height
}

// Left returns the left edge (x for positive width, x + width for negative).
func (r Rect) Left() float64 {
	if r.Width < 0 {
		return r.X + r.Width
	}
	return r.X
}

// Right returns the right edge (x + width for positive width, x for negative).
func (r Rect) Right() float64 {
	if r.Width < 0 {
		return r.X
	}
	return r.X + r.Width
}

// Contains returns true if the point is inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left() && x < r.Right() && y >= r.Top() && y < r.Bottom()
}

// Intersects returns true if the two rects overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.Left() < other.Right() &&
		r.Right() > other.Left() &&
		r.Top() < other.Bottom() &&
		r.Bottom() > other.Top()
}
