package ecs

// Rect is an axis-aligned rectangle in world units
type Rect struct {
	X, Y, W, H float64
}

// Left returns the minimum X edge
func (r Rect) Left() float64 { return r.X }

// Right returns the maximum X edge
func (r Rect) Right() float64 { return r.X + r.W }

// Top returns the minimum Y edge (Y grows downward)
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the maximum Y edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Empty reports whether the rect has no area
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Intersects reports strict overlap; rects that only share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.Left() < o.Right() && r.Right() > o.Left() &&
		r.Top() < o.Bottom() && r.Bottom() > o.Top()
}

// Translate returns the rect moved by (dx, dy)
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Union returns the smallest rect containing both
func (r Rect) Union(o Rect) Rect {
	left := min(r.Left(), o.Left())
	top := min(r.Top(), o.Top())
	right := max(r.Right(), o.Right())
	bottom := max(r.Bottom(), o.Bottom())
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}
