package render

import (
	"github.com/younwookim/tilebound/internal/domain/level"
	"github.com/younwookim/tilebound/internal/ecs"
)

// Camera is the top-left corner of the viewport in world units
type Camera struct {
	X, Y         float64
	ViewW, ViewH float64
}

// NewCamera creates a camera with a viewW x viewH viewport
func NewCamera(viewW, viewH float64) *Camera {
	return &Camera{ViewW: viewW, ViewH: viewH}
}

// View returns the visible world rectangle
func (c *Camera) View() ecs.Rect {
	return ecs.Rect{X: c.X, Y: c.Y, W: c.ViewW, H: c.ViewH}
}

// ToScreen translates a world rect into screen space
func (c *Camera) ToScreen(r ecs.Rect) ecs.Rect {
	return r.Translate(-c.X, -c.Y)
}

// Follow centers the camera on the first CameraTarget and clamps it to the
// bounds of the active levels. It is a no-op without a target.
func (c *Camera) Follow(w *ecs.World) {
	ids := ecs.Query1[ecs.CameraTarget](w)
	if len(ids) == 0 {
		return
	}
	target, ok := entityBounds(w, ids[0])
	if !ok {
		return
	}

	c.X = target.CenterX() - c.ViewW/2
	c.Y = target.CenterY() - c.ViewH/2

	if bounds, ok := LevelBounds(w); ok {
		c.X = clampAxis(c.X, bounds.X, bounds.W, c.ViewW)
		c.Y = clampAxis(c.Y, bounds.Y, bounds.H, c.ViewH)
	}
}

// clampAxis keeps [v, v+view) inside [lo, lo+span). A view wider than the
// span pins to lo.
func clampAxis(v, lo, span, view float64) float64 {
	if view >= span {
		return lo
	}
	return min(max(v, lo), lo+span-view)
}

// LevelBounds returns the union of every active level grid
func LevelBounds(w *ecs.World) (ecs.Rect, bool) {
	var out ecs.Rect
	found := false
	for _, id := range ecs.Query1[ecs.LevelGrid](w) {
		grid, _ := ecs.TryGet[ecs.LevelGrid](w, id)
		if !grid.Active || grid.Level == nil {
			continue
		}
		r := levelRect(grid.Level)
		if !found {
			out, found = r, true
			continue
		}
		out = out.Union(r)
	}
	return out, found
}

func levelRect(l *level.Level) ecs.Rect {
	return ecs.Rect{
		X: l.X,
		Y: l.Y,
		W: float64(l.Cols() * level.TileSize),
		H: float64(l.Rows() * level.TileSize),
	}
}

// entityBounds prefers the collider box and falls back to the shape
func entityBounds(w *ecs.World, id ecs.EntityID) (ecs.Rect, bool) {
	pos, ok := ecs.TryGet[ecs.Position](w, id)
	if !ok {
		return ecs.Rect{}, false
	}
	if col, ok := ecs.TryGet[ecs.Collider](w, id); ok {
		return col.Bounds(pos), true
	}
	if shape, ok := ecs.TryGet[ecs.Shape](w, id); ok {
		return ecs.Rect{X: pos.X, Y: pos.Y, W: shape.W, H: shape.H}, true
	}
	return ecs.Rect{X: pos.X, Y: pos.Y}, true
}
