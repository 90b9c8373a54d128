package system

import (
	"github.com/younwookim/tilebound/internal/domain/level"
	"github.com/younwookim/tilebound/internal/ecs"
)

// TileCache is the flat list of static tile rectangles for the current tick.
// It is regenerated from every active level grid at tick start.
type TileCache struct {
	rects []ecs.Rect
}

// Rebuild regenerates the rectangles in level creation order, each grid row-major
func (c *TileCache) Rebuild(w *ecs.World) {
	c.rects = c.rects[:0]
	for _, id := range ecs.Query1[ecs.LevelGrid](w) {
		grid, _ := ecs.TryGet[ecs.LevelGrid](w, id)
		if !grid.Active || grid.Level == nil {
			continue
		}
		c.rects = appendLevelRects(c.rects, grid.Level)
	}
}

func appendLevelRects(rects []ecs.Rect, lvl *level.Level) []ecs.Rect {
	for row := 0; row < lvl.Rows(); row++ {
		for col := 0; col < len(lvl.Tiles[row]); col++ {
			if !lvl.Solid(col, row) {
				continue
			}
			x, y := lvl.CellOrigin(col, row)
			rects = append(rects, ecs.Rect{X: x, Y: y, W: level.TileSize, H: level.TileSize})
		}
	}
	return rects
}

// Rects returns the cached rectangles. Callers must not modify the slice.
func (c *TileCache) Rects() []ecs.Rect {
	return c.rects
}

// Len returns the number of solid tiles
func (c *TileCache) Len() int {
	return len(c.rects)
}

// AnyIntersects reports whether r overlaps any solid tile
func (c *TileCache) AnyIntersects(r ecs.Rect) bool {
	for _, t := range c.rects {
		if r.Intersects(t) {
			return true
		}
	}
	return false
}
