// Package render draws the simulation world onto a backend-neutral canvas.
package render

import (
	"image/color"

	"github.com/younwookim/tilebound/internal/application/system"
	"github.com/younwookim/tilebound/internal/ecs"
)

// Canvas is a drawing target in screen coordinates
type Canvas interface {
	FillRect(x, y, w, h float64, c color.RGBA)
	StrokeRect(x, y, w, h float64, c color.RGBA)
	Text(s string, x, y int)
}

// DrawSystem reads the world and draws one frame. It must not mutate the world.
type DrawSystem interface {
	Draw(w *ecs.World, contacts map[ecs.EntityID]system.Contacts, c Canvas)
}
