package render

import (
	"fmt"
	"image/color"
	"maps"
	"slices"

	"github.com/younwookim/tilebound/internal/application/system"
	"github.com/younwookim/tilebound/internal/domain/level"
	"github.com/younwookim/tilebound/internal/ecs"
)

// Colors for rendering
var (
	ColorBG        = color.RGBA{26, 26, 46, 255}
	colorTile      = color.RGBA{80, 80, 100, 255}
	colorCollider  = color.RGBA{0, 255, 255, 255}
	colorTileEdge  = color.RGBA{255, 255, 255, 96}
	colorContact   = color.RGBA{255, 255, 0, 255}
	colorHitbox    = color.RGBA{255, 0, 0, 128}
	colorWallProbe = color.RGBA{255, 0, 255, 255}
	colorEdgeProbe = color.RGBA{0, 128, 255, 255}
)

const (
	contactBar = 2.0
	lineHeight = 16
)

// Renderer draws tiles, shapes and the enabled debug overlays through a Camera
type Renderer struct {
	Camera   *Camera
	overlays Overlay
	probes   system.PatrolSettings
}

var _ DrawSystem = (*Renderer)(nil)

// NewRenderer creates a renderer. probes sizes the patrol probe overlay.
func NewRenderer(cam *Camera, probes system.PatrolSettings) *Renderer {
	return &Renderer{Camera: cam, probes: probes}
}

// Toggle flips the given overlay layers
func (r *Renderer) Toggle(o Overlay) {
	r.overlays ^= o
}

// Enabled reports whether every layer in o is on
func (r *Renderer) Enabled(o Overlay) bool {
	return r.overlays&o == o
}

// Overlays returns the enabled layers
func (r *Renderer) Overlays() Overlay {
	return r.overlays
}

// Draw implements DrawSystem
func (r *Renderer) Draw(w *ecs.World, contacts map[ecs.EntityID]system.Contacts, c Canvas) {
	r.drawTiles(w, c)
	r.drawShapes(w, c)

	if r.Enabled(OverlayColliders) {
		r.drawColliders(w, c)
	}
	if r.Enabled(OverlayContacts) {
		r.drawContacts(w, contacts, c)
	}
	if r.Enabled(OverlayHitboxes) {
		r.drawHitboxes(w, c)
	}
	if r.Enabled(OverlayProbes) {
		r.drawProbes(w, c)
	}
	if r.Enabled(OverlayInfo) {
		r.drawInfo(w, c)
	}
}

func (r *Renderer) fill(c Canvas, world ecs.Rect, col color.RGBA) {
	if !world.Intersects(r.Camera.View()) {
		return
	}
	s := r.Camera.ToScreen(world)
	c.FillRect(s.X, s.Y, s.W, s.H, col)
}

func (r *Renderer) stroke(c Canvas, world ecs.Rect, col color.RGBA) {
	if !world.Intersects(r.Camera.View()) {
		return
	}
	s := r.Camera.ToScreen(world)
	c.StrokeRect(s.X, s.Y, s.W, s.H, col)
}

func (r *Renderer) drawTiles(w *ecs.World, c Canvas) {
	edges := r.Enabled(OverlayTiles)
	for _, id := range ecs.Query1[ecs.LevelGrid](w) {
		grid, _ := ecs.TryGet[ecs.LevelGrid](w, id)
		if !grid.Active || grid.Level == nil {
			continue
		}
		lvl := grid.Level
		for row := range lvl.Rows() {
			for col := range lvl.Cols() {
				if !lvl.Solid(col, row) {
					continue
				}
				x, y := lvl.CellOrigin(col, row)
				cell := ecs.Rect{X: x, Y: y, W: level.TileSize, H: level.TileSize}
				r.fill(c, cell, colorTile)
				if edges {
					r.stroke(c, cell, colorTileEdge)
				}
			}
		}
	}
}

// drawShapes draws every Shape in entity order. Flashing entities in their
// hidden phase are skipped. Circles are drawn as their bounding box.
func (r *Renderer) drawShapes(w *ecs.World, c Canvas) {
	for _, id := range ecs.Query2[ecs.Position, ecs.Shape](w) {
		if fx, ok := ecs.TryGet[ecs.FlashEffect](w, id); ok && !fx.Visible {
			continue
		}
		pos, _ := ecs.TryGet[ecs.Position](w, id)
		shape, _ := ecs.TryGet[ecs.Shape](w, id)
		r.fill(c, ecs.Rect{X: pos.X, Y: pos.Y, W: shape.W, H: shape.H}, shape.Color)
	}
}

func (r *Renderer) drawColliders(w *ecs.World, c Canvas) {
	for _, id := range ecs.Query2[ecs.Position, ecs.Collider](w) {
		pos, _ := ecs.TryGet[ecs.Position](w, id)
		col, _ := ecs.TryGet[ecs.Collider](w, id)
		r.stroke(c, col.Bounds(pos), colorCollider)
	}
}

// drawContacts marks each touched side of an entity's collider with a bar
func (r *Renderer) drawContacts(w *ecs.World, contacts map[ecs.EntityID]system.Contacts, c Canvas) {
	for _, id := range slices.Sorted(maps.Keys(contacts)) {
		b, ok := entityBounds(w, id)
		if !ok {
			continue
		}
		ct := contacts[id]
		if ct.Ground {
			r.fill(c, ecs.Rect{X: b.X, Y: b.Bottom() - contactBar, W: b.W, H: contactBar}, colorContact)
		}
		if ct.Ceiling {
			r.fill(c, ecs.Rect{X: b.X, Y: b.Y, W: b.W, H: contactBar}, colorContact)
		}
		if ct.Left {
			r.fill(c, ecs.Rect{X: b.X, Y: b.Y, W: contactBar, H: b.H}, colorContact)
		}
		if ct.Right {
			r.fill(c, ecs.Rect{X: b.Right() - contactBar, Y: b.Y, W: contactBar, H: b.H}, colorContact)
		}
	}
}

func (r *Renderer) drawHitboxes(w *ecs.World, c Canvas) {
	for _, id := range ecs.Query1[ecs.Attack](w) {
		atk, _ := ecs.TryGet[ecs.Attack](w, id)
		if !atk.Active() {
			continue
		}
		b, ok := entityBounds(w, id)
		if !ok {
			continue
		}
		r.fill(c, atk.Hitbox(b), colorHitbox)
	}
}

func (r *Renderer) drawProbes(w *ecs.World, c Canvas) {
	for _, id := range ecs.Query1[ecs.Patrol](w) {
		p, _ := ecs.TryGet[ecs.Patrol](w, id)
		b, ok := entityBounds(w, id)
		if !ok {
			continue
		}
		r.stroke(c, r.probes.WallProbe(b, p.FacingRight), colorWallProbe)
		if p.AvoidFalling {
			r.stroke(c, r.probes.EdgeProbe(b, p.FacingRight), colorEdgeProbe)
		}
	}
}

// InfoLines describes the world and the camera target for the info overlay
func InfoLines(w *ecs.World) []string {
	lines := []string{fmt.Sprintf("entities: %d", w.EntityCount())}

	ids := ecs.Query1[ecs.CameraTarget](w)
	if len(ids) == 0 {
		return lines
	}
	id := ids[0]
	if pos, ok := ecs.TryGet[ecs.Position](w, id); ok {
		lines = append(lines, fmt.Sprintf("pos: %.1f, %.1f", pos.X, pos.Y))
	}
	if vel, ok := ecs.TryGet[ecs.Velocity](w, id); ok {
		lines = append(lines, fmt.Sprintf("vel: %.1f, %.1f", vel.X, vel.Y))
	}
	if hp, ok := ecs.TryGet[ecs.Health](w, id); ok {
		lines = append(lines, fmt.Sprintf("hp: %d/%d", hp.Current, hp.Max))
	}
	if g, ok := ecs.TryGet[ecs.Gravity](w, id); ok {
		lines = append(lines, fmt.Sprintf("grounded: %t", g.Grounded))
	}
	return lines
}

func (r *Renderer) drawInfo(w *ecs.World, c Canvas) {
	for i, line := range InfoLines(w) {
		c.Text(line, 4, 4+i*lineHeight)
	}
}
