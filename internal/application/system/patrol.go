package system

import "github.com/younwookim/tilebound/internal/ecs"

// PatrolSettings sizes the wall and ledge probes
type PatrolSettings struct {
	WallProbeWidth  float64
	WallProbeMargin float64 // max vertical inset, capped at a quarter of the height
	EdgeProbeMinW   float64
	EdgeProbeMinH   float64
	EdgeProbeScaleW float64 // fraction of the body width
	EdgeProbeScaleH float64 // fraction of the body height
}

// DefaultPatrolSettings returns the stock probe sizes
func DefaultPatrolSettings() PatrolSettings {
	return PatrolSettings{
		WallProbeWidth:  4,
		WallProbeMargin: 5,
		EdgeProbeMinW:   3,
		EdgeProbeMinH:   4,
		EdgeProbeScaleW: 0.3,
		EdgeProbeScaleH: 0.4,
	}
}

// WallProbe returns the thin rect flush with the leading edge
func (s PatrolSettings) WallProbe(bounds ecs.Rect, facingRight bool) ecs.Rect {
	margin := min(s.WallProbeMargin, bounds.H/4)
	x := bounds.Left() - s.WallProbeWidth
	if facingRight {
		x = bounds.Right()
	}
	return ecs.Rect{X: x, Y: bounds.Top() + margin, W: s.WallProbeWidth, H: bounds.H - 2*margin}
}

// EdgeProbe returns the rect just past the leading edge and below the feet
func (s PatrolSettings) EdgeProbe(bounds ecs.Rect, facingRight bool) ecs.Rect {
	w := max(s.EdgeProbeMinW, bounds.W*s.EdgeProbeScaleW)
	h := max(s.EdgeProbeMinH, bounds.H*s.EdgeProbeScaleH)
	x := bounds.Left() - w
	if facingRight {
		x = bounds.Right()
	}
	return ecs.Rect{X: x, Y: bounds.Bottom() + 1, W: w, H: h}
}

// PatrolSystem walks patrolling entities and turns them at walls and ledges.
// Probes only test the tile cache.
type PatrolSystem struct {
	settings PatrolSettings
}

// NewPatrolSystem creates a new patrol system
func NewPatrolSystem(settings PatrolSettings) *PatrolSystem {
	return &PatrolSystem{settings: settings}
}

// Name implements TickSystem
func (s *PatrolSystem) Name() string { return "patrol" }

// Update implements TickSystem
func (s *PatrolSystem) Update(t *Tick) {
	w := t.World
	for _, id := range ecs.Query3[ecs.Patrol, ecs.Position, ecs.Collider](w) {
		// Just-hit entities ride out their knockback
		if ecs.Has[ecs.Invulnerable](w, id) {
			continue
		}
		p, _ := ecs.TryGet[ecs.Patrol](w, id)
		pos, _ := ecs.TryGet[ecs.Position](w, id)
		col, _ := ecs.TryGet[ecs.Collider](w, id)
		bounds := col.Bounds(pos)

		if s.ShouldTurn(t.Tiles, bounds, p) {
			p.FacingRight = !p.FacingRight
			ecs.Set(w, id, p)
		}

		if vel, ok := ecs.TryGet[ecs.Velocity](w, id); ok {
			vel.X = p.Speed
			if !p.FacingRight {
				vel.X = -p.Speed
			}
			ecs.Set(w, id, vel)
		}
	}
}

// ShouldTurn reports whether a walker at bounds must flip this tick
func (s *PatrolSystem) ShouldTurn(tiles *TileCache, bounds ecs.Rect, p ecs.Patrol) bool {
	if tiles.AnyIntersects(s.settings.WallProbe(bounds, p.FacingRight)) {
		return true
	}
	return p.AvoidFalling && !tiles.AnyIntersects(s.settings.EdgeProbe(bounds, p.FacingRight))
}
