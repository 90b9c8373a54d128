package system

import (
	"cmp"
	"math"
	"slices"

	"github.com/younwookim/tilebound/internal/ecs"
)

// CollisionSettings holds the resolution and resting-contact thresholds
type CollisionSettings struct {
	ContactThreshold float64 // max gap for a resting contact
	ContactMargin    float64 // required overlap on the perpendicular axis
	GroundSnapMin    float64 // grounded vertical velocity in [min, max] is zeroed
	GroundSnapMax    float64
	WallSnapSpeed    float64 // horizontal speed into a wall below this is zeroed
}

// DefaultCollisionSettings returns the stock thresholds
func DefaultCollisionSettings() CollisionSettings {
	return CollisionSettings{
		ContactThreshold: 2,
		ContactMargin:    1,
		GroundSnapMin:    -10,
		GroundSnapMax:    50,
		WallSnapSpeed:    30,
	}
}

// Resolution is the outcome of resolving one body against static geometry
type Resolution struct {
	Bounds   ecs.Rect
	Velocity ecs.Velocity
	Contacts Contacts
}

// penetration holds the four overlap depths of a body against another rect
type penetration struct {
	left, right, top, bottom float64
}

func penetrationOf(body, other ecs.Rect) penetration {
	return penetration{
		left:   body.Right() - other.Left(),
		right:  other.Right() - body.Left(),
		top:    body.Bottom() - other.Top(),
		bottom: other.Bottom() - body.Top(),
	}
}

func (p penetration) vertical() float64   { return min(p.top, p.bottom) }
func (p penetration) horizontal() float64 { return min(p.left, p.right) }

type candidate struct {
	rect  ecs.Rect
	depth float64
}

// Resolve pushes bounds out of every intersecting static rect and derives the
// resting contacts. statics order is the tie-break order for equal depths.
func (s CollisionSettings) Resolve(bounds ecs.Rect, vel ecs.Velocity, statics []ecs.Rect) Resolution {
	var vertical, horizontal []candidate
	for _, r := range statics {
		if !bounds.Intersects(r) {
			continue
		}
		p := penetrationOf(bounds, r)
		if p.vertical() < p.horizontal() {
			vertical = append(vertical, candidate{rect: r, depth: p.vertical()})
		} else {
			horizontal = append(horizontal, candidate{rect: r, depth: p.horizontal()})
		}
	}

	byDepth := func(a, b candidate) int { return cmp.Compare(a.depth, b.depth) }
	slices.SortStableFunc(vertical, byDepth)
	slices.SortStableFunc(horizontal, byDepth)

	for _, c := range vertical {
		if !bounds.Intersects(c.rect) {
			continue
		}
		p := penetrationOf(bounds, c.rect)
		if p.top < p.bottom {
			// Floor: never cancel an upward velocity
			bounds.Y -= p.top
			if vel.Y > 0 {
				vel.Y = 0
			}
		} else {
			// Ceiling
			bounds.Y += p.bottom
			if vel.Y < 0 {
				vel.Y = 0
			}
		}
	}

	for _, c := range horizontal {
		if !bounds.Intersects(c.rect) {
			continue
		}
		p := penetrationOf(bounds, c.rect)
		if p.left < p.right {
			bounds.X -= p.left
		} else {
			bounds.X += p.right
		}
		vel.X = 0
	}

	contacts := s.RestingContacts(bounds, statics)

	if contacts.Ground && vel.Y >= s.GroundSnapMin && vel.Y <= s.GroundSnapMax {
		vel.Y = 0
	}
	intoWall := (contacts.Left && vel.X < 0) || (contacts.Right && vel.X > 0)
	if intoWall && math.Abs(vel.X) < s.WallSnapSpeed {
		vel.X = 0
	}

	return Resolution{Bounds: bounds, Velocity: vel, Contacts: contacts}
}

// RestingContacts reports which sides of bounds lie within the contact threshold
// of a static rect. It never moves the body.
func (s CollisionSettings) RestingContacts(bounds ecs.Rect, statics []ecs.Rect) Contacts {
	var c Contacts
	th, m := s.ContactThreshold, s.ContactMargin
	for _, r := range statics {
		overlapX := bounds.Left() < r.Right()-m && bounds.Right() > r.Left()+m
		overlapY := bounds.Top() < r.Bottom()-m && bounds.Bottom() > r.Top()+m
		if overlapX {
			if math.Abs(r.Top()-bounds.Bottom()) <= th {
				c.Ground = true
			}
			if math.Abs(bounds.Top()-r.Bottom()) <= th {
				c.Ceiling = true
			}
		}
		if overlapY {
			if math.Abs(r.Left()-bounds.Right()) <= th {
				c.Right = true
			}
			if math.Abs(bounds.Left()-r.Right()) <= th {
				c.Left = true
			}
		}
	}
	return c
}

// CollisionSystem resolves dynamic bodies against static entity colliders and tiles
type CollisionSystem struct {
	settings CollisionSettings
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(settings CollisionSettings) *CollisionSystem {
	return &CollisionSystem{settings: settings}
}

// Name implements TickSystem
func (s *CollisionSystem) Name() string { return "collision" }

type staticBody struct {
	id   ecs.EntityID
	rect ecs.Rect
}

// Update implements TickSystem
func (s *CollisionSystem) Update(t *Tick) {
	w := t.World

	var statics []staticBody
	for _, id := range ecs.Query2[ecs.Position, ecs.Collider](w) {
		col, _ := ecs.TryGet[ecs.Collider](w, id)
		if col.Kind != ecs.ColliderStatic {
			continue
		}
		pos, _ := ecs.TryGet[ecs.Position](w, id)
		statics = append(statics, staticBody{id: id, rect: col.Bounds(pos)})
	}
	tiles := t.Tiles.Rects()

	candidates := make([]ecs.Rect, 0, len(statics)+len(tiles))
	for _, id := range ecs.Query3[ecs.Position, ecs.Collider, ecs.Velocity](w) {
		col, _ := ecs.TryGet[ecs.Collider](w, id)
		if col.Kind != ecs.ColliderDynamic || col.W <= 0 || col.H <= 0 {
			continue
		}
		pos, _ := ecs.TryGet[ecs.Position](w, id)
		vel, _ := ecs.TryGet[ecs.Velocity](w, id)

		// Entity colliders first, then tiles: one list, one routine
		candidates = candidates[:0]
		for _, st := range statics {
			if st.id != id {
				candidates = append(candidates, st.rect)
			}
		}
		candidates = append(candidates, tiles...)

		res := s.settings.Resolve(col.Bounds(pos), vel, candidates)

		ecs.Set(w, id, ecs.Position{X: res.Bounds.X - col.OffsetX, Y: res.Bounds.Y - col.OffsetY})
		ecs.Set(w, id, res.Velocity)
		t.Contacts[id] = res.Contacts

		if g, ok := ecs.TryGet[ecs.Gravity](w, id); ok {
			g.Grounded = res.Contacts.Ground
			ecs.Set(w, id, g)
		}
	}
}
