package system

import "github.com/younwookim/tilebound/internal/ecs"

// hitEffect describes what a landed hit attaches to its target
type hitEffect struct {
	amount       int
	invulnerable float64 // used when the target has no InvulnerableSettings
	react        bool    // attach stun, knockback and flash
	stun         float64
	knockbackX   float64 // magnitude, signed away from the source
	knockbackY   float64
	flash        float64
}

// boundsOf returns the entity's collider rect in world space
func boundsOf(w *ecs.World, id ecs.EntityID) (ecs.Rect, bool) {
	pos, ok := ecs.TryGet[ecs.Position](w, id)
	if !ok {
		return ecs.Rect{}, false
	}
	col, ok := ecs.TryGet[ecs.Collider](w, id)
	if !ok {
		return ecs.Rect{}, false
	}
	return col.Bounds(pos), true
}

// applyHit damages target and attaches the effect's status components.
// Returns false if the target has no health.
func applyHit(w *ecs.World, source, target ecs.EntityID, eff hitEffect) bool {
	h, ok := ecs.TryGet[ecs.Health](w, target)
	if !ok {
		return false
	}
	h.TakeDamage(eff.amount)
	ecs.Set(w, target, h)

	dur := eff.invulnerable
	if s, ok := ecs.TryGet[ecs.InvulnerableSettings](w, target); ok {
		dur = s.Duration
	}
	ecs.Set(w, target, ecs.Invulnerable{Duration: dur, Remaining: dur})

	if !eff.react {
		return true
	}

	ecs.Set(w, target, ecs.Stunned{Remaining: eff.stun})

	if vel, ok := ecs.TryGet[ecs.Velocity](w, target); ok {
		dir := 1.0
		sb, sok := boundsOf(w, source)
		tb, tok := boundsOf(w, target)
		if sok && tok && tb.CenterX() < sb.CenterX() {
			dir = -1
		}
		vel.X = dir * eff.knockbackX
		vel.Y = eff.knockbackY
		ecs.Set(w, target, vel)
	}

	ecs.Set(w, target, ecs.FlashEffect{Interval: eff.flash, UntilFlash: eff.flash, Visible: true})
	return true
}
