package system

import (
	"go.uber.org/zap"

	"github.com/younwookim/tilebound/internal/ecs"
)

// DamageSettings holds passive contact damage defaults
type DamageSettings struct {
	StompTolerance float64 // how far below the target's top a stomping bottom edge may be
	Invulnerable   float64
	Stun           float64 // player targets only
	KnockbackX     float64
	KnockbackY     float64
	FlashInterval  float64
}

// DefaultDamageSettings returns the stock damage tuning
func DefaultDamageSettings() DamageSettings {
	return DamageSettings{
		StompTolerance: 15,
		Invulnerable:   1.0,
		Stun:           0.3,
		KnockbackX:     200,
		KnockbackY:     -250,
		FlashInterval:  0.1,
	}
}

// DamageSystem applies Damager hits between overlapping entities.
// Each unordered pair is evaluated at most once per tick.
type DamageSystem struct {
	settings DamageSettings
}

// NewDamageSystem creates a new damage system
func NewDamageSystem(settings DamageSettings) *DamageSystem {
	return &DamageSystem{settings: settings}
}

// Name implements TickSystem
func (s *DamageSystem) Name() string { return "damage" }

// Update implements TickSystem
func (s *DamageSystem) Update(t *Tick) {
	w := t.World
	ids := ecs.Query2[ecs.Position, ecs.Collider](w)
	bounds := make([]ecs.Rect, len(ids))
	for i, id := range ids {
		bounds[i], _ = boundsOf(w, id)
	}

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if !bounds[i].Intersects(bounds[j]) {
				continue
			}
			if !t.markPair(ids[i], ids[j]) {
				continue
			}
			// First direction to qualify wins
			if s.tryDamage(t, ids[i], bounds[i], ids[j], bounds[j]) {
				continue
			}
			s.tryDamage(t, ids[j], bounds[j], ids[i], bounds[i])
		}
	}
}

func (s *DamageSystem) tryDamage(t *Tick, damager ecs.EntityID, db ecs.Rect, target ecs.EntityID, tb ecs.Rect) bool {
	w := t.World
	d, ok := ecs.TryGet[ecs.Damager](w, damager)
	if !ok || d.Policy == ecs.DamageNone {
		return false
	}
	if !ecs.Has[ecs.Health](w, target) || ecs.Has[ecs.Invulnerable](w, target) {
		return false
	}

	stomp := d.Policy == ecs.DamageFromAbove
	if stomp && !s.IsStomp(w, damager, db, tb) {
		return false
	}

	if !applyHit(w, damager, target, s.effectFor(w, target, d.Amount)) {
		return false
	}
	t.Report.Hits = append(t.Report.Hits, Hit{
		Source: damager,
		Target: target,
		Amount: d.Amount,
		Policy: d.Policy,
		Stomp:  stomp,
	})
	t.Log.Debug("damage",
		zap.Uint64("source", uint64(damager)),
		zap.Uint64("target", uint64(target)),
		zap.Stringer("policy", d.Policy))

	if stomp {
		if b, ok := ecs.TryGet[ecs.Bounceable](w, target); ok {
			if vel, ok := ecs.TryGet[ecs.Velocity](w, damager); ok {
				vel.Y = b.Velocity
				ecs.Set(w, damager, vel)
			}
		}
	}
	return true
}

// IsStomp reports whether a FromAbove damager at db is landing on a target at tb
func (s *DamageSystem) IsStomp(w *ecs.World, damager ecs.EntityID, db, tb ecs.Rect) bool {
	vel, ok := ecs.TryGet[ecs.Velocity](w, damager)
	if !ok || vel.Y <= 0 {
		return false
	}
	if db.Bottom() > tb.Top()+s.settings.StompTolerance {
		return false
	}
	cx := db.CenterX()
	return cx > tb.Left() && cx < tb.Right()
}

func (s *DamageSystem) effectFor(w *ecs.World, target ecs.EntityID, amount int) hitEffect {
	eff := hitEffect{
		amount:       amount,
		invulnerable: s.settings.Invulnerable,
	}
	if !ecs.Has[ecs.PlayerController](w, target) {
		return eff
	}
	eff.react = true
	eff.stun = s.settings.Stun
	if st, ok := ecs.TryGet[ecs.StunSettings](w, target); ok {
		eff.stun = st.Duration
	}
	eff.knockbackX = s.settings.KnockbackX
	eff.knockbackY = s.settings.KnockbackY
	eff.flash = s.settings.FlashInterval
	return eff
}
