package system

import (
	"go.uber.org/zap"

	"github.com/younwookim/tilebound/internal/ecs"
)

// AttackSettings holds the effects of a landed attack hitbox
type AttackSettings struct {
	Invulnerable  float64
	Stun          float64
	KnockbackX    float64
	KnockbackY    float64
	FlashInterval float64
}

// DefaultAttackSettings returns the stock attack tuning
func DefaultAttackSettings() AttackSettings {
	return AttackSettings{
		Invulnerable:  0.4,
		Stun:          0.2,
		KnockbackX:    200,
		KnockbackY:    -150,
		FlashInterval: 0.1,
	}
}

// AttackSystem runs attack timers and sweeps live hitboxes.
// It is independent of passive contact damage.
type AttackSystem struct {
	settings AttackSettings
}

// NewAttackSystem creates a new attack system
func NewAttackSystem(settings AttackSettings) *AttackSystem {
	return &AttackSystem{settings: settings}
}

// Name implements TickSystem
func (s *AttackSystem) Name() string { return "attack" }

// Update implements TickSystem
func (s *AttackSystem) Update(t *Tick) {
	w := t.World
	for _, id := range ecs.Query3[ecs.Attack, ecs.Position, ecs.Collider](w) {
		a, _ := ecs.TryGet[ecs.Attack](w, id)

		a.CooldownLeft = max(0, a.CooldownLeft-t.DT)

		// Facing follows the last nonzero horizontal velocity
		if vel, ok := ecs.TryGet[ecs.Velocity](w, id); ok && vel.X != 0 {
			a.FacingRight = vel.X > 0
		}

		if intent, ok := ecs.TryGet[ecs.Intent](w, id); ok && intent.Attack && a.CooldownLeft <= 0 && !a.Active() {
			a.TimeLeft = a.Duration
			a.CooldownLeft = a.Cooldown
		}

		if a.Active() {
			if bounds, ok := boundsOf(w, id); ok {
				s.sweep(t, id, a.Hitbox(bounds), a.Damage)
			}
			a.TimeLeft = max(0, a.TimeLeft-t.DT)
		}

		ecs.Set(w, id, a)
	}
}

func (s *AttackSystem) sweep(t *Tick, attacker ecs.EntityID, hitbox ecs.Rect, damage int) {
	w := t.World
	for _, target := range ecs.Query3[ecs.Health, ecs.Collider, ecs.Position](w) {
		if target == attacker || ecs.Has[ecs.Invulnerable](w, target) {
			continue
		}
		tb, _ := boundsOf(w, target)
		if !hitbox.Intersects(tb) {
			continue
		}
		applyHit(w, attacker, target, hitEffect{
			amount:       damage,
			invulnerable: s.settings.Invulnerable,
			react:        true,
			stun:         s.settings.Stun,
			knockbackX:   s.settings.KnockbackX,
			knockbackY:   s.settings.KnockbackY,
			flash:        s.settings.FlashInterval,
		})
		t.Report.Hits = append(t.Report.Hits, Hit{Source: attacker, Target: target, Amount: damage, Attack: true})
		t.Log.Debug("attack hit",
			zap.Uint64("attacker", uint64(attacker)),
			zap.Uint64("target", uint64(target)))
	}
}
