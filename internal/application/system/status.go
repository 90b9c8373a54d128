package system

import (
	"go.uber.org/zap"

	"github.com/younwookim/tilebound/internal/ecs"
)

// StatusSystem decays invulnerability and stun windows and drives flashing
type StatusSystem struct{}

// NewStatusSystem creates a new status system
func NewStatusSystem() *StatusSystem {
	return &StatusSystem{}
}

// Name implements TickSystem
func (s *StatusSystem) Name() string { return "status" }

// Update implements TickSystem
func (s *StatusSystem) Update(t *Tick) {
	w := t.World

	for _, id := range ecs.Query1[ecs.Invulnerable](w) {
		inv, _ := ecs.TryGet[ecs.Invulnerable](w, id)
		inv.Remaining -= t.DT
		if inv.Remaining <= 0 {
			ecs.Remove[ecs.Invulnerable](w, id)
			continue
		}
		ecs.Set(w, id, inv)
	}

	for _, id := range ecs.Query1[ecs.Stunned](w) {
		st, _ := ecs.TryGet[ecs.Stunned](w, id)
		st.Remaining -= t.DT
		if st.Remaining <= 0 {
			ecs.Remove[ecs.Stunned](w, id)
			continue
		}
		ecs.Set(w, id, st)
	}

	for _, id := range ecs.Query1[ecs.FlashEffect](w) {
		if !ecs.Has[ecs.Invulnerable](w, id) {
			ecs.Remove[ecs.FlashEffect](w, id)
			continue
		}
		f, _ := ecs.TryGet[ecs.FlashEffect](w, id)
		f.UntilFlash -= t.DT
		if f.UntilFlash <= 0 {
			f.Visible = !f.Visible
			f.UntilFlash += f.Interval
			if f.UntilFlash <= 0 {
				f.UntilFlash = f.Interval
			}
		}
		ecs.Set(w, id, f)
	}
}

// DeathSystem removes dead entities and respawns dead players
type DeathSystem struct{}

// NewDeathSystem creates a new death system
func NewDeathSystem() *DeathSystem {
	return &DeathSystem{}
}

// Name implements TickSystem
func (s *DeathSystem) Name() string { return "death" }

// Update implements TickSystem
func (s *DeathSystem) Update(t *Tick) {
	w := t.World
	for _, id := range ecs.Query1[ecs.Health](w) {
		h, _ := ecs.TryGet[ecs.Health](w, id)
		if h.IsAlive() {
			continue
		}

		if !ecs.Has[ecs.PlayerController](w, id) {
			w.RemoveEntity(id)
			t.Report.Removed = append(t.Report.Removed, id)
			t.Log.Debug("entity died", zap.Uint64("id", uint64(id)))
			continue
		}

		respawn(w, id, h)
		t.Report.PlayerDied = true
		t.Log.Debug("player respawned", zap.Uint64("id", uint64(id)))
	}
}

func respawn(w *ecs.World, id ecs.EntityID, h ecs.Health) {
	if sp, ok := ecs.TryGet[ecs.Spawn](w, id); ok {
		ecs.Set(w, id, ecs.Position{X: sp.X, Y: sp.Y})
	}
	if ecs.Has[ecs.Velocity](w, id) {
		ecs.Set(w, id, ecs.Velocity{})
	}
	if g, ok := ecs.TryGet[ecs.Gravity](w, id); ok {
		g.Grounded = false
		ecs.Set(w, id, g)
	}
	h.Current = h.Max
	ecs.Set(w, id, h)
	ecs.Remove[ecs.Stunned](w, id)
	ecs.Remove[ecs.Invulnerable](w, id)
	ecs.Remove[ecs.FlashEffect](w, id)
}
