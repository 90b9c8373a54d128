package system

import "github.com/younwookim/tilebound/internal/ecs"

// PlayerMovementSystem sets horizontal velocity from the movement intent.
// Stunned entities keep their (knockback) velocity.
type PlayerMovementSystem struct{}

// NewPlayerMovementSystem creates a new player movement system
func NewPlayerMovementSystem() *PlayerMovementSystem {
	return &PlayerMovementSystem{}
}

// Name implements TickSystem
func (s *PlayerMovementSystem) Name() string { return "player-movement" }

// Update implements TickSystem
func (s *PlayerMovementSystem) Update(t *Tick) {
	w := t.World
	for _, id := range ecs.Query3[ecs.PlayerController, ecs.Intent, ecs.Velocity](w) {
		if ecs.Has[ecs.Stunned](w, id) {
			continue
		}
		pc, _ := ecs.TryGet[ecs.PlayerController](w, id)
		intent, _ := ecs.TryGet[ecs.Intent](w, id)
		vel, _ := ecs.TryGet[ecs.Velocity](w, id)

		vel.X = intent.MoveX * pc.MoveSpeed
		ecs.Set(w, id, vel)
	}
}

// JumpSystem launches grounded entities that requested a jump
type JumpSystem struct{}

// NewJumpSystem creates a new jump system
func NewJumpSystem() *JumpSystem {
	return &JumpSystem{}
}

// Name implements TickSystem
func (s *JumpSystem) Name() string { return "jump" }

// Update implements TickSystem
func (s *JumpSystem) Update(t *Tick) {
	w := t.World
	for _, id := range ecs.Query(w, ecs.With[ecs.Jump](), ecs.With[ecs.Intent](), ecs.With[ecs.Gravity](), ecs.With[ecs.Velocity]()) {
		intent, _ := ecs.TryGet[ecs.Intent](w, id)
		if !intent.Jump || ecs.Has[ecs.Stunned](w, id) {
			continue
		}
		g, _ := ecs.TryGet[ecs.Gravity](w, id)
		if !g.Grounded {
			continue
		}
		jump, _ := ecs.TryGet[ecs.Jump](w, id)
		vel, _ := ecs.TryGet[ecs.Velocity](w, id)
		vel.Y = jump.Velocity
		ecs.Set(w, id, vel)
	}
}

// GravitySystem accelerates airborne entities downward up to their fall cap.
// The grounded flag comes from the previous tick's collision resolution.
type GravitySystem struct{}

// NewGravitySystem creates a new gravity system
func NewGravitySystem() *GravitySystem {
	return &GravitySystem{}
}

// Name implements TickSystem
func (s *GravitySystem) Name() string { return "gravity" }

// Update implements TickSystem
func (s *GravitySystem) Update(t *Tick) {
	w := t.World
	for _, id := range ecs.Query2[ecs.Gravity, ecs.Velocity](w) {
		g, _ := ecs.TryGet[ecs.Gravity](w, id)
		if g.Grounded {
			continue
		}
		vel, _ := ecs.TryGet[ecs.Velocity](w, id)
		vel.Y += g.Accel * t.DT
		if g.MaxFall > 0 && vel.Y > g.MaxFall {
			vel.Y = g.MaxFall
		}
		ecs.Set(w, id, vel)
	}
}

// MovementSystem integrates position from velocity
type MovementSystem struct{}

// NewMovementSystem creates a new movement system
func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

// Name implements TickSystem
func (s *MovementSystem) Name() string { return "movement" }

// Update implements TickSystem
func (s *MovementSystem) Update(t *Tick) {
	w := t.World
	for _, id := range ecs.Query2[ecs.Position, ecs.Velocity](w) {
		pos, _ := ecs.TryGet[ecs.Position](w, id)
		vel, _ := ecs.TryGet[ecs.Velocity](w, id)
		pos.X += vel.X * t.DT
		pos.Y += vel.Y * t.DT
		ecs.Set(w, id, pos)
	}
}
