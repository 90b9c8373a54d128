package system

import "github.com/younwookim/tilebound/internal/ecs"

// IntentSystem turns the tick's input snapshot into an Intent on every player-controlled entity.
// Downstream systems read the Intent instead of the raw snapshot.
type IntentSystem struct{}

// NewIntentSystem creates a new intent system
func NewIntentSystem() *IntentSystem {
	return &IntentSystem{}
}

// Name implements TickSystem
func (s *IntentSystem) Name() string { return "intent" }

// Update implements TickSystem
func (s *IntentSystem) Update(t *Tick) {
	for _, id := range ecs.Query1[ecs.PlayerController](t.World) {
		ecs.Set(t.World, id, ecs.Intent{
			MoveX:  t.Input.Horizontal(),
			Jump:   t.Input.JumpPressed,
			Attack: t.Input.AttackPressed,
		})
	}
}
