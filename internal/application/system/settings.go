package system

// Settings bundles the tuning of every configurable system
type Settings struct {
	Collision CollisionSettings
	Patrol    PatrolSettings
	Damage    DamageSettings
	Attack    AttackSettings
}

// DefaultSettings returns the stock tuning
func DefaultSettings() Settings {
	return Settings{
		Collision: DefaultCollisionSettings(),
		Patrol:    DefaultPatrolSettings(),
		Damage:    DefaultDamageSettings(),
		Attack:    DefaultAttackSettings(),
	}
}

// Pipeline returns the tick systems in their fixed execution order:
// intents, gravity, integration, collision, damage, attack, status decay.
func Pipeline(s Settings) []TickSystem {
	return []TickSystem{
		NewIntentSystem(),
		NewPlayerMovementSystem(),
		NewJumpSystem(),
		NewPatrolSystem(s.Patrol),
		NewGravitySystem(),
		NewMovementSystem(),
		NewCollisionSystem(s.Collision),
		NewDamageSystem(s.Damage),
		NewAttackSystem(s.Attack),
		NewStatusSystem(),
		NewDeathSystem(),
	}
}
