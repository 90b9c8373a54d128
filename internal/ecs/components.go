package ecs

import (
	"image/color"

	"github.com/younwookim/tilebound/internal/domain/level"
)

// Position is the top-left corner of the entity in world units
type Position struct {
	X, Y float64
}

// Velocity is in world units per second
type Velocity struct {
	X, Y float64
}

// ShapeKind selects how the renderer draws an entity
type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota
	ShapeCircle
)

// Shape is the visual representation of an entity
type Shape struct {
	Kind  ShapeKind
	Color color.RGBA
	W, H  float64
}

// ColliderKind tags a collider as immovable geometry or a resolved body
type ColliderKind int

const (
	ColliderStatic ColliderKind = iota
	ColliderDynamic
)

// Collider is an axis-aligned box relative to Position
type Collider struct {
	OffsetX, OffsetY float64
	W, H             float64
	Kind             ColliderKind
}

// Bounds returns the collider in world coordinates
func (c Collider) Bounds(pos Position) Rect {
	return Rect{X: pos.X + c.OffsetX, Y: pos.Y + c.OffsetY, W: c.W, H: c.H}
}

// Gravity accelerates an entity downward while it is not grounded.
// Grounded is written by collision resolution and read on the next tick.
type Gravity struct {
	Accel    float64
	MaxFall  float64
	Grounded bool
}

// Jump holds the launch velocity (negative is up)
type Jump struct {
	Velocity float64
}

// PlayerController marks the player-driven entity
type PlayerController struct {
	MoveSpeed float64
}

// Spawn is where a player respawns after death
type Spawn struct {
	X, Y float64
}

// Intent is the movement/action request derived from input for this tick
type Intent struct {
	MoveX  float64 // [-1, 1]
	Jump   bool
	Attack bool
}

// Patrol walks back and forth, turning at walls and (optionally) ledges
type Patrol struct {
	Speed        float64
	AvoidFalling bool
	FacingRight  bool
}

// Health represents entity hit points
type Health struct {
	Current int
	Max     int
}

// TakeDamage subtracts amount, clamping at zero. Returns true if dead.
func (h *Health) TakeDamage(amount int) bool {
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	return h.Current <= 0
}

// IsAlive returns true if health > 0
func (h *Health) IsAlive() bool {
	return h.Current > 0
}

// DamagePolicy decides when a Damager's overlap counts as a hit
type DamagePolicy int

const (
	DamageNone DamagePolicy = iota
	DamageContact
	DamageFromAbove
)

// String returns the string representation of the policy
func (p DamagePolicy) String() string {
	switch p {
	case DamageContact:
		return "Contact"
	case DamageFromAbove:
		return "FromAbove"
	default:
		return "None"
	}
}

// Damager deals Amount damage to overlapping entities under Policy
type Damager struct {
	Amount int
	Policy DamagePolicy
}

// Bounceable rebounds a stomping damager with Velocity
type Bounceable struct {
	Velocity float64
}

// Invulnerable is a temporary window during which the entity cannot be hit
type Invulnerable struct {
	Duration  float64
	Remaining float64
}

// InvulnerableSettings overrides the default invulnerability window
type InvulnerableSettings struct {
	Duration float64
}

// StunSettings overrides the default stun duration
type StunSettings struct {
	Duration float64
}

// Stunned blocks movement and jump intents while Remaining > 0
type Stunned struct {
	Remaining float64
}

// FlashEffect toggles visibility while the entity is invulnerable
type FlashEffect struct {
	Interval   float64
	UntilFlash float64
	Visible    bool
}

// Attack is a melee swing with a transient hitbox beside the entity
type Attack struct {
	Damage       int
	HitboxW      float64
	HitboxH      float64
	Cooldown     float64
	Duration     float64
	CooldownLeft float64
	TimeLeft     float64
	FacingRight  bool
}

// Active reports whether the swing's hitbox is live
func (a Attack) Active() bool {
	return a.TimeLeft > 0
}

// Hitbox returns the swing rectangle next to bounds, vertically centered
func (a Attack) Hitbox(bounds Rect) Rect {
	x := bounds.Left() - a.HitboxW
	if a.FacingRight {
		x = bounds.Right()
	}
	return Rect{X: x, Y: bounds.CenterY() - a.HitboxH/2, W: a.HitboxW, H: a.HitboxH}
}

// LevelGrid attaches a level's tile grid. Only active grids produce collision.
type LevelGrid struct {
	Level  *level.Level
	Active bool
}

// PathTrigger marks a door area leading to another level
type PathTrigger struct {
	Area       Rect
	NextLevel  string
	NextEntity string
}

// CameraTarget marks the entity the camera follows
type CameraTarget struct{}
