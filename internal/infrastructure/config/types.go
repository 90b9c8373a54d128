package config

import "github.com/younwookim/tilebound/internal/application/system"

// Tuning is the root config for tuning.toml
type Tuning struct {
	Display   DisplayConfig   `toml:"display"`
	Physics   PhysicsConfig   `toml:"physics"`
	Collision CollisionConfig `toml:"collision"`
	Patrol    PatrolConfig    `toml:"patrol"`
	Damage    DamageConfig    `toml:"damage"`
	Attack    AttackConfig    `toml:"attack"`
	Logging   LoggingConfig   `toml:"logging"`
}

type DisplayConfig struct {
	Title        string `toml:"title"`
	ScreenWidth  int    `toml:"screen_width"`
	ScreenHeight int    `toml:"screen_height"`
	Scale        int    `toml:"scale"`
	Framerate    int    `toml:"framerate"`
}

type PhysicsConfig struct {
	Gravity      float64 `toml:"gravity"`
	MaxFallSpeed float64 `toml:"max_fall_speed"` // 0 disables the cap
}

type CollisionConfig struct {
	ContactThreshold float64 `toml:"contact_threshold"`
	ContactMargin    float64 `toml:"contact_margin"`
	GroundSnapMin    float64 `toml:"ground_snap_min"`
	GroundSnapMax    float64 `toml:"ground_snap_max"`
	WallSnapSpeed    float64 `toml:"wall_snap_speed"`
}

type PatrolConfig struct {
	WallProbeWidth  float64 `toml:"wall_probe_width"`
	WallProbeMargin float64 `toml:"wall_probe_margin"`
	EdgeProbeMinW   float64 `toml:"edge_probe_min_w"`
	EdgeProbeMinH   float64 `toml:"edge_probe_min_h"`
	EdgeProbeScaleW float64 `toml:"edge_probe_scale_w"`
	EdgeProbeScaleH float64 `toml:"edge_probe_scale_h"`
}

type DamageConfig struct {
	StompTolerance float64 `toml:"stomp_tolerance"`
	Invulnerable   float64 `toml:"invulnerable"`
	Stun           float64 `toml:"stun"`
	KnockbackX     float64 `toml:"knockback_x"`
	KnockbackY     float64 `toml:"knockback_y"`
	FlashInterval  float64 `toml:"flash_interval"`
}

type AttackConfig struct {
	Invulnerable  float64 `toml:"invulnerable"`
	Stun          float64 `toml:"stun"`
	KnockbackX    float64 `toml:"knockback_x"`
	KnockbackY    float64 `toml:"knockback_y"`
	FlashInterval float64 `toml:"flash_interval"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty logs to stderr
}

// DefaultTuning returns the values used when tuning.toml omits a key
func DefaultTuning() *Tuning {
	s := system.DefaultSettings()
	return &Tuning{
		Display: DisplayConfig{
			Title:        "tilebound",
			ScreenWidth:  640,
			ScreenHeight: 360,
			Scale:        2,
			Framerate:    60,
		},
		Physics: PhysicsConfig{
			Gravity:      980,
			MaxFallSpeed: 600,
		},
		Collision: CollisionConfig{
			ContactThreshold: s.Collision.ContactThreshold,
			ContactMargin:    s.Collision.ContactMargin,
			GroundSnapMin:    s.Collision.GroundSnapMin,
			GroundSnapMax:    s.Collision.GroundSnapMax,
			WallSnapSpeed:    s.Collision.WallSnapSpeed,
		},
		Patrol: PatrolConfig{
			WallProbeWidth:  s.Patrol.WallProbeWidth,
			WallProbeMargin: s.Patrol.WallProbeMargin,
			EdgeProbeMinW:   s.Patrol.EdgeProbeMinW,
			EdgeProbeMinH:   s.Patrol.EdgeProbeMinH,
			EdgeProbeScaleW: s.Patrol.EdgeProbeScaleW,
			EdgeProbeScaleH: s.Patrol.EdgeProbeScaleH,
		},
		Damage: DamageConfig{
			StompTolerance: s.Damage.StompTolerance,
			Invulnerable:   s.Damage.Invulnerable,
			Stun:           s.Damage.Stun,
			KnockbackX:     s.Damage.KnockbackX,
			KnockbackY:     s.Damage.KnockbackY,
			FlashInterval:  s.Damage.FlashInterval,
		},
		Attack: AttackConfig{
			Invulnerable:  s.Attack.Invulnerable,
			Stun:          s.Attack.Stun,
			KnockbackX:    s.Attack.KnockbackX,
			KnockbackY:    s.Attack.KnockbackY,
			FlashInterval: s.Attack.FlashInterval,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Settings converts the tuning into system settings
func (t *Tuning) Settings() system.Settings {
	return system.Settings{
		Collision: system.CollisionSettings{
			ContactThreshold: t.Collision.ContactThreshold,
			ContactMargin:    t.Collision.ContactMargin,
			GroundSnapMin:    t.Collision.GroundSnapMin,
			GroundSnapMax:    t.Collision.GroundSnapMax,
			WallSnapSpeed:    t.Collision.WallSnapSpeed,
		},
		Patrol: system.PatrolSettings{
			WallProbeWidth:  t.Patrol.WallProbeWidth,
			WallProbeMargin: t.Patrol.WallProbeMargin,
			EdgeProbeMinW:   t.Patrol.EdgeProbeMinW,
			EdgeProbeMinH:   t.Patrol.EdgeProbeMinH,
			EdgeProbeScaleW: t.Patrol.EdgeProbeScaleW,
			EdgeProbeScaleH: t.Patrol.EdgeProbeScaleH,
		},
		Damage: system.DamageSettings{
			StompTolerance: t.Damage.StompTolerance,
			Invulnerable:   t.Damage.Invulnerable,
			Stun:           t.Damage.Stun,
			KnockbackX:     t.Damage.KnockbackX,
			KnockbackY:     t.Damage.KnockbackY,
			FlashInterval:  t.Damage.FlashInterval,
		},
		Attack: system.AttackSettings{
			Invulnerable:  t.Attack.Invulnerable,
			Stun:          t.Attack.Stun,
			KnockbackX:    t.Attack.KnockbackX,
			KnockbackY:    t.Attack.KnockbackY,
			FlashInterval: t.Attack.FlashInterval,
		},
	}
}

// FrameDT returns the fixed step length in seconds
func (t *Tuning) FrameDT() float64 {
	if t.Display.Framerate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(t.Display.Framerate)
}
