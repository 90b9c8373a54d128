// Package factory assembles player, enemy, platform and level entities from archetypes.
package factory

import (
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"github.com/younwookim/tilebound/internal/domain/level"
	"github.com/younwookim/tilebound/internal/ecs"
	"github.com/younwookim/tilebound/internal/infrastructure/config"
)

var (
	colorPlayer   = color.RGBA{0, 255, 0, 255}
	colorEnemy    = color.RGBA{255, 165, 0, 255}
	colorPlatform = color.RGBA{80, 80, 100, 255}
	colorPath     = color.RGBA{128, 0, 128, 77}
)

// Factory creates entities with archetype-driven components
type Factory struct {
	arch    config.Archetypes
	physics config.PhysicsConfig
	log     *zap.Logger
}

// New creates a factory. A nil logger disables logging.
func New(arch *config.Archetypes, physics config.PhysicsConfig, log *zap.Logger) *Factory {
	if arch == nil {
		arch = config.DefaultArchetypes()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Factory{arch: *arch, physics: physics, log: log}
}

// Default creates a factory with the built-in archetypes and physics
func Default() *Factory {
	return New(config.DefaultArchetypes(), config.DefaultTuning().Physics, nil)
}

func (f *Factory) gravity() ecs.Gravity {
	return ecs.Gravity{Accel: f.physics.Gravity, MaxFall: f.physics.MaxFallSpeed}
}

// CreatePlayer creates the controllable player with its spawn point at (x, y)
func (f *Factory) CreatePlayer(w *ecs.World, x, y float64) ecs.EntityID {
	a := f.arch.Player
	id := w.CreateEntity()

	ecs.Set(w, id, ecs.Position{X: x, Y: y})
	ecs.Set(w, id, ecs.Spawn{X: x, Y: y})
	ecs.Set(w, id, ecs.Shape{Kind: ecs.ShapeRectangle, Color: config.ColorOr(a.Color, colorPlayer), W: a.Width, H: a.Height})
	ecs.Set(w, id, ecs.Velocity{})
	ecs.Set(w, id, f.gravity())
	ecs.Set(w, id, ecs.Collider{W: a.Width, H: a.Height, Kind: ecs.ColliderDynamic})

	ecs.Set(w, id, ecs.PlayerController{MoveSpeed: a.MoveSpeed})
	ecs.Set(w, id, ecs.Intent{})
	ecs.Set(w, id, ecs.Jump{Velocity: a.JumpVelocity})

	ecs.Set(w, id, ecs.Health{Current: a.Health, Max: a.Health})
	ecs.Set(w, id, ecs.Damager{Amount: a.StompDamage, Policy: ecs.DamageFromAbove})
	ecs.Set(w, id, ecs.InvulnerableSettings{Duration: a.Invulnerable})
	ecs.Set(w, id, ecs.StunSettings{Duration: a.Stun})

	ecs.Set(w, id, ecs.Attack{
		Damage:      a.Attack.Damage,
		HitboxW:     a.Attack.Width,
		HitboxH:     a.Attack.Height,
		Cooldown:    a.Attack.Cooldown,
		Duration:    a.Attack.Duration,
		FacingRight: true,
	})
	ecs.Set(w, id, ecs.CameraTarget{})

	return id
}

// CreatePatrolEnemy creates a walker using the enemy archetype. It starts facing left.
func (f *Factory) CreatePatrolEnemy(w *ecs.World, x, y float64) ecs.EntityID {
	a := f.arch.Enemy
	id := w.CreateEntity()

	ecs.Set(w, id, ecs.Position{X: x, Y: y})
	ecs.Set(w, id, ecs.Shape{Kind: ecs.ShapeRectangle, Color: config.ColorOr(a.Color, colorEnemy), W: a.Width, H: a.Height})
	ecs.Set(w, id, ecs.Velocity{})
	ecs.Set(w, id, ecs.Patrol{Speed: a.Speed, AvoidFalling: a.AvoidFalling})
	ecs.Set(w, id, f.gravity())
	ecs.Set(w, id, ecs.Collider{W: a.Width, H: a.Height, Kind: ecs.ColliderDynamic})
	ecs.Set(w, id, ecs.Health{Current: a.Health, Max: a.Health})
	ecs.Set(w, id, ecs.Damager{Amount: a.ContactDamage, Policy: ecs.DamageContact})
	ecs.Set(w, id, ecs.Bounceable{Velocity: a.BounceVelocity})

	return id
}

// CreatePlatform creates a static solid box
func (f *Factory) CreatePlatform(w *ecs.World, x, y, width, height float64) ecs.EntityID {
	id := w.CreateEntity()
	ecs.Set(w, id, ecs.Position{X: x, Y: y})
	ecs.Set(w, id, ecs.Shape{Kind: ecs.ShapeRectangle, Color: colorPlatform, W: width, H: height})
	ecs.Set(w, id, ecs.Collider{W: width, H: height, Kind: ecs.ColliderStatic})
	return id
}

// LevelSpawn lists what SpawnLevel created
type LevelSpawn struct {
	Level   ecs.EntityID
	Player  ecs.EntityID // zero if a player already existed or the level has no player spawn
	Enemies []ecs.EntityID
	Paths   []ecs.EntityID
}

// SpawnLevel validates lvl, attaches it as an active grid and creates its spawns.
// A player is only created if the world has none.
func (f *Factory) SpawnLevel(w *ecs.World, lvl *level.Level) (LevelSpawn, error) {
	if err := level.Validate(lvl); err != nil {
		return LevelSpawn{}, fmt.Errorf("failed to spawn level: %w", err)
	}

	var out LevelSpawn
	out.Level = w.CreateEntity()
	ecs.Set(w, out.Level, ecs.LevelGrid{Level: lvl, Active: true})

	if _, ok := FindPlayer(w); !ok {
		if spawns := lvl.SpawnsOf(level.SpawnPlayer); len(spawns) > 0 {
			x, y := lvl.WorldPos(spawns[0])
			out.Player = f.CreatePlayer(w, x, y)
		}
	}

	for _, s := range lvl.SpawnsOf(level.SpawnEnemy) {
		x, y := lvl.WorldPos(s)
		out.Enemies = append(out.Enemies, f.CreatePatrolEnemy(w, x, y))
	}

	for _, s := range lvl.SpawnsOf(level.SpawnPath) {
		out.Paths = append(out.Paths, f.createPath(w, lvl, s))
	}

	f.log.Info("level spawned",
		zap.String("level", lvl.Identifier),
		zap.Int("tiles", countSolid(lvl)),
		zap.Int("enemies", len(out.Enemies)),
		zap.Int("paths", len(out.Paths)),
		zap.Bool("player", out.Player != 0))

	return out, nil
}

func (f *Factory) createPath(w *ecs.World, lvl *level.Level, s level.Spawn) ecs.EntityID {
	x, y := lvl.WorldPos(s)
	id := w.CreateEntity()
	ecs.Set(w, id, ecs.Position{X: x, Y: y})
	ecs.Set(w, id, ecs.Shape{Kind: ecs.ShapeRectangle, Color: colorPath, W: s.Width, H: s.Height})
	ecs.Set(w, id, ecs.PathTrigger{
		Area:       ecs.Rect{X: x, Y: y, W: s.Width, H: s.Height},
		NextLevel:  s.NextLevel,
		NextEntity: s.NextEntity,
	})
	return id
}

// FindPlayer returns the first player-controlled entity
func FindPlayer(w *ecs.World) (ecs.EntityID, bool) {
	ids := ecs.Query1[ecs.PlayerController](w)
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}

func countSolid(lvl *level.Level) int {
	n := 0
	for _, row := range lvl.Tiles {
		for _, code := range row {
			if code != 0 {
				n++
			}
		}
	}
	return n
}
