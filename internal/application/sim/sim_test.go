package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/younwookim/tilebound/internal/application/system"
	"github.com/younwookim/tilebound/internal/domain/input"
	"github.com/younwookim/tilebound/internal/domain/level"
	"github.com/younwookim/tilebound/internal/ecs"
)

const testDT = 1.0 / 60.0

type recordingSystem struct {
	name  string
	calls *[]string
}

func (r recordingSystem) Name() string { return r.name }

func (r recordingSystem) Update(t *system.Tick) {
	*r.calls = append(*r.calls, r.name)
}

func createTestWorld() (*ecs.World, ecs.EntityID, ecs.EntityID) {
	w := ecs.NewWorld()

	floor := &level.Level{Identifier: "floor", Y: 100, Tiles: [][]int{make([]int, 20)}}
	for i := range floor.Tiles[0] {
		floor.Tiles[0][i] = 1
	}
	lvl := w.CreateEntity()
	ecs.Set(w, lvl, ecs.LevelGrid{Level: floor, Active: true})

	player := w.CreateEntity()
	ecs.Set(w, player, ecs.Position{X: 20, Y: 52})
	ecs.Set(w, player, ecs.Spawn{X: 20, Y: 52})
	ecs.Set(w, player, ecs.Velocity{})
	ecs.Set(w, player, ecs.Collider{W: 32, H: 48, Kind: ecs.ColliderDynamic})
	ecs.Set(w, player, ecs.Gravity{Accel: 980, MaxFall: 600})
	ecs.Set(w, player, ecs.PlayerController{MoveSpeed: 200})
	ecs.Set(w, player, ecs.Jump{Velocity: -500})
	ecs.Set(w, player, ecs.Health{Current: 3, Max: 3})
	ecs.Set(w, player, ecs.Damager{Amount: 1, Policy: ecs.DamageFromAbove})

	enemy := w.CreateEntity()
	ecs.Set(w, enemy, ecs.Position{X: 200, Y: 90})
	ecs.Set(w, enemy, ecs.Velocity{})
	ecs.Set(w, enemy, ecs.Collider{W: 10, H: 10, Kind: ecs.ColliderDynamic})
	ecs.Set(w, enemy, ecs.Gravity{Accel: 980, MaxFall: 600})
	ecs.Set(w, enemy, ecs.Patrol{Speed: 10, AvoidFalling: true})
	ecs.Set(w, enemy, ecs.Health{Current: 1, Max: 1})
	ecs.Set(w, enemy, ecs.Damager{Amount: 1, Policy: ecs.DamageContact})
	ecs.Set(w, enemy, ecs.Bounceable{Velocity: -300})

	return w, player, enemy
}

func TestSimulation_DefaultPipeline(t *testing.T) {
	s := New(ecs.NewWorld())

	assert.Equal(t, []string{
		"intent", "player-movement", "jump", "patrol", "gravity", "movement",
		"collision", "damage", "attack", "status", "death",
	}, s.SystemNames())
	assert.Equal(t, system.DefaultSettings(), s.Settings())
}

func TestSimulation_WithSystems(t *testing.T) {
	var calls []string
	s := New(ecs.NewWorld(), WithSystems(
		recordingSystem{name: "b", calls: &calls},
		recordingSystem{name: "a", calls: &calls},
	))

	s.Step(testDT, input.Snapshot{})
	s.Step(testDT, input.Snapshot{})

	assert.Equal(t, []string{"b", "a", "b", "a"}, calls)
	assert.Equal(t, 2, s.Frame())
}

func TestSimulation_StepGroundsPlayer(t *testing.T) {
	w, player, _ := createTestWorld()
	s := New(w)

	s.Step(testDT, input.Snapshot{})

	c, ok := s.Contacts(player)
	require.True(t, ok)
	assert.True(t, c.Ground)
	assert.Len(t, s.Tiles(), 20)
	assert.Same(t, w, s.World())

	_, ok = s.Contacts(999)
	assert.False(t, ok)
}

func TestSimulation_StompKillsEnemy(t *testing.T) {
	w, player, enemy := createTestWorld()
	// Drop the player onto the enemy
	ecs.Set(w, player, ecs.Position{X: 188, Y: 30})
	ecs.Set(w, player, ecs.Velocity{Y: 300})

	s := New(w)
	var removed []ecs.EntityID
	var stomped bool
	for i := 0; i < 30 && w.Alive(enemy); i++ {
		report := s.Step(testDT, input.Snapshot{})
		for _, h := range report.Hits {
			stomped = stomped || (h.Stomp && h.Target == enemy)
		}
		removed = append(removed, report.Removed...)
	}

	assert.True(t, stomped)
	assert.False(t, w.Alive(enemy))
	assert.Equal(t, []ecs.EntityID{enemy}, removed)
	h, _ := ecs.TryGet[ecs.Health](w, player)
	assert.Equal(t, 3, h.Current, "stomper takes no damage")
}

func TestSimulation_PlayerDiesAndRespawns(t *testing.T) {
	w, player, _ := createTestWorld()
	ecs.Set(w, player, ecs.Health{Current: 1, Max: 3})
	ecs.Set(w, player, ecs.Position{X: 190, Y: 52})

	s := New(w)
	died := false
	for i := 0; i < 120 && !died; i++ {
		died = s.Step(testDT, input.Snapshot{}).PlayerDied
	}

	require.True(t, died)
	h, _ := ecs.TryGet[ecs.Health](w, player)
	assert.Equal(t, 3, h.Current)
	pos, _ := ecs.TryGet[ecs.Position](w, player)
	assert.Equal(t, ecs.Position{X: 20, Y: 52}, pos)
}

func TestSimulation_LogsDeaths(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	w, player, enemy := createTestWorld()
	ecs.Set(w, enemy, ecs.Health{Current: 0, Max: 1})

	s := New(w, WithLogger(zap.New(core)))
	s.Step(testDT, input.Snapshot{})

	assert.Equal(t, 1, logs.FilterMessage("entity died").Len())
	assert.True(t, w.Alive(player))
}
