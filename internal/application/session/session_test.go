package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/younwookim/tilebound/internal/application/rooms"
	"github.com/younwookim/tilebound/internal/domain/input"
	"github.com/younwookim/tilebound/internal/ecs"
	"github.com/younwookim/tilebound/internal/infrastructure/config"
)

func createTestSession(t *testing.T, log *zap.Logger) *Session {
	t.Helper()
	loader := config.NewLoader("../../../cmd/game/configs")
	cfg, err := loader.LoadAll()
	require.NoError(t, err)
	levels, start, err := LoadLevels(loader, "demo")
	require.NoError(t, err)

	s, err := New(cfg, levels, start, log)
	require.NoError(t, err)
	return s
}

func TestLoadLevels(t *testing.T) {
	loader := config.NewLoader("../../../cmd/game/configs")

	levels, start, err := LoadLevels(loader, "annex")
	require.NoError(t, err)
	assert.Len(t, levels, 2)
	assert.Equal(t, "5a7e9d10-66b0-11ee-8c99-0242ac120002", start)

	_, _, err = LoadLevels(loader, "nowhere")
	assert.ErrorIs(t, err, rooms.ErrUnknownLevel)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(&config.GameConfig{}, nil, "x", nil)
	assert.ErrorIs(t, err, ErrNoLevels)

	loader := config.NewLoader("../../../cmd/game/configs")
	cfg, err := loader.LoadAll()
	require.NoError(t, err)
	levels, _, err := LoadLevels(loader, "demo")
	require.NoError(t, err)

	_, err = New(cfg, levels, "bogus", nil)
	assert.ErrorIs(t, err, rooms.ErrUnknownLevel)
}

func TestSession_IdleRun(t *testing.T) {
	s := createTestSession(t, nil)

	require.NoError(t, s.Run(input.Idle, 30))

	stats := s.Stats()
	assert.Equal(t, 30, stats.Frames)
	assert.Zero(t, stats.Deaths)
	assert.Equal(t, 30, s.Sim().Frame())

	id, ok := s.Player()
	require.True(t, ok)
	pos, _ := ecs.TryGet[ecs.Position](s.World(), id)
	assert.InDelta(t, 160.0, pos.Y, 1e-6)
}

func TestSession_StepFiresDoor(t *testing.T) {
	s := createTestSession(t, nil)
	id, _ := s.Player()
	ecs.Set(s.World(), id, ecs.Position{X: 590, Y: 160})

	_, err := s.Step(input.Snapshot{})
	require.NoError(t, err)
	require.Equal(t, 1, s.Stats().Doors)

	pos, _ := ecs.TryGet[ecs.Position](s.World(), id)
	assert.Equal(t, ecs.Position{X: 664, Y: 160}, pos)
	assert.Equal(t, 2, ecs.Count[ecs.LevelGrid](s.World()))

	_, err = s.Step(input.Snapshot{})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Stats().Doors, "arrival door does not fire")
}

func TestSession_ResetClearsStats(t *testing.T) {
	s := createTestSession(t, nil)
	old := s.World()
	require.NoError(t, s.Run(input.Idle, 5))

	require.NoError(t, s.Reset())

	assert.Equal(t, Stats{}, s.Stats())
	assert.NotSame(t, old, s.World())
	assert.Zero(t, s.Sim().Frame())
	assert.InDelta(t, 1.0/60.0, s.DT(), 1e-12)
}

func TestSession_LogSummary(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := createTestSession(t, zap.New(core))
	require.NoError(t, s.Run(input.Idle, 2))

	s.LogSummary("run finished")

	entries := logs.FilterMessage("run finished").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(2), fields["frames"])
	assert.Equal(t, 32.0, fields["x"])
	assert.Equal(t, int64(3), fields["hp"])
}
