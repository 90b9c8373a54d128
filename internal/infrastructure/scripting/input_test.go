package scripting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/younwookim/tilebound/internal/domain/input"
)

func TestInputScript_Poll(t *testing.T) {
	s, err := New(`
function input(frame)
  if frame == 0 then
    return {right = true, axis = 0.5}
  elseif frame == 1 then
    return {left = true, jump = true, jump_pressed = true}
  end
  return {attack_pressed = true}
end`, nil)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, input.Snapshot{Right: true, Axis: 0.5}, s.Poll())
	assert.Equal(t, input.Snapshot{Left: true, Jump: true, JumpPressed: true}, s.Poll())
	assert.Equal(t, input.Snapshot{AttackPressed: true}, s.Poll())
	assert.Equal(t, 3, s.Frame())
}

func TestInputScript_NilAndFalseAreReleased(t *testing.T) {
	s, err := New(`function input(frame) return {right = false, jump = nil} end`, nil)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, input.Snapshot{}, s.Poll())
}

func TestInputScript_Load(t *testing.T) {
	s, err := Load("../../../cmd/game/configs/scripts/walk_right.lua", nil)
	require.NoError(t, err)
	defer s.Close()

	first := s.Poll()
	assert.True(t, first.Right)
	assert.True(t, first.AttackPressed, "frame 0 swings")
	assert.False(t, first.JumpPressed)

	var jumped int
	for i := 1; i < 60; i++ {
		if s.Poll().JumpPressed {
			jumped = i
		}
	}
	assert.Equal(t, 30, jumped)
}

func TestInputScript_LoadErrors(t *testing.T) {
	_, err := New(`this is not lua`, nil)
	assert.ErrorContains(t, err, "load input script")

	_, err = New(`x = 1`, nil)
	assert.ErrorIs(t, err, ErrNoInputFunc)

	_, err = Load("missing.lua", nil)
	assert.Error(t, err)
}

func TestInputScript_RuntimeErrorIsIdle(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s, err := New(`function input(frame) error("boom") end`, zap.New(core))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, input.Snapshot{}, s.Poll())
	assert.Equal(t, 1, logs.FilterMessage("lua input error").Len())
}

func TestInputScript_NonTableIsIdle(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s, err := New(`function input(frame) if frame == 0 then return 5 end end`, zap.New(core))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, input.Snapshot{}, s.Poll())
	assert.Equal(t, input.Snapshot{}, s.Poll())
	assert.Equal(t, 1, logs.FilterMessage("lua input returned non-table").Len())
}

func TestInputScript_IsSource(t *testing.T) {
	s, err := New(`function input(frame) return {right = true} end`, nil)
	require.NoError(t, err)
	defer s.Close()

	var src input.Source = s
	assert.True(t, src.Poll().Right)
}
