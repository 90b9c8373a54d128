package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tilebound/internal/domain/input"
	"github.com/younwookim/tilebound/internal/ecs"
)

const eps = 1e-9

func containsRect(outer, inner ecs.Rect) bool {
	return inner.Left() >= outer.Left()-eps && inner.Right() <= outer.Right()+eps &&
		inner.Top() >= outer.Top()-eps && inner.Bottom() <= outer.Bottom()+eps
}

func TestResolve_SingleOverlapLeavesNoPenetration(t *testing.T) {
	s := DefaultCollisionSettings()
	static := ecs.Rect{X: 0, Y: 0, W: 32, H: 32}

	tests := []struct {
		name     string
		body     ecs.Rect
		expected ecs.Rect
	}{
		{"from left", ecs.Rect{X: -8, Y: 10, W: 10, H: 10}, ecs.Rect{X: -10, Y: 10, W: 10, H: 10}},
		{"from right", ecs.Rect{X: 30, Y: 10, W: 10, H: 10}, ecs.Rect{X: 32, Y: 10, W: 10, H: 10}},
		{"from above", ecs.Rect{X: 10, Y: -7, W: 10, H: 10}, ecs.Rect{X: 10, Y: -10, W: 10, H: 10}},
		{"from below", ecs.Rect{X: 10, Y: 29, W: 10, H: 10}, ecs.Rect{X: 10, Y: 32, W: 10, H: 10}},
		{"deep inside resolves on shallow axis", ecs.Rect{X: 11, Y: 5, W: 10, H: 10}, ecs.Rect{X: 11, Y: -10, W: 10, H: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Resolve(tt.body, ecs.Velocity{}, []ecs.Rect{static})
			assert.False(t, res.Bounds.Intersects(static), "residual penetration")
			assert.InDelta(t, tt.expected.X, res.Bounds.X, eps)
			assert.InDelta(t, tt.expected.Y, res.Bounds.Y, eps)
		})
	}
}

func TestResolve_FloorPush(t *testing.T) {
	s := DefaultCollisionSettings()
	floor := ecs.Rect{X: 0, Y: 100, W: 16, H: 16}

	t.Run("falling body lands", func(t *testing.T) {
		res := s.Resolve(ecs.Rect{X: 4, Y: 90, W: 8, H: 14}, ecs.Velocity{Y: 200}, []ecs.Rect{floor})

		assert.InDelta(t, 86.0, res.Bounds.Y, eps)
		assert.Equal(t, 0.0, res.Velocity.Y)
		assert.True(t, res.Contacts.Ground)
	})

	t.Run("upward velocity survives a floor push", func(t *testing.T) {
		res := s.Resolve(ecs.Rect{X: 4, Y: 87, W: 8, H: 14}, ecs.Velocity{Y: -500}, []ecs.Rect{floor})

		assert.InDelta(t, 86.0, res.Bounds.Y, eps)
		assert.Equal(t, -500.0, res.Velocity.Y, "a jump must not be cancelled by the floor it leaves")
	})
}

func TestResolve_CeilingPush(t *testing.T) {
	s := DefaultCollisionSettings()
	ceiling := ecs.Rect{X: 0, Y: 0, W: 16, H: 16}

	t.Run("rising body stops", func(t *testing.T) {
		res := s.Resolve(ecs.Rect{X: 4, Y: 13, W: 8, H: 14}, ecs.Velocity{Y: -300}, []ecs.Rect{ceiling})

		assert.InDelta(t, 16.0, res.Bounds.Y, eps)
		assert.Equal(t, 0.0, res.Velocity.Y)
		assert.True(t, res.Contacts.Ceiling)
	})

	t.Run("falling body keeps falling", func(t *testing.T) {
		res := s.Resolve(ecs.Rect{X: 4, Y: 13, W: 8, H: 14}, ecs.Velocity{Y: 120}, []ecs.Rect{ceiling})

		assert.InDelta(t, 16.0, res.Bounds.Y, eps)
		assert.Equal(t, 120.0, res.Velocity.Y)
	})
}

func TestResolve_WallZeroesHorizontalVelocity(t *testing.T) {
	s := DefaultCollisionSettings()
	wall := ecs.Rect{X: 50, Y: 0, W: 16, H: 64}

	for _, vx := range []float64{200, -200} {
		res := s.Resolve(ecs.Rect{X: 43, Y: 20, W: 10, H: 10}, ecs.Velocity{X: vx, Y: 30}, []ecs.Rect{wall})

		assert.InDelta(t, 40.0, res.Bounds.X, eps)
		assert.Equal(t, 0.0, res.Velocity.X, "horizontal velocity is zeroed unconditionally")
		assert.Equal(t, 30.0, res.Velocity.Y)
		assert.True(t, res.Contacts.Right)
	}
}

func TestResolve_CornerStaysWithinIndividualResolutions(t *testing.T) {
	s := DefaultCollisionSettings()
	floor := ecs.Rect{X: 0, Y: 100, W: 100, H: 16}
	wall := ecs.Rect{X: 40, Y: 0, W: 16, H: 100}
	body := ecs.Rect{X: 30, Y: 95, W: 12, H: 12}

	res := s.Resolve(body, ecs.Velocity{X: 50, Y: 200}, []ecs.Rect{floor, wall})

	// Individual resolution vectors: floor (0,-7), wall (-2,0)
	union := body.Translate(0, -7).Union(body.Translate(-2, 0))
	assert.True(t, containsRect(union, res.Bounds), "body swallowed past a surface: %+v", res.Bounds)
	assert.False(t, res.Bounds.Intersects(floor))
	assert.False(t, res.Bounds.Intersects(wall))
	assert.Equal(t, ecs.Velocity{}, res.Velocity)
	assert.True(t, res.Contacts.Ground)
	assert.True(t, res.Contacts.Right)
}

func TestResolve_NoSnagOnTileSeams(t *testing.T) {
	s := DefaultCollisionSettings()
	tiles := []ecs.Rect{
		{X: 0, Y: 100, W: 16, H: 16},
		{X: 16, Y: 100, W: 16, H: 16},
	}

	// Sunk half a unit while crossing the seam
	res := s.Resolve(ecs.Rect{X: 10, Y: 90.5, W: 10, H: 10}, ecs.Velocity{X: 100, Y: 30}, tiles)

	assert.InDelta(t, 90.0, res.Bounds.Y, eps)
	assert.InDelta(t, 10.0, res.Bounds.X, eps, "seam must not push the body sideways")
	assert.Equal(t, 100.0, res.Velocity.X)
	assert.True(t, res.Contacts.Ground)
}

func TestResolve_StableTieOrder(t *testing.T) {
	s := DefaultCollisionSettings()
	a := ecs.Rect{X: 0, Y: 100, W: 16, H: 16}
	b := ecs.Rect{X: 12, Y: 100, W: 16, H: 16}
	body := ecs.Rect{X: 8, Y: 88, W: 8, H: 14}

	first := s.Resolve(body, ecs.Velocity{Y: 60}, []ecs.Rect{a, b})
	second := s.Resolve(body, ecs.Velocity{Y: 60}, []ecs.Rect{a, b})

	assert.Equal(t, first, second)
}

func TestRestingContacts(t *testing.T) {
	s := DefaultCollisionSettings()
	floor := ecs.Rect{X: 0, Y: 100, W: 64, H: 16}
	wall := ecs.Rect{X: 64, Y: 0, W: 16, H: 100}

	tests := []struct {
		name     string
		body     ecs.Rect
		expected Contacts
	}{
		{"resting on floor", ecs.Rect{X: 10, Y: 90, W: 10, H: 10}, Contacts{Ground: true}},
		{"hovering within threshold", ecs.Rect{X: 10, Y: 88.5, W: 10, H: 10}, Contacts{Ground: true}},
		{"hovering beyond threshold", ecs.Rect{X: 10, Y: 87, W: 10, H: 10}, Contacts{}},
		{"against wall in air", ecs.Rect{X: 54, Y: 40, W: 10, H: 10}, Contacts{Right: true}},
		{"in the corner", ecs.Rect{X: 54, Y: 90, W: 10, H: 10}, Contacts{Ground: true, Right: true}},
		{"diagonal to a tile is not ground", ecs.Rect{X: -10, Y: 90, W: 10, H: 10}, Contacts{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.RestingContacts(tt.body, []ecs.Rect{floor, wall}))
		})
	}
}

func TestResolve_VelocitySnapping(t *testing.T) {
	s := DefaultCollisionSettings()
	floor := ecs.Rect{X: 0, Y: 100, W: 64, H: 16}
	wall := ecs.Rect{X: 64, Y: 0, W: 16, H: 100}
	statics := []ecs.Rect{floor, wall}
	onFloor := ecs.Rect{X: 10, Y: 90, W: 10, H: 10}
	atWall := ecs.Rect{X: 54, Y: 40, W: 10, H: 10}

	tests := []struct {
		name     string
		body     ecs.Rect
		vel      ecs.Velocity
		expected ecs.Velocity
	}{
		{"small downward settles", onFloor, ecs.Velocity{Y: 40}, ecs.Velocity{}},
		{"small upward settles", onFloor, ecs.Velocity{Y: -10}, ecs.Velocity{}},
		{"fast downward kept", onFloor, ecs.Velocity{Y: 60}, ecs.Velocity{Y: 60}},
		{"jump kept", onFloor, ecs.Velocity{Y: -500}, ecs.Velocity{Y: -500}},
		{"slow push into wall stops", atWall, ecs.Velocity{X: 20}, ecs.Velocity{X: 0}},
		{"moving away from wall kept", atWall, ecs.Velocity{X: -20}, ecs.Velocity{X: -20}},
		{"fast push into wall kept", atWall, ecs.Velocity{X: 40}, ecs.Velocity{X: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Resolve(tt.body, tt.vel, statics)
			assert.Equal(t, tt.expected, res.Velocity)
			assert.Equal(t, tt.body, res.Bounds, "resting contact must not move the body")
		})
	}
}

func TestCollisionSystem_MergesEntityAndTileCandidates(t *testing.T) {
	w := ecs.NewWorld()
	addTestLevel(w, createTestLevel(0, 100, "####"))
	createTestPlatform(w, 64, 0, 16, 100)
	body := createTestBody(w, 58, 95, 10, 10, ecs.Velocity{X: 100, Y: 200})
	ecs.Set(w, body, ecs.Gravity{Accel: 980, MaxFall: 600})

	tick := createTestTick(w, input.Snapshot{})
	NewCollisionSystem(DefaultCollisionSettings()).Update(tick)

	pos := mustGet[ecs.Position](t, w, body)
	vel := mustGet[ecs.Velocity](t, w, body)
	g := mustGet[ecs.Gravity](t, w, body)

	assert.InDelta(t, 54.0, pos.X, eps, "pushed out of the platform entity")
	assert.InDelta(t, 90.0, pos.Y, eps, "pushed out of the tile floor")
	assert.Equal(t, ecs.Velocity{}, vel)
	assert.True(t, g.Grounded)
	assert.Equal(t, Contacts{Ground: true, Right: true}, tick.Contacts[body])
}

func TestCollisionSystem_AppliesColliderOffset(t *testing.T) {
	w := ecs.NewWorld()
	addTestLevel(w, createTestLevel(0, 100, "####"))
	body := w.CreateEntity()
	ecs.Set(w, body, ecs.Position{X: 10, Y: 80})
	ecs.Set(w, body, ecs.Collider{OffsetX: 2, OffsetY: 12, W: 8, H: 10, Kind: ecs.ColliderDynamic})
	ecs.Set(w, body, ecs.Velocity{Y: 100})

	NewCollisionSystem(DefaultCollisionSettings()).Update(createTestTick(w, input.Snapshot{}))

	pos := mustGet[ecs.Position](t, w, body)
	assert.InDelta(t, 78.0, pos.Y, eps)
	assert.InDelta(t, 10.0, pos.X, eps)
}

func TestCollisionSystem_SkipsIneligibleEntities(t *testing.T) {
	w := ecs.NewWorld()
	addTestLevel(w, createTestLevel(0, 100, "####"))

	zeroSize := createTestBody(w, 4, 95, 0, 0, ecs.Velocity{Y: 100})
	noVelocity := w.CreateEntity()
	ecs.Set(w, noVelocity, ecs.Position{X: 4, Y: 95})
	ecs.Set(w, noVelocity, ecs.Collider{W: 10, H: 10, Kind: ecs.ColliderDynamic})

	tick := createTestTick(w, input.Snapshot{})
	NewCollisionSystem(DefaultCollisionSettings()).Update(tick)

	assert.Equal(t, ecs.Position{X: 4, Y: 95}, mustGet[ecs.Position](t, w, zeroSize))
	assert.Equal(t, ecs.Position{X: 4, Y: 95}, mustGet[ecs.Position](t, w, noVelocity))
	assert.Empty(t, tick.Contacts)
}

func TestCollisionSystem_GroundedIffRestingProbe(t *testing.T) {
	w := ecs.NewWorld()
	addTestLevel(w, createTestLevel(0, 100, "########"))

	hovering := createTestBody(w, 10, 88.5, 10, 10, ecs.Velocity{})
	ecs.Set(w, hovering, ecs.Gravity{Accel: 980, MaxFall: 600})
	airborne := createTestBody(w, 40, 80, 10, 10, ecs.Velocity{})
	ecs.Set(w, airborne, ecs.Gravity{Accel: 980, MaxFall: 600, Grounded: true})

	tick := createTestTick(w, input.Snapshot{})
	NewCollisionSystem(DefaultCollisionSettings()).Update(tick)

	assert.True(t, mustGet[ecs.Gravity](t, w, hovering).Grounded, "no overlap, but within the contact threshold")
	assert.Equal(t, 88.5, mustGet[ecs.Position](t, w, hovering).Y)
	assert.False(t, mustGet[ecs.Gravity](t, w, airborne).Grounded, "stale grounded flag must be cleared")
}

func TestPipeline_LandingIsStable(t *testing.T) {
	w := ecs.NewWorld()
	addTestLevel(w, createTestLevel(0, 160, "##########"))
	body := createTestBody(w, 34, 20, 10, 20, ecs.Velocity{})
	ecs.Set(w, body, ecs.Gravity{Accel: 980, MaxFall: 600})

	runTestTicks(w, 120, input.Snapshot{})

	pos := mustGet[ecs.Position](t, w, body)
	require.True(t, mustGet[ecs.Gravity](t, w, body).Grounded)
	assert.InDelta(t, 140.0, pos.Y, eps)

	for i := 0; i < 60; i++ {
		tick := runTestTicks(w, 1, input.Snapshot{})
		assert.True(t, tick.Contacts[body].Ground, "grounding flickered on tick %d", i)
		assert.Equal(t, ecs.Velocity{}, mustGet[ecs.Velocity](t, w, body))
		assert.InDelta(t, 140.0, mustGet[ecs.Position](t, w, body).Y, eps)
	}
}

func TestPipeline_FastFallDoesNotTunnel(t *testing.T) {
	w := ecs.NewWorld()
	addTestLevel(w, createTestLevel(0, 400, "####"))
	body := createTestBody(w, 20, 0, 10, 10, ecs.Velocity{Y: 600})
	ecs.Set(w, body, ecs.Gravity{Accel: 980, MaxFall: 600})

	runTestTicks(w, 90, input.Snapshot{})

	pos := mustGet[ecs.Position](t, w, body)
	assert.InDelta(t, 390.0, pos.Y, eps)
}
