package world

import (
	"context"
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftworld/internal/chunk"
	"driftworld/internal/config"
	"driftworld/internal/lore"
)

const testDT = 1.0 / 60

type stubLore struct {
	block chan struct{}
	out   lore.Lore
}

func (s *stubLore) Generate(ctx context.Context, biome, timeLabel, landmark string) lore.Lore {
	if s.block != nil {
		<-s.block
	}
	return s.out
}

func newTestWorld(t *testing.T, mutate func(*config.Config)) *World {
	t.Helper()
	cfg := config.Defaults()
	cfg.RenderDistance = 1
	if mutate != nil {
		mutate(&cfg)
	}
	logger := log.New(io.Discard)
	scanner := NewScanner(&stubLore{out: lore.Placeholder}, logger)
	return New(cfg, scanner, logger)
}

func clearObstacles(w *World) {
	for _, ch := range w.chunks {
		ch.Obstacles = nil
	}
}

func TestSpawnOnSurface(t *testing.T) {
	w := newTestWorld(t, nil)
	ground := w.field.Height(0, 0)
	assert.InDelta(t, ground+w.cfg.Player.EyeHeight, w.obs.Pos.Y(), 1e-9)
	assert.Equal(t, w.cfg.Player.StaminaMax, w.obs.Stamina)
}

func TestSettlesOnGround(t *testing.T) {
	w := newTestWorld(t, nil)
	w.obs.Pos[1] += 30 // drop from above

	for i := 0; i < 5*60; i++ {
		w.Step(testDT)
	}

	ground, ok := w.groundHeight(w.obs.Pos.X(), w.obs.Pos.Z())
	require.True(t, ok)
	assert.True(t, w.obs.Grounded)
	assert.InDelta(t, ground+w.cfg.Player.EyeHeight, w.obs.Pos.Y(), 1e-6)
}

func TestJumpLeavesGround(t *testing.T) {
	w := newTestWorld(t, nil)
	w.Step(testDT) // settle, sets Grounded

	require.True(t, w.obs.Grounded)
	ground := w.obs.Pos.Y()

	w.SetInput(InputState{Jump: true})
	w.Step(testDT)

	assert.False(t, w.obs.Grounded)
	assert.Greater(t, w.obs.Pos.Y(), ground)
	assert.Greater(t, w.obs.Vel.Y(), 0.0)
}

func TestSustainedLiftDrainsStamina(t *testing.T) {
	w := newTestWorld(t, nil)
	w.Step(testDT)
	w.SetInput(InputState{Jump: true})

	flew := false
	for i := 0; i < 60; i++ {
		w.Step(testDT)
		if w.obs.Flying {
			flew = true
		}
	}
	assert.True(t, flew, "holding jump while airborne never engaged lift")
	assert.Less(t, w.obs.Stamina, w.cfg.Player.StaminaMax)
}

func TestStaminaStaysInRange(t *testing.T) {
	w := newTestWorld(t, nil)
	w.SetInput(InputState{Forward: true, Boost: true, Jump: true})

	for i := 0; i < 30*60; i++ {
		w.Step(testDT)
		require.GreaterOrEqual(t, w.obs.Stamina, 0.0, "tick %d", i)
		require.LessOrEqual(t, w.obs.Stamina, w.cfg.Player.StaminaMax, "tick %d", i)
	}
}

func TestStaminaRegeneratesWhenIdle(t *testing.T) {
	w := newTestWorld(t, nil)
	w.obs.Stamina = 10

	w.SetInput(InputState{})
	for i := 0; i < 10*60; i++ {
		w.Step(testDT)
	}
	assert.Equal(t, w.cfg.Player.StaminaMax, w.obs.Stamina)
}

func TestMovementFollowsYaw(t *testing.T) {
	w := newTestWorld(t, nil)
	w.Step(testDT)

	// Yaw 0 looks down +X, so holding forward should move along +X only.
	// Scattered colliders could deflect the path, so clear them.
	clearObstacles(w)
	w.SetLook(0, 0)
	w.SetInput(InputState{Forward: true})
	start := w.obs.Pos
	for i := 0; i < 60; i++ {
		w.Step(testDT)
	}
	assert.Greater(t, w.obs.Pos.X(), start.X())
	assert.InDelta(t, start.Z(), w.obs.Pos.Z(), 1e-6)
}

func TestBoostIsFaster(t *testing.T) {
	run := func(boost bool) float64 {
		w := newTestWorld(t, nil)
		w.Step(testDT)
		clearObstacles(w)
		w.SetLook(0, 0)
		w.SetInput(InputState{Forward: true, Boost: boost})
		start := w.obs.Pos
		for i := 0; i < 60; i++ {
			w.Step(testDT)
		}
		return w.obs.Pos.Sub(start).Len()
	}
	assert.Greater(t, run(true), run(false))
}

func TestRespawnBelowFloor(t *testing.T) {
	w := newTestWorld(t, nil)

	// Teleport far outside the loaded window so no ground catches the fall.
	w.obs.Pos = mgl64.Vec3{100000, -49, 100000}
	w.obs.Vel = mgl64.Vec3{0, -100, 0}
	w.stepPhysics(testDT, InputState{})

	assert.Equal(t, w.cfg.Player.RespawnHeight, w.obs.Pos.Y())
	assert.False(t, w.obs.Grounded)
}

func TestObstaclePushOut(t *testing.T) {
	w := newTestWorld(t, nil)
	w.Step(testDT)

	ch, ok := w.chunkAt(w.obs.Pos.X(), w.obs.Pos.Z())
	require.True(t, ok)

	// Drop a collider directly on the observer.
	ob := chunk.Obstacle{X: w.obs.Pos.X() + 0.1, Z: w.obs.Pos.Z(), Radius: 2}
	ch.Obstacles = append(ch.Obstacles, ob)

	w.Step(testDT)

	dx := w.obs.Pos.X() - ob.X
	dz := w.obs.Pos.Z() - ob.Z
	dist := math.Sqrt(dx*dx + dz*dz)
	assert.GreaterOrEqual(t, dist, w.cfg.Player.Radius+ob.Radius-1e-9)
}

func TestPitchClamped(t *testing.T) {
	w := newTestWorld(t, nil)
	w.SetLook(0, 170)
	w.Step(testDT)
	assert.Equal(t, 89.0, w.obs.Pitch)

	w.SetLook(0, -170)
	w.Step(testDT)
	assert.Equal(t, -89.0, w.obs.Pitch)
}

func TestTimeOfDayWraps(t *testing.T) {
	w := newTestWorld(t, func(c *config.Config) { c.DaySeconds = 1 })

	for i := 0; i < 90; i++ {
		w.Step(testDT)
		require.GreaterOrEqual(t, w.timeOfDay, 0.0)
		require.Less(t, w.timeOfDay, 1.0)
	}
}
