package world

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"driftworld/internal/chunk"
	"driftworld/internal/config"
	"driftworld/internal/terrain"
)

// InputState is the key-state flag set the simulation consumes each tick.
// Capturing OS input events and translating them into these flags is the
// front-end's job.
type InputState struct {
	Forward  bool `json:"forward"`
	Backward bool `json:"backward"`
	Left     bool `json:"left"`
	Right    bool `json:"right"`
	Jump     bool `json:"jump"`
	Boost    bool `json:"boost"`
}

// Observer is the simulated player: position, look direction, velocity and
// the stamina resource that pays for boosting and sustained lift.
type Observer struct {
	Pos      mgl64.Vec3
	Vel      mgl64.Vec3
	Yaw      float64 // degrees, 0 looks down +X
	Pitch    float64 // degrees, clamped by SetLook
	Grounded bool
	Flying   bool
	Stamina  float64
}

// World owns the full simulation state: the loaded chunk arena, the
// observer, time of day and the scan orchestration. All mutation happens on
// the goroutine driving Run (or direct Step calls in tests); concurrent
// readers get published snapshots.
type World struct {
	cfg   config.Config
	log   *log.Logger
	field *terrain.Field
	gen   *chunk.Generator

	chunks    map[chunk.Coord]*chunk.Chunk
	obs       Observer
	timeOfDay float64
	tick      uint64
	poiNear   *chunk.PointOfInterest

	inputMu sync.Mutex
	input   InputState
	lookYaw, lookPitch float64
	lookSet bool

	snapMu sync.RWMutex
	snap   Snapshot

	subMu   sync.Mutex
	subs    map[int]chan Snapshot
	nextSub int

	scanner *Scanner
}

// New builds a world, spawns the observer on the terrain at the origin and
// preloads the streaming window around it.
func New(cfg config.Config, scanner *Scanner, logger *log.Logger) *World {
	field := terrain.NewField(cfg.Seed, cfg.WaterLevel)
	pal := terrain.NewPalette(field, cfg.Palette)

	w := &World{
		cfg:     cfg,
		log:     logger,
		field:   field,
		gen:     chunk.NewGenerator(field, pal, cfg),
		chunks:  make(map[chunk.Coord]*chunk.Chunk),
		subs:    make(map[int]chan Snapshot),
		scanner: scanner,
	}
	w.obs = Observer{
		Pos:     mgl64.Vec3{0, field.Height(0, 0) + cfg.Player.EyeHeight, 0},
		Yaw:     -90,
		Stamina: cfg.Player.StaminaMax,
	}
	w.updateStreaming()
	w.publish()
	return w
}

// Field exposes the pure terrain function for collaborators that need
// elevation or biome lookups outside the tick loop.
func (w *World) Field() *terrain.Field { return w.field }

// Config returns the tuning the world was built with.
func (w *World) Config() config.Config { return w.cfg }

// Run drives the fixed-rate tick loop until the context is canceled.
// Everything inside a tick runs on this goroutine, so the chunk table needs
// no locking.
func (w *World) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(w.cfg.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	dt := interval.Seconds()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Step(dt)
		}
	}
}

// Step advances the simulation one tick: physics, then streaming, then the
// ambient time-of-day, then snapshot publication. Exposed so tests can run
// deterministic tick sequences without the wall clock.
func (w *World) Step(dt float64) {
	in := w.currentInput()
	w.stepPhysics(dt, in)
	w.updateStreaming()

	w.timeOfDay += dt / w.cfg.DaySeconds
	w.timeOfDay -= math.Floor(w.timeOfDay)
	w.tick++

	w.publish()
}

// SetInput replaces the key-state flags applied from the next tick onward.
func (w *World) SetInput(in InputState) {
	w.inputMu.Lock()
	w.input = in
	w.inputMu.Unlock()
}

// SetLook updates yaw and pitch. Pitch is clamped to avoid flipping the
// move basis at the poles.
func (w *World) SetLook(yaw, pitch float64) {
	w.inputMu.Lock()
	w.lookYaw, w.lookPitch, w.lookSet = yaw, pitch, true
	w.inputMu.Unlock()
}

// currentInput drains the staged look update and returns the input flags.
// Called once per tick, at the tick boundary.
func (w *World) currentInput() InputState {
	w.inputMu.Lock()
	defer w.inputMu.Unlock()
	if w.lookSet {
		w.obs.Yaw = w.lookYaw
		w.obs.Pitch = clamp(w.lookPitch, -89, 89)
		w.lookSet = false
	}
	return w.input
}

// GenerateChunk builds a chunk outside the streaming lifecycle, for
// transport payloads. It uses a throwaway generator so it never races the
// tick goroutine; terrain output matches streamed chunks exactly, cosmetic
// scatter may differ.
func (w *World) GenerateChunk(cx, cz int) *chunk.Chunk {
	pal := terrain.NewPalette(w.field, w.cfg.Palette)
	return chunk.NewGenerator(w.field, pal, w.cfg).Generate(cx, cz)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
