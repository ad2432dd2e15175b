package world

import (
	"driftworld/internal/lore"
)

// POIInfo is the wire-facing view of a nearby point of interest.
type POIInfo struct {
	Position [3]float64 `json:"position"`
	Biome    string     `json:"biome"`
}

// Snapshot is an immutable view of the observer and ambient state as of one
// tick. Safe to hand to any goroutine.
type Snapshot struct {
	Tick      uint64     `json:"tick"`
	Position  [3]float64 `json:"position"`
	Velocity  [3]float64 `json:"velocity"`
	Yaw       float64    `json:"yaw"`
	Pitch     float64    `json:"pitch"`
	Stamina   float64    `json:"stamina"`
	Grounded  bool       `json:"grounded"`
	Flying    bool       `json:"flying"`
	Biome     string     `json:"biome"`
	TimeOfDay float64    `json:"time_of_day"`
	TimeLabel string     `json:"time_label"`
	Loaded    int        `json:"loaded_chunks"`
	POINearby bool       `json:"poi_nearby"`
	POI       *POIInfo   `json:"poi,omitempty"`
}

// publish rebuilds the snapshot from the live state and fans it out to
// subscribers. Slow subscribers miss ticks rather than stall the loop.
func (w *World) publish() {
	pos := w.obs.Pos
	h := w.field.Height(pos.X(), pos.Z())

	s := Snapshot{
		Tick:      w.tick,
		Position:  [3]float64{pos.X(), pos.Y(), pos.Z()},
		Velocity:  [3]float64{w.obs.Vel.X(), w.obs.Vel.Y(), w.obs.Vel.Z()},
		Yaw:       w.obs.Yaw,
		Pitch:     w.obs.Pitch,
		Stamina:   w.obs.Stamina,
		Grounded:  w.obs.Grounded,
		Flying:    w.obs.Flying,
		Biome:     w.field.BiomeAt(pos.X(), pos.Z(), h).String(),
		TimeOfDay: w.timeOfDay,
		TimeLabel: lore.TimeLabel(w.timeOfDay),
		Loaded:    len(w.chunks),
		POINearby: w.poiNear != nil,
	}
	if w.poiNear != nil {
		s.POI = &POIInfo{
			Position: [3]float64{w.poiNear.X, w.poiNear.Y, w.poiNear.Z},
			Biome:    w.poiNear.Biome.String(),
		}
	}

	w.snapMu.Lock()
	w.snap = s
	w.snapMu.Unlock()

	w.subMu.Lock()
	for _, ch := range w.subs {
		select {
		case ch <- s:
		default:
		}
	}
	w.subMu.Unlock()
}

// Snapshot returns the most recently published state.
func (w *World) Snapshot() Snapshot {
	w.snapMu.RLock()
	defer w.snapMu.RUnlock()
	return w.snap
}

// Subscribe registers a per-tick snapshot feed. The returned cancel func
// removes the subscription and closes the channel.
func (w *World) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 4)

	w.subMu.Lock()
	id := w.nextSub
	w.nextSub++
	w.subs[id] = ch
	w.subMu.Unlock()

	cancel := func() {
		w.subMu.Lock()
		if _, ok := w.subs[id]; ok {
			delete(w.subs, id)
			close(ch)
		}
		w.subMu.Unlock()
	}
	return ch, cancel
}
