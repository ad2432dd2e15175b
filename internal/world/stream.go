package world

import (
	"math"

	"driftworld/internal/chunk"
)

// updateStreaming keeps the chunk table equal to the square window of
// radius RenderDistance around the observer's chunk: evict everything that
// left the window, generate everything that entered it, then rescan for a
// nearby point of interest. Returns whether one is in range.
func (w *World) updateStreaming() bool {
	px := int(math.Floor(w.obs.Pos.X() / w.cfg.ChunkSize))
	pz := int(math.Floor(w.obs.Pos.Z() / w.cfg.ChunkSize))
	rd := w.cfg.RenderDistance

	// Evict first so the table never exceeds the window bound.
	for coord, ch := range w.chunks {
		if abs(coord.X-px) > rd || abs(coord.Z-pz) > rd {
			delete(w.chunks, coord)
			ch.Release()
			w.log.Debug("chunk evicted", "chunk_x", coord.X, "chunk_z", coord.Z)
		}
	}

	for cx := px - rd; cx <= px+rd; cx++ {
		for cz := pz - rd; cz <= pz+rd; cz++ {
			coord := chunk.Coord{X: cx, Z: cz}
			if _, ok := w.chunks[coord]; ok {
				continue
			}
			ch := w.gen.Generate(cx, cz)
			w.chunks[coord] = ch
			if ch.POI != nil {
				w.log.Info("point of interest generated", "chunk_x", cx, "chunk_z", cz, "biome", ch.POI.Biome)
			}
		}
	}

	w.poiNear = w.scanPOI()
	return w.poiNear != nil
}

// scanPOI walks all loaded chunks and returns a point of interest within
// the configured distance of the observer. When several are in range at
// once, whichever the scan visits last wins; with Go map iteration that is
// an arbitrary pick, which the contract allows.
func (w *World) scanPOI() *chunk.PointOfInterest {
	var found *chunk.PointOfInterest
	maxD := w.cfg.POI.NearbyDistance

	for _, ch := range w.chunks {
		if ch.POI == nil {
			continue
		}
		dx := ch.POI.X - w.obs.Pos.X()
		dz := ch.POI.Z - w.obs.Pos.Z()
		if dx*dx+dz*dz <= maxD*maxD {
			found = ch.POI
		}
	}
	return found
}

// LoadedChunks returns the number of chunks currently in the table.
func (w *World) LoadedChunks() int { return len(w.chunks) }

// chunkAt returns the loaded chunk containing a world position, if any.
func (w *World) chunkAt(wx, wz float64) (*chunk.Chunk, bool) {
	coord := chunk.Coord{
		X: int(math.Floor(wx / w.cfg.ChunkSize)),
		Z: int(math.Floor(wz / w.cfg.ChunkSize)),
	}
	ch, ok := w.chunks[coord]
	return ch, ok
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
