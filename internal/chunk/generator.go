package chunk

import (
	"math/rand"

	"driftworld/internal/config"
	"driftworld/internal/terrain"
)

// Fixed collision radii per prop kind. Deliberately decoupled from visual
// scale: a large oak still has a trunk-sized footprint.
const (
	pineRadius   = 0.55
	oakRadius    = 0.8
	sakuraRadius = 0.7
	cactusRadius = 0.5
)

// poiSeed derives the per-chunk seed for point-of-interest placement. The
// constants are load-bearing: changing them moves every monolith.
func poiSeed(cx, cz int) int64 {
	return int64(cx)*49297 + int64(cz)*92713
}

// Generator builds chunks from the terrain field. Terrain heights, biomes
// and point-of-interest placement are deterministic per seed; scatter jitter
// and species draws come from a separate cosmetic stream that is not
// required to be reproducible.
type Generator struct {
	field *terrain.Field
	pal   terrain.Palette
	cfg   config.Config
	rng   *rand.Rand
}

// NewGenerator creates a generator. The cosmetic jitter stream is seeded
// from the world seed so a fresh process scatters the same way, but the
// stream advances across chunk generations.
func NewGenerator(field *terrain.Field, pal terrain.Palette, cfg config.Config) *Generator {
	return &Generator{
		field: field,
		pal:   pal,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Generate builds the chunk at a coordinate: surface grid, scattered props,
// obstacle list and at most one point of interest.
func (g *Generator) Generate(cx, cz int) *Chunk {
	ch := &Chunk{
		Coord: Coord{X: cx, Z: cz},
		Size:  g.cfg.ChunkSize,
	}
	g.buildSurface(ch)
	g.scatterProps(ch)
	g.placeGroundCover(ch)
	g.placePOI(ch)
	return ch
}

func (g *Generator) buildSurface(ch *Chunk) {
	res := g.cfg.SurfaceRes
	ox, oz := ch.Origin()
	step := g.cfg.ChunkSize / float64(res-1)

	ch.Surface = Surface{
		Res:     res,
		Heights: make([]float64, res*res),
		Colors:  make([][3]float64, res*res),
	}
	for iz := 0; iz < res; iz++ {
		for ix := 0; ix < res; ix++ {
			wx := ox + float64(ix)*step
			wz := oz + float64(iz)*step
			h := g.field.Height(wx, wz)
			b := g.field.BiomeAt(wx, wz, h)
			c := g.pal.Color(wx, wz, h, b)

			i := iz*res + ix
			ch.Surface.Heights[i] = h
			ch.Surface.Colors[i] = [3]float64{c.X(), c.Y(), c.Z()}
		}
	}
}

// scatterProps walks a coarse grid across the chunk and rolls one draw per
// surviving sample. The first textual rule wins; note the boulder band
// (r < 0.03) is fully shadowed by the pebble band (r < 0.15), so boulders
// never spawn. Inherited behavior, kept as-is.
func (g *Generator) scatterProps(ch *Chunk) {
	ox, oz := ch.Origin()
	spacing := g.cfg.ScatterSpacing
	wl := g.field.WaterLevel()

	for sx := spacing / 2; sx < g.cfg.ChunkSize; sx += spacing {
		for sz := spacing / 2; sz < g.cfg.ChunkSize; sz += spacing {
			wx := ox + sx + (g.rng.Float64()-0.5)*spacing
			wz := oz + sz + (g.rng.Float64()-0.5)*spacing

			h := g.field.Height(wx, wz)
			if h <= wl+0.5 {
				continue
			}
			biome := g.field.BiomeAt(wx, wz, h)
			r := g.rng.Float64()

			switch {
			case r < 0.15:
				ch.Props = append(ch.Props, Prop{Kind: PropPebble, X: wx, Y: h, Z: wz, Scale: 0.2 + r})
			case r < 0.03:
				scale := 0.8 + g.rng.Float64()
				ch.Props = append(ch.Props, Prop{Kind: PropBoulder, X: wx, Y: h, Z: wz, Scale: scale})
				ch.Obstacles = append(ch.Obstacles, Obstacle{X: wx, Z: wz, Radius: 0.8 * scale})
			default:
				g.placeFlora(ch, biome, r, wx, h, wz)
			}
		}
	}
}

func (g *Generator) placeFlora(ch *Chunk, biome terrain.Biome, r, wx, h, wz float64) {
	scale := 0.8 + g.rng.Float64()*0.6

	switch biome {
	case terrain.Forest:
		if r > 0.4 {
			kind, radius := PropOak, oakRadius
			if r > 0.75 {
				kind, radius = PropPine, pineRadius
			}
			ch.Props = append(ch.Props, Prop{Kind: kind, X: wx, Y: h, Z: wz, Scale: scale})
			ch.Obstacles = append(ch.Obstacles, Obstacle{X: wx, Z: wz, Radius: radius})
		}
	case terrain.SakuraGrove:
		if r > 0.65 {
			ch.Props = append(ch.Props, Prop{Kind: PropSakura, X: wx, Y: h, Z: wz, Scale: scale})
			ch.Obstacles = append(ch.Obstacles, Obstacle{X: wx, Z: wz, Radius: sakuraRadius})
		}
	case terrain.Plains:
		if r > 0.97 {
			ch.Props = append(ch.Props, Prop{Kind: PropOak, X: wx, Y: h, Z: wz, Scale: scale})
			ch.Obstacles = append(ch.Obstacles, Obstacle{X: wx, Z: wz, Radius: oakRadius})
		}
	case terrain.Desert:
		if r > 0.96 {
			ch.Props = append(ch.Props, Prop{Kind: PropCactus, X: wx, Y: h, Z: wz, Scale: scale})
			ch.Obstacles = append(ch.Obstacles, Obstacle{X: wx, Z: wz, Radius: cactusRadius})
		}
	}
}

// placeGroundCover runs the fine, noise-gated grass pass. Purely cosmetic:
// no obstacles, independent of the coarse scatter.
func (g *Generator) placeGroundCover(ch *Chunk) {
	ox, oz := ch.Origin()
	step := g.cfg.ScatterSpacing / 2
	wl := g.field.WaterLevel()

	for sx := step / 2; sx < g.cfg.ChunkSize; sx += step {
		for sz := step / 2; sz < g.cfg.ChunkSize; sz += step {
			wx, wz := ox+sx, oz+sz
			h := g.field.Height(wx, wz)
			if h <= wl+2 || h >= 40 {
				continue
			}
			d := g.field.Detail(wx, wz)
			switch g.field.BiomeAt(wx, wz, h) {
			case terrain.Plains, terrain.Forest:
				if d > 0.2 {
					ch.Props = append(ch.Props, Prop{Kind: PropGrass, X: wx, Y: h, Z: wz, Scale: 1})
				}
			case terrain.SakuraGrove:
				if d > 0.45 {
					ch.Props = append(ch.Props, Prop{Kind: PropGrass, X: wx, Y: h, Z: wz, Scale: 1})
				}
			}
		}
	}
}

// placePOI rolls the chunk-seeded monolith draw. Deterministic per chunk
// coordinate: a chunk either always has its monolith or never does.
func (g *Generator) placePOI(ch *Chunk) {
	rng := rand.New(rand.NewSource(poiSeed(ch.Coord.X, ch.Coord.Z)))
	if rng.Float64() <= g.cfg.POI.Chance {
		return
	}

	ox, oz := ch.Origin()
	h := g.field.Height(ox, oz)
	if h <= g.field.WaterLevel()+2 {
		return
	}

	ch.Props = append(ch.Props, Prop{Kind: PropMonolith, X: ox, Y: h, Z: oz, Scale: 1})
	ch.Obstacles = append(ch.Obstacles, Obstacle{X: ox, Z: oz, Radius: g.cfg.POI.ObstacleRadius})
	ch.POI = &PointOfInterest{
		X: ox, Y: h, Z: oz,
		Biome: g.field.BiomeAt(ox, oz, h),
	}
}
