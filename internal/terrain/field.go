package terrain

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"driftworld/internal/mathx"
)

// Noise scales. Continent noise shapes landmasses, ridge noise carves
// mountain chains on top of it, rough noise adds small surface detail and
// the temperature field drives biome selection.
const (
	continentScale   = 512.0
	ridgeScale       = 128.0
	roughScale       = 16.0
	temperatureScale = 256.0
	detailScale      = 6.0

	// Land rarer than this bias would make oceans dominate.
	continentBias = 0.15

	mountainHeight = 45.0
	snowLineLow    = 30.0
	abyssFloor     = -15.0
)

// Field is the pure elevation/biome function of the world. All methods are
// deterministic for a given seed and safe for concurrent use.
type Field struct {
	seed        int64
	waterLevel  float64
	continent   opensimplex.Noise
	ridge       opensimplex.Noise
	rough       opensimplex.Noise
	temperature *perlin.Perlin
	detail      *perlin.Perlin
}

// NewField builds a field from an explicit seed. No package-level noise
// state exists; everything derives from this constructor.
func NewField(seed int64, waterLevel float64) *Field {
	return &Field{
		seed:        seed,
		waterLevel:  waterLevel,
		continent:   opensimplex.New(seed),
		ridge:       opensimplex.New(seed + 1),
		rough:       opensimplex.New(seed + 2),
		temperature: perlin.NewPerlin(2, 2, 3, seed+3),
		detail:      perlin.NewPerlin(2, 2, 2, seed+4),
	}
}

// Seed returns the seed the field was built from.
func (f *Field) Seed() int64 { return f.seed }

// WaterLevel returns the configured water plane height.
func (f *Field) WaterLevel() float64 { return f.waterLevel }

// Height returns the terrain elevation at a world coordinate. It is never
// stored anywhere; chunks are regenerated from this function alone.
func (f *Field) Height(x, z float64) float64 {
	c := f.continent.Eval2(x/continentScale, z/continentScale) + continentBias

	var h float64
	if c > 0 {
		h = c * 15

		// Ridged mountains: fold the noise around zero and sharpen it, so
		// crests form lines instead of blobs.
		r := 1 - math.Abs(f.ridge.Eval2(x/ridgeScale, z/ridgeScale))
		h += r * r * r * 45 * c

		h += f.rough.Eval2(x/roughScale, z/roughScale) * 1.5

		if h < f.waterLevel+0.5 {
			h = f.waterLevel + 0.5
		}
	} else {
		h = c * 20
		if h < abyssFloor {
			h = abyssFloor
		}
	}

	// Flatten the coastline band toward the beach height.
	if h >= f.waterLevel-1 && h <= f.waterLevel+2 {
		h += (f.waterLevel + 0.5 - h) * 0.4
	}
	return h
}

// BiomeAt classifies a world coordinate given its elevation. First match
// wins: water, then altitude bands, then the temperature field.
func (f *Field) BiomeAt(x, z, height float64) Biome {
	switch {
	case height < f.waterLevel+0.2:
		return Ocean
	case height > mountainHeight:
		return Mountain
	case height > snowLineLow && f.snowDraw(x, z) > 0.5:
		return Snow
	}

	t := f.temperature.Noise2D(x/temperatureScale, z/temperatureScale)
	switch {
	case t < -0.4:
		return Desert
	case t > 0.5:
		return Forest
	case t > 0.2:
		return SakuraGrove
	default:
		return Plains
	}
}

// snowDraw decides snow-band classification: a 50% draw, hashed per
// coordinate so the result is reproducible and classification stays a pure
// function.
func (f *Field) snowDraw(x, z float64) float64 {
	return mathx.Unit(mathx.Hash2(f.seed+7, int(math.Floor(x)), int(math.Floor(z))))
}

// Detail returns a small-scale noise term in [-1, 1] used for color
// perturbation and ground-cover gating.
func (f *Field) Detail(x, z float64) float64 {
	return f.detail.Noise2D(x/detailScale, z/detailScale)
}
