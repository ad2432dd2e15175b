package terrain

import (
	"github.com/go-gl/mathgl/mgl64"

	"driftworld/internal/mathx"
)

// Palette maps biomes to base surface colors and applies the height-driven
// blends (beach sand near the water line, snow caps above the snow blend
// height).
type Palette struct {
	base  map[Biome]mgl64.Vec3
	sand  mgl64.Vec3
	snow  mgl64.Vec3
	field *Field
}

const (
	snowBlendStart = 45.0
	snowBlendRange = 25.0
	beachBlendBand = 4.0
)

var defaultBase = map[Biome]mgl64.Vec3{
	Plains:      {0.38, 0.60, 0.25},
	Forest:      {0.22, 0.44, 0.18},
	Desert:      {0.85, 0.76, 0.50},
	Snow:        {0.88, 0.90, 0.93},
	Ocean:       {0.76, 0.70, 0.50}, // seabed sand
	Mountain:    {0.48, 0.46, 0.44},
	SakuraGrove: {0.48, 0.66, 0.36},
}

// NewPalette builds a palette over a field. overrides replaces base colors
// per biome name and may be nil.
func NewPalette(field *Field, overrides map[string][3]float64) Palette {
	base := make(map[Biome]mgl64.Vec3, len(defaultBase))
	for b, c := range defaultBase {
		base[b] = c
	}
	for name, c := range overrides {
		for b := range defaultBase {
			if b.String() == name {
				base[b] = mgl64.Vec3{c[0], c[1], c[2]}
			}
		}
	}
	return Palette{
		base:  base,
		sand:  mgl64.Vec3{0.80, 0.72, 0.48},
		snow:  mgl64.Vec3{0.95, 0.96, 0.98},
		field: field,
	}
}

// Color returns the surface color for a vertex: biome base, lightness
// perturbed by detail noise, blended toward sand near the water line and
// toward snow on high terrain.
func (p Palette) Color(x, z, height float64, biome Biome) mgl64.Vec3 {
	c, ok := p.base[biome]
	if !ok {
		c = p.base[Plains]
	}

	// Small per-vertex lightness variation so large faces do not read flat.
	l := 1 + p.field.Detail(x, z)*0.08
	c = c.Mul(l)

	wl := p.field.WaterLevel()
	if beach := mathx.Clamp(1-(height-wl)/beachBlendBand, 0, 1); beach > 0 {
		c = lerp(c, p.sand, beach)
	}
	if sc := mathx.Clamp((height-snowBlendStart)/snowBlendRange, 0, 1); sc > 0 {
		c = lerp(c, p.snow, sc)
	}

	return mgl64.Vec3{
		mathx.Clamp(c.X(), 0, 1),
		mathx.Clamp(c.Y(), 0, 1),
		mathx.Clamp(c.Z(), 0, 1),
	}
}

func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
