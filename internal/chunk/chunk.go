package chunk

import (
	"driftworld/internal/terrain"
)

// Coord keys a chunk in the world table.
type Coord struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// Obstacle is a static circular collider in world space, immutable after
// chunk creation and owned by its chunk.
type Obstacle struct {
	X      float64 `json:"x"`
	Z      float64 `json:"z"`
	Radius float64 `json:"radius"`
}

// PropKind identifies a scattered decorative object.
type PropKind string

const (
	PropPebble   PropKind = "pebble"
	PropBoulder  PropKind = "boulder"
	PropPine     PropKind = "pine"
	PropOak      PropKind = "oak"
	PropSakura   PropKind = "sakura"
	PropCactus   PropKind = "cactus"
	PropGrass    PropKind = "grass"
	PropMonolith PropKind = "monolith"
)

// Prop is a placed decorative instance. Colliding kinds also register an
// Obstacle; grass and pebbles never do.
type Prop struct {
	Kind  PropKind `json:"kind"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Z     float64  `json:"z"`
	Scale float64  `json:"scale"`
}

// PointOfInterest marks the rare monolith feature the observer can scan.
type PointOfInterest struct {
	X     float64       `json:"x"`
	Y     float64       `json:"y"`
	Z     float64       `json:"z"`
	Biome terrain.Biome `json:"-"`
}

// Surface is the generated heightfield mesh data: a Res x Res vertex grid in
// row-major order with one color per vertex.
type Surface struct {
	Res     int          `json:"res"`
	Heights []float64    `json:"heights"`
	Colors  [][3]float64 `json:"colors"`
}

// Chunk owns everything generated for one streaming cell. Creation is atomic
// from the caller's perspective; a chunk visible in the world table is fully
// built.
type Chunk struct {
	Coord     Coord            `json:"coord"`
	Size      float64          `json:"size"`
	Surface   Surface          `json:"surface"`
	Props     []Prop           `json:"props"`
	Obstacles []Obstacle       `json:"obstacles"`
	POI       *PointOfInterest `json:"poi,omitempty"`
}

// Origin returns the chunk's minimum-corner world position.
func (c *Chunk) Origin() (float64, float64) {
	return float64(c.Coord.X) * c.Size, float64(c.Coord.Z) * c.Size
}

// HeightAt bilinearly interpolates the stored vertex grid at a world
// position. This is the surface the physics ground ray hits, so it must
// agree with what a renderer would triangulate from the same grid.
func (c *Chunk) HeightAt(wx, wz float64) float64 {
	ox, oz := c.Origin()
	step := c.Size / float64(c.Surface.Res-1)

	fx := (wx - ox) / step
	fz := (wz - oz) / step
	max := float64(c.Surface.Res - 1)
	if fx < 0 {
		fx = 0
	} else if fx > max {
		fx = max
	}
	if fz < 0 {
		fz = 0
	} else if fz > max {
		fz = max
	}

	x0, z0 := int(fx), int(fz)
	x1, z1 := x0+1, z0+1
	if x1 > c.Surface.Res-1 {
		x1 = c.Surface.Res - 1
	}
	if z1 > c.Surface.Res-1 {
		z1 = c.Surface.Res - 1
	}
	tx, tz := fx-float64(x0), fz-float64(z0)

	h00 := c.Surface.Heights[z0*c.Surface.Res+x0]
	h10 := c.Surface.Heights[z0*c.Surface.Res+x1]
	h01 := c.Surface.Heights[z1*c.Surface.Res+x0]
	h11 := c.Surface.Heights[z1*c.Surface.Res+x1]

	top := h00 + (h10-h00)*tx
	bot := h01 + (h11-h01)*tx
	return top + (bot-top)*tz
}

// Release frees the chunk's geometry and collider list. The streaming
// manager calls this exactly once, after removing the chunk from the table.
func (c *Chunk) Release() {
	c.Surface.Heights = nil
	c.Surface.Colors = nil
	c.Props = nil
	c.Obstacles = nil
	c.POI = nil
}
