package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"driftworld/internal/chunk"
)

// freeFallSentinel stands in for "no ground under the observer": deep enough
// that the safety-net respawn always triggers before reaching it.
const freeFallSentinel = -1e9

var worldUp = mgl64.Vec3{0, 1, 0}

// stepPhysics integrates the observer one tick. Fixed order: stamina, move
// intent, velocity, vertical input, tentative position, obstacle push-out,
// ground snap, respawn safety net, commit. No step can fail; impossible
// states degrade to free fall.
func (w *World) stepPhysics(dt float64, in InputState) {
	p := &w.obs
	pl := w.cfg.Player

	// Stamina: boost drains at a reduced rate, everything else regenerates.
	if in.Boost && p.Stamina > 0 {
		p.Stamina -= pl.StaminaDrain * 0.4 * dt
	} else {
		p.Stamina += pl.StaminaRegen * dt
	}
	p.Stamina = clamp(p.Stamina, 0, pl.StaminaMax)

	// Horizontal intent from the yaw basis.
	yaw := mgl64.DegToRad(p.Yaw)
	forward := mgl64.Vec3{math.Cos(yaw), 0, math.Sin(yaw)}
	right := forward.Cross(worldUp).Normalize()

	var dir mgl64.Vec3
	if in.Forward {
		dir = dir.Add(forward)
	}
	if in.Backward {
		dir = dir.Sub(forward)
	}
	if in.Right {
		dir = dir.Add(right)
	}
	if in.Left {
		dir = dir.Sub(right)
	}
	moving := dir.Len() > 0
	if moving {
		dir = dir.Normalize()
	}

	// Exponential horizontal damping, constant gravity, then the move
	// impulse.
	p.Vel[0] -= p.Vel[0] * pl.Damping * dt
	p.Vel[2] -= p.Vel[2] * pl.Damping * dt
	p.Vel[1] -= pl.Gravity * dt
	if moving {
		speed := pl.MoveSpeed
		if in.Boost && p.Stamina > 0 {
			speed *= pl.BoostFactor
		}
		p.Vel = p.Vel.Add(dir.Mul(speed * 20 * dt))
	}

	// Jump when grounded; sustained lift ("flying") while airborne with
	// stamina to spare.
	p.Flying = false
	if in.Jump {
		if p.Grounded {
			p.Vel[1] = pl.JumpVelocity
		} else if p.Stamina > pl.FlightFloor {
			p.Vel[1] += pl.LiftAccel * dt
			p.Stamina = clamp(p.Stamina-pl.FlightCost*dt, 0, pl.StaminaMax)
			p.Flying = true
		}
	}

	tent := p.Pos.Add(p.Vel.Mul(dt))
	tent = w.resolveObstacles(tent)

	// Ground snap against the loaded surface under the tentative position.
	gh, ok := w.groundHeight(tent.X(), tent.Z())
	if !ok {
		gh = freeFallSentinel
	}
	if tent.Y() < gh+pl.EyeHeight {
		tent[1] = gh + pl.EyeHeight
		if p.Vel.Y() < 0 {
			p.Vel[1] = 0
		}
		p.Grounded = true
	} else {
		p.Grounded = false
	}

	// Fell through the world: respawn vertically, keep the horizontal
	// position.
	if tent.Y() < pl.RespawnFloor {
		tent[1] = pl.RespawnHeight
		p.Grounded = false
	}

	p.Pos = tent
}

// resolveObstacles pushes the tentative position out of every overlapping
// circular collider in the 3x3 chunk neighborhood. Pure positional
// correction: velocity is left alone.
func (w *World) resolveObstacles(tent mgl64.Vec3) mgl64.Vec3 {
	px := int(math.Floor(tent.X() / w.cfg.ChunkSize))
	pz := int(math.Floor(tent.Z() / w.cfg.ChunkSize))

	for cx := px - 1; cx <= px+1; cx++ {
		for cz := pz - 1; cz <= pz+1; cz++ {
			ch, ok := w.chunks[chunk.Coord{X: cx, Z: cz}]
			if !ok {
				continue
			}
			for _, o := range ch.Obstacles {
				minDist := w.cfg.Player.Radius + o.Radius
				dx := tent.X() - o.X
				dz := tent.Z() - o.Z
				d2 := dx*dx + dz*dz
				if d2 >= minDist*minDist {
					continue
				}
				d := math.Sqrt(d2)
				if d < 1e-9 {
					// Dead center: pick an axis instead of dividing by zero.
					dx, d = 1, 1
					dz = 0
				}
				tent[0] = o.X + dx/d*minDist
				tent[2] = o.Z + dz/d*minDist
			}
		}
	}
	return tent
}

// groundHeight samples the loaded surface under a world position. A miss
// (chunk not loaded) is a valid outcome, not an error.
func (w *World) groundHeight(wx, wz float64) (float64, bool) {
	ch, ok := w.chunkAt(wx, wz)
	if !ok {
		return 0, false
	}
	return ch.HeightAt(wx, wz), true
}
