package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tuning constant the simulation reads. Values are fixed
// at process start; there is no runtime reload.
type Config struct {
	Seed int64 `yaml:"seed"`

	TickRateHz int     `yaml:"tick_rate_hz"`
	DaySeconds float64 `yaml:"day_seconds"` // full time-of-day cycle length

	ChunkSize      float64 `yaml:"chunk_size"`      // world units per chunk side
	SurfaceRes     int     `yaml:"surface_res"`     // vertices per chunk side
	RenderDistance int     `yaml:"render_distance"` // streaming window radius, in chunks
	WaterLevel     float64 `yaml:"water_level"`
	ScatterSpacing float64 `yaml:"scatter_spacing"` // world units between scatter samples

	Player  Player            `yaml:"player"`
	POI     POI               `yaml:"poi"`
	Palette map[string][3]float64 `yaml:"palette"` // per-biome base color overrides
}

// Player groups the movement and stamina constants.
type Player struct {
	Radius       float64 `yaml:"radius"`
	EyeHeight    float64 `yaml:"eye_height"`
	Gravity      float64 `yaml:"gravity"`
	Damping      float64 `yaml:"damping"`
	MoveSpeed    float64 `yaml:"move_speed"`
	BoostFactor  float64 `yaml:"boost_factor"`
	JumpVelocity float64 `yaml:"jump_velocity"`
	LiftAccel    float64 `yaml:"lift_accel"`

	StaminaMax   float64 `yaml:"stamina_max"`
	StaminaDrain float64 `yaml:"stamina_drain"` // boost drain base rate, applied at 0.4x
	StaminaRegen float64 `yaml:"stamina_regen"`
	FlightCost   float64 `yaml:"flight_cost"`
	FlightFloor  float64 `yaml:"flight_floor"` // minimum stamina for sustained lift

	RespawnFloor  float64 `yaml:"respawn_floor"`
	RespawnHeight float64 `yaml:"respawn_height"`
}

// POI groups point-of-interest placement and proximity constants.
type POI struct {
	Chance         float64 `yaml:"chance"`          // draw must exceed this
	NearbyDistance float64 `yaml:"nearby_distance"` // world units
	ObstacleRadius float64 `yaml:"obstacle_radius"`
}

// Defaults returns the tuning used when no file is supplied.
func Defaults() Config {
	return Config{
		Seed:           1337,
		TickRateHz:     60,
		DaySeconds:     600,
		ChunkSize:      64,
		SurfaceRes:     33,
		RenderDistance: 3,
		WaterLevel:     0,
		ScatterSpacing: 4,
		Player: Player{
			Radius:        0.7,
			EyeHeight:     1.6,
			Gravity:       50,
			Damping:       10,
			MoveSpeed:     8,
			BoostFactor:   1.75,
			JumpVelocity:  18,
			LiftAccel:     70,
			StaminaMax:    100,
			StaminaDrain:  20,
			StaminaRegen:  15,
			FlightCost:    25,
			FlightFloor:   5,
			RespawnFloor:  -50,
			RespawnHeight: 100,
		},
		POI: POI{
			Chance:         0.97,
			NearbyDistance: 25,
			ObstacleRadius: 4,
		},
	}
}

// Load reads a YAML tuning file. Fields absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("tuning %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("tuning %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c Config) Validate() error {
	if c.TickRateHz <= 0 {
		return fmt.Errorf("tick_rate_hz must be positive, got %d", c.TickRateHz)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %v", c.ChunkSize)
	}
	if c.SurfaceRes < 2 {
		return fmt.Errorf("surface_res must be at least 2, got %d", c.SurfaceRes)
	}
	if c.RenderDistance < 0 {
		return fmt.Errorf("render_distance must not be negative, got %d", c.RenderDistance)
	}
	if c.ScatterSpacing <= 0 {
		return fmt.Errorf("scatter_spacing must be positive, got %v", c.ScatterSpacing)
	}
	return nil
}
