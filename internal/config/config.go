// Package config provides YAML-based loading of the simulator's world
// physics, the animal table and the structural rulebook.
package config

import (
	"fmt"

	"github.com/vovakirdan/levelsim/internal/physics"
)

// Rulebook holds the thresholds used by the structural linter and the fun
// score targets. Widths and heights are in tiles.
type Rulebook struct {
	MaxGapWidth        int `yaml:"max_gap_width"`
	BridgeRows         int `yaml:"bridge_rows"`
	MaxWallHeight      int `yaml:"max_wall_height"`
	MinWallPairGap     int `yaml:"min_wall_pair_gap"`
	MinWallPairOverlap int `yaml:"min_wall_pair_overlap"`
	MinPlatformGap     int `yaml:"min_platform_gap"`
	SlideSamples       int `yaml:"slide_samples"`
	SlideCorridor      int `yaml:"slide_corridor"`

	MinFunScore  int `yaml:"min_fun_score"`
	TargetAvgFun int `yaml:"target_avg_fun"`
}

// Validate reports the first threshold that cannot be used.
func (r Rulebook) Validate() error {
	switch {
	case r.MaxGapWidth < 0:
		return fmt.Errorf("max_gap_width must be >= 0, got %d", r.MaxGapWidth)
	case r.BridgeRows < 1:
		return fmt.Errorf("bridge_rows must be >= 1, got %d", r.BridgeRows)
	case r.MaxWallHeight < 1:
		return fmt.Errorf("max_wall_height must be >= 1, got %d", r.MaxWallHeight)
	case r.MinPlatformGap < 1:
		return fmt.Errorf("min_platform_gap must be >= 1, got %d", r.MinPlatformGap)
	case r.SlideSamples < 1:
		return fmt.Errorf("slide_samples must be >= 1, got %d", r.SlideSamples)
	case r.SlideCorridor < 0:
		return fmt.Errorf("slide_corridor must be >= 0, got %d", r.SlideCorridor)
	case r.MinFunScore < 0 || r.MinFunScore > 100:
		return fmt.Errorf("min_fun_score must be within 0..100, got %d", r.MinFunScore)
	}
	return nil
}

// AnimalTraits is the defaults record every animal entry is merged onto.
type AnimalTraits struct {
	Speed     float64 `yaml:"speed"`
	JumpScale float64 `yaml:"jump_scale"`
	Gravity   float64 `yaml:"gravity"`
}

// AnimalEntry is one row of the animal table. Nil fields take the
// defaults record's value; ability flags default to off.
type AnimalEntry struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Speed     *float64 `yaml:"speed,omitempty"`
	JumpScale *float64 `yaml:"jump_scale,omitempty"`
	Gravity   *float64 `yaml:"gravity,omitempty"`

	DoubleJump bool `yaml:"double_jump"`
	Glide      bool `yaml:"glide"`
	HighJump   bool `yaml:"high_jump"`
	WallJump   bool `yaml:"wall_jump"`
	Dash       bool `yaml:"dash"`
	SpinBounce bool `yaml:"spin_bounce"`
}

// AnimalTable is the on-disk form of animals.yaml.
type AnimalTable struct {
	Defaults AnimalTraits  `yaml:"defaults"`
	Animals  []AnimalEntry `yaml:"animals"`
}

// Resolve merges every entry with the defaults record and validates the
// result. Table order is preserved.
func (t AnimalTable) Resolve() ([]physics.Animal, error) {
	if len(t.Animals) == 0 {
		return nil, fmt.Errorf("animal table is empty")
	}

	seen := make(map[string]bool, len(t.Animals))
	out := make([]physics.Animal, 0, len(t.Animals))
	for i, e := range t.Animals {
		if e.ID == "" {
			return nil, fmt.Errorf("animal #%d: missing id", i+1)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("animal %q: duplicate id", e.ID)
		}
		seen[e.ID] = true

		a := physics.Animal{
			ID:         e.ID,
			Name:       e.Name,
			Speed:      pick(e.Speed, t.Defaults.Speed),
			JumpScale:  pick(e.JumpScale, t.Defaults.JumpScale),
			Gravity:    pick(e.Gravity, t.Defaults.Gravity),
			DoubleJump: e.DoubleJump,
			Glide:      e.Glide,
			HighJump:   e.HighJump,
			WallJump:   e.WallJump,
			Dash:       e.Dash,
			SpinBounce: e.SpinBounce,
		}
		if a.Speed <= 0 || a.JumpScale <= 0 || a.Gravity <= 0 {
			return nil, fmt.Errorf("animal %q: speed, jump_scale and gravity must be positive", e.ID)
		}
		out = append(out, a)
	}
	return out, nil
}

func pick(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

// ValidateConstants checks the world physics for values that would stall
// or break the integrator.
func ValidateConstants(c physics.Constants) error {
	switch {
	case c.BaseGravity <= 0:
		return fmt.Errorf("base_gravity must be positive")
	case c.BaseJumpVelocity <= 0:
		return fmt.Errorf("base_jump_velocity must be positive")
	case c.Timestep <= 0 || c.Timestep > c.MaxSimSeconds:
		return fmt.Errorf("timestep must be within (0, max_sim_seconds]")
	case c.FallCutoff <= 0:
		return fmt.Errorf("fall_cutoff must be positive")
	case c.GlideReachDivisor <= 0:
		return fmt.Errorf("glide_reach_divisor must be positive")
	}
	return nil
}

// Config bundles everything a simulation run needs besides the levels.
type Config struct {
	Physics physics.Constants
	Animals []physics.Animal
	Rules   Rulebook
}

// Animal returns the animal with the given id.
func (c Config) Animal(id string) (physics.Animal, bool) {
	for _, a := range c.Animals {
		if a.ID == id {
			return a, true
		}
	}
	return physics.Animal{}, false
}
