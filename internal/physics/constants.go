// Package physics holds the animal ability records and the closed-form and
// simulated jump kinematics the reachability search is built on. Every
// function here is pure: same animal and constants, same answer.
package physics

// Constants are the world physics values shared by the game and the
// simulator. Gravity, velocities and speeds use pixels and seconds.
type Constants struct {
	BaseGravity      float64 `yaml:"base_gravity"`
	BaseJumpVelocity float64 `yaml:"base_jump_velocity"`

	// Integrator for SimulateJumpArc.
	Timestep      float64 `yaml:"timestep"`
	MaxSimSeconds float64 `yaml:"max_sim_seconds"`
	FallCutoff    float64 `yaml:"fall_cutoff"`    // stop once this far below takeoff
	RiseTolerance float64 `yaml:"rise_tolerance"` // slack when matching a target rise
	FallTrigger   float64 `yaml:"fall_trigger"`   // drop that counts as "landed lower"

	// Second impulse, as a fraction of the first jump's velocity.
	DoubleJumpRetention float64 `yaml:"double_jump_retention"`
	SpinBounceRetention float64 `yaml:"spin_bounce_retention"`

	GlideMaxFallSpeed float64 `yaml:"glide_max_fall_speed"`
	GlideMinFall      float64 `yaml:"glide_min_fall"`
	GlideReachDivisor float64 `yaml:"glide_reach_divisor"`
	DashBonus         float64 `yaml:"dash_bonus"`

	// Calibration constants without a physical derivation.
	WallJumpRetention  float64 `yaml:"wall_jump_retention"`
	WallJumpChain      float64 `yaml:"wall_jump_chain"`
	HangTimeMultiplier float64 `yaml:"hang_time_multiplier"`
}

// DefaultConstants returns the values the game ships with.
func DefaultConstants() Constants {
	return Constants{
		BaseGravity:         500,
		BaseJumpVelocity:    320,
		Timestep:            1.0 / 120,
		MaxSimSeconds:       5,
		FallCutoff:          200,
		RiseTolerance:       5,
		FallTrigger:         10,
		DoubleJumpRetention: 0.85,
		SpinBounceRetention: 1.0,
		GlideMaxFallSpeed:   50,
		GlideMinFall:        20,
		GlideReachDivisor:   50,
		DashBonus:           160,
		WallJumpRetention:   0.7,
		WallJumpChain:       3,
		HangTimeMultiplier:  1.6,
	}
}
