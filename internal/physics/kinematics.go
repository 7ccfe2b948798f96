package physics

import "math"

// Engine evaluates jump kinematics for animals under one set of world
// constants. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	c Constants
}

// NewEngine creates an engine for the given constants.
func NewEngine(c Constants) *Engine {
	return &Engine{c: c}
}

// Constants returns the engine's world constants.
func (e *Engine) Constants() Constants {
	return e.c
}

// Gravity returns the animal's effective downward acceleration.
func (e *Engine) Gravity(a Animal) float64 {
	return e.c.BaseGravity * a.Gravity
}

// JumpVelocity returns the animal's takeoff speed.
func (e *Engine) JumpVelocity(a Animal) float64 {
	return e.c.BaseJumpVelocity * a.JumpScale
}

// peak returns the apex height of a vertical launch at speed v.
func peak(v, g float64) float64 {
	return v * v / (2 * g)
}

// MaxSingleJump returns the projectile apex v²/2g for one jump.
func (e *Engine) MaxSingleJump(a Animal) float64 {
	return peak(e.JumpVelocity(a), e.Gravity(a))
}

// MaxDoubleJump adds a second jump at reduced velocity on top of the first.
func (e *Engine) MaxDoubleJump(a Animal) float64 {
	v2 := e.JumpVelocity(a) * e.c.DoubleJumpRetention
	return e.MaxSingleJump(a) + peak(v2, e.Gravity(a))
}

// MaxSpinBounce adds a second jump at full velocity on top of the first.
func (e *Engine) MaxSpinBounce(a Animal) float64 {
	v2 := e.JumpVelocity(a) * e.c.SpinBounceRetention
	return e.MaxSingleJump(a) + peak(v2, e.Gravity(a))
}

// EffectiveMaxHeight picks the tallest jump the animal's abilities allow.
// Double jump wins if both double jump and spin bounce are set.
func (e *Engine) EffectiveMaxHeight(a Animal) float64 {
	switch {
	case a.DoubleJump:
		return e.MaxDoubleJump(a)
	case a.SpinBounce:
		return e.MaxSpinBounce(a)
	default:
		return e.MaxSingleJump(a)
	}
}

// WallJumpBoost is the extra height budget granted by chaining wall jumps.
func (e *Engine) WallJumpBoost(a Animal) float64 {
	return e.MaxSingleJump(a) * e.c.WallJumpRetention * e.c.WallJumpChain
}

// Arc is the outcome of a simulated jump.
type Arc struct {
	MaxX    float64 // furthest horizontal travel while the target rise is met
	MaxRise float64 // apex height reached
}

// SimulateJumpArc integrates a running jump at a fixed timestep. The second
// impulse fires automatically at the apex for animals that have one, and
// gliders have their fall speed capped. MaxX is the furthest horizontal
// distance at which the body is still within tolerance of targetRise; for
// targetRise <= 0 it is the distance covered once the body has dropped below
// the takeoff height.
func (e *Engine) SimulateJumpArc(a Animal, targetRise float64) Arc {
	g := e.Gravity(a)
	jv := e.JumpVelocity(a)
	dt := e.c.Timestep
	steps := int(math.Round(e.c.MaxSimSeconds / dt))

	vy := -jv
	var x, y, maxRise, bestX float64
	usedSecond := false

	for i := 0; i < steps; i++ {
		vy += g * dt
		if a.Glide && vy > e.c.GlideMaxFallSpeed {
			vy = e.c.GlideMaxFallSpeed
		}
		y += vy * dt
		x += a.Speed * dt
		if -y > maxRise {
			maxRise = -y
		}

		if !usedSecond && vy > 0 && a.HasSecondJump() {
			mult := e.c.DoubleJumpRetention
			if a.SpinBounce {
				mult = e.c.SpinBounceRetention
			}
			vy = -jv * mult
			usedSecond = true
		}

		if -y >= targetRise-e.c.RiseTolerance {
			bestX = math.Max(bestX, x)
		}
		if y > e.c.FallTrigger && targetRise <= 0 {
			bestX = math.Max(bestX, x)
		}
		if y > e.c.FallCutoff {
			break
		}
	}

	return Arc{MaxX: bestX, MaxRise: maxRise}
}

// FallReach estimates how far the animal can travel horizontally while
// jumping and then dropping fall pixels: full jump airtime plus free-fall
// time, stretched for second-jump animals, plus glide and dash bonuses.
func (e *Engine) FallReach(a Animal, fall float64) float64 {
	g := e.Gravity(a)
	fallTime := math.Sqrt(2 * fall / g)
	jumpTime := 2 * e.JumpVelocity(a) / g
	airTime := jumpTime + fallTime
	if a.HasSecondJump() {
		airTime *= e.c.HangTimeMultiplier
	}

	reach := a.Speed * airTime
	if a.Glide && fall > e.c.GlideMinFall {
		reach += a.Speed * (fall / e.c.GlideReachDivisor)
	}
	if a.Dash {
		reach += e.c.DashBonus
	}
	return reach
}
