package sim

import (
	"github.com/vovakirdan/levelsim/internal/core"
	"github.com/vovakirdan/levelsim/internal/physics"
)

// Fun score weights.
const (
	funBase          = 50
	funPerEgg        = 5
	funNest          = 10
	funPerSlide      = 5
	funGlide         = 3
	funSecondJump    = 2
	funDash          = 2
	funWallJump      = 2
	funHardRatioCost = 30
	funPerIssue      = 20
	funPerHardEgg    = 5
)

// FunInputs are the per-animal facts the fun score is computed from.
type FunInputs struct {
	Animal    physics.Animal
	Eggs      int // collectable eggs
	HardEggs  int // eggs only reachable with a hard move
	Nest      bool
	Slides    int // reachable slides
	HardRatio float64
	Issues    int
}

// FunScore rates how enjoyable the level is for one animal on a 0 to 100
// scale: rewards for collectables and abilities, penalties for hard moves
// and unresolved issues.
func FunScore(in FunInputs) int {
	fun := funBase
	fun += in.Eggs * funPerEgg
	if in.Nest {
		fun += funNest
	}
	fun += in.Slides * funPerSlide

	a := in.Animal
	if a.Glide {
		fun += funGlide
	}
	if a.HasSecondJump() {
		fun += funSecondJump
	}
	if a.Dash {
		fun += funDash
	}
	if a.WallJump {
		fun += funWallJump
	}

	fun -= core.RoundHalfUp(in.HardRatio * funHardRatioCost)
	fun -= in.Issues * funPerIssue
	fun -= in.HardEggs * funPerHardEgg
	return core.Clamp(fun, 0, 100)
}
