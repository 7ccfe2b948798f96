// Package sim builds per-animal reachability over a level's stands and
// evaluates which eggs, slides and nests an animal can get to. All
// computations are deterministic: stands are visited in a fixed order and
// nothing here draws random numbers.
package sim

import (
	"math"

	"github.com/vovakirdan/levelsim/internal/core"
	"github.com/vovakirdan/levelsim/internal/physics"
	"github.com/vovakirdan/levelsim/internal/tilemap"
)

// Difficulty grades a movement.
type Difficulty int

const (
	Walk Difficulty = iota
	Easy
	Medium
	Hard
	Impossible
)

func (d Difficulty) String() string {
	switch d {
	case Walk:
		return "walk"
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "impossible"
	}
}

// Symbol returns the one-rune grade used in the report matrices.
func (d Difficulty) Symbol() string {
	switch d {
	case Walk, Easy:
		return "✓"
	case Medium:
		return "○"
	case Hard:
		return "△"
	default:
		return "✗"
	}
}

// Classification thresholds, in pixels.
const (
	walkMaxRise   = 10
	walkMaxDist   = 2 * tilemap.TileSize
	walkSurfaceTo = 10
	walkMargin    = 999

	riseSlack  = 5  // upward: rise may exceed max height by this much
	reachSlack = 10 // arcs and falls may fall short by this much

	wallJumpMedium = 40
	dashMedium     = 40
	upEasy         = 60
	upMedium       = 25
	downEasy       = 100
	downMedium     = 40
)

// Transition is a directed, graded edge between two stands. Margin is the
// slack in pixels: positive is comfortable, negative is the shortfall.
type Transition struct {
	From       tilemap.Stand
	To         tilemap.Stand
	Difficulty Difficulty
	Margin     float64
}

// Simulator evaluates movement on one grid under one set of physics.
type Simulator struct {
	grid   *tilemap.Grid
	engine *physics.Engine
	window int // horizontal BFS window in tiles
}

// DefaultWindow is how many columns either side of a stand the search
// considers as jump targets.
const DefaultWindow = 15

// New creates a simulator for a grid.
func New(grid *tilemap.Grid, engine *physics.Engine) *Simulator {
	return &Simulator{grid: grid, engine: engine, window: DefaultWindow}
}

// Grid returns the simulated grid.
func (s *Simulator) Grid() *tilemap.Grid {
	return s.grid
}

// EvalTransition grades the move from one stand to another.
func (s *Simulator) EvalTransition(from, to tilemap.Stand, a physics.Animal) Transition {
	return s.evaluator(a).eval(from, to)
}

// evaluator caches the per-animal values a search evaluates repeatedly.
// It is not safe for concurrent use.
type evaluator struct {
	s         *Simulator
	a         physics.Animal
	single    float64
	effective float64
	boost     float64
	arcs      map[int]physics.Arc
}

func (s *Simulator) evaluator(a physics.Animal) *evaluator {
	return &evaluator{
		s:         s,
		a:         a,
		single:    s.engine.MaxSingleJump(a),
		effective: s.engine.EffectiveMaxHeight(a),
		boost:     s.engine.WallJumpBoost(a),
		arcs:      make(map[int]physics.Arc),
	}
}

func (e *evaluator) arc(rise int) physics.Arc {
	if arc, ok := e.arcs[rise]; ok {
		return arc
	}
	arc := e.s.engine.SimulateJumpArc(e.a, float64(rise))
	e.arcs[rise] = arc
	return arc
}

// maxHeight is the animal's jump height capped by the ceiling above s.
func (e *evaluator) maxHeight(s tilemap.Stand) float64 {
	return math.Min(e.effective, float64(e.s.grid.Headroom(s)))
}

func (e *evaluator) eval(from, to tilemap.Stand) Transition {
	t := Transition{From: from, To: to}
	dx := float64(core.Abs(to.X-from.X) * tilemap.TileSize)
	rise := from.FeetY - to.FeetY

	if core.Abs(rise) < walkMaxRise && dx <= walkMaxDist && e.continuous(from, to) {
		t.Difficulty, t.Margin = Walk, walkMargin
		return t
	}

	maxH := e.maxHeight(from)

	if rise > 0 {
		r := float64(rise)
		if r > maxH+riseSlack {
			return e.wallJump(t, r, maxH)
		}

		arc := e.arc(rise)
		if arc.MaxX < dx-reachSlack {
			if e.a.Dash && arc.MaxX+e.s.engine.Constants().DashBonus >= dx {
				t.Margin = arc.MaxX + e.s.engine.Constants().DashBonus - dx
				t.Difficulty = grade2(t.Margin, dashMedium)
				return t
			}
			t.Difficulty, t.Margin = Impossible, arc.MaxX-dx
			return t
		}

		t.Margin = math.Min(maxH-r, arc.MaxX-dx)
		t.Difficulty = grade3(t.Margin, upEasy, upMedium)
		return t
	}

	reach := e.s.engine.FallReach(e.a, float64(-rise))
	t.Margin = reach - dx
	if reach < dx-reachSlack {
		t.Difficulty = Impossible
		return t
	}
	t.Difficulty = grade3(t.Margin, downEasy, downMedium)
	return t
}

// wallJump handles a rise beyond the animal's jump height. Only wall
// jumpers with a wall tile near the path get the chained-jump budget.
func (e *evaluator) wallJump(t Transition, rise, maxH float64) Transition {
	if !e.a.WallJump {
		t.Difficulty, t.Margin = Impossible, -(rise - maxH)
		return t
	}
	if rise > maxH+e.boost {
		t.Difficulty, t.Margin = Impossible, -(rise - maxH - e.boost)
		return t
	}
	if !e.wallNear(t.From.X, t.To.X) {
		t.Difficulty, t.Margin = Impossible, -(rise - maxH)
		return t
	}
	t.Margin = maxH + e.boost - rise
	t.Difficulty = grade2(t.Margin, wallJumpMedium)
	return t
}

// continuous reports whether every column between the stands has a
// surface on from's row within walkSurfaceTo of from's feet.
func (e *evaluator) continuous(from, to tilemap.Stand) bool {
	lo, hi := min(from.X, to.X), max(from.X, to.X)
	for x := lo; x <= hi; x++ {
		gy := e.s.grid.SurfaceY(x, from.Row)
		if gy == tilemap.NoSurface || core.Abs(gy-from.FeetY) > walkSurfaceTo {
			return false
		}
	}
	return true
}

// wallNear reports whether any wall tile lies in the columns spanning
// the move, widened by one on each side.
func (e *evaluator) wallNear(x1, x2 int) bool {
	g := e.s.grid
	for x := min(x1, x2) - 1; x <= max(x1, x2)+1; x++ {
		for y := 0; y < g.H; y++ {
			if g.At(x, y) == tilemap.Wall {
				return true
			}
		}
	}
	return false
}

func grade2(margin, medium float64) Difficulty {
	if margin > medium {
		return Medium
	}
	return Hard
}

func grade3(margin, easy, medium float64) Difficulty {
	switch {
	case margin > easy:
		return Easy
	case margin > medium:
		return Medium
	default:
		return Hard
	}
}
