package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/levelsim/internal/physics"
	"github.com/vovakirdan/levelsim/internal/sim"
	"github.com/vovakirdan/levelsim/internal/tilemap"
)

var (
	plain  = physics.Animal{ID: "plain", Speed: 160, JumpScale: 1.0, Gravity: 1.0}
	turtle = physics.Animal{ID: "turtle", Speed: 110, JumpScale: 0.9, Gravity: 1.1}
	cat    = physics.Animal{ID: "cat", Speed: 190, JumpScale: 1.05, Gravity: 1.0, WallJump: true}
	fox    = physics.Animal{ID: "fox", Speed: 200, JumpScale: 0.95, Gravity: 1.0, Dash: true}
	bunny  = physics.Animal{ID: "bunny", Speed: 160, JumpScale: 1.1, Gravity: 1.0, DoubleJump: true}
)

func newSim(g *tilemap.Grid) *sim.Simulator {
	return sim.New(g, physics.NewEngine(physics.DefaultConstants()))
}

func stand(g *tilemap.Grid, x, row int) tilemap.Stand {
	return tilemap.Stand{X: x, Row: row, FeetY: g.SurfaceY(x, row)}
}

// wallGrid has two wall columns flanking a platform six rows above ground.
func wallGrid(walls bool) *tilemap.Grid {
	w := '#'
	if !walls {
		w = '.'
	}
	rows := make([]string, 14)
	for y := range rows {
		line := []rune("..........")
		if y >= 6 && y <= 10 {
			line[3], line[7] = w, w
		}
		if y == 7 {
			line[5] = '-'
		}
		if y == 13 {
			line = []rune("==========")
		}
		rows[y] = string(line)
	}
	return tilemap.MustParse(rows...)
}

func flatGrid(width int) *tilemap.Grid {
	rows := make([]string, 14)
	for y := 0; y < 13; y++ {
		rows[y] = repeat('.', width)
	}
	rows[13] = repeat('=', width)
	return tilemap.MustParse(rows...)
}

// withTile returns a copy of g with one cell replaced.
func withTile(g *tilemap.Grid, x, y int, r rune) *tilemap.Grid {
	rows := g.Rows()
	line := []rune(rows[y])
	line[x] = r
	rows[y] = string(line)
	return tilemap.MustParse(rows...)
}

func repeat(r rune, n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
}

func TestDifficultySymbols(t *testing.T) {
	testCases := []struct {
		d      sim.Difficulty
		name   string
		symbol string
	}{
		{sim.Walk, "walk", "✓"},
		{sim.Easy, "easy", "✓"},
		{sim.Medium, "medium", "○"},
		{sim.Hard, "hard", "△"},
		{sim.Impossible, "impossible", "✗"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.name, tc.d.String())
		assert.Equal(t, tc.symbol, tc.d.Symbol())
	}
}

func TestEvalTransitionWalk(t *testing.T) {
	g := flatGrid(10)
	s := newSim(g)

	tr := s.EvalTransition(stand(g, 2, 13), stand(g, 4, 13), plain)
	assert.Equal(t, sim.Walk, tr.Difficulty)
	assert.Equal(t, 999.0, tr.Margin)

	// Three tiles is beyond walking distance even on continuous ground.
	tr = s.EvalTransition(stand(g, 2, 13), stand(g, 5, 13), plain)
	assert.NotEqual(t, sim.Walk, tr.Difficulty)
}

func TestEvalTransitionAcrossGap(t *testing.T) {
	g := tilemap.MustParse(
		"..................",
		"===.==============",
	)
	s := newSim(g)

	tr := s.EvalTransition(stand(g, 2, 1), stand(g, 4, 1), plain)
	assert.Equal(t, sim.Easy, tr.Difficulty)
	assert.InDelta(t, 204.8-64, tr.Margin, 1e-9)

	tr = s.EvalTransition(stand(g, 2, 1), stand(g, 17, 1), plain)
	assert.Equal(t, sim.Impossible, tr.Difficulty)
	assert.Less(t, tr.Margin, 0.0)
}

func TestEvalTransitionRiseTooHigh(t *testing.T) {
	g := withTile(flatGrid(6), 4, 10, '-')
	s := newSim(g)
	from, to := stand(g, 2, 13), stand(g, 4, 10)
	require.Equal(t, 90, from.FeetY-to.FeetY)

	tr := s.EvalTransition(from, to, turtle)
	assert.Equal(t, sim.Impossible, tr.Difficulty)
	assert.InDelta(t, -14.596, tr.Margin, 1e-3)
}

func TestEvalTransitionWallJump(t *testing.T) {
	withWalls := wallGrid(true)
	from, to := stand(withWalls, 4, 13), stand(withWalls, 5, 7)
	require.Equal(t, 230, to.FeetY)

	tr := newSim(withWalls).EvalTransition(from, to, cat)
	assert.Equal(t, sim.Medium, tr.Difficulty)
	assert.InDelta(t, 163.9776, tr.Margin, 1e-6)

	open := wallGrid(false)
	tr = newSim(open).EvalTransition(stand(open, 4, 13), stand(open, 5, 7), cat)
	assert.Equal(t, sim.Impossible, tr.Difficulty)
	assert.InDelta(t, -73.104, tr.Margin, 1e-6)

	// Walls only help animals that can use them.
	tr = newSim(withWalls).EvalTransition(from, to, plain)
	assert.Equal(t, sim.Impossible, tr.Difficulty)
}

func TestEvalTransitionDashRescuesShortArc(t *testing.T) {
	rows := make([]string, 14)
	for y := range rows {
		rows[y] = "............"
	}
	rows[11] = ".........-.."
	rows[13] = "============"
	g := tilemap.MustParse(rows...)
	s := newSim(g)
	from, to := stand(g, 1, 13), stand(g, 9, 11)

	tr := s.EvalTransition(from, to, fox)
	assert.Equal(t, sim.Medium, tr.Difficulty)
	assert.Greater(t, tr.Margin, 40.0)

	noDash := fox
	noDash.Dash = false
	tr = s.EvalTransition(from, to, noDash)
	assert.Equal(t, sim.Impossible, tr.Difficulty)
	assert.Less(t, tr.Margin, -10.0)
}

func TestEvalTransitionDeterministic(t *testing.T) {
	g := wallGrid(true)
	s := newSim(g)
	for _, a := range []physics.Animal{plain, turtle, cat, fox, bunny} {
		first := s.EvalTransition(stand(g, 1, 13), stand(g, 5, 7), a)
		second := s.EvalTransition(stand(g, 1, 13), stand(g, 5, 7), a)
		assert.Equal(t, first, second, a.ID)
	}
}
