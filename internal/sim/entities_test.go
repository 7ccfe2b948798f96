package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/levelsim/internal/levels"
	"github.com/vovakirdan/levelsim/internal/physics"
	"github.com/vovakirdan/levelsim/internal/sim"
	"github.com/vovakirdan/levelsim/internal/tilemap"
)

func TestReachStartsUnderSpawn(t *testing.T) {
	g := flatGrid(10)
	r := newSim(g).Reach(tilemap.C(3, 2), plain)

	require.NotEmpty(t, r.Stands())
	assert.Equal(t, tilemap.Stand{X: 3, Row: 13, FeetY: 416}, r.Stands()[0])
	assert.Equal(t, r.Start, r.Stands()[0])
	assert.Equal(t, 10, r.Len())
	assert.Len(t, r.Transitions, r.Len()-1, "one accepted edge per discovered stand")
	assert.Equal(t, len(r.Transitions), r.Count(sim.Walk)+r.Count(sim.Easy)+r.Count(sim.Medium)+r.Count(sim.Hard))
}

func TestReachWallJumpersOnly(t *testing.T) {
	g := wallGrid(true)
	s := newSim(g)
	platform := tilemap.StandKey{X: 5, FeetY: 230}

	catReach := s.Reach(tilemap.C(4, 12), cat)
	assert.True(t, catReach.Contains(platform))

	turtleReach := s.Reach(tilemap.C(4, 12), turtle)
	assert.False(t, turtleReach.Contains(platform))
	assert.Greater(t, catReach.Len(), turtleReach.Len())
}

func TestReachOrderIsStable(t *testing.T) {
	g := wallGrid(true)
	s := newSim(g)
	first := s.Reach(tilemap.C(1, 12), cat)
	second := s.Reach(tilemap.C(1, 12), cat)
	assert.Equal(t, first.Stands(), second.Stands())
	assert.Equal(t, first.Transitions, second.Transitions)
}

func TestEggAccess(t *testing.T) {
	highJumper := physics.Animal{ID: "tall", Speed: 160, JumpScale: 1.1, Gravity: 1.0}

	testCases := []struct {
		name   string
		start  tilemap.Coord
		egg    tilemap.Coord
		animal physics.Animal
		want   sim.Difficulty
		reason string
	}{
		{"egg at body height", tilemap.C(4, 12), tilemap.C(4, 12), plain, sim.Easy, sim.ReasonWalk},
		{"double jumper clears four tiles", tilemap.C(5, 12), tilemap.C(5, 10), bunny, sim.Easy, sim.ReasonShortJump},
		{"plain jump falls short", tilemap.C(5, 12), tilemap.C(5, 10), plain, sim.Impossible, sim.ReasonUnreachable},
		{"comfortable jump", tilemap.C(5, 12), tilemap.C(5, 11), highJumper, sim.Medium, sim.ReasonJumpUp},
		{"tight jump", tilemap.C(5, 12), tilemap.C(5, 11), plain, sim.Hard, sim.ReasonPrecise},
		{"found from a later stand", tilemap.C(1, 12), tilemap.C(9, 12), plain, sim.Easy, sim.ReasonWalk},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newSim(flatGrid(10))
			r := s.Reach(tc.start, tc.animal)
			res := s.EggAccess(tc.egg, levels.Medium, r, tc.animal)
			assert.Equal(t, tc.want, res.Difficulty)
			assert.Equal(t, tc.reason, res.Reason)
			assert.Equal(t, tc.egg, res.Pos)
			assert.Equal(t, levels.Medium, res.Tier)
			assert.Equal(t, tc.want != sim.Impossible, res.Collectable())
		})
	}
}

func TestEggAccessNoStandNearby(t *testing.T) {
	g := tilemap.MustParse(
		"..............",
		"====......====",
	)
	s := newSim(g)
	// The right island is out of reach for a plain jumper.
	r := s.Reach(tilemap.C(0, 0), plain)
	res := s.EggAccess(tilemap.C(8, 0), levels.Hard, r, plain)
	assert.Equal(t, sim.Impossible, res.Difficulty)
	assert.Equal(t, sim.ReasonUnreachable, res.Reason)
}

func TestNestReachable(t *testing.T) {
	g := flatGrid(10)
	r := newSim(g).Reach(tilemap.C(0, 12), plain)

	assert.True(t, sim.NestReachable(tilemap.C(9, 12), r))
	assert.True(t, sim.NestReachable(tilemap.C(10, 0), r), "height is not compared")
	assert.False(t, sim.NestReachable(tilemap.C(30, 12), r))
}

func TestSlideReachable(t *testing.T) {
	g := flatGrid(10)
	r := newSim(g).Reach(tilemap.C(0, 12), plain)

	ground := levels.WaterSlide{
		Top:    levels.Point{X: 128, Y: 416},
		Curve:  levels.Point{X: 300, Y: 500},
		Bottom: levels.Point{X: 600, Y: 600},
	}
	require.Equal(t, tilemap.C(4, 13), ground.EntryTile())
	assert.True(t, sim.SlideReachable(ground, r))

	high := ground
	high.Top = levels.Point{X: 128, Y: 160}
	assert.False(t, sim.SlideReachable(high, r))
}
