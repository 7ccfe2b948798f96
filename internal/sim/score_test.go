package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/levelsim/internal/physics"
	"github.com/vovakirdan/levelsim/internal/sim"
)

func TestFunScore(t *testing.T) {
	everything := physics.Animal{Glide: true, DoubleJump: true, Dash: true, WallJump: true}

	testCases := []struct {
		name string
		in   sim.FunInputs
		want int
	}{
		{"bare", sim.FunInputs{}, 50},
		{"full level for bunny", sim.FunInputs{Animal: bunny, Eggs: 3, Nest: true, Slides: 2}, 87},
		{"ability bonuses", sim.FunInputs{Animal: everything}, 59},
		{"spin bounce counts as second jump", sim.FunInputs{Animal: physics.Animal{SpinBounce: true}}, 52},
		{"hard ratio", sim.FunInputs{HardRatio: 0.5}, 35},
		{"hard eggs", sim.FunInputs{Eggs: 2, HardEggs: 2}, 50},
		{"issues", sim.FunInputs{Eggs: 2, Issues: 1}, 40},
		{"capped at 100", sim.FunInputs{Eggs: 10, Nest: true}, 100},
		{"floored at 0", sim.FunInputs{Issues: 5}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sim.FunScore(tc.in))
		})
	}
}
