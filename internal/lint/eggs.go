package lint

import (
	"fmt"

	"github.com/vovakirdan/levelsim/internal/levels"
	"github.com/vovakirdan/levelsim/internal/registry"
)

// checkFloatingEggs flags spawns with neither their own tile nor the tile
// directly below occupied. An egg drawn inside a solid tile counts as
// supported, and a surface two tiles down does not.
func checkFloatingEggs(ctx *registry.Context) []string {
	g := ctx.Level.Grid
	var out []string
	for _, sp := range ctx.Level.Spawns {
		if g.IsAnySolid(sp.Pos.X, sp.Pos.Y) || g.IsAnySolid(sp.Pos.X, sp.Pos.Y+1) {
			continue
		}
		out = append(out, fmt.Sprintf("FLOATING EGG at %s [%s] - no surface within 1 tile below",
			sp.Pos, sp.Difficulty))
	}
	return out
}

func checkSpawnCoverage(ctx *registry.Context) []string {
	var out []string
	for _, d := range levels.Difficulties {
		if len(ctx.Level.SpawnsBy(d)) == 0 {
			out = append(out, fmt.Sprintf("NO %s spawn points - need at least 1 for %s egg",
				upper(d), d.EggType()))
		}
	}
	return out
}

func upper(d levels.Difficulty) string {
	switch d {
	case levels.Easy:
		return "EASY"
	case levels.Medium:
		return "MEDIUM"
	default:
		return "HARD"
	}
}
