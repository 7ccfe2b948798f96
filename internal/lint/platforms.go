package lint

import (
	"fmt"

	"github.com/vovakirdan/levelsim/internal/registry"
	"github.com/vovakirdan/levelsim/internal/tilemap"
)

// checkPlatformGap flags a platform with another platform fewer than
// MinPlatformGap rows above it.
func checkPlatformGap(ctx *registry.Context) []string {
	g := ctx.Level.Grid
	var out []string
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.At(x, y) != tilemap.Platform {
				continue
			}
			for dy := 1; dy < ctx.Rules.MinPlatformGap; dy++ {
				if g.At(x, y-dy) == tilemap.Platform {
					out = append(out, fmt.Sprintf("PLATFORMS TOO CLOSE at (%d,%d) and (%d,%d) - need %d+ tile gap",
						x, y, x, y-dy, ctx.Rules.MinPlatformGap))
				}
			}
		}
	}
	return out
}
