package lint

import (
	"fmt"

	"github.com/vovakirdan/levelsim/internal/registry"
)

// gap is a run of empty tiles in the walking row, [From, To] inclusive.
type gap struct {
	From, To int
}

func (g gap) Width() int {
	return g.To - g.From + 1
}

// walkingRowGaps returns every run of empty tiles that starts right of a
// solid tile in the walking row. A run reaching the map edge is included.
func walkingRowGaps(ctx *registry.Context) []gap {
	g := ctx.Level.Grid
	row := ctx.GroundRow

	var gaps []gap
	for x := 0; x < g.W-1; x++ {
		if !g.IsAnySolid(x, row) || g.IsAnySolid(x+1, row) {
			continue
		}
		end := x + 1
		for end+1 < g.W && !g.IsAnySolid(end+1, row) {
			end++
		}
		gaps = append(gaps, gap{From: x + 1, To: end})
		x = end
	}
	return gaps
}

func checkGapWidth(ctx *registry.Context) []string {
	var out []string
	for _, gp := range walkingRowGaps(ctx) {
		if gp.Width() > ctx.Rules.MaxGapWidth {
			out = append(out, fmt.Sprintf("GAP TOO WIDE at x=%d (%d tiles, max %d)",
				gp.From, gp.Width(), ctx.Rules.MaxGapWidth))
		}
	}
	return out
}

// checkGapBridge requires every gap column to have a tile within
// BridgeRows rows above the walking row.
func checkGapBridge(ctx *registry.Context) []string {
	g := ctx.Level.Grid
	var out []string
	for _, gp := range walkingRowGaps(ctx) {
		bridged := true
		for x := gp.From; x <= gp.To && bridged; x++ {
			covered := false
			for dy := 1; dy <= ctx.Rules.BridgeRows; dy++ {
				if g.IsAnySolid(x, ctx.GroundRow-dy) {
					covered = true
					break
				}
			}
			bridged = covered
		}
		if !bridged {
			out = append(out, fmt.Sprintf("UNBRIDGED GAP at x=%d-%d - no platform bridge", gp.From, gp.To))
		}
	}
	return out
}
