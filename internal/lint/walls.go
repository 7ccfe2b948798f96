package lint

import (
	"fmt"
	"math"

	"github.com/vovakirdan/levelsim/internal/core"
	"github.com/vovakirdan/levelsim/internal/registry"
	"github.com/vovakirdan/levelsim/internal/tilemap"
)

// wallRun is a vertical run of wall tiles in one column, rows [Top, Bottom].
type wallRun struct {
	X           int
	Top, Bottom int
}

func (w wallRun) Height() int {
	return w.Bottom - w.Top + 1
}

// Pixels returns the run's vertical pixel span.
func (w wallRun) Pixels() core.Span {
	return core.NewSpan(w.Top*tilemap.TileSize, (w.Bottom+1)*tilemap.TileSize)
}

// wallRuns lists every wall run, column by column, top to bottom.
func wallRuns(g *tilemap.Grid) []wallRun {
	var runs []wallRun
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			if g.At(x, y) != tilemap.Wall {
				continue
			}
			top := y
			for y+1 < g.H && g.At(x, y+1) == tilemap.Wall {
				y++
			}
			runs = append(runs, wallRun{X: x, Top: top, Bottom: y})
		}
	}
	return runs
}

// checkWallBlocksPath flags columns whose walls reach down to the row
// above the walking row, or overlap the body of a player standing at the
// start. Each column is reported once, at its lowest wall tile.
func checkWallBlocksPath(ctx *registry.Context) []string {
	body := ctx.Level.StartStand().Body()
	runs := wallRuns(ctx.Level.Grid)
	var out []string
	blocks := false
	for i, w := range runs {
		if w.Pixels().Overlaps(body) || w.Bottom >= ctx.GroundRow-1 {
			blocks = true
		}
		if i+1 < len(runs) && runs[i+1].X == w.X {
			continue
		}
		// w is the column's lowest run.
		if blocks {
			out = append(out, fmt.Sprintf("WALL BLOCKS PATH at x=%d - wall at y=%d collides with player on y=%d ground",
				w.X, w.Bottom, ctx.GroundRow))
		}
		blocks = false
	}
	return out
}

func checkWallHeight(ctx *registry.Context) []string {
	var out []string
	for _, w := range wallRuns(ctx.Level.Grid) {
		if w.Height() > ctx.Rules.MaxWallHeight {
			out = append(out, fmt.Sprintf("WALL TOO TALL at x=%d (%d tiles, max %d)",
				w.X, w.Height(), ctx.Rules.MaxWallHeight))
		}
	}
	return out
}

// checkWallInSlide samples each slide curve and checks a corridor of
// columns around every sample. Each wall tile is reported once per slide.
func checkWallInSlide(ctx *registry.Context) []string {
	g := ctx.Level.Grid
	n := ctx.Rules.SlideSamples
	var out []string

	for si, s := range ctx.Level.Slides {
		seen := make(map[tilemap.Coord]bool)
		for i := 0; i <= n; i++ {
			p := s.Sample(float64(i) / float64(n))
			tx := int(math.Floor(p.X / tilemap.TileSize))
			ty := int(math.Floor(p.Y / tilemap.TileSize))
			for dx := -ctx.Rules.SlideCorridor; dx <= ctx.Rules.SlideCorridor; dx++ {
				c := tilemap.C(tx+dx, ty)
				if g.At(c.X, c.Y) != tilemap.Wall || seen[c] {
					continue
				}
				seen[c] = true
				out = append(out, fmt.Sprintf("WALL IN SLIDE %d PATH at tile %s - wall intersects slide bezier",
					si+1, c))
			}
		}
	}
	return out
}

// checkWallPairGap flags runs in different columns that share enough
// vertical range to act as a wall-jump pair but stand too close together.
func checkWallPairGap(ctx *registry.Context) []string {
	runs := wallRuns(ctx.Level.Grid)
	var out []string
	for i := 0; i < len(runs); i++ {
		for j := i + 1; j < len(runs); j++ {
			a, b := runs[i], runs[j]
			if a.X == b.X {
				continue
			}
			overlapTop := max(a.Top, b.Top)
			overlapBot := min(a.Bottom, b.Bottom)
			if overlapBot-overlapTop < ctx.Rules.MinWallPairOverlap {
				continue
			}
			if dist := core.Abs(a.X - b.X); dist < ctx.Rules.MinWallPairGap {
				out = append(out, fmt.Sprintf("WALL-JUMP PAIR TOO CLOSE: x=%d & x=%d (%d tiles, min %d)",
					a.X, b.X, dist, ctx.Rules.MinWallPairGap))
			}
		}
	}
	return out
}
