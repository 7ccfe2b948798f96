package tilemap

import (
	"fmt"

	"github.com/vovakirdan/levelsim/internal/core"
)

// Unlimited is the headroom reported when no ceiling exists above a stand.
const Unlimited = 9999

// fallbackStartRow is the surface row assumed when nothing lies below the
// player start tile.
const fallbackStartRow = 13

// StandKey identifies a stand by column and feet pixel Y.
type StandKey struct {
	X     int
	FeetY int
}

// String returns the key as "x,feetY".
func (k StandKey) String() string {
	return fmt.Sprintf("%d,%d", k.X, k.FeetY)
}

// Stand is a position where the player body can rest: the column, the tile
// row whose surface carries it, and the pixel Y of its feet.
type Stand struct {
	X     int
	Row   int
	FeetY int
}

// Key returns the stand's identity in the reachability index.
func (s Stand) Key() StandKey {
	return StandKey{X: s.X, FeetY: s.FeetY}
}

// HeadY returns the pixel Y of the top of the player body.
func (s Stand) HeadY() int {
	return s.FeetY - PlayerHeight
}

// Body returns the vertical pixel span of the player standing here.
func (s Stand) Body() core.Span {
	return core.NewSpan(s.HeadY(), s.FeetY)
}

// CenterX returns the pixel X of the player's center.
func (s Stand) CenterX() int {
	return s.X*TileSize + TileSize/2
}

// StandFromKey rebuilds a stand from its key.
func StandFromKey(k StandKey) Stand {
	return Stand{X: k.X, Row: core.FloorDiv(k.FeetY, TileSize), FeetY: k.FeetY}
}

// Stands returns every standable position, ordered by row then column.
// The slice is shared; callers must not modify it.
func (g *Grid) Stands() []Stand {
	return g.stands
}

// scanStands derives the stand index: one candidate per non-empty cell,
// dropped when a full-solid tile occupies the cell at head height.
func (g *Grid) scanStands() []Stand {
	out := make([]Stand, 0)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			feetY := g.SurfaceY(x, y)
			if feetY == NoSurface {
				continue
			}
			headRow := core.FloorDiv(feetY-PlayerHeight, TileSize)
			if headRow >= 0 && g.IsFullSolid(x, headRow) {
				continue
			}
			out = append(out, Stand{X: x, Row: y, FeetY: feetY})
		}
	}
	return out
}

// Headroom returns the vertical clearance above the player's head at s,
// up to the underside of the first full-solid tile in the same column.
// Returns Unlimited when the column is open to the top of the map.
func (g *Grid) Headroom(s Stand) int {
	headY := s.HeadY()
	if headY-1 < 0 {
		return Unlimited
	}
	for ty := core.FloorDiv(headY-1, TileSize); ty >= 0; ty-- {
		if g.IsFullSolid(s.X, ty) {
			return headY - (ty+1)*TileSize
		}
	}
	return Unlimited
}

// StartStand returns the stand under a spawn tile: the first surface at or
// below it in the same column.
func (g *Grid) StartStand(start Coord) Stand {
	feetY := fallbackStartRow * TileSize
	for y := start.Y; y < g.H; y++ {
		if sy := g.SurfaceY(start.X, y); sy != NoSurface {
			feetY = sy
			break
		}
	}
	return Stand{X: start.X, Row: core.FloorDiv(feetY, TileSize), FeetY: feetY}
}

// GroundRow returns the main walking row for a level: the row holding the
// surface under the player start.
func (g *Grid) GroundRow(start Coord) int {
	return g.StartStand(start).Row
}
