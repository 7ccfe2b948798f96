package sim

import (
	"math"

	"github.com/vovakirdan/levelsim/internal/core"
	"github.com/vovakirdan/levelsim/internal/levels"
	"github.com/vovakirdan/levelsim/internal/physics"
	"github.com/vovakirdan/levelsim/internal/tilemap"
)

// Egg pickup geometry, in pixels.
const (
	eggHalfHeight   = 25
	eggScanDist     = 2 * tilemap.TileSize
	eggWalkDist     = 1.2 * tilemap.TileSize
	eggJumpDist     = 1.5 * tilemap.TileSize
	eggJumpSlack    = 10
	eggJumpEasy     = 40
	eggJumpMedium   = 15
	slideEntryDrift = 20
)

// Egg access reasons.
const (
	ReasonWalk        = "walk to it"
	ReasonShortJump   = "short jump"
	ReasonJumpUp      = "jump up"
	ReasonPrecise     = "precise jump needed"
	ReasonUnreachable = "no reachable position near egg"
)

// EggResult is the verdict for one egg and one animal.
type EggResult struct {
	Pos        tilemap.Coord
	Tier       levels.Difficulty // the designer's label
	Difficulty Difficulty        // what the simulation found
	Reason     string
}

// Collectable reports whether the egg can be picked up at all.
func (r EggResult) Collectable() bool {
	return r.Difficulty != Impossible
}

// EggAccess decides whether an animal can pick up the egg at pos from any
// reachable stand. Stands are scanned in visitation order and the first
// qualifying stand decides.
func (s *Simulator) EggAccess(pos tilemap.Coord, tier levels.Difficulty, r *Reachability, a physics.Animal) EggResult {
	res := EggResult{Pos: pos, Tier: tier}
	eggX := pos.CenterPixelX()
	eggTop := pos.TopPixelY() - eggHalfHeight
	eggSpan := core.NewSpan(eggTop, pos.TopPixelY()+eggHalfHeight)
	effective := s.engine.EffectiveMaxHeight(a)

	for _, st := range r.Stands() {
		hDist := float64(core.Abs(st.CenterX() - eggX))
		if hDist > eggScanDist {
			continue
		}

		if hDist < eggWalkDist && st.Body().Overlaps(eggSpan) {
			res.Difficulty, res.Reason = Easy, ReasonWalk
			return res
		}

		jumpRise := float64(st.FeetY - eggTop)
		if jumpRise <= 0 || hDist >= eggJumpDist {
			continue
		}
		maxH := math.Min(effective, float64(s.grid.Headroom(st)))
		if maxH < jumpRise-eggJumpSlack {
			continue
		}
		switch margin := maxH - jumpRise; {
		case margin > eggJumpEasy:
			res.Difficulty, res.Reason = Easy, ReasonShortJump
		case margin > eggJumpMedium:
			res.Difficulty, res.Reason = Medium, ReasonJumpUp
		default:
			res.Difficulty, res.Reason = Hard, ReasonPrecise
		}
		return res
	}

	res.Difficulty, res.Reason = Impossible, ReasonUnreachable
	return res
}

// NestReachable reports whether any reachable stand is within one column
// of the nest. Height is not compared.
func NestReachable(nest tilemap.Coord, r *Reachability) bool {
	for _, st := range r.Stands() {
		if core.Abs(st.X-nest.X) <= 1 {
			return true
		}
	}
	return false
}

// SlideReachable reports whether any reachable stand is within one column
// of the slide's entry tile with feet near a platform surface on its row.
func SlideReachable(slide levels.WaterSlide, r *Reachability) bool {
	entry := slide.EntryTile()
	surface := entry.Y*tilemap.TileSize + tilemap.PlatformSurfaceOffset
	for _, st := range r.Stands() {
		if core.Abs(st.X-entry.X) <= 1 && core.Abs(st.FeetY-surface) < slideEntryDrift {
			return true
		}
	}
	return false
}
