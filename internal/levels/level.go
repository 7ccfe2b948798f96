// Package levels provides the level model and level loading. Levels are
// validated as they are loaded; everything downstream may assume a
// rectangular grid and in-bounds entities.
package levels

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/levelsim/internal/core"
	"github.com/vovakirdan/levelsim/internal/tilemap"
)

// Difficulty is the designer-assigned tier of an egg spawn point.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists the spawn tiers in ascending order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	return d == Easy || d == Medium || d == Hard
}

// EggType returns the egg placed at spawns of this tier.
func (d Difficulty) EggType() string {
	switch d {
	case Easy:
		return "white"
	case Medium:
		return "golden"
	case Hard:
		return "rainbow"
	default:
		return "unknown"
	}
}

// SpawnPoint is a candidate egg position.
type SpawnPoint struct {
	Pos        tilemap.Coord
	Difficulty Difficulty
}

// Point is a pixel position.
type Point struct {
	X, Y float64
}

// WaterSlide is a quadratic bezier in pixel space from Top to Bottom,
// bent toward Curve.
type WaterSlide struct {
	Top    Point
	Bottom Point
	Curve  Point
}

// Sample returns the pixel position at parameter t in [0, 1].
func (s WaterSlide) Sample(t float64) Point {
	return Point{
		X: core.QuadBezier(s.Top.X, s.Curve.X, s.Bottom.X, t),
		Y: core.QuadBezier(s.Top.Y, s.Curve.Y, s.Bottom.Y, t),
	}
}

// EntryTile returns the tile nearest to the slide's top.
func (s WaterSlide) EntryTile() tilemap.Coord {
	return tilemap.C(
		core.RoundHalfUp(s.Top.X/tilemap.TileSize),
		core.RoundHalfUp(s.Top.Y/tilemap.TileSize),
	)
}

// MovingPlatform patrols between two tiles over one full cycle.
type MovingPlatform struct {
	Start    tilemap.Coord
	End      tilemap.Coord
	Duration time.Duration
}

// WindZone pushes the player while inside its tile rectangle.
type WindZone struct {
	Pos       tilemap.Coord
	Width     int
	Height    int
	Direction string // "left", "right" or "up"
	Strength  float64
}

// Puddle slows the player along a run of tiles.
type Puddle struct {
	Pos        tilemap.Coord
	Width      int
	SlowFactor float64
}

// Medals are the completion times for each medal.
type Medals struct {
	Gold   time.Duration
	Silver time.Duration
	Bronze time.Duration
}

// Level represents a complete level definition.
type Level struct {
	ID     string
	Number int
	Name   string
	Theme  string
	Grid   *tilemap.Grid

	Start  tilemap.Coord
	Nest   tilemap.Coord
	Spawns []SpawnPoint
	Slides []WaterSlide

	// Carried for display. The simulator does not model them.
	MovingPlatforms []MovingPlatform
	WindZones       []WindZone
	Puddles         []Puddle
	Medals          Medals

	FilePath string
}

// Title returns "Level N: Name", or the name alone for unnumbered levels.
func (l *Level) Title() string {
	if l.Number > 0 {
		return fmt.Sprintf("Level %d: %s", l.Number, l.Name)
	}
	return l.Name
}

// SpawnsBy returns the spawn points of one tier, in file order.
func (l *Level) SpawnsBy(d Difficulty) []SpawnPoint {
	var out []SpawnPoint
	for _, sp := range l.Spawns {
		if sp.Difficulty == d {
			out = append(out, sp)
		}
	}
	return out
}

// StartStand returns the stand the player spawns on.
func (l *Level) StartStand() tilemap.Stand {
	return l.Grid.StartStand(l.Start)
}

// GroundRow returns the level's main walking row.
func (l *Level) GroundRow() int {
	return l.Grid.GroundRow(l.Start)
}

// SpawnAt returns the spawn point at c, if any.
func (l *Level) SpawnAt(c tilemap.Coord) (SpawnPoint, bool) {
	for _, sp := range l.Spawns {
		if sp.Pos == c {
			return sp, true
		}
	}
	return SpawnPoint{}, false
}

// Egg is a spawn point chosen for one round.
type Egg struct {
	Pos        tilemap.Coord
	Difficulty Difficulty
}

// Type returns the egg's colour name.
func (e Egg) Type() string {
	return e.Difficulty.EggType()
}

// SelectEggs picks one spawn point per tier: a white, a golden and a
// rainbow egg. Tiers with no spawn points are skipped.
func SelectEggs(spawns []SpawnPoint, rng *rand.Rand) []Egg {
	eggs := make([]Egg, 0, len(Difficulties))
	for _, d := range Difficulties {
		var pool []SpawnPoint
		for _, sp := range spawns {
			if sp.Difficulty == d {
				pool = append(pool, sp)
			}
		}
		if len(pool) == 0 {
			continue
		}
		p := pool[rng.Intn(len(pool))]
		eggs = append(eggs, Egg{Pos: p.Pos, Difficulty: d})
	}
	return eggs
}
