package levels

import (
	"fmt"
	"time"

	"github.com/vovakirdan/levelsim/internal/levels/formats"
	"github.com/vovakirdan/levelsim/internal/tilemap"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// fromYAML validates a parsed file and converts it to a Level.
func fromYAML(yl formats.YAMLLevel) (Level, error) {
	if yl.ID == "" {
		return Level{}, ValidationError{Code: "MISSING_ID", Message: "level has no id"}
	}

	grid, err := buildGrid(yl.Tiles)
	if err != nil {
		return Level{}, err
	}

	lvl := Level{
		ID:     yl.ID,
		Number: yl.Number,
		Name:   yl.Name,
		Theme:  yl.Theme,
		Grid:   grid,
		Start:  tilemap.C(yl.PlayerStart.X, yl.PlayerStart.Y),
		Nest:   tilemap.C(yl.Nest.X, yl.Nest.Y),
		Medals: Medals{
			Gold:   seconds(yl.Medals.Gold),
			Silver: seconds(yl.Medals.Silver),
			Bronze: seconds(yl.Medals.Bronze),
		},
	}
	if lvl.Name == "" {
		lvl.Name = lvl.ID
	}

	if !grid.InBounds(lvl.Start.X, lvl.Start.Y) {
		return Level{}, ValidationError{
			Code:    "START_OUT_OF_BOUNDS",
			Message: fmt.Sprintf("player start %s outside %dx%d grid", lvl.Start, grid.W, grid.H),
		}
	}
	if !grid.InBounds(lvl.Nest.X, lvl.Nest.Y) {
		return Level{}, ValidationError{
			Code:    "NEST_OUT_OF_BOUNDS",
			Message: fmt.Sprintf("nest %s outside %dx%d grid", lvl.Nest, grid.W, grid.H),
		}
	}

	for i, sp := range yl.Spawns {
		d := Difficulty(sp.Difficulty)
		if !d.Valid() {
			return Level{}, ValidationError{
				Code:    "BAD_DIFFICULTY",
				Message: fmt.Sprintf("spawn #%d: unknown difficulty %q", i+1, sp.Difficulty),
			}
		}
		pos := tilemap.C(sp.X, sp.Y)
		if !grid.InBounds(pos.X, pos.Y) {
			return Level{}, ValidationError{
				Code:    "SPAWN_OUT_OF_BOUNDS",
				Message: fmt.Sprintf("spawn #%d %s outside %dx%d grid", i+1, pos, grid.W, grid.H),
			}
		}
		lvl.Spawns = append(lvl.Spawns, SpawnPoint{Pos: pos, Difficulty: d})
	}

	for _, s := range yl.Slides {
		lvl.Slides = append(lvl.Slides, WaterSlide{
			Top:    Point(s.Top),
			Bottom: Point(s.Bottom),
			Curve:  Point(s.Curve),
		})
	}

	for _, mp := range yl.MovingPlatforms {
		lvl.MovingPlatforms = append(lvl.MovingPlatforms, MovingPlatform{
			Start:    tilemap.C(mp.Start.X, mp.Start.Y),
			End:      tilemap.C(mp.End.X, mp.End.Y),
			Duration: time.Duration(mp.DurationMS) * time.Millisecond,
		})
	}
	for i, wz := range yl.WindZones {
		switch wz.Direction {
		case "left", "right", "up":
		default:
			return Level{}, ValidationError{
				Code:    "BAD_WIND",
				Message: fmt.Sprintf("wind zone #%d: unknown direction %q", i+1, wz.Direction),
			}
		}
		lvl.WindZones = append(lvl.WindZones, WindZone{
			Pos:       tilemap.C(wz.X, wz.Y),
			Width:     wz.Width,
			Height:    wz.Height,
			Direction: wz.Direction,
			Strength:  wz.Strength,
		})
	}
	for _, p := range yl.Puddles {
		lvl.Puddles = append(lvl.Puddles, Puddle{
			Pos:        tilemap.C(p.X, p.Y),
			Width:      p.Width,
			SlowFactor: p.SlowFactor,
		})
	}

	return lvl, nil
}

// buildGrid checks the tile rows before handing them to tilemap, so the
// failure carries a validation code.
func buildGrid(rows []string) (*tilemap.Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ValidationError{Code: "EMPTY_GRID", Message: "level has no tiles"}
	}

	w := len(rows[0])
	for y, row := range rows {
		if len(row) != w {
			return nil, ValidationError{
				Code:    "NOT_RECTANGULAR",
				Message: fmt.Sprintf("row %d has %d tiles, expected %d", y, len(row), w),
			}
		}
		for x, r := range row {
			if _, ok := tilemap.ParseTile(r); !ok {
				return nil, ValidationError{
					Code:    "BAD_TILE",
					Message: fmt.Sprintf("unknown tile %q at (%d,%d)", r, x, y),
				}
			}
		}
	}

	return tilemap.Parse(rows)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
