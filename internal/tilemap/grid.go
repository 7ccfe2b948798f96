// Package tilemap models a level's tile grid and the standable positions
// derived from it. A Grid is immutable once built.
package tilemap

import (
	"fmt"
	"strings"
)

// Tile geometry in pixels. The player body is 24x30.
const (
	TileSize              = 32
	PlatformSurfaceOffset = 6
	PlayerHeight          = 30
	PlayerHalfWidth       = 12
)

// NoSurface is returned by SurfaceY for cells a player cannot rest on.
const NoSurface = -1

// Tile is the integer code of one grid cell.
type Tile int

const (
	Empty      Tile = iota // Sky / air
	Ground                 // Sidewalk or grass
	Foundation             // Underground fill
	Wall                   // Brick wall or stone; the only wall-jumpable tile
	Platform               // Thin ledge, solid only at its top edge
)

// ParseTile converts a map character to a tile. Both the report glyphs
// and the raw digit codes are accepted.
func ParseTile(r rune) (Tile, bool) {
	switch r {
	case '.', ' ', '0':
		return Empty, true
	case '=', '1':
		return Ground, true
	case '~', '2':
		return Foundation, true
	case '#', '3':
		return Wall, true
	case '-', '4':
		return Platform, true
	default:
		return Empty, false
	}
}

// Char returns the glyph used for the tile in ASCII maps.
func (t Tile) Char() rune {
	switch t {
	case Ground:
		return '='
	case Foundation:
		return '~'
	case Wall:
		return '#'
	case Platform:
		return '-'
	default:
		return '.'
	}
}

// Valid reports whether the code is one of the known tile types.
func (t Tile) Valid() bool {
	return t >= Empty && t <= Platform
}

// FullSolid reports whether the tile blocks movement from every side.
func (t Tile) FullSolid() bool {
	return t == Ground || t == Foundation || t == Wall
}

// Grid is a rectangular tile map stored in row-major order: index = y*W + x.
type Grid struct {
	W      int    // Width in tiles
	H      int    // Height in tiles
	cells  []Tile // Flat array of tiles, length W*H
	stands []Stand
}

// New builds a grid from integer tile codes, one slice per row.
// Rows must all have the same length and contain only known codes.
func New(rows [][]int) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("tilemap: empty grid")
	}
	w, h := len(rows[0]), len(rows)
	g := &Grid{W: w, H: h, cells: make([]Tile, w*h)}

	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("tilemap: row %d has %d tiles, expected %d", y, len(row), w)
		}
		for x, code := range row {
			t := Tile(code)
			if !t.Valid() {
				return nil, fmt.Errorf("tilemap: unknown tile code %d at (%d,%d)", code, x, y)
			}
			g.cells[y*w+x] = t
		}
	}

	g.stands = g.scanStands()
	return g, nil
}

// Parse builds a grid from ASCII rows using the map glyphs (". = ~ # -")
// or the digits 0-4.
func Parse(lines []string) (*Grid, error) {
	rows := make([][]int, len(lines))
	for y, line := range lines {
		row := make([]int, 0, len(line))
		for x, r := range line {
			t, ok := ParseTile(r)
			if !ok {
				return nil, fmt.Errorf("tilemap: unknown tile %q at (%d,%d)", r, x, y)
			}
			row = append(row, int(t))
		}
		rows[y] = row
	}
	return New(rows)
}

// MustParse is like Parse but panics on malformed input. Intended for
// fixtures and tests.
func MustParse(lines ...string) *Grid {
	g, err := Parse(lines)
	if err != nil {
		panic(err)
	}
	return g
}

// InBounds returns true if the tile coordinate is inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the tile at (x, y). Out-of-range cells are Empty.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return Empty
	}
	return g.cells[y*g.W+x]
}

// IsFullSolid reports whether (x, y) holds an impassable block.
func (g *Grid) IsFullSolid(x, y int) bool {
	return g.At(x, y).FullSolid()
}

// IsAnySolid reports whether (x, y) is non-empty, thin platforms included.
func (g *Grid) IsAnySolid(x, y int) bool {
	return g.At(x, y) != Empty
}

// SurfaceY returns the pixel Y where a player's feet rest on tile (x, y),
// or NoSurface for an empty cell.
func (g *Grid) SurfaceY(x, y int) int {
	switch g.At(x, y) {
	case Empty:
		return NoSurface
	case Platform:
		return y*TileSize + PlatformSurfaceOffset
	default:
		return y * TileSize
	}
}

// Rows returns the grid as ASCII rows using the map glyphs.
func (g *Grid) Rows() []string {
	out := make([]string, g.H)
	var sb strings.Builder
	for y := 0; y < g.H; y++ {
		sb.Reset()
		for x := 0; x < g.W; x++ {
			sb.WriteRune(g.At(x, y).Char())
		}
		out[y] = sb.String()
	}
	return out
}

// CountByTile returns how many cells hold each tile type.
func (g *Grid) CountByTile() map[Tile]int {
	counts := make(map[Tile]int)
	for _, t := range g.cells {
		counts[t]++
	}
	return counts
}
