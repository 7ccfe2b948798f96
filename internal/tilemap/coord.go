package tilemap

import "fmt"

// Coord is a tile coordinate on the grid.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// CenterPixelX returns the pixel X of the tile's horizontal center.
func (c Coord) CenterPixelX() int {
	return c.X*TileSize + TileSize/2
}

// TopPixelY returns the pixel Y of the tile's top edge.
func (c Coord) TopPixelY() int {
	return c.Y * TileSize
}
