// Package collision builds occupancy grids from TMX tile layers. It has no
// dependency on ebitengine, so the headless server can use it.
package collision

import (
	"github.com/automoto/tiledmap/tmx"
	"github.com/solarlune/resolv"
)

// Cell is an occupied tile position in layer-local tile coordinates.
type Cell struct {
	X, Y int
}

// Cells returns every (column,row) whose gid is non-zero, in row-major order.
func Cells(layer *tmx.TileLayer) []Cell {
	var cells []Cell
	for _, t := range layer.Tiles {
		if t.IsEmpty() {
			continue
		}
		cells = append(cells, Cell{X: t.X, Y: t.Y})
	}
	return cells
}

// Grid is the collision representation of one tile layer: one resolv object
// per occupied cell, all carrying Tags.
type Grid struct {
	Name       string
	Space      *resolv.Space
	Cells      []Cell
	Tags       []string
	TileWidth  int
	TileHeight int

	occupied map[Cell]struct{}
}

// NewGrid builds a collision grid covering the whole map for layer.
func NewGrid(m *tmx.Map, layer *tmx.TileLayer, tags ...string) *Grid {
	g := &Grid{
		Name:       layer.Name,
		Space:      resolv.NewSpace(m.PixelWidth(), m.PixelHeight(), m.TileWidth, m.TileHeight),
		Cells:      Cells(layer),
		Tags:       tags,
		TileWidth:  m.TileWidth,
		TileHeight: m.TileHeight,
	}

	g.occupied = make(map[Cell]struct{}, len(g.Cells))
	w := float64(m.TileWidth)
	h := float64(m.TileHeight)
	for _, c := range g.Cells {
		g.occupied[c] = struct{}{}

		obj := resolv.NewObject(float64(c.X)*w, float64(c.Y)*h, w, h, tags...)
		obj.SetShape(resolv.NewRectangle(0, 0, w, h))
		obj.Data = c
		g.Space.Add(obj)
	}
	return g
}

// Occupied reports whether the tile at column x, row y is solid.
func (g *Grid) Occupied(x, y int) bool {
	_, ok := g.occupied[Cell{X: x, Y: y}]
	return ok
}

// OccupiedAt reports whether the pixel position (px, py) lies in a solid tile.
func (g *Grid) OccupiedAt(px, py float64) bool {
	if px < 0 || py < 0 || g.TileWidth == 0 || g.TileHeight == 0 {
		return false
	}
	return g.Occupied(int(px)/g.TileWidth, int(py)/g.TileHeight)
}
