// Package render computes what a tile-grid renderer has to draw for a tile
// layer. It is engine independent; see ebitenrender for an ebitengine
// surface built from it.
package render

import (
	"image"

	"github.com/automoto/tiledmap/tmx"
)

// Placement is one drawn tile: its layer-local column and row and its index
// inside Tileset.
type Placement struct {
	X, Y    int
	Tileset int // index into Map.Tilesets
	Index   uint32
}

// Placements lists the non-empty tiles of layer in row-major order. Tiles
// whose gid falls below every tileset are skipped.
func Placements(m *tmx.Map, layer *tmx.TileLayer) []Placement {
	var out []Placement
	for _, t := range layer.Tiles {
		if t.IsEmpty() {
			continue
		}
		ts := m.TilesetForGID(t.GID)
		if ts == nil {
			continue
		}
		local, _ := ts.LocalID(t.GID)
		out = append(out, Placement{
			X:       t.X,
			Y:       t.Y,
			Tileset: tilesetIndex(m, ts),
			Index:   local,
		})
	}
	return out
}

func tilesetIndex(m *tmx.Map, ts *tmx.Tileset) int {
	for i := range m.Tilesets {
		if &m.Tilesets[i] == ts {
			return i
		}
	}
	return -1
}

// SourceRect is the region of a tileset image holding tile index, for an
// image imageWidth pixels wide cut into tileW x tileH cells.
func SourceRect(index uint32, imageWidth, tileW, tileH int) image.Rectangle {
	columns := 1
	if tileW > 0 && imageWidth >= tileW {
		columns = imageWidth / tileW
	}
	col := int(index) % columns
	row := int(index) / columns
	return image.Rect(col*tileW, row*tileH, (col+1)*tileW, (row+1)*tileH)
}

// DestRect is where a placement lands on the layer surface.
func DestRect(p Placement, tileW, tileH int) image.Rectangle {
	return image.Rect(p.X*tileW, p.Y*tileH, (p.X+1)*tileW, (p.Y+1)*tileH)
}
