// Package ebitenrender draws TMX tile layers onto ebitengine images.
package ebitenrender

import (
	"bytes"
	"fmt"
	_ "image/png"
	"io/fs"

	"github.com/automoto/tiledmap/render"
	"github.com/automoto/tiledmap/tmx"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	lru "github.com/hashicorp/golang-lru"
)

// Surface is the rendered image of one tile layer.
type Surface struct {
	Name    string
	Image   *ebiten.Image
	Opacity float64
}

// Renderer turns tile layers into surfaces. Tileset images are read from
// fsys and kept in an LRU cache keyed by path. Evicted images are left to
// the garbage collector since a surface being built may still hold them.
type Renderer struct {
	fsys   fs.FS
	images *lru.Cache
}

// NewRenderer returns a Renderer caching up to cacheSize tileset images.
func NewRenderer(fsys fs.FS, cacheSize int) (*Renderer, error) {
	if cacheSize <= 0 {
		cacheSize = 1
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create image cache: %w", err)
	}
	return &Renderer{fsys: fsys, images: cache}, nil
}

func (r *Renderer) image(path string) (*ebiten.Image, error) {
	if img, ok := r.images.Get(path); ok {
		return img.(*ebiten.Image), nil
	}

	imgBytes, err := fs.ReadFile(r.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read tileset image %s: %w", path, err)
	}
	img, _, err := ebitenutil.NewImageFromReader(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("decode tileset image %s: %w", path, err)
	}
	r.images.Add(path, img)
	return img, nil
}

// RenderLayer draws layer onto a new map-sized image.
func (r *Renderer) RenderLayer(m *tmx.Map, layer *tmx.TileLayer) (any, error) {
	s, err := r.Surface(m, layer)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Surface is RenderLayer with a concrete result type.
func (r *Renderer) Surface(m *tmx.Map, layer *tmx.TileLayer) (*Surface, error) {
	placements := render.Placements(m, layer)

	sheets := make(map[int]*ebiten.Image)
	for _, p := range placements {
		if _, ok := sheets[p.Tileset]; ok {
			continue
		}
		ts := m.Tilesets[p.Tileset]
		if ts.Image == "" {
			return nil, fmt.Errorf("layer %q: tileset %q has no image", layer.Name, ts.Name)
		}
		img, err := r.image(m.ImagePath(ts))
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", layer.Name, err)
		}
		sheets[p.Tileset] = img
	}

	surface := &Surface{
		Name:    layer.Name,
		Image:   ebiten.NewImage(m.PixelWidth(), m.PixelHeight()),
		Opacity: layer.Opacity,
	}

	op := &ebiten.DrawImageOptions{}
	for _, p := range placements {
		sheet := sheets[p.Tileset]
		src := render.SourceRect(p.Index, sheet.Bounds().Dx(), m.TileWidth, m.TileHeight)
		dst := render.DestRect(p, m.TileWidth, m.TileHeight)

		op.GeoM.Reset()
		op.GeoM.Translate(float64(dst.Min.X), float64(dst.Min.Y))
		surface.Image.DrawImage(sheet.SubImage(src).(*ebiten.Image), op)
	}
	return surface, nil
}

// Draw draws the surface onto screen shifted by the camera offset, applying
// the layer opacity.
func (s *Surface) Draw(screen *ebiten.Image, offsetX, offsetY float64) {
	// Skip fully transparent layers
	if s.Opacity <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-offsetX, -offsetY)
	op.ColorScale.ScaleAlpha(float32(s.Opacity))
	screen.DrawImage(s.Image, op)
}
