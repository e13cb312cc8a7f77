// Command tmxview opens a TMX map in a window. Arrow keys scroll, C toggles
// the collision overlay and O toggles object outlines.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/automoto/tiledmap/config"
	"github.com/automoto/tiledmap/entities"
	"github.com/automoto/tiledmap/render/ebitenrender"
	"github.com/automoto/tiledmap/scene"
	"github.com/automoto/tiledmap/tmx"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

var (
	colliderColor = color.RGBA{R: 255, A: 96}
	objectColor   = color.RGBA{G: 255, B: 255, A: 255}
)

type Game struct {
	cfg       config.Viewer
	m         *tmx.Map
	world     donburi.World
	surfaces  []*ebitenrender.Surface
	camX      float64
	camY      float64
	colliders bool
	objects   bool
}

// NewGame loads the map at path and builds its scene. Every object type in
// the map gets a plain placement entity so it can be outlined.
func NewGame(cfg config.Scene, path string) (*Game, error) {
	// Rooted at the volume so tilesets beside the maps directory resolve.
	fsys, name, err := tmx.RootFS(path)
	if err != nil {
		return nil, err
	}
	m, err := tmx.LoadFile(name, tmx.WithFileSystem(fsys))
	if err != nil {
		return nil, err
	}

	renderer, err := ebitenrender.NewRenderer(fsys, cfg.ImageCacheSize)
	if err != nil {
		return nil, err
	}

	reg := entities.NewRegistry()
	marker := entities.NewArchetype()
	for _, og := range m.ObjectGroups() {
		for _, o := range og.Objects {
			if !reg.Has(o.Type) {
				reg.MustRegister(o.Type, marker.Factory())
			}
		}
	}

	b := &scene.Builder{Config: cfg, Registry: reg, Renderer: renderer}
	w, _, err := b.Build(m)
	if err != nil {
		return nil, err
	}

	g := &Game{cfg: cfg.Viewer, m: m, world: w, colliders: true, objects: true}
	scene.Graphic.Each(w, func(e *donburi.Entry) {
		if s, ok := scene.Graphic.Get(e).Graphic.(*ebitenrender.Surface); ok {
			g.surfaces = append(g.surfaces, s)
		}
	})
	return g, nil
}

func (g *Game) Update() error {
	speed := g.cfg.ScrollSpeed
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.camX -= speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.camX += speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		g.camY -= speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		g.camY += speed
	}
	g.camX = clamp(g.camX, 0, float64(g.m.PixelWidth()-g.cfg.Width))
	g.camY = clamp(g.camY, 0, float64(g.m.PixelHeight()-g.cfg.Height))

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.colliders = !g.colliders
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.objects = !g.objects
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	for _, s := range g.surfaces {
		s.Draw(screen, g.camX, g.camY)
	}

	if g.colliders {
		scene.Collider.Each(g.world, func(e *donburi.Entry) {
			grid := scene.Collider.Get(e).Grid
			for _, c := range grid.Cells {
				x := float32(float64(c.X*grid.TileWidth) - g.camX)
				y := float32(float64(c.Y*grid.TileHeight) - g.camY)
				vector.FillRect(screen, x, y, float32(grid.TileWidth), float32(grid.TileHeight), colliderColor, false)
			}
		})
	}

	if g.objects {
		entities.Placement.Each(g.world, func(e *donburi.Entry) {
			p := entities.Placement.Get(e)
			w, h := float32(p.Width), float32(p.Height)
			// point objects have no size
			if w == 0 || h == 0 {
				w, h = 4, 4
			}
			x := float32(float64(p.X) - g.camX)
			y := float32(float64(p.Y) - g.camY)
			vector.FillRect(screen, x, y, w, 1, objectColor, false)     // Top
			vector.FillRect(screen, x, y+h-1, w, 1, objectColor, false) // Bottom
			vector.FillRect(screen, x, y, 1, h, objectColor, false)     // Left
			vector.FillRect(screen, x+w-1, y, 1, h, objectColor, false) // Right
		})
	}
}

func (g *Game) Layout(width, height int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func main() {
	configPath := flag.String("config", "", "scene config (.toml or .yaml)")
	verbose := flag.Bool("v", false, "log debug output")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: tmxview [flags] <map.tmx>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			logrus.Fatal(err)
		}
	}

	game, err := NewGame(cfg, flag.Arg(0))
	if err != nil {
		logrus.Fatal(err)
	}

	ebiten.SetWindowSize(cfg.Viewer.Width, cfg.Viewer.Height)
	ebiten.SetWindowTitle("tmxview - " + flag.Arg(0))
	if err := ebiten.RunGame(game); err != nil {
		logrus.Fatal(err)
	}
}
