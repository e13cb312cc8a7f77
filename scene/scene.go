// Package scene builds a donburi world from a parsed map: collider layers
// become collision grids, other tile layers are handed to a renderer and
// object-group objects are spawned through an entity registry.
package scene

import (
	"errors"
	"fmt"

	"github.com/automoto/tiledmap/collision"
	"github.com/automoto/tiledmap/config"
	"github.com/automoto/tiledmap/entities"
	"github.com/automoto/tiledmap/tmx"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

// LayerRenderer produces a drawable for a tile layer. The result is stored
// untouched in the layer's Graphic component.
type LayerRenderer interface {
	RenderLayer(m *tmx.Map, layer *tmx.TileLayer) (any, error)
}

// ColliderData holds the collision grid built from a collider layer.
type ColliderData struct {
	Grid *collision.Grid
}

// GraphicData holds the renderer output for a tile layer.
type GraphicData struct {
	Name    string
	Graphic any
}

// Components attached by Build.
var (
	Collider = donburi.NewComponentType[ColliderData]()
	Graphic  = donburi.NewComponentType[GraphicData]()
)

// Stats counts what Build created.
type Stats struct {
	Colliders int
	Rendered  int
	Spawned   int
	Skipped   int
}

// Builder holds the collaborators used by Build. Renderer and Registry are
// optional; a headless server typically only sets Config.
type Builder struct {
	Config   config.Scene
	Registry *entities.Registry
	Renderer LayerRenderer
	Log      logrus.FieldLogger
}

func (b *Builder) log() logrus.FieldLogger {
	if b.Log == nil {
		return logrus.StandardLogger()
	}
	return b.Log
}

// Build walks the map's layers in document order and populates a new world.
// On error no world is returned.
func (b *Builder) Build(m *tmx.Map) (donburi.World, Stats, error) {
	w := donburi.NewWorld()
	var stats Stats

	for _, layer := range m.Layers {
		var err error
		switch l := layer.(type) {
		case *tmx.TileLayer:
			err = b.buildTileLayer(w, m, l, &stats)
		case *tmx.ObjectGroup:
			err = b.buildObjectGroup(w, l, &stats)
		}
		if err != nil {
			return nil, Stats{}, fmt.Errorf("build scene %s: %w", m.Source, err)
		}
	}

	b.log().WithFields(logrus.Fields{
		"map":       m.Source,
		"colliders": stats.Colliders,
		"rendered":  stats.Rendered,
		"spawned":   stats.Spawned,
		"skipped":   stats.Skipped,
	}).Info("scene built")
	return w, stats, nil
}

func (b *Builder) buildTileLayer(w donburi.World, m *tmx.Map, layer *tmx.TileLayer, stats *Stats) error {
	log := b.log().WithFields(logrus.Fields{"layer": layer.Name, "kind": layer.Kind()})

	if tags, ok := b.Config.ColliderTags(layer.Name); ok {
		grid := collision.NewGrid(m, layer, tags...)
		e := w.Entry(w.Create(Collider))
		Collider.SetValue(e, ColliderData{Grid: grid})
		stats.Colliders++
		log.WithField("cells", len(grid.Cells)).Debug("collision grid")
		return nil
	}

	if b.Renderer == nil {
		stats.Skipped++
		return nil
	}
	if p := b.Config.RenderProperty; p != "" && !layer.Properties.GetBool(p) {
		log.Debugf("not rendered: property %q is not true", p)
		stats.Skipped++
		return nil
	}

	graphic, err := b.Renderer.RenderLayer(m, layer)
	if err != nil {
		return fmt.Errorf("render layer %q: %w", layer.Name, err)
	}
	e := w.Entry(w.Create(Graphic))
	Graphic.SetValue(e, GraphicData{Name: layer.Name, Graphic: graphic})
	stats.Rendered++
	log.Debug("rendered")
	return nil
}

func (b *Builder) buildObjectGroup(w donburi.World, group *tmx.ObjectGroup, stats *Stats) error {
	log := b.log().WithFields(logrus.Fields{"layer": group.Name, "kind": group.Kind()})
	if b.Registry == nil {
		stats.Skipped += len(group.Objects)
		return nil
	}

	for _, obj := range group.Objects {
		_, err := b.Registry.Spawn(w, obj)
		if errors.Is(err, entities.ErrUnknownType) && b.Config.SkipUnknownTypes {
			log.WithField("type", obj.Type).Warnf("skipping object %q", obj.Name)
			stats.Skipped++
			continue
		}
		if err != nil {
			return fmt.Errorf("objectgroup %q: %w", group.Name, err)
		}
		stats.Spawned++
	}
	return nil
}
