package entities

import (
	"github.com/automoto/tiledmap/tmx"
	"github.com/yohamta/donburi"
)

// Archetype is a fixed component set for entities spawned from objects.
type Archetype struct {
	components []donburi.IComponentType
}

// NewArchetype returns an Archetype spawning entities with cs.
func NewArchetype(cs ...donburi.IComponentType) *Archetype {
	return &Archetype{
		components: cs,
	}
}

// Spawn creates an entity with the archetype's components plus Placement and
// Spawned, and records obj's placement on it.
func (a *Archetype) Spawn(w donburi.World, obj tmx.Object, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs)+2)
	all = append(all, Placement, Spawned)
	all = append(all, a.components...)
	all = append(all, cs...)

	e := w.Entry(w.Create(all...))
	Placement.SetValue(e, placementOf(obj))
	return e
}

// Factory adapts the archetype to a Registry factory.
func (a *Archetype) Factory() Factory {
	return func(w donburi.World, obj tmx.Object) (*donburi.Entry, error) {
		return a.Spawn(w, obj), nil
	}
}
