// Package entities turns TMX objects into donburi entities. Object type tags
// are resolved through an explicit Registry populated by the host
// application.
package entities

import (
	"errors"
	"fmt"
	"sort"

	"github.com/automoto/tiledmap/tmx"
	"github.com/yohamta/donburi"
)

var (
	// ErrUnknownType is returned by Spawn for a type tag nothing registered.
	ErrUnknownType = errors.New("entities: unknown object type")

	// ErrDuplicateType is returned by Register when a type tag is taken.
	ErrDuplicateType = errors.New("entities: type already registered")
)

// Factory creates the entity for one placed object.
type Factory func(w donburi.World, obj tmx.Object) (*donburi.Entry, error)

// Registry maps object type tags to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds typ to f. The empty type tag is a valid key.
func (r *Registry) Register(typ string, f Factory) error {
	if f == nil {
		return fmt.Errorf("register %q: nil factory", typ)
	}
	if _, ok := r.factories[typ]; ok {
		return fmt.Errorf("register %q: %w", typ, ErrDuplicateType)
	}
	r.factories[typ] = f
	return nil
}

// MustRegister is Register for package-level setup.
func (r *Registry) MustRegister(typ string, f Factory) {
	if err := r.Register(typ, f); err != nil {
		panic(err)
	}
}

// Has reports whether typ has a factory.
func (r *Registry) Has(typ string) bool {
	_, ok := r.factories[typ]
	return ok
}

// Types returns the registered type tags, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.factories))
	for typ := range r.factories {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

// Spawn creates the entity for obj using the factory registered for its type.
func (r *Registry) Spawn(w donburi.World, obj tmx.Object) (*donburi.Entry, error) {
	f, ok := r.factories[obj.Type]
	if !ok {
		return nil, fmt.Errorf("spawn %q (type %q): %w", obj.Name, obj.Type, ErrUnknownType)
	}
	entry, err := f(w, obj)
	if err != nil {
		return nil, fmt.Errorf("spawn %q (type %q): %w", obj.Name, obj.Type, err)
	}
	return entry, nil
}
