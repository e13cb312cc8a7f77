package tmx

// TilesetForGID returns the tileset with the largest FirstGID not greater
// than gid, or nil for the empty gid 0 and for gids below every tileset.
func (m *Map) TilesetForGID(gid uint32) *Tileset {
	if gid == 0 {
		return nil
	}
	var best *Tileset
	for i := range m.Tilesets {
		ts := &m.Tilesets[i]
		if ts.FirstGID <= gid && (best == nil || ts.FirstGID > best.FirstGID) {
			best = ts
		}
	}
	return best
}

// LayerNames lists layer names in document order. Duplicates are kept.
func (m *Map) LayerNames() []string {
	names := make([]string, 0, len(m.Layers))
	for _, l := range m.Layers {
		names = append(names, l.Info().Name)
	}
	return names
}

// LayersNamed returns every layer called name, in document order.
func (m *Map) LayersNamed(name string) []Layer {
	var out []Layer
	for _, l := range m.Layers {
		if l.Info().Name == name {
			out = append(out, l)
		}
	}
	return out
}

// FirstLayer returns the first layer called name.
func (m *Map) FirstLayer(name string) (Layer, bool) {
	for _, l := range m.Layers {
		if l.Info().Name == name {
			return l, true
		}
	}
	return nil, false
}

// TileLayers returns the tile layers in document order.
func (m *Map) TileLayers() []*TileLayer {
	var out []*TileLayer
	for _, l := range m.Layers {
		if tl, ok := l.(*TileLayer); ok {
			out = append(out, tl)
		}
	}
	return out
}

// ObjectGroups returns the object groups in document order.
func (m *Map) ObjectGroups() []*ObjectGroup {
	var out []*ObjectGroup
	for _, l := range m.Layers {
		if og, ok := l.(*ObjectGroup); ok {
			out = append(out, og)
		}
	}
	return out
}

// LocalID converts a global id into an index within ts. ok is false for the
// empty gid and for gids that belong to an earlier tileset.
func (ts *Tileset) LocalID(gid uint32) (id uint32, ok bool) {
	if gid == 0 || gid < ts.FirstGID {
		return 0, false
	}
	return gid - ts.FirstGID, true
}
