package tmx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

type loader struct {
	fsys fs.FS
}

// LoaderOption configures LoadFile.
type LoaderOption func(*loader)

// WithFileSystem resolves map paths against fsys instead of the OS file
// system. Use it with embed.FS or os.DirFS.
func WithFileSystem(fsys fs.FS) LoaderOption {
	return func(l *loader) {
		l.fsys = fsys
	}
}

// LoadFile reads and parses the TMX document at path. It fails with
// ErrNotFound when the path cannot be read.
func LoadFile(path string, opts ...LoaderOption) (*Map, error) {
	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}

	var (
		buf []byte
		err error
	)
	if l.fsys != nil {
		buf, err = fs.ReadFile(l.fsys, path)
	} else {
		buf, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	}
	m, err := Load(path, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	m.osPath = l.fsys == nil
	return m, nil
}

// Load parses a TMX document from r. source is recorded as Map.Source and is
// used to resolve tileset image paths.
func Load(source string, r io.Reader) (*Map, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var root node
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("load TMX %s: %w: %v", source, ErrMalformedDocument, err)
	}

	m, err := buildMap(source, &root)
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", source, err)
	}
	return m, nil
}

// charsetReader handles documents declaring a non UTF-8 encoding.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(strings.ToLower(label))
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, errors.New("unsupported charset " + label)
	}
	return enc.NewDecoder().Reader(input), nil
}

func checkMapSize(m *Map) error {
	if m.Width < 0 || m.Height < 0 {
		return &ParseError{Element: "map", Err: fmt.Errorf("%w: negative size %dx%d", ErrMalformedDocument, m.Width, m.Height)}
	}
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		return &ParseError{Element: "map", Err: fmt.Errorf("%w: tile size %dx%d must be positive", ErrMalformedDocument, m.TileWidth, m.TileHeight)}
	}
	if m.Width > math.MaxInt32/m.TileWidth || m.Height > math.MaxInt32/m.TileHeight {
		return &ParseError{Element: "map", Err: fmt.Errorf("%w: pixel size of %dx%d tiles overflows", ErrMalformedDocument, m.Width, m.Height)}
	}
	return nil
}

func buildMap(source string, root *node) (*Map, error) {
	maps := root.find("map")
	if len(maps) == 0 {
		return nil, missingChild("document", "map")
	}
	mapNode := maps[0]

	m := &Map{Source: source}
	for _, f := range []struct {
		attr string
		dst  *int
	}{
		{"width", &m.Width},
		{"height", &m.Height},
		{"tilewidth", &m.TileWidth},
		{"tileheight", &m.TileHeight},
	} {
		v, err := mapNode.intAttr(f.attr)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	if err := checkMapSize(m); err != nil {
		return nil, err
	}

	m.Properties = loadProperties(mapNode)

	// Tilesets are collected from the whole document, not only the map's
	// direct children.
	for _, n := range root.find("tileset") {
		ts, err := loadTileset(n)
		if err != nil {
			return nil, err
		}
		m.Tilesets = append(m.Tilesets, ts)
	}

	for i := range mapNode.Nodes {
		child := &mapNode.Nodes[i]
		switch child.name() {
		case "layer":
			layer, err := loadTileLayer(child)
			if err != nil {
				return nil, fmt.Errorf("layer %q: %w", child.attrOr("name", ""), err)
			}
			m.Layers = append(m.Layers, layer)
		case "objectgroup":
			group, err := loadObjectGroup(child)
			if err != nil {
				return nil, fmt.Errorf("objectgroup %q: %w", child.attrOr("name", ""), err)
			}
			m.Layers = append(m.Layers, group)
		}
	}
	return m, nil
}

// ImagePath resolves the tileset image relative to the map document. Maps
// read by LoadFile without WithFileSystem get an OS path. Otherwise the
// result is a cleaned slash separated path for use with the same fs.FS.
func (m *Map) ImagePath(ts Tileset) string {
	if ts.Image == "" {
		return ""
	}
	if m.osPath {
		img := filepath.FromSlash(ts.Image)
		if filepath.IsAbs(img) {
			return img
		}
		return filepath.Join(filepath.Dir(m.Source), img)
	}
	if path.IsAbs(ts.Image) {
		return ts.Image
	}
	return path.Join(path.Dir(m.Source), ts.Image)
}

// RootFS opens the volume holding the map at name and returns it with the
// map's slash separated path inside it. Loading through it keeps tileset
// images outside the map's directory reachable.
func RootFS(name string) (fs.FS, string, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, "", fmt.Errorf("resolve %s: %w", name, err)
	}
	root := filepath.VolumeName(abs) + string(filepath.Separator)
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return nil, "", fmt.Errorf("resolve %s: %w", name, err)
	}
	return os.DirFS(root), filepath.ToSlash(rel), nil
}
