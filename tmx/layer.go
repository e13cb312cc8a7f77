package tmx

import (
	"fmt"
	"math"
)

// maxLayerTiles bounds width*height so the tile count and the base64 byte
// count both fit in an int on every platform.
const maxLayerTiles = math.MaxInt32 / gidSize

func checkLayerSize(width, height int) error {
	if width < 0 || height < 0 {
		return &ParseError{Element: "layer", Err: fmt.Errorf("%w: negative size %dx%d", ErrMalformedDocument, width, height)}
	}
	if width > 0 && height > maxLayerTiles/width {
		return &ParseError{Element: "layer", Err: fmt.Errorf("%w: size %dx%d exceeds %d tiles", ErrMalformedDocument, width, height, maxLayerTiles)}
	}
	return nil
}

func loadLayerInfo(n *node) LayerInfo {
	return LayerInfo{
		Name:       n.attrOr("name", ""),
		Properties: loadProperties(n),
	}
}

func loadTileLayer(n *node) (*TileLayer, error) {
	layer := &TileLayer{
		LayerInfo: loadLayerInfo(n),
		Opacity:   1,
	}

	var err error
	if layer.Width, err = n.intAttr("width"); err != nil {
		return nil, err
	}
	if layer.Height, err = n.intAttr("height"); err != nil {
		return nil, err
	}
	if err = checkLayerSize(layer.Width, layer.Height); err != nil {
		return nil, err
	}
	if layer.Opacity, err = n.floatAttrOr("opacity", 1); err != nil {
		return nil, err
	}

	data := n.child("data")
	if data == nil {
		return nil, missingChild("layer", "data")
	}
	layer.Encoding = Encoding(data.attrOr("encoding", ""))

	if layer.Tiles, err = decodeTiles(data, layer.Encoding, layer.Width, layer.Height); err != nil {
		return nil, err
	}
	return layer, nil
}

func loadObjectGroup(n *node) (*ObjectGroup, error) {
	group := &ObjectGroup{LayerInfo: loadLayerInfo(n)}
	for _, child := range n.children("object") {
		obj, err := loadObject(child)
		if err != nil {
			return nil, err
		}
		group.Objects = append(group.Objects, obj)
	}
	return group, nil
}

// loadObject truncates the floating point geometry toward zero. Tiled 1.9
// and later write the type tag as "class".
func loadObject(n *node) (Object, error) {
	obj := Object{
		Name: n.attrOr("name", ""),
		Type: n.attrOr("type", n.attrOr("class", "")),
	}
	for _, f := range []struct {
		attr string
		dst  *int
	}{
		{"x", &obj.X},
		{"y", &obj.Y},
		{"width", &obj.Width},
		{"height", &obj.Height},
	} {
		v, err := n.floatAttrOr(f.attr, 0)
		if err != nil {
			return Object{}, err
		}
		*f.dst = int(v)
	}
	return obj, nil
}
