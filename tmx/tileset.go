package tmx

import (
	"fmt"
	"strconv"
)

func loadTileset(n *node) (Tileset, error) {
	raw, ok := n.attr("firstgid")
	if !ok {
		return Tileset{}, missingAttr("tileset", "firstgid")
	}
	firstGID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || firstGID == 0 {
		return Tileset{}, &ParseError{
			Element: "tileset",
			Attr:    "firstgid",
			Value:   raw,
			Err:     fmt.Errorf("%w: firstgid must be a positive integer", ErrMalformedDocument),
		}
	}

	ts := Tileset{
		Name:       n.attrOr("name", ""),
		FirstGID:   uint32(firstGID),
		Properties: loadProperties(n),
	}
	// The image is only referenced, never opened here.
	if img := n.child("image"); img != nil {
		ts.Image = img.attrOr("source", "")
	}
	return ts, nil
}
