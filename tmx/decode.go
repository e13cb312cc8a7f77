package tmx

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Compression values accepted in a <data> element.
const (
	CompressionGzip = "gzip"
	CompressionZlib = "zlib"
)

const gidSize = 4

// decodeTiles turns a layer's <data> element into exactly width*height tiles
// in row-major order.
func decodeTiles(data *node, enc Encoding, width, height int) ([]Tile, error) {
	switch enc {
	case EncodingBase64:
		buf, err := base64Payload(data)
		if err != nil {
			return nil, err
		}
		return decodeBinary(buf, width, height)
	case EncodingCSV:
		gids, err := decodeCSV(data.Text)
		if err != nil {
			return nil, err
		}
		return layoutTiles(gids, width, height)
	case EncodingXML:
		gids, err := decodeXML(data)
		if err != nil {
			return nil, err
		}
		return layoutTiles(gids, width, height)
	default:
		return nil, &ParseError{Element: "data", Attr: "encoding", Value: string(enc), Err: ErrUnsupportedEncoding}
	}
}

// base64Payload decodes the element text and inflates it when compressed.
func base64Payload(data *node) ([]byte, error) {
	// Tiled wraps the payload in newlines and indentation.
	text := strings.Join(strings.Fields(data.Text), "")
	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, &ParseError{Element: "data", Attr: "encoding", Value: "base64", Err: fmt.Errorf("%w: %v", ErrCorruptPayload, err)}
	}

	compression, ok := data.attr("compression")
	if !ok || compression == "" {
		return raw, nil
	}
	switch compression {
	case CompressionGzip:
		return gunzip(raw)
	case CompressionZlib:
		return nil, &ParseError{Element: "data", Attr: "compression", Value: compression, Err: fmt.Errorf("%w: zlib is not supported, save the map with gzip", ErrUnsupportedCompression)}
	default:
		return nil, &ParseError{Element: "data", Attr: "compression", Value: compression, Err: ErrUnsupportedCompression}
	}
}

func gunzip(raw []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, &ParseError{Element: "data", Attr: "compression", Value: CompressionGzip, Err: fmt.Errorf("%w: %v", ErrCorruptPayload, err)}
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, &ParseError{Element: "data", Attr: "compression", Value: CompressionGzip, Err: fmt.Errorf("%w: %v", ErrCorruptPayload, err)}
	}
	return out, nil
}

// decodeBinary reads little-endian uint32 gids, one per tile.
func decodeBinary(buf []byte, width, height int) ([]Tile, error) {
	want := width * height * gidSize
	if len(buf) != want {
		return nil, &ParseError{
			Element: "data",
			Attr:    "encoding",
			Value:   "base64",
			Err:     fmt.Errorf("%w: got %d bytes, want %d for %dx%d tiles", ErrCorruptPayload, len(buf), want, width, height),
		}
	}

	tiles := make([]Tile, 0, width*height)
	off := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			tiles = append(tiles, Tile{X: x, Y: y, GID: binary.LittleEndian.Uint32(buf[off:])})
			off += gidSize
		}
	}
	return tiles, nil
}

func decodeCSV(text string) ([]uint32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	fields := strings.Split(text, ",")
	gids := make([]uint32, 0, len(fields))
	for _, f := range fields {
		tok := strings.TrimSpace(f)
		gid, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			return nil, &ParseError{Element: "data", Attr: "encoding", Value: "csv", Err: fmt.Errorf("%w: token %q: %v", ErrCorruptPayload, tok, err)}
		}
		gids = append(gids, uint32(gid))
	}
	return gids, nil
}

func decodeXML(data *node) ([]uint32, error) {
	tiles := data.children("tile")
	gids := make([]uint32, 0, len(tiles))
	for _, t := range tiles {
		raw, ok := t.attr("gid")
		if !ok {
			gids = append(gids, 0)
			continue
		}
		gid, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, &ParseError{Element: "tile", Attr: "gid", Value: raw, Err: fmt.Errorf("%w: %v", ErrCorruptPayload, err)}
		}
		gids = append(gids, uint32(gid))
	}
	return gids, nil
}

// layoutTiles maps flat index k to row k/width, column k%width.
func layoutTiles(gids []uint32, width, height int) ([]Tile, error) {
	if len(gids) != width*height {
		return nil, &ParseError{
			Element: "data",
			Err:     fmt.Errorf("%w: got %d tiles, want %d for %dx%d", ErrCorruptPayload, len(gids), width*height, width, height),
		}
	}
	tiles := make([]Tile, len(gids))
	for k, gid := range gids {
		tiles[k] = Tile{X: k % width, Y: k / width, GID: gid}
	}
	return tiles, nil
}
