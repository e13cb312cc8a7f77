package tmx

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// dataElement renders gids as a <data> element in the requested format.
// format is one of "xml", "csv", "base64" or "base64+gzip".
func dataElement(t *testing.T, format string, gids []uint32) string {
	t.Helper()
	switch format {
	case "xml":
		var b strings.Builder
		b.WriteString("<data>\n")
		for _, g := range gids {
			fmt.Fprintf(&b, "  <tile gid=\"%d\"/>\n", g)
		}
		b.WriteString("</data>")
		return b.String()
	case "csv":
		parts := make([]string, len(gids))
		for i, g := range gids {
			parts[i] = fmt.Sprint(g)
		}
		return "<data encoding=\"csv\">\n" + strings.Join(parts, ",\n") + "\n</data>"
	case "base64":
		return "<data encoding=\"base64\">\n   " + base64.StdEncoding.EncodeToString(gidBytes(gids)) + "\n</data>"
	case "base64+gzip":
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(gidBytes(gids)); err != nil {
			t.Fatalf("gzip write: %v", err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("gzip close: %v", err)
		}
		return "<data encoding=\"base64\" compression=\"gzip\">\n   " + base64.StdEncoding.EncodeToString(buf.Bytes()) + "\n</data>"
	default:
		t.Fatalf("unknown format %q", format)
		return ""
	}
}

func gidBytes(gids []uint32) []byte {
	buf := make([]byte, 4*len(gids))
	for i, g := range gids {
		binary.LittleEndian.PutUint32(buf[i*4:], g)
	}
	return buf
}

// mapDoc wraps body in a 4x3 map with 16x16 tiles and one tileset.
func mapDoc(body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" width="4" height="3" tilewidth="16" tileheight="16">
 <tileset firstgid="1" name="terrain" tilewidth="16" tileheight="16" tilecount="64" columns="8">
  <image source="terrain.png" width="128" height="128"/>
 </tileset>
` + body + `
</map>`
}

func mustLoad(t *testing.T, doc string) *Map {
	t.Helper()
	m, err := Load("level.tmx", strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m
}

func mustParseNode(t *testing.T, doc string) node {
	t.Helper()
	var n node
	if err := xml.Unmarshal([]byte(doc), &n); err != nil {
		t.Fatalf("unmarshal %q: %v", doc, err)
	}
	return n
}
