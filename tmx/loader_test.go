package tmx

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
)

func levelDoc(t *testing.T) string {
	t.Helper()
	gids := []uint32{
		1, 2, 2, 3,
		0, 0, 0, 0,
		9, 10, 11, 0,
	}
	return `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" width="4" height="3" tilewidth="16" tileheight="8">
 <properties>
  <property name="music" value="theme.ogg"/>
 </properties>
 <tileset firstgid="1" name="terrain" tilewidth="16" tileheight="8" tilecount="8" columns="4">
  <image source="../images/terrain.png" width="64" height="16"/>
 </tileset>
 <tileset firstgid="9" name="props" tilewidth="16" tileheight="8" tilecount="4" columns="4">
  <properties><property name="kind" value="decor"/></properties>
  <image source="props.png" width="64" height="8"/>
 </tileset>
 <layer id="1" name="wg-tiles" width="4" height="3">
  <properties><property name="render" type="bool" value="true"/></properties>
  ` + dataElement(t, "csv", gids) + `
 </layer>
 <imagelayer id="2" name="sky"><image source="sky.png"/></imagelayer>
 <objectgroup id="3" name="PlayerSpawn">
  <properties><property name="team" value="red"/></properties>
  <object id="1" name="p1" type="Spawn" x="10.7" y="5.0" width="32" height="32"/>
  <object id="2" name="p2" x="-3.9" y="40"/>
 </objectgroup>
 <layer id="4" name="wg-tiles" width="4" height="3" opacity="0.5">
  ` + dataElement(t, "base64+gzip", gids) + `
 </layer>
</map>`
}

func TestLoad_Document(t *testing.T) {
	m := mustLoad(t, levelDoc(t))

	if m.Source != "level.tmx" {
		t.Fatalf("Source = %q", m.Source)
	}
	if m.Width != 4 || m.Height != 3 || m.TileWidth != 16 || m.TileHeight != 8 {
		t.Fatalf("dimensions = %dx%d tiles of %dx%d", m.Width, m.Height, m.TileWidth, m.TileHeight)
	}
	if m.PixelWidth() != 64 || m.PixelHeight() != 24 {
		t.Fatalf("pixel size = %dx%d, want 64x24", m.PixelWidth(), m.PixelHeight())
	}
	if got := m.Properties.GetString("music"); got != "theme.ogg" {
		t.Fatalf("map property music = %q", got)
	}

	if len(m.Tilesets) != 2 {
		t.Fatalf("tilesets = %d, want 2", len(m.Tilesets))
	}
	if ts := m.Tilesets[0]; ts.Name != "terrain" || ts.FirstGID != 1 || ts.Image != "../images/terrain.png" {
		t.Fatalf("tileset[0] = %+v", ts)
	}
	if ts := m.Tilesets[1]; ts.FirstGID != 9 || ts.Properties.GetString("kind") != "decor" {
		t.Fatalf("tileset[1] = %+v", ts)
	}

	// imagelayer is not a modeled variant and must be skipped
	if got := m.LayerNames(); !reflect.DeepEqual(got, []string{"wg-tiles", "PlayerSpawn", "wg-tiles"}) {
		t.Fatalf("layer names = %v", got)
	}

	first, ok := m.Layers[0].(*TileLayer)
	if !ok {
		t.Fatalf("layer 0 is %T", m.Layers[0])
	}
	if first.Opacity != 1 || first.Encoding != EncodingCSV || !first.Properties.GetBool("render") {
		t.Fatalf("layer 0 = opacity %v encoding %q props %v", first.Opacity, first.Encoding, first.Properties)
	}
	second := m.Layers[2].(*TileLayer)
	if second.Opacity != 0.5 || second.Encoding != EncodingBase64 {
		t.Fatalf("layer 2 = opacity %v encoding %q", second.Opacity, second.Encoding)
	}
	if !reflect.DeepEqual(first.Tiles, second.Tiles) {
		t.Fatalf("csv and gzip layers decoded differently")
	}
	if tile, ok := first.TileAt(2, 2); !ok || tile.GID != 11 {
		t.Fatalf("TileAt(2,2) = %+v, %v", tile, ok)
	}
	if _, ok := first.TileAt(4, 0); ok {
		t.Fatalf("TileAt out of range reported ok")
	}

	group := m.Layers[1].(*ObjectGroup)
	if group.Properties.GetString("team") != "red" {
		t.Fatalf("group properties = %v", group.Properties)
	}
	want := []Object{
		{Name: "p1", Type: "Spawn", X: 10, Y: 5, Width: 32, Height: 32},
		{Name: "p2", X: -3, Y: 40},
	}
	if !reflect.DeepEqual(group.Objects, want) {
		t.Fatalf("objects = %+v, want %+v", group.Objects, want)
	}
}

func TestLoad_ObjectExample(t *testing.T) {
	m := mustLoad(t, mapDoc(`<objectgroup name="items">
  <object name="c" x="10.7" y="5.0" width="32" height="32" type="Coin"/>
 </objectgroup>`))
	got := m.ObjectGroups()[0].Objects[0]
	want := Object{Name: "c", X: 10, Y: 5, Width: 32, Height: 32, Type: "Coin"}
	if got != want {
		t.Fatalf("object = %+v, want %+v", got, want)
	}
}

func TestLoad_ObjectClass(t *testing.T) {
	m := mustLoad(t, mapDoc(`<objectgroup name="items">
  <object name="c" class="Coin" x="1" y="2"/>
  <object name="d" type="Door" class="Ignored" x="3" y="4"/>
 </objectgroup>`))
	objs := m.ObjectGroups()[0].Objects
	if objs[0].Type != "Coin" {
		t.Fatalf("class fallback: type = %q, want Coin", objs[0].Type)
	}
	if objs[1].Type != "Door" {
		t.Fatalf("type attribute wins: type = %q, want Door", objs[1].Type)
	}
}

func TestLoad_NestedTilesetsInDocumentOrder(t *testing.T) {
	doc := `<map width="1" height="1" tilewidth="8" tileheight="8">
 <group name="g">
  <tileset firstgid="5" name="deep"><image source="deep.png"/></tileset>
 </group>
 <tileset firstgid="1" name="top"/>
</map>`
	m := mustLoad(t, doc)
	if len(m.Tilesets) != 2 || m.Tilesets[0].Name != "deep" || m.Tilesets[1].Name != "top" {
		t.Fatalf("tilesets = %+v", m.Tilesets)
	}
	if m.Tilesets[1].Image != "" {
		t.Fatalf("tileset without image has Image %q", m.Tilesets[1].Image)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "not xml",
			doc:  `<map width="1"`,
			want: ErrMalformedDocument,
		},
		{
			name: "no map element",
			doc:  `<world/>`,
			want: ErrMalformedDocument,
		},
		{
			name: "missing map width",
			doc:  `<map height="1" tilewidth="8" tileheight="8"/>`,
			want: ErrMalformedDocument,
		},
		{
			name: "non numeric tile height",
			doc:  `<map width="1" height="1" tilewidth="8" tileheight="big"/>`,
			want: ErrMalformedDocument,
		},
		{
			name: "tileset without firstgid",
			doc:  mapDoc(`<tileset name="x"/>`),
			want: ErrMalformedDocument,
		},
		{
			name: "layer without data",
			doc:  mapDoc(`<layer name="a" width="1" height="1"/>`),
			want: ErrMalformedDocument,
		},
		{
			name: "layer without width",
			doc:  mapDoc(`<layer name="a" height="1"><data encoding="csv">1</data></layer>`),
			want: ErrMalformedDocument,
		},
		{
			name: "bad opacity",
			doc:  mapDoc(`<layer name="a" width="1" height="1" opacity="half"><data encoding="csv">1</data></layer>`),
			want: ErrMalformedDocument,
		},
		{
			name: "bad object coordinate",
			doc:  mapDoc(`<objectgroup name="o"><object x="left"/></objectgroup>`),
			want: ErrMalformedDocument,
		},
		{
			name: "zero tile width",
			doc:  `<map width="4" height="3" tilewidth="0" tileheight="16"/>`,
			want: ErrMalformedDocument,
		},
		{
			name: "negative tile height",
			doc:  `<map width="4" height="3" tilewidth="16" tileheight="-16"/>`,
			want: ErrMalformedDocument,
		},
		{
			name: "negative map width",
			doc:  `<map width="-4" height="3" tilewidth="16" tileheight="16"/>`,
			want: ErrMalformedDocument,
		},
		{
			name: "negative map height",
			doc:  `<map width="4" height="-3" tilewidth="16" tileheight="16"/>`,
			want: ErrMalformedDocument,
		},
		{
			name: "map pixel size overflows",
			doc:  `<map width="4294967296" height="3" tilewidth="16" tileheight="16"/>`,
			want: ErrMalformedDocument,
		},
		{
			name: "base64 layer size overflows",
			doc:  mapDoc(`<layer name="a" width="2147483648" height="2147483648"><data encoding="base64"></data></layer>`),
			want: ErrMalformedDocument,
		},
		{
			name: "csv layer size overflows",
			doc:  mapDoc(`<layer name="a" width="4294967296" height="4294967296"><data encoding="csv"></data></layer>`),
			want: ErrMalformedDocument,
		},
		{
			name: "negative layer width",
			doc:  mapDoc(`<layer name="a" width="-1" height="1"><data encoding="csv">1</data></layer>`),
			want: ErrMalformedDocument,
		},
		{
			name: "zlib layer aborts the whole map",
			doc: mapDoc(`<layer name="ok" width="1" height="1"><data encoding="csv">1</data></layer>
 <layer name="bad" width="1" height="1"><data encoding="base64" compression="zlib">eJxjZGBgAAAACAAC</data></layer>`),
			want: ErrUnsupportedCompression,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Load("level.tmx", strings.NewReader(tc.doc))
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if m != nil {
				t.Fatalf("got a partial map on error")
			}
		})
	}
}

func TestLoad_ErrorNamesLayer(t *testing.T) {
	_, err := Load("level.tmx", strings.NewReader(mapDoc(`<layer name="ground" width="1" height="1"><data encoding="hex">1</data></layer>`)))
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"level.tmx", `layer "ground"`, `encoding="hex"`} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}
}

func TestLoad_DeclaredCharset(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<map width=\"1\" height=\"1\" tilewidth=\"8\" tileheight=\"8\">" +
		"<properties><property name=\"title\" value=\"Caf\xe9\"/></properties></map>"
	m := mustLoad(t, doc)
	if got := m.Properties.GetString("title"); got != "Café" {
		t.Fatalf("title = %q, want Café", got)
	}
}

func TestLoadFile(t *testing.T) {
	doc := levelDoc(t)

	t.Run("os path", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "level.tmx")
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
		m, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile(%q): %v", path, err)
		}
		if m.Source != path || len(m.Layers) != 3 {
			t.Fatalf("source %q layers %d", m.Source, len(m.Layers))
		}
		want := filepath.Join(dir, "..", "images", "terrain.png")
		if got := m.ImagePath(m.Tilesets[0]); got != want {
			t.Fatalf("ImagePath = %q, want %q", got, want)
		}
	})

	t.Run("file system", func(t *testing.T) {
		fsys := fstest.MapFS{"levels/level.tmx": {Data: []byte(doc)}}
		m, err := LoadFile("levels/level.tmx", WithFileSystem(fsys))
		if err != nil {
			t.Fatalf("LoadFile: %v", err)
		}
		if got := m.ImagePath(m.Tilesets[0]); got != "images/terrain.png" {
			t.Fatalf("ImagePath = %q, want images/terrain.png", got)
		}
		if got := m.ImagePath(m.Tilesets[1]); got != "levels/props.png" {
			t.Fatalf("ImagePath = %q, want levels/props.png", got)
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.tmx"))
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
		_, err = LoadFile("nope.tmx", WithFileSystem(fstest.MapFS{}))
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("fs err = %v, want ErrNotFound", err)
		}
	})
}

func TestImagePath_ParentDirectory(t *testing.T) {
	doc := mapDoc("")
	doc = strings.Replace(doc, `source="terrain.png"`, `source="../tiles/terrain.png"`, 1)
	fsys := fstest.MapFS{
		"maps/level.tmx":    {Data: []byte(doc)},
		"tiles/terrain.png": {Data: []byte("png")},
	}

	m, err := LoadFile("maps/level.tmx", WithFileSystem(fsys))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	got := m.ImagePath(m.Tilesets[0])
	if got != "tiles/terrain.png" {
		t.Fatalf("ImagePath = %q, want tiles/terrain.png", got)
	}
	if _, err := fs.ReadFile(fsys, got); err != nil {
		t.Fatalf("read %s: %v", got, err)
	}
}

func TestRootFS(t *testing.T) {
	dir := t.TempDir()
	doc := strings.Replace(mapDoc(""), `source="terrain.png"`, `source="../tiles/terrain.png"`, 1)
	for name, data := range map[string]string{
		filepath.Join("maps", "level.tmx"):    doc,
		filepath.Join("tiles", "terrain.png"): "png",
	} {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	fsys, name, err := RootFS(filepath.Join(dir, "maps", "level.tmx"))
	if err != nil {
		t.Fatalf("RootFS: %v", err)
	}
	m, err := LoadFile(name, WithFileSystem(fsys))
	if err != nil {
		t.Fatalf("LoadFile(%q): %v", name, err)
	}
	img, err := fs.ReadFile(fsys, m.ImagePath(m.Tilesets[0]))
	if err != nil {
		t.Fatalf("read tileset image: %v", err)
	}
	if string(img) != "png" {
		t.Fatalf("image = %q, want png", img)
	}
}

func TestLoad_Idempotent(t *testing.T) {
	doc := levelDoc(t)
	a := mustLoad(t, doc)
	b := mustLoad(t, doc)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two loads of the same bytes differ")
	}
}
