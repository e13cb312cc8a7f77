package tmx

// Map is a fully parsed TMX document. It is not modified after Load returns
// and can be shared between goroutines.
type Map struct {
	// Source is the path or identifier the map was loaded from.
	Source string

	Width      int // tiles
	Height     int // tiles
	TileWidth  int // pixels
	TileHeight int // pixels

	Properties Properties
	Tilesets   []Tileset
	Layers     []Layer

	// osPath is set when Source names a file on the OS file system.
	osPath bool
}

// PixelWidth is the width of the map in pixels.
func (m *Map) PixelWidth() int {
	return m.Width * m.TileWidth
}

// PixelHeight is the height of the map in pixels.
func (m *Map) PixelHeight() int {
	return m.Height * m.TileHeight
}

// Tileset is one image-backed source of tile graphics.
type Tileset struct {
	Name string
	// Image is the tileset image path relative to the map document.
	Image      string
	FirstGID   uint32
	Properties Properties
}

// Tile is one cell of a tile layer. X and Y are layer-local tile coordinates.
type Tile struct {
	X, Y int
	GID  uint32
}

// IsEmpty reports whether no tile is drawn in this cell.
func (t Tile) IsEmpty() bool {
	return t.GID == 0
}

// LayerKind tags the layer variants.
type LayerKind int

const (
	KindTileLayer LayerKind = iota
	KindObjectGroup
)

func (k LayerKind) String() string {
	switch k {
	case KindTileLayer:
		return "layer"
	case KindObjectGroup:
		return "objectgroup"
	default:
		return "unknown"
	}
}

// Layer is either a *TileLayer or an *ObjectGroup. The set is closed.
type Layer interface {
	Kind() LayerKind
	Info() LayerInfo
	sealed()
}

// LayerInfo holds what every layer variant carries.
type LayerInfo struct {
	Name       string
	Properties Properties
}

// Info returns the layer's name and properties.
func (l LayerInfo) Info() LayerInfo {
	return l
}

// Encoding is the storage format of a tile layer's data.
type Encoding string

const (
	EncodingXML    Encoding = ""
	EncodingCSV    Encoding = "csv"
	EncodingBase64 Encoding = "base64"
)

func (e Encoding) String() string {
	if e == EncodingXML {
		return "xml"
	}
	return string(e)
}

// TileLayer is a rectangular grid of tiles. Tiles holds exactly Width*Height
// entries in row-major order.
type TileLayer struct {
	LayerInfo
	Width    int
	Height   int
	Opacity  float64
	Encoding Encoding
	Tiles    []Tile
}

func (*TileLayer) Kind() LayerKind { return KindTileLayer }
func (*TileLayer) sealed()         {}

// TileAt returns the tile at column x and row y.
func (l *TileLayer) TileAt(x, y int) (Tile, bool) {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return Tile{}, false
	}
	return l.Tiles[y*l.Width+x], true
}

// ObjectGroup is a collection of freeform objects in document order.
type ObjectGroup struct {
	LayerInfo
	Objects []Object
}

func (*ObjectGroup) Kind() LayerKind { return KindObjectGroup }
func (*ObjectGroup) sealed()         {}

// Object is a freeform entity placed on the map. Coordinates are map-space
// pixels truncated toward zero.
type Object struct {
	Name   string
	Type   string
	X, Y   int
	Width  int
	Height int
}
