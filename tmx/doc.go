// Package tmx parses Tiled Map Editor (TMX) documents into an immutable
// in-memory model.
//
// A map is loaded with LoadFile or Load. Tile layers may be stored as inline
// XML, CSV or base64 (optionally gzip compressed); all three decode into the
// same row-major sequence of Tile values. The package has no dependency on a
// rendering or physics engine: those are consumers of the parsed Map.
package tmx
