package entities

import (
	"github.com/automoto/tiledmap/tmx"
	"github.com/yohamta/donburi"
)

// PlacementData is the verbatim name, type tag and geometry of the object an
// entity was spawned from.
type PlacementData struct {
	Name   string
	Type   string
	X, Y   int
	Width  int
	Height int
}

var Placement = donburi.NewComponentType[PlacementData]()

// Spawned tags every entity created from a map object.
var Spawned = donburi.NewTag().SetName("Spawned")

func placementOf(obj tmx.Object) PlacementData {
	return PlacementData{
		Name:   obj.Name,
		Type:   obj.Type,
		X:      obj.X,
		Y:      obj.Y,
		Width:  obj.Width,
		Height: obj.Height,
	}
}
