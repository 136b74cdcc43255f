package render

import "github.com/lintang-b-s/gopherway/pkg/geo"

// Handle identifies one marker or polyline placed on a Surface.
type Handle int

type Layer string

const (
	LAYER_NETWORK     Layer = "network"
	LAYER_NODES       Layer = "nodes"
	LAYER_ROUTE_NODES Layer = "routeNodes"
	LAYER_ROUTE_LINE  Layer = "routeLine"
)

type Icon struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type Style struct {
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
	Weight  float64 `json:"weight"`
}

// Surface is the interactive map the renderer draws on. a layer groups markers and polylines; AddLayer shows it
// on the map and RemoveLayer hides it without dropping its content. ClearLayer drops the content.
type Surface interface {
	SetView(center geo.Coordinate, zoom int)
	AddLayer(layer Layer)
	RemoveLayer(layer Layer)
	ClearLayer(layer Layer)
	// PlaceMarker places a marker. onClick may be nil for a non-interactive marker.
	PlaceMarker(layer Layer, at geo.Coordinate, icon Icon, onClick func()) Handle
	DrawPolyline(layer Layer, path []geo.Coordinate, style Style) Handle
	SetStyle(h Handle, style Style)
	// Remove detaches the whole map. the surface is unusable afterwards.
	Remove()
}
