package mapview

import (
	"github.com/lintang-b-s/gopherway/pkg/geo"
	"github.com/lintang-b-s/gopherway/pkg/render"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type itemKind uint8

const (
	MARKER itemKind = iota
	POLYLINE
)

type item struct {
	handle  render.Handle
	layer   render.Layer
	kind    itemKind
	at      geo.Coordinate
	path    []geo.Coordinate
	icon    render.Icon
	style   render.Style
	onClick func()
}

// Scene is an in-memory render.Surface. it keeps what a browser map would show so the scene can be shipped to a
// client as GeoJSON, and click handlers run server-side through Click. a Scene is not safe for concurrent use.
type Scene struct {
	center  geo.Coordinate
	zoom    int
	visible map[render.Layer]bool
	items   map[render.Handle]*item
	order   []render.Handle
	next    render.Handle
	removed bool
}

func NewScene() *Scene {
	return &Scene{
		visible: make(map[render.Layer]bool),
		items:   make(map[render.Handle]*item),
		order:   make([]render.Handle, 0),
		next:    1,
	}
}

func (s *Scene) SetView(center geo.Coordinate, zoom int) {
	s.center = center
	s.zoom = zoom
}

func (s *Scene) View() (geo.Coordinate, int) {
	return s.center, s.zoom
}

func (s *Scene) AddLayer(layer render.Layer) {
	s.visible[layer] = true
}

func (s *Scene) RemoveLayer(layer render.Layer) {
	s.visible[layer] = false
}

func (s *Scene) LayerVisible(layer render.Layer) bool {
	return !s.removed && s.visible[layer]
}

func (s *Scene) ClearLayer(layer render.Layer) {
	kept := s.order[:0]
	for _, h := range s.order {
		if s.items[h].layer == layer {
			delete(s.items, h)
			continue
		}
		kept = append(kept, h)
	}
	s.order = kept
}

func (s *Scene) PlaceMarker(layer render.Layer, at geo.Coordinate, icon render.Icon, onClick func()) render.Handle {
	return s.add(&item{layer: layer, kind: MARKER, at: at, icon: icon, onClick: onClick})
}

func (s *Scene) DrawPolyline(layer render.Layer, path []geo.Coordinate, style render.Style) render.Handle {
	cp := make([]geo.Coordinate, len(path))
	copy(cp, path)
	return s.add(&item{layer: layer, kind: POLYLINE, path: cp, style: style})
}

func (s *Scene) SetStyle(h render.Handle, style render.Style) {
	if it, ok := s.items[h]; ok {
		it.style = style
	}
}

// Style returns the current style of a polyline.
func (s *Scene) Style(h render.Handle) (render.Style, bool) {
	it, ok := s.items[h]
	if !ok {
		return render.Style{}, false
	}
	return it.style, true
}

func (s *Scene) Remove() {
	s.removed = true
	s.items = make(map[render.Handle]*item)
	s.order = s.order[:0]
	s.visible = make(map[render.Layer]bool)
}

func (s *Scene) IsRemoved() bool {
	return s.removed
}

// Handles lists the handles placed on layer in placement order.
func (s *Scene) Handles(layer render.Layer) []render.Handle {
	hs := make([]render.Handle, 0)
	for _, h := range s.order {
		if s.items[h].layer == layer {
			hs = append(hs, h)
		}
	}
	return hs
}

// Click runs the click handler of the marker h. it reports false when h is unknown, hidden or not interactive.
func (s *Scene) Click(h render.Handle) bool {
	it, ok := s.items[h]
	if !ok || it.kind != MARKER || it.onClick == nil || !s.LayerVisible(it.layer) {
		return false
	}
	it.onClick()
	return true
}

// FeatureCollection exports every item of the visible layers, in placement order. markers become Points and
// polylines LineStrings; layer, handle and styling go into the properties.
func (s *Scene) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, h := range s.order {
		it := s.items[h]
		if !s.LayerVisible(it.layer) {
			continue
		}

		var f *geojson.Feature
		switch it.kind {
		case MARKER:
			f = geojson.NewFeature(orb.Point{it.at.Lon, it.at.Lat})
			f.Properties["iconUrl"] = it.icon.URL
			f.Properties["iconSize"] = []int{it.icon.Width, it.icon.Height}
			f.Properties["interactive"] = it.onClick != nil
			f.Properties["node"] = geo.Key(it.at)
		case POLYLINE:
			ls := make(orb.LineString, 0, len(it.path))
			for _, c := range it.path {
				ls = append(ls, orb.Point{c.Lon, c.Lat})
			}
			f = geojson.NewFeature(ls)
			f.Properties["color"] = it.style.Color
			f.Properties["opacity"] = it.style.Opacity
			f.Properties["weight"] = it.style.Weight
		}
		f.Properties["layer"] = string(it.layer)
		f.Properties["handle"] = int(it.handle)
		fc.Append(f)
	}
	return fc
}

func (s *Scene) add(it *item) render.Handle {
	it.handle = s.next
	s.next++
	s.items[it.handle] = it
	s.order = append(s.order, it.handle)
	return it.handle
}
