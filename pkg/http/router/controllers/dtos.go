package controllers

import (
	"github.com/lintang-b-s/gopherway/pkg/datastructure"
	"github.com/lintang-b-s/gopherway/pkg/geo"
	"github.com/lintang-b-s/gopherway/pkg/mapview"
	"github.com/lintang-b-s/gopherway/pkg/spatialindex"
	"github.com/paulmach/orb/geojson"
)

type shortestPathRequest struct {
	StartLat float64 `validate:"min=-90,max=90"`
	StartLon float64 `validate:"min=-180,max=180"`
	DestLat  float64 `validate:"min=-90,max=90"`
	DestLon  float64 `validate:"min=-180,max=180"`
	Snap     bool
}

type nearestNodeRequest struct {
	Lat float64 `validate:"min=-90,max=90"`
	Lon float64 `validate:"min=-180,max=180"`
}

type coordinateResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func newCoordinateResponse(c geo.Coordinate) coordinateResponse {
	return coordinateResponse{Lat: c.Lat, Lon: c.Lon}
}

type shortestPathResponse struct {
	Distance    float64              `json:"distance"`
	Eta         float64              `json:"eta"`
	Path        string               `json:"path"`
	Coordinates []coordinateResponse `json:"coordinates"`
	Message     string               `json:"message"`
}

func NewShortestPathResponse(route datastructure.Route, eta float64, message string) shortestPathResponse {
	coords := make([]coordinateResponse, len(route.Path))
	for i, c := range route.Path {
		coords[i] = newCoordinateResponse(c)
	}
	return shortestPathResponse{
		Distance:    route.Distance,
		Eta:         eta,
		Path:        geo.PolylineFromCoords(route.Path),
		Coordinates: coords,
		Message:     message,
	}
}

type nodeResponse struct {
	Key string  `json:"key"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func newNodeResponse(c geo.Coordinate) nodeResponse {
	return nodeResponse{Key: geo.Key(c), Lat: c.Lat, Lon: c.Lon}
}

type nearestNodeResponse struct {
	nodeResponse
	Distance float64 `json:"distance"`
}

func newNearestNodeResponse(cand spatialindex.NodeCandidate) nearestNodeResponse {
	return nearestNodeResponse{
		nodeResponse: newNodeResponse(cand.Coordinate),
		Distance:     cand.Distance,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// websocket map session

type sessionRequest struct {
	Action string `json:"action" validate:"required,oneof=click set_start set_end clear scene"`
	Handle int    `json:"handle" validate:"required_if=Action click"`
	Node   string `json:"node" validate:"required_if=Action set_start,required_if=Action set_end"`
}

type sceneResponse struct {
	Center   coordinateResponse         `json:"center"`
	Zoom     int                        `json:"zoom"`
	Features *geojson.FeatureCollection `json:"features"`
}

type popupResponse struct {
	Node    nodeResponse `json:"node"`
	Actions []string     `json:"actions"`
}

type noticeResponse struct {
	Found    bool    `json:"found"`
	Message  string  `json:"message"`
	Distance float64 `json:"distance,omitempty"`
	Eta      float64 `json:"eta,omitempty"`
}

type sessionMessage struct {
	Type   string          `json:"type"`
	Scene  *sceneResponse  `json:"scene,omitempty"`
	Popup  *popupResponse  `json:"popup,omitempty"`
	Notice *noticeResponse `json:"notice,omitempty"`
}

func NewSessionMessage(ev mapview.Event) sessionMessage {
	msg := sessionMessage{Type: string(ev.Type)}
	switch ev.Type {
	case mapview.EVENT_SCENE:
		msg.Scene = &sceneResponse{
			Center:   newCoordinateResponse(ev.Center),
			Zoom:     ev.Zoom,
			Features: ev.Features,
		}
	case mapview.EVENT_POPUP:
		msg.Popup = &popupResponse{
			Node:    newNodeResponse(ev.Node),
			Actions: []string{"set_start", "set_end"},
		}
	case mapview.EVENT_NOTICE:
		msg.Notice = &noticeResponse{
			Found:    ev.Notice.Found,
			Message:  ev.Notice.Message,
			Distance: ev.Notice.Summary.DistanceMiles,
			Eta:      ev.Notice.Summary.ETAMinutes,
		}
	}
	return msg
}
