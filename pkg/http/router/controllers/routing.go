package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/gopherway/pkg"
	"github.com/lintang-b-s/gopherway/pkg/engine/routing"
	"github.com/lintang-b-s/gopherway/pkg/geo"
	helper "github.com/lintang-b-s/gopherway/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/gopherway/pkg/selection"
	"go.uber.org/zap"
)

type navigatorAPI struct {
	responder
	navigatorService NavigatorService
	validator        *requestValidator
	log              *zap.Logger
}

func New(navigatorService NavigatorService, log *zap.Logger) *navigatorAPI {
	return &navigatorAPI{
		responder:        responder{log: log},
		navigatorService: navigatorService,
		validator:        newRequestValidator(),
		log:              log,
	}
}

func (api *navigatorAPI) Routes(group *helper.RouteGroup) {
	group.GET("/network", api.network)
	group.GET("/nodes", api.nodes)
	group.GET("/nearestNode", api.nearestNode)
	group.GET("/computeRoutes", api.shortestPath)
}

func (api *navigatorAPI) network(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := writeJSON(w, http.StatusOK, envelope{"data": api.navigatorService.Network()}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *navigatorAPI) nodes(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	nodes := api.navigatorService.Nodes()
	resp := make([]nodeResponse, len(nodes))
	for i, c := range nodes {
		resp[i] = newNodeResponse(c)
	}
	if err := writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *navigatorAPI) nearestNode(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request nearestNodeRequest
		err     error
	)
	query := r.URL.Query()

	request.Lat, err = parseFloatParam(query.Get("lat"), "lat")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.Lon, err = parseFloatParam(query.Get("lon"), "lon")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validator.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	cand, err := api.navigatorService.NearestNode(geo.NewCoordinate(request.Lon, request.Lat))
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"data": newNearestNodeResponse(cand)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *navigatorAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request shortestPathRequest
		err     error
	)
	query := r.URL.Query()

	request.StartLat, err = parseFloatParam(query.Get("start_lat"), "start_lat")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.StartLon, err = parseFloatParam(query.Get("start_lon"), "start_lon")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.DestLat, err = parseFloatParam(query.Get("dest_lat"), "dest_lat")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.DestLon, err = parseFloatParam(query.Get("dest_lon"), "dest_lon")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if snap := query.Get("snap"); snap != "" {
		request.Snap, err = strconv.ParseBool(snap)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("snap must be a boolean"))
			return
		}
	}
	if err := api.validator.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	route, eta, err := api.navigatorService.ShortestPath(geo.NewCoordinate(request.StartLon, request.StartLat),
		geo.NewCoordinate(request.DestLon, request.DestLat), request.Snap)
	if err != nil {
		if errors.Is(err, routing.ErrPathNotFound) || errors.Is(err, routing.ErrNodeNotInGraph) {
			api.log.Info("no route for request", zap.String("query", r.URL.RawQuery), zap.Error(err))
			api.NotFoundResponse(w, r, pkg.NO_ROUTE_MESSAGE)
			return
		}
		api.getStatusCode(w, r, err)
		return
	}

	summary := selection.Summary{DistanceMiles: route.Distance, ETAMinutes: eta}
	if err := writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(route, eta, summary.String())},
		nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
