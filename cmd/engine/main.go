package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/gopherway/pkg/engine"
	"github.com/lintang-b-s/gopherway/pkg/geo"
	"github.com/lintang-b-s/gopherway/pkg/http"
	"github.com/lintang-b-s/gopherway/pkg/http/usecases"
	"github.com/lintang-b-s/gopherway/pkg/logger"
	"github.com/lintang-b-s/gopherway/pkg/render"
	"github.com/lintang-b-s/gopherway/pkg/spatialindex"
	"github.com/lintang-b-s/gopherway/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	datasetPath           = flag.String("dataset", "", "walkway dataset (.geojson, .osm, .osm.pbf, optionally .bz2)")
	port                  = flag.Int("port", 0, "api port, overrides API_PORT")
	leafBoundingBoxRadius = flag.Float64("leaf_bounding_box_radius", 0.05, "leaf node (r-tree) bounding box radius in km")
)

func main() {
	flag.Parse()
	util.SetConfigDefaults()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	if *datasetPath != "" {
		viper.Set("dataset.path", *datasetPath)
	}
	if *port != 0 {
		viper.Set("API_PORT", *port)
	}

	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	routingEngine, err := engine.NewEngine(viper.GetString("dataset.path"), logger)
	if err != nil {
		logger.Fatal("failed to load walkway dataset", zap.Error(err))
	}

	rtree := spatialindex.NewRtree()
	rtree.Build(routingEngine.GetGraph(), *leafBoundingBoxRadius, logger)

	renderConfig := render.DefaultConfig()
	renderConfig.Center = geo.NewCoordinate(viper.GetFloat64("map.center_lon"), viper.GetFloat64("map.center_lat"))
	renderConfig.Zoom = viper.GetInt("map.zoom")
	renderConfig.RouteColor = viper.GetString("navigator.route_color")
	renderConfig.DimOpacity = viper.GetFloat64("navigator.dim_opacity")

	navigatorService := usecases.NewNavigatorService(logger, routingEngine, rtree, renderConfig,
		viper.GetFloat64("navigator.walking_speed_mph"), viper.GetFloat64("spatial.search_radius_km"),
		viper.GetFloat64("spatial.max_search_radius_km"))

	api := http.NewServer(logger)

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	api.Use(ctx, logger, navigatorService, navigatorService)

	signal := http.GracefulShutdown()
	cleanup()
	if err := api.Wait(); err != nil {
		logger.Error("API stopped with error", zap.Error(err))
	}

	logger.Info("Gopherway Navigator Server Stopped", zap.String("signal", signal.String()))
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
