package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/lintang-b-s/gopherway/pkg"
	"github.com/lintang-b-s/gopherway/pkg/concurrent"
	"github.com/lintang-b-s/gopherway/pkg/engine"
	"github.com/lintang-b-s/gopherway/pkg/geo"
	"github.com/lintang-b-s/gopherway/pkg/logger"
	"github.com/lintang-b-s/gopherway/pkg/selection"
	"github.com/lintang-b-s/gopherway/pkg/spatialindex"
	"github.com/lintang-b-s/gopherway/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	datasetPath = flag.String("dataset", "", "walkway dataset, overrides dataset.path")
	start       = flag.String("start", "", "start node as lon,lat")
	end         = flag.String("end", "", "destination node as lon,lat")
	pairsPath   = flag.String("pairs", "", "csv of start_lon,start_lat,dest_lon,dest_lat rows, one route per row")
	snap        = flag.Bool("snap", false, "snap start and destination to their nearest node")
	workers     = flag.Int("workers", runtime.NumCPU(), "concurrent searches for -pairs")
)

type query struct {
	start, destination geo.Coordinate
}

// prints the route summary of one start/destination pair, or of every row of a csv file.
func main() {
	flag.Parse()
	util.SetConfigDefaults()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	if *datasetPath != "" {
		viper.Set("dataset.path", *datasetPath)
	}

	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	queries, err := readQueries()
	if err != nil {
		logger.Fatal("invalid route query", zap.Error(err))
	}

	routingEngine, err := engine.NewEngine(viper.GetString("dataset.path"), logger)
	if err != nil {
		logger.Fatal("failed to load walkway dataset", zap.Error(err))
	}

	if *snap {
		rtree := spatialindex.NewRtree()
		rtree.Build(routingEngine.GetGraph(), viper.GetFloat64("spatial.search_radius_km"), logger)
		for i, q := range queries {
			queries[i].start = snapped(rtree, q.start, logger)
			queries[i].destination = snapped(rtree, q.destination, logger)
		}
	}

	speed := viper.GetFloat64("navigator.walking_speed_mph")
	summaries := concurrent.Map(queries, *workers, func(q query) string {
		route, err := routingEngine.Route(q.start, q.destination)
		if err != nil {
			logger.Debug("no route", zap.Error(err))
			return pkg.NO_ROUTE_MESSAGE
		}
		return selection.Summary{DistanceMiles: route.Distance, ETAMinutes: route.ETAMinutes(speed)}.String()
	})

	for i, q := range queries {
		if len(queries) > 1 {
			fmt.Printf("%s -> %s\n", geo.Key(q.start), geo.Key(q.destination))
		}
		fmt.Println(summaries[i])
		if i+1 < len(queries) {
			fmt.Println()
		}
	}
}

func snapped(rtree *spatialindex.Rtree, c geo.Coordinate, log *zap.Logger) geo.Coordinate {
	cand, ok := rtree.NearestNode(c, viper.GetFloat64("spatial.search_radius_km"),
		viper.GetFloat64("spatial.max_search_radius_km"))
	if !ok {
		log.Warn("no walkway node nearby", zap.String("query", geo.Key(c)))
		return c
	}
	return cand.Coordinate
}

func readQueries() ([]query, error) {
	if *pairsPath == "" {
		if *start == "" || *end == "" {
			return nil, errors.New("either -start and -end or -pairs is required")
		}
		s, err := geo.ParseKey(*start)
		if err != nil {
			return nil, err
		}
		d, err := geo.ParseKey(*end)
		if err != nil {
			return nil, err
		}
		return []query{{start: s, destination: d}}, nil
	}

	f, err := os.Open(*pairsPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parsePairs(f)
}

func parsePairs(r io.Reader) ([]query, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4
	reader.Comment = '#'

	queries := make([]query, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		vals := make([]float64, 4)
		for i, field := range record {
			vals[i], err = strconv.ParseFloat(field, 64)
			if err != nil {
				line, _ := reader.FieldPos(i)
				return nil, fmt.Errorf("line %d: invalid coordinate %q", line, field)
			}
		}
		queries = append(queries, query{
			start:       geo.NewCoordinate(vals[0], vals[1]),
			destination: geo.NewCoordinate(vals[2], vals[3]),
		})
	}
	return queries, nil
}
