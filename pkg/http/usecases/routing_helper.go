package usecases

import (
	"github.com/lintang-b-s/gopherway/pkg/geo"
	"github.com/lintang-b-s/gopherway/pkg/util"
	"go.uber.org/zap"
)

func (ns *NavigatorService) snapOrigDestToNearbyNodes(orig, dst geo.Coordinate) (geo.Coordinate, geo.Coordinate,
	error) {
	origCand, ok := ns.spatialIndex.NearestNode(orig, ns.searchRadius, ns.maxSearchRadius)
	if !ok {
		return geo.Coordinate{}, geo.Coordinate{}, util.WrapErrorf(nil, util.ErrNotFound,
			"no origin candidates found near %s", geo.Key(orig))
	}

	dstCand, ok := ns.spatialIndex.NearestNode(dst, ns.searchRadius, ns.maxSearchRadius)
	if !ok {
		return geo.Coordinate{}, geo.Coordinate{}, util.WrapErrorf(nil, util.ErrNotFound,
			"no destination candidates found near %s", geo.Key(dst))
	}

	ns.log.Debug("snapped route endpoints",
		zap.String("origin", origCand.Key), zap.Float64("originDistance", origCand.Distance),
		zap.String("destination", dstCand.Key), zap.Float64("destinationDistance", dstCand.Distance))
	return origCand.Coordinate, dstCand.Coordinate, nil
}
