package usecases

import (
	"github.com/lintang-b-s/navigatorx-transit/pkg"
	"github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/spatialindex"
)

type RoutingEngine interface {
	FindBestPathWithGraph(start, end string, priority pkg.Priority) (*datastructure.PathResult,
		*datastructure.TransitGraph, bool)
	GetGraph() *datastructure.TransitGraph
	GetStops() []datastructure.Stop
	HasStop(name string) bool
	ReplaceSnapshot(stops []datastructure.Stop, routes []datastructure.Route) error
}

type SpatialIndex interface {
	SearchWithinRadius(qLat, qLon, radius float64) []spatialindex.NearbyStop
	Nearest(qLat, qLon, radius float64) (spatialindex.NearbyStop, bool)
}
