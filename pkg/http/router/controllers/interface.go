package controllers

import (
	"github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/http/usecases"
)

type RoutingService interface {
	BestPath(from, to, priority string) (*usecases.BestPathResult, error)
	BestPathByCoords(origLat, origLon, dstLat, dstLon float64, priority string) (*usecases.BestPathResult, error)
	NearestStop(lat, lon float64) (datastructure.Stop, float64, error)
	Stops() []datastructure.Stop
	BatchBestPaths(queries []usecases.BestPathQuery) []usecases.BatchResult
	GraphDOT() (string, error)
}
