package usecases

import (
	"errors"
	"sync"

	"github.com/lintang-b-s/navigatorx-transit/pkg"
	"github.com/lintang-b-s/navigatorx-transit/pkg/concurrent"
	"github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/spatialindex"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
	"go.uber.org/zap"
)

var (
	ERRPATHNOTFOUND = errors.New("no path found")
	ERRSTOPNOTFOUND = errors.New("stop not found")
)

type RoutingService struct {
	log          *zap.Logger
	engine       RoutingEngine
	mu           sync.RWMutex
	spatialIndex SpatialIndex
	searchRadius float64
	numWorkers   int
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, spatialindex SpatialIndex,
	searchRadius float64, numWorkers int) *RoutingService {
	return &RoutingService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialindex,
		searchRadius: searchRadius,
		numWorkers:   numWorkers,
	}
}

func (rs *RoutingService) index() SpatialIndex {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.spatialIndex
}

// ReplaceSnapshot. swaps in a new network: the engine graph and the nearest stop index are rebuilt from the same stops.
// queries already running finish on the old network.
func (rs *RoutingService) ReplaceSnapshot(stops []datastructure.Stop, routes []datastructure.Route) error {
	rtree := spatialindex.NewRtree()
	rtree.Build(stops, rs.log)

	if err := rs.engine.ReplaceSnapshot(stops, routes); err != nil {
		return util.WrapErrorf(err, util.ErrInternalServerError, "could not replace snapshot: %v", err)
	}

	rs.mu.Lock()
	rs.spatialIndex = rtree
	rs.mu.Unlock()

	rs.log.Info("transit network snapshot replaced", zap.Int("stops", len(stops)), zap.Int("routes", len(routes)))
	return nil
}

// BestPath. best path between two stop names. priority is one of fare, distance, stops (empty = fare).
func (rs *RoutingService) BestPath(from, to, priority string) (*BestPathResult, error) {
	p, err := pkg.ParsePriority(priority)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "%s", err.Error())
	}

	if from != to {
		for _, name := range []string{from, to} {
			if !rs.engine.HasStop(name) {
				return nil, util.WrapErrorf(ERRSTOPNOTFOUND, util.ErrNotFound, "stop %q not found", name)
			}
		}
	}

	pr, graph, found := rs.engine.FindBestPathWithGraph(from, to, p)
	if !found {
		return nil, util.WrapErrorf(ERRPATHNOTFOUND, util.ErrNotFound, "no path found from %s to %s", from, to)
	}

	rs.log.Debug("best path found", zap.String("from", from), zap.String("to", to), zap.Stringer("priority", p),
		zap.Int("legs", pr.GetTotalStops()))
	legGeometry := buildLegGeometries(graph, pr)
	return newBestPathResult(pr, p, legGeometry, buildDirections(graph, pr, legGeometry)), nil
}

// BestPathByCoords. snaps both coordinates to their nearest stop, then runs BestPath.
func (rs *RoutingService) BestPathByCoords(origLat, origLon, dstLat, dstLon float64, priority string) (*BestPathResult,
	error) {
	from, to, err := rs.snapOrigDestToNearbyStops(origLat, origLon, dstLat, dstLon)
	if err != nil {
		return nil, err
	}
	return rs.BestPath(from, to, priority)
}

func (rs *RoutingService) NearestStop(lat, lon float64) (datastructure.Stop, float64, error) {
	cand, found := rs.index().Nearest(lat, lon, rs.searchRadius)
	if !found {
		return datastructure.Stop{}, 0, util.WrapErrorf(ERRSTOPNOTFOUND, util.ErrNotFound,
			"no stop within %.3f km of %f,%f", rs.searchRadius, lat, lon)
	}
	stop, _ := rs.engine.GetGraph().GetStop(cand.GetName())
	return stop, cand.GetDistance(), nil
}

func (rs *RoutingService) Stops() []datastructure.Stop {
	return rs.engine.GetStops()
}

type BestPathQuery struct {
	From     string
	To       string
	Priority string
}

type BatchResult struct {
	Query  BestPathQuery
	Result *BestPathResult
	Err    error
}

// BatchBestPaths. runs the queries on the worker pool, results keep the order of queries.
func (rs *RoutingService) BatchBestPaths(queries []BestPathQuery) []BatchResult {
	return concurrent.Run(rs.numWorkers, queries, func(q BestPathQuery) BatchResult {
		res, err := rs.BestPath(q.From, q.To, q.Priority)
		return BatchResult{Query: q, Result: res, Err: err}
	})
}

func (rs *RoutingService) GraphDOT() (string, error) {
	dot, err := rs.engine.GetGraph().ToDOT()
	if err != nil {
		return "", util.WrapErrorf(err, util.ErrInternalServerError, "could not export graph: %v", err)
	}
	return dot, nil
}
