package engine

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/navigatorx-transit/pkg"
	"github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-transit/pkg/graphbuilder"
	"go.uber.org/zap"
)

const defaultResultCacheSize = 4096

type queryKey struct {
	start, end string
	priority   pkg.Priority
}

// network. immutable snapshot with the graph built from it
type network struct {
	stops []datastructure.Stop
	graph *datastructure.TransitGraph
	stats graphbuilder.BuildStats
	cache *lru.Cache[queryKey, *datastructure.PathResult]
}

// Engine. answers best path queries on a prebuilt graph. safe for concurrent use, queries share only read-only data.
type Engine struct {
	net             atomic.Pointer[network]
	resultCacheSize int
	logger          *zap.Logger
}

func NewEngine(stops []datastructure.Stop, routes []datastructure.Route, logger *zap.Logger,
	resultCacheSize int) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if resultCacheSize <= 0 {
		resultCacheSize = defaultResultCacheSize
	}

	e := &Engine{
		resultCacheSize: resultCacheSize,
		logger:          logger,
	}
	if err := e.ReplaceSnapshot(stops, routes); err != nil {
		return nil, err
	}
	return e, nil
}

// ReplaceSnapshot. builds a new graph and swaps it in together with an empty result cache.
// in-flight queries finish on the old graph.
func (e *Engine) ReplaceSnapshot(stops []datastructure.Stop, routes []datastructure.Route) error {
	cache, err := lru.New[queryKey, *datastructure.PathResult](e.resultCacheSize)
	if err != nil {
		return err
	}

	e.logger.Info("Building transit graph...", zap.Int("stops", len(stops)), zap.Int("routes", len(routes)))

	// copy the slices so the caller may reuse them
	stopsCopy := append([]datastructure.Stop(nil), stops...)
	routesCopy := append([]datastructure.Route(nil), routes...)

	graph, stats := graphbuilder.NewGraphBuilder(e.logger).BuildGraph(stopsCopy, routesCopy)
	if stats.SkippedRoutes > 0 || stats.InvalidRoutes > 0 {
		e.logger.Warn("some routes were dropped from the transit graph",
			zap.Int("unresolvable", stats.SkippedRoutes), zap.Int("invalid", stats.InvalidRoutes))
	}

	e.net.Store(&network{
		stops: stopsCopy,
		graph: graph,
		stats: stats,
		cache: cache,
	})

	e.logger.Info("Transit graph built.", zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()), zap.Int("components", stats.NumComponents))
	return nil
}

// FindBestPath. best path from start to end under priority. found is false if end is unreachable.
func (e *Engine) FindBestPath(start, end string, priority pkg.Priority) (*datastructure.PathResult, bool) {
	pr, _, found := e.FindBestPathWithGraph(start, end, priority)
	return pr, found
}

// FindBestPathWithGraph. same as FindBestPath, also returns the graph the query ran on so leg route ids
// can be resolved even if the snapshot is replaced meanwhile.
func (e *Engine) FindBestPathWithGraph(start, end string, priority pkg.Priority) (*datastructure.PathResult,
	*datastructure.TransitGraph, bool) {
	n := e.net.Load()

	key := queryKey{start: start, end: end, priority: priority}
	if pr, ok := n.cache.Get(key); ok {
		return pr, n.graph, pr != nil
	}

	if n.graph.InDifferentSCCs(start, end) {
		n.cache.Add(key, nil)
		return nil, n.graph, false
	}

	pr, found := routing.NewLexicographicDijkstra(n.graph, priority).ShortestPath(start, end)
	n.cache.Add(key, pr)
	return pr, n.graph, found
}

func (e *Engine) GetGraph() *datastructure.TransitGraph {
	return e.net.Load().graph
}

func (e *Engine) GetStops() []datastructure.Stop {
	return append([]datastructure.Stop(nil), e.net.Load().stops...)
}

func (e *Engine) GetBuildStats() graphbuilder.BuildStats {
	return e.net.Load().stats
}

func (e *Engine) HasStop(name string) bool {
	return e.net.Load().graph.HasStop(name)
}

func (e *Engine) GetStop(name string) (datastructure.Stop, bool) {
	return e.net.Load().graph.GetStop(name)
}
