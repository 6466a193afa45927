package graphbuilder

import (
	"math"

	"github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/geo"
	"go.uber.org/zap"
)

type BuildStats struct {
	NumStops         int `json:"numStops"`
	NumRoutes        int `json:"numRoutes"`
	NumEdges         int `json:"numEdges"`
	SkippedRoutes    int `json:"skippedRoutes"`
	InvalidRoutes    int `json:"invalidRoutes"`
	DerivedDistances int `json:"derivedDistances"`
	NumComponents    int `json:"numComponents"`
}

type GraphBuilder struct {
	log *zap.Logger
}

func NewGraphBuilder(log *zap.Logger) *GraphBuilder {
	if log == nil {
		log = zap.NewNop()
	}
	return &GraphBuilder{log: log}
}

// BuildGraph. adjacency keyed by stop name. every resolvable route yields a forward and a reverse edge with the
// same fare & distance. routes whose endpoints are not in stops are dropped.
func (gb *GraphBuilder) BuildGraph(stops []datastructure.Stop, routes []datastructure.Route) (*datastructure.TransitGraph,
	BuildStats) {
	stopByName := make(map[string]datastructure.Stop, len(stops))
	for _, s := range stops {
		// later duplicates shadow earlier ones; the snapshot loader rejects duplicate names.
		stopByName[s.Name] = s
	}

	graph := datastructure.NewTransitGraph(stopByName, routes)
	stats := BuildStats{NumStops: len(stopByName), NumRoutes: len(routes)}

	for i, r := range routes {
		from, okFrom := stopByName[r.From]
		to, okTo := stopByName[r.To]
		if !okFrom || !okTo {
			gb.log.Debug("skipping route with unknown stop", zap.String("from", r.From), zap.String("to", r.To))
			stats.SkippedRoutes++
			continue
		}

		var distance float64
		if r.HasDistance() {
			distance = *r.Distance
		} else {
			distance = geo.CalculateHaversineDistance(from.Lat, from.Lon, to.Lat, to.Lon)
			stats.DerivedDistances++
		}

		if !validWeight(r.Fare) || !validWeight(distance) {
			// negative weights would break label monotonicity
			gb.log.Warn("skipping route with negative or NaN weight", zap.String("from", r.From), zap.String("to", r.To),
				zap.Float64("fare", r.Fare), zap.Float64("distance", distance))
			stats.InvalidRoutes++
			continue
		}

		routeId := datastructure.Index(i)
		graph.AddEdge(r.From, datastructure.NewEdge(r.To, r.Fare, distance, routeId, false))
		graph.AddEdge(r.To, datastructure.NewEdge(r.From, r.Fare, distance, routeId, true))
	}

	graph.RunKosaraju()

	stats.NumEdges = graph.NumberOfEdges()
	stats.NumComponents = graph.NumberOfSCCs()
	gb.log.Debug("transit graph built", zap.Int("stops", stats.NumStops), zap.Int("edges", stats.NumEdges),
		zap.Int("skippedRoutes", stats.SkippedRoutes), zap.Int("components", stats.NumComponents))
	return graph, stats
}

func validWeight(w float64) bool {
	return w >= 0 && !math.IsNaN(w) && !math.IsInf(w, 1)
}

// BuildGraph. package-level shortcut without logging
func BuildGraph(stops []datastructure.Stop, routes []datastructure.Route) *datastructure.TransitGraph {
	g, _ := NewGraphBuilder(nil).BuildGraph(stops, routes)
	return g
}
