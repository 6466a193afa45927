package routing

import (
	"github.com/lintang-b-s/navigatorx-transit/pkg"
	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/graphbuilder"
)

// searchLabel. frontier record, path & legs are recovered through parent pointers
type searchLabel struct {
	stop   string
	cost   da.Cost
	parent *searchLabel
	leg    da.Leg // leg from parent.stop to stop, zero for the start label
}

// LexicographicDijkstra. label-correcting search over a 3-key cost (fare, legs, distance) ordered by priority.
// every edge adds exactly one leg, so a popped label can never be improved later (dijkstra argument per key).
type LexicographicDijkstra struct {
	graph    *da.TransitGraph
	priority pkg.Priority

	best map[string]da.Cost
	pq   *da.MinHeap[*searchLabel]

	numSettledNodes int
}

func NewLexicographicDijkstra(graph *da.TransitGraph, priority pkg.Priority) *LexicographicDijkstra {
	ld := &LexicographicDijkstra{
		graph:    graph,
		priority: priority,
	}
	ld.pq = da.NewBinaryHeap[*searchLabel](func(a, b *searchLabel) int {
		return da.CompareCost(a.cost, b.cost, ld.priority)
	})
	return ld
}

func (ld *LexicographicDijkstra) GetNumSettledNodes() int {
	return ld.numSettledNodes
}

func (ld *LexicographicDijkstra) bestOf(u string) da.Cost {
	if c, ok := ld.best[u]; ok {
		return c
	}
	return da.InfCost()
}

// improves. true if candidate is the first label reaching u or strictly better than best[u].
// an unvisited stop accepts any finite candidate regardless of its magnitude.
func (ld *LexicographicDijkstra) improves(u string, candidate da.Cost) bool {
	c, ok := ld.best[u]
	if !ok {
		return true
	}
	return candidate.Better(c, ld.priority)
}

// ShortestPath. optimal path from start to end under the priority. found is false if end is unreachable.
func (ld *LexicographicDijkstra) ShortestPath(start, end string) (*da.PathResult, bool) {
	if start == end {
		return da.NewSingleStopPathResult(start), true
	}

	if !ld.graph.HasStop(start) || !ld.graph.HasStop(end) {
		return nil, false
	}

	ld.Preallocate()

	ld.best[start] = da.ZeroCost()
	ld.pq.Insert(&searchLabel{stop: start, cost: da.ZeroCost()})

	for !ld.pq.IsEmpty() {
		node, _ := ld.pq.ExtractMin()
		cur := node.GetItem()

		if da.CompareCost(cur.cost, ld.bestOf(cur.stop), ld.priority) > 0 {
			// superseded by a better label pushed later
			continue
		}
		ld.numSettledNodes++

		if cur.stop == end {
			return ld.buildPathResult(cur), true
		}

		ld.graph.ForOutEdgesOf(cur.stop, func(e da.Edge) {
			candidate := cur.cost.Extend(e)
			if !ld.improves(e.GetTo(), candidate) {
				return
			}

			ld.best[e.GetTo()] = candidate
			ld.pq.Insert(&searchLabel{
				stop:   e.GetTo(),
				cost:   candidate,
				parent: cur,
				leg:    da.NewLeg(cur.stop, e),
			})
		})
	}

	return nil, false
}

func (ld *LexicographicDijkstra) buildPathResult(target *searchLabel) *da.PathResult {
	n := target.cost.GetLegs()
	path := make([]string, n+1)
	legs := make([]da.Leg, n)

	cur := target
	for i := n; i > 0; i-- {
		path[i] = cur.stop
		legs[i-1] = cur.leg
		cur = cur.parent
	}
	path[0] = cur.stop

	return da.NewPathResult(path, legs)
}

func (ld *LexicographicDijkstra) Preallocate() {
	numberOfVertices := ld.graph.NumberOfVertices()
	ld.best = make(map[string]da.Cost, numberOfVertices)
	ld.pq.Clear()
	ld.pq.Preallocate(ld.graph.NumberOfEdges() + 1)
	ld.numSettledNodes = 0
}

// FindBestPath. builds the graph from the snapshot and runs one query. pure function of its inputs.
// start == end returns a single stop path without searching.
func FindBestPath(stops []da.Stop, routes []da.Route, start, end string, priority pkg.Priority) (*da.PathResult, bool) {
	if start == end {
		return da.NewSingleStopPathResult(start), true
	}
	graph := graphbuilder.BuildGraph(stops, routes)
	return NewLexicographicDijkstra(graph, priority).ShortestPath(start, end)
}
