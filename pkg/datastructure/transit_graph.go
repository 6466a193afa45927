package datastructure

// Edge. directed edge of the transit graph, derived from a Route (forward or reverse).
type Edge struct {
	to       string
	fare     float64
	distance float64
	routeId  Index // index of the originating route in the snapshot
	reverse  bool  // true if this edge traverses the route from To to From
}

type Index uint32

func NewEdge(to string, fare, distance float64, routeId Index, reverse bool) Edge {
	return Edge{
		to:       to,
		fare:     fare,
		distance: distance,
		routeId:  routeId,
		reverse:  reverse,
	}
}

func (e Edge) GetTo() string {
	return e.to
}

func (e Edge) GetFare() float64 {
	return e.fare
}

func (e Edge) GetDistance() float64 {
	return e.distance
}

func (e Edge) GetRouteId() Index {
	return e.routeId
}

func (e Edge) IsReverse() bool {
	return e.reverse
}

// TransitGraph. adjacency list keyed by stop name. read-only once built.
type TransitGraph struct {
	adj    map[string][]Edge
	stops  map[string]Stop
	routes []Route

	numEdges int
	sccs     map[string]int
	numSCCs  int
}

func NewTransitGraph(stops map[string]Stop, routes []Route) *TransitGraph {
	return &TransitGraph{
		adj:    make(map[string][]Edge, len(stops)),
		stops:  stops,
		routes: routes,
	}
}

func (g *TransitGraph) AddEdge(from string, e Edge) {
	g.adj[from] = append(g.adj[from], e)
	g.numEdges++
}

func (g *TransitGraph) GetOutEdges(u string) []Edge {
	return g.adj[u]
}

func (g *TransitGraph) ForOutEdgesOf(u string, handle func(e Edge)) {
	for _, e := range g.adj[u] {
		handle(e)
	}
}

func (g *TransitGraph) HasStop(name string) bool {
	_, ok := g.stops[name]
	return ok
}

func (g *TransitGraph) GetStop(name string) (Stop, bool) {
	s, ok := g.stops[name]
	return s, ok
}

func (g *TransitGraph) GetStops() map[string]Stop {
	return g.stops
}

func (g *TransitGraph) GetRoute(id Index) Route {
	return g.routes[id]
}

func (g *TransitGraph) NumberOfVertices() int {
	return len(g.stops)
}

func (g *TransitGraph) NumberOfEdges() int {
	return g.numEdges
}
