package datastructure

import (
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
)

// RunKosaraju. runs kosaraju's algorithm to find strongly connected components (SCCs) of the stops.
// every stop, isolated or not, belongs to exactly one component. must run after all edges are added.
func (g *TransitGraph) RunKosaraju() {
	names := util.SortedKeys(g.stops)

	radj := make(map[string][]string, len(g.adj))
	for _, from := range util.SortedKeys(g.adj) {
		for _, e := range g.adj[from] {
			radj[e.to] = append(radj[e.to], from)
		}
	}

	order := make([]string, 0, len(names))
	visited := make(map[string]bool, len(names))
	for _, v := range names {
		if !visited[v] {
			g.dfs(v, &order, visited)
		}
	}

	order = util.ReverseG(order)

	// reset visited
	visited = make(map[string]bool, len(names))
	sccs := make(map[string]int, len(names))
	numComponents := 0

	for _, v := range order {
		if visited[v] {
			continue
		}
		component := make([]string, 0, 10)
		reverseDfs(radj, v, &component, visited)
		for _, u := range component {
			sccs[u] = numComponents
		}
		numComponents++
	}

	g.setSCCs(sccs, numComponents)
}

func (g *TransitGraph) dfs(v string, output *[]string, visited map[string]bool) {
	visited[v] = true
	for _, e := range g.adj[v] {
		if !visited[e.to] {
			g.dfs(e.to, output, visited)
		}
	}
	*output = append(*output, v)
}

func reverseDfs(radj map[string][]string, v string, output *[]string, visited map[string]bool) {
	visited[v] = true
	for _, u := range radj[v] {
		if !visited[u] {
			reverseDfs(radj, u, output, visited)
		}
	}
	*output = append(*output, v)
}

func (g *TransitGraph) setSCCs(sccs map[string]int, numComponents int) {
	g.sccs = sccs
	g.numSCCs = numComponents
}

// GetSCC. component id of a stop, false if the stop is unknown or components were not computed
func (g *TransitGraph) GetSCC(name string) (int, bool) {
	id, ok := g.sccs[name]
	return id, ok
}

func (g *TransitGraph) NumberOfSCCs() int {
	return g.numSCCs
}

// InDifferentSCCs. true only when both stops are known and no path can connect them
func (g *TransitGraph) InDifferentSCCs(u, v string) bool {
	cu, okU := g.sccs[u]
	cv, okV := g.sccs[v]
	return okU && okV && cu != cv
}
