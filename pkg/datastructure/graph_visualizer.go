package datastructure

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
)

const dotGraphName = "transit"

// ToDOT. graphviz representation of the transit graph, one undirected edge per route.
func (g *TransitGraph) ToDOT() (string, error) {
	graph := gographviz.NewGraph()
	if err := graph.SetName(dotGraphName); err != nil {
		return "", err
	}
	if err := graph.SetDir(false); err != nil {
		return "", err
	}
	_ = graph.AddAttr(dotGraphName, "rankdir", "LR")
	_ = graph.AddAttr(dotGraphName, "overlap", "false")

	for _, name := range util.SortedKeys(g.stops) {
		stop := g.stops[name]
		err := graph.AddNode(dotGraphName, strconv.Quote(name), map[string]string{
			"shape":   "circle",
			"tooltip": strconv.Quote(fmt.Sprintf("%.6f,%.6f", stop.Lat, stop.Lon)),
		})
		if err != nil {
			return "", err
		}
	}

	for _, from := range util.SortedKeys(g.adj) {
		for _, e := range g.adj[from] {
			if e.reverse {
				continue
			}
			err := graph.AddEdge(strconv.Quote(from), strconv.Quote(e.to), false, map[string]string{
				"label": strconv.Quote(fmt.Sprintf("fare %.2f / %.2f km", e.fare, e.distance)),
			})
			if err != nil {
				return "", err
			}
		}
	}

	return graph.String(), nil
}
