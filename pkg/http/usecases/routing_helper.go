package usecases

import (
	"github.com/lintang-b-s/navigatorx-transit/pkg"
	"github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/geo"
	"github.com/lintang-b-s/navigatorx-transit/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
)

// LegGeometry. display-only shape of one leg: endpoints plus route waypoints in travel direction
type LegGeometry struct {
	coords   []geo.Coordinate
	polyline string
	length   float64
}

func (lg LegGeometry) GetCoords() []geo.Coordinate {
	return lg.coords
}

func (lg LegGeometry) GetPolyline() string {
	return lg.polyline
}

// GetLength. length of the drawn shape in km, can differ from the leg distance used for routing
func (lg LegGeometry) GetLength() float64 {
	return lg.length
}

type BestPathResult struct {
	path         *datastructure.PathResult
	priority     pkg.Priority
	legGeometry  []LegGeometry
	pathPolyline string
	directions   []guidance.Direction
}

func newBestPathResult(pr *datastructure.PathResult, p pkg.Priority, legGeometry []LegGeometry,
	directions []guidance.Direction) *BestPathResult {
	all := make([]geo.Coordinate, 0, len(legGeometry)*2)
	for i, lg := range legGeometry {
		coords := lg.coords
		if i > 0 && len(coords) > 0 {
			// first point of a leg is the last point of the previous one
			coords = coords[1:]
		}
		all = append(all, coords...)
	}
	return &BestPathResult{
		path:         pr,
		priority:     p,
		legGeometry:  legGeometry,
		pathPolyline: geo.PolylineFromCoords(all),
		directions:   directions,
	}
}

func (r *BestPathResult) GetPath() *datastructure.PathResult {
	return r.path
}

func (r *BestPathResult) GetPriority() pkg.Priority {
	return r.priority
}

func (r *BestPathResult) GetLegGeometry() []LegGeometry {
	return r.legGeometry
}

func (r *BestPathResult) GetPathPolyline() string {
	return r.pathPolyline
}

func (r *BestPathResult) GetDirections() []guidance.Direction {
	return r.directions
}

func buildLegGeometries(graph *datastructure.TransitGraph, pr *datastructure.PathResult) []LegGeometry {
	legs := pr.GetLegs()
	geometries := make([]LegGeometry, len(legs))
	for i, leg := range legs {
		coords := legCoords(graph, leg)
		geometries[i] = LegGeometry{
			coords:   coords,
			polyline: geo.PolylineFromCoords(coords),
			length:   geo.PolylineLength(coords),
		}
	}
	return geometries
}

// buildDirections. depart, transfer & arrive steps along the leg shapes
func buildDirections(graph *datastructure.TransitGraph, pr *datastructure.PathResult,
	legGeometry []LegGeometry) []guidance.Direction {
	coords := make([][]geo.Coordinate, len(legGeometry))
	for i, lg := range legGeometry {
		coords[i] = lg.coords
	}

	var startPoint geo.Coordinate
	if path := pr.GetPath(); len(path) > 0 {
		if s, ok := graph.GetStop(path[0]); ok {
			startPoint = s.GetCoordinate()
		}
	}
	return guidance.NewDirectionBuilder().GetTransitDirections(pr.GetPath(), pr.GetLegs(), coords, startPoint)
}

// legCoords. route shape oriented from leg.from to leg.to. route coords override stop coords when set.
func legCoords(graph *datastructure.TransitGraph, leg datastructure.Leg) []geo.Coordinate {
	route := graph.GetRoute(leg.GetRouteId())

	origin, _ := graph.GetStop(route.From)
	destination, _ := graph.GetStop(route.To)
	fromCoord := origin.GetCoordinate()
	toCoord := destination.GetCoordinate()
	if route.FromCoords != nil {
		fromCoord = *route.FromCoords
	}
	if route.ToCoords != nil {
		toCoord = *route.ToCoords
	}

	coords := make([]geo.Coordinate, 0, len(route.Intermediates)+2)
	coords = append(coords, fromCoord)
	for _, wp := range route.Intermediates {
		coords = append(coords, wp.GetCoordinate())
	}
	coords = append(coords, toCoord)

	if leg.IsReverse() {
		return util.ReverseG(coords)
	}
	return coords
}

func (rs *RoutingService) snapOrigDestToNearbyStops(origLat, origLon, dstLat, dstLon float64) (string, string, error) {
	orig, found := rs.index().Nearest(origLat, origLon, rs.searchRadius)
	if !found {
		return "", "", util.WrapErrorf(ERRSTOPNOTFOUND, util.ErrNotFound, "no origin stop within %.3f km of %f,%f",
			rs.searchRadius, origLat, origLon)
	}

	dst, found := rs.index().Nearest(dstLat, dstLon, rs.searchRadius)
	if !found {
		return "", "", util.WrapErrorf(ERRSTOPNOTFOUND, util.ErrNotFound, "no destination stop within %.3f km of %f,%f",
			rs.searchRadius, dstLat, dstLon)
	}

	return orig.GetName(), dst.GetName(), nil
}
