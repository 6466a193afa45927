package spatialindex

import (
	"sort"

	"github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

const maxSearchResults = 20

type Rtree struct {
	tr *rtree.RTreeG[StopEntry]
}

type StopEntry struct {
	name string
	lat  float64
	lon  float64
}

func (se StopEntry) GetName() string {
	return se.name
}

func (se StopEntry) GetCoordinate() geo.Coordinate {
	return geo.NewCoordinate(se.lat, se.lon)
}

func newStopEntry(s datastructure.Stop) StopEntry {
	return StopEntry{name: s.Name, lat: s.Lat, lon: s.Lon}
}

// NearbyStop. stop with its haversine distance (km) to the query point
type NearbyStop struct {
	StopEntry
	distance float64
}

func (ns NearbyStop) GetDistance() float64 {
	return ns.distance
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[StopEntry]
	return &Rtree{
		tr: &tr,
	}
}

// Build. one point entry per stop
func (rt *Rtree) Build(stops []datastructure.Stop, log *zap.Logger) {
	log.Info("Building R-tree spatial index...", zap.Int("stops", len(stops)))
	for _, s := range stops {
		p := [2]float64{s.Lon, s.Lat}
		rt.tr.Insert(p, p, newStopEntry(s))
	}
	log.Info("R-tree spatial index built.")
}

// SearchWithinRadius search for stops within radius (in km) from the query point (qLat, qLon), nearest first
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []NearbyStop {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius*1.5)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius*1.5)

	results := make([]NearbyStop, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data StopEntry) bool {
			d := geo.CalculateHaversineDistance(qLat, qLon, data.lat, data.lon)
			if d <= radius {
				results = append(results, NearbyStop{StopEntry: data, distance: d})
			}
			return true
		})

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].distance != results[j].distance {
			return results[i].distance < results[j].distance
		}
		return results[i].name < results[j].name
	})
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	return results
}

// Nearest. nearest stop within radius km
func (rt *Rtree) Nearest(qLat, qLon, radius float64) (NearbyStop, bool) {
	cands := rt.SearchWithinRadius(qLat, qLon, radius)
	if len(cands) == 0 {
		return NearbyStop{}, false
	}
	return cands[0], true
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}
